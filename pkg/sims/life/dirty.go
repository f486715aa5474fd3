package life

// dirtySet holds the indices of cells that may change on the next step. The
// marked slice gives O(1) membership; list keeps insertion order so steps
// are deterministic.
type dirtySet struct {
	marked []bool
	list   []int
}

func newDirtySet(n int) dirtySet {
	return dirtySet{marked: make([]bool, n)}
}

func (d *dirtySet) add(i int) {
	if d.marked[i] {
		return
	}
	d.marked[i] = true
	d.list = append(d.list, i)
}

func (d *dirtySet) has(i int) bool { return d.marked[i] }

func (d *dirtySet) members() []int { return d.list }

func (d *dirtySet) len() int { return len(d.list) }

func (d *dirtySet) reset() {
	for _, i := range d.list {
		d.marked[i] = false
	}
	d.list = d.list[:0]
}
