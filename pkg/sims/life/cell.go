package life

// State is the lifecycle stage of a cell.
type State uint8

const (
	Dead State = iota
	Alive
	Dying
)

func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	default:
		return "dead"
	}
}

// Cell is one grid position. Opacity is 1 while alive, fades towards 0 while
// dying and is 0 once dead.
type Cell struct {
	X, Y    int
	State   State
	Opacity float64
}

// decay lowers a dying cell's opacity by amount and retires it once the
// opacity is exhausted.
func (c *Cell) decay(amount float64) {
	c.Opacity -= amount
	if c.Opacity <= 0 {
		c.Opacity = 0
		c.State = Dead
	}
}

func (c *Cell) revive() {
	c.State = Alive
	c.Opacity = 1
}

func (c *Cell) kill() {
	c.State = Dead
	c.Opacity = 0
}
