package core

// NeighborDeltas lists the eight (dx, dy) offsets of the Moore neighborhood.
var NeighborDeltas = [8][2]int{
	{0, 1},
	{0, -1},

	{1, 0},
	{-1, 0},

	{-1, 1},
	{-1, -1},

	{1, 1},
	{1, -1},
}

// Grid stores a bounded 2D grid of values in row-major order. Coordinates
// outside the grid are not members; lookups never wrap around the edges.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// Coords converts a linear index back to (x, y).
func (g *Grid[T]) Coords(i int) (int, int) { return i % g.W, i / g.W }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value at (x, y) and false when the coordinates are outside
// the grid.
func (g *Grid[T]) At(x, y int) (T, bool) {
	if !g.InBounds(x, y) {
		var zero T
		return zero, false
	}
	return g.data[g.Index(x, y)], true
}

// Neighbors appends the indices of the in-bounds Moore neighbors of the cell
// at index i to dst.
func (g *Grid[T]) Neighbors(i int, dst []int) []int {
	x, y := g.Coords(i)
	for _, d := range NeighborDeltas {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) {
			dst = append(dst, g.Index(nx, ny))
		}
	}
	return dst
}

// FitGrid derives grid dimensions from a viewport in pixels and a cell size.
// The result is never smaller than 1x1.
func FitGrid(viewW, viewH, cellSize int) Size {
	if cellSize <= 0 {
		cellSize = 1
	}
	s := Size{W: viewW / cellSize, H: viewH / cellSize}
	if s.W < 1 {
		s.W = 1
	}
	if s.H < 1 {
		s.H = 1
	}
	return s
}

// CellAt maps a pixel position to grid coordinates using floor division, so
// pixels left of or above the origin map to negative cells.
func CellAt(px, py, cellSize int) (int, int) {
	if cellSize <= 0 {
		cellSize = 1
	}
	return floorDiv(px, cellSize), floorDiv(py, cellSize)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
