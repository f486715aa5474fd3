// Package life implements a Life-like cellular automaton whose dead cells
// fade out instead of vanishing. Only cells that can change are evaluated on
// each generation.
package life

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"fade-life/pkg/core"
)

// ErrInvalidConfiguration reports dimensions or rates the engine cannot use.
var ErrInvalidConfiguration = errors.New("invalid configuration")

type transition struct {
	index int
	state State
}

// Engine owns the grid, the rules and the set of cells worth evaluating.
// It is not safe for concurrent use.
type Engine struct {
	name string
	cfg  Config

	grid  *core.Grid[Cell]
	rules Rules
	dirty dirtySet

	generation int

	pending   []transition
	live      []int
	neighbors []int
	display   []uint8
}

// New returns an engine with the given dimensions and default settings.
func New(w, h int) (*Engine, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns an engine configured from cfg with an all-dead grid.
func NewWithConfig(cfg Config) (*Engine, error) {
	rules, err := ParseRules(cfg.Rule)
	if err != nil {
		return nil, err
	}
	if err := checkRate(cfg.DecayRate); err != nil {
		return nil, err
	}
	e := &Engine{name: "life", cfg: cfg, rules: rules}
	if err := e.Configure(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	return e, nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return e.name }

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.grid.W, H: e.grid.H} }

// Generation returns the number of steps since the last reconfiguration,
// clear or reset.
func (e *Engine) Generation() int { return e.generation }

// Rules returns the active rule set.
func (e *Engine) Rules() Rules { return e.rules }

// DecayRate returns the opacity lost per second by dying cells.
func (e *Engine) DecayRate() float64 { return e.cfg.DecayRate }

// Configure replaces the grid with a fresh w*h grid of dead cells. Previous
// state is discarded. Non-positive dimensions are rejected and leave the
// current grid untouched.
func (e *Engine) Configure(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfiguration, w, h)
	}
	grid := core.NewGrid[Cell](w, h)
	cells := grid.Cells()
	for i := range cells {
		x, y := grid.Coords(i)
		cells[i] = Cell{X: x, Y: y, State: Dead}
	}
	e.grid = grid
	e.dirty = newDirtySet(len(cells))
	e.display = make([]uint8, len(cells))
	e.generation = 0
	e.cfg.Width = w
	e.cfg.Height = h
	return nil
}

// Query returns a copy of the cell at (x, y), or false when the coordinates
// are outside the grid.
func (e *Engine) Query(x, y int) (Cell, bool) {
	return e.grid.At(x, y)
}

// Toggle flips the cell at (x, y) between alive and dead without passing
// through the dying stage. A dying cell becomes alive. Out-of-range
// coordinates are ignored.
func (e *Engine) Toggle(x, y int) {
	if !e.grid.InBounds(x, y) {
		return
	}
	i := e.grid.Index(x, y)
	c := &e.grid.Cells()[i]
	if c.State == Alive {
		c.kill()
	} else {
		c.revive()
	}
	e.markAround(i)
}

// Clear kills every cell and empties the working set. Dimensions and rules
// are kept.
func (e *Engine) Clear() {
	cells := e.grid.Cells()
	for i := range cells {
		cells[i].kill()
	}
	e.dirty.reset()
	e.generation = 0
}

// Reset clears the grid and seeds it with live cells at the configured
// density. A zero seed uses the configured seed.
func (e *Engine) Reset(seed int64) {
	if seed == 0 {
		seed = e.cfg.Seed
	}
	e.Reseed(seed)
}

// Reseed is Reset without the zero-seed fallback: the soup always comes from
// exactly seed.
func (e *Engine) Reseed(seed int64) {
	e.Clear()
	rng := core.NewRNG(seed)
	cells := e.grid.Cells()
	for i := range cells {
		if rng.Chance(e.cfg.Density) {
			cells[i].revive()
			e.markAround(i)
		}
	}
}

// SetRules replaces the rule set from neighbor count lists. Counts outside
// 0..8 are rejected and the previous rules stay in effect.
func (e *Engine) SetRules(birth, survive, deathEcho []int) error {
	var (
		r   Rules
		err error
	)
	if r.Birth, err = NewCounts(birth...); err != nil {
		return err
	}
	if r.Survive, err = NewCounts(survive...); err != nil {
		return err
	}
	if r.DeathEcho, err = NewCounts(deathEcho...); err != nil {
		return err
	}
	e.rules = r
	return nil
}

// SetRuleSet replaces the rule set.
func (e *Engine) SetRuleSet(r Rules) { e.rules = r }

// SetRuleString applies an encoded rule such as "B3S23D2". Unparseable input
// is ignored and reported as false.
func (e *Engine) SetRuleString(s string) bool {
	r, err := ParseRules(s)
	if err != nil {
		return false
	}
	e.rules = r
	return true
}

// SetDecayRate sets the opacity lost per second by dying cells.
func (e *Engine) SetDecayRate(rate float64) error {
	if err := checkRate(rate); err != nil {
		return err
	}
	e.cfg.DecayRate = rate
	return nil
}

// Step advances one generation and decays cells that were already dying by
// DecayRate*dt. Every transition is computed from the grid as it was before
// the step.
func (e *Engine) Step(dt float64) {
	cells := e.grid.Cells()
	if e.rules.Birth.Has(0) {
		// Cells with no live neighbor can be born, so none may be skipped.
		for i := range cells {
			e.dirty.add(i)
		}
	}

	e.pending = e.pending[:0]
	for _, i := range e.dirty.members() {
		alive, dying := e.countNeighbors(i)
		e.pending = append(e.pending, transition{index: i, state: e.rules.next(cells[i].State, alive, dying)})
	}

	amount := e.decayAmount(dt)
	for _, t := range e.pending {
		c := &cells[t.index]
		switch {
		case t.state == Alive:
			c.revive()
		case c.State == Alive:
			c.State = Dying
		case c.State == Dying && amount > 0:
			c.decay(amount)
		}
	}

	e.generation++
	e.rebuildDirty()
}

// Fade decays dying cells by DecayRate*dt without advancing a generation.
func (e *Engine) Fade(dt float64) {
	amount := e.decayAmount(dt)
	if amount <= 0 {
		return
	}
	cells := e.grid.Cells()
	for _, i := range e.dirty.members() {
		if cells[i].State == Dying {
			cells[i].decay(amount)
		}
	}
}

// Cells returns a row-major intensity buffer: 0 for dead, 255 for alive and
// the scaled opacity for dying cells. The buffer is reused between calls.
func (e *Engine) Cells() []uint8 {
	for i, c := range e.grid.Cells() {
		switch c.State {
		case Alive:
			e.display[i] = 255
		case Dying:
			e.display[i] = uint8(math.Round(c.Opacity * 255))
		default:
			e.display[i] = 0
		}
	}
	return e.display
}

// Visible returns copies of the alive and dying cells in row-major order.
func (e *Engine) Visible() []Cell {
	cells := e.grid.Cells()
	var idx []int
	for _, i := range e.dirty.members() {
		if cells[i].State != Dead {
			idx = append(idx, i)
		}
	}
	slices.Sort(idx)
	out := make([]Cell, len(idx))
	for k, i := range idx {
		out[k] = cells[i]
	}
	return out
}

// Population counts alive and dying cells.
func (e *Engine) Population() (alive, dying int) {
	cells := e.grid.Cells()
	for _, i := range e.dirty.members() {
		switch cells[i].State {
		case Alive:
			alive++
		case Dying:
			dying++
		}
	}
	return alive, dying
}

func (e *Engine) countNeighbors(i int) (alive, dying int) {
	cells := e.grid.Cells()
	e.neighbors = e.grid.Neighbors(i, e.neighbors[:0])
	for _, n := range e.neighbors {
		switch cells[n].State {
		case Alive:
			alive++
		case Dying:
			dying++
		}
	}
	return alive, dying
}

func (e *Engine) markAround(i int) {
	e.dirty.add(i)
	e.neighbors = e.grid.Neighbors(i, e.neighbors[:0])
	for _, n := range e.neighbors {
		e.dirty.add(n)
	}
}

// rebuildDirty keeps every alive or dying cell and its neighbors. Cells
// outside the previous set were dead with no live neighbor and cannot have
// changed, so scanning the previous members is enough.
func (e *Engine) rebuildDirty() {
	cells := e.grid.Cells()
	e.live = e.live[:0]
	for _, i := range e.dirty.members() {
		if cells[i].State != Dead {
			e.live = append(e.live, i)
		}
	}
	e.dirty.reset()
	for _, i := range e.live {
		e.markAround(i)
	}
}

func (e *Engine) decayAmount(dt float64) float64 {
	if e.cfg.DecayRate == 0 || math.IsNaN(dt) || dt <= 0 {
		return 0
	}
	return e.cfg.DecayRate * dt
}

func checkRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return fmt.Errorf("%w: decay rate %v", ErrInvalidConfiguration, rate)
	}
	return nil
}

func init() {
	for _, p := range Presets {
		core.Register(p.Key, func(cfg map[string]string) (core.Sim, error) {
			c := FromMap(cfg)
			if _, err := ParseRules(cfg["rule"]); err != nil {
				c.Rule = p.Rules.String()
			}
			e, err := NewWithConfig(c)
			if err != nil {
				return nil, err
			}
			e.name = p.Key
			return e, nil
		})
	}
}
