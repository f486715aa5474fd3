package core

import "sort"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cellular automaton must implement. Step
// receives the seconds elapsed since the previous generation; sims that do not
// animate between generations may ignore it.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step(dt float64)
	Cells() []uint8
}

// Editable is implemented by sims that accept interactive edits.
type Editable interface {
	Toggle(x, y int)
	Clear()
}

// Resizable is implemented by sims whose grid can be rebuilt at new
// dimensions. Resizing discards the previous state.
type Resizable interface {
	Configure(w, h int) error
}

// Fader is implemented by sims that animate between generations.
type Fader interface {
	Fade(dt float64)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames returns the registered names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
