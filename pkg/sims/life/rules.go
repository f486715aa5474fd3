package life

import (
	"errors"
	"fmt"
	"strings"
)

// MaxNeighbors is the size of the Moore neighborhood.
const MaxNeighbors = 8

// ErrInvalidRule reports a rule string or neighbor count that cannot be used.
var ErrInvalidRule = errors.New("invalid rule")

// Counts is a set of neighbor counts in the range 0..8.
type Counts uint16

// NewCounts builds a set from the given neighbor counts.
func NewCounts(ns ...int) (Counts, error) {
	var c Counts
	for _, n := range ns {
		if n < 0 || n > MaxNeighbors {
			return 0, fmt.Errorf("%w: neighbor count %d out of range 0..%d", ErrInvalidRule, n, MaxNeighbors)
		}
		c |= 1 << n
	}
	return c, nil
}

// Has reports whether n is a member.
func (c Counts) Has(n int) bool {
	return n >= 0 && n <= MaxNeighbors && c&(1<<n) != 0
}

// Slice lists the members in ascending order.
func (c Counts) Slice() []int {
	var out []int
	for n := 0; n <= MaxNeighbors; n++ {
		if c.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

func (c Counts) String() string {
	var b strings.Builder
	for _, n := range c.Slice() {
		b.WriteByte(byte('0' + n))
	}
	return b.String()
}

// Rules holds the birth, survival and death-echo conditions. A dead or dying
// cell is born when its alive neighbor count is in Birth. An alive cell
// survives when its alive neighbor count is in Survive or its dying neighbor
// count is in DeathEcho.
type Rules struct {
	Birth     Counts
	Survive   Counts
	DeathEcho Counts
}

// DefaultRules returns Conway's rule, B3S23.
func DefaultRules() Rules {
	return Rules{Birth: 1 << 3, Survive: 1<<2 | 1<<3}
}

// ParseRules decodes B<digits>S<digits>[D<digits>]. Letters are case
// insensitive and the sections may be separated by '/'.
func ParseRules(s string) (Rules, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	var (
		r   Rules
		err error
	)
	rest := in
	if r.Birth, rest, err = parseSection(rest, 'B'); err != nil {
		return Rules{}, fmt.Errorf("%w %q: %v", ErrInvalidRule, s, err)
	}
	rest = strings.TrimPrefix(rest, "/")
	if r.Survive, rest, err = parseSection(rest, 'S'); err != nil {
		return Rules{}, fmt.Errorf("%w %q: %v", ErrInvalidRule, s, err)
	}
	if rest != "" {
		rest = strings.TrimPrefix(rest, "/")
		if r.DeathEcho, rest, err = parseSection(rest, 'D'); err != nil {
			return Rules{}, fmt.Errorf("%w %q: %v", ErrInvalidRule, s, err)
		}
	}
	if rest != "" {
		return Rules{}, fmt.Errorf("%w %q: unexpected trailing %q", ErrInvalidRule, s, rest)
	}
	return r, nil
}

func parseSection(s string, tag byte) (Counts, string, error) {
	if s == "" || s[0] != tag {
		return 0, s, fmt.Errorf("expected section %q", tag)
	}
	var c Counts
	i := 1
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n := int(s[i] - '0')
		if n > MaxNeighbors {
			return 0, s, fmt.Errorf("neighbor count %d out of range", n)
		}
		c |= 1 << n
	}
	return c, s[i:], nil
}

// String encodes the rules. The D section is only written when non-empty.
func (r Rules) String() string {
	s := "B" + r.Birth.String() + "S" + r.Survive.String()
	if r.DeathEcho != 0 {
		s += "D" + r.DeathEcho.String()
	}
	return s
}

// next returns the state a cell moves to given its neighbor counts.
func (r Rules) next(s State, alive, dying int) State {
	if s == Alive {
		if r.Survive.Has(alive) || r.DeathEcho.Has(dying) {
			return Alive
		}
		return Dying
	}
	if r.Birth.Has(alive) {
		return Alive
	}
	return s
}

// Preset is a named rule set.
type Preset struct {
	Key   string
	Name  string
	Rules Rules
}

// Presets lists the built-in rule sets. Each key is also registered as a sim.
var Presets = []Preset{
	{Key: "life", Name: "Conway", Rules: mustParse("B3S23")},
	{Key: "highlife", Name: "HighLife", Rules: mustParse("B36S23")},
	{Key: "seeds", Name: "Seeds", Rules: mustParse("B2S")},
	{Key: "daynight", Name: "Day & Night", Rules: mustParse("B3678S34678")},
	{Key: "echo", Name: "Echo", Rules: mustParse("B3S23D2")},
}

// NextPreset returns the preset following the one matching r, wrapping
// around. Unknown rules yield the first preset.
func NextPreset(r Rules) Preset {
	for i, p := range Presets {
		if p.Rules == r {
			return Presets[(i+1)%len(Presets)]
		}
	}
	return Presets[0]
}

func mustParse(s string) Rules {
	r, err := ParseRules(s)
	if err != nil {
		panic(err)
	}
	return r
}
