package life

import "strconv"

// Config holds the engine dimensions, rule and animation settings.
type Config struct {
	Width  int
	Height int

	Rule      string
	DecayRate float64

	Density float64
	Seed    int64
}

// DefaultConfig returns the standard configuration: a 50x50 Conway grid whose
// dead cells fade out over two thirds of a second.
func DefaultConfig() Config {
	return Config{
		Width:     50,
		Height:    50,
		Rule:      DefaultRules().String(),
		DecayRate: 1.5,
		Density:   0.25,
		Seed:      42,
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Values that do not parse are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if r, err := ParseRules(v); err == nil {
			c.Rule = r.String()
		}
	}
	if v, ok := cfg["decay"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && checkRate(parsed) == nil {
			c.DecayRate = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}
