package app

import (
	"flag"
	"strconv"
	"strings"
	"time"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim       string
	CellSize  int
	HUDWidth  int
	TPS       int
	Interval  time.Duration
	Seed      int64
	Rule      string
	Decay     float64
	Width     int
	Height    int
	Resizable bool

	Overrides KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:       "life",
		CellSize:  12,
		HUDWidth:  220,
		TPS:       60,
		Interval:  200 * time.Millisecond,
		Seed:      42,
		Decay:     1.5,
		Width:     50,
		Height:    50,
		Resizable: true,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "cell size in pixels")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels (0 hides it)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "pause between generations")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule string such as B3S23 or B3S23D2 (empty uses the sim's preset)")
	fs.Float64Var(&c.Decay, "decay", c.Decay, "opacity lost per second by dying cells")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.BoolVar(&c.Resizable, "resizable", c.Resizable, "rebuild the grid when the window is resized")
	fs.Var(&c.Overrides, "set", "sim parameter override in key=value form (repeatable)")
}

// SimOptions builds the key/value map handed to a sim factory. Explicit
// -set overrides win over the dedicated flags.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{
		"w":     strconv.Itoa(c.Width),
		"h":     strconv.Itoa(c.Height),
		"seed":  strconv.FormatInt(c.Seed, 10),
		"decay": strconv.FormatFloat(c.Decay, 'f', -1, 64),
	}
	if c.Rule != "" {
		opts["rule"] = c.Rule
	}
	for k, v := range c.Overrides.Map() {
		opts[k] = v
	}
	return opts
}

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Map splits the entries into a map, skipping malformed ones.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}
