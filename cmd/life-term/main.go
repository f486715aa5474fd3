package main

import (
	"flag"
	"log"
	"strconv"
	"strings"

	"fade-life/internal/app"
	"fade-life/internal/term"
	"fade-life/pkg/core"
	_ "fade-life/pkg/sims/life"

	"github.com/gdamore/tcell/v2"
)

func main() {
	simName := flag.String("sim", "life", "simulation to run")
	interval := flag.Duration("interval", core.DefaultInterval, "pause between generations")
	seed := flag.Int64("seed", 42, "seed for the initial soup")
	rule := flag.String("rule", "", "rule string such as B3S23D2 (empty uses the sim's preset)")
	fps := flag.Int("fps", 30, "frames drawn per second")
	var overrides app.KVList
	flag.Var(&overrides, "set", "sim parameter override in key=value form (repeatable)")
	flag.Parse()

	factory, ok := core.Sims()[*simName]
	if !ok {
		log.Fatalf("unknown sim %q (available: %s)", *simName, strings.Join(core.SimNames(), ", "))
	}
	opts := overrides.Map()
	opts["seed"] = strconv.FormatInt(*seed, 10)
	if *rule != "" {
		opts["rule"] = *rule
	}
	sim, err := factory(opts)
	if err != nil {
		log.Fatalf("create sim %q: %v", *simName, err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init terminal: %v", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	viewer := term.NewViewer(screen, sim, *interval, *seed)
	viewer.Fit()
	sim.Reset(*seed)

	err = viewer.Run(*fps)
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}
