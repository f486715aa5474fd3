package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"fade-life/internal/app"
	"fade-life/internal/record"
	"fade-life/pkg/core"
	"fade-life/pkg/sims/life"
)

func main() {
	width := flag.Int("w", 64, "grid width in cells")
	height := flag.Int("h", 48, "grid height in cells")
	rule := flag.String("rule", "", "rule string such as B3S23D2")
	seed := flag.Int64("seed", 42, "seed for the initial soup")
	generations := flag.Int("generations", 200, "generations to simulate")
	dt := flag.Float64("dt", 0.2, "seconds of fading per generation")
	chartPath := flag.String("chart", "", "write a population chart PNG to this path")
	videoPath := flag.String("video", "", "write an MJPEG AVI of the run to this path")
	scale := flag.Int("scale", 8, "pixels per cell in the video")
	fps := flag.Int("fps", 10, "video frames per second")
	sweep := flag.Int("sweep", 0, "run this many consecutive seeds concurrently and print a summary")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines for -sweep")
	var overrides app.KVList
	flag.Var(&overrides, "set", "engine option in key=value form (repeatable)")
	flag.Parse()

	if *generations < 0 {
		log.Fatalf("-generations must not be negative, got %d", *generations)
	}

	cfg := life.FromMap(overrides.Map())
	// Taken as given so non-positive sizes fail in Configure.
	cfg.Width, cfg.Height = *width, *height
	if *rule != "" {
		r, err := life.ParseRules(*rule)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Rule = r.String()
	}

	if *sweep > 0 {
		runSweep(cfg, *seed, *sweep, *generations, *dt, *workers)
		return
	}

	e, err := life.NewWithConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	e.Reseed(*seed)

	var video *record.Video
	if *videoPath != "" {
		video, err = record.NewVideo(*videoPath, e.Size(), *scale, *fps)
		if err != nil {
			log.Fatal(err)
		}
	}

	start := time.Now()
	var history record.History
	history.Observe(e)
	if err := addFrame(video, e); err != nil {
		log.Fatal(err)
	}
	for i := 0; i < *generations; i++ {
		e.Step(*dt)
		history.Observe(e)
		if err := addFrame(video, e); err != nil {
			log.Fatal(err)
		}
	}
	elapsed := time.Since(start)

	if video != nil {
		if err := video.Close(); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d frames to %s\n", video.Frames(), *videoPath)
	}

	final := history.Last()
	peak := history.Peak()
	fmt.Printf("rule %s  grid %dx%d  seed %d  %d generations in %v\n",
		e.Rules(), e.Size().W, e.Size().H, *seed, *generations, elapsed.Round(time.Millisecond))
	fmt.Printf("final alive=%d dying=%d  peak alive=%d at gen %d\n", final.Alive, final.Dying, peak.Alive, peak.Generation)
	if gen, ok := history.Extinction(); ok {
		fmt.Printf("extinct at generation %d\n", gen)
	}

	if *chartPath != "" {
		f, err := os.Create(*chartPath)
		if err != nil {
			log.Fatal(err)
		}
		title := fmt.Sprintf("%s seed %d", e.Rules(), *seed)
		if err := record.WriteChart(f, title, &history); err != nil {
			f.Close()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote chart to %s\n", *chartPath)
	}
}

func addFrame(v *record.Video, s core.Sim) error {
	if v == nil {
		return nil
	}
	return v.AddFrame(s.Cells())
}

func runSweep(cfg life.Config, first int64, n, generations int, dt float64, workers int) {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = first + int64(i)
	}
	start := time.Now()
	results, err := record.Sweep(cfg, seeds, generations, dt, workers)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("rule %s  grid %dx%d  %d seeds x %d generations in %v\n",
		cfg.Rule, cfg.Width, cfg.Height, n, generations, time.Since(start).Round(time.Millisecond))

	extinct := 0
	for _, r := range results {
		line := fmt.Sprintf("seed=%d final alive=%d dying=%d peak=%d@%d",
			r.Seed, r.Final.Alive, r.Final.Dying, r.Peak.Alive, r.Peak.Generation)
		if r.Extinct {
			extinct++
			line += fmt.Sprintf(" extinct@%d", r.ExtinctGen)
		}
		fmt.Println(line)
	}
	fmt.Printf("%d/%d runs went extinct\n", extinct, len(results))
}
