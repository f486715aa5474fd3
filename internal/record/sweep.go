package record

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"fade-life/pkg/sims/life"
)

// ErrNegativeGenerations is returned when a run is asked for fewer than zero
// generations.
var ErrNegativeGenerations = errors.New("record: generations must not be negative")

// SweepResult summarizes one seeded run.
type SweepResult struct {
	Seed       int64
	Final      Sample
	Peak       Sample
	Extinct    bool
	ExtinctGen int
}

// Run advances a fresh engine for the given number of generations and
// records one sample per generation, starting with the seeded soup. The soup
// comes from exactly seed, zero included.
func Run(cfg life.Config, seed int64, generations int, dt float64) (*History, error) {
	if generations < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeGenerations, generations)
	}
	e, err := life.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	e.Reseed(seed)
	h := &History{Samples: make([]Sample, 0, generations+1)}
	h.Observe(e)
	for i := 0; i < generations; i++ {
		e.Step(dt)
		h.Observe(e)
	}
	return h, nil
}

// Sweep runs one engine per seed across a pool of workers. Results are
// sorted by seed.
func Sweep(cfg life.Config, seeds []int64, generations int, dt float64, workers int) ([]SweepResult, error) {
	if generations < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeGenerations, generations)
	}
	if _, err := life.NewWithConfig(cfg); err != nil {
		return nil, fmt.Errorf("record: sweep config: %w", err)
	}
	if workers <= 0 {
		workers = 1
	}

	type outcome struct {
		res SweepResult
		err error
	}
	jobs := make(chan int64)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				h, err := Run(cfg, seed, generations, dt)
				if err != nil {
					results <- outcome{err: err}
					continue
				}
				res := SweepResult{Seed: seed, Final: h.Last(), Peak: h.Peak()}
				res.ExtinctGen, res.Extinct = h.Extinction()
				results <- outcome{res: res}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range seeds {
			jobs <- s
		}
		close(jobs)
	}()

	out := make([]SweepResult, 0, len(seeds))
	var firstErr error
	for o := range results {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		out = append(out, o.res)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Seed < out[j].Seed })
	return out, nil
}
