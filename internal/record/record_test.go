package record

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"fade-life/pkg/core"
	"fade-life/pkg/sims/life"
)

func smallConfig() life.Config {
	cfg := life.DefaultConfig()
	cfg.Width, cfg.Height = 16, 12
	return cfg
}

func TestRunRecordsEveryGeneration(t *testing.T) {
	h, err := Run(smallConfig(), 7, 10, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Samples) != 11 {
		t.Fatalf("got %d samples, want 11", len(h.Samples))
	}
	for i, s := range h.Samples {
		if s.Generation != i {
			t.Fatalf("sample %d has generation %d", i, s.Generation)
		}
	}
	if h.Samples[0].Alive == 0 {
		t.Fatal("seeded soup should start with live cells")
	}
	if h.Samples[0].Dying != 0 {
		t.Fatal("seeded soup should have no dying cells")
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a, err := Run(smallConfig(), 3, 20, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(smallConfig(), 3, 20, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Samples, b.Samples) {
		t.Fatal("same seed produced different histories")
	}
}

func TestHistorySummaries(t *testing.T) {
	h := &History{Samples: []Sample{
		{Generation: 0, Alive: 4},
		{Generation: 1, Alive: 9, Dying: 2},
		{Generation: 2, Alive: 1, Dying: 5},
		{Generation: 3},
		{Generation: 4},
	}}
	if p := h.Peak(); p.Generation != 1 || p.Alive != 9 {
		t.Fatalf("peak = %+v", p)
	}
	if gen, ok := h.Extinction(); !ok || gen != 3 {
		t.Fatalf("extinction = %d,%v want 3,true", gen, ok)
	}
	if last := h.Last(); last.Generation != 4 {
		t.Fatalf("last = %+v", last)
	}
	if _, ok := (&History{}).Extinction(); ok {
		t.Fatal("empty history cannot be extinct")
	}
}

func TestWriteChartProducesPNG(t *testing.T) {
	h, err := Run(smallConfig(), 5, 12, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteChart(&buf, "B3S23", h); err != nil {
		t.Fatalf("WriteChart: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("chart output is not a PNG")
	}
}

func TestWriteChartNeedsTwoSamples(t *testing.T) {
	h := &History{Samples: []Sample{{Alive: 1}}}
	if err := WriteChart(&bytes.Buffer{}, "x", h); !errors.Is(err, ErrNotEnoughSamples) {
		t.Fatalf("err = %v, want ErrNotEnoughSamples", err)
	}
}

func TestVideoWritesAVI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.avi")
	size := core.Size{W: 8, H: 6}
	v, err := NewVideo(path, size, 4, 10)
	if err != nil {
		t.Fatal(err)
	}
	e, err := life.New(size.W, size.H)
	if err != nil {
		t.Fatal(err)
	}
	e.Toggle(3, 2)
	e.Toggle(3, 3)
	e.Toggle(3, 4)
	for i := 0; i < 3; i++ {
		if err := v.AddFrame(e.Cells()); err != nil {
			t.Fatalf("AddFrame: %v", err)
		}
		e.Step(0.2)
	}
	if err := v.AddFrame(make([]uint8, 5)); err == nil {
		t.Fatal("frame with the wrong cell count should be rejected")
	}
	if v.Frames() != 3 {
		t.Fatalf("frames = %d, want 3", v.Frames())
	}
	if err := v.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Fatal("output is not a RIFF AVI file")
	}
}

func TestSweepSortsBySeed(t *testing.T) {
	seeds := []int64{9, 2, 5, 1}
	res, err := Sweep(smallConfig(), seeds, 8, 0.2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != len(seeds) {
		t.Fatalf("got %d results, want %d", len(res), len(seeds))
	}
	got := make([]int64, len(res))
	for i, r := range res {
		got[i] = r.Seed
		if r.Final.Generation != 8 {
			t.Fatalf("seed %d stopped at generation %d", r.Seed, r.Final.Generation)
		}
	}
	if !slices.Equal(got, []int64{1, 2, 5, 9}) {
		t.Fatalf("seeds = %v", got)
	}

	single, err := Run(smallConfig(), 5, 8, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if res[2].Final != single.Last() {
		t.Fatalf("sweep result %+v differs from a direct run %+v", res[2].Final, single.Last())
	}
}

func TestSweepRejectsBadConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Rule = "nonsense"
	if _, err := Sweep(cfg, []int64{1}, 1, 0.2, 1); err == nil {
		t.Fatal("invalid rule should fail the sweep")
	}
}

func TestNegativeGenerationsRejected(t *testing.T) {
	if _, err := Run(smallConfig(), 1, -2, 0.2); !errors.Is(err, ErrNegativeGenerations) {
		t.Fatalf("Run error = %v, want ErrNegativeGenerations", err)
	}
	if _, err := Sweep(smallConfig(), []int64{1, 2}, -5, 0.2, 2); !errors.Is(err, ErrNegativeGenerations) {
		t.Fatalf("Sweep error = %v, want ErrNegativeGenerations", err)
	}
	h, err := Run(smallConfig(), 1, 0, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Samples) != 1 {
		t.Fatalf("zero generations should record only the soup, got %d samples", len(h.Samples))
	}
}

func TestSweepUsesSeedZeroAsGiven(t *testing.T) {
	cfg := smallConfig()
	res, err := Sweep(cfg, []int64{cfg.Seed, 0}, 30, 0.2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if res[0].Seed != 0 || res[1].Seed != cfg.Seed {
		t.Fatalf("seeds = %d,%d", res[0].Seed, res[1].Seed)
	}

	zero, err := Run(cfg, 0, 30, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	fallback, err := Run(cfg, cfg.Seed, 30, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if slices.Equal(zero.Samples, fallback.Samples) {
		t.Fatal("seed 0 should not replay the configured seed")
	}
	if res[0].Final != zero.Last() || res[0].Peak != zero.Peak() {
		t.Fatalf("seed 0 result %+v does not match its own run", res[0])
	}
}

func TestInvalidDimensionsRejected(t *testing.T) {
	cfg := smallConfig()
	cfg.Width = 0
	if _, err := Run(cfg, 1, 1, 0.2); !errors.Is(err, life.ErrInvalidConfiguration) {
		t.Fatalf("Run error = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := Sweep(cfg, []int64{1}, 1, 0.2, 1); !errors.Is(err, life.ErrInvalidConfiguration) {
		t.Fatalf("Sweep error = %v, want ErrInvalidConfiguration", err)
	}
}
