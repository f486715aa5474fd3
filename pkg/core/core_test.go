package core

import (
	"slices"
	"testing"
	"time"
)

func TestGridNeighborsDoNotWrap(t *testing.T) {
	g := NewGrid[uint8](3, 3)

	corner := g.Neighbors(g.Index(0, 0), nil)
	slices.Sort(corner)
	want := []int{g.Index(1, 0), g.Index(0, 1), g.Index(1, 1)}
	slices.Sort(want)
	if !slices.Equal(corner, want) {
		t.Fatalf("corner neighbors = %v, want %v", corner, want)
	}

	center := g.Neighbors(g.Index(1, 1), nil)
	if len(center) != 8 {
		t.Fatalf("center should have 8 neighbors, got %d", len(center))
	}
}

func TestGridAtOutOfRange(t *testing.T) {
	g := NewGrid[int](4, 2)
	g.Cells()[g.Index(3, 1)] = 7
	if v, ok := g.At(3, 1); !ok || v != 7 {
		t.Fatalf("At(3,1) = %d,%v", v, ok)
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 2}} {
		if _, ok := g.At(p[0], p[1]); ok {
			t.Fatalf("At(%d,%d) should be absent", p[0], p[1])
		}
	}
	if x, y := g.Coords(g.Index(3, 1)); x != 3 || y != 1 {
		t.Fatalf("Coords round trip gave (%d,%d)", x, y)
	}
}

func TestFitGrid(t *testing.T) {
	cases := []struct {
		w, h, cell int
		want       Size
	}{
		{800, 600, 10, Size{W: 80, H: 60}},
		{805, 609, 10, Size{W: 80, H: 60}},
		{5, 5, 10, Size{W: 1, H: 1}},
		{100, 50, 0, Size{W: 100, H: 50}},
	}
	for _, tc := range cases {
		if got := FitGrid(tc.w, tc.h, tc.cell); got != tc.want {
			t.Fatalf("FitGrid(%d,%d,%d) = %+v, want %+v", tc.w, tc.h, tc.cell, got, tc.want)
		}
	}
}

func TestCellAtFloorsNegativePixels(t *testing.T) {
	if x, y := CellAt(25, 9, 10); x != 2 || y != 0 {
		t.Fatalf("CellAt(25,9) = (%d,%d)", x, y)
	}
	if x, y := CellAt(-1, -10, 10); x != -1 || y != -1 {
		t.Fatalf("CellAt(-1,-10) = (%d,%d), want (-1,-1)", x, y)
	}
	if x, y := CellAt(-11, 0, 10); x != -2 || y != 0 {
		t.Fatalf("CellAt(-11,0) = (%d,%d), want (-2,0)", x, y)
	}
}

func TestFixedStepPacing(t *testing.T) {
	fs := NewFixedStep(100 * time.Millisecond)

	if !fs.Advance(0) {
		t.Fatal("first advance should fire immediately")
	}
	if fs.Advance(50 * time.Millisecond) {
		t.Fatal("should not fire before the interval elapsed")
	}
	if !fs.Advance(50 * time.Millisecond) {
		t.Fatal("should fire once the interval elapsed")
	}
	if !fs.Advance(350 * time.Millisecond) {
		t.Fatal("large delta should fire")
	}
	if fs.Advance(0) {
		t.Fatal("backlog must not be replayed")
	}
	if !fs.Advance(50 * time.Millisecond) {
		t.Fatal("remainder of the large delta should carry over")
	}
}

func TestFixedStepDefaults(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != DefaultInterval {
		t.Fatalf("interval = %v, want %v", fs.Interval(), DefaultInterval)
	}
	if !fs.Advance(0) {
		t.Fatal("first advance should fire")
	}
	if fs.Advance(-time.Second) {
		t.Fatal("negative delta must not fire")
	}
}

func TestFixedStepResetFiresImmediately(t *testing.T) {
	fs := NewFixedStep(100 * time.Millisecond)
	if !fs.Advance(0) {
		t.Fatal("first advance should fire")
	}
	if fs.Advance(60 * time.Millisecond) {
		t.Fatal("should wait for the interval")
	}

	fs.Reset()
	if !fs.Advance(0) {
		t.Fatal("advance right after Reset should fire")
	}
	if fs.Advance(60 * time.Millisecond) {
		t.Fatal("Reset must drop the time accumulated before it")
	}
	if !fs.Advance(40 * time.Millisecond) {
		t.Fatal("should fire once a full interval passed after Reset")
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 64; i++ {
		if a.Chance(0.5) != b.Chance(0.5) {
			t.Fatalf("sequences diverged at %d", i)
		}
	}
	if a.Chance(0) || !a.Chance(1) {
		t.Fatal("Chance must clamp at 0 and 1")
	}
	if a.IntN(0) != 0 {
		t.Fatal("IntN(0) should be 0")
	}
}

func TestRegisterIgnoresEmpty(t *testing.T) {
	before := len(Sims())
	Register("", func(map[string]string) (Sim, error) { return nil, nil })
	Register("nil-factory", nil)
	if len(Sims()) != before {
		t.Fatal("invalid registrations must be ignored")
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{{
		Name:   "Rules",
		Params: []Parameter{{Key: "rule", Type: ParamTypeString, Value: "B3S23"}},
	}}}
	if p, ok := s.Lookup("rule"); !ok || p.Value != "B3S23" {
		t.Fatalf("Lookup(rule) = %+v,%v", p, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Fatal("missing key should not be found")
	}
	c := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	if c.Clamp(2) != 1 || c.Clamp(-1) != 0 || c.Clamp(0.5) != 0.5 {
		t.Fatal("Clamp should restrict to bounds")
	}
}
