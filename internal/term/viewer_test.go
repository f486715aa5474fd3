package term

import (
	"strings"
	"testing"
	"time"

	"fade-life/pkg/sims/life"

	"github.com/gdamore/tcell/v2"
)

func newTestViewer(t *testing.T, w, h int) (*Viewer, *life.Engine, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	e, err := life.New(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	v := NewViewer(screen, e, 200*time.Millisecond, 1)
	v.Fit()
	return v, e, screen
}

func rowText(s tcell.Screen, row, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, row)
		b.WriteRune(r)
	}
	return b.String()
}

func TestFitUsesTwoColumnsPerCell(t *testing.T) {
	_, e, _ := newTestViewer(t, 20, 11)
	if s := e.Size(); s.W != 10 || s.H != 10 {
		t.Fatalf("grid = %+v, want 10x10", s)
	}
}

func TestDrawShowsCellsAndStatus(t *testing.T) {
	v, e, screen := newTestViewer(t, 20, 11)
	e.Toggle(1, 1)
	v.Draw()

	for _, x := range []int{2, 3} {
		if r, _, _, _ := screen.GetContent(x, 1); r != '█' {
			t.Fatalf("column %d row 1 = %q, want full block", x, r)
		}
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != ' ' {
		t.Fatalf("dead cell drawn as %q", r)
	}
	status := rowText(screen, 10, 20)
	if !strings.HasPrefix(status, "life  B3S23") {
		t.Fatalf("status line = %q", status)
	}
}

func TestMouseTogglesOnPress(t *testing.T) {
	v, e, _ := newTestViewer(t, 20, 11)

	v.HandleEvent(tcell.NewEventMouse(6, 2, tcell.Button1, tcell.ModNone))
	if c, _ := e.Query(3, 2); c.State != life.Alive {
		t.Fatalf("click should toggle cell (3,2), got %v", c.State)
	}
	v.HandleEvent(tcell.NewEventMouse(7, 2, tcell.Button1, tcell.ModNone))
	if c, _ := e.Query(3, 2); c.State != life.Alive {
		t.Fatal("holding the button must not toggle again")
	}
	v.HandleEvent(tcell.NewEventMouse(7, 2, tcell.ButtonNone, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(7, 2, tcell.Button1, tcell.ModNone))
	if c, _ := e.Query(3, 2); c.State != life.Dead {
		t.Fatalf("second press should toggle back, got %v", c.State)
	}
}

func TestKeysAndTick(t *testing.T) {
	v, e, _ := newTestViewer(t, 20, 11)
	e.Toggle(2, 1)
	e.Toggle(2, 2)
	e.Toggle(2, 3)

	v.Tick(16 * time.Millisecond)
	if e.Generation() != 1 {
		t.Fatalf("first tick should step, generation = %d", e.Generation())
	}
	v.Tick(16 * time.Millisecond)
	if e.Generation() != 1 {
		t.Fatal("generation should wait for the interval")
	}

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !v.Paused() {
		t.Fatal("space should pause")
	}
	v.Tick(time.Second)
	if e.Generation() != 1 {
		t.Fatal("paused viewer must not step")
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	if e.Generation() != 2 {
		t.Fatal("n should single-step while paused")
	}

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	if e.Rules() != life.Presets[1].Rules {
		t.Fatalf("p should cycle to %s, got %s", life.Presets[1].Rules, e.Rules())
	}

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	if alive, dying := e.Population(); alive != 0 || dying != 0 {
		t.Fatal("c should clear the grid")
	}

	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestResizeReconfigures(t *testing.T) {
	v, e, screen := newTestViewer(t, 20, 11)
	e.Toggle(0, 0)
	screen.SetSize(30, 8)
	v.HandleEvent(tcell.NewEventResize(30, 8))
	if s := e.Size(); s.W != 15 || s.H != 7 {
		t.Fatalf("grid = %+v, want 15x7", s)
	}
	if c, _ := e.Query(0, 0); c.State != life.Dead {
		t.Fatal("resizing should restart the automaton")
	}
	v.Tick(16 * time.Millisecond)
	if e.Generation() != 1 {
		t.Fatalf("first tick after a resize should step, generation = %d", e.Generation())
	}
}

func TestGlyphShading(t *testing.T) {
	cases := map[uint8]rune{0: ' ', 1: '░', 100: '▒', 200: '▓', 255: '█'}
	for v, want := range cases {
		if got := Glyph(v); got != want {
			t.Fatalf("Glyph(%d) = %q, want %q", v, got, want)
		}
	}
}
