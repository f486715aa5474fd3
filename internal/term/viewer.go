// Package term draws a simulation in a terminal using tcell. Each cell takes
// two columns so the grid looks square; the last row holds a status line.
package term

import (
	"fmt"
	"strings"
	"time"

	"fade-life/pkg/core"
	"fade-life/pkg/sims/life"

	"github.com/gdamore/tcell/v2"
)

type ruleCycler interface {
	Rules() life.Rules
	SetRuleSet(life.Rules)
}

var (
	styleAlive  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x3c, 0xb3, 0x5a)).Background(tcell.ColorBlack)
	styleDying  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xce, 0xac, 0x5c)).Background(tcell.ColorBlack)
	styleDead   = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// Viewer binds a sim to a tcell screen.
type Viewer struct {
	screen tcell.Screen
	sim    core.Sim
	pacer  *core.FixedStep
	seed   int64

	paused  bool
	pressed bool
}

// NewViewer creates a viewer that advances one generation per interval.
func NewViewer(screen tcell.Screen, sim core.Sim, interval time.Duration, seed int64) *Viewer {
	return &Viewer{screen: screen, sim: sim, pacer: core.NewFixedStep(interval), seed: seed}
}

// Paused reports whether generations are suspended.
func (v *Viewer) Paused() bool { return v.paused }

// Fit rebuilds the grid to fill the screen when the sim supports resizing.
func (v *Viewer) Fit() {
	r, ok := v.sim.(core.Resizable)
	if !ok {
		return
	}
	w, h := v.screen.Size()
	want := core.Size{W: max(w/2, 1), H: max(h-1, 1)}
	if want == v.sim.Size() {
		return
	}
	if err := r.Configure(want.W, want.H); err == nil {
		v.pacer.Reset()
	}
}

// Tick fades dying cells by frame and advances a generation when due.
func (v *Viewer) Tick(frame time.Duration) {
	if v.paused {
		return
	}
	fader, fades := v.sim.(core.Fader)
	if fades {
		fader.Fade(frame.Seconds())
	}
	if !v.pacer.Advance(frame) {
		return
	}
	if fades {
		v.sim.Step(0)
		return
	}
	v.sim.Step(v.pacer.Interval().Seconds())
}

// HandleEvent applies a key, mouse or resize event. It reports true when the
// user asked to quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.Fit()
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !v.pressed {
			if ed, ok := v.sim.(core.Editable); ok {
				x, y := ev.Position()
				ed.Toggle(x/2, y)
			}
		}
		v.pressed = down
	}
	return false
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		v.paused = !v.paused
	case 'n':
		v.sim.Step(v.pacer.Interval().Seconds())
	case 'c':
		if ed, ok := v.sim.(core.Editable); ok {
			ed.Clear()
		}
	case 'r':
		v.sim.Reset(v.seed)
		v.pacer.Reset()
	case 'p':
		if rc, ok := v.sim.(ruleCycler); ok {
			rc.SetRuleSet(life.NextPreset(rc.Rules()).Rules)
		}
	case '+':
		v.pacer.SetInterval(min(v.pacer.Interval()*2, 2*time.Second))
	case '-':
		v.pacer.SetInterval(max(v.pacer.Interval()/2, 20*time.Millisecond))
	}
	return false
}

// Glyph returns the rune used for a cell intensity.
func Glyph(v uint8) rune {
	switch {
	case v == 255:
		return '█'
	case v >= 170:
		return '▓'
	case v >= 85:
		return '▒'
	case v > 0:
		return '░'
	}
	return ' '
}

// Draw paints the grid and the status line into the screen's back buffer.
func (v *Viewer) Draw() {
	sw, sh := v.screen.Size()
	size := v.sim.Size()
	cells := v.sim.Cells()
	for y := 0; y < size.H && y < sh-1; y++ {
		for x := 0; x < size.W && 2*x+1 < sw; x++ {
			val := cells[y*size.W+x]
			style := styleDead
			switch {
			case val == 255:
				style = styleAlive
			case val > 0:
				style = styleDying
			}
			r := Glyph(val)
			v.screen.SetContent(2*x, y, r, nil, style)
			v.screen.SetContent(2*x+1, y, r, nil, style)
		}
	}
	v.drawStatus(sw, sh-1)
}

func (v *Viewer) drawStatus(width, row int) {
	if row < 0 {
		return
	}
	line := []rune(v.status())
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		v.screen.SetContent(x, row, r, nil, styleStatus)
	}
}

func (v *Viewer) status() string {
	var b strings.Builder
	b.WriteString(v.sim.Name())
	if p, ok := v.sim.(core.ParameterProvider); ok {
		snap := p.Parameters()
		for _, item := range []struct{ key, label string }{
			{"rule", ""},
			{"generation", "gen "},
			{"alive", "alive "},
			{"dying", "dying "},
		} {
			if param, ok := snap.Lookup(item.key); ok {
				fmt.Fprintf(&b, "  %s%s", item.label, param.Value)
			}
		}
	}
	state := "running"
	if v.paused {
		state = "paused"
	}
	fmt.Fprintf(&b, "  %s %v  [space n c r p +/- q]", state, v.pacer.Interval())
	return b.String()
}

// Run drives the viewer until the user quits. Frames are drawn at fps.
func (v *Viewer) Run(fps int) error {
	if fps <= 0 {
		fps = 30
	}
	frame := time.Second / time.Duration(fps)
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	v.Draw()
	v.screen.Show()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Tick(frame)
		}
		v.Draw()
		v.screen.Show()
	}
}
