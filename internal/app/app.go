//go:build ebiten

package app

import (
	"fmt"
	"time"

	"fade-life/internal/render"
	"fade-life/internal/ui"
	"fade-life/pkg/core"
	"fade-life/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	minInterval = 20 * time.Millisecond
	maxInterval = 2 * time.Second
)

type ruleCycler interface {
	Rules() life.Rules
	SetRuleSet(life.Rules)
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	cfg     *Config
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pacer   *core.FixedStep
	palette render.Palette

	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		cfg:     cfg,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(cfg.CellSize),
		hud:     ui.NewHUD(sim, cfg.HUDWidth),
		pacer:   core.NewFixedStep(cfg.Interval),
		palette: render.DefaultPalette,
		seed:    cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.pacer.Reset()
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.handleClick()

	size := g.sim.Size()
	g.overlay.Update(size)
	g.hud.Update(size.W * g.cfg.CellSize)

	switch {
	case g.tickOnce:
		g.sim.Step(g.pacer.Interval().Seconds())
		g.tickOnce = false
	case !g.paused:
		g.advance(g.frameDelta())
	}
	g.hud.SetStatus(g.status()...)
	return nil
}

func (g *Game) frameDelta() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = g.cfg.TPS
	}
	if tps <= 0 {
		tps = 60
	}
	return time.Second / time.Duration(tps)
}

// advance fades dying cells every frame and steps a generation whenever the
// pacer fires.
func (g *Game) advance(frame time.Duration) {
	fader, fades := g.sim.(core.Fader)
	if fades {
		fader.Fade(frame.Seconds())
	}
	if !g.pacer.Advance(frame) {
		return
	}
	if fades {
		g.sim.Step(0)
		return
	}
	g.sim.Step(g.pacer.Interval().Seconds())
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if ed, ok := g.sim.(core.Editable); ok {
			ed.Clear()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if rc, ok := g.sim.(ruleCycler); ok {
			rc.SetRuleSet(life.NextPreset(rc.Rules()).Rules)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.setInterval(g.pacer.Interval() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.setInterval(g.pacer.Interval() / 2)
	}
}

func (g *Game) setInterval(d time.Duration) {
	if d < minInterval {
		d = minInterval
	}
	if d > maxInterval {
		d = maxInterval
	}
	g.pacer.SetInterval(d)
}

func (g *Game) handleClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	ed, ok := g.sim.(core.Editable)
	if !ok {
		return
	}
	mx, my := ebiten.CursorPosition()
	// Clicks on the HUD land outside the grid and are ignored by Toggle.
	ed.Toggle(core.CellAt(mx, my, g.cfg.CellSize))
}

func (g *Game) status() []string {
	state := "running"
	if g.paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("%s, every %v", state, g.pacer.Interval()),
		fmt.Sprintf("seed %d", g.seed),
		"space pause  n step",
		"c clear  r/s reseed",
		"p rules  +/- speed",
		"g grid  q quit",
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	size := g.sim.Size()
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.cfg.CellSize)
	g.overlay.Draw(screen, size, g.paused)
	g.hud.Draw(screen, size.W*g.cfg.CellSize, g.cfg.CellSize)
}

// Layout returns the logical screen size. When resizing is enabled a window
// size change rebuilds the grid to fill the new viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if r, ok := g.sim.(core.Resizable); ok && g.cfg.Resizable {
		want := core.FitGrid(outsideWidth-g.cfg.HUDWidth, outsideHeight, g.cfg.CellSize)
		if want != g.sim.Size() {
			if err := r.Configure(want.W, want.H); err == nil {
				g.painter = render.NewGridPainter(want.W, want.H)
				g.pacer.Reset()
			}
		}
	}
	s := g.sim.Size()
	return s.W*g.cfg.CellSize + g.cfg.HUDWidth, s.H * g.cfg.CellSize
}
