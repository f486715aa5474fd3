//go:build ebiten

package ui

import (
	"image/color"

	"fade-life/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws grid lines and the hovered cell on top of the simulation.
// Grid lines always show while the simulation is paused.
type Overlay struct {
	cellSize int
	showGrid bool

	hoverX, hoverY int
	hovering       bool

	pixel *ebiten.Image
}

var (
	gridColor  = color.NRGBA{R: 0xce, G: 0xac, B: 0x5c, A: 0x4d}
	hoverColor = color.NRGBA{R: 0xce, G: 0xac, B: 0x5c, A: 0xc0}
)

// NewOverlay constructs a new overlay instance.
func NewOverlay(cellSize int) *Overlay {
	o := &Overlay{cellSize: cellSize}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update tracks the hovered cell and the grid toggle key.
func (o *Overlay) Update(size core.Size) {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
	mx, my := ebiten.CursorPosition()
	o.hoverX, o.hoverY = core.CellAt(mx, my, o.cellSize)
	o.hovering = o.hoverX >= 0 && o.hoverX < size.W && o.hoverY >= 0 && o.hoverY < size.H
}

// Draw paints the overlay for a grid of the given size.
func (o *Overlay) Draw(screen *ebiten.Image, size core.Size, paused bool) {
	cs := o.cellSize
	if paused || o.showGrid {
		w, h := size.W*cs, size.H*cs
		for x := 0; x <= size.W; x++ {
			o.rect(screen, x*cs, 0, 1, h, gridColor)
		}
		for y := 0; y <= size.H; y++ {
			o.rect(screen, 0, y*cs, w, 1, gridColor)
		}
	}
	if o.hovering {
		x, y := o.hoverX*cs, o.hoverY*cs
		o.rect(screen, x, y, cs, 1, hoverColor)
		o.rect(screen, x, y+cs-1, cs, 1, hoverColor)
		o.rect(screen, x, y, 1, cs, hoverColor)
		o.rect(screen, x+cs-1, y, 1, cs, hoverColor)
	}
}

func (o *Overlay) rect(dst *ebiten.Image, x, y, w, h int, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(o.pixel, op)
}
