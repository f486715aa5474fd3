package render

import (
	"image"
	"image/color"
)

// Palette maps cell intensities to colors. Intensity 0 is Off, 255 is On and
// values in between blend the two.
type Palette struct {
	On  color.RGBA
	Off color.RGBA
}

// DefaultPalette draws dark green cells on a parchment background.
var DefaultPalette = Palette{
	On:  color.RGBA{R: 0x03, G: 0x4f, B: 0x1b, A: 0xff},
	Off: color.RGBA{R: 0xf4, G: 0xec, B: 0xd8, A: 0xff},
}

// At returns the color for an intensity value.
func (p Palette) At(v uint8) color.RGBA {
	switch v {
	case 0:
		return p.Off
	case 255:
		return p.On
	}
	return color.RGBA{
		R: blend(p.Off.R, p.On.R, v),
		G: blend(p.Off.G, p.On.G, v),
		B: blend(p.Off.B, p.On.B, v),
		A: blend(p.Off.A, p.On.A, v),
	}
}

func blend(off, on, v uint8) uint8 {
	return uint8((int(off)*(255-int(v)) + int(on)*int(v) + 127) / 255)
}

// FillRGBA converts intensity cell data into RGBA pixels in buf, one pixel
// per cell.
func FillRGBA(buf []byte, cells []uint8, p Palette) {
	for i, c := range cells {
		col := p.At(c)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Frame renders cells of a w*h grid into a new image, each cell drawn as a
// scale*scale block.
func Frame(cells []uint8, w, h, scale int, p Palette) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	if len(cells) != w*h {
		return img
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := p.At(cells[y*w+x])
			for dy := 0; dy < scale; dy++ {
				row := img.Pix[(y*scale+dy)*img.Stride:]
				for dx := 0; dx < scale; dx++ {
					base := (x*scale + dx) * 4
					row[base+0] = col.R
					row[base+1] = col.G
					row[base+2] = col.B
					row[base+3] = col.A
				}
			}
		}
	}
	return img
}
