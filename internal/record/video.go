package record

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"fade-life/internal/render"
	"fade-life/pkg/core"

	"github.com/icza/mjpeg"
)

// Video writes grid frames into an MJPEG AVI file.
type Video struct {
	aw      mjpeg.AviWriter
	size    core.Size
	scale   int
	palette render.Palette
	frames  int
	buf     bytes.Buffer
}

// NewVideo creates path and prepares it for frames of a grid of the given
// size, each cell drawn as a scale*scale block.
func NewVideo(path string, size core.Size, scale, fps int) (*Video, error) {
	if scale <= 0 {
		scale = 1
	}
	if fps <= 0 {
		fps = 10
	}
	aw, err := mjpeg.New(path, int32(size.W*scale), int32(size.H*scale), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("record: create video %s: %w", path, err)
	}
	return &Video{aw: aw, size: size, scale: scale, palette: render.DefaultPalette}, nil
}

// AddFrame encodes one intensity buffer as a JPEG frame.
func (v *Video) AddFrame(cells []uint8) error {
	if len(cells) != v.size.W*v.size.H {
		return fmt.Errorf("record: frame has %d cells, video expects %dx%d", len(cells), v.size.W, v.size.H)
	}
	img := render.Frame(cells, v.size.W, v.size.H, v.scale, v.palette)
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("record: encode frame: %w", err)
	}
	if err := v.aw.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("record: add frame: %w", err)
	}
	v.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (v *Video) Frames() int { return v.frames }

// Close finalizes the AVI index.
func (v *Video) Close() error {
	return v.aw.Close()
}
