package mcpi

import (
	"image/color"

	"mcpi/hal"

	"tinygo.org/x/drivers"
)

// fbDisplayer adapts a hal.Framebuffer to drivers.Displayer so tinyfont can
// draw into it.
type fbDisplayer struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplayer)(nil)

func (d *fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	hal.PutPixel(d.fb, int(x), int(y), hal.RGB565(c.R, c.G, c.B))
}

func (d *fbDisplayer) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	fillRect(d.fb, rect{x: int(x), y: int(y), w: int(width), h: int(height)}, hal.RGB565(c.R, c.G, c.B))
	return nil
}
