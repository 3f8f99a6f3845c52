package mcpi

import (
	"mcpi/hal"
	"mcpi/sparkos/montecarlo"
)

const (
	frameWidth = 2
	arcWidth   = 1
)

// canvasRenderer draws samples onto a square region of the framebuffer.
//
// The quarter arc is anchored at the region's bottom-left corner, the same
// corner montecarlo.InQuarterDisc measures from.
type canvasRenderer struct {
	fb   hal.Framebuffer
	area rect
}

var _ montecarlo.Renderer = (*canvasRenderer)(nil)

func (c *canvasRenderer) Reset(montecarlo.DrawParams) {
	if c.fb == nil || c.area.empty() {
		return
	}
	fillRect(c.fb, c.area, px(colBackground))
	c.decorate()
}

func (c *canvasRenderer) DrawSamples(samples []montecarlo.Sample, p montecarlo.DrawParams) {
	if c.fb == nil || c.area.empty() {
		return
	}
	fillRect(c.fb, c.area, px(colBackground))
	for _, s := range samples {
		c.plot(s, p.Radius)
	}
	c.decorate()
	_ = c.fb.Present()
}

func (c *canvasRenderer) DrawSample(s montecarlo.Sample, p montecarlo.DrawParams) {
	if c.fb == nil || c.area.empty() {
		return
	}
	c.plot(s, p.Radius)
	c.decorate()
	_ = c.fb.Present()
}

// project maps unit-square coordinates to framebuffer pixels (y down).
func (c *canvasRenderer) project(x, y float64) (float64, float64) {
	side := float64(c.area.w)
	return float64(c.area.x) + x*side, float64(c.area.y) + y*side
}

func (c *canvasRenderer) plot(s montecarlo.Sample, radius float64) {
	col := colOutside
	if s.Inside {
		col = colInside
	}
	cx, cy := c.project(s.X, s.Y)
	fillCircle(c.fb, c.area, cx, cy, radius, px(col))
}

func (c *canvasRenderer) decorate() {
	white := px(colWhite)
	quarterArc(c.fb, c.area, c.area.x, c.area.y+c.area.h, c.area.w, arcWidth, white)
	strokeRect(c.fb, c.area, frameWidth, white)
}
