package mcpi

import (
	"image/color"
	"math"
	"strconv"

	"mcpi/hal"
	"mcpi/sparkos/montecarlo"

	"tinygo.org/x/tinyfont"
)

const (
	chartMinY = 2.9
	chartMaxY = 3.4

	dashOn  = 10
	dashOff = 5
)

// chart plots a run's EstimateSeries against a dashed reference line at π.
type chart struct {
	fb   hal.Framebuffer
	d    *fbDisplayer
	font tinyfont.Fonter
	area rect
}

// plotArea is the region inside the axes.
func (c *chart) plotArea() rect {
	top := c.area.y + lineHeight + 2
	left := c.area.x + 20
	return rect{x: left, y: top, w: c.area.x + c.area.w - left, h: c.area.y + c.area.h - top - lineHeight}
}

// mapY maps an estimate to a pixel row, clamped to the plot area.
func (c *chart) mapY(v float64) int {
	pa := c.plotArea()
	f := (chartMaxY - v) / (chartMaxY - chartMinY)
	y := pa.y + int(math.Round(f*float64(pa.h-1)))
	return clampInt(y, pa.y, pa.y+pa.h-1)
}

// mapX maps a sample index to a pixel column for an axis spanning [0, xmax].
func (c *chart) mapX(idx, xmax int) int {
	pa := c.plotArea()
	if xmax <= 0 {
		return pa.x
	}
	x := pa.x + int(math.Round(float64(idx)/float64(xmax)*float64(pa.w-1)))
	return clampInt(x, pa.x, pa.x+pa.w-1)
}

func (c *chart) draw(v montecarlo.View) {
	if c.fb == nil || c.area.empty() {
		return
	}
	fillRect(c.fb, c.area, px(colBackground))
	c.text(c.area.x, c.area.y, "Convergence of pi", colWhite)

	pa := c.plotArea()
	if pa.empty() {
		return
	}
	c.text(c.area.x, pa.y, "3.4", colMuted)
	c.text(c.area.x, pa.y+pa.h-lineHeight, "2.9", colMuted)
	strokeRect(c.fb, rect{pa.x - 1, pa.y - 1, pa.w + 2, pa.h + 2}, 1, px(colGrid))

	if len(v.Series) == 0 {
		c.text(pa.x+2, pa.y+pa.h/2, "no series", colMuted)
		return
	}

	// The x axis spans len(series) * interval, so the last entry sits just
	// short of the right edge.
	xmax := len(v.Series) * v.Interval()
	c.text(pa.x, pa.y+pa.h+1, "0", colMuted)
	label := strconv.Itoa(xmax)
	c.text(pa.x+pa.w-charWidth*len(label), pa.y+pa.h+1, label, colMuted)

	piY := c.mapY(math.Pi)
	line(c.fb, pa, pa.x, piY, pa.x+pa.w-1, piY, px(colInside), func(step int) bool {
		return step%(dashOn+dashOff) >= dashOn
	})

	prevX, prevY := c.mapX(v.Series[0].Index, xmax), c.mapY(v.Series[0].Value)
	hal.PutPixel(c.fb, prevX, prevY, px(colEstimate))
	for _, p := range v.Series[1:] {
		x, y := c.mapX(p.Index, xmax), c.mapY(p.Value)
		line(c.fb, pa, prevX, prevY, x, y, px(colEstimate), nil)
		prevX, prevY = x, y
	}
}

func (c *chart) text(x, y int, s string, col color.RGBA) {
	if c.font == nil {
		return
	}
	tinyfont.WriteLine(c.d, c.font, int16(x), int16(y+fontAscent), s, col)
}
