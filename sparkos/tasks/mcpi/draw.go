package mcpi

import (
	"image/color"
	"math"

	"mcpi/hal"
)

type rect struct {
	x, y, w, h int
}

func (r rect) empty() bool { return r.w <= 0 || r.h <= 0 }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

var (
	colBackground = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xFF}
	colWhite      = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colMuted      = color.RGBA{R: 0x9C, G: 0xA3, B: 0xAF, A: 0xFF}
	colInside     = color.RGBA{R: 0xFF, G: 0x7F, B: 0x7F, A: 0xFF}
	colOutside    = color.RGBA{R: 0x7F, G: 0x7F, B: 0xFF, A: 0xFF}
	colEstimate   = color.RGBA{R: 0x7F, G: 0xFF, B: 0x7F, A: 0xFF}
	colFair       = color.RGBA{R: 0xFF, G: 0xFF, B: 0x7F, A: 0xFF}
	colGrid       = color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xFF}
)

func px(c color.RGBA) uint16 { return hal.RGB565(c.R, c.G, c.B) }

func fillRect(fb hal.Framebuffer, r rect, pixel uint16) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := fb.Buffer()
	if buf == nil {
		return
	}
	x0 := clampInt(r.x, 0, fb.Width())
	y0 := clampInt(r.y, 0, fb.Height())
	x1 := clampInt(r.x+r.w, 0, fb.Width())
	y1 := clampInt(r.y+r.h, 0, fb.Height())
	if x0 >= x1 || y0 >= y1 {
		return
	}

	lo := byte(pixel)
	hi := byte(pixel >> 8)
	stride := fb.StrideBytes()
	for y := y0; y < y1; y++ {
		row := y * stride
		for x := x0; x < x1; x++ {
			off := row + x*2
			if off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// strokeRect draws a border of the given width inside r.
func strokeRect(fb hal.Framebuffer, r rect, width int, pixel uint16) {
	fillRect(fb, rect{r.x, r.y, r.w, width}, pixel)
	fillRect(fb, rect{r.x, r.y + r.h - width, r.w, width}, pixel)
	fillRect(fb, rect{r.x, r.y, width, r.h}, pixel)
	fillRect(fb, rect{r.x + r.w - width, r.y, width, r.h}, pixel)
}

// fillCircle fills every pixel whose centre lies within radius of (cx, cy),
// clipped to clip.
func fillCircle(fb hal.Framebuffer, clip rect, cx, cy, radius float64, pixel uint16) {
	r2 := radius * radius
	x0 := int(math.Floor(cx - radius))
	x1 := int(math.Ceil(cx + radius))
	y0 := int(math.Floor(cy - radius))
	y1 := int(math.Ceil(cy + radius))
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy > r2 || !clip.contains(x, y) {
				continue
			}
			hal.PutPixel(fb, x, y, pixel)
		}
	}
}

// line draws a 1px Bresenham segment, clipped to clip. Pixels for which
// skip returns true are left untouched, which is how dashes are drawn.
func line(fb hal.Framebuffer, clip rect, x0, y0, x1, y1 int, pixel uint16, skip func(step int) bool) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for step := 0; ; step++ {
		if clip.contains(x0, y0) && (skip == nil || !skip(step)) {
			hal.PutPixel(fb, x0, y0, pixel)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// quarterArc strokes the quarter circle of radius r centred on (cx, cy) that
// spans from straight up to straight right.
func quarterArc(fb hal.Framebuffer, clip rect, cx, cy, r, width int, pixel uint16) {
	for w := 0; w < width; w++ {
		rr := r - w
		if rr <= 0 {
			return
		}
		// Walk both axes so steep and shallow parts have no gaps.
		for i := 0; i <= rr; i++ {
			j := int(math.Round(math.Sqrt(float64(rr*rr - i*i))))
			if clip.contains(cx+i, cy-j) {
				hal.PutPixel(fb, cx+i, cy-j, pixel)
			}
			if clip.contains(cx+j, cy-i) {
				hal.PutPixel(fb, cx+j, cy-i, pixel)
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
