package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"mcpi/hal"
	"mcpi/sparkos/kernel"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	panicLineHeight = 10
	panicAscent     = 7
	panicCharWidth  = 6
)

// installPanicHandler logs a task panic with its stack, paints it over the
// framebuffer and reports it through fail so the frame loop can stop.
func installPanicHandler(h hal.HAL, k *kernel.Kernel, fail func(error)) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}
		if disp := h.Display(); disp != nil {
			drawPanic(disp.Framebuffer(), lines)
		}
		if fail != nil {
			fail(fmt.Errorf("mcpi: %w", info))
		}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"mcpi panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func drawPanic(fb hal.Framebuffer, lines []string) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	fb.ClearRGB(255, 255, 255)

	d := panicDisplay{fb: fb}
	font := &proggy.TinySZ8pt7b
	fg := color.RGBA{A: 255}

	cols := fb.Width() / panicCharWidth
	if cols <= 0 {
		cols = 1
	}
	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+panicLineHeight > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 0, int16(y+panicAscent), chunk, fg)
			y += panicLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	hal.PutPixel(d.fb, int(x), int(y), hal.RGB565(c.R, c.G, c.B))
}

func (d panicDisplay) Display() error { return d.fb.Present() }

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
