package mcpi

import (
	"fmt"
	"image/color"

	"mcpi/hal"
	"mcpi/sparkos/montecarlo"

	"tinygo.org/x/tinyfont"
)

const panelLines = 11

type panelLine struct {
	text string
	col  color.RGBA
}

// panelText lays out the stats panel for a view and the pending count input.
func panelText(v montecarlo.View, mode montecarlo.Mode, input string) []panelLine {
	est := montecarlo.FormatEstimate(v.Inside, v.Total)
	diff, diffText := montecarlo.Difference(v.Inside, v.Total)

	diffCol := colInside
	switch montecarlo.AccuracyOf(diff) {
	case montecarlo.AccuracyGood:
		diffCol = colEstimate
	case montecarlo.AccuracyFair:
		diffCol = colFair
	}

	field := input
	if field == "" {
		field = fmt.Sprintf("(%d)", montecarlo.DefaultCount)
	}
	state := "idle"
	if v.Running {
		state = fmt.Sprintf("running %d/%d", v.Total, v.Count)
	}

	return []panelLine{
		{fmt.Sprintf("Total:   %d", v.Total), colWhite},
		{fmt.Sprintf("Inside:  %d", v.Inside), colInside},
		{fmt.Sprintf("Outside: %d", v.Outside()), colOutside},
		{"Pi ~ " + est, colEstimate},
		{fmt.Sprintf("4*%d/%d", v.Inside, v.Total), colMuted},
		{"Diff: " + diffText, diffCol},
		{"Mode: " + mode.String(), colWhite},
		{"n: " + field + "_", colWhite},
		{state, colMuted},
		{"Enter run  Tab mode", colMuted},
		{"Esc stop", colMuted},
	}
}

type panel struct {
	fb   hal.Framebuffer
	d    *fbDisplayer
	font tinyfont.Fonter
	area rect
}

func (p *panel) draw(lines []panelLine) {
	if p.fb == nil || p.area.empty() {
		return
	}
	fillRect(p.fb, p.area, px(colBackground))
	if p.font == nil {
		return
	}
	maxChars := p.area.w / charWidth
	for i, l := range lines {
		y := p.area.y + i*lineHeight
		if y+lineHeight > p.area.y+p.area.h {
			return
		}
		text := l.text
		if maxChars > 0 && len(text) > maxChars {
			text = text[:maxChars]
		}
		tinyfont.WriteLine(p.d, p.font, int16(p.area.x), int16(y+fontAscent), text, l.col)
	}
}
