package mcpi

const (
	margin     = 10
	lineHeight = 10
	// fontAscent is the distance from a line's top to the proggy baseline.
	fontAscent = 7
	charWidth  = 6
)

type layout struct {
	canvas rect
	panel  rect
	chart  rect
}

// computeLayout places the square canvas on the left and splits the column
// to its right between the stats panel and the chart.
func computeLayout(w, h int) layout {
	side := h - 2*margin
	if maxSide := w * 3 / 5; side > maxSide {
		side = maxSide
	}
	if side < 0 {
		side = 0
	}
	var l layout
	l.canvas = rect{x: margin, y: margin, w: side, h: side}

	colX := l.canvas.x + side + margin
	colW := w - colX - margin
	if colW < 0 {
		colW = 0
	}
	panelH := panelLines*lineHeight + 4
	if panelH > h-2*margin {
		panelH = h - 2*margin
	}
	l.panel = rect{x: colX, y: margin, w: colW, h: panelH}

	chartY := l.panel.y + panelH + margin/2
	l.chart = rect{x: colX, y: chartY, w: colW, h: h - margin - chartY}
	return l
}
