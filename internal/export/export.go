// Package export renders a finished run to PNG.
package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"mcpi/sparkos/montecarlo"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultSize is the side of exported images.
const DefaultSize = 12 * vg.Centimeter

var (
	insideColor   = color.RGBA{R: 0xFF, G: 0x7F, B: 0x7F, A: 0xFF}
	outsideColor  = color.RGBA{R: 0x7F, G: 0x7F, B: 0xFF, A: 0xFF}
	estimateColor = color.RGBA{R: 0x2E, G: 0xA0, B: 0x43, A: 0xFF}
)

// ScatterPlot plots v's samples in the unit square with y pointing up, so
// the quarter circle is centred on the origin.
func ScatterPlot(v montecarlo.View) (*hplot.Plot, error) {
	in := make(plotter.XYs, 0, v.Inside)
	out := make(plotter.XYs, 0, v.Outside())
	for _, s := range v.Samples {
		pt := plotter.XY{X: s.X, Y: 1 - s.Y}
		if s.Inside {
			in = append(in, pt)
		} else {
			out = append(out, pt)
		}
	}

	p := hplot.New()
	p.Title.Text = fmt.Sprintf("n = %d, pi ~ %s", v.Total, montecarlo.FormatEstimate(v.Inside, v.Total))
	p.X.Label.Text = "x"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Label.Text = "y"
	p.Y.Min, p.Y.Max = 0, 1

	radius := vg.Points(markerRadius(v.Total))
	sin, err := hplot.NewScatter(in)
	if err != nil {
		return nil, fmt.Errorf("export: inside points: %w", err)
	}
	sin.Color = insideColor
	sin.Radius = radius
	sin.Shape = draw.CircleGlyph{}

	sout, err := hplot.NewScatter(out)
	if err != nil {
		return nil, fmt.Errorf("export: outside points: %w", err)
	}
	sout.Color = outsideColor
	sout.Radius = radius
	sout.Shape = draw.CircleGlyph{}

	arc := plotter.NewFunction(func(x float64) float64 {
		return math.Sqrt(math.Max(0, 1-x*x))
	})
	arc.XMin, arc.XMax = 0, 1
	arc.Samples = 200
	arc.Width = vg.Points(1)

	p.Add(sin, sout, arc, hplot.NewGrid())
	return p, nil
}

// ConvergencePlot plots v's EstimateSeries against a dashed line at π.
func ConvergencePlot(v montecarlo.View) (*hplot.Plot, error) {
	xmax := float64(len(v.Series) * v.Interval())
	if xmax <= 0 {
		xmax = 1
	}

	p := hplot.New()
	p.Title.Text = "Convergence of pi"
	p.X.Label.Text = "samples"
	p.X.Min, p.X.Max = 0, xmax
	p.Y.Label.Text = "estimate"
	p.Y.Min, p.Y.Max = 2.9, 3.4

	ref := plotter.NewFunction(func(float64) float64 { return math.Pi })
	ref.XMin, ref.XMax = 0, xmax
	ref.Color = insideColor
	ref.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(ref, hplot.NewGrid())

	if len(v.Series) == 0 {
		return p, nil
	}
	xys := make(plotter.XYs, len(v.Series))
	for i, pt := range v.Series {
		xys[i] = plotter.XY{X: float64(pt.Index), Y: pt.Value}
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("export: series: %w", err)
	}
	l.Color = estimateColor
	l.Width = vg.Points(1.5)
	p.Add(l)
	return p, nil
}

// WriteScatter renders ScatterPlot as a size x size PNG.
func WriteScatter(w io.Writer, v montecarlo.View, size vg.Length) error {
	p, err := ScatterPlot(v)
	if err != nil {
		return err
	}
	return writePNG(w, p, size)
}

// WriteConvergence renders ConvergencePlot as a size x size PNG.
func WriteConvergence(w io.Writer, v montecarlo.View, size vg.Length) error {
	p, err := ConvergencePlot(v)
	if err != nil {
		return err
	}
	return writePNG(w, p, size)
}

// SaveScatter writes the scatter PNG to path.
func SaveScatter(path string, v montecarlo.View) error {
	return saveFile(path, func(w io.Writer) error { return WriteScatter(w, v, DefaultSize) })
}

// SaveConvergence writes the convergence PNG to path.
func SaveConvergence(path string, v montecarlo.View) error {
	return saveFile(path, func(w io.Writer) error { return WriteConvergence(w, v, DefaultSize) })
}

func writePNG(w io.Writer, p *hplot.Plot, size vg.Length) error {
	if size <= 0 {
		size = DefaultSize
	}
	canvas := vgimg.PngCanvas{Canvas: vgimg.New(size, size)}
	p.Draw(draw.New(canvas))
	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("export: png: %w", err)
	}
	return nil
}

func saveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Export markers follow the canvas radius rule with a smaller k, since a
// printed plot packs the unit square into far fewer points than the canvas
// has pixels. The result is in points.
const (
	markerK     = 400
	markerScale = 0.5
)

// markerRadius shrinks markers as the sample count grows, in points.
func markerRadius(n int) float64 {
	return montecarlo.PointRadius(markerK, n) * markerScale
}
