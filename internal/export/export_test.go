package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"mcpi/sparkos/montecarlo"

	"gonum.org/v1/plot/vg"
)

func seededRun(t *testing.T, n int) montecarlo.View {
	t.Helper()
	c := montecarlo.NewController(nil, montecarlo.NewSeededGenerator(5), nil, montecarlo.Options{BatchSeries: true})
	c.Start(n, montecarlo.ModeInstant)
	return c.View()
}

func TestWriteScatter(t *testing.T) {
	v := seededRun(t, 500)
	var buf bytes.Buffer
	if err := WriteScatter(&buf, v, 5*vg.Centimeter); err != nil {
		t.Fatalf("WriteScatter() error = %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("png.DecodeConfig() error = %v", err)
	}
	if cfg.Width == 0 || cfg.Width != cfg.Height {
		t.Fatalf("image = %dx%d, want square", cfg.Width, cfg.Height)
	}
}

func TestScatterPlotSplitsSamples(t *testing.T) {
	v := seededRun(t, 200)
	p, err := ScatterPlot(v)
	if err != nil {
		t.Fatalf("ScatterPlot() error = %v", err)
	}
	if p.X.Min != 0 || p.X.Max != 1 || p.Y.Min != 0 || p.Y.Max != 1 {
		t.Fatalf("axes = [%v,%v]x[%v,%v], want unit square", p.X.Min, p.X.Max, p.Y.Min, p.Y.Max)
	}
}

func TestMarkerRadius(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{10, 2.5},
		{100, 2},
		{400, 0.5},
		{100000, 0.5},
	}
	for _, tt := range tests {
		if got := markerRadius(tt.n); got != tt.want {
			t.Fatalf("markerRadius(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestWriteConvergence(t *testing.T) {
	v := seededRun(t, 1000)
	if len(v.Series) != 50 {
		t.Fatalf("len(Series) = %d, want 50", len(v.Series))
	}
	p, err := ConvergencePlot(v)
	if err != nil {
		t.Fatalf("ConvergencePlot() error = %v", err)
	}
	if p.X.Max != 1000 {
		t.Fatalf("X.Max = %v, want 1000", p.X.Max)
	}
	if p.Y.Min != 2.9 || p.Y.Max != 3.4 {
		t.Fatalf("Y = [%v,%v], want [2.9,3.4]", p.Y.Min, p.Y.Max)
	}

	var buf bytes.Buffer
	if err := WriteConvergence(&buf, v, 0); err != nil {
		t.Fatalf("WriteConvergence() error = %v", err)
	}
	if _, err := png.DecodeConfig(&buf); err != nil {
		t.Fatalf("png.DecodeConfig() error = %v", err)
	}
}

func TestWriteConvergenceEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteConvergence(&buf, montecarlo.View{}, 4*vg.Centimeter); err != nil {
		t.Fatalf("WriteConvergence(empty) error = %v", err)
	}
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()
	v := seededRun(t, 100)

	chart := filepath.Join(dir, "chart.png")
	scatter := filepath.Join(dir, "scatter.png")
	if err := SaveConvergence(chart, v); err != nil {
		t.Fatalf("SaveConvergence() error = %v", err)
	}
	if err := SaveScatter(scatter, v); err != nil {
		t.Fatalf("SaveScatter() error = %v", err)
	}
	for _, path := range []string{chart, scatter} {
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if fi.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}

	if err := SaveScatter(filepath.Join(dir, "missing", "x.png"), v); err == nil {
		t.Fatal("SaveScatter(bad dir) error = nil")
	}
}
