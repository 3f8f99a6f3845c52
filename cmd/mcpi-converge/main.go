// Command mcpi-converge repeats batch runs at growing sample counts and
// reports how the spread of the π estimate shrinks.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"mcpi/sparkos/montecarlo"

	"github.com/cheggaaa/pb/v3"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/vg"
)

type row struct {
	n         int
	mean      float64
	stddev    float64
	estimates []float64
}

func main() {
	var (
		from   = flag.Int("from", 100, "Smallest sample count.")
		to     = flag.Int("to", 100000, "Largest sample count.")
		factor = flag.Int("factor", 10, "Growth factor between sample counts.")
		trials = flag.Int("trials", 50, "Runs per sample count.")
		seed   = flag.Uint64("seed", 0, "Base PRNG seed (0 = random).")
		hist   = flag.String("hist", "", "Write a histogram PNG of the largest count's estimates here.")
		quiet  = flag.Bool("q", false, "Hide the progress bar.")
	)
	flag.Parse()

	sizes, err := sampleSizes(*from, *to, *factor)
	if err != nil {
		fatalf("%v", err)
	}
	if *trials < 2 {
		fatalf("trials must be at least 2, got %d", *trials)
	}

	var bar *pb.ProgressBar
	progress := func() {}
	if !*quiet {
		bar = pb.StartNew(len(sizes) * *trials)
		progress = func() { bar.Increment() }
	}
	rows := study(sizes, *trials, generators(*seed), progress)
	if bar != nil {
		bar.Finish()
	}

	if err := writeTable(os.Stdout, rows); err != nil {
		fatalf("%v", err)
	}
	if *hist != "" {
		if err := saveHistogram(*hist, rows[len(rows)-1]); err != nil {
			fatalf("histogram: %v", err)
		}
	}
}

// sampleSizes returns from, from*factor, ... up to and including to.
func sampleSizes(from, to, factor int) ([]int, error) {
	if from <= 0 || to < from {
		return nil, fmt.Errorf("invalid range %d..%d", from, to)
	}
	if factor < 2 {
		return nil, fmt.Errorf("factor must be at least 2, got %d", factor)
	}
	var sizes []int
	for n := from; n <= to; n *= factor {
		sizes = append(sizes, n)
		if n > math.MaxInt/factor {
			break
		}
	}
	return sizes, nil
}

// generators returns a factory handing out one generator per trial. With a
// non-zero seed every trial gets its own reproducible stream.
func generators(seed uint64) func() *montecarlo.Generator {
	if seed == 0 {
		return montecarlo.NewGenerator
	}
	next := seed
	return func() *montecarlo.Generator {
		g := montecarlo.NewSeededGenerator(next)
		next++
		return g
	}
}

func study(sizes []int, trials int, newGen func() *montecarlo.Generator, progress func()) []row {
	rows := make([]row, 0, len(sizes))
	for _, n := range sizes {
		r := row{n: n, estimates: make([]float64, 0, trials)}
		for i := 0; i < trials; i++ {
			c := montecarlo.NewController(nil, newGen(), nil, montecarlo.Options{})
			c.Start(n, montecarlo.ModeInstant)
			v := c.View()
			r.estimates = append(r.estimates, 4*float64(v.Inside)/float64(v.Total))
			progress()
		}
		r.mean, r.stddev = stat.MeanStdDev(r.estimates, nil)
		rows = append(rows, r)
	}
	return rows
}

func writeTable(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "n\tmean\tstddev\t|mean-pi|\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\t\n", r.n, r.mean, r.stddev, math.Abs(r.mean-math.Pi))
	}
	return tw.Flush()
}

func saveHistogram(path string, r row) error {
	lo, hi := r.mean-4*r.stddev, r.mean+4*r.stddev
	if hi <= lo {
		lo, hi = r.mean-0.5, r.mean+0.5
	}
	h := hbook.NewH1D(40, lo, hi)
	for _, e := range r.estimates {
		h.Fill(e, 1)
	}

	p := hplot.New()
	p.Title.Text = fmt.Sprintf("pi estimates, n = %d, %d trials", r.n, len(r.estimates))
	p.X.Label.Text = "estimate"
	hh := hplot.NewH1D(h)
	hh.LineStyle.Color = color.NRGBA{R: 0x7F, G: 0x7F, B: 0xFF, A: 0xFF}
	p.Add(hh, hplot.NewGrid())
	return p.Save(12*vg.Centimeter, -1, path)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "mcpi-converge: "+format+"\n", args...)
	os.Exit(2)
}
