package montecarlo

// SeriesPoint is one convergence entry.
type SeriesPoint struct {
	Index int
	Value float64
}

// Run is the ordered set of samples from one Start call.
type Run struct {
	Samples []Sample
	Inside  int
}

// Total is the number of samples in the run.
func (r *Run) Total() int { return len(r.Samples) }

func (r *Run) add(s Sample) {
	r.Samples = append(r.Samples, s)
	if s.Inside {
		r.Inside++
	}
}

// EngineState is the controller's single mutable resource.
type EngineState struct {
	run      Run
	series   []SeriesPoint
	count    int
	mode     Mode
	strategy Strategy
	running  bool
	gen      uint64
}

// View is a read-only projection of EngineState handed to collaborators.
//
// Slices are capped at their length so appends by a reader never alias the
// controller's storage. Readers must not modify elements.
type View struct {
	Samples    []Sample
	Series     []SeriesPoint
	Total      int
	Inside     int
	Count      int
	Mode       Mode
	Strategy   Strategy
	Running    bool
	Generation uint64
}

// Outside is the number of samples outside the quarter disc.
func (v View) Outside() int { return v.Total - v.Inside }

// Estimate is Estimate(v.Inside, v.Total).
func (v View) Estimate() float64 { return Estimate(v.Inside, v.Total) }

// Interval is the series cadence of the run.
func (v View) Interval() int { return SeriesInterval(v.Count) }

func (s *EngineState) view() View {
	samples := s.run.Samples
	series := s.series
	return View{
		Samples:    samples[:len(samples):len(samples)],
		Series:     series[:len(series):len(series)],
		Total:      s.run.Total(),
		Inside:     s.run.Inside,
		Count:      s.count,
		Mode:       s.mode,
		Strategy:   s.strategy,
		Running:    s.running,
		Generation: s.gen,
	}
}
