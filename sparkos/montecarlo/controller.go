package montecarlo

// Scheduler runs callbacks on the next display frame.
type Scheduler interface {
	RequestFrame(fn func()) (handle uint64)
	CancelFrame(handle uint64) bool
}

// DrawParams are the fixed drawing parameters of a run.
type DrawParams struct {
	Count  int
	Radius float64
}

// Renderer consumes samples as they are produced.
type Renderer interface {
	// Reset clears the canvas and draws the reference square and arc.
	Reset(p DrawParams)
	// DrawSamples redraws a complete batch run.
	DrawSamples(samples []Sample, p DrawParams)
	// DrawSample draws one new sample of an incremental run.
	DrawSample(s Sample, p DrawParams)
}

// EventKind tags controller notifications.
type EventKind uint8

const (
	EventStart EventKind = iota + 1
	EventSample
	EventFinish
	EventCancel
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventSample:
		return "sample"
	case EventFinish:
		return "finish"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is delivered after the state change it describes.
type Event struct {
	Kind EventKind
	View View
}

// Options tune a Controller.
type Options struct {
	// RadiusK is the k in max(1, min(5, k/n)). Zero means 4000.
	RadiusK float64
	// BatchSeries records convergence entries in batch runs too.
	BatchSeries bool
	// OnEvent, if set, is called after every state change.
	OnEvent func(Event)
}

// preallocSamples caps the up-front sample buffer; longer runs grow it.
const preallocSamples = 1 << 16

// Controller owns EngineState and drives runs on a Scheduler.
//
// It is not safe for concurrent use: Start, Cancel and scheduled ticks must
// all run on the scheduler's thread.
type Controller struct {
	sched Scheduler
	gen   *Generator
	rend  Renderer
	opts  Options

	state   EngineState
	pending uint64
	params  DrawParams
}

// NewController returns an idle controller. rend may be nil; a nil sched
// forces every run to execute as a batch.
func NewController(sched Scheduler, gen *Generator, rend Renderer, opts Options) *Controller {
	if gen == nil {
		gen = NewGenerator()
	}
	if opts.RadiusK <= 0 {
		opts.RadiusK = 4000
	}
	return &Controller{sched: sched, gen: gen, rend: rend, opts: opts}
}

// View returns a read-only projection of the current state.
func (c *Controller) View() View { return c.state.view() }

// Running reports whether an incremental run has pending ticks.
func (c *Controller) Running() bool { return c.state.running }

// Start discards the current run and begins a new one of n samples.
// It returns the strategy the run executes with.
func (c *Controller) Start(n int, mode Mode) Strategy {
	n = NormalizeCount(n)
	c.revoke()

	strategy := SelectStrategy(mode, n)
	if c.sched == nil {
		strategy = StrategyBatch
	}
	c.state.gen++
	c.state.run = Run{Samples: make([]Sample, 0, min(n, preallocSamples))}
	c.state.series = nil
	c.state.count = n
	c.state.mode = mode
	c.state.strategy = strategy
	c.state.running = false
	c.params = DrawParams{Count: n, Radius: PointRadius(c.opts.RadiusK, n)}

	if c.rend != nil {
		c.rend.Reset(c.params)
	}
	c.emit(EventStart)

	if strategy == StrategyBatch {
		c.runBatch(n)
		return strategy
	}

	c.state.running = true
	c.tick(c.state.gen, 0)
	return strategy
}

// Cancel stops a running incremental run, keeping what it has drawn.
func (c *Controller) Cancel() bool {
	if !c.state.running {
		return false
	}
	c.revoke()
	c.state.gen++
	c.state.running = false
	c.emit(EventCancel)
	return true
}

func (c *Controller) revoke() {
	if c.pending != 0 && c.sched != nil {
		c.sched.CancelFrame(c.pending)
	}
	c.pending = 0
}

func (c *Controller) runBatch(n int) {
	step := SeriesInterval(n)
	for i := 0; i < n; i++ {
		c.state.run.add(c.gen.Generate())
		if c.opts.BatchSeries && i%step == 0 {
			c.record(i)
		}
	}
	if c.rend != nil {
		c.rend.DrawSamples(c.state.run.Samples, c.params)
	}
	c.emit(EventFinish)
}

func (c *Controller) tick(gen uint64, i int) {
	if gen != c.state.gen || !c.state.running {
		return
	}
	c.pending = 0

	s := c.gen.Generate()
	c.state.run.add(s)
	if i%SeriesInterval(c.state.count) == 0 {
		c.record(i)
	}
	if c.rend != nil {
		c.rend.DrawSample(s, c.params)
	}

	if i < c.state.count-1 {
		c.emit(EventSample)
		c.pending = c.sched.RequestFrame(func() { c.tick(gen, i+1) })
		return
	}
	c.state.running = false
	c.emit(EventFinish)
}

func (c *Controller) record(i int) {
	c.state.series = append(c.state.series, SeriesPoint{
		Index: i,
		Value: Estimate(c.state.run.Inside, c.state.run.Total()),
	})
}

func (c *Controller) emit(kind EventKind) {
	if c.opts.OnEvent == nil {
		return
	}
	c.opts.OnEvent(Event{Kind: kind, View: c.state.view()})
}
