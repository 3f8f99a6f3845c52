package montecarlo

import (
	"math"
	"testing"
)

type frameQueue struct {
	next    uint64
	pending map[uint64]func()
	order   []uint64
}

func newFrameQueue() *frameQueue {
	return &frameQueue{pending: make(map[uint64]func())}
}

func (q *frameQueue) RequestFrame(fn func()) uint64 {
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

func (q *frameQueue) CancelFrame(id uint64) bool {
	if _, ok := q.pending[id]; !ok {
		return false
	}
	delete(q.pending, id)
	return true
}

// frame runs the callbacks requested before it started.
func (q *frameQueue) frame() {
	due := q.order
	q.order = nil
	for _, id := range due {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn()
	}
}

func (q *frameQueue) drain(limit int) int {
	frames := 0
	for len(q.pending) > 0 && frames < limit {
		q.frame()
		frames++
	}
	return frames
}

type recordingRenderer struct {
	resets      int
	batches     int
	batchLen    int
	incremental int
	last        DrawParams
}

func (r *recordingRenderer) Reset(p DrawParams) { r.resets++; r.last = p }

func (r *recordingRenderer) DrawSamples(samples []Sample, p DrawParams) {
	r.batches++
	r.batchLen = len(samples)
	r.last = p
}

func (r *recordingRenderer) DrawSample(_ Sample, p DrawParams) {
	r.incremental++
	r.last = p
}

func TestStartAutomaticBatch(t *testing.T) {
	q := newFrameQueue()
	rend := &recordingRenderer{}
	c := NewController(q, NewSeededGenerator(1), rend, Options{})

	if got := c.Start(5000, ModeAutomatic); got != StrategyBatch {
		t.Fatalf("Start(5000, Automatic) = %s, want batch", got)
	}
	v := c.View()
	if v.Total != 5000 || v.Running {
		t.Fatalf("after batch: total=%d running=%v, want 5000 false", v.Total, v.Running)
	}
	if len(v.Series) != 0 {
		t.Fatalf("batch series len = %d, want 0", len(v.Series))
	}
	if rend.batches != 1 || rend.batchLen != 5000 || rend.incremental != 0 {
		t.Fatalf("renderer = %+v, want one batch of 5000", rend)
	}
	if len(q.pending) != 0 {
		t.Fatalf("pending frames = %d, want 0", len(q.pending))
	}
}

func TestStartAutomaticIncremental(t *testing.T) {
	q := newFrameQueue()
	rend := &recordingRenderer{}
	c := NewController(q, NewSeededGenerator(2), rend, Options{})

	if got := c.Start(500, ModeAutomatic); got != StrategyIncremental {
		t.Fatalf("Start(500, Automatic) = %s, want incremental", got)
	}
	if v := c.View(); v.Total != 1 || !v.Running {
		t.Fatalf("after start: total=%d running=%v, want 1 true", v.Total, v.Running)
	}

	q.frame()
	if got := c.View().Total; got != 2 {
		t.Fatalf("after one frame total = %d, want 2", got)
	}

	q.drain(1000)
	v := c.View()
	if v.Total != 500 || v.Running {
		t.Fatalf("after drain: total=%d running=%v, want 500 false", v.Total, v.Running)
	}
	if rend.incremental != 500 || rend.batches != 0 {
		t.Fatalf("renderer = %+v, want 500 incremental draws", rend)
	}
	if rend.last.Radius != 5 {
		t.Fatalf("radius = %v, want 5", rend.last.Radius)
	}
}

func TestSeriesCadence(t *testing.T) {
	q := newFrameQueue()
	c := NewController(q, NewSeededGenerator(3), nil, Options{})
	c.Start(1000, ModeSimulate)
	q.drain(2000)

	v := c.View()
	if len(v.Series) != 50 {
		t.Fatalf("series len = %d, want 50", len(v.Series))
	}
	for i, p := range v.Series {
		if p.Index != i*20 {
			t.Fatalf("series[%d].Index = %d, want %d", i, p.Index, i*20)
		}
		if i > 0 && p.Index <= v.Series[i-1].Index {
			t.Fatalf("series not strictly increasing at %d", i)
		}
	}
	if v.Series[0].Value != 0 && v.Series[0].Value != 4 {
		t.Fatalf("series[0] = %v, want 0 or 4", v.Series[0].Value)
	}
}

func TestBatchSeriesOption(t *testing.T) {
	c := NewController(newFrameQueue(), NewSeededGenerator(4), nil, Options{BatchSeries: true})
	c.Start(5000, ModeInstant)
	v := c.View()
	if len(v.Series) != 50 {
		t.Fatalf("series len = %d, want 50", len(v.Series))
	}
	if last := v.Series[len(v.Series)-1]; last.Index != 4900 {
		t.Fatalf("last index = %d, want 4900", last.Index)
	}
}

func TestRestartDiscardsInFlightRun(t *testing.T) {
	q := newFrameQueue()
	rend := &recordingRenderer{}
	c := NewController(q, NewSeededGenerator(5), rend, Options{})

	c.Start(800, ModeSimulate)
	for i := 0; i < 100; i++ {
		q.frame()
	}
	if got := c.View().Total; got != 101 {
		t.Fatalf("mid-flight total = %d, want 101", got)
	}

	c.Start(300, ModeSimulate)
	q.drain(5000)

	v := c.View()
	if v.Total != 300 {
		t.Fatalf("total = %d, want 300", v.Total)
	}
	if v.Count != 300 {
		t.Fatalf("count = %d, want 300", v.Count)
	}
	if len(v.Series) != 50 {
		t.Fatalf("series len = %d, want 50", len(v.Series))
	}
	if rend.resets != 2 {
		t.Fatalf("resets = %d, want 2", rend.resets)
	}
}

func TestStaleTickIsNoop(t *testing.T) {
	q := newFrameQueue()
	c := NewController(q, NewSeededGenerator(6), nil, Options{})
	c.Start(100, ModeSimulate)
	stale := c.View().Generation

	// Keep the superseded callback alive to prove the token guards it.
	var old []func()
	for _, fn := range q.pending {
		old = append(old, fn)
	}

	c.Start(10, ModeSimulate)
	for _, fn := range old {
		fn()
	}
	if v := c.View(); v.Generation == stale || v.Total != 1 {
		t.Fatalf("after stale tick: gen=%d total=%d, want new gen and total 1", v.Generation, v.Total)
	}
	q.drain(100)
	if got := c.View().Total; got != 10 {
		t.Fatalf("total = %d, want 10", got)
	}
}

func TestCancel(t *testing.T) {
	q := newFrameQueue()
	var kinds []EventKind
	c := NewController(q, NewSeededGenerator(8), nil, Options{
		OnEvent: func(ev Event) {
			if ev.Kind != EventSample {
				kinds = append(kinds, ev.Kind)
			}
		},
	})
	if c.Cancel() {
		t.Fatal("Cancel() on idle controller = true, want false")
	}
	c.Start(50, ModeSimulate)
	q.frame()
	if !c.Cancel() {
		t.Fatal("Cancel() = false, want true")
	}
	q.drain(100)
	v := c.View()
	if v.Running || v.Total != 2 {
		t.Fatalf("after cancel: running=%v total=%d, want false 2", v.Running, v.Total)
	}
	if len(kinds) != 2 || kinds[0] != EventStart || kinds[1] != EventCancel {
		t.Fatalf("events = %v, want [start cancel]", kinds)
	}
}

func TestNonPositiveCountDefaults(t *testing.T) {
	c := NewController(newFrameQueue(), NewSeededGenerator(9), nil, Options{})
	c.Start(-3, ModeInstant)
	if got := c.View().Total; got != DefaultCount {
		t.Fatalf("total = %d, want %d", got, DefaultCount)
	}
}

func TestNilSchedulerRunsBatch(t *testing.T) {
	c := NewController(nil, NewSeededGenerator(10), nil, Options{})
	if got := c.Start(20, ModeSimulate); got != StrategyBatch {
		t.Fatalf("Start with nil scheduler = %s, want batch", got)
	}
	if got := c.View().Total; got != 20 {
		t.Fatalf("total = %d, want 20", got)
	}
}

func TestViewInvariants(t *testing.T) {
	c := NewController(nil, NewSeededGenerator(11), nil, Options{})
	for _, n := range []int{1, 7, 100, 3000} {
		c.Start(n, ModeInstant)
		v := c.View()
		if v.Inside < 0 || v.Inside > v.Total {
			t.Fatalf("n=%d inside=%d total=%d", n, v.Inside, v.Total)
		}
		inside := 0
		for _, s := range v.Samples {
			if s.Inside {
				inside++
			}
		}
		if inside != v.Inside || v.Outside() != v.Total-inside {
			t.Fatalf("n=%d counters disagree with samples", n)
		}
		if cap(v.Samples) != len(v.Samples) {
			t.Fatalf("view samples cap = %d, want %d", cap(v.Samples), len(v.Samples))
		}
	}
}

func TestEstimateConverges(t *testing.T) {
	g := NewSeededGenerator(12)
	spread := func(n int) float64 {
		const trials = 40
		var sum, sumSq float64
		for i := 0; i < trials; i++ {
			c := NewController(nil, g, nil, Options{})
			c.Start(n, ModeInstant)
			v := c.View()
			est := 4 * float64(v.Inside) / float64(v.Total)
			sum += est
			sumSq += est * est
		}
		mean := sum / trials
		if math.Abs(mean-math.Pi) > 0.3 {
			t.Fatalf("mean over n=%d = %v, too far from pi", n, mean)
		}
		return math.Sqrt(sumSq/trials - mean*mean)
	}

	small := spread(100)
	large := spread(10_000)
	if large >= small {
		t.Fatalf("std dev did not shrink: n=100 %v, n=10000 %v", small, large)
	}
	if large > 0.05 {
		t.Fatalf("std dev at n=10000 = %v, want < 0.05", large)
	}
}
