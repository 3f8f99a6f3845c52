package mcpi

import (
	"fmt"

	"mcpi/hal"
	logclient "mcpi/sparkos/client/logger"
	"mcpi/sparkos/kernel"
	"mcpi/sparkos/montecarlo"
	"mcpi/sparkos/proto"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// maxInputDigits bounds the count field.
const maxInputDigits = 9

// Config seeds the task's initial state.
type Config struct {
	Mode        montecarlo.Mode
	Seed        uint64
	RadiusK     float64
	BatchSeries bool
}

// Task is the interactive Monte Carlo π demo: canvas, stats panel and
// convergence chart, driven by keys arriving as MsgKey.
type Task struct {
	disp   hal.Display
	sched  montecarlo.Scheduler
	ep     kernel.Capability
	logCap kernel.Capability
	cfg    Config

	fb     hal.Framebuffer
	font   tinyfont.Fonter
	lay    layout
	canvas *canvasRenderer
	chart  *chart
	panel  *panel

	ctrl  *montecarlo.Controller
	mode  montecarlo.Mode
	input string

	started bool
	dirty   bool
	logq    []string
}

func New(disp hal.Display, sched montecarlo.Scheduler, ep, logCap kernel.Capability, cfg Config) *Task {
	return &Task{disp: disp, sched: sched, ep: ep, logCap: logCap, cfg: cfg, mode: cfg.Mode}
}

// View returns the engine's current read-only state.
func (t *Task) View() montecarlo.View {
	if t.ctrl == nil {
		return montecarlo.View{}
	}
	return t.ctrl.View()
}

// Mode returns the mode the next run will use.
func (t *Task) Mode() montecarlo.Mode { return t.mode }

func (t *Task) Step(ctx *kernel.Context) {
	defer ctx.BlockOnTick()

	if !t.started {
		t.start()
	}

	for {
		msg, ok := ctx.TryRecv(t.ep)
		if !ok {
			break
		}
		t.handleMessage(msg)
	}

	t.flushLog(ctx)
	if t.dirty {
		t.render()
		t.dirty = false
	}
}

func (t *Task) start() {
	t.started = true
	t.dirty = true

	gen := montecarlo.NewGenerator()
	if t.cfg.Seed != 0 {
		gen = montecarlo.NewSeededGenerator(t.cfg.Seed)
	}

	var rend montecarlo.Renderer
	if t.disp != nil {
		t.fb = t.disp.Framebuffer()
	}
	if t.fb != nil && t.fb.Format() == hal.PixelFormatRGB565 {
		t.font = &proggy.TinySZ8pt7b
		t.lay = computeLayout(t.fb.Width(), t.fb.Height())
		d := &fbDisplayer{fb: t.fb}
		t.canvas = &canvasRenderer{fb: t.fb, area: t.lay.canvas}
		t.chart = &chart{fb: t.fb, d: d, font: t.font, area: t.lay.chart}
		t.panel = &panel{fb: t.fb, d: d, font: t.font, area: t.lay.panel}
		rend = t.canvas

		t.fb.ClearRGB(colBackground.R, colBackground.G, colBackground.B)
		t.canvas.Reset(montecarlo.DrawParams{})
	}

	t.ctrl = montecarlo.NewController(t.sched, gen, rend, montecarlo.Options{
		RadiusK:     t.cfg.RadiusK,
		BatchSeries: t.cfg.BatchSeries,
		OnEvent:     t.onEvent,
	})
}

func (t *Task) onEvent(ev montecarlo.Event) {
	t.dirty = true
	v := ev.View
	switch ev.Kind {
	case montecarlo.EventStart:
		t.logf("run %d: start n=%d mode=%s strategy=%s", v.Generation, v.Count, v.Mode, v.Strategy)
	case montecarlo.EventFinish:
		t.logf("run %d: done total=%d inside=%d pi~%s", v.Generation, v.Total, v.Inside,
			montecarlo.FormatEstimate(v.Inside, v.Total))
	case montecarlo.EventCancel:
		t.logf("run %d: cancelled at %d/%d", v.Generation-1, v.Total, v.Count)
	}
}

func (t *Task) handleMessage(msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgKey:
		code, r, ok := proto.DecodeKeyPayload(msg.Payload())
		if !ok {
			return
		}
		t.handleKey(code, r)

	case proto.MsgRunStart:
		count, mode, ok := proto.DecodeRunStartPayload(msg.Payload())
		if !ok {
			return
		}
		if m := montecarlo.Mode(mode); m.String() != "unknown" {
			t.mode = m
		}
		t.ctrl.Start(int(count), t.mode)

	case proto.MsgRunCancel:
		t.ctrl.Cancel()
	}
}

func (t *Task) handleKey(code uint16, r rune) {
	switch code {
	case proto.KeyEnter:
		t.run()
	case proto.KeyTab:
		t.cycleMode()
	case proto.KeyBackspace:
		if n := len(t.input); n > 0 {
			t.input = t.input[:n-1]
			t.dirty = true
		}
	case proto.KeyEscape:
		t.ctrl.Cancel()
	case proto.KeyNone:
		switch {
		case r >= '0' && r <= '9':
			if len(t.input) < maxInputDigits {
				t.input += string(r)
				t.dirty = true
			}
		case r == 'm' || r == 'M':
			t.cycleMode()
		case r == 's' || r == 'S' || r == '\r' || r == '\n':
			t.run()
		}
	}
}

func (t *Task) run() {
	t.ctrl.Start(montecarlo.ParseCount(t.input), t.mode)
}

func (t *Task) cycleMode() {
	t.mode = t.mode.Next()
	t.dirty = true
}

func (t *Task) render() {
	if t.fb == nil {
		return
	}
	v := t.ctrl.View()
	t.panel.draw(panelText(v, t.mode, t.input))
	t.chart.draw(v)
	_ = t.fb.Present()
}

func (t *Task) logf(format string, args ...any) {
	t.logq = append(t.logq, fmt.Sprintf(format, args...))
}

// flushLog sends queued lines, keeping the rest for the next step when the
// logger's queue is full.
func (t *Task) flushLog(ctx *kernel.Context) {
	if !t.logCap.Valid() {
		t.logq = t.logq[:0]
		return
	}
	for i, line := range t.logq {
		if logclient.Log(ctx, t.logCap, "mcpi: "+line) == kernel.SendErrQueueFull {
			t.logq = append(t.logq[:0], t.logq[i:]...)
			return
		}
	}
	t.logq = t.logq[:0]
}
