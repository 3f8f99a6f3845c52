package app

import (
	"fmt"

	"mcpi/hal"
	"mcpi/internal/buildinfo"
	"mcpi/sparkos/kernel"
	"mcpi/sparkos/montecarlo"
	"mcpi/sparkos/proto"
	"mcpi/sparkos/services/input"
	"mcpi/sparkos/services/logger"
	"mcpi/sparkos/tasks/mcpi"
)

// stepBudget bounds task steps per frame so a misbehaving task cannot stall
// the host loop.
const stepBudget = 64

// Config selects the demo's initial state.
type Config struct {
	Task mcpi.Config
	// Count is the sample count used by AutoStart; 0 means the default.
	Count     int
	AutoStart bool
	// ExitWhenIdle makes Step return hal.ErrStop once the first run has
	// finished.
	ExitWhenIdle bool
}

// System is one booted instance: kernel, services and the mcpi task.
type System struct {
	k     *kernel.Kernel
	task  *mcpi.Task
	ctrl  kernel.Capability
	cfg   Config
	fault error
}

// New boots the system on h.
func New(h hal.HAL, cfg Config) *System {
	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	appEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	s := &System{k: k, ctrl: appEP.Restrict(kernel.RightSend), cfg: cfg}
	installPanicHandler(h, k, func(err error) { s.fault = err })

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	if in := h.Input(); in != nil {
		k.AddTask(input.New(in, appEP.Restrict(kernel.RightSend)))
	}
	s.task = mcpi.New(h.Display(), k, appEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), cfg.Task)
	k.AddTask(s.task)

	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("mcpi %s: mode=%s", buildinfo.Short(), cfg.Task.Mode))
	}
	if cfg.AutoStart {
		s.Start(cfg.Count, cfg.Task.Mode)
	}
	return s
}

// NewStep boots a system and returns its frame function, the shape the hal
// runners expect.
func NewStep(h hal.HAL, cfg Config) func() error {
	return New(h, cfg).Step
}

// Step runs one frame: due frame callbacks first, then every runnable task.
func (s *System) Step() error {
	if s.fault != nil {
		return s.fault
	}
	s.k.Tick()
	s.k.RunUntilIdle(stepBudget)
	if s.fault != nil {
		return s.fault
	}

	if s.cfg.ExitWhenIdle {
		if v := s.task.View(); v.Generation > 0 && !v.Running {
			return hal.ErrStop
		}
	}
	return nil
}

// Start asks the task to begin a run of n samples; it takes effect on the
// next Step.
func (s *System) Start(n int, mode montecarlo.Mode) kernel.SendResult {
	n = min(max(n, 0), montecarlo.MaxCount)
	return s.k.Post(s.ctrl, uint16(proto.MsgRunStart), proto.RunStartPayload(uint32(n), uint8(mode)))
}

// Cancel asks the task to stop the current run.
func (s *System) Cancel() kernel.SendResult {
	return s.k.Post(s.ctrl, uint16(proto.MsgRunCancel), nil)
}

// View returns the engine's state as of the last Step.
func (s *System) View() montecarlo.View { return s.task.View() }
