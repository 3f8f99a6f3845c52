package input

import (
	"mcpi/hal"
	"mcpi/sparkos/kernel"
	"mcpi/sparkos/proto"
)

// maxEventsPerTick bounds how many key events one step forwards.
const maxEventsPerTick = 32

// Service forwards keyboard events to a task endpoint as MsgKey messages.
//
// Only key presses are forwarded; releases are dropped.
type Service struct {
	in  hal.Input
	out kernel.Capability

	events  <-chan hal.KeyEvent
	pending []byte
	dropped int
}

func New(in hal.Input, out kernel.Capability) *Service {
	return &Service{in: in, out: out}
}

// Dropped returns the number of events lost to a full destination queue.
func (s *Service) Dropped() int { return s.dropped }

func (s *Service) Step(ctx *kernel.Context) {
	defer ctx.BlockOnTick()

	if s.events == nil {
		if s.in == nil {
			return
		}
		kbd := s.in.Keyboard()
		if kbd == nil {
			return
		}
		s.events = kbd.Events()
		if s.events == nil {
			return
		}
	}

	if s.pending != nil {
		if !s.flush(ctx, s.pending) {
			return
		}
		s.pending = nil
	}

	for i := 0; i < maxEventsPerTick; i++ {
		select {
		case ev := <-s.events:
			payload, ok := keyPayload(ev)
			if !ok {
				continue
			}
			if !s.flush(ctx, payload) {
				s.pending = payload
				return
			}
		default:
			return
		}
	}
}

func (s *Service) flush(ctx *kernel.Context, payload []byte) bool {
	switch ctx.SendToResult(s.out, uint16(proto.MsgKey), payload) {
	case kernel.SendOK:
		return true
	case kernel.SendErrQueueFull:
		return false
	default:
		s.dropped++
		return true
	}
}

func keyPayload(ev hal.KeyEvent) ([]byte, bool) {
	if !ev.Press {
		return nil, false
	}
	if ev.Code == hal.KeyUnknown {
		if ev.Rune == 0 {
			return nil, false
		}
		return proto.KeyPayload(proto.KeyNone, ev.Rune), true
	}
	code, ok := keyCodes[ev.Code]
	if !ok {
		return nil, false
	}
	return proto.KeyPayload(code, 0), true
}

var keyCodes = map[hal.KeyCode]uint16{
	hal.KeyUp:        proto.KeyUp,
	hal.KeyDown:      proto.KeyDown,
	hal.KeyLeft:      proto.KeyLeft,
	hal.KeyRight:     proto.KeyRight,
	hal.KeyEnter:     proto.KeyEnter,
	hal.KeyEscape:    proto.KeyEscape,
	hal.KeyBackspace: proto.KeyBackspace,
	hal.KeyTab:       proto.KeyTab,
}
