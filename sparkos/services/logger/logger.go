package logger

import (
	"mcpi/hal"
	"mcpi/sparkos/kernel"
	"mcpi/sparkos/proto"
)

// Service drains MsgLogLine messages into a hal.Logger.
type Service struct {
	log    hal.Logger
	ep     kernel.Capability
	prefix string
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

// WithPrefix prepends prefix to every line written.
func (s *Service) WithPrefix(prefix string) *Service {
	s.prefix = prefix
	return s
}

func (s *Service) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(s.ep)
		if !ok {
			ctx.BlockOnRecv(s.ep)
			return
		}
		if s.log == nil || proto.Kind(msg.Kind) != proto.MsgLogLine {
			continue
		}
		if s.prefix == "" {
			s.log.WriteLineBytes(msg.Payload())
			continue
		}
		s.log.WriteLineString(s.prefix + string(msg.Payload()))
	}
}
