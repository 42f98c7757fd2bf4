package pointer

import (
	"sparkcalc/hal"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// maxPending bounds how many undelivered transitions are kept while the
// consumer queue is full. Older ones are dropped first.
const maxPending = 16

// Service forwards HAL pointer transitions as MsgPointer messages until it
// receives MsgAppShutdown on its control endpoint.
type Service struct {
	in     hal.Input
	outCap kernel.Capability
	ctl    kernel.Capability

	pending [][]byte
}

func New(in hal.Input, outCap kernel.Capability, ctl kernel.Capability) *Service {
	return &Service{in: in, outCap: outCap, ctl: ctl}
}

func (s *Service) Run(ctx *kernel.Context) {
	if ctx == nil || s.in == nil {
		return
	}
	ptr := s.in.Pointer()
	if ptr == nil {
		return
	}
	events := ptr.Events()
	if events == nil {
		return
	}

	ctlCh, _ := ctx.RecvChan(s.ctl)

	done := make(chan struct{})
	defer close(done)
	tickCh := ctx.Ticks(done)

	for {
		select {
		case msg := <-ctlCh:
			if proto.Kind(msg.Kind) == proto.MsgAppShutdown {
				return
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.queue(encode(ev))
			s.flush(ctx)
		case <-tickCh:
			s.flush(ctx)
		}
	}
}

func encode(ev hal.PointerEvent) []byte {
	btn := proto.PointerUp
	if ev.Press {
		btn = proto.PointerDown
	}
	return proto.PointerPayload(clamp16(ev.X), clamp16(ev.Y), btn)
}

func clamp16(v int) int16 {
	switch {
	case v > 0x7FFF:
		return 0x7FFF
	case v < -0x8000:
		return -0x8000
	default:
		return int16(v)
	}
}

func (s *Service) queue(payload []byte) {
	if len(s.pending) >= maxPending {
		s.pending = s.pending[1:]
	}
	s.pending = append(s.pending, payload)
}

func (s *Service) flush(ctx *kernel.Context) {
	if !s.outCap.Valid() {
		s.pending = nil
		return
	}
	for len(s.pending) > 0 {
		res := ctx.SendToCapResult(s.outCap, uint16(proto.MsgPointer), s.pending[0], kernel.Capability{})
		switch res {
		case kernel.SendOK:
			s.pending = s.pending[1:]
		case kernel.SendErrQueueFull:
			return
		default:
			s.pending = nil
			return
		}
	}
}
