package app

import (
	"errors"
	"time"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
	"sparkcalc/sparkos/services/logger"
	"sparkcalc/sparkos/services/pointer"
	"sparkcalc/sparkos/services/termkbd"
	"sparkcalc/sparkos/tasks/calculator"
)

// ErrShutdownTimeout is returned by Shutdown when a task does not stop in time.
var ErrShutdownTimeout = errors.New("shutdown timed out")

type Config struct {
	Mode calc.Mode
}

// System is a running calculator OS instance.
type System struct {
	k *kernel.Kernel

	calcCap kernel.Capability
	logCap  kernel.Capability
	kbdCap  kernel.Capability
	ptrCap  kernel.Capability

	calcDone chan struct{}
	logDone  chan struct{}
	kbdDone  chan struct{}
	ptrDone  chan struct{}
}

// New initializes and starts the OS with default config.
func New(h hal.HAL) func() error {
	return Start(h, Config{}).Step
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	return Start(h, cfg).Step
}

// Start builds the kernel, endpoints, and tasks for h.
func Start(h hal.HAL, cfg Config) *System {
	installPanicHandler(h)

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	kbdEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	ptrEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	s := &System{
		k:        k,
		calcCap:  calcEP.Restrict(kernel.RightSend),
		logCap:   logEP.Restrict(kernel.RightSend),
		kbdCap:   kbdEP.Restrict(kernel.RightSend),
		ptrCap:   ptrEP.Restrict(kernel.RightSend),
		calcDone: make(chan struct{}),
		logDone:  make(chan struct{}),
		kbdDone:  make(chan struct{}),
		ptrDone:  make(chan struct{}),
	}

	k.AddTask(track(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)), s.logDone))
	k.AddTask(track(calculator.New(h.Display(), calcEP.Restrict(kernel.RightRecv), s.logCap, cfg.Mode), s.calcDone))
	k.AddTask(track(termkbd.New(h.Input(), s.calcCap, kbdEP.Restrict(kernel.RightRecv)), s.kbdDone))
	k.AddTask(track(pointer.New(h.Input(), s.calcCap, ptrEP.Restrict(kernel.RightRecv)), s.ptrDone))
	k.Send(s.calcCap, uint16(proto.MsgAppControl), proto.AppControlPayload(true))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return s
}

// Step is the per-frame hook for the host runner.
func (s *System) Step() error { return nil }

// Shutdown stops the calculator, then the input services, then the logger, so
// the calculator's last log lines are written before it returns.
func (s *System) Shutdown(timeout time.Duration) error {
	deadline := time.After(timeout)
	order := []struct {
		to   kernel.Capability
		done <-chan struct{}
	}{
		{s.calcCap, s.calcDone},
		{s.kbdCap, s.kbdDone},
		{s.ptrCap, s.ptrDone},
		{s.logCap, s.logDone},
	}
	for _, t := range order {
		if err := s.stop(t.to, t.done, deadline); err != nil {
			return err
		}
	}
	// Releases tick forwarders still parked in WaitTick.
	s.k.Tick()
	return nil
}

func (s *System) stop(to kernel.Capability, done <-chan struct{}, deadline <-chan time.Time) error {
	for {
		res := s.k.Send(to, uint16(proto.MsgAppShutdown), nil)
		if res == kernel.SendOK {
			break
		}
		if res != kernel.SendErrQueueFull {
			return errors.New("shutdown: " + res.String())
		}
		select {
		case <-done:
			return nil
		case <-deadline:
			return ErrShutdownTimeout
		case <-time.After(time.Millisecond):
		}
		// Ticks may stop once the host loop exits; keep retrying senders moving.
		s.k.Tick()
	}
	for {
		select {
		case <-done:
			return nil
		case <-deadline:
			return ErrShutdownTimeout
		case <-time.After(time.Millisecond):
			s.k.Tick()
		}
	}
}

type trackedTask struct {
	t    kernel.Task
	done chan struct{}
}

func track(t kernel.Task, done chan struct{}) kernel.Task {
	return &trackedTask{t: t, done: done}
}

func (t *trackedTask) Run(ctx *kernel.Context) {
	defer close(t.done)
	t.t.Run(ctx)
}
