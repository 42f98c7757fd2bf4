package calculator

import (
	"fmt"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	logclient "sparkcalc/sparkos/client/logger"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// Task is the calculator app.
type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability

	fb    hal.Framebuffer
	d     *fbDisplay
	fonts fonts
	panel *historyPanel

	active bool

	st      calc.State
	screen  screen
	pressed string // label of the held button

	inbuf []byte

	evals    int
	failures int
}

func New(disp hal.Display, ep kernel.Capability, logCap kernel.Capability, mode calc.Mode) *Task {
	return &Task{
		disp:   disp,
		ep:     ep,
		logCap: logCap,
		st:     calc.NewState(mode),
	}
}

// State returns the current calculator state. It is only safe to call after
// Run has returned.
func (t *Task) State() calc.State { return t.st }

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	if t.disp == nil {
		return
	}
	t.fb = t.disp.Framebuffer()
	if t.fb == nil {
		return
	}
	t.d = newFBDisplay(t.fb)
	t.fonts = newFonts()
	t.panel = newHistoryPanel(t.d, t.fonts.small)

	t.logRetry(ctx, fmt.Sprintf("calc: ready (%s)", t.st.Mode))

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgAppShutdown:
			t.logRetry(ctx, fmt.Sprintf("calc: shutdown after %d evaluations (%d failed)", t.evals, t.failures))
			return

		case proto.MsgAppControl:
			active, ok := proto.DecodeAppControlPayload(msg.Payload())
			if !ok {
				t.replyError(ctx, msg, proto.ErrBadMessage)
				continue
			}
			t.setActive(active)

		case proto.MsgTermInput:
			if !t.active {
				continue
			}
			t.handleInput(ctx, msg.Payload())
			t.render()

		case proto.MsgPointer:
			if !t.active {
				continue
			}
			x, y, btn, ok := proto.DecodePointerPayload(msg.Payload())
			if !ok {
				t.replyError(ctx, msg, proto.ErrBadMessage)
				continue
			}
			if t.handlePointer(ctx, x, y, btn) {
				t.render()
			}

		default:
			t.replyError(ctx, msg, proto.ErrBadMessage)
		}
	}
}

// setActive starts or stops input handling. Input that arrives while
// inactive is dropped, and a pending pointer press is forgotten.
func (t *Task) setActive(active bool) {
	if active == t.active {
		return
	}
	t.active = active
	t.pressed = ""
	t.inbuf = t.inbuf[:0]
	if active {
		t.render()
	}
}

// replyError answers a rejected message on its reply capability, if any.
func (t *Task) replyError(ctx *kernel.Context, msg kernel.Message, code proto.ErrCode) {
	if ctx == nil || !msg.Cap.Valid() {
		return
	}
	_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError), proto.ErrorPayload(code, proto.Kind(msg.Kind), nil), kernel.Capability{})
}

func (t *Task) handleInput(ctx *kernel.Context, b []byte) {
	t.inbuf = append(t.inbuf, b...)
	buf := t.inbuf

	for len(buf) > 0 {
		n, k, ok := nextKey(buf)
		if !ok {
			break
		}
		buf = buf[n:]
		t.handleKey(ctx, k)
	}

	t.inbuf = append(t.inbuf[:0], buf...)
}

func (t *Task) handleKey(ctx *kernel.Context, k key) {
	cmd, ok := commandForKey(k)
	if !ok {
		// Unmapped keys only close the history panel.
		t.st.HistoryVisible = false
		return
	}
	t.apply(ctx, cmd)
}

// handlePointer reports whether the frame needs a redraw. A button fires when
// released over the button it was pressed on.
func (t *Task) handlePointer(ctx *kernel.Context, x, y int16, btn proto.PointerButton) bool {
	idx := t.screen.hitTest(x, y, t.st.HistoryVisible)
	switch btn {
	case proto.PointerDown:
		if idx < 0 {
			if t.st.HistoryVisible {
				t.st.HistoryVisible = false
				return true
			}
			return false
		}
		t.pressed = t.screen.buttons[idx].label
		return true

	case proto.PointerUp:
		pressed := t.pressed
		t.pressed = ""
		if pressed == "" {
			return false
		}
		if idx >= 0 && t.screen.buttons[idx].label == pressed {
			t.apply(ctx, t.screen.buttons[idx].cmd)
		}
		return true
	}
	return false
}

func (t *Task) apply(ctx *kernel.Context, cmd calc.Command) {
	prev := t.st
	next, fx := calc.Apply(prev, cmd)
	t.st = next

	switch {
	case fx.Entry != nil:
		t.evals++
		if fx.Entry.Err != nil {
			t.failures++
			t.logf(ctx, "calc: %s = %s (%s)", fx.Entry.Expr, fx.Entry.Result, calc.ErrorKind(fx.Entry.Err))
		} else {
			t.logf(ctx, "calc: %s", fx.Entry)
		}
	case fx.Err != nil:
		t.logf(ctx, "calc: %s failed: %v", cmd, fx.Err)
	case fx.Ignored != nil:
		t.logf(ctx, "calc: %s ignored: %v", cmd, fx.Ignored)
	}
	if next.Mode != prev.Mode {
		t.logf(ctx, "calc: mode %s", next.Mode)
	}
}

func (t *Task) logf(ctx *kernel.Context, format string, args ...any) {
	_ = logclient.Logf(ctx, t.logCap, format, args...)
}

func (t *Task) logRetry(ctx *kernel.Context, line string) {
	_ = logclient.LogRetry(ctx, t.logCap, line)
}
