package kernel

import (
	"testing"
	"time"
)

type echoTask struct {
	in  Capability
	out Capability
}

func (t *echoTask) Run(ctx *Context) {
	ch, ok := ctx.RecvChan(t.in)
	if !ok {
		return
	}
	for msg := range ch {
		ctx.SendTo(t.out, msg.Kind+1, msg.Payload())
	}
}

type panicTask struct{}

func (panicTask) Run(ctx *Context) { panic("boom") }

func recvWithTimeout(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func TestAddTaskRoutesMessages(t *testing.T) {
	k := New()
	in := k.NewEndpoint(RightSend | RightRecv)
	out := k.NewEndpoint(RightSend | RightRecv)

	if _, ok := k.AddTask(&echoTask{in: in.Restrict(RightRecv), out: out.Restrict(RightSend)}); !ok {
		t.Fatal("AddTask failed")
	}

	ctx := &Context{k: k}
	if res := ctx.SendToCapResult(in.Restrict(RightSend), 7, []byte("hi"), Capability{}); res != SendOK {
		t.Fatalf("send: %s", res)
	}
	outCh, _ := ctx.RecvChan(out.Restrict(RightRecv))
	msg := recvWithTimeout(t, outCh)
	if msg.Kind != 8 || string(msg.Payload()) != "hi" {
		t.Fatalf("got kind=%d payload=%q", msg.Kind, msg.Payload())
	}
}

func TestSendRights(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}

	if res := ctx.SendToCapResult(ep.Restrict(RightRecv), 1, nil, Capability{}); res != SendErrToNoSendRight {
		t.Fatalf("expected SendErrToNoSendRight, got %s", res)
	}
	if res := ctx.SendToCapResult(Capability{}, 1, nil, Capability{}); res != SendErrInvalidToCap {
		t.Fatalf("expected SendErrInvalidToCap, got %s", res)
	}
	big := make([]byte, MaxMessageBytes+1)
	if res := ctx.SendToCapResult(ep, 1, big, Capability{}); res != SendErrPayloadTooLarge {
		t.Fatalf("expected SendErrPayloadTooLarge, got %s", res)
	}
	if _, ok := ctx.RecvChan(ep.Restrict(RightSend)); ok {
		t.Fatal("expected RecvChan to require recv right")
	}
}

func TestRestrict(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightRecv)
	if got := ep.Restrict(RightSend); got.Valid() {
		t.Fatal("restricting to a missing right should invalidate the capability")
	}
	if got := ep.Restrict(RightSend | RightRecv); !got.canRecv() || got.canSend() {
		t.Fatal("restrict must not add rights")
	}
}

func TestWaitTick(t *testing.T) {
	k := New()
	ctx := &Context{k: k}
	done := make(chan uint64, 1)
	go func() { done <- ctx.WaitTick(0) }()

	k.TickTo(3)
	select {
	case got := <-done:
		if got != 3 {
			t.Fatalf("WaitTick=%d, want 3", got)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("WaitTick did not return")
	}

	k.TickTo(2)
	if got := ctx.NowTick(); got != 3 {
		t.Fatalf("TickTo must not move backwards, got %d", got)
	}
}

func TestTaskPanicInvokesHandler(t *testing.T) {
	got := make(chan PanicInfo, 1)
	SetPanicHandler(func(info PanicInfo) { got <- info })

	k := New()
	id, ok := k.AddTask(panicTask{})
	if !ok {
		t.Fatal("AddTask failed")
	}
	select {
	case info := <-got:
		if info.TaskID != id || info.Value != "boom" || len(info.Stack) == 0 {
			t.Fatalf("unexpected panic info: %+v", info)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("panic handler not called")
	}
	if !InPanicMode() {
		t.Fatal("expected panic mode")
	}
}

func TestKernelSendFromHost(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	if res := k.Send(ep.Restrict(RightRecv), 1, nil); res != SendErrToNoSendRight {
		t.Fatalf("expected SendErrToNoSendRight, got %s", res)
	}
	if res := k.Send(ep.Restrict(RightSend), 3, []byte("up")); res != SendOK {
		t.Fatalf("send: %s", res)
	}
	ctx := &Context{k: k}
	msg, ok := ctx.TryRecv(ep.Restrict(RightRecv))
	if !ok || msg.Kind != 3 || string(msg.Payload()) != "up" {
		t.Fatalf("got kind=%d payload=%q ok=%v", msg.Kind, msg.Payload(), ok)
	}
}

func TestTicksForwardAndStop(t *testing.T) {
	k := New()
	ctxCh := make(chan *Context, 1)
	k.AddTask(ctxTask(ctxCh))
	ctx := <-ctxCh

	done := make(chan struct{})
	ticks := ctx.Ticks(done)

	k.Tick()
	select {
	case tick := <-ticks:
		if tick != 1 {
			t.Fatalf("tick=%d, want 1", tick)
		}
	case <-time.After(time.Second):
		t.Fatal("tick not forwarded")
	}

	close(done)
	deadline := time.After(time.Second)
	for {
		k.Tick()
		select {
		case _, ok := <-ticks:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("forwarder did not stop after done")
		case <-time.After(time.Millisecond):
		}
	}
}

type ctxTask chan *Context

func (c ctxTask) Run(ctx *Context) { c <- ctx }
