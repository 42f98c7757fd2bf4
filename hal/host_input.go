package hal

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// inject queues ev, dropping it when the queue is full.
func (k *hostKeyboard) inject(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}

type hostPointer struct {
	ch chan PointerEvent

	down bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 16)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) inject(ev PointerEvent) bool {
	select {
	case p.ch <- ev:
		return true
	default:
		return false
	}
}

// scriptEvents translates a headless key script into key events.
//
// '=' stands for Enter and '<' for Backspace so scripts can be passed on a
// command line. Every other rune is typed as-is.
func scriptEvents(script string) []KeyEvent {
	var out []KeyEvent
	for _, r := range script {
		switch r {
		case '=':
			out = append(out, KeyEvent{Code: KeyEnter, Press: true}, KeyEvent{Code: KeyEnter})
		case '<':
			out = append(out, KeyEvent{Code: KeyBackspace, Press: true}, KeyEvent{Code: KeyBackspace})
		default:
			out = append(out, KeyEvent{Press: true, Rune: r})
		}
	}
	return out
}
