// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"io"
	"time"
)

// keyHoldDuration is how long a key counts as held after its last byte.
// Terminals only report repeats, so it must cover the auto-repeat gap.
const keyHoldDuration = 120 * time.Millisecond

// Input is the key state sampled for one frame.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Space  bool
	Enter  bool
	Escape bool
	// Pressed holds the raw bytes received since the previous frame.
	Pressed []byte
}

// Any reports whether any byte arrived this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// keyState records the last time each key was seen.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	space  time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers bytes read from a terminal through a channel.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine reading r until it fails.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := br.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all buffered bytes without blocking and returns the
// resulting key state. A closed stream reads as Quit.
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.apply(buf, time.Now())
	if s.closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput forgets held keys, so a key pressed on one screen does
// not carry over into the next.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// apply parses buf into the key state and samples it at now.
func (s *Stream) apply(buf []byte, now time.Time) Input {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			switch buf[i+2] {
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}
		s.state.press(b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	in := Input{
		Quit:    held(s.state.quit),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Space:   held(s.state.space),
		Enter:   held(s.state.enter),
		Escape:  held(s.state.escape),
		Pressed: buf,
	}
	// Both directions held: left wins.
	if in.Left && in.Right {
		in.Right = false
	}
	return in
}

func (ks *keyState) press(b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C in raw mode
		ks.quit = now
	case 'a', 'A', 'j', 'J':
		ks.left = now
	case 'd', 'D', 'l', 'L':
		ks.right = now
	case ' ':
		ks.space = now
	case '\n', '\r':
		ks.enter = now
	case '\x1b':
		ks.escape = now
	}
}
