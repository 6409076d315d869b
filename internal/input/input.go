// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a movement key is considered "held" after its last
// press. Terminals only send repeats, never releases, so holds are inferred.
const keyHoldDuration = 80 * time.Millisecond

// Input represents the current frame's input state.
// Movement keys are level-triggered (held); the rest are edge-triggered and
// true only in the frame their byte arrived.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Quit        bool
	Space       bool
	Enter       bool
	Escape      bool
	Pause       bool
	Restart     bool
	Leaderboard bool
	Pressed     []byte
}

// Start reports whether the frame carries a "begin" key.
func (in Input) Start() bool {
	return in.Space || in.Enter
}

// keyState tracks the last time each movement key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended (e.g. the SSH client left).
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
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

	return parse(&s.state, buf, time.Now())
}

// Reset forgets held keys, so a key pressed on one screen does not leak into the next.
func Reset(s *Stream) {
	if s != nil {
		s.state = keyState{}
	}
}

// parse applies one frame of bytes to the key state and builds the frame's Input.
func parse(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code> for arrow keys
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
				i += 2
				continue
			case 'B':
				state.down = now
				i += 2
				continue
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			}
		}

		applyByte(state, &in, b, now)
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Up = now.Sub(state.up) < keyHoldDuration
	in.Down = now.Sub(state.down) < keyHoldDuration
	return in
}

// applyByte updates movement timestamps or sets an edge-triggered key.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case 'q', 'Q', '\x03':
		in.Quit = true
	case '\x1b':
		in.Escape = true
	case ' ':
		in.Space = true
	case '\n', '\r':
		in.Enter = true
	case 'p', 'P':
		in.Pause = true
	case 'r', 'R':
		in.Restart = true
	case 'l', 'L':
		in.Leaderboard = true
	}
}
