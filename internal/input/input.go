// Package input turns raw terminal bytes into per-frame game input.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long an arrow key is considered "held" after its last
// press. Terminals only report key repeats, so this bridges the repeat gap.
const keyHoldDuration = 60 * time.Millisecond

// Terminal control sequences for pointer reporting: any-motion tracking (1003)
// with SGR extended coordinates (1006).
const (
	EnableMouse  = "\033[?1003h\033[?1006h"
	DisableMouse = "\033[?1006l\033[?1003l"
)

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Confirm bool // Space or Enter: start from the title, restart after game over
	Restart bool // 'r': restart after game over
	Left    bool
	Right   bool
	Up      bool
	Down    bool

	// Mouse is set when the pointer moved this frame; MouseCol/MouseRow are
	// 0-based terminal cells.
	Mouse    bool
	MouseCol int
	MouseRow int

	Closed  bool   // The underlying reader has ended
	Pressed []byte // Raw bytes received this frame
}

// Active reports whether the player did anything this frame.
func (in Input) Active() bool {
	return len(in.Pressed) > 0 || in.Mouse || in.Quit || in.Confirm || in.Restart ||
		in.Left || in.Right || in.Up || in.Down
}

// Direction is one of the four movement keys.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Held tracks the last time each movement key was pressed. Terminals only
// report key repeats, never releases, so a key counts as held for
// keyHoldDuration after its last repeat.
type Held struct {
	last [4]time.Time
}

// Press records a press of d at now.
func (h *Held) Press(d Direction, now time.Time) {
	h.last[d] = now
}

// Apply sets the movement fields of in from the keys held at now.
func (h *Held) Apply(in *Input, now time.Time) {
	in.Left = now.Sub(h.last[DirLeft]) < keyHoldDuration
	in.Right = now.Sub(h.last[DirRight]) < keyHoldDuration
	in.Up = now.Sub(h.last[DirUp]) < keyHoldDuration
	in.Down = now.Sub(h.last[DirDown]) < keyHoldDuration
}

// Reset forgets every held key.
func (h *Held) Reset() {
	*h = Held{}
}

// Stream delivers input bytes via a channel and tracks key state for held keys.
type Stream struct {
	ch     chan byte
	state  Held
	closed bool
	now    func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 256),
		now: time.Now,
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

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
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

	in := Parse(&s.state, buf, s.now())
	in.Closed = s.closed
	return in
}

// ResetKeyInput forgets held keys, so a key pressed on one screen does not
// carry over into the next.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state.Reset()
}

// Parse decodes buf into an Input, updating held-key timestamps in state.
func Parse(state *Held, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			// CSI sequence: ESC [ <code>
			switch buf[i+2] {
			case 'A':
				state.Press(DirUp, now)
				i += 2
				continue
			case 'B':
				state.Press(DirDown, now)
				i += 2
				continue
			case 'C':
				state.Press(DirRight, now)
				i += 2
				continue
			case 'D':
				state.Press(DirLeft, now)
				i += 2
				continue
			case '<':
				if n, col, row, ok := parseSGRMouse(buf[i:]); ok {
					in.Mouse = true
					in.MouseCol = col
					in.MouseRow = row
					i += n - 1
					continue
				}
			}
		}

		switch b {
		case 'q', 'Q', 0x03: // q or Ctrl-C
			in.Quit = true
		case ' ', '\n', '\r':
			in.Confirm = true
		case 'r', 'R':
			in.Restart = true
		case 'a', 'A', 'h':
			state.Press(DirLeft, now)
		case 'd', 'D', 'l':
			state.Press(DirRight, now)
		case 'w', 'W', 'k':
			state.Press(DirUp, now)
		case 's', 'S', 'j':
			state.Press(DirDown, now)
		}
	}

	state.Apply(&in, now)

	return in
}

// parseSGRMouse decodes "ESC [ < btn ; col ; row M|m" at the start of data.
// It returns the sequence length and 0-based cell coordinates.
func parseSGRMouse(data []byte) (n, col, row int, ok bool) {
	if len(data) < 9 || data[0] != '\x1b' || data[1] != '[' || data[2] != '<' {
		return 0, 0, 0, false
	}

	var params [3]int
	field := 0
	digits := 0
	for i := 3; i < len(data) && i < 32; i++ {
		c := data[i]
		switch {
		case c >= '0' && c <= '9':
			params[field] = params[field]*10 + int(c-'0')
			digits++
		case c == ';':
			if digits == 0 || field == 2 {
				return 0, 0, 0, false
			}
			field++
			digits = 0
		case c == 'M' || c == 'm':
			if field != 2 || digits == 0 {
				return 0, 0, 0, false
			}
			return i + 1, params[1] - 1, params[2] - 1, true
		default:
			return 0, 0, 0, false
		}
	}
	return 0, 0, 0, false
}
