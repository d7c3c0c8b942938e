package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	now := time.Unix(100, 0)

	tests := []struct {
		name string
		in   string
		want Input
	}{
		{"quit", "q", Input{Quit: true}},
		{"ctrl-c", "\x03", Input{Quit: true}},
		{"space", " ", Input{Confirm: true}},
		{"enter", "\r", Input{Confirm: true}},
		{"restart", "r", Input{Restart: true}},
		{"wasd", "wd", Input{Up: true, Right: true}},
		{"vi keys", "hj", Input{Left: true, Down: true}},
		{"arrows", "\x1b[A\x1b[D", Input{Up: true, Left: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st Held
			got := Parse(&st, []byte(tt.in), now)
			if !sameKeys(got, tt.want) {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func sameKeys(a, b Input) bool {
	return a.Quit == b.Quit && a.Confirm == b.Confirm && a.Restart == b.Restart &&
		a.Left == b.Left && a.Right == b.Right && a.Up == b.Up && a.Down == b.Down &&
		a.Mouse == b.Mouse
}

func TestHeldKeyExpires(t *testing.T) {
	var st Held
	now := time.Unix(100, 0)

	if in := Parse(&st, []byte("a"), now); !in.Left {
		t.Fatal("left not pressed")
	}
	if in := Parse(&st, nil, now.Add(keyHoldDuration/2)); !in.Left {
		t.Fatal("left released inside the hold window")
	}
	if in := Parse(&st, nil, now.Add(keyHoldDuration)); in.Left {
		t.Fatal("left still held after the hold window")
	}
}

func TestParseSGRMouse(t *testing.T) {
	var st Held
	// Motion event (button 35) at column 12, row 5 (1-based on the wire).
	in := Parse(&st, []byte("\x1b[<35;12;5M"), time.Unix(0, 0))
	if !in.Mouse || in.MouseCol != 11 || in.MouseRow != 4 {
		t.Fatalf("mouse = %v (%d,%d), want true (11,4)", in.Mouse, in.MouseCol, in.MouseRow)
	}
	if in.Quit || in.Confirm || in.Left || in.Down {
		t.Fatalf("mouse sequence leaked key presses: %+v", in)
	}
}

func TestParseLatestMouseWins(t *testing.T) {
	var st Held
	in := Parse(&st, []byte("\x1b[<35;1;1M\x1b[<0;80;24m q"), time.Unix(0, 0))
	if !in.Mouse || in.MouseCol != 79 || in.MouseRow != 23 {
		t.Fatalf("mouse = (%d,%d), want (79,23)", in.MouseCol, in.MouseRow)
	}
	if !in.Confirm || !in.Quit {
		t.Fatalf("keys after mouse lost: %+v", in)
	}
}

func TestParseTruncatedMouseIsIgnored(t *testing.T) {
	var st Held
	in := Parse(&st, []byte("\x1b[<35;12"), time.Unix(0, 0))
	if in.Mouse {
		t.Fatal("truncated sequence reported as mouse")
	}
}

func TestStreamReportsClosed(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader(" ")))

	deadline := time.Now().Add(2 * time.Second)
	sawConfirm := false
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		sawConfirm = sawConfirm || in.Confirm
		if in.Closed {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if !sawConfirm {
		t.Fatal("confirm byte never delivered")
	}
	if in := ReadInput(s); !in.Closed {
		t.Fatal("stream not reported closed after EOF")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := &Stream{ch: make(chan byte, 4), now: func() time.Time { return time.Unix(5, 0) }}
	s.ch <- 'd'
	if in := ReadInput(s); !in.Right {
		t.Fatal("right not held")
	}
	ResetKeyInput(s)
	if in := ReadInput(s); in.Right {
		t.Fatal("right still held after reset")
	}
}
