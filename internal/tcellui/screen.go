// Package tcellui is a loop.Frontend built on tcell.
package tcellui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/graze/internal/draw"
	"github.com/tomz197/graze/internal/input"
	"github.com/tomz197/graze/internal/loop"
	"github.com/tomz197/graze/internal/object"
)

// Screen draws frames with tcell and turns tcell events into game input.
type Screen struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	canvas *draw.Canvas

	held   input.Held
	closed bool
	now    func() time.Time
}

var (
	_ loop.Frontend    = (*Screen)(nil)
	_ loop.KeyResetter = (*Screen)(nil)
)

// New initializes screen and starts polling its events. Close releases it.
func New(screen tcell.Screen) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tcellui: init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()

	s := &Screen{
		screen: screen,
		events: make(chan tcell.Event, 256),
		quit:   make(chan struct{}),
		canvas: draw.NewCanvas(0, 0),
		now:    time.Now,
	}
	go s.poll()
	return s, nil
}

// NewTerminal opens the process terminal.
func NewTerminal() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcellui: new screen: %w", err)
	}
	return New(screen)
}

func (s *Screen) poll() {
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return // Screen finalized
		}
		select {
		case s.events <- ev:
		case <-s.quit:
			return
		}
	}
}

// Close restores the terminal.
func (s *Screen) Close() {
	close(s.quit)
	s.screen.DisableMouse()
	s.screen.Fini()
}

// ReadInput drains pending events (non-blocking).
func (s *Screen) ReadInput() input.Input {
	var in input.Input
	now := s.now()

drain:
	for !s.closed {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.closed = true
				break drain
			}
			s.apply(&in, ev, now)
		default:
			break drain
		}
	}

	s.held.Apply(&in, now)
	in.Closed = s.closed
	return in
}

func (s *Screen) apply(in *input.Input, ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			in.Quit = true
		case tcell.KeyEnter:
			in.Confirm = true
		case tcell.KeyLeft:
			s.held.Press(input.DirLeft, now)
		case tcell.KeyRight:
			s.held.Press(input.DirRight, now)
		case tcell.KeyUp:
			s.held.Press(input.DirUp, now)
		case tcell.KeyDown:
			s.held.Press(input.DirDown, now)
		case tcell.KeyRune:
			s.applyRune(in, ev.Rune(), now)
		}
	case *tcell.EventMouse:
		in.Mouse = true
		in.MouseCol, in.MouseRow = ev.Position()
	case *tcell.EventResize:
		s.screen.Sync()
	}
}

func (s *Screen) applyRune(in *input.Input, r rune, now time.Time) {
	in.Pressed = append(in.Pressed, string(r)...)
	switch r {
	case 'q', 'Q':
		in.Quit = true
	case ' ':
		in.Confirm = true
	case 'r', 'R':
		in.Restart = true
	case 'a', 'A', 'h':
		s.held.Press(input.DirLeft, now)
	case 'd', 'D', 'l':
		s.held.Press(input.DirRight, now)
	case 'w', 'W', 'k':
		s.held.Press(input.DirUp, now)
	case 's', 'S', 'j':
		s.held.Press(input.DirDown, now)
	}
}

// ResetKeys implements loop.KeyResetter.
func (s *Screen) ResetKeys() {
	s.held.Reset()
}

// Size returns the screen size in cells.
func (s *Screen) Size() (int, int, error) {
	cols, rows := s.screen.Size()
	return cols, rows, nil
}

// Render draws f and shows it.
func (s *Screen) Render(f *loop.Frame) error {
	cols, rows := s.screen.Size()
	s.canvas.Resize(cols, rows)
	draw.Paint(s.canvas, f)

	s.canvas.EachCell(func(col, row int, top, bottom object.Color) {
		ch, style := cellStyle(top, bottom)
		s.screen.SetContent(col, row, ch, nil, style)
	})

	for _, t := range draw.Layout(f, cols, rows) {
		style := tcell.StyleDefault.Foreground(tcellColor(t.Color))
		col := t.Col
		for _, r := range t.S {
			s.screen.SetContent(col, t.Row, r, nil, style)
			col++
		}
	}

	s.screen.Show()
	return nil
}

// cellStyle picks the glyph and style for a cell with the given sub-pixels.
func cellStyle(top, bottom object.Color) (rune, tcell.Style) {
	style := tcell.StyleDefault
	switch {
	case top == 0 && bottom == 0:
		return draw.BlockEmpty, style
	case top == bottom:
		return draw.BlockFull, style.Foreground(tcellColor(top))
	case bottom == 0:
		return draw.BlockUpperHalf, style.Foreground(tcellColor(top))
	case top == 0:
		return draw.BlockLowerHalf, style.Foreground(tcellColor(bottom))
	default:
		return draw.BlockUpperHalf, style.Foreground(tcellColor(top)).Background(tcellColor(bottom))
	}
}

func tcellColor(c object.Color) tcell.Color {
	if c == 0 {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
