package draw

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tomz197/graze/internal/input"
	"github.com/tomz197/graze/internal/loop"
)

// Terminal is a loop.Frontend that speaks ANSI over any reader/writer pair,
// such as a raw local tty or an SSH session.
type Terminal struct {
	w      io.Writer
	stream *input.Stream
	size   TermSizeFunc

	canvas *Canvas
	cw     *ChunkWriter

	cols, rows int // Render area, after clamping
	offCol     int
	offRow     int
	sized      bool
}

var (
	_ loop.Frontend    = (*Terminal)(nil)
	_ loop.KeyResetter = (*Terminal)(nil)
)

// NewTerminal creates a frontend reading keys and mouse events from r and
// drawing to w. size reports the terminal dimensions; nil uses stdout.
func NewTerminal(r io.Reader, w io.Writer, size TermSizeFunc) *Terminal {
	if size == nil {
		size = DefaultTermSizeFunc
	}
	return &Terminal{
		w:      w,
		stream: input.StartStream(bufio.NewReader(r)),
		size:   size,
		canvas: NewCanvas(0, 0),
		cw:     NewChunkWriter(w, 0, 0),
	}
}

// Open prepares the terminal: hidden cursor, cleared screen, mouse tracking.
func (t *Terminal) Open() error {
	_, err := io.WriteString(t.w, seqHideCursor+seqClear+input.EnableMouse)
	return err
}

// Close undoes Open.
func (t *Terminal) Close() error {
	_, err := io.WriteString(t.w, input.DisableMouse+seqReset+seqClear+seqShowCursor)
	return err
}

// ReadInput drains pending key and mouse input.
func (t *Terminal) ReadInput() input.Input {
	return input.ReadInput(t.stream)
}

// ResetKeys implements loop.KeyResetter.
func (t *Terminal) ResetKeys() {
	input.ResetKeyInput(t.stream)
}

// Size returns the render area in cells, clamped to the max render
// resolution.
func (t *Terminal) Size() (int, int, error) {
	w, h, err := t.size()
	if err != nil {
		return 0, 0, fmt.Errorf("draw: terminal size: %w", err)
	}
	t.cols, t.rows, t.offCol, t.offRow = clampTermSize(w, h)
	t.sized = true
	return t.cols, t.rows, nil
}

// Render draws f: the world on the canvas, then the text overlays.
func (t *Terminal) Render(f *loop.Frame) error {
	if !t.sized {
		if _, _, err := t.Size(); err != nil {
			return err
		}
	}

	c := t.canvas
	if t.cols != c.TerminalWidth() || t.rows != c.TerminalHeight() ||
		t.offCol != c.OffsetCol() || t.offRow != c.OffsetRow() {
		// Clear residual pixels outside the new render area.
		t.cw.WriteString(seqReset + seqClear)
		c.Resize(t.cols, t.rows)
		c.SetOffset(t.offCol, t.offRow)
		c.ForceRedraw()
		t.cw.SetOffset(t.offCol, t.offRow)
		if err := c.RenderBorder(t.cw); err != nil {
			return err
		}
	}

	Paint(c, f)
	if err := c.Render(t.cw); err != nil {
		return err
	}

	var sgr []byte
	for _, txt := range Layout(f, t.cols, t.rows) {
		sgr = appendSGR(sgr[:0], txt.Color, 0)
		t.cw.WriteAt(txt.Col+1, txt.Row+1, string(sgr)+txt.S+seqReset)
		c.MarkDirty(txt.Col, txt.Row, txt.Width())
	}

	if err := t.cw.Flush(); err != nil {
		return fmt.Errorf("draw: flush: %w", err)
	}
	return nil
}
