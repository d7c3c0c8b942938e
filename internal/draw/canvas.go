package draw

import (
	"io"
	"math"
	"strconv"

	"github.com/tomz197/graze/internal/object"
)

// Canvas is a color buffer with 2x vertical resolution using half-block
// characters. Logical (world) coordinates are scaled to terminal pixels.
//
// Render only repaints cells that changed since the previous Render, so
// anything drawn over the canvas must be reported with MarkDirty.
type Canvas struct {
	termWidth      int            // Terminal columns
	termHeight     int            // Terminal rows
	subPixelHeight int            // termHeight * 2
	pixels         []object.Color // Flat slice: [y * termWidth + x]
	prev           []cell         // Cells as last written, per terminal cell

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offset of the render area when the terminal is
	// larger than the max render resolution.
	offsetCol int
	offsetRow int

	renderBuf []byte
}

// cell is one terminal cell: two stacked sub-pixels.
type cell struct {
	top, bottom object.Color
	valid       bool // False forces a repaint
}

// NewCanvas creates a canvas for the given terminal size with no scaling.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that maps a logical area of
// logicalWidth x logicalHeight onto termWidth x termHeight cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{}
	c.Resize(termWidth, termHeight)
	c.SetLogical(logicalWidth, logicalHeight)
	return c
}

// Resize updates the terminal size, keeping the logical size. A size change
// forces a full repaint.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]object.Color, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
	}
	c.updateScale()
}

// SetLogical changes the logical area mapped onto the canvas.
func (c *Canvas) SetLogical(width, height float64) {
	c.logicalWidth = width
	c.logicalHeight = height
	c.updateScale()
}

func (c *Canvas) updateScale() {
	c.scaleX, c.scaleY = 0, 0
	if c.logicalWidth > 0 {
		c.scaleX = float64(c.termWidth) / c.logicalWidth
	}
	if c.logicalHeight > 0 {
		c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
	}
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Fill sets every pixel to color.
func (c *Canvas) Fill(color object.Color) {
	for i := range c.pixels {
		c.pixels[i] = color
	}
}

// ForceRedraw makes the next Render repaint every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// MarkDirty makes the next Render repaint n cells starting at the 0-based
// cell (col, row). Call it for cells covered by text overlays.
func (c *Canvas) MarkDirty(col, row, n int) {
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := max(col, 0); x < col+n && x < c.termWidth; x++ {
		c.prev[row*c.termWidth+x].valid = false
	}
}

// setPixel sets a pixel at terminal sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color object.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// Pixel returns the color at sub-pixel (x, y), or 0 outside the canvas.
func (c *Canvas) Pixel(x, y int) object.Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return 0
}

// SetFloat sets the pixel under logical point (x, y).
func (c *Canvas) SetFloat(x, y float64, color object.Color) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), color)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, color object.Color) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, color)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// EachCell calls fn for every terminal cell with its top and bottom colors.
// col and row are 0-based and exclude the offset.
func (c *Canvas) EachCell(fn func(col, row int, top, bottom object.Color)) {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		for col := 0; col < c.termWidth; col++ {
			fn(col, row, c.pixels[topOffset+col], c.pixels[bottomOffset+col])
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes stays under a typical MTU for smooth SSH transmission.
const maxChunkSize = 1400

// Render writes every changed cell to w using half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	cursorCol, cursorRow := -1, -1

	c.EachCell(func(col, row int, top, bottom object.Color) {
		i := row*c.termWidth + col
		now := cell{top: top, bottom: bottom, valid: true}
		if c.prev[i] == now {
			return
		}
		c.prev[i] = now

		if col != cursorCol || row != cursorRow {
			buf = append(buf, "\033["...)
			buf = strconv.AppendInt(buf, int64(row+1+c.offsetRow), 10)
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(col+1+c.offsetCol), 10)
			buf = append(buf, 'H')
		}
		buf = appendCell(buf, top, bottom)
		cursorCol, cursorRow = col+1, row
	})
	if len(buf) > 0 {
		buf = append(buf, seqReset...)
	}
	c.renderBuf = buf

	// Write output in chunks for optimal network flow
	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > maxChunkSize {
			chunk = buf[:maxChunkSize]
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		buf = buf[len(chunk):]
	}
	return nil
}

// appendCell appends the style and glyph for one cell.
func appendCell(b []byte, top, bottom object.Color) []byte {
	switch {
	case top == 0 && bottom == 0:
		b = append(b, seqReset...)
		return append(b, BlockEmpty)
	case top == bottom:
		b = appendSGR(b, top, 0)
		return append(b, string(BlockFull)...)
	case bottom == 0:
		b = appendSGR(b, top, 0)
		return append(b, string(BlockUpperHalf)...)
	case top == 0:
		b = appendSGR(b, bottom, 0)
		return append(b, string(BlockLowerHalf)...)
	default:
		b = appendSGR(b, top, bottom)
		return append(b, string(BlockUpperHalf)...)
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return nil
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf []byte
	hline := func(row int, l, r string) {
		buf = append(buf, "\033["...)
		buf = strconv.AppendInt(buf, int64(row), 10)
		buf = append(buf, ';')
		if hasH {
			buf = strconv.AppendInt(buf, int64(left), 10)
			buf = append(buf, 'H')
			buf = append(buf, l...)
		} else {
			buf = strconv.AppendInt(buf, int64(c.offsetCol+1), 10)
			buf = append(buf, 'H')
		}
		for i := 0; i < c.termWidth; i++ {
			buf = append(buf, "─"...)
		}
		if hasH {
			buf = append(buf, r...)
		}
	}

	if hasV {
		hline(top, "┌", "┐")
		hline(bottom, "└", "┘")
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			for _, col := range [2]int{left, right} {
				buf = append(buf, "\033["...)
				buf = strconv.AppendInt(buf, int64(row), 10)
				buf = append(buf, ';')
				buf = strconv.AppendInt(buf, int64(col), 10)
				buf = append(buf, 'H')
				buf = append(buf, "│"...)
			}
		}
	}

	_, err := w.Write(buf)
	return err
}
