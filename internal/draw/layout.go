package draw

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tomz197/graze/internal/loop"
	"github.com/tomz197/graze/internal/object"
)

// Text is a string placed on a 0-based terminal cell.
type Text struct {
	Col   int
	Row   int
	S     string
	Color object.Color
}

// Width returns the number of cells the text covers.
func (t Text) Width() int {
	return utf8.RuneCountInString(t.S)
}

// Text colors.
var (
	hudColor    = object.RGBColor(200, 200, 200)
	dimColor    = object.RGBColor(120, 120, 140)
	titleColor  = object.Cyan
	noticeColor = object.RGBColor(255, 200, 80)
)

const meterSlots = 12

// Layout returns every text overlay for f on a cols x rows display. Texts
// are clipped to the display.
func Layout(f *loop.Frame, cols, rows int) []Text {
	l := layout{cols: cols, rows: rows}
	cy := rows / 2

	switch f.State {
	case loop.StateTitle:
		l.center(cy-3, "G R A Z E", titleColor)
		l.center(cy-1, "Bullets fall on the beat. Touch them off-beat and you're out.", hudColor)
		l.center(cy, "While the ring glows pink, brush past them for points.", hudColor)
		l.center(cy+2, "Press SPACE to Start", object.White)
		l.center(cy+4, "Controls: mouse or WASD/Arrows to move, Q to quit", dimColor)

	case loop.StatePlaying:
		l.labels(f)
		l.hud(f)

	case loop.StateGameOver:
		l.labels(f)
		l.center(cy-4, "G A M E   O V E R", object.Pink)
		l.center(cy-2, fmt.Sprintf("Final score: %d", f.Score), object.White)
		row := cy
		if len(f.Leaders) > 0 {
			l.center(row, "High scores", dimColor)
			row++
			for i, e := range f.Leaders {
				l.center(row, fmt.Sprintf("%d. %-12s %7d", i+1, truncate(e.Name, 12), e.Score), hudColor)
				row++
			}
			row++
		}
		l.center(row, "Press SPACE or R to restart, Q to quit", dimColor)
	}

	if f.Notice != "" {
		l.center(rows-1, f.Notice, noticeColor)
	}
	return l.out
}

type layout struct {
	cols, rows int
	out        []Text
}

// add places s at (col, row), clipping it to the display.
func (l *layout) add(col, row int, s string, color object.Color) {
	if row < 0 || row >= l.rows || s == "" {
		return
	}
	runes := []rune(s)
	if col < 0 {
		if -col >= len(runes) {
			return
		}
		runes = runes[-col:]
		col = 0
	}
	if col >= l.cols {
		return
	}
	if col+len(runes) > l.cols {
		runes = runes[:l.cols-col]
	}
	l.out = append(l.out, Text{Col: col, Row: row, S: string(runes), Color: color})
}

func (l *layout) center(row int, s string, color object.Color) {
	l.add(l.cols/2-utf8.RuneCountInString(s)/2, row, s, color)
}

// hud draws the score, the beat meter and the graze indicator.
func (l *layout) hud(f *loop.Frame) {
	l.add(1, 0, fmt.Sprintf("Score: %d", f.Score), hudColor)

	filled := int(f.BeatProgress * meterSlots)
	meter := "BEAT [" + strings.Repeat("=", filled) + strings.Repeat(" ", meterSlots-filled) + "]"
	l.add(l.cols-utf8.RuneCountInString(meter)-1, 0, meter, dimColor)

	if f.GrazeActive {
		l.center(0, "* GRAZE *", object.Pink)
	}
}

// labels places the floating text effects, fading with their life.
func (l *layout) labels(f *loop.Frame) {
	if f.Screen.Width <= 0 || f.Screen.Height <= 0 {
		return
	}
	for _, t := range f.Texts {
		col := int(t.X / f.Screen.Width * float64(l.cols))
		row := int(t.Y / f.Screen.Height * float64(l.rows))
		if t.Y < 0 {
			continue
		}
		col -= utf8.RuneCountInString(t.Text) / 2
		l.add(col, row, t.Text, t.Color.Scale(max(t.Life, 0.3)))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
