// Package draw renders game frames to ANSI terminals using colored
// half-block characters.
package draw

import (
	"strconv"

	"github.com/tomz197/graze/internal/object"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqReset      = "\033[0m"
)

// appendSGR appends a truecolor style sequence. A zero color leaves that
// layer at the terminal default.
func appendSGR(b []byte, fg, bg object.Color) []byte {
	b = append(b, "\033[0"...)
	if fg != 0 {
		r, g, bl := fg.RGB()
		b = append(b, ";38;2;"...)
		b = appendRGB(b, r, g, bl)
	}
	if bg != 0 {
		r, g, bl := bg.RGB()
		b = append(b, ";48;2;"...)
		b = appendRGB(b, r, g, bl)
	}
	return append(b, 'm')
}

func appendRGB(b []byte, r, g, bl uint8) []byte {
	b = strconv.AppendUint(b, uint64(r), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(g), 10)
	b = append(b, ';')
	return strconv.AppendUint(b, uint64(bl), 10)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
