package draw

import (
	"github.com/tomz197/graze/internal/loop"
	"github.com/tomz197/graze/internal/object"
)

// World colors that only exist on screen.
var (
	grazeTint   = object.RGBColor(36, 6, 22)
	beatColor   = object.RGBColor(70, 70, 110)
	targetColor = object.RGBColor(90, 90, 90)
)

// Paint draws the world of f onto c. The canvas is rescaled so the whole
// world fits.
func Paint(c *Canvas, f *loop.Frame) {
	c.SetLogical(f.Screen.Width, f.Screen.Height)
	c.Clear()
	if f.State == loop.StateTitle || f.Player == nil {
		return
	}

	p := f.Player
	if f.GrazeActive {
		c.Fill(grazeTint)
		c.DrawCircle(p.X, p.Y, p.GrazeRadius, object.Pink)
	} else if ring := beatColor.Scale(f.BeatProgress); ring != 0 {
		// Shrinks onto the player and brightens as the next beat approaches.
		c.DrawCircle(p.X, p.Y, max(p.Radius, p.GrazeRadius*(1-f.BeatProgress)), ring)
	}

	if f.State == loop.StatePlaying {
		c.DrawCross(f.Target[0], f.Target[1], 8, targetColor)
	}

	for _, pt := range f.Particles {
		c.SetFloat(pt.X, pt.Y, pt.Color.Scale(pt.Life))
	}
	for _, b := range f.Bullets {
		c.FillCircle(b.X, b.Y, b.Radius, b.Color)
	}

	body := p.Color
	if f.State == loop.StateGameOver {
		body = object.Pink
	}
	c.FillCircle(p.X, p.Y, p.Radius, body)
}
