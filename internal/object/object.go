package object

import "math/rand"

// Entity is anything the simulation advances once per frame.
type Entity interface {
	// Advance moves the entity forward by dt frames.
	Advance(dt float64)

	// Alive reports whether the entity should stay in its pool.
	Alive() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// Rand is the subset of *rand.Rand the spawn rules draw from.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

var _ Rand = (*rand.Rand)(nil)

// uniform returns a value drawn uniformly from [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Screen is the viewport size in world units.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the screen.
func (s Screen) Center() (float64, float64) {
	return s.Width / 2, s.Height / 2
}

// Color is a 24-bit RGB color. The zero value means "nothing drawn".
type Color uint32

// Palette.
const (
	White Color = 0xffffff
	Cyan  Color = 0x00ffff
	Pink  Color = 0xff5080
)

// RGB splits the color into channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBColor builds a color from channels.
func RGBColor(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Scale darkens the color by f in [0,1], used to fade effects out.
func (c Color) Scale(f float64) Color {
	if f >= 1 {
		return c
	}
	if f <= 0 {
		return 0
	}
	r, g, b := c.RGB()
	return RGBColor(uint8(float64(r)*f), uint8(float64(g)*f), uint8(float64(b)*f))
}
