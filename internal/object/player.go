package object

import "github.com/tomz197/graze/internal/physics"

// Player is the avatar that follows the pointer.
type Player struct {
	X, Y        float64 // Position (center)
	Radius      float64 // Core radius, hit in normal mode
	GrazeRadius float64 // Capture radius, active in graze mode
	Color       Color
}

// NewPlayer creates a player at the given position.
func NewPlayer(x, y, radius, grazeRadius float64) *Player {
	return &Player{
		X:           x,
		Y:           y,
		Radius:      radius,
		GrazeRadius: grazeRadius,
		Color:       White,
	}
}

// Follow closes a fraction of the gap between the player and (tx, ty).
func (p *Player) Follow(tx, ty, smoothing float64) {
	p.X = physics.Lerp(p.X, tx, smoothing)
	p.Y = physics.Lerp(p.Y, ty, smoothing)
}

// GetPosition returns the player's center position.
func (p *Player) GetPosition() (float64, float64) {
	return p.X, p.Y
}

// GetRadius returns the player's core radius.
func (p *Player) GetRadius() float64 {
	return p.Radius
}
