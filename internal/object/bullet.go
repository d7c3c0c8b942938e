package object

import "github.com/tomz197/graze/internal/physics"

// Bullet is a hazard that drifts in from a screen edge.
type Bullet struct {
	X, Y   float64 // Position (center)
	VX, VY float64 // Velocity (units per frame)
	Radius float64 // Collision/draw radius
	Color  Color
	Active bool // Cleared exactly once, right before removal
}

// NewBullet creates an active bullet.
func NewBullet(x, y, vx, vy, radius float64) *Bullet {
	return &Bullet{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Radius: radius,
		Color:  Cyan,
		Active: true,
	}
}

// Advance moves the bullet in a straight line.
func (b *Bullet) Advance(dt float64) {
	b.X += b.VX * dt
	b.Y += b.VY * dt
}

// Alive reports whether the bullet is still active.
func (b *Bullet) Alive() bool {
	return b.Active
}

// OutOfBounds reports whether the bullet has left the screen grown by margin.
func (b *Bullet) OutOfBounds(screen Screen, margin float64) bool {
	return physics.OutsideRect(b.X, b.Y, screen.Width, screen.Height, margin)
}

// Deactivate marks the bullet as spent.
func (b *Bullet) Deactivate() {
	b.Active = false
}

// GetPosition returns the bullet's center position.
func (b *Bullet) GetPosition() (float64, float64) {
	return b.X, b.Y
}

// GetRadius returns the bullet's collision radius.
func (b *Bullet) GetRadius() float64 {
	return b.Radius
}
