package loop

import (
	"github.com/tomz197/graze/internal/object"
	"github.com/tomz197/graze/internal/physics"
)

// hit is the outcome of testing one bullet against the player.
type hit int

const (
	hitNone  hit = iota
	hitGraze     // Bullet entered the graze ring while the window is open
	hitBody      // Bullet touched the player outside the window
)

// checkHit tests a bullet against the player. While grazing only the graze
// ring counts and the player cannot be hurt; otherwise only the body counts.
// Circles that exactly touch do not collide.
func checkHit(p *object.Player, b *object.Bullet, grazing bool) hit {
	px, py := p.GetPosition()
	bx, by := b.GetPosition()

	if grazing {
		if physics.CirclesOverlap(px, py, p.GrazeRadius, bx, by, b.GetRadius()) {
			return hitGraze
		}
		return hitNone
	}
	if physics.CirclesOverlap(px, py, p.GetRadius(), bx, by, b.GetRadius()) {
		return hitBody
	}
	return hitNone
}

// graze scores a grazed bullet and spawns its feedback effects.
func (s *Session) graze(b *object.Bullet) {
	e := s.tuning.Effects
	s.score += e.GrazeScore

	object.SpawnBurst(s.particles, s.rng, b.X, b.Y, object.Pink, object.Burst{
		Count: e.BurstCount,
		Speed: e.ParticleSpeed,
		Decay: e.ParticleDecay,
	})
	s.texts.Add(object.NewTextEffect(b.X, b.Y, e.GrazeLabel, object.Pink, e.LabelSpeed, e.LabelDecay))

	if s.listener != nil {
		s.listener.ScoreChanged(s.score)
	}
}

// gameOver ends the current game.
func (s *Session) gameOver() {
	s.state = StateGameOver
	if s.listener != nil {
		s.listener.GameOver(s.score)
	}
}
