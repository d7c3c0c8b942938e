package loop

import (
	"github.com/tomz197/graze/internal/beat"
	"github.com/tomz197/graze/internal/loop/config"
	"github.com/tomz197/graze/internal/object"
)

// Start leaves the title screen. It does nothing in any other state.
func (s *Session) Start() bool {
	if s.state != StateTitle {
		return false
	}
	s.reset()
	s.state = StatePlaying
	return true
}

// Restart begins a new game after a game over. It does nothing in any
// other state.
func (s *Session) Restart() bool {
	if s.state != StateGameOver {
		return false
	}
	s.reset()
	s.state = StatePlaying
	return true
}

// reset rebuilds every piece of game state from the tuning.
func (s *Session) reset() {
	if s.pending != nil {
		s.tuning = *s.pending
		s.pending = nil
	}
	t := s.tuning

	s.score = 0
	s.frame = 0
	s.beat = beat.NewController(t.Beat.BPM, t.Beat.FrameRate, t.Beat.GrazeFrames)

	cx, cy := s.screen.Center()
	s.player = object.NewPlayer(cx, cy, t.Player.Radius, t.Player.GrazeRadius)
	s.targetX, s.targetY = cx, cy

	s.bullets.Reset()
	s.particles.Reset()
	s.texts.Reset()
	for i := 0; i < t.Bullets.Initial; i++ {
		s.spawnBullet()
	}
}

// SetTuning queues a tuning for the next Start or Restart. A game in
// progress keeps its tuning.
func (s *Session) SetTuning(t config.Tuning) {
	s.pending = &t
}

// SetViewport updates the screen size in world units. Entities keep their
// positions; new bullets spawn around the new edges.
func (s *Session) SetViewport(screen object.Screen) {
	s.screen = screen
}

// SetTarget sets the point the player steers towards.
func (s *Session) SetTarget(x, y float64) {
	s.targetX, s.targetY = x, y
}

// NudgeTarget moves the target by (dx, dy), keeping it on screen.
func (s *Session) NudgeTarget(dx, dy float64) {
	s.targetX = clamp(s.targetX+dx, 0, s.screen.Width)
	s.targetY = clamp(s.targetY+dy, 0, s.screen.Height)
}

// ForceGraze opens the graze window immediately.
func (s *Session) ForceGraze() {
	s.beat.ForceGraze()
}

func (s *Session) spawnBullet() {
	b := s.tuning.Bullets
	s.bullets.Add(object.SpawnAtEdge(s.rng, s.screen, object.EdgeSpawn{
		Margin:         b.SpawnMargin,
		InwardSpeedMin: b.InwardSpeedMin,
		InwardSpeedMax: b.InwardSpeedMax,
		TangentSpeed:   b.TangentSpeed,
		Radius:         b.Radius,
	}))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
