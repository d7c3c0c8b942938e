package loop

// Step advances the game by one frame. It does nothing unless playing.
//
// Order: frame counter, beat, density ramp, player, bullets, effects. A
// body hit stops the step before the effects advance.
func (s *Session) Step() {
	if s.state != StatePlaying {
		return
	}

	s.frame++
	s.beat.Tick()

	t := s.tuning.Bullets
	if s.frame%t.RampInterval == 0 && s.bullets.Live() < t.Max {
		s.spawnBullet()
	}

	s.player.Follow(s.targetX, s.targetY, s.tuning.Player.Smoothing)

	if s.updateBullets() {
		return
	}

	s.particles.AdvanceAll(1)
	s.texts.AdvanceAll(1)
}

// updateBullets moves every bullet, resolves hits and replaces spent
// bullets. It reports whether the player was hit.
func (s *Session) updateBullets() bool {
	grazing := s.beat.GrazeActive()
	margin := s.tuning.Bullets.DespawnMargin

	spent := 0
	hurt := false
	for i, n := 0, s.bullets.Len(); i < n && !hurt; i++ {
		b := s.bullets.At(i)
		b.Advance(1)

		if b.OutOfBounds(s.screen, margin) {
			b.Deactivate()
		} else {
			switch checkHit(s.player, b, grazing) {
			case hitGraze:
				s.graze(b)
				b.Deactivate()
			case hitBody:
				s.gameOver()
				b.Deactivate()
				hurt = true
			}
		}

		if !b.Alive() {
			s.bullets.Remove(i)
			spent++
		}
	}

	// Replacements join after compaction so they are not moved this frame.
	s.bullets.Compact()
	for ; spent > 0; spent-- {
		s.spawnBullet()
	}
	return hurt
}
