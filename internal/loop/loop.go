// Package loop provides the game session and the frame-paced loop that
// drives it against a frontend.
package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/graze/internal/input"
	"github.com/tomz197/graze/internal/loop/config"
	"github.com/tomz197/graze/internal/object"
	"github.com/tomz197/graze/internal/scoreboard"
)

// Options configures Run.
type Options struct {
	Tuning   config.Tuning
	Tunings  <-chan config.Tuning // Reloaded tunings, applied at the next game
	Rand     object.Rand
	Listener ScoreListener
	Leaders  func() []scoreboard.Entry // Shown on the game over screen
	Logger   *log.Logger

	// IdleTimeout ends the loop when no input arrives for this long.
	// A warning is shown for the last third. Zero disables it.
	IdleTimeout time.Duration

	// Shutdown is closed by the host to end the loop. A notice stays on
	// screen for ShutdownGrace before Run returns.
	Shutdown      <-chan struct{}
	ShutdownGrace time.Duration

	FrameTime time.Duration // Defaults to config.TargetFrameTime
}

// Run drives a session with the standard Input → Update → Draw cycle until
// the player quits, the input closes, ctx is cancelled, the idle timeout
// passes or the host shuts down.
func Run(ctx context.Context, fe Frontend, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	frameTime := opts.FrameTime
	if frameTime <= 0 {
		frameTime = config.TargetFrameTime
	}

	s := NewSession(SessionOptions{
		Tuning:   opts.Tuning,
		Rand:     opts.Rand,
		Listener: opts.Listener,
	})
	updateViewport(s, fe, logger)

	tunings := opts.Tunings
	shutdown := opts.Shutdown
	var shutdownAt time.Time
	lastInput := time.Now()
	var frame Frame

	for {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			return nil
		case <-shutdown:
			shutdown = nil
			shutdownAt = frameStart
			logger.Info("shutting down session")
		default:
		}
		if !shutdownAt.IsZero() && frameStart.Sub(shutdownAt) >= opts.ShutdownGrace {
			return nil
		}

		tunings = drainTunings(s, tunings, logger)

		// ===== INPUT PHASE =====
		in := fe.ReadInput()
		if in.Quit || in.Closed {
			return nil
		}
		if in.Active() {
			lastInput = frameStart
		}
		idle := frameStart.Sub(lastInput)
		if opts.IdleTimeout > 0 && idle > opts.IdleTimeout {
			logger.Info("idle timeout", "idle", idle.Round(time.Second))
			return nil
		}

		// ===== UPDATE PHASE =====
		updateViewport(s, fe, logger)
		before := s.State()
		applyInput(s, in)
		s.Step()
		if s.State() != before {
			logTransition(s, before, logger)
			if kr, ok := fe.(KeyResetter); ok {
				kr.ResetKeys()
			}
		}

		// ===== DRAW PHASE =====
		s.Fill(&frame)
		frame.Leaders = nil
		if s.State() == StateGameOver && opts.Leaders != nil {
			frame.Leaders = opts.Leaders()
		}
		frame.Notice = ""
		switch {
		case !shutdownAt.IsZero():
			frame.Notice = "Server is shutting down"
		case opts.IdleTimeout > 0 && idle > opts.IdleTimeout*2/3:
			frame.Notice = fmt.Sprintf("Idle, disconnecting in %ds", int((opts.IdleTimeout-idle).Seconds())+1)
		}
		if err := fe.Render(&frame); err != nil {
			return fmt.Errorf("loop: render: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}

// drainTunings queues every pending reload and returns the channel to keep
// reading, or nil once it is closed.
func drainTunings(s *Session, ch <-chan config.Tuning, logger *log.Logger) <-chan config.Tuning {
	for ch != nil {
		select {
		case t, ok := <-ch:
			if !ok {
				return nil
			}
			s.SetTuning(t)
			logger.Info("tuning reloaded", "bpm", t.Beat.BPM, "graze_frames", t.Beat.GrazeFrames)
		default:
			return ch
		}
	}
	return nil
}

// updateViewport resizes the session to the frontend's current size. On
// error the previous size is kept.
func updateViewport(s *Session, v Viewport, logger *log.Logger) {
	cols, rows, err := v.Size()
	if err != nil {
		logger.Debug("viewport size", "err", err)
		return
	}
	if cols <= 0 || rows <= 0 {
		return
	}
	s.SetViewport(object.Screen{
		Width:  float64(cols * config.UnitsPerColumn),
		Height: float64(rows * config.UnitsPerRow),
	})
}

// applyInput maps one frame of input onto the session.
func applyInput(s *Session, in input.Input) {
	switch s.State() {
	case StateTitle:
		if in.Confirm {
			s.Start()
		}
	case StateGameOver:
		if in.Confirm || in.Restart {
			s.Restart()
		}
	case StatePlaying:
		if in.Mouse {
			s.SetTarget(
				(float64(in.MouseCol)+0.5)*config.UnitsPerColumn,
				(float64(in.MouseRow)+0.5)*config.UnitsPerRow,
			)
		}
		nudge := s.Tuning().Player.KeyNudge
		var dx, dy float64
		if in.Left {
			dx -= nudge
		}
		if in.Right {
			dx += nudge
		}
		if in.Up {
			dy -= nudge
		}
		if in.Down {
			dy += nudge
		}
		if dx != 0 || dy != 0 {
			s.NudgeTarget(dx, dy)
		}
	}
}

func logTransition(s *Session, before GameState, logger *log.Logger) {
	after := s.State()
	if after == before {
		return
	}
	switch after {
	case StatePlaying:
		logger.Info("game started", "bpm", s.Tuning().Beat.BPM, "bullets", len(s.Bullets()))
	case StateGameOver:
		logger.Info("game over", "score", s.Score(), "frames", s.Frames())
	}
}
