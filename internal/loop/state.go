package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/graze/internal/beat"
	"github.com/tomz197/graze/internal/loop/config"
	"github.com/tomz197/graze/internal/object"
)

// GameState represents the current game phase.
type GameState int

const (
	StateTitle    GameState = iota // Title screen
	StatePlaying                   // Active gameplay
	StateGameOver                  // Player was hit, show restart prompt
)

func (g GameState) String() string {
	switch g {
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Session holds all state for one game: the player, every entity pool, the
// beat controller and the score. Nothing outside a Session is mutated by
// the simulation.
type Session struct {
	state GameState
	score int
	frame int

	tuning  config.Tuning
	pending *config.Tuning // Applied at the next reset

	rng      object.Rand
	listener ScoreListener

	beat      *beat.Controller
	player    *object.Player
	bullets   *object.Pool[*object.Bullet]
	particles *object.Pool[*object.Particle]
	texts     *object.Pool[*object.TextEffect]

	screen  object.Screen
	targetX float64
	targetY float64
}

// SessionOptions configures a new Session.
type SessionOptions struct {
	Tuning   config.Tuning
	Rand     object.Rand   // Defaults to a time-seeded source
	Listener ScoreListener // Optional
	Screen   object.Screen // Initial viewport in world units
}

// NewSession creates a session on the title screen. The tuning must be valid.
func NewSession(opts SessionOptions) *Session {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	t := opts.Tuning

	s := &Session{
		state:     StateTitle,
		tuning:    t,
		rng:       rng,
		listener:  opts.Listener,
		beat:      beat.NewController(t.Beat.BPM, t.Beat.FrameRate, t.Beat.GrazeFrames),
		bullets:   object.NewPool[*object.Bullet](t.Bullets.Max),
		particles: object.NewPool[*object.Particle](64),
		texts:     object.NewPool[*object.TextEffect](8),
		screen:    opts.Screen,
	}
	cx, cy := s.screen.Center()
	s.player = object.NewPlayer(cx, cy, t.Player.Radius, t.Player.GrazeRadius)
	s.targetX, s.targetY = cx, cy
	return s
}

// State returns the current game phase.
func (s *Session) State() GameState { return s.state }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Frames returns the number of steps simulated since the game started.
func (s *Session) Frames() int { return s.frame }

// Tuning returns the tuning of the current game.
func (s *Session) Tuning() config.Tuning { return s.tuning }

// GrazeActive reports whether the graze window is open.
func (s *Session) GrazeActive() bool { return s.beat.GrazeActive() }

// Player returns the avatar.
func (s *Session) Player() *object.Player { return s.player }

// Bullets returns the live bullets. Valid until the next Step.
func (s *Session) Bullets() []*object.Bullet { return s.bullets.Items() }

// Particles returns the live particles. Valid until the next Step.
func (s *Session) Particles() []*object.Particle { return s.particles.Items() }

// Texts returns the live text effects. Valid until the next Step.
func (s *Session) Texts() []*object.TextEffect { return s.texts.Items() }

// Screen returns the viewport in world units.
func (s *Session) Screen() object.Screen { return s.screen }

// Target returns the point the player is steering towards.
func (s *Session) Target() (float64, float64) { return s.targetX, s.targetY }

// Fill copies the session into f for rendering.
func (s *Session) Fill(f *Frame) {
	f.State = s.state
	f.Score = s.score
	f.Frames = s.frame
	f.Screen = s.screen
	f.Player = s.player
	f.Target = [2]float64{s.targetX, s.targetY}
	f.Bullets = s.bullets.Items()
	f.Particles = s.particles.Items()
	f.Texts = s.texts.Items()
	f.GrazeActive = s.beat.GrazeActive()
	f.BeatProgress = s.beat.Progress()
}
