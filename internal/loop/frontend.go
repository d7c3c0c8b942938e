package loop

import (
	"github.com/tomz197/graze/internal/input"
	"github.com/tomz197/graze/internal/object"
	"github.com/tomz197/graze/internal/scoreboard"
)

// Renderer draws a finished frame. It must not keep references into the
// frame after returning; the entity slices are reused by the next step.
type Renderer interface {
	Render(f *Frame) error
}

// InputSource returns everything the player did since the last call.
type InputSource interface {
	ReadInput() input.Input
}

// Viewport reports the display size in terminal cells.
type Viewport interface {
	Size() (cols, rows int, err error)
}

// Frontend is a complete display: input, size and drawing.
type Frontend interface {
	InputSource
	Viewport
	Renderer
}

// KeyResetter is implemented by frontends that track held keys. Run calls
// ResetKeys on every screen change so a held key does not leak into the
// next screen.
type KeyResetter interface {
	ResetKeys()
}

// ScoreListener is told about score changes. GameOver is called exactly once
// per finished game.
type ScoreListener interface {
	ScoreChanged(score int)
	GameOver(final int)
}

// Frame is a read-only view of a session handed to the Renderer.
type Frame struct {
	State  GameState
	Score  int
	Frames int // Frames simulated in the current game

	Screen    object.Screen // World units
	Player    *object.Player
	Target    [2]float64
	Bullets   []*object.Bullet
	Particles []*object.Particle
	Texts     []*object.TextEffect

	GrazeActive  bool
	BeatProgress float64 // [0,1), for the beat meter

	Leaders []scoreboard.Entry
	Notice  string // One-line status message, e.g. an idle warning
}
