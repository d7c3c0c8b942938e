// Package beat turns a tempo into a frame-counted graze window.
//
// The controller counts simulation frames, not wall time: at a fixed BPM and
// an assumed frame rate, one beat lasts (60/BPM)*frameRate frames. Each time
// a beat elapses the controller opens a graze window that stays open for a
// fixed number of frames, independent of the beat length.
package beat

import "fmt"

// Controller tracks beat timing and the graze window.
type Controller struct {
	framesPerBeat float64
	grazeFrames   int

	timer     int  // Frames since the last beat
	countdown int  // Frames left in the graze window
	grazing   bool // Whether the graze window is open
}

// NewController creates a controller for the given tempo. It panics if the
// tempo or frame rate would give a non-positive beat length.
func NewController(bpm, frameRate float64, grazeFrames int) *Controller {
	if bpm <= 0 || frameRate <= 0 {
		panic(fmt.Sprintf("beat: invalid tempo %v bpm at %v fps", bpm, frameRate))
	}
	return &Controller{
		framesPerBeat: 60 / bpm * frameRate,
		grazeFrames:   grazeFrames,
	}
}

// Tick advances the controller by one frame.
func (c *Controller) Tick() {
	c.timer++
	if float64(c.timer) >= c.framesPerBeat {
		c.timer = 0
		c.grazing = true
		c.countdown = c.grazeFrames
	}

	if c.grazing {
		c.countdown--
		if c.countdown <= 0 {
			c.countdown = 0
			c.grazing = false
		}
	}
}

// GrazeActive reports whether the graze window is open.
func (c *Controller) GrazeActive() bool {
	return c.grazing
}

// Progress returns how far the current beat has elapsed, in [0,1).
// Presentation only.
func (c *Controller) Progress() float64 {
	return float64(c.timer) / c.framesPerBeat
}

// Countdown returns the frames left in the graze window (0 when closed).
func (c *Controller) Countdown() int {
	return c.countdown
}

// FramesPerBeat returns the beat length in frames.
func (c *Controller) FramesPerBeat() float64 {
	return c.framesPerBeat
}

// Reset returns the controller to the start of a beat with the window closed.
func (c *Controller) Reset() {
	c.timer = 0
	c.countdown = 0
	c.grazing = false
}

// ForceGraze opens the graze window for the configured duration without
// touching the beat timer.
func (c *Controller) ForceGraze() {
	c.grazing = true
	c.countdown = c.grazeFrames
}
