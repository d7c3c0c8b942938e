// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Frame pacing. Every per-frame constant in Tuning assumes this rate.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// World units covered by one terminal cell. A cell holds two vertical
// sub-pixels, so one sub-pixel is UnitsPerColumn x UnitsPerRow/2.
const (
	UnitsPerColumn = 8
	UnitsPerRow    = 16
)

// Leaderboard
const (
	LeaderboardSize = 5
)

// ErrInvalidTuning is wrapped by every Validate failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// BeatTuning drives the graze window.
type BeatTuning struct {
	BPM         float64 `yaml:"bpm"`
	FrameRate   float64 `yaml:"frame_rate"`
	GrazeFrames int     `yaml:"graze_frames"` // Graze window length per beat
}

// PlayerTuning sets the avatar's size and responsiveness.
type PlayerTuning struct {
	Radius      float64 `yaml:"radius"`
	GrazeRadius float64 `yaml:"graze_radius"`
	Smoothing   float64 `yaml:"smoothing"` // Fraction of the gap to the target closed per frame
	KeyNudge    float64 `yaml:"key_nudge"` // Target movement per frame while an arrow key is held
}

// BulletTuning controls spawning, motion and density.
type BulletTuning struct {
	Radius         float64 `yaml:"radius"`
	SpawnMargin    float64 `yaml:"spawn_margin"`
	DespawnMargin  float64 `yaml:"despawn_margin"`
	InwardSpeedMin float64 `yaml:"inward_speed_min"`
	InwardSpeedMax float64 `yaml:"inward_speed_max"`
	TangentSpeed   float64 `yaml:"tangent_speed"`
	Initial        int     `yaml:"initial"`
	RampInterval   int     `yaml:"ramp_interval"` // Frames between ramp spawns
	Max            int     `yaml:"max"`
}

// EffectTuning controls grazes and their cosmetic feedback.
type EffectTuning struct {
	GrazeScore    int     `yaml:"graze_score"`
	GrazeLabel    string  `yaml:"graze_label"`
	BurstCount    int     `yaml:"burst_count"`
	ParticleSpeed float64 `yaml:"particle_speed"` // Max per-axis speed
	ParticleDecay float64 `yaml:"particle_decay"`
	LabelSpeed    float64 `yaml:"label_speed"` // Upward drift per frame
	LabelDecay    float64 `yaml:"label_decay"`
}

// Tuning holds every gameplay constant. Lengths are world units,
// speeds are world units per frame.
type Tuning struct {
	Beat    BeatTuning   `yaml:"beat"`
	Player  PlayerTuning `yaml:"player"`
	Bullets BulletTuning `yaml:"bullets"`
	Effects EffectTuning `yaml:"effects"`
}

// Default returns the stock tuning.
func Default() Tuning {
	return Tuning{
		Beat: BeatTuning{
			BPM:         130,
			FrameRate:   TargetFPS,
			GrazeFrames: 15,
		},
		Player: PlayerTuning{
			Radius:      10,
			GrazeRadius: 50,
			Smoothing:   0.2,
			KeyNudge:    12,
		},
		Bullets: BulletTuning{
			Radius:         6,
			SpawnMargin:    20,
			DespawnMargin:  100,
			InwardSpeedMin: 2,
			InwardSpeedMax: 5,
			TangentSpeed:   1,
			Initial:        5,
			RampInterval:   60,
			Max:            50,
		},
		Effects: EffectTuning{
			GrazeScore:    100,
			GrazeLabel:    "GRAZE!",
			BurstCount:    10,
			ParticleSpeed: 5,
			ParticleDecay: 0.05,
			LabelSpeed:    1,
			LabelDecay:    0.02,
		},
	}
}

// FramesPerBeat converts the tempo to frames, assuming FrameRate steps per second.
func (t Tuning) FramesPerBeat() float64 {
	if t.Beat.BPM <= 0 {
		return 0
	}
	return 60 / t.Beat.BPM * t.Beat.FrameRate
}

// Validate rejects tunings the simulation cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidTuning}, args...)...))
		}
	}

	check(t.Beat.BPM > 0, "beat.bpm must be positive, got %v", t.Beat.BPM)
	check(t.Beat.FrameRate > 0, "beat.frame_rate must be positive, got %v", t.Beat.FrameRate)
	check(t.Beat.GrazeFrames > 0, "beat.graze_frames must be positive, got %d", t.Beat.GrazeFrames)
	check(float64(t.Beat.GrazeFrames) < t.FramesPerBeat(), "beat.graze_frames %d must be shorter than a beat (%.2f frames)", t.Beat.GrazeFrames, t.FramesPerBeat())
	check(t.Player.Radius > 0, "player.radius must be positive, got %v", t.Player.Radius)
	check(t.Player.GrazeRadius >= t.Player.Radius, "player.graze_radius %v is smaller than player.radius %v", t.Player.GrazeRadius, t.Player.Radius)
	check(t.Player.Smoothing > 0 && t.Player.Smoothing <= 1, "player.smoothing must be in (0,1], got %v", t.Player.Smoothing)
	check(t.Player.KeyNudge >= 0, "player.key_nudge must not be negative, got %v", t.Player.KeyNudge)
	check(t.Bullets.Radius > 0, "bullets.radius must be positive, got %v", t.Bullets.Radius)
	check(t.Bullets.SpawnMargin >= 0, "bullets.spawn_margin must not be negative, got %v", t.Bullets.SpawnMargin)
	check(t.Bullets.DespawnMargin > t.Bullets.SpawnMargin, "bullets.despawn_margin %v must exceed bullets.spawn_margin %v", t.Bullets.DespawnMargin, t.Bullets.SpawnMargin)
	check(t.Bullets.InwardSpeedMin > 0, "bullets.inward_speed_min must be positive, got %v", t.Bullets.InwardSpeedMin)
	check(t.Bullets.InwardSpeedMax >= t.Bullets.InwardSpeedMin, "bullets.inward_speed_max %v is below bullets.inward_speed_min %v", t.Bullets.InwardSpeedMax, t.Bullets.InwardSpeedMin)
	check(t.Bullets.TangentSpeed >= 0, "bullets.tangent_speed must not be negative, got %v", t.Bullets.TangentSpeed)
	check(t.Bullets.Initial >= 0, "bullets.initial must not be negative, got %d", t.Bullets.Initial)
	check(t.Bullets.RampInterval > 0, "bullets.ramp_interval must be positive, got %d", t.Bullets.RampInterval)
	check(t.Bullets.Max >= t.Bullets.Initial, "bullets.max %d is below bullets.initial %d", t.Bullets.Max, t.Bullets.Initial)
	check(t.Effects.GrazeScore >= 0, "effects.graze_score must not be negative, got %d", t.Effects.GrazeScore)
	check(t.Effects.BurstCount >= 0, "effects.burst_count must not be negative, got %d", t.Effects.BurstCount)
	check(t.Effects.ParticleDecay > 0, "effects.particle_decay must be positive, got %v", t.Effects.ParticleDecay)
	check(t.Effects.LabelDecay > 0, "effects.label_decay must be positive, got %v", t.Effects.LabelDecay)

	return errors.Join(errs...)
}

// Parse decodes YAML over the defaults. Keys missing from data keep their
// default values.
func Parse(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("config: unmarshal tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("config: validate tuning: %w", err)
	}
	return t, nil
}

// Load reads a tuning file. An empty path yields the defaults.
func Load(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
