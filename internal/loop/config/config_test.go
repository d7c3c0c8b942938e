package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestFramesPerBeat(t *testing.T) {
	got := Default().FramesPerBeat()
	want := 60.0 / 130.0 * 60.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("FramesPerBeat = %v, want %v", got, want)
	}
}

func TestParseMergesOverDefaults(t *testing.T) {
	data := []byte(`
beat:
  bpm: 120
bullets:
  max: 20
`)
	tun, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tun.Beat.BPM != 120 {
		t.Errorf("bpm = %v, want 120", tun.Beat.BPM)
	}
	if tun.Bullets.Max != 20 {
		t.Errorf("bullets.max = %d, want 20", tun.Bullets.Max)
	}
	def := Default()
	if tun.Beat.GrazeFrames != def.Beat.GrazeFrames {
		t.Errorf("graze_frames = %d, want default %d", tun.Beat.GrazeFrames, def.Beat.GrazeFrames)
	}
	if tun.Player != def.Player {
		t.Errorf("player = %+v, want defaults %+v", tun.Player, def.Player)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero bpm", "beat:\n  bpm: 0\n"},
		{"despawn inside spawn", "bullets:\n  spawn_margin: 150\n"},
		{"max below initial", "bullets:\n  initial: 60\n"},
		{"graze smaller than core", "player:\n  graze_radius: 5\n"},
		{"smoothing above one", "player:\n  smoothing: 1.5\n"},
		{"graze window as long as a beat", "beat:\n  bpm: 130\n  graze_frames: 30\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidTuning) {
				t.Fatalf("Parse error = %v, want ErrInvalidTuning", err)
			}
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("beat: [1, 2")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestLoad(t *testing.T) {
	tun, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if tun != Default() {
		t.Fatalf("Load(\"\") = %+v, want defaults", tun)
	}

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("effects:\n  graze_score: 250\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tun, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tun.Effects.GrazeScore != 250 {
		t.Fatalf("graze_score = %d, want 250", tun.Effects.GrazeScore)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load missing = %v, want ErrNotExist", err)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("beat:\n  bpm: 130\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("beat:\n  bpm: 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case tun := <-w.Tunings:
		if tun.Beat.BPM != 90 {
			t.Fatalf("reloaded bpm = %v, want 90", tun.Beat.BPM)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Tunings; ok {
		t.Fatal("Tunings should be closed")
	}
}
