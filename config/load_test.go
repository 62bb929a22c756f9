package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	saved := Current()
	t.Cleanup(func() { require.NoError(t, Apply(saved)) })
}

func TestDefaultsValidate(t *testing.T) {
	require.NoError(t, Current().Validate())
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	restoreGlobals(t)

	path := filepath.Join(t.TempDir(), "tuning.toml")
	data := `
[gesture]
mode = "two_hand"
lost_grace = "750ms"

[beat]
strategy = "calibrated"
cooldown = "300ms"

[enemy.types.weak]
name = "Flake"
health = 30
speed = 3.0
size = 1.0
reward = 6
player_damage = 10
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	require.NoError(t, LoadFile(path))

	assert.Equal(t, ModeTwoHand, Gesture.Mode)
	assert.Equal(t, 750*time.Millisecond, Gesture.LostGrace)
	assert.Equal(t, 0.18, Gesture.CursorSmoothing, "untouched keys keep defaults")
	assert.Equal(t, BeatCalibrated, Beat.Strategy)
	assert.Equal(t, 300*time.Millisecond, Beat.Cooldown)
	assert.Equal(t, 30, Enemy.Types[EnemyWeak].Health)
	assert.Equal(t, 400, Enemy.Types[EnemyBoss].Health, "other enemy types survive a partial table")
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	restoreGlobals(t)
	before := Current()

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[combat]\nmode = \"laser\"\n"), 0o600))

	err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, before.Combat.Mode, Combat.Mode, "globals untouched on failure")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *File)
	}{
		{"unknown gesture mode", func(f *File) { f.Gesture.Mode = "three_hand" }},
		{"zero smoothing", func(f *File) { f.Gesture.CursorSmoothing = 0 }},
		{"empty window", func(f *File) { f.Beat.WindowSize = 0 }},
		{"pulse longer than cooldown", func(f *File) { f.Beat.PulseDuration = time.Second }},
		{"fft not power of two", func(f *File) { f.Analyser.FFTSize = 1000 }},
		{"band past nyquist", func(f *File) { f.Analyser.LowBandEnd = 5000 }},
		{"undefined pool type", func(f *File) { f.Enemy.StandardPool = []EnemyType{"ghost"} }},
		{"kill radius beyond spawn", func(f *File) { f.Arena.KillRadius = 30 }},
		{"zero ray step", func(f *File) { f.Combat.RayStep = 0 }},
		{"zero tick rate", func(f *File) { f.Session.TickRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Current()
			tt.mutate(&f)
			assert.ErrorIs(t, f.Validate(), ErrInvalid)
		})
	}
}
