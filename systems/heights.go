package systems

import (
	"fmt"
	"math"

	cfg "github.com/automoto/handbeat/config"
)

// HeightStrategy decides the vertical placement of a new enemy. occupied holds
// the current heights of live enemies.
type HeightStrategy interface {
	Place(rng Random, occupied []float64) (height, phase float64, bob bool)
}

// NewHeightStrategy builds the strategy named in the enemy config
func NewHeightStrategy(name string, arena cfg.ArenaConfig) (HeightStrategy, error) {
	switch name {
	case cfg.HeightHarmonic, "":
		return Harmonic{Center: arena.CenterHeight, Amplitude: arena.BobAmplitude}, nil
	case cfg.HeightBand:
		return Band{
			Min:        arena.BandMin,
			Max:        arena.BandMax,
			Separation: arena.BandSeparation,
			Attempts:   arena.BandAttempts,
		}, nil
	}
	return nil, fmt.Errorf("unknown height strategy %q", name)
}

// Harmonic bobs every enemy around a shared centre height with a random
// starting phase.
type Harmonic struct {
	Center    float64
	Amplitude float64
}

func (h Harmonic) Place(rng Random, _ []float64) (float64, float64, bool) {
	phase := rng.Float64() * 2 * math.Pi
	return h.Center + h.Amplitude*math.Sin(phase), phase, true
}

// Band picks a fixed height in [Min, Max], retrying to keep Separation from
// live enemies. After Attempts misses it settles for the last candidate, so
// overlaps remain possible.
type Band struct {
	Min        float64
	Max        float64
	Separation float64
	Attempts   int
}

func (b Band) Place(rng Random, occupied []float64) (float64, float64, bool) {
	attempts := b.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var candidate float64
	for i := 0; i < attempts; i++ {
		candidate = b.Min + rng.Float64()*(b.Max-b.Min)
		if clearOf(candidate, occupied, b.Separation) {
			break
		}
	}
	return candidate, 0, false
}

func clearOf(h float64, occupied []float64, separation float64) bool {
	for _, o := range occupied {
		if math.Abs(h-o) < separation {
			return false
		}
	}
	return true
}
