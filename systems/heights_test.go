package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/automoto/handbeat/config"
)

func TestHarmonicPlace(t *testing.T) {
	h := Harmonic{Center: 1.6, Amplitude: 0.4}
	height, phase, bob := h.Place(&scriptedRandom{floats: []float64{0.25}}, nil)
	assert.True(t, bob)
	assert.InDelta(t, math.Pi/2, phase, 1e-12)
	assert.InDelta(t, 2.0, height, 1e-12)
}

func TestBandPlace(t *testing.T) {
	b := Band{Min: 0, Max: 10, Separation: 1, Attempts: 10}

	t.Run("takes the first clear candidate", func(t *testing.T) {
		rng := &scriptedRandom{floats: []float64{0.5, 0.9}}
		height, _, bob := b.Place(rng, []float64{5.2})
		assert.False(t, bob)
		assert.InDelta(t, 9.0, height, 1e-12)
	})

	t.Run("falls back to the last candidate", func(t *testing.T) {
		floats := make([]float64, 10)
		for i := range floats {
			floats[i] = 0.5 + float64(i)*0.001
		}
		rng := &scriptedRandom{floats: floats}
		height, _, _ := b.Place(rng, []float64{5})
		// Still overlapping, and accepted
		assert.InDelta(t, 5.09, height, 1e-9)
		assert.Empty(t, rng.floats)
	})
}

func TestNewHeightStrategy(t *testing.T) {
	s, err := NewHeightStrategy(cfg.HeightBand, cfg.Arena)
	require.NoError(t, err)
	assert.IsType(t, Band{}, s)

	s, err = NewHeightStrategy(cfg.HeightHarmonic, cfg.Arena)
	require.NoError(t, err)
	assert.IsType(t, Harmonic{}, s)

	_, err = NewHeightStrategy("spiral", cfg.Arena)
	assert.Error(t, err)
}

func TestBandSimulationKeepsFixedHeight(t *testing.T) {
	heights, err := NewHeightStrategy(cfg.HeightBand, cfg.Arena)
	require.NoError(t, err)
	sim := NewSimulation(cfg.Enemy, cfg.Arena, NewRandom(4), heights)
	sim.Start(0)

	h, ok := sim.OnBeat()
	require.True(t, ok)
	assert.GreaterOrEqual(t, h, cfg.Arena.BandMin)
	assert.LessOrEqual(t, h, cfg.Arena.BandMax)
	for i := 0; i < 60; i++ {
		sim.Tick(tick)
	}
	assert.Equal(t, h, sim.Snapshot()[0].Position.Y)
}
