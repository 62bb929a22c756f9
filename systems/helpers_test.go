package systems

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cfg "github.com/automoto/handbeat/config"
)

// scriptedRandom replays fixed values, then falls back to zero
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// Angle fractions of a full turn
const (
	towardMinusZ = 0.75 // spawn at (0, h, -R)
	towardPlusZ  = 0.25
)

// Pool indices
const (
	pickWeak   = 0
	pickMedium = 1
	pickStrong = 2
)

func newTestSimulation(t *testing.T, rng Random) *Simulation {
	t.Helper()
	heights, err := NewHeightStrategy(cfg.HeightHarmonic, cfg.Arena)
	require.NoError(t, err)
	sim := NewSimulation(cfg.Enemy, cfg.Arena, rng, heights)
	sim.Start(0)
	return sim
}

func horizontal(x, z float64) float64 {
	return math.Hypot(x, z)
}

const tick = 16 * time.Millisecond
