package systems

import (
	"math/rand/v2"
	"time"
)

// Random is the only source of randomness for spawning
type Random interface {
	Float64() float64
	IntN(n int) int
}

// NewRandom returns a PCG generator. A zero seed is replaced by the clock.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
