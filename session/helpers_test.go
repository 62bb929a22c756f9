package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/gesture"
	"github.com/automoto/handbeat/systems"
)

const tick = 16 * time.Millisecond

// fixedRandom always draws the same values, so every spawn is a weak enemy
// at the same spot.
type fixedRandom struct{}

func (fixedRandom) Float64() float64 { return 0.75 }
func (fixedRandom) IntN(int) int     { return 0 }

// firstEnemyHits reports a hit on the oldest live enemy for every cast
type firstEnemyHits struct {
	sim *systems.Simulation
}

func (h firstEnemyHits) Cast(systems.Ray, float64) systems.Hit {
	enemies := h.sim.Snapshot()
	if len(enemies) == 0 {
		return systems.Hit{}
	}
	return systems.Hit{Kind: systems.HitEnemy, EnemyID: enemies[0].ID, Distance: 10}
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Random = fixedRandom{}
	return opts
}

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

// pinchedHand is an edge-on aiming hand with the thumb touching the index
func pinchedHand() gesture.HandFrame {
	return edgeOnHand(0.05)
}

func openHand() gesture.HandFrame {
	return edgeOnHand(0.5)
}

func edgeOnHand(pinch float64) gesture.HandFrame {
	const scale = 0.2
	w := gesture.Landmark{X: 0.5, Y: 0.6}
	at := func(x, y, z float64) gesture.Landmark {
		return gesture.Landmark{X: w.X + x, Y: w.Y + y, Z: w.Z + z}
	}

	var f gesture.HandFrame
	lm := &f.Landmarks
	lm[gesture.Wrist] = w
	for i, y := range []float64{0, -0.08, -0.12, -0.16} {
		lm[gesture.IndexMCP+i] = at(0.03, y, -scale)
		lm[gesture.MiddleMCP+i] = at(0, y, -scale)
	}
	for i := gesture.RingMCP; i <= gesture.PinkyTip; i++ {
		lm[i] = at(-0.03, -0.02, -0.15)
	}

	tip := lm[gesture.IndexTip]
	gap := pinch * scale
	lm[gesture.ThumbTip] = gesture.Landmark{X: tip.X + gap, Y: tip.Y, Z: tip.Z}
	lm[gesture.ThumbIP] = gesture.Landmark{X: tip.X + gap + 0.08, Y: tip.Y, Z: tip.Z}
	lm[gesture.ThumbMCP] = gesture.Landmark{X: tip.X + gap + 0.12, Y: tip.Y + 0.06, Z: tip.Z}
	lm[gesture.ThumbCMC] = gesture.Landmark{X: tip.X + gap + 0.14, Y: tip.Y + 0.1, Z: tip.Z}
	return f
}

// beatInputs plays a steady amplitude and then one spike at the last tick
func beatInputs(from time.Duration, quiet int) []Input {
	var out []Input
	now := from
	for i := 0; i < quiet; i++ {
		out = append(out, Input{Now: now, Amplitude: 30, Playing: true})
		now += tick
	}
	return append(out, Input{Now: now, Amplitude: 100, Playing: true})
}

func hasCue(cues []cfg.SoundID, id cfg.SoundID) bool {
	for _, c := range cues {
		if c == id {
			return true
		}
	}
	return false
}
