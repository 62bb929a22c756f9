package systems

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"

	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/shared/messages"
	"github.com/automoto/handbeat/tags"
)

func TestOnBeatSpawnsOnCircle(t *testing.T) {
	rng := &scriptedRandom{floats: []float64{towardPlusZ, 0}, ints: []int{pickWeak}}
	sim := newTestSimulation(t, rng)

	height, ok := sim.OnBeat()
	require.True(t, ok)
	assert.InDelta(t, cfg.Arena.CenterHeight, height, 1e-9)

	snap := sim.Snapshot()
	require.Len(t, snap, 1)
	e := snap[0]
	assert.Equal(t, uint64(1), e.ID)
	assert.Equal(t, cfg.EnemyWeak, e.Type)
	assert.Equal(t, 25, e.Health)
	assert.Equal(t, 25, e.MaxHealth)
	assert.InDelta(t, cfg.Arena.SpawnRadius, horizontal(e.Position.X, e.Position.Z), 1e-9)
	assert.InDelta(t, cfg.Arena.SpawnRadius, e.Position.Z, 1e-9)
	assert.Equal(t, 1, sim.Len())
}

func TestOnBeatDirectionPointsAtOrigin(t *testing.T) {
	sim := newTestSimulation(t, NewRandom(7))
	for i := 0; i < 20; i++ {
		_, ok := sim.OnBeat()
		require.True(t, ok)
	}
	tags.Enemy.Each(sim.World(), func(e *donburi.Entry) {
		enemy := components.Enemy.Get(e)
		pos := components.Position.Get(e)
		assert.InDelta(t, 1.0, enemy.Direction.Length(), 1e-9)
		assert.Zero(t, enemy.Direction.Y)
		// Direction is opposite to the spawn offset
		assert.InDelta(t, -pos.X/pos.Horizontal(), enemy.Direction.X, 1e-9)
		assert.InDelta(t, -pos.Z/pos.Horizontal(), enemy.Direction.Z, 1e-9)
		assert.Contains(t, cfg.Enemy.StandardPool, enemy.Type)
	})
}

func TestOnBeatRequiresStart(t *testing.T) {
	heights, err := NewHeightStrategy(cfg.HeightHarmonic, cfg.Arena)
	require.NoError(t, err)
	sim := NewSimulation(cfg.Enemy, cfg.Arena, NewRandom(1), heights)

	_, ok := sim.OnBeat()
	assert.False(t, ok)
	assert.Zero(t, sim.Len())
}

func TestTickApproachesAndReachesOnce(t *testing.T) {
	sim := newTestSimulation(t, NewRandom(42))
	for i := 0; i < 12; i++ {
		sim.OnBeat()
	}
	require.Equal(t, 12, sim.Len())

	reached := map[uint64]int{}
	sim.OnReached(func(ev messages.ReachedPlayerEvent) {
		reached[ev.EnemyID]++
		assert.Contains(t, cfg.Enemy.StandardPool, ev.EnemyType)
		assert.Equal(t, cfg.Enemy.Types[ev.EnemyType].PlayerDamage, ev.Damage)
	})
	published := 0
	ReachedEvents.Subscribe(sim.World(), func(w donburi.World, ev messages.ReachedPlayerEvent) {
		published++
	})

	last := map[uint64]float64{}
	for _, e := range sim.Snapshot() {
		last[e.ID] = horizontal(e.Position.X, e.Position.Z)
	}

	for i := 0; i < 1000; i++ {
		sim.Tick(tick)
		for _, e := range sim.Snapshot() {
			d := horizontal(e.Position.X, e.Position.Z)
			require.LessOrEqual(t, d, last[e.ID]+1e-9, "enemy %d moved away", e.ID)
			require.Greater(t, d, cfg.Arena.KillRadius, "enemy %d inside kill radius", e.ID)
			last[e.ID] = d
		}
		ReachedEvents.ProcessEvents(sim.World())
	}

	assert.Zero(t, sim.Len())
	assert.Len(t, reached, 12)
	for id, n := range reached {
		assert.Equal(t, 1, n, "enemy %d", id)
	}
	assert.Equal(t, 12, published)
}

func TestTickBobsAroundCentre(t *testing.T) {
	sim := newTestSimulation(t, NewRandom(3))
	sim.OnBeat()
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < 300; i++ {
		sim.Tick(tick)
		snap := sim.Snapshot()
		require.Len(t, snap, 1)
		lo = math.Min(lo, snap[0].Position.Y)
		hi = math.Max(hi, snap[0].Position.Y)
	}
	amp := cfg.Arena.BobAmplitude
	assert.GreaterOrEqual(t, lo, cfg.Arena.CenterHeight-amp-1e-9)
	assert.LessOrEqual(t, hi, cfg.Arena.CenterHeight+amp+1e-9)
	assert.Greater(t, hi-lo, amp, "height should actually oscillate")
}

func TestDamageRemovesExactlyOnce(t *testing.T) {
	rng := &scriptedRandom{floats: []float64{towardMinusZ, 0}, ints: []int{pickMedium}}
	sim := newTestSimulation(t, rng)
	sim.OnBeat()
	id := sim.Snapshot()[0].ID

	res := sim.Damage(id, 30)
	assert.Equal(t, DamageResult{Found: true, Health: 20, Type: cfg.EnemyMedium}, res)

	res = sim.Damage(id, 30)
	assert.Equal(t, DamageResult{Found: true, Killed: true, Health: 0, Type: cfg.EnemyMedium}, res)
	assert.Empty(t, sim.Snapshot())

	// Stale id
	assert.Equal(t, DamageResult{}, sim.Damage(id, 30))
	assert.Equal(t, DamageResult{}, sim.Damage(999, 30))
}

func TestDamageIgnoresNonPositiveAmounts(t *testing.T) {
	sim := newTestSimulation(t, &scriptedRandom{})
	sim.OnBeat()
	id := sim.Snapshot()[0].ID

	res := sim.Damage(id, -10)
	assert.True(t, res.Found)
	assert.Equal(t, 25, res.Health)
}

func TestIDsAreNeverReused(t *testing.T) {
	sim := newTestSimulation(t, NewRandom(9))
	seen := map[uint64]bool{}
	var prev uint64
	for i := 0; i < 30; i++ {
		sim.OnBeat()
		snap := sim.Snapshot()
		newest := snap[len(snap)-1].ID
		require.False(t, seen[newest])
		require.Greater(t, newest, prev)
		seen[newest], prev = true, newest
		sim.Damage(newest, 1000)
	}

	sim.Clear()
	sim.Start(time.Minute)
	sim.OnBeat()
	assert.Greater(t, sim.Snapshot()[0].ID, prev)
}

func TestBossTimer(t *testing.T) {
	sim := newTestSimulation(t, NewRandom(5))

	var spawns []time.Duration
	step := 100 * time.Millisecond
	for now := time.Duration(0); now <= 130*time.Second; now += step {
		if sim.MaybeSpawnBoss(now) {
			spawns = append(spawns, now)
		}
	}
	assert.Equal(t, []time.Duration{60 * time.Second, 120 * time.Second}, spawns)

	bosses := 0
	tags.Boss.Each(sim.World(), func(e *donburi.Entry) {
		bosses++
		enemy := components.Enemy.Get(e)
		assert.Equal(t, cfg.EnemyBoss, enemy.Type)
		assert.Equal(t, cfg.Enemy.Types[cfg.EnemyBoss].Health, components.Health.Get(e).Max)
	})
	assert.Equal(t, 2, bosses)
}

func TestBossTimerIdleWhileStopped(t *testing.T) {
	sim := newTestSimulation(t, NewRandom(5))
	sim.Clear()
	assert.False(t, sim.MaybeSpawnBoss(10*time.Minute))

	// Restarting resets the timer
	sim.Start(10 * time.Minute)
	assert.False(t, sim.MaybeSpawnBoss(10*time.Minute+59*time.Second))
	assert.True(t, sim.MaybeSpawnBoss(11*time.Minute))
}

func TestBossTimerHeldWhilePaused(t *testing.T) {
	sim := newTestSimulation(t, NewRandom(5))

	sim.HoldBossTimer(30 * time.Second)
	assert.False(t, sim.MaybeSpawnBoss(60*time.Second))
	assert.True(t, sim.MaybeSpawnBoss(90*time.Second))
	assert.Equal(t, 1, sim.Bosses())

	sim.Clear()
	sim.HoldBossTimer(time.Hour)
	sim.Start(100 * time.Second)
	assert.Zero(t, sim.Bosses())
	assert.True(t, sim.MaybeSpawnBoss(160*time.Second))
}

func TestClearHaltsSpawning(t *testing.T) {
	sim := newTestSimulation(t, NewRandom(11))
	for i := 0; i < 5; i++ {
		sim.OnBeat()
	}
	sim.Clear()

	assert.Zero(t, sim.Len())
	assert.False(t, sim.Spawning())
	_, ok := sim.OnBeat()
	assert.False(t, ok)

	// Only the scenery is left in the collision space
	assert.Len(t, sim.Space().Objects(), len(cfg.Arena.Scenery))
}

func TestSpawnEventsPublished(t *testing.T) {
	sim := newTestSimulation(t, NewRandom(2))
	var got []messages.SpawnEvent
	SpawnEvents.Subscribe(sim.World(), func(w donburi.World, ev messages.SpawnEvent) {
		got = append(got, ev)
	})
	sim.OnBeat()
	sim.MaybeSpawnBoss(cfg.Enemy.BossInterval)
	SpawnEvents.ProcessEvents(sim.World())

	require.Len(t, got, 2)
	assert.False(t, got[0].Boss)
	assert.True(t, got[1].Boss)
	assert.Equal(t, cfg.EnemyBoss, got[1].EnemyType)
}
