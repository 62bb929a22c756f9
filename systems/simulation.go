package systems

import (
	"log"
	"math"
	"sort"
	"time"

	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/shared/messages"
	"github.com/automoto/handbeat/systems/factory"
	"github.com/automoto/handbeat/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DamageResult reports what a Damage call did
type DamageResult struct {
	Found  bool // False for unknown or already removed ids
	Killed bool // This call removed the enemy
	Health int  // Health left, never negative
	Type   cfg.EnemyType
}

// EnemySnapshot is the read-only view of one enemy handed to renderers
type EnemySnapshot struct {
	ID        uint64             `json:"id"`
	Position  components.Vector3 `json:"position"`
	Type      cfg.EnemyType      `json:"type"`
	Health    int                `json:"health"`
	MaxHealth int                `json:"maxHealth"`
	Size      float64            `json:"size"`
}

// Simulation owns every enemy, the boss timer and the collision space. All
// mutation goes through OnBeat, Tick, MaybeSpawnBoss, Damage and Clear.
type Simulation struct {
	cfg     cfg.EnemyConfig
	arena   cfg.ArenaConfig
	rng     Random
	heights HeightStrategy

	ecs   *ecs.ECS
	space *resolv.Space
	timer *donburi.Entry

	byID     map[uint64]donburi.Entity
	nextID   uint64
	spawning bool

	sessionID string
	onReached func(messages.ReachedPlayerEvent)
}

// NewSimulation creates an idle simulation with its own world, collision
// space and scenery.
func NewSimulation(enemyCfg cfg.EnemyConfig, arena cfg.ArenaConfig, rng Random, heights HeightStrategy) *Simulation {
	world := donburi.NewWorld()
	s := &Simulation{
		cfg:     enemyCfg,
		arena:   arena,
		rng:     rng,
		heights: heights,
		ecs:     ecs.NewECS(world),
		byID:    make(map[uint64]donburi.Entity),
	}

	spaceEntry := factory.CreateSpace(s.ecs, arena)
	s.space = components.Space.Get(spaceEntry)
	s.timer = factory.CreateBossTimer(s.ecs, enemyCfg.BossInterval)
	for _, tree := range arena.Scenery {
		factory.CreateScenery(s.ecs, arena, tree)
	}
	return s
}

// ECS is the system runner sharing the simulation's world
func (s *Simulation) ECS() *ecs.ECS {
	return s.ecs
}

func (s *Simulation) World() donburi.World {
	return s.ecs.World
}

func (s *Simulation) Space() *resolv.Space {
	return s.space
}

func (s *Simulation) Arena() cfg.ArenaConfig {
	return s.arena
}

// SetSessionID tags published events with the owning session
func (s *Simulation) SetSessionID(id string) {
	s.sessionID = id
}

// OnReached registers a callback run before an enemy that reached the player
// is removed.
func (s *Simulation) OnReached(fn func(messages.ReachedPlayerEvent)) {
	s.onReached = fn
}

// Start enables spawning and restarts the boss timer at now
func (s *Simulation) Start(now time.Duration) {
	s.spawning = true
	timer := components.BossTimer.Get(s.timer)
	timer.LastSpawn = now
	timer.Spawned = 0
}

func (s *Simulation) Spawning() bool {
	return s.spawning
}

// OnBeat spawns one standard enemy and returns its height. It does nothing
// once spawning has been halted.
func (s *Simulation) OnBeat() (float64, bool) {
	if !s.spawning || len(s.cfg.StandardPool) == 0 {
		return 0, false
	}
	enemyType := s.cfg.StandardPool[s.rng.IntN(len(s.cfg.StandardPool))]
	e := s.spawn(enemyType, false)
	return components.Position.Get(e).Y, true
}

// MaybeSpawnBoss spawns a boss when the boss interval has elapsed since the
// last one, independently of beats.
func (s *Simulation) MaybeSpawnBoss(now time.Duration) bool {
	if !s.spawning {
		return false
	}
	timer := components.BossTimer.Get(s.timer)
	if !timer.Due(now) {
		return false
	}
	e := s.spawn(s.cfg.BossType, true)
	timer.LastSpawn = now
	timer.Spawned++
	log.Printf("Boss %d spawned: id=%d at=%s", timer.Spawned, components.Enemy.Get(e).ID, now)
	return true
}

// HoldBossTimer pushes the next boss back by d. The session calls it for
// ticks where the track is paused, so only play time counts toward a boss.
func (s *Simulation) HoldBossTimer(d time.Duration) {
	if !s.spawning || d <= 0 {
		return
	}
	components.BossTimer.Get(s.timer).LastSpawn += d
}

// Bosses is the number of bosses spawned since Start
func (s *Simulation) Bosses() int {
	return components.BossTimer.Get(s.timer).Spawned
}

func (s *Simulation) spawn(enemyType cfg.EnemyType, boss bool) *donburi.Entry {
	typeCfg := s.cfg.Types[enemyType]
	angle := s.rng.Float64() * 2 * math.Pi
	height, phase, bob := s.heights.Place(s.rng, s.occupiedHeights())

	s.nextID++
	pos := components.Vector3{
		X: s.arena.SpawnRadius * math.Cos(angle),
		Y: height,
		Z: s.arena.SpawnRadius * math.Sin(angle),
	}
	e := factory.CreateEnemy(s.ecs, s.arena, typeCfg, factory.EnemySpawn{
		ID:         s.nextID,
		Type:       enemyType,
		Position:   pos,
		BaseHeight: s.baseHeight(height, bob),
		Phase:      phase,
		Bob:        bob,
		Boss:       boss,
	})
	s.byID[s.nextID] = e.Entity()

	SpawnEvents.Publish(s.ecs.World, messages.SpawnEvent{
		EnemyID:   s.nextID,
		EnemyType: enemyType,
		X:         pos.X,
		Y:         pos.Y,
		Z:         pos.Z,
		Boss:      boss,
	})
	return e
}

func (s *Simulation) baseHeight(height float64, bob bool) float64 {
	if bob {
		return s.arena.CenterHeight
	}
	return height
}

func (s *Simulation) occupiedHeights() []float64 {
	heights := make([]float64, 0, len(s.byID))
	tags.Enemy.Each(s.ecs.World, func(e *donburi.Entry) {
		heights = append(heights, components.Position.Get(e).Y)
	})
	return heights
}

// Tick moves every enemy toward the origin along its fixed direction, bobs
// it and removes the ones that reached the kill radius.
func (s *Simulation) Tick(dt time.Duration) {
	secs := dt.Seconds()
	if secs < 0 {
		secs = 0
	}

	var reached []*donburi.Entry
	tags.Enemy.Each(s.ecs.World, func(e *donburi.Entry) {
		enemy := components.Enemy.Get(e)
		pos := components.Position.Get(e)

		// Never step past the origin
		step := math.Min(enemy.Speed*secs, pos.Horizontal())
		pos.X += enemy.Direction.X * step
		pos.Z += enemy.Direction.Z * step

		if enemy.Bob {
			enemy.Phase = math.Mod(enemy.Phase+s.arena.BobFrequency*secs, 2*math.Pi)
			pos.Y = enemy.BaseHeight + s.arena.BobAmplitude*math.Sin(enemy.Phase)
		}
		factory.Footprint(components.Object.Get(e).Object, s.arena, pos.X, pos.Z, enemy.Size)

		if pos.Horizontal() <= s.arena.KillRadius {
			reached = append(reached, e)
		}
	})

	sort.Slice(reached, func(i, j int) bool {
		return components.Enemy.Get(reached[i]).ID < components.Enemy.Get(reached[j]).ID
	})
	for _, e := range reached {
		enemy := components.Enemy.Get(e)
		ev := messages.ReachedPlayerEvent{
			SessionID: s.sessionID,
			EnemyID:   enemy.ID,
			EnemyType: enemy.Type,
			Damage:    enemy.Damage,
		}
		if s.onReached != nil {
			s.onReached(ev)
		}
		ReachedEvents.Publish(s.ecs.World, ev)
		s.remove(e)
	}
}

// Damage takes amount from the enemy's health and removes it at zero.
// Unknown or already removed ids are a no-op.
func (s *Simulation) Damage(id uint64, amount int) DamageResult {
	e, ok := s.entry(id)
	if !ok {
		return DamageResult{}
	}
	enemy := components.Enemy.Get(e)
	hp := components.Health.Get(e)
	if amount > 0 {
		hp.Take(amount)
	}

	res := DamageResult{Found: true, Health: hp.Current, Type: enemy.Type}
	if !hp.Alive() {
		res.Killed = true
		s.remove(e)
	}
	return res
}

// Clear removes every enemy and halts spawning
func (s *Simulation) Clear() {
	var all []*donburi.Entry
	tags.Enemy.Each(s.ecs.World, func(e *donburi.Entry) {
		all = append(all, e)
	})
	for _, e := range all {
		s.remove(e)
	}
	s.spawning = false
}

// Len is the number of live enemies
func (s *Simulation) Len() int {
	return len(s.byID)
}

// Snapshot lists live enemies ordered by id
func (s *Simulation) Snapshot() []EnemySnapshot {
	out := make([]EnemySnapshot, 0, len(s.byID))
	tags.Enemy.Each(s.ecs.World, func(e *donburi.Entry) {
		enemy := components.Enemy.Get(e)
		hp := components.Health.Get(e)
		out = append(out, EnemySnapshot{
			ID:        enemy.ID,
			Position:  components.Position.Get(e).Vector3,
			Type:      enemy.Type,
			Health:    hp.Current,
			MaxHealth: hp.Max,
			Size:      enemy.Size,
		})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Simulation) entry(id uint64) (*donburi.Entry, bool) {
	ent, ok := s.byID[id]
	if !ok || !s.ecs.World.Valid(ent) {
		return nil, false
	}
	return s.ecs.World.Entry(ent), true
}

func (s *Simulation) remove(e *donburi.Entry) {
	if obj := components.Object.Get(e); obj != nil && obj.Object != nil {
		s.space.Remove(obj.Object)
	}
	delete(s.byID, components.Enemy.Get(e).ID)
	s.ecs.World.Remove(e.Entity())
}
