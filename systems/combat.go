package systems

import (
	"time"

	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/shared/messages"
)

// defaultReward is paid for kills of types missing from the reward table
const defaultReward = 35

// DamageTarget is the one operation the resolver may call on the simulation
type DamageTarget interface {
	Damage(id uint64, amount int) DamageResult
}

// Projectile is one shot in flight
type Projectile struct {
	ID        uint64
	SpawnedAt time.Duration
	Ray       Ray
	Traveled  float64
	Resolved  bool
}

// Outcome is the effect of resolving one shot
type Outcome struct {
	ShotID uint64
	Hit    Hit
	Result DamageResult
	Score  *messages.ScoreEvent // Nil unless a live enemy was damaged
}

// Resolver turns firing intent into shots and shots into damage and score
type Resolver struct {
	cfg     cfg.CombatConfig
	target  DamageTarget
	hits    HitTester
	rewards map[cfg.EnemyType]int

	hasShot  bool
	lastShot time.Duration
	nextShot uint64
	shots    []*Projectile
	now      time.Duration

	sessionID string
	onShot    func(messages.ShotEvent)
	onScore   func(messages.ScoreEvent)
}

// Rewards collects the kill reward of every configured enemy type
func Rewards(enemy cfg.EnemyConfig) map[cfg.EnemyType]int {
	out := make(map[cfg.EnemyType]int, len(enemy.Types))
	for t, c := range enemy.Types {
		out[t] = c.Reward
	}
	return out
}

func NewResolver(combat cfg.CombatConfig, target DamageTarget, hits HitTester, rewards map[cfg.EnemyType]int) *Resolver {
	return &Resolver{
		cfg:     combat,
		target:  target,
		hits:    hits,
		rewards: rewards,
	}
}

func (r *Resolver) SetSessionID(id string) {
	r.sessionID = id
}

func (r *Resolver) OnShot(fn func(messages.ShotEvent)) {
	r.onShot = fn
}

// OnScore registers the receiver of score events. It runs once per shot that
// damages a live enemy.
func (r *Resolver) OnScore(fn func(messages.ScoreEvent)) {
	r.onScore = fn
}

// InFlight is the number of unresolved projectiles
func (r *Resolver) InFlight() int {
	return len(r.shots)
}

// OnTick fires one shot along aim when firing and the fire interval has
// passed since the previous shot. Hitscan shots resolve immediately.
func (r *Resolver) OnTick(firing bool, now time.Duration, aim Ray) bool {
	r.now = now
	if !firing {
		return false
	}
	if r.hasShot && now-r.lastShot < r.cfg.FireInterval {
		return false
	}
	r.hasShot = true
	r.lastShot = now
	r.nextShot++

	shot := &Projectile{
		ID:        r.nextShot,
		SpawnedAt: now,
		Ray:       Ray{Origin: aim.Origin, Direction: aim.Direction.Normalized()},
	}
	if r.onShot != nil {
		r.onShot(messages.ShotEvent{ShotID: shot.ID, At: now})
	}

	if r.cfg.Mode == cfg.CombatProjectile {
		r.shots = append(r.shots, shot)
		return true
	}
	shot.Resolved = true
	r.resolve(shot.ID, r.hits.Cast(shot.Ray, r.cfg.MaxTravel))
	return true
}

// Advance moves projectiles by speed*dt, resolving the ones that hit
// something and dropping the ones past their maximum travel.
func (r *Resolver) Advance(dt time.Duration) []Outcome {
	if len(r.shots) == 0 {
		return nil
	}
	seg := r.cfg.ProjectileSpeed * dt.Seconds()
	var out []Outcome
	live := r.shots[:0]
	for _, p := range r.shots {
		reach := seg
		if remaining := r.cfg.MaxTravel - p.Traveled; reach > remaining {
			reach = remaining
		}
		if reach > 0 {
			from := Ray{Origin: p.Ray.At(p.Traveled), Direction: p.Ray.Direction}
			if hit := r.hits.Cast(from, reach); hit.Kind != HitNone {
				hit.Distance += p.Traveled
				p.Resolved = true
				out = append(out, r.resolve(p.ID, hit))
				continue
			}
			p.Traveled += reach
		}
		if p.Traveled >= r.cfg.MaxTravel {
			p.Resolved = true
			continue
		}
		live = append(live, p)
	}
	for i := len(live); i < len(r.shots); i++ {
		r.shots[i] = nil
	}
	r.shots = live
	return out
}

// ResolveShot applies the effect of a hit outside the fire timer, for
// callers that do their own hit testing.
func (r *Resolver) ResolveShot(hit Hit) Outcome {
	r.nextShot++
	return r.resolve(r.nextShot, hit)
}

func (r *Resolver) resolve(shotID uint64, hit Hit) Outcome {
	out := Outcome{ShotID: shotID, Hit: hit}
	if hit.Kind != HitEnemy {
		return out
	}
	out.Result = r.target.Damage(hit.EnemyID, r.cfg.ShotDamage)
	if !out.Result.Found {
		return out
	}

	ev := messages.ScoreEvent{
		SessionID: r.sessionID,
		Cause:     messages.CauseHit,
		EnemyID:   hit.EnemyID,
		EnemyType: out.Result.Type,
		At:        r.now,
	}
	if out.Result.Killed {
		ev.Cause = messages.CauseKill
		ev.Delta = r.reward(out.Result.Type)
	}
	out.Score = &ev
	if r.onScore != nil {
		r.onScore(ev)
	}
	return out
}

func (r *Resolver) reward(t cfg.EnemyType) int {
	if v, ok := r.rewards[t]; ok {
		return v
	}
	return defaultReward
}

// Reset drops shots in flight and the fire timer
func (r *Resolver) Reset() {
	r.hasShot = false
	r.lastShot = 0
	r.shots = nil
	r.now = 0
}

// Aim converts the camera state into a shot ray
func Aim(arena cfg.ArenaConfig, camera *components.CameraData, pitch float64) Ray {
	return AimRay(arena.EyeHeight, camera.Yaw, pitch)
}
