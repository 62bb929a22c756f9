package systems

import (
	"math"

	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/systems/factory"
	"github.com/automoto/handbeat/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Ray is a shot path in world space
type Ray struct {
	Origin    components.Vector3
	Direction components.Vector3
}

// At returns the point distance units along the normalized ray
func (r Ray) At(distance float64) components.Vector3 {
	return r.Origin.Add(r.Direction.Normalized().Scale(distance))
}

// AimRay builds the shot ray from the eye along a camera yaw and pitch.
// Yaw 0 looks down -Z.
func AimRay(eyeHeight, yaw, pitch float64) Ray {
	return Ray{
		Origin: components.Vector3{Y: eyeHeight},
		Direction: components.Vector3{
			X: -math.Sin(yaw) * math.Cos(pitch),
			Y: math.Sin(pitch),
			Z: -math.Cos(yaw) * math.Cos(pitch),
		},
	}
}

// HitKind classifies what a shot ran into
type HitKind int

const (
	HitNone HitKind = iota
	HitEnemy
	HitScenery
)

func (k HitKind) String() string {
	switch k {
	case HitEnemy:
		return "enemy"
	case HitScenery:
		return "scenery"
	}
	return "none"
}

// Hit is the nearest thing along a ray
type Hit struct {
	Kind     HitKind
	EnemyID  uint64
	Distance float64
}

// HitTester casts a ray up to maxDistance and reports the nearest hit
type HitTester interface {
	Cast(ray Ray, maxDistance float64) Hit
}

// SpaceHitTester marches a sensor along the ray through the collision space.
// Cells the sensor touches give the candidates; each is then intersected
// exactly as a box using its height.
type SpaceHitTester struct {
	space *resolv.Space
	arena cfg.ArenaConfig
	step  float64
}

func NewSpaceHitTester(sim *Simulation, step float64) *SpaceHitTester {
	if step <= 0 {
		step = float64(sim.Arena().CellSize) / 2
	}
	return &SpaceHitTester{
		space: sim.Space(),
		arena: sim.Arena(),
		step:  step,
	}
}

func (h *SpaceHitTester) Cast(ray Ray, maxDistance float64) Hit {
	dir := ray.Direction.Normalized()
	if dir == (components.Vector3{}) || maxDistance <= 0 {
		return Hit{}
	}
	ray.Direction = dir

	sensor := resolv.NewObject(0, 0, h.step, h.step)
	h.space.Add(sensor)
	defer h.space.Remove(sensor)

	best := Hit{Distance: math.Inf(1)}
	bestCentre := math.Inf(1)
	seen := make(map[*resolv.Object]struct{})

	for d := 0.0; d <= maxDistance+h.step; d += h.step {
		// Anything nearer than best would have been touched by now
		if best.Kind != HitNone && d > best.Distance+2*h.step {
			break
		}
		p := ray.At(math.Min(d, maxDistance))
		factory.Footprint(sensor, h.arena, p.X, p.Z, h.step)

		col := sensor.Check(0, 0)
		if col == nil {
			continue
		}
		for _, o := range col.Objects {
			if _, ok := seen[o]; ok {
				continue
			}
			seen[o] = struct{}{}

			hit, centre, ok := h.intersect(o, ray)
			if !ok || hit.Distance > maxDistance {
				continue
			}
			if hit.Distance < best.Distance || (hit.Distance == best.Distance && centre < bestCentre) {
				best = hit
				bestCentre = centre
			}
		}
	}

	if best.Kind == HitNone {
		return Hit{}
	}
	return best
}

// intersect tests the ray against the box of the entity behind o
func (h *SpaceHitTester) intersect(o *resolv.Object, ray Ray) (Hit, float64, bool) {
	e, ok := o.Data.(*donburi.Entry)
	if !ok || !e.Valid() {
		return Hit{}, 0, false
	}
	pos := components.Position.Get(e).Vector3

	var hit Hit
	var lo, hi components.Vector3
	switch {
	case o.HasTags(tags.ResolvEnemy):
		enemy := components.Enemy.Get(e)
		half := enemy.Size / 2
		lo = components.Vector3{X: pos.X - half, Y: pos.Y - half, Z: pos.Z - half}
		hi = components.Vector3{X: pos.X + half, Y: pos.Y + half, Z: pos.Z + half}
		hit = Hit{Kind: HitEnemy, EnemyID: enemy.ID}
	case o.HasTags(tags.ResolvScenery):
		sc := components.Scenery.Get(e)
		lo = components.Vector3{X: pos.X - sc.Radius, Y: 0, Z: pos.Z - sc.Radius}
		hi = components.Vector3{X: pos.X + sc.Radius, Y: sc.Height, Z: pos.Z + sc.Radius}
		hit = Hit{Kind: HitScenery}
	default:
		return Hit{}, 0, false
	}

	t, ok := rayBox(ray.Origin, ray.Direction, lo, hi)
	if !ok {
		return Hit{}, 0, false
	}
	hit.Distance = t
	return hit, pos.Sub(ray.Origin).Length(), true
}

// rayBox is the slab test. It returns the entry distance, 0 when the origin
// is inside the box.
func rayBox(origin, dir, lo, hi components.Vector3) (float64, bool) {
	tmin, tmax := 0.0, math.Inf(1)
	axes := [3][4]float64{
		{origin.X, dir.X, lo.X, hi.X},
		{origin.Y, dir.Y, lo.Y, hi.Y},
		{origin.Z, dir.Z, lo.Z, hi.Z},
	}
	for _, a := range axes {
		o, d, l, u := a[0], a[1], a[2], a[3]
		if math.Abs(d) < 1e-12 {
			if o < l || o > u {
				return 0, false
			}
			continue
		}
		t1, t2 := (l-o)/d, (u-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
