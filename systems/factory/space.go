package factory

import (
	"math"

	"github.com/automoto/handbeat/archetypes"
	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSpace creates the collision space. It is a top-down square of side
// 2*Extent; world (x, z) maps to space (x+Extent, z+Extent).
func CreateSpace(ecs *ecs.ECS, arena cfg.ArenaConfig) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	side := int(math.Ceil(2 * arena.Extent))
	spaceData := resolv.NewSpace(side, side, arena.CellSize, arena.CellSize)
	components.Space.Set(space, spaceData)
	return space
}

// SpacePoint converts a world ground position into collision space coordinates
func SpacePoint(arena cfg.ArenaConfig, x, z float64) (float64, float64) {
	return x + arena.Extent, z + arena.Extent
}

// Footprint places a square object of side size centred on world (x, z)
func Footprint(obj *resolv.Object, arena cfg.ArenaConfig, x, z, size float64) {
	sx, sz := SpacePoint(arena, x, z)
	obj.X = sx - size/2
	obj.Y = sz - size/2
	obj.Update()
}
