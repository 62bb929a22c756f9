package factory

import (
	"github.com/automoto/handbeat/archetypes"
	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateScenery places a static obstacle that blocks shots
func CreateScenery(ecs *ecs.ECS, arena cfg.ArenaConfig, s cfg.SceneryConfig) *donburi.Entry {
	scenery := archetypes.Scenery.Spawn(ecs)

	side := 2 * s.Radius
	obj := resolv.NewObject(0, 0, side, side, tags.ResolvScenery)
	obj.SetShape(resolv.NewRectangle(0, 0, side, side))
	Footprint(obj, arena, s.X, s.Z, side)
	obj.Data = scenery

	components.Object.SetValue(scenery, components.ObjectData{Object: obj})
	components.Scenery.SetValue(scenery, components.SceneryData{Radius: s.Radius, Height: s.Height})
	components.Position.SetValue(scenery, components.PositionData{
		Vector3: components.Vector3{X: s.X, Y: s.Height / 2, Z: s.Z},
	})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	return scenery
}
