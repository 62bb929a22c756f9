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

// EnemySpawn is everything the simulation decided about a new enemy
type EnemySpawn struct {
	ID         uint64
	Type       cfg.EnemyType
	Position   components.Vector3
	BaseHeight float64
	Phase      float64
	Bob        bool
	Boss       bool
}

// CreateEnemy spawns an enemy of the given type facing the origin and adds
// its footprint to the collision space.
func CreateEnemy(ecs *ecs.ECS, arena cfg.ArenaConfig, typeCfg cfg.EnemyTypeConfig, spawn EnemySpawn) *donburi.Entry {
	var extra []donburi.IComponentType
	if spawn.Boss {
		extra = append(extra, tags.Boss)
	}
	enemy := archetypes.Enemy.Spawn(ecs, extra...)

	size := typeCfg.Size
	obj := resolv.NewObject(0, 0, size, size, tags.ResolvEnemy)
	if len(extra) > 0 {
		obj.AddTags(tags.ResolvBoss)
	}
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	Footprint(obj, arena, spawn.Position.X, spawn.Position.Z, size)
	obj.Data = enemy // Link for O(1) lookup
	components.Object.SetValue(enemy, components.ObjectData{Object: obj})

	toOrigin := components.Vector3{X: -spawn.Position.X, Z: -spawn.Position.Z}
	components.Enemy.SetValue(enemy, components.EnemyData{
		ID:         spawn.ID,
		Type:       spawn.Type,
		Direction:  toOrigin.Normalized(),
		Speed:      typeCfg.Speed,
		Size:       size,
		Reward:     typeCfg.Reward,
		Damage:     typeCfg.PlayerDamage,
		BaseHeight: spawn.BaseHeight,
		Phase:      spawn.Phase,
		Bob:        spawn.Bob,
	})
	components.Position.SetValue(enemy, components.PositionData{Vector3: spawn.Position})
	components.Health.SetValue(enemy, components.HealthData{
		Current: typeCfg.Health,
		Max:     typeCfg.Health,
	})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	return enemy
}
