package archetypes

import (
	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Position,
		components.Object,
		components.Health,
	)
	Scenery = newArchetype(
		tags.Scenery,
		components.Scenery,
		components.Position,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
	BossTimer = newArchetype(
		components.BossTimer,
	)
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Health,
		components.Camera,
		components.Audio,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity on the default layer with the archetype's
// components plus any extra ones.
func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components[:len(a.components):len(a.components)], cs...)...,
	))
	return e
}
