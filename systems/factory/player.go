package factory

import (
	"time"

	"github.com/automoto/handbeat/archetypes"
	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// CreatePlayer creates the singleton holding score, health, camera and
// pending sound cues.
func CreatePlayer(ecs *ecs.ECS, health int) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	components.Player.SetValue(player, components.PlayerData{})
	components.Health.SetValue(player, components.HealthData{
		Current: health,
		Max:     health,
	})
	components.Camera.SetValue(player, components.CameraData{
		Cursor: math.Vec2{X: 0.5, Y: 0.5},
	})
	components.Audio.SetValue(player, components.AudioData{
		SFXVolume:  cfg.Audio.DefaultSFXVol,
		PendingSFX: make([]cfg.SoundID, 0, cfg.Audio.MaxPending),
	})

	return player
}

// CreateBossTimer creates the singleton boss timer
func CreateBossTimer(ecs *ecs.ECS, interval time.Duration) *donburi.Entry {
	timer := archetypes.BossTimer.Spawn(ecs)
	components.BossTimer.SetValue(timer, components.BossTimerData{Interval: interval})
	return timer
}
