package session

import (
	"log"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/shared/messages"
	"github.com/automoto/handbeat/systems"
)

func (s *Session) updateGesture(e *ecs.ECS) {
	if !s.running {
		return
	}
	s.gesture = s.classifier.Update(s.in.Hands, s.in.Now)
	if !s.gesture.Active {
		// Camera holds its last yaw
		return
	}
	camera := components.Camera.Get(s.player)
	camera.Cursor.X = s.gesture.Cursor.X
	camera.Cursor.Y = s.gesture.Cursor.Y
	camera.Yaw = (camera.Cursor.X - 0.5) * s.opts.Combat.YawScale
}

func (s *Session) updateBeat(e *ecs.ECS) {
	if !s.running {
		return
	}
	switch {
	case s.in.Playing && !s.detector.Playing():
		s.detector.Play(s.in.Now)
	case !s.in.Playing && s.detector.Playing():
		s.detector.Pause()
	}

	s.reading = s.detector.Update(beatSample(s.in))
	if s.reading.Onset {
		s.beats++
		systems.BeatEvents.Publish(e.World, messages.BeatEvent{At: s.in.Now, Amplitude: s.reading.Amplitude})
	}
}

func (s *Session) updateSimulation(e *ecs.ECS) {
	if !s.running {
		return
	}
	if s.reading.Onset {
		s.sim.OnBeat()
	}
	if s.in.Playing {
		s.sim.MaybeSpawnBoss(s.in.Now)
	} else {
		s.sim.HoldBossTimer(s.dt)
	}
	s.sim.Tick(s.dt)
}

func (s *Session) updateCombat(e *ecs.ECS) {
	if !s.running {
		return
	}
	if s.opts.Combat.Mode == cfg.CombatProjectile {
		s.resolver.Advance(s.dt)
	}
	camera := components.Camera.Get(s.player)
	pitch := (camera.Cursor.Y - 0.5) * s.opts.Combat.PitchScale
	s.resolver.OnTick(s.gesture.Firing, s.in.Now, systems.Aim(s.opts.Arena, camera, pitch))
}

func (s *Session) dispatchEvents(e *ecs.ECS) {
	systems.SpawnEvents.ProcessEvents(e.World)
	systems.BeatEvents.ProcessEvents(e.World)
	systems.ShotEvents.ProcessEvents(e.World)
	systems.ScoreEvents.ProcessEvents(e.World)
	systems.ReachedEvents.ProcessEvents(e.World)
}

func (s *Session) subscribe() {
	w := s.ecs.World

	s.resolver.OnShot(func(ev messages.ShotEvent) {
		systems.ShotEvents.Publish(w, ev)
	})
	s.resolver.OnScore(func(ev messages.ScoreEvent) {
		systems.ScoreEvents.Publish(w, ev)
	})

	systems.ShotEvents.Subscribe(w, s.onShotEvent)
	systems.ScoreEvents.Subscribe(w, s.onScoreEvent)
	systems.ReachedEvents.Subscribe(w, s.onReachedEvent)
	systems.SpawnEvents.Subscribe(w, s.onSpawnEvent)
}

func (s *Session) onShotEvent(w donburi.World, ev messages.ShotEvent) {
	components.Player.Get(s.player).Shots++
	systems.QueueSFX(w, cfg.SoundShot)
}

func (s *Session) onScoreEvent(w donburi.World, ev messages.ScoreEvent) {
	player := components.Player.Get(s.player)
	player.Score += ev.Delta
	switch ev.Cause {
	case messages.CauseKill:
		player.Kills++
		systems.QueueSFX(w, cfg.SoundEnemyKill)
	case messages.CauseHit:
		player.Hits++
		systems.QueueSFX(w, cfg.SoundEnemyHit)
	}
	if s.onScore != nil {
		s.onScore(ev)
	}
}

func (s *Session) onReachedEvent(w donburi.World, ev messages.ReachedPlayerEvent) {
	if s.onReach != nil {
		s.onReach(ev)
	}
	if s.over {
		return
	}
	hp := components.Health.Get(s.player)
	hp.Take(ev.Damage)
	systems.QueueSFX(w, cfg.SoundPlayerDamage)
	if hp.Alive() {
		return
	}

	s.over = true
	donburi.Add(s.player, components.GameOver, &components.GameOverData{
		At:     s.in.Now,
		Killer: string(ev.EnemyType),
	})
	systems.QueueSFX(w, cfg.SoundPlayerDeath)
	log.Printf("Session %s: player killed by %s", s.id, ev.EnemyType)
}

func (s *Session) onSpawnEvent(w donburi.World, ev messages.SpawnEvent) {
	if ev.Boss {
		systems.QueueSFX(w, cfg.SoundBossSpawn)
	}
}
