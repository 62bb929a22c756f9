package session

import (
	"fmt"

	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/gesture"
	"github.com/automoto/handbeat/systems"
)

// Options gathers everything a session is built from
type Options struct {
	Gesture cfg.GestureConfig
	Beat    cfg.BeatConfig
	Enemy   cfg.EnemyConfig
	Arena   cfg.ArenaConfig
	Combat  cfg.CombatConfig
	Session cfg.SessionConfig

	// Random overrides the seeded generator, for deterministic tests
	Random systems.Random
	// HitTester overrides the collision space ray cast
	HitTester func(*systems.Simulation) systems.HitTester
}

// DefaultOptions returns options from the loaded configuration
func DefaultOptions() Options {
	return Options{
		Gesture: cfg.Gesture,
		Beat:    cfg.Beat,
		Enemy:   cfg.Enemy,
		Arena:   cfg.Arena,
		Combat:  cfg.Combat,
		Session: cfg.Session,
	}
}

func (o Options) mode() (gesture.Mode, error) {
	m, err := gesture.ParseMode(o.Gesture.Mode)
	if err != nil {
		return m, fmt.Errorf("session options: %w", err)
	}
	return m, nil
}
