package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// File is the on-disk layout of a tuning file. Every section is optional;
// keys that are absent keep their built-in defaults.
type File struct {
	Gesture  GestureConfig  `toml:"gesture"`
	Beat     BeatConfig     `toml:"beat"`
	Analyser AnalyserConfig `toml:"analyser"`
	Enemy    EnemyConfig    `toml:"enemy"`
	Arena    ArenaConfig    `toml:"arena"`
	Combat   CombatConfig   `toml:"combat"`
	Session  SessionConfig  `toml:"session"`
	Pose     PoseConfig     `toml:"pose"`
	Web      WebConfig      `toml:"web"`
}

// Current returns the active global configuration
func Current() File {
	return File{
		Gesture:  Gesture,
		Beat:     Beat,
		Analyser: Analyser,
		Enemy:    Enemy,
		Arena:    Arena,
		Combat:   Combat,
		Session:  Session,
		Pose:     Pose,
		Web:      Web,
	}
}

// Apply replaces the global configuration after validating it
func Apply(f File) error {
	if err := f.Validate(); err != nil {
		return err
	}
	Gesture = f.Gesture
	Beat = f.Beat
	Analyser = f.Analyser
	Enemy = f.Enemy
	Arena = f.Arena
	Combat = f.Combat
	Session = f.Session
	Pose = f.Pose
	Web = f.Web
	return nil
}

// LoadFile overlays a TOML tuning file on the current configuration
func LoadFile(path string) error {
	f := Current()
	// Decoding into a copy of the defaults keeps unspecified keys intact.
	// Maps are shared with the globals, so clone the enemy table first.
	types := make(map[EnemyType]EnemyTypeConfig, len(f.Enemy.Types))
	for k, v := range f.Enemy.Types {
		types[k] = v
	}
	f.Enemy.Types = types

	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Printf("Warning: unknown config keys in %s: %v", path, undecoded)
	}
	if err := Apply(f); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	log.Printf("Loaded config from %s", path)
	return nil
}

// Validate checks the values the interpreters divide by or compare against
func (f File) Validate() error {
	switch f.Gesture.Mode {
	case ModeOneHand, ModeTwoHand:
	default:
		return fmt.Errorf("%w: gesture mode %q", ErrInvalid, f.Gesture.Mode)
	}
	if f.Gesture.CursorSmoothing <= 0 || f.Gesture.CursorSmoothing > 1 {
		return fmt.Errorf("%w: cursor smoothing %v not in (0,1]", ErrInvalid, f.Gesture.CursorSmoothing)
	}
	if f.Gesture.PinchThreshold <= 0 || f.Gesture.PinchHysteresis < 0 {
		return fmt.Errorf("%w: pinch threshold %v / hysteresis %v", ErrInvalid, f.Gesture.PinchThreshold, f.Gesture.PinchHysteresis)
	}

	switch f.Beat.Strategy {
	case BeatRolling, BeatCalibrated:
	default:
		return fmt.Errorf("%w: beat strategy %q", ErrInvalid, f.Beat.Strategy)
	}
	if f.Beat.WindowSize < 1 {
		return fmt.Errorf("%w: beat window size %d", ErrInvalid, f.Beat.WindowSize)
	}
	if f.Beat.PulseDuration <= 0 || f.Beat.Cooldown < f.Beat.PulseDuration {
		return fmt.Errorf("%w: pulse %v must be positive and not exceed cooldown %v", ErrInvalid, f.Beat.PulseDuration, f.Beat.Cooldown)
	}

	if f.Analyser.FFTSize < 32 || f.Analyser.FFTSize&(f.Analyser.FFTSize-1) != 0 {
		return fmt.Errorf("%w: fft size %d must be a power of two >= 32", ErrInvalid, f.Analyser.FFTSize)
	}
	if f.Analyser.LowBandStart < 0 || f.Analyser.LowBandEnd <= f.Analyser.LowBandStart || f.Analyser.LowBandEnd > f.Analyser.FFTSize/2 {
		return fmt.Errorf("%w: low band [%d,%d)", ErrInvalid, f.Analyser.LowBandStart, f.Analyser.LowBandEnd)
	}

	if len(f.Enemy.StandardPool) == 0 {
		return fmt.Errorf("%w: empty enemy pool", ErrInvalid)
	}
	for _, t := range append([]EnemyType{f.Enemy.BossType}, f.Enemy.StandardPool...) {
		tc, ok := f.Enemy.Types[t]
		if !ok {
			return fmt.Errorf("%w: enemy type %q has no definition", ErrInvalid, t)
		}
		if tc.Health <= 0 || tc.Size <= 0 || tc.Speed < 0 {
			return fmt.Errorf("%w: enemy type %q health/size/speed", ErrInvalid, t)
		}
	}
	if f.Enemy.BossInterval <= 0 {
		return fmt.Errorf("%w: boss interval %v", ErrInvalid, f.Enemy.BossInterval)
	}
	switch f.Enemy.HeightStrategy {
	case HeightHarmonic, HeightBand:
	default:
		return fmt.Errorf("%w: height strategy %q", ErrInvalid, f.Enemy.HeightStrategy)
	}

	if f.Arena.KillRadius <= 0 || f.Arena.SpawnRadius <= f.Arena.KillRadius {
		return fmt.Errorf("%w: spawn radius %v must exceed kill radius %v", ErrInvalid, f.Arena.SpawnRadius, f.Arena.KillRadius)
	}
	if f.Arena.Extent <= f.Arena.SpawnRadius || f.Arena.CellSize < 1 {
		return fmt.Errorf("%w: arena extent %v / cell size %d", ErrInvalid, f.Arena.Extent, f.Arena.CellSize)
	}

	switch f.Combat.Mode {
	case CombatHitscan, CombatProjectile:
	default:
		return fmt.Errorf("%w: combat mode %q", ErrInvalid, f.Combat.Mode)
	}
	if f.Combat.RayStep <= 0 || f.Combat.MaxTravel <= 0 {
		return fmt.Errorf("%w: ray step %v / max travel %v", ErrInvalid, f.Combat.RayStep, f.Combat.MaxTravel)
	}

	if f.Session.TickRate < 1 {
		return fmt.Errorf("%w: tick rate %d", ErrInvalid, f.Session.TickRate)
	}
	if f.Session.PlayerHealth < 1 {
		return fmt.Errorf("%w: player health %d", ErrInvalid, f.Session.PlayerHealth)
	}
	if f.Pose.StaleAfter < 0 || f.Pose.ReconnectDelay < 0 {
		return fmt.Errorf("%w: pose stale after %v / reconnect delay %v", ErrInvalid, f.Pose.StaleAfter, f.Pose.ReconnectDelay)
	}
	return nil
}
