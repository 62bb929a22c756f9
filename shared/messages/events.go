package messages

import (
	"time"

	"github.com/automoto/handbeat/config"
)

// ScoreCause says why a score event was raised
type ScoreCause string

const (
	CauseKill ScoreCause = "kill" // Delta is the enemy type reward
	CauseHit  ScoreCause = "hit"  // Damaged without killing, delta 0
)

// ScoreEvent is raised once per shot that lands on an enemy
type ScoreEvent struct {
	SessionID string
	Delta     int
	Cause     ScoreCause
	EnemyID   uint64
	EnemyType config.EnemyType
	At        time.Duration
}

// ReachedPlayerEvent is raised when an enemy gets inside the kill radius
type ReachedPlayerEvent struct {
	SessionID string
	EnemyID   uint64
	EnemyType config.EnemyType
	Damage    int // Player health it takes
}

// SpawnEvent is raised when an enemy enters the arena
type SpawnEvent struct {
	EnemyID   uint64
	EnemyType config.EnemyType
	X, Y, Z   float64
	Boss      bool
}

// ShotEvent is raised when the player fires
type ShotEvent struct {
	ShotID uint64
	At     time.Duration
}

// BeatEvent is raised on every detected onset
type BeatEvent struct {
	At        time.Duration
	Amplitude float64
}
