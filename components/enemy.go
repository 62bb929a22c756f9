package components

import (
	"github.com/automoto/handbeat/config"
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	ID        uint64           // Session unique, never reused
	Type      config.EnemyType // "weak", "medium", "strong", "boss"
	Direction Vector3          // Unit vector toward the origin, fixed at spawn
	Speed     float64          // Units per second
	Size      float64
	Reward    int // Score for a kill
	Damage    int // Player health taken on reaching the player

	// Vertical motion
	BaseHeight float64
	Phase      float64 // Harmonic phase in radians
	Bob        bool    // Height follows the phase; false keeps BaseHeight
}

var Enemy = donburi.NewComponentType[EnemyData]()

type PositionData struct {
	Vector3
}

var Position = donburi.NewComponentType[PositionData]()
