package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// BossTimerData is the singleton timer that spawns bosses independently of
// beats.
type BossTimerData struct {
	LastSpawn time.Duration
	Interval  time.Duration
	Spawned   int
}

// Due reports whether a boss should spawn at now
func (b *BossTimerData) Due(now time.Duration) bool {
	return now-b.LastSpawn >= b.Interval
}

var BossTimer = donburi.NewComponentType[BossTimerData]()
