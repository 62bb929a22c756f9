package session

import (
	"github.com/automoto/handbeat/beat"
	"github.com/automoto/handbeat/components"
	"github.com/automoto/handbeat/gesture"
	"github.com/automoto/handbeat/systems"
)

// Snapshot is the read-only view of a session published to observers
type Snapshot struct {
	SessionID string `json:"sessionId"`
	Time      int64  `json:"t"` // Milliseconds
	Running   bool   `json:"running"`
	GameOver  bool   `json:"gameOver"`
	Killer    string `json:"killer,omitempty"`

	Gesture gesture.State `json:"gesture"`
	Beat    beat.Reading  `json:"beat"`
	Beats   int           `json:"beats"`
	Bosses  int           `json:"bosses"`
	// Calibration is the progress of a calibrating beat strategy, 1 otherwise
	Calibration float64 `json:"calibration"`

	Yaw       float64                 `json:"yaw"`
	Score     int                     `json:"score"`
	Kills     int                     `json:"kills"`
	Hits      int                     `json:"hits"`
	Shots     int                     `json:"shots"`
	Health    int                     `json:"health"`
	MaxHealth int                     `json:"maxHealth"`
	InFlight  int                     `json:"inFlight"`
	Enemies   []systems.EnemySnapshot `json:"enemies"`
}

// Snapshot captures the state after the last tick
func (s *Session) Snapshot() Snapshot {
	player := components.Player.Get(s.player)
	hp := components.Health.Get(s.player)
	snap := Snapshot{
		SessionID:   s.id,
		Time:        s.lastNow.Milliseconds(),
		Running:     s.running,
		GameOver:    s.over,
		Gesture:     s.gesture,
		Beat:        s.reading,
		Beats:       s.beats,
		Bosses:      s.sim.Bosses(),
		Calibration: 1,
		Yaw:         components.Camera.Get(s.player).Yaw,
		Score:       player.Score,
		Kills:       player.Kills,
		Hits:        player.Hits,
		Shots:       player.Shots,
		Health:      hp.Current,
		MaxHealth:   hp.Max,
		InFlight:    s.resolver.InFlight(),
		Enemies:     s.sim.Snapshot(),
	}
	if over, ok := components.GameOver.First(s.ecs.World); ok {
		snap.Killer = components.GameOver.Get(over).Killer
	}
	if c, ok := s.detector.Strategy().(*beat.Calibrated); ok {
		snap.Calibration = c.Progress(s.lastNow)
	}
	return snap
}

func beatSample(in Input) beat.Sample {
	return beat.Sample{Amplitude: in.Amplitude, Timestamp: in.Now}
}
