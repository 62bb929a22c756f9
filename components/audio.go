package components

import (
	cfg "github.com/automoto/handbeat/config"
	"github.com/yohamta/donburi"
)

// AudioData stores the sound cues raised this tick (singleton component)
type AudioData struct {
	SFXVolume  float64 // 0.0 - 1.0
	PendingSFX []cfg.SoundID
}

var Audio = donburi.NewComponentType[AudioData]()
