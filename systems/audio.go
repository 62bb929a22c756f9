package systems

import (
	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/yohamta/donburi"
)

// QueueSFX records a sound cue on the audio singleton. Cues beyond
// MaxPending in one tick are dropped.
func QueueSFX(w donburi.World, id cfg.SoundID) {
	entry, ok := components.Audio.First(w)
	if !ok {
		return
	}
	audio := components.Audio.Get(entry)
	if audio.SFXVolume <= 0 || len(audio.PendingSFX) >= cfg.Audio.MaxPending {
		return
	}
	// A cue already queued this tick is not doubled
	for _, queued := range audio.PendingSFX {
		if queued == id {
			return
		}
	}
	audio.PendingSFX = append(audio.PendingSFX, id)
}

// DrainSFX returns and clears the cues queued since the last call
func DrainSFX(w donburi.World) []cfg.SoundID {
	entry, ok := components.Audio.First(w)
	if !ok {
		return nil
	}
	audio := components.Audio.Get(entry)
	if len(audio.PendingSFX) == 0 {
		return nil
	}
	out := make([]cfg.SoundID, len(audio.PendingSFX))
	copy(out, audio.PendingSFX)
	audio.PendingSFX = audio.PendingSFX[:0]
	return out
}
