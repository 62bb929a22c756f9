package sound

import (
	"sync"

	"github.com/gopxl/beep"

	cfg "github.com/automoto/handbeat/config"
)

// Player turns sound ids into synthesised cues on a shared mixer. It is a
// streamer itself and never ends, so it can sit on the speaker for the
// process lifetime.
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	cues   map[cfg.SoundID][]cfg.CueConfig
	mixer  *beep.Mixer
	volume float64
}

func NewPlayer(rate beep.SampleRate, sounds cfg.SoundConfig, volume float64) *Player {
	return &Player{
		rate:   rate,
		cues:   sounds.Cues,
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Play starts every cue in ids. Unknown ids are skipped.
func (p *Player) Play(ids []cfg.SoundID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.volume <= 0 {
		return
	}
	for _, id := range ids {
		cue := Cue(p.cues[id], p.rate)
		if cue == nil {
			continue
		}
		p.mixer.Add(newVolume(cue, p.volume))
	}
}

// Active is the number of cues still sounding
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

func (p *Player) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mixer.Stream(samples)
	return len(samples), true
}

func (p *Player) Err() error { return nil }
