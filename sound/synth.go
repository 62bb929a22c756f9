// Package sound synthesises the short effect cues raised by the session and
// mixes them into the audio output.
package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	cfg "github.com/automoto/handbeat/config"
)

// Attack and release of every cue
const (
	attack  = 5 * time.Millisecond
	release = 30 * time.Millisecond
)

// sweep is an oscillator whose frequency glides linearly from start to end
type sweep struct {
	start, end float64
	phase      float64
	position   int
	duration   int
	wave       string
	rate       beep.SampleRate
}

func newSweep(c cfg.CueConfig, rate beep.SampleRate) *sweep {
	return &sweep{
		start:    c.StartFreq,
		end:      c.EndFreq,
		duration: rate.N(c.Duration),
		wave:     c.Wave,
		rate:     rate,
	}
}

func (o *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case cfg.WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case cfg.WaveSaw:
			val = 2 * (o.phase - 0.5)
		case cfg.WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case cfg.WaveNoise:
			val = rand.Float64()*2 - 1
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.start + (o.end-o.start)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sweep) Err() error { return nil }

// envelope fades a streamer in and out over a fixed length
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(duration)
	att, rel := rate.N(attack), rate.N(release)
	// Short cues split the length between the two ramps
	if att+rel > total {
		att, rel = total/2, total-total/2
	}
	return &envelope{streamer: s, attack: att, release: rel, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining < e.release && e.release > 0 {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume maps a linear gain onto effects.Volume. Zero is silent since
// log2(0) is -Inf.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Layer synthesises one cue layer
func Layer(c cfg.CueConfig, rate beep.SampleRate) beep.Streamer {
	var osc beep.Streamer = newSweep(c, rate)
	if c.Wave == cfg.WaveSine && c.StartFreq == c.EndFreq {
		// Steady tones come straight from the generator
		if tone, err := generators.SineTone(rate, c.StartFreq); err == nil {
			osc = beep.Take(rate.N(c.Duration), tone)
		}
	}
	return newVolume(newEnvelope(osc, c.Duration, rate), c.Volume)
}

// Cue mixes every layer of a sound. It returns nil for sounds without layers.
func Cue(layers []cfg.CueConfig, rate beep.SampleRate) beep.Streamer {
	if len(layers) == 0 {
		return nil
	}
	streams := make([]beep.Streamer, len(layers))
	for i, l := range layers {
		streams[i] = Layer(l, rate)
	}
	if len(streams) == 1 {
		return streams[0]
	}
	return beep.Mix(streams...)
}
