package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/sound"
	"github.com/automoto/handbeat/spectrum"
)

// audioOut owns the speaker: the optional track behind its transport, mixed
// with the effect cues.
type audioOut struct {
	track     beep.StreamSeekCloser
	transport *spectrum.Transport
	player    *sound.Player
}

func newAudioOut(path string) (*audioOut, error) {
	out := &audioOut{}
	rate := beep.SampleRate(cfg.Audio.SampleRate)

	var streams []beep.Streamer
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open track: %w", err)
		}
		track, format, err := wav.Decode(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		out.track = track
		rate = format.SampleRate

		analyser := spectrum.NewAnalyser(cfg.Analyser)
		out.transport = spectrum.NewTransport(spectrum.NewTap(track, analyser), analyser)
		streams = append(streams, out.transport)
		log.Printf("Loaded track %s (%d Hz, %s)", path, format.SampleRate, format.SampleRate.D(track.Len()))
	}

	if err := speaker.Init(rate, rate.N(cfg.Audio.BufferSize)); err != nil {
		// Beat detection still runs on the decoded track without a device
		log.Printf("Warning: no audio output: %v", err)
		if out.transport != nil {
			go drive(out.transport, rate)
		}
		return out, nil
	}

	out.player = sound.NewPlayer(rate, cfg.Sound, cfg.Audio.DefaultSFXVol)
	streams = append(streams, out.player)
	speaker.Play(beep.Mix(streams...))
	return out, nil
}

// Play starts the cues raised by a tick
func (o *audioOut) Play(ids []cfg.SoundID) {
	if o.player != nil {
		o.player.Play(ids)
	}
}

func (o *audioOut) Close() {
	if o.player != nil {
		speaker.Close()
	}
	if o.track != nil {
		o.track.Close()
	}
}

// drive pulls the transport in real time when no speaker does
func drive(t *spectrum.Transport, rate beep.SampleRate) {
	const chunk = 20 * time.Millisecond
	buf := make([][2]float64, rate.N(chunk))
	ticker := time.NewTicker(chunk)
	defer ticker.Stop()
	for range ticker.C {
		t.Stream(buf)
	}
}
