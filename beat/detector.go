// Package beat flags musical onsets in a stream of low-band amplitudes.
package beat

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/automoto/handbeat/config"
)

// Sample is the low-band energy of one tick
type Sample struct {
	Amplitude float64
	Timestamp time.Duration
}

// Reading is the detector output for one tick
type Reading struct {
	Amplitude float64 `json:"amplitude"`
	Pulse     bool    `json:"pulse"`     // True for PulseDuration after an onset
	Onset     bool    `json:"onset"`     // True only on the tick the beat was flagged
	Playing   bool    `json:"playing"`   // Transport state
	Ready     bool    `json:"ready"`     // Strategy has a baseline to compare against
	Intensity float64 `json:"intensity"` // Decaying envelope, 1 at the onset
	Baseline  float64 `json:"baseline"`
}

// Detector gates strategy candidates with a noise floor and a cooldown and
// turns them into short pulses.
type Detector struct {
	cfg      config.BeatConfig
	strategy Strategy

	playing  bool
	hasBeat  bool
	lastBeat time.Duration
	lastTick time.Duration
	envelope *gween.Tween
	level    float64
}

// NewDetector creates a paused detector
func NewDetector(cfg config.BeatConfig, strategy Strategy) *Detector {
	return &Detector{
		cfg:      cfg,
		strategy: strategy,
	}
}

func (d *Detector) Strategy() Strategy {
	return d.strategy
}

func (d *Detector) Playing() bool {
	return d.playing
}

// Play starts consuming samples from a clean state
func (d *Detector) Play(now time.Duration) {
	if d.playing {
		return
	}
	d.reset()
	d.playing = true
	d.lastTick = now
}

// Pause stops the detector and drops all energy history
func (d *Detector) Pause() {
	d.playing = false
	d.reset()
}

func (d *Detector) reset() {
	d.strategy.Reset()
	d.hasBeat = false
	d.lastBeat = 0
	d.lastTick = 0
	d.envelope = nil
	d.level = 0
}

// Update consumes one sample. While paused it only echoes the amplitude.
func (d *Detector) Update(s Sample) Reading {
	r := Reading{Amplitude: s.Amplitude, Playing: d.playing}
	if !d.playing {
		return r
	}

	v := d.strategy.Observe(s.Amplitude, s.Timestamp)
	r.Ready = d.strategy.Ready()
	r.Baseline = v.Baseline

	if v.Candidate && r.Ready && s.Amplitude > d.cfg.NoiseFloor && d.cooledDown(s.Timestamp) {
		d.hasBeat = true
		d.lastBeat = s.Timestamp
		r.Onset = true
		d.envelope = gween.New(1, 0, float32(d.cfg.PulseDecay.Seconds()), ease.OutQuad)
		d.level = 1
	} else if d.envelope != nil {
		level, done := d.envelope.Update(float32((s.Timestamp - d.lastTick).Seconds()))
		d.level = float64(level)
		if done {
			d.envelope = nil
			d.level = 0
		}
	}
	d.lastTick = s.Timestamp

	r.Pulse = d.pulsing(s.Timestamp)
	r.Intensity = d.level
	return r
}

func (d *Detector) cooledDown(now time.Duration) bool {
	return !d.hasBeat || now-d.lastBeat >= d.cfg.Cooldown
}

func (d *Detector) pulsing(now time.Duration) bool {
	return d.hasBeat && now >= d.lastBeat && now-d.lastBeat < d.cfg.PulseDuration
}
