package beat

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/automoto/handbeat/config"
)

// Verdict is a strategy's opinion of one amplitude sample
type Verdict struct {
	Candidate bool    // Loud enough relative to the baseline
	Baseline  float64 // Reference level the sample was compared against
}

// Strategy decides which samples stand out from recent energy. The detector
// applies the noise floor and cooldown on top.
type Strategy interface {
	Observe(amplitude float64, now time.Duration) Verdict
	Ready() bool
	Reset()
}

// NewStrategy builds the strategy named in cfg
func NewStrategy(cfg config.BeatConfig) (Strategy, error) {
	switch cfg.Strategy {
	case config.BeatRolling, "":
		return NewRolling(cfg), nil
	case config.BeatCalibrated:
		return NewCalibrated(cfg), nil
	}
	return nil, fmt.Errorf("unknown beat strategy %q", cfg.Strategy)
}

// Rolling compares each sample against the mean of the samples before it
type Rolling struct {
	window     *RollingWindow
	multiplier float64
	margin     float64
}

func NewRolling(cfg config.BeatConfig) *Rolling {
	return &Rolling{
		window:     NewRollingWindow(cfg.WindowSize),
		multiplier: cfg.Multiplier,
		margin:     cfg.AdditiveMargin,
	}
}

func (r *Rolling) Observe(amplitude float64, _ time.Duration) Verdict {
	if r.window.Len() == 0 {
		r.window.Push(amplitude)
		return Verdict{Baseline: amplitude}
	}
	mean := r.window.Mean()
	r.window.Push(amplitude)
	return Verdict{
		Candidate: amplitude > mean*r.multiplier || amplitude > mean+r.margin,
		Baseline:  mean,
	}
}

// Ready is true once there is at least one earlier sample to compare with
func (r *Rolling) Ready() bool {
	return r.window.Len() > 0
}

func (r *Rolling) Reset() {
	r.window.Reset()
}

// Calibrated listens for a fixed period after play starts and then compares
// every sample against the average of that period.
type Calibrated struct {
	duration   time.Duration
	multiplier float64

	started  bool
	start    time.Duration
	samples  []float64
	done     bool
	baseline float64
}

func NewCalibrated(cfg config.BeatConfig) *Calibrated {
	return &Calibrated{
		duration:   cfg.CalibrationDuration,
		multiplier: cfg.CalibrationMultiplier,
	}
}

func (c *Calibrated) Observe(amplitude float64, now time.Duration) Verdict {
	if !c.started {
		c.started = true
		c.start = now
	}
	if !c.done {
		if now-c.start < c.duration {
			c.samples = append(c.samples, amplitude)
			return Verdict{}
		}
		if len(c.samples) > 0 {
			c.baseline = floats.Sum(c.samples) / float64(len(c.samples))
		}
		c.samples = c.samples[:0]
		c.done = true
	}
	return Verdict{
		Candidate: amplitude > c.baseline*c.multiplier,
		Baseline:  c.baseline,
	}
}

func (c *Calibrated) Ready() bool {
	return c.done
}

// Progress reports how much of the calibration period has elapsed, 0..1
func (c *Calibrated) Progress(now time.Duration) float64 {
	switch {
	case c.done:
		return 1
	case !c.started || c.duration <= 0:
		return 0
	}
	p := float64(now-c.start) / float64(c.duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (c *Calibrated) Baseline() float64 {
	return c.baseline
}

func (c *Calibrated) Reset() {
	c.started = false
	c.start = 0
	c.samples = c.samples[:0]
	c.done = false
	c.baseline = 0
}
