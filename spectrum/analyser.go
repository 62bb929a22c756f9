// Package spectrum derives the low-band amplitude the beat detector consumes
// from raw PCM, the way a browser analyser node would.
package spectrum

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/automoto/handbeat/config"
)

// LowBandAmplitude averages the byte magnitudes in bins [lo, hi). Out of range
// bounds are clipped; an empty band is 0.
func LowBandAmplitude(data []uint8, lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(data) {
		hi = len(data)
	}
	if hi <= lo {
		return 0
	}
	sum := 0
	for _, v := range data[lo:hi] {
		sum += int(v)
	}
	return float64(sum) / float64(hi-lo)
}

// Analyser keeps the most recent FFTSize mono samples and turns them into
// byte frequency magnitudes. Write and read may happen on different
// goroutines.
type Analyser struct {
	cfg config.AnalyserConfig

	mu      sync.Mutex
	ring    []float64
	next    int
	fft     *fourier.FFT
	window  []float64
	frame   []float64
	coeffs  []complex128
	smooth  []float64
	scratch []uint8
}

// NewAnalyser creates an analyser. FFTSize must be a power of two.
func NewAnalyser(cfg config.AnalyserConfig) *Analyser {
	n := cfg.FFTSize
	return &Analyser{
		cfg:     cfg,
		ring:    make([]float64, n),
		fft:     fourier.NewFFT(n),
		window:  blackman(n),
		frame:   make([]float64, n),
		smooth:  make([]float64, n/2),
		scratch: make([]uint8, n/2),
	}
}

// BinCount is the number of frequency bins, half the FFT size
func (a *Analyser) BinCount() int {
	return a.cfg.FFTSize / 2
}

// Write appends mono samples in [-1, 1]
func (a *Analyser) Write(samples []float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range samples {
		a.ring[a.next] = s
		a.next = (a.next + 1) % len(a.ring)
	}
}

// ByteFrequencyData fills dst with magnitudes scaled from the decibel range
// to 0..255 and returns the number of bins written. Every call advances the
// time smoothing by one step.
func (a *Analyser) ByteFrequencyData(dst []uint8) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.byteFrequencyData(dst)
}

// Amplitude is the mean byte magnitude of the configured low band
func (a *Analyser) Amplitude() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.byteFrequencyData(a.scratch)
	return LowBandAmplitude(a.scratch[:n], a.cfg.LowBandStart, a.cfg.LowBandEnd)
}

func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.ring {
		a.ring[i] = 0
	}
	for i := range a.smooth {
		a.smooth[i] = 0
	}
	a.next = 0
}

func (a *Analyser) byteFrequencyData(dst []uint8) int {
	n := len(a.ring)
	// Oldest sample first
	for i := 0; i < n; i++ {
		a.frame[i] = a.ring[(a.next+i)%n] * a.window[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.frame)

	bins := len(a.smooth)
	if len(dst) < bins {
		bins = len(dst)
	}
	tau := a.cfg.Smoothing
	span := a.cfg.MaxDecibels - a.cfg.MinDecibels
	for k := 0; k < len(a.smooth); k++ {
		c := a.coeffs[k]
		mag := math.Hypot(real(c), imag(c)) / float64(n)
		a.smooth[k] = tau*a.smooth[k] + (1-tau)*mag
		if k >= bins {
			continue
		}
		db := math.Inf(-1)
		if a.smooth[k] > 0 {
			db = 20 * math.Log10(a.smooth[k])
		}
		scaled := 255 * (db - a.cfg.MinDecibels) / span
		switch {
		case math.IsNaN(scaled) || scaled < 0:
			dst[k] = 0
		case scaled > 255:
			dst[k] = 255
		default:
			dst[k] = uint8(scaled)
		}
	}
	return bins
}

func blackman(n int) []float64 {
	const alpha = 0.16
	a0, a1, a2 := (1-alpha)/2, 0.5, alpha/2
	w := make([]float64, n)
	for i := range w {
		x := 2 * math.Pi * float64(i) / float64(n)
		w[i] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x)
	}
	return w
}
