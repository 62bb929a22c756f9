package spectrum

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/handbeat/config"
)

const rate = 44100

// sine is a finite test tone
type sine struct {
	freq   float64
	pos    int
	length int
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.length {
		return 0, false
	}
	n := 0
	for i := range samples {
		if s.pos >= s.length {
			break
		}
		v := math.Sin(2 * math.Pi * s.freq * float64(s.pos) / rate)
		samples[i] = [2]float64{v, v}
		s.pos++
		n++
	}
	return n, true
}

func (s *sine) Err() error    { return nil }
func (s *sine) Len() int      { return s.length }
func (s *sine) Position() int { return s.pos }
func (s *sine) Seek(p int) error {
	s.pos = p
	return nil
}

// endless has no position to seek to
type endless struct{}

func (endless) Stream(samples [][2]float64) (int, bool) { return len(samples), true }
func (endless) Err() error                              { return nil }

func tone(freq float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / rate)
	}
	return out
}

func TestLowBandAmplitude(t *testing.T) {
	data := []uint8{10, 20, 30, 40, 250}
	assert.Equal(t, 15.0, LowBandAmplitude(data, 0, 2))
	assert.Equal(t, 25.0, LowBandAmplitude(data, 0, 4))
	assert.Equal(t, 145.0, LowBandAmplitude(data, 3, 99), "upper bound is clipped")
	assert.Equal(t, 0.0, LowBandAmplitude(data, 4, 4))
	assert.Equal(t, 0.0, LowBandAmplitude(nil, 0, 8))
}

func TestAnalyserSilenceIsZero(t *testing.T) {
	a := NewAnalyser(config.Analyser)
	a.Write(make([]float64, config.Analyser.FFTSize))

	dst := make([]uint8, a.BinCount())
	n := a.ByteFrequencyData(dst)
	require.Equal(t, a.BinCount(), n)
	for k, v := range dst {
		require.Zero(t, v, "bin %d", k)
	}
	assert.Zero(t, a.Amplitude())
}

func TestAnalyserBassOutweighsTreble(t *testing.T) {
	size := config.Analyser.FFTSize

	bass := NewAnalyser(config.Analyser)
	bass.Write(tone(60, size))
	treble := NewAnalyser(config.Analyser)
	treble.Write(tone(5000, size))

	var low, high float64
	for i := 0; i < 10; i++ {
		low = bass.Amplitude()
		high = treble.Amplitude()
	}
	assert.Greater(t, low, high)
	assert.Greater(t, low, 100.0)
}

func TestAnalyserShortDestination(t *testing.T) {
	a := NewAnalyser(config.Analyser)
	a.Write(tone(60, config.Analyser.FFTSize))
	dst := make([]uint8, 4)
	assert.Equal(t, 4, a.ByteFrequencyData(dst))
}

func TestTapFeedsAnalyser(t *testing.T) {
	a := NewAnalyser(config.Analyser)
	src := &sine{freq: 60, length: config.Analyser.FFTSize}
	tap := NewTap(src, a)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := tap.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, config.Analyser.FFTSize, total)
	assert.NoError(t, tap.Err())
	assert.Greater(t, a.Amplitude(), 0.0)
}

func TestTransport(t *testing.T) {
	a := NewAnalyser(config.Analyser)
	src := &sine{freq: 60, length: 1024}
	tr := NewTransport(NewTap(src, a), a)

	_, playing := tr.Amplitude()
	assert.False(t, playing, "starts paused")

	// Paused transport streams silence and does not consume the track
	buf := make([][2]float64, 256)
	n, ok := tr.Stream(buf)
	assert.Equal(t, len(buf), n)
	assert.True(t, ok)
	assert.Zero(t, src.pos)

	tr.Play()
	assert.True(t, tr.Playing())
	tr.Stream(buf)
	assert.Equal(t, 256, src.pos)
	amp, playing := tr.Amplitude()
	assert.True(t, playing)
	assert.Greater(t, amp, 0.0)

	tr.Pause()
	assert.False(t, tr.Playing())
	assert.Zero(t, a.Amplitude(), "pause clears analyser history")

	tr.Play()
	for {
		if _, ok := tr.Stream(buf); !ok {
			break
		}
	}
	assert.False(t, tr.Playing(), "finished track is not playing")
	assert.True(t, tr.Ended())

	require.NoError(t, tr.Rewind())
	assert.False(t, tr.Ended())
	assert.Zero(t, src.pos)
	assert.True(t, tr.Playing())
}

func TestRewindNeedsSeeker(t *testing.T) {
	a := NewAnalyser(config.Analyser)
	tr := NewTransport(NewTap(endless{}, a), a)
	assert.Error(t, tr.Rewind())
}

var _ beep.Streamer = (*Transport)(nil)
