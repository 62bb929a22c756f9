package spectrum

import (
	"errors"
	"sync"

	"github.com/gopxl/beep"
)

var errNotSeekable = errors.New("track is not seekable")

// Tap passes audio through unchanged while feeding a mono mix to an Analyser
type Tap struct {
	streamer beep.Streamer
	analyser *Analyser
	mono     []float64
}

func NewTap(s beep.Streamer, a *Analyser) *Tap {
	return &Tap{streamer: s, analyser: a}
}

func (t *Tap) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = t.streamer.Stream(samples)
	if n == 0 {
		return n, ok
	}
	if cap(t.mono) < n {
		t.mono = make([]float64, n)
	}
	mono := t.mono[:n]
	for i := range mono {
		mono[i] = (samples[i][0] + samples[i][1]) / 2
	}
	t.analyser.Write(mono)
	return n, ok
}

func (t *Tap) Err() error {
	return t.streamer.Err()
}

// Seek moves the underlying track when it supports seeking
func (t *Tap) Seek(p int) error {
	seeker, ok := t.streamer.(beep.StreamSeeker)
	if !ok {
		return errNotSeekable
	}
	return seeker.Seek(p)
}

// Transport is the pause switch of a playing track. It is itself the
// streamer handed to the speaker and reports the analysed low-band amplitude
// together with the playing state.
type Transport struct {
	mu       sync.Mutex
	ctrl     *beep.Ctrl
	analyser *Analyser
	ended    bool
}

// NewTransport wraps s (usually a Tap over a decoded track). It starts paused.
func NewTransport(s beep.Streamer, a *Analyser) *Transport {
	return &Transport{
		ctrl:     &beep.Ctrl{Streamer: s, Paused: true},
		analyser: a,
	}
}

func (t *Transport) Stream(samples [][2]float64) (n int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok = t.ctrl.Stream(samples)
	if !ok {
		t.ended = true
	}
	return n, ok
}

func (t *Transport) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctrl.Err()
}

func (t *Transport) Play() {
	t.mu.Lock()
	t.ctrl.Paused = false
	t.mu.Unlock()
}

// Pause halts playback and clears the analyser history
func (t *Transport) Pause() {
	t.mu.Lock()
	t.ctrl.Paused = true
	t.mu.Unlock()
	t.analyser.Reset()
}

// Playing is true while unpaused and the track has samples left
func (t *Transport) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.ctrl.Paused && !t.ended
}

// Amplitude returns the current low-band amplitude and whether the track is
// playing.
func (t *Transport) Amplitude() (float64, bool) {
	if !t.Playing() {
		return 0, false
	}
	return t.analyser.Amplitude(), true
}

// Ended reports whether the track ran out of samples
func (t *Transport) Ended() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ended
}

// Rewind moves the track back to its start and clears the ended flag. The
// transport stays paused or playing as it was.
func (t *Transport) Rewind() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	seeker, ok := t.ctrl.Streamer.(interface{ Seek(int) error })
	if !ok {
		return errNotSeekable
	}
	if err := seeker.Seek(0); err != nil {
		return err
	}
	t.ended = false
	t.analyser.Reset()
	return nil
}
