package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	cfg "github.com/automoto/handbeat/config"
)

var errLoopRunning = errors.New("game loop already running")

// trackEnder is implemented by audio sources that know when a track finished
type trackEnder interface {
	Ended() bool
}

// Loop drives a session from a ticker, pulling the latest pose and audio
// amplitude each tick. All session access goes through the loop's lock.
type Loop struct {
	mu       sync.Mutex
	session  *Session
	pose     PoseSource
	audio    AudioSource
	tickRate int
	origin   time.Time
	ticks    uint64
	last     Snapshot

	snapshotEvery int
	onSnapshot    func(Snapshot)
	onSFX         func([]cfg.SoundID)

	running  bool
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop. Either source may be nil.
func NewLoop(session *Session, pose PoseSource, audio AudioSource, tickRate int) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Loop{
		session:       session,
		pose:          pose,
		audio:         audio,
		tickRate:      tickRate,
		origin:        time.Now(),
		snapshotEvery: 1,
		stopChan:      make(chan struct{}),
	}
}

// OnSnapshot publishes a snapshot every n ticks
func (l *Loop) OnSnapshot(every int, fn func(Snapshot)) {
	if every <= 0 {
		every = 1
	}
	l.mu.Lock()
	l.snapshotEvery = every
	l.onSnapshot = fn
	l.mu.Unlock()
}

// OnSFX receives the sound cues raised by each tick
func (l *Loop) OnSFX(fn func([]cfg.SoundID)) {
	l.mu.Lock()
	l.onSFX = fn
	l.mu.Unlock()
}

// Now is the loop clock: time since the loop was created
func (l *Loop) Now() time.Duration {
	return time.Since(l.origin)
}

// Running reports whether Run is driving the loop
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Run ticks until ctx is done or Stop is called. Only one Run may be
// active at a time.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return errLoopRunning
	}
	l.running = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	log.Printf("Game loop started at %d ticks/second", l.tickRate)

	for {
		select {
		case <-ctx.Done():
			log.Println("Game loop stopped")
			return ctx.Err()
		case <-l.stopChan:
			log.Println("Game loop stopped")
			return nil
		case <-ticker.C:
			l.Tick(l.Now())
		}
	}
}

func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}

// Tick advances the session to now and returns the resulting snapshot
func (l *Loop) Tick(now time.Duration) Snapshot {
	in := Input{Now: now}
	if l.pose != nil {
		in.Hands = l.pose.Latest()
	}
	if l.audio != nil {
		in.Amplitude, in.Playing = l.audio.Amplitude()
	}

	l.mu.Lock()
	if ender, ok := l.audio.(trackEnder); ok && ender.Ended() && l.session.Running() {
		log.Println("Track ended")
		l.session.Stop()
	}
	l.session.Update(in)
	cues := l.session.DrainSFX()
	l.ticks++
	l.last = l.session.Snapshot()
	snap := l.last
	publish := l.onSnapshot != nil && l.ticks%uint64(l.snapshotEvery) == 0
	onSnapshot, onSFX := l.onSnapshot, l.onSFX
	l.mu.Unlock()

	if len(cues) > 0 && onSFX != nil {
		onSFX(cues)
	}
	if publish {
		onSnapshot(snap)
	}
	return snap
}

// Last returns the snapshot of the most recent tick
func (l *Loop) Last() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// StartSession begins a play-through at the loop clock
func (l *Loop) StartSession() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.session.Start(l.Now())
	l.last = l.session.Snapshot()
}

// StopSession ends the current play-through
func (l *Loop) StopSession() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.session.Stop()
	l.last = l.session.Snapshot()
}

// View runs fn with exclusive access to the session, for readers that need
// more than a snapshot.
func (l *Loop) View(fn func(*Session)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.session)
}
