// Package session runs the per-tick pipeline: gesture, beat, simulation,
// combat and event dispatch, always in that order.
package session

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/handbeat/beat"
	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/gesture"
	"github.com/automoto/handbeat/shared/messages"
	"github.com/automoto/handbeat/systems"
	"github.com/automoto/handbeat/systems/factory"
)

// PoseSource yields the hands of the most recent tracking frame
type PoseSource interface {
	Latest() []gesture.HandFrame
}

// AudioSource yields the current low-band amplitude and transport state
type AudioSource interface {
	Amplitude() (float64, bool)
}

// Input is everything external consumed by one tick
type Input struct {
	Now       time.Duration // Since the process clock origin
	Hands     []gesture.HandFrame
	Amplitude float64
	Playing   bool
}

// Session is the single authority over one play-through. It is not safe for
// concurrent use; producers hand their data over through Input.
type Session struct {
	opts Options

	id         string
	classifier *gesture.Classifier
	detector   *beat.Detector
	sim        *systems.Simulation
	resolver   *systems.Resolver
	ecs        *ecs.ECS
	player     *donburi.Entry

	running  bool
	over     bool
	hasTick  bool
	lastNow  time.Duration
	beats    int
	in       Input
	dt       time.Duration
	gesture  gesture.State
	reading  beat.Reading
	onScore  func(messages.ScoreEvent)
	onReach  func(messages.ReachedPlayerEvent)
	onFinish func(Snapshot)
}

// New builds an idle session. Call Start to begin play.
func New(opts Options) (*Session, error) {
	mode, err := opts.mode()
	if err != nil {
		return nil, err
	}
	strategy, err := beat.NewStrategy(opts.Beat)
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	heights, err := systems.NewHeightStrategy(opts.Enemy.HeightStrategy, opts.Arena)
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	rng := opts.Random
	if rng == nil {
		rng = systems.NewRandom(opts.Session.Seed)
	}

	s := &Session{
		opts:       opts,
		classifier: gesture.NewClassifier(opts.Gesture, mode),
		detector:   beat.NewDetector(opts.Beat, strategy),
		sim:        systems.NewSimulation(opts.Enemy, opts.Arena, rng, heights),
	}

	var hits systems.HitTester = systems.NewSpaceHitTester(s.sim, opts.Combat.RayStep)
	if opts.HitTester != nil {
		hits = opts.HitTester(s.sim)
	}
	s.resolver = systems.NewResolver(opts.Combat, s.sim, hits, systems.Rewards(opts.Enemy))

	s.ecs = s.sim.ECS()
	s.player = factory.CreatePlayer(s.ecs, opts.Session.PlayerHealth)

	s.ecs.AddSystem(s.updateGesture)
	s.ecs.AddSystem(s.updateBeat)
	s.ecs.AddSystem(s.updateSimulation)
	s.ecs.AddSystem(s.updateCombat)
	s.ecs.AddSystem(s.dispatchEvents)

	s.subscribe()
	return s, nil
}

// ID is the identifier of the current or last play-through
func (s *Session) ID() string {
	return s.id
}

func (s *Session) Running() bool {
	return s.running
}

func (s *Session) GameOver() bool {
	return s.over
}

// ECS is the world the session runs in, for drawing
func (s *Session) ECS() *ecs.ECS {
	return s.ecs
}

func (s *Session) Simulation() *systems.Simulation {
	return s.sim
}

func (s *Session) Classifier() *gesture.Classifier {
	return s.classifier
}

func (s *Session) Detector() *beat.Detector {
	return s.detector
}

func (s *Session) Resolver() *systems.Resolver {
	return s.resolver
}

// OnScore registers a listener for score events after they are applied
func (s *Session) OnScore(fn func(messages.ScoreEvent)) {
	s.onScore = fn
}

// OnReached registers a listener for enemies reaching the player
func (s *Session) OnReached(fn func(messages.ReachedPlayerEvent)) {
	s.onReach = fn
}

// OnFinish registers a listener run with the final snapshot when the
// session stops.
func (s *Session) OnFinish(fn func(Snapshot)) {
	s.onFinish = fn
}

// Start begins a fresh play-through at now
func (s *Session) Start(now time.Duration) {
	if s.running {
		return
	}
	s.resetState()
	s.id = uuid.NewString()
	s.sim.SetSessionID(s.id)
	s.resolver.SetSessionID(s.id)
	s.sim.Start(now)
	s.running = true
	log.Printf("Session %s started", s.id)
}

// Stop ends the play-through: no more input is consumed, every enemy is
// cleared and all timers and latches are reset.
func (s *Session) Stop() {
	if !s.running {
		return
	}
	final := s.Snapshot()
	s.running = false
	s.sim.Clear()
	s.classifier.Reset()
	s.detector.Pause()
	s.resolver.Reset()
	s.hasTick = false
	s.lastNow = 0
	s.gesture = gesture.State{}
	s.reading = beat.Reading{}
	log.Printf("Session %s stopped: score=%d kills=%d health=%d", s.id, final.Score, final.Kills, final.Health)
	if s.onFinish != nil {
		s.onFinish(final)
	}
}

func (s *Session) resetState() {
	s.over = false
	s.classifier.Reset()
	s.gesture = gesture.State{}
	s.beats = 0
	components.Player.SetValue(s.player, components.PlayerData{})
	hp := components.Health.Get(s.player)
	hp.Current = hp.Max
	camera := components.Camera.Get(s.player)
	camera.Yaw = 0
	camera.Cursor.X, camera.Cursor.Y = 0.5, 0.5
	if s.player.HasComponent(components.GameOver) {
		donburi.Remove[components.GameOverData](s.player, components.GameOver)
	}
	systems.DrainSFX(s.ecs.World)
}

// Update runs one tick. A stopped session consumes no input: every stage
// is skipped until the next Start.
func (s *Session) Update(in Input) {
	s.in = in
	s.dt = 0
	if s.hasTick && in.Now > s.lastNow {
		s.dt = in.Now - s.lastNow
	}
	s.hasTick = true
	s.lastNow = in.Now

	s.ecs.Update()

	if s.over {
		s.Stop()
	}
}

// DrainSFX returns the sound cues raised since the last call
func (s *Session) DrainSFX() []cfg.SoundID {
	return systems.DrainSFX(s.ecs.World)
}
