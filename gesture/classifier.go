package gesture

import (
	"time"

	"github.com/automoto/handbeat/config"
)

// DepthError hints that the hand is outside the usable distance from the camera
type DepthError int

const (
	DepthNone DepthError = iota
	DepthTooClose
	DepthTooFar
)

func (d DepthError) String() string {
	switch d {
	case DepthTooClose:
		return "too_close"
	case DepthTooFar:
		return "too_far"
	}
	return "none"
}

// MarshalText lets DepthError appear by name in JSON snapshots
func (d DepthError) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// State is the interpreted intent for one frame
type State struct {
	Active        bool       `json:"active"`
	Aiming        bool       `json:"aiming"`
	Firing        bool       `json:"firing"`
	Cursor        Point      `json:"cursor"`
	DepthError    DepthError `json:"depthError"`
	EdgeOn        bool       `json:"edgeOn"`
	PinchNorm     float64    `json:"pinch"`
	PinchStrength float64    `json:"pinchStrength"`
}

// Classifier turns hand frames into a State. It keeps only the smoothed
// cursor, the last time a hand was seen and the fire latch between frames.
type Classifier struct {
	cfg    config.GestureConfig
	mode   Mode
	router router

	state    State
	seen     bool
	lastSeen time.Duration
	latched  bool
}

// NewClassifier creates a classifier for one session
func NewClassifier(cfg config.GestureConfig, mode Mode) *Classifier {
	c := &Classifier{
		cfg:  cfg,
		mode: mode,
	}
	c.router = newRouter(mode, &c.cfg)
	c.Reset()
	return c
}

// Mode returns the hand routing mode chosen at construction
func (c *Classifier) Mode() Mode {
	return c.mode
}

// Reset returns the classifier to its initial inactive state
func (c *Classifier) Reset() {
	c.state = State{Cursor: Point{X: 0.5, Y: 0.5}}
	c.seen = false
	c.lastSeen = 0
	c.latched = false
}

// Update interprets the hands detected at time now. It never fails: missing
// or unusable input degrades to an inactive or non-firing state.
func (c *Classifier) Update(frames []HandFrame, now time.Duration) State {
	camera, trigger := c.router.route(frames)
	if camera == nil && trigger == nil {
		if c.seen && now-c.lastSeen <= c.cfg.LostGrace {
			return c.state
		}
		c.latched = false
		c.state = State{Cursor: c.state.Cursor}
		return c.state
	}
	c.seen = true
	c.lastSeen = now

	if camera != nil {
		c.smoothCursor(camera)
	}

	next := State{Active: true, Cursor: c.state.Cursor}
	gestureHand := trigger
	if gestureHand == nil {
		gestureHand = camera
	}
	p := readPose(gestureHand, &c.cfg)
	next.DepthError = p.depth(&c.cfg)

	if trigger == nil || !p.usable {
		// No trigger hand or degenerate geometry: no gesture this frame
		c.latched = false
		c.state = next
		return c.state
	}

	next.Aiming = p.aiming
	next.EdgeOn = p.edgeOn
	next.PinchNorm = p.pinch
	next.PinchStrength = p.strength
	next.Firing = c.fire(p)
	c.state = next
	return c.state
}

// fire applies the pinch rules with hysteresis on the release side
func (c *Classifier) fire(p pose) bool {
	if !p.aiming {
		c.latched = false
		return false
	}

	if c.latched {
		var release bool
		if p.edgeOn {
			release = p.pinch >= c.cfg.PinchThreshold+c.cfg.PinchHysteresis
		} else {
			release = p.cosine <= c.cfg.FaceOnCosine-c.cfg.CosineHysteresis ||
				p.pinch >= c.cfg.FaceOnPinchBound+c.cfg.PinchHysteresis
		}
		if release {
			c.latched = false
		}
		return c.latched
	}

	if p.edgeOn {
		c.latched = p.pinch < c.cfg.PinchThreshold
	} else {
		c.latched = p.cosine > c.cfg.FaceOnCosine && p.pinch < c.cfg.FaceOnPinchBound
	}
	return c.latched
}

func (c *Classifier) smoothCursor(f *HandFrame) {
	tip := f.Landmarks[IndexTip]
	if !finite(tip) {
		return
	}
	x, y := tip.X, tip.Y
	if c.cfg.MirrorCursor {
		x, y = 1-x, 1-y
	}
	k := c.cfg.CursorSmoothing
	c.state.Cursor.X = clamp01(c.state.Cursor.X + (x-c.state.Cursor.X)*k)
	c.state.Cursor.Y = clamp01(c.state.Cursor.Y + (y-c.state.Cursor.Y)*k)
}
