package gesture

import (
	"fmt"

	"github.com/automoto/handbeat/config"
)

// Mode selects how detected hands map onto the camera and trigger roles
type Mode int

const (
	// OneHand uses the sole hand for both cursor and trigger
	OneHand Mode = iota
	// TwoHand steers with one hand and fires with the other
	TwoHand
)

func (m Mode) String() string {
	switch m {
	case OneHand:
		return config.ModeOneHand
	case TwoHand:
		return config.ModeTwoHand
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a config mode name into a Mode
func ParseMode(name string) (Mode, error) {
	switch name {
	case config.ModeOneHand, "":
		return OneHand, nil
	case config.ModeTwoHand:
		return TwoHand, nil
	}
	return OneHand, fmt.Errorf("unknown gesture mode %q", name)
}

// router picks the camera and trigger hands from one frame's detections.
// Either result may be nil.
type router interface {
	route(frames []HandFrame) (camera, trigger *HandFrame)
}

type oneHandRouter struct{}

func (oneHandRouter) route(frames []HandFrame) (*HandFrame, *HandFrame) {
	if len(frames) == 0 {
		return nil, nil
	}
	return &frames[0], &frames[0]
}

type twoHandRouter struct {
	cameraHand string
}

func (r twoHandRouter) route(frames []HandFrame) (camera, trigger *HandFrame) {
	var unlabeled []*HandFrame
	for i := range frames {
		f := &frames[i]
		switch {
		case f.Handedness == "":
			unlabeled = append(unlabeled, f)
		case f.Handedness == r.cameraHand:
			if camera == nil {
				camera = f
			}
		default:
			if trigger == nil {
				trigger = f
			}
		}
	}
	// Unlabeled hands fill the free roles in input order
	for _, f := range unlabeled {
		switch {
		case camera == nil:
			camera = f
		case trigger == nil:
			trigger = f
		}
	}
	return camera, trigger
}

func newRouter(mode Mode, cfg *config.GestureConfig) router {
	if mode == TwoHand {
		return twoHandRouter{cameraHand: cfg.CameraHand}
	}
	return oneHandRouter{}
}
