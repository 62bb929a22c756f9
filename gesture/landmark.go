// Package gesture turns per-frame hand keypoints into aim/fire intent and a
// smoothed cursor.
package gesture

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// Landmark indices of the 21 point hand model
const (
	Wrist = iota
	ThumbCMC
	ThumbMCP
	ThumbIP
	ThumbTip
	IndexMCP
	IndexPIP
	IndexDIP
	IndexTip
	MiddleMCP
	MiddlePIP
	MiddleDIP
	MiddleTip
	RingMCP
	RingPIP
	RingDIP
	RingTip
	PinkyMCP
	PinkyPIP
	PinkyDIP
	PinkyTip
	LandmarkCount
)

// Landmark is one keypoint in normalized camera space
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandFrame is one detected hand for one tracking frame
type HandFrame struct {
	Landmarks  [LandmarkCount]Landmark `json:"landmarks"`
	Handedness string                  `json:"handedness,omitempty"` // "Left", "Right" or empty
	Timestamp  time.Duration           `json:"t"`
}

// Point is a 2D cursor position in unit range
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (l Landmark) vec() r3.Vec {
	return r3.Vec{X: l.X, Y: l.Y, Z: l.Z}
}

func sub(a, b Landmark) r3.Vec {
	return r3.Sub(a.vec(), b.vec())
}

func dist(a, b Landmark) float64 {
	return r3.Norm(sub(a, b))
}

func finite(a Landmark) bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsNaN(a.Z) &&
		!math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0) && !math.IsInf(a.Z, 0)
}
