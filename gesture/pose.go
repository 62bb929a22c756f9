package gesture

import (
	"math"

	"github.com/automoto/handbeat/config"
	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon below which a vector or scale counts as degenerate
const epsilon = 1e-6

// pose is the geometry read from a single hand frame
type pose struct {
	usable   bool
	aiming   bool
	edgeOn   bool
	pinch    float64 // min thumb/index distance divided by hand scale
	cosine   float64 // thumb direction vs index direction
	scale    float64 // wrist to middle knuckle
	strength float64
}

var (
	thumbPinchSet = [...]int{ThumbMCP, ThumbIP, ThumbTip}
	indexPinchSet = [...]int{IndexMCP, IndexPIP, IndexTip}
)

// extended reports whether the finger tip is farther from the wrist than its
// proximal joint.
func extended(lm *[LandmarkCount]Landmark, pip, tip int) bool {
	return dist(lm[tip], lm[Wrist]) > dist(lm[pip], lm[Wrist])
}

func readPose(f *HandFrame, cfg *config.GestureConfig) pose {
	lm := &f.Landmarks
	for i := range lm {
		if !finite(lm[i]) {
			return pose{}
		}
	}

	palm := sub(lm[MiddleMCP], lm[Wrist])
	scale := r3.Norm(palm)
	thumbDir := sub(lm[ThumbTip], lm[IndexMCP])
	indexDir := sub(lm[IndexTip], lm[IndexMCP])
	thumbLen, indexLen := r3.Norm(thumbDir), r3.Norm(indexDir)
	if scale < epsilon || thumbLen < epsilon || indexLen < epsilon {
		return pose{scale: scale}
	}

	minDist := math.Inf(1)
	for _, t := range thumbPinchSet {
		for _, i := range indexPinchSet {
			minDist = math.Min(minDist, dist(lm[t], lm[i]))
		}
	}

	p := pose{
		usable: true,
		aiming: extended(lm, IndexPIP, IndexTip) && extended(lm, MiddlePIP, MiddleTip),
		edgeOn: math.Abs(palm.Z) > cfg.EdgeOnRatio*math.Max(math.Abs(palm.X), math.Abs(palm.Y)),
		pinch:  minDist / scale,
		cosine: r3.Dot(thumbDir, indexDir) / (thumbLen * indexLen),
		scale:  scale,
	}
	if cfg.PinchStrengthRange > 0 {
		p.strength = clamp01((cfg.PinchStrengthRange - minDist) / cfg.PinchStrengthRange)
	}
	return p
}

func (p pose) depth(cfg *config.GestureConfig) DepthError {
	switch {
	case p.scale <= 0:
		return DepthNone
	case cfg.TooCloseScale > 0 && p.scale > cfg.TooCloseScale:
		return DepthTooClose
	case p.scale < cfg.TooFarScale:
		return DepthTooFar
	}
	return DepthNone
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
