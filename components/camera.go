package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// CameraData is the view direction driven by the hand cursor
type CameraData struct {
	Cursor math.Vec2 // Last cursor that moved the camera
	Yaw    float64   // Radians, held while the hand is inactive
}

var Camera = donburi.NewComponentType[CameraData]()
