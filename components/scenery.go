package components

import "github.com/yohamta/donburi"

// SceneryData is a static obstacle that stops shots
type SceneryData struct {
	Radius float64
	Height float64
}

var Scenery = donburi.NewComponentType[SceneryData]()
