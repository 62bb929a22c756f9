package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData is an entity's footprint in the collision space
type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// Space is the singleton collision space shared by enemies and scenery
var Space = donburi.NewComponentType[resolv.Space]()
