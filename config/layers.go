package config

import "github.com/yohamta/donburi/ecs"

// Layers
const (
	Default ecs.LayerID = iota
)
