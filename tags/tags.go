package tags

import "github.com/yohamta/donburi"

var (
	Player  = donburi.NewTag().SetName("Player")
	Enemy   = donburi.NewTag().SetName("Enemy")
	Boss    = donburi.NewTag().SetName("Boss")
	Scenery = donburi.NewTag().SetName("Scenery")
)

// Resolv tags for shot hit testing
const (
	ResolvEnemy   = "Enemy"
	ResolvBoss    = "Boss"
	ResolvScenery = "scenery"
)
