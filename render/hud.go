// Package render draws the session state into the ebiten debug window.
package render

import (
	"fmt"

	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawHUD renders the player's health bar and score in the top-left corner.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	playerEntry, ok := components.Player.First(ecs.World)
	if !ok {
		return
	}
	hp := components.Health.Get(playerEntry)
	player := components.Player.Get(playerEntry)
	d := cfg.Display

	vector.FillRect(screen,
		float32(d.HUDMargin), float32(d.HUDMargin),
		float32(d.HUDBarWidth), float32(d.HUDBarHeight),
		cfg.DarkGrey, false)

	ratio := float32(0)
	if hp.Max > 0 {
		ratio = float32(hp.Current) / float32(hp.Max)
	}
	vector.FillRect(screen,
		float32(d.HUDMargin), float32(d.HUDMargin),
		float32(d.HUDBarWidth)*ratio, float32(d.HUDBarHeight),
		cfg.Green, false)

	line := fmt.Sprintf("HP %d/%d  SCORE %d  KILLS %d  SHOTS %d", hp.Current, hp.Max, player.Score, player.Kills, player.Shots)
	ebitenutil.DebugPrintAt(screen, line, int(d.HUDMargin), int(d.HUDMargin+d.HUDBarHeight)+4)
}
