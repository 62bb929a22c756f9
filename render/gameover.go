package render

import (
	"fmt"
	"time"

	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawGameOver dims the screen and prints the final score once the player
// has died.
func DrawGameOver(e *ecs.ECS, screen *ebiten.Image) {
	overEntry, ok := components.GameOver.First(e.World)
	if !ok {
		return
	}
	over := components.GameOver.Get(overEntry)

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())
	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.Display.GameOverOverlay, false)

	score := 0
	if playerEntry, ok := components.Player.First(e.World); ok {
		score = components.Player.Get(playerEntry).Score
	}
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("taken by %s at %s", over.Killer, over.At.Round(time.Second)),
		fmt.Sprintf("score %d", score),
		"press space to play again",
	}
	for i, line := range lines {
		// DebugPrint glyphs are 6px wide
		x := int(width/2) - len(line)*3
		ebitenutil.DebugPrintAt(screen, line, x, int(height/2)-30+i*16)
	}
}
