package render

import (
	"image/color"
	"math"

	"github.com/automoto/handbeat/components"
	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawDebug renders a top-down radar of the collision space centred on the
// player, with the current aim direction.
func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image, arena cfg.ArenaConfig) {
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	cx, cy := float64(width)/2, float64(height)/2
	scale := cfg.Display.RadarScale

	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(arena.SpawnRadius*scale), 1, cfg.DarkGrey, false)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(arena.KillRadius*scale), 1, cfg.Orange, false)

	for _, obj := range space.Objects() {
		// Space coordinates are world X/Z shifted by the extent
		x := (obj.X-arena.Extent)*scale + cx
		y := (obj.Y-arena.Extent)*scale + cy
		w, h := obj.W*scale, obj.H*scale

		var c color.RGBA
		switch {
		case obj.HasTags(tags.ResolvScenery):
			c = cfg.Grey
		case obj.HasTags(tags.ResolvBoss):
			c = cfg.Magenta
		case obj.HasTags(tags.ResolvEnemy):
			c = cfg.Red
		default:
			c = cfg.White
		}

		vector.FillRect(screen, float32(x), float32(y), float32(w), 1, c, false)     // Top
		vector.FillRect(screen, float32(x), float32(y+h-1), float32(w), 1, c, false) // Bottom
		vector.FillRect(screen, float32(x), float32(y), 1, float32(h), c, false)     // Left
		vector.FillRect(screen, float32(x+w-1), float32(y), 1, float32(h), c, false) // Right
	}

	vector.FillRect(screen, float32(cx-3), float32(cy-3), 6, 6, cfg.Blue, false)

	cameraEntry, ok := components.Camera.First(ecs.World)
	if !ok {
		return
	}
	yaw := components.Camera.Get(cameraEntry).Yaw
	reach := arena.SpawnRadius * scale
	ax := cx - math.Sin(yaw)*reach
	ay := cy - math.Cos(yaw)*reach
	vector.StrokeLine(screen, float32(cx), float32(cy), float32(ax), float32(ay), 1, cfg.Yellow, false)
}
