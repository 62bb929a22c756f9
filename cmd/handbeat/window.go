package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/render"
	"github.com/automoto/handbeat/session"
)

// debugWindow drives the loop from ebiten's update instead of a ticker
type debugWindow struct {
	loop *session.Loop
	ctrl *controller
	last session.Snapshot
}

func runWindow(loop *session.Loop, ctrl *controller) error {
	ebiten.SetWindowSize(cfg.Display.Width, cfg.Display.Height)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Session.TickRate)
	return ebiten.RunGame(&debugWindow{loop: loop, ctrl: ctrl})
}

func (w *debugWindow) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.ctrl.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	w.last = w.loop.Tick(w.loop.Now())
	return nil
}

func (w *debugWindow) Draw(screen *ebiten.Image) {
	w.loop.View(func(s *session.Session) {
		render.DrawDebug(s.ECS(), screen, cfg.Arena)
		render.DrawHUD(s.ECS(), screen)
		render.DrawGameOver(s.ECS(), screen)
	})

	g, b := w.last.Gesture, w.last.Beat
	status := fmt.Sprintf("hand %v aim %v fire %v depth %s pinch %.2f\nbeat %v amp %.0f base %.0f calib %.0f%%  enemies %d",
		g.Active, g.Aiming, g.Firing, g.DepthError, g.PinchNorm,
		b.Pulse, b.Amplitude, b.Baseline, w.last.Calibration*100, len(w.last.Enemies))
	if !w.last.Running && !w.last.GameOver {
		status += "\npress space to start"
	}
	ebitenutil.DebugPrintAt(screen, status, int(cfg.Display.HUDMargin), cfg.Display.Height-40)
}

func (w *debugWindow) Layout(_, _ int) (int, int) {
	return cfg.Display.Width, cfg.Display.Height
}
