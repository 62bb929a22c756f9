package config

import "image/color"

// DisplayConfig contains the debug window layout
type DisplayConfig struct {
	Width  int
	Height int
	Title  string

	RadarScale   float64 // Pixels per world unit
	HUDMargin    float64
	HUDBarWidth  float64
	HUDBarHeight float64

	GameOverOverlay color.RGBA
}

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green        = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue         = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	Magenta      = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Grey         = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	DarkGrey     = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

var Display DisplayConfig

func init() {
	Display = DisplayConfig{
		Width:  640,
		Height: 480,
		Title:  "handbeat",

		RadarScale:   8,
		HUDMargin:    10,
		HUDBarWidth:  130,
		HUDBarHeight: 13,

		GameOverOverlay: BlackOverlay,
	}
}
