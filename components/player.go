package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// PlayerData is the singleton score keeper for the session
type PlayerData struct {
	Score int
	Kills int
	Hits  int // Shots that damaged without killing
	Shots int
}

var Player = donburi.NewComponentType[PlayerData]()

// GameOverData is attached to the player once its health reaches zero
type GameOverData struct {
	At     time.Duration
	Killer string // Enemy type that dealt the final blow
}

var GameOver = donburi.NewComponentType[GameOverData]()
