package main

import (
	"log"
	"time"

	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/persistence"
	"github.com/automoto/handbeat/session"
	"github.com/automoto/handbeat/spectrum"
)

// controller ties the session lifetime to the track transport
type controller struct {
	loop      *session.Loop
	transport *spectrum.Transport
	scores    *persistence.Store // May be nil
}

func (c *controller) Last() session.Snapshot {
	return c.loop.Last()
}

func (c *controller) StartSession() {
	if c.transport != nil {
		if c.transport.Ended() {
			if err := c.transport.Rewind(); err != nil {
				log.Printf("Cannot rewind track: %v", err)
			}
		}
		c.transport.Play()
	}
	c.loop.StartSession()
}

func (c *controller) StopSession() {
	c.loop.StopSession()
}

// Toggle starts a stopped session and stops a running one
func (c *controller) Toggle() {
	if c.loop.Last().Running {
		c.StopSession()
		return
	}
	c.StartSession()
}

// finished runs inside the loop when a session ends for any reason
func (c *controller) finished(final session.Snapshot) {
	if c.transport != nil {
		c.transport.Pause()
	}
	log.Printf("Final score %d (%d kills, %d shots)", final.Score, final.Kills, final.Shots)
	if c.scores == nil || final.SessionID == "" {
		return
	}
	best, err := c.scores.Add(persistence.Record{
		SessionID: final.SessionID,
		Score:     final.Score,
		Kills:     final.Kills,
		Shots:     final.Shots,
		Survived:  !final.GameOver,
		Mode:      cfg.Gesture.Mode,
		At:        time.Now(),
	})
	if err != nil {
		log.Printf("Warning: Could not save score: %v", err)
		return
	}
	if best {
		log.Printf("New best score: %d", final.Score)
	}
}
