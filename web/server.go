// Package web serves session telemetry: REST endpoints for the latest
// snapshot and session control, and a websocket stream of snapshots.
package web

import (
	"encoding/json"
	"log"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/persistence"
	"github.com/automoto/handbeat/posefeed"
	"github.com/automoto/handbeat/session"
)

// Game is the session control surface the server needs
type Game interface {
	Last() session.Snapshot
	StartSession()
	StopSession()
}

// FeedStats reports the pose feed health
type FeedStats interface {
	Stats() posefeed.Stats
}

// ScoreBoard lists saved results
type ScoreBoard interface {
	Scores() ([]persistence.Record, error)
}

// Server is the telemetry server
type Server struct {
	app    *fiber.App
	game   Game
	feed   FeedStats
	scores ScoreBoard
	hub    *Hub
}

// NewServer builds the routes. feed may be nil.
func NewServer(game Game, feed FeedStats) *Server {
	s := &Server{
		game: game,
		feed: feed,
		hub:  NewHub("state"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "handbeat",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/config", s.handleConfig)
	api.Get("/pose", s.handlePose)
	api.Get("/scores", s.handleScores)
	api.Post("/session/start", s.handleStart)
	api.Post("/session/stop", s.handleStop)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

// SetScores enables the score table endpoint
func (s *Server) SetScores(sb ScoreBoard) {
	s.scores = sb
}

func (s *Server) Hub() *Hub {
	return s.hub
}

// Listen serves on addr until Shutdown
func (s *Server) Listen(addr string) error {
	log.Printf("Telemetry server listening on %s", addr)
	return s.app.Listen(addr)
}

// Serve is Listen on an existing listener
func (s *Server) Serve(ln net.Listener) error {
	log.Printf("Telemetry server listening on %s", ln.Addr())
	return s.app.Listener(ln)
}

// Publish broadcasts a snapshot to websocket clients
func (s *Server) Publish(snap session.Snapshot) {
	if err := s.hub.PublishJSON(snap); err != nil {
		log.Printf("Telemetry: encode snapshot: %v", err)
	}
}

func (s *Server) Shutdown() error {
	s.hub.Close()
	return s.app.Shutdown()
}

func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.game.Last())
}

func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(cfg.Current())
}

func (s *Server) handlePose(c *fiber.Ctx) error {
	if s.feed == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no pose feed"})
	}
	return c.JSON(s.feed.Stats())
}

func (s *Server) handleScores(c *fiber.Ctx) error {
	if s.scores == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no score store"})
	}
	records, err := s.scores.Scores()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if records == nil {
		records = []persistence.Record{}
	}
	return c.JSON(records)
}

func (s *Server) handleStart(c *fiber.Ctx) error {
	s.game.StartSession()
	return c.JSON(s.game.Last())
}

func (s *Server) handleStop(c *fiber.Ctx) error {
	s.game.StopSession()
	return c.JSON(s.game.Last())
}

func (s *Server) handleStateWS(c *websocket.Conn) {
	greeting, err := json.Marshal(s.game.Last())
	if err != nil {
		log.Printf("Telemetry: encode snapshot: %v", err)
		greeting = nil
	}
	s.hub.serve(c, greeting)
}
