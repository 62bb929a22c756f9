package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/persistence"
	"github.com/automoto/handbeat/posefeed"
	"github.com/automoto/handbeat/session"
	"github.com/automoto/handbeat/web"
)

func main() {
	configPath := flag.String("config", "", "TOML tuning file (empty = built-in defaults)")
	poseURL := flag.String("pose", "", "Pose tracker websocket URL (empty = config value, \"off\" = no tracker)")
	track := flag.String("track", "", "WAV file to play and detect beats in")
	listen := flag.String("listen", "", "Telemetry server address (empty = config value, \"off\" = disabled)")
	mode := flag.String("mode", "", "Gesture mode: one_hand or two_hand")
	combat := flag.String("combat", "", "Combat mode: hitscan or projectile")
	seed := flag.Uint64("seed", 0, "Spawn RNG seed (0 = config value)")
	window := flag.Bool("window", false, "Open the debug window")
	autostart := flag.Bool("autostart", true, "Start a session immediately")
	flag.Parse()

	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	applyFlags(*poseURL, *listen, *mode, *combat, *seed)

	sess, err := session.New(session.DefaultOptions())
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	out, err := newAudioOut(*track)
	if err != nil {
		log.Fatalf("Failed to open audio: %v", err)
	}
	defer out.Close()

	var feed *posefeed.Feed
	var pose session.PoseSource
	if cfg.Pose.URL != "off" {
		feed = posefeed.New(cfg.Pose)
		pose = feed
	}

	var audio session.AudioSource
	if out.transport != nil {
		audio = out.transport
	}
	loop := session.NewLoop(sess, pose, audio, cfg.Session.TickRate)
	loop.OnSFX(out.Play)
	ctrl := &controller{loop: loop, transport: out.transport}
	if store, err := persistence.Open("handbeat"); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	} else {
		ctrl.scores = store
	}
	sess.OnFinish(ctrl.finished)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if feed != nil {
		go func() {
			if err := feed.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("Pose feed error: %v", err)
			}
		}()
	}

	var server *web.Server
	if cfg.Web.Listen != "off" && cfg.Web.Listen != "" {
		var stats web.FeedStats
		if feed != nil {
			stats = feed
		}
		server = web.NewServer(ctrl, stats)
		if ctrl.scores != nil {
			server.SetScores(ctrl.scores)
		}
		loop.OnSnapshot(cfg.Session.SnapshotEvery, server.Publish)
		go func() {
			if err := server.Listen(cfg.Web.Listen); err != nil {
				log.Printf("Telemetry server error: %v", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		cancel()
		loop.Stop()
		if server != nil {
			server.Shutdown()
		}
		if *window {
			os.Exit(0)
		}
	}()

	if *autostart {
		ctrl.StartSession()
	}

	if *window {
		if err := runWindow(loop, ctrl); err != nil {
			log.Fatalf("Window error: %v", err)
		}
		return
	}

	log.Printf("Starting handbeat (mode: %s, combat: %s, tick rate: %d/s)",
		cfg.Gesture.Mode, cfg.Combat.Mode, cfg.Session.TickRate)
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Loop error: %v", err)
	}
}

// applyFlags overlays command line overrides and validates the result
func applyFlags(poseURL, listen, mode, combat string, seed uint64) {
	f := cfg.Current()
	if poseURL != "" {
		f.Pose.URL = poseURL
	}
	if listen != "" {
		f.Web.Listen = listen
	}
	if mode != "" {
		f.Gesture.Mode = mode
	}
	if combat != "" {
		f.Combat.Mode = combat
	}
	if seed != 0 {
		f.Session.Seed = seed
	}
	if err := cfg.Apply(f); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}
}
