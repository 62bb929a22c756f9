// Package posefeed receives hand landmarks from an external pose tracker
// over a websocket and keeps the most recent frame for the session loop.
package posefeed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	cfg "github.com/automoto/handbeat/config"
	"github.com/automoto/handbeat/gesture"
	"github.com/automoto/handbeat/shared/messages"
)

// Feed holds the latest hands received from the tracker
type Feed struct {
	cfg    cfg.PoseConfig
	dialer websocket.Dialer
	clock  func() time.Time

	mu       sync.RWMutex
	latest   []gesture.HandFrame
	received time.Time
	frames   uint64
	errors   uint64

	connMu sync.Mutex
	conn   *websocket.Conn
}

// Stats counts what the feed has seen
type Stats struct {
	Frames    uint64    `json:"frames"`
	Errors    uint64    `json:"errors"`
	LastFrame time.Time `json:"lastFrame"`
	Connected bool      `json:"connected"`
}

func New(c cfg.PoseConfig) *Feed {
	return &Feed{
		cfg:    c,
		dialer: websocket.Dialer{HandshakeTimeout: c.HandshakeTimeout},
		clock:  time.Now,
	}
}

// Latest returns a copy of the most recent hands, or nil once they are
// older than StaleAfter.
func (f *Feed) Latest() []gesture.HandFrame {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.latest) == 0 {
		return nil
	}
	if f.cfg.StaleAfter > 0 && f.clock().Sub(f.received) > f.cfg.StaleAfter {
		return nil
	}
	out := make([]gesture.HandFrame, len(f.latest))
	copy(out, f.latest)
	return out
}

// Push stores a frame as if it had arrived over the socket
func (f *Feed) Push(msg messages.PoseFrame) {
	f.store(Convert(msg))
}

func (f *Feed) store(hands []gesture.HandFrame) {
	f.mu.Lock()
	f.latest = hands
	f.received = f.clock()
	f.frames++
	f.mu.Unlock()
}

func (f *Feed) Stats() Stats {
	f.mu.RLock()
	s := Stats{Frames: f.frames, Errors: f.errors, LastFrame: f.received}
	f.mu.RUnlock()
	f.connMu.Lock()
	s.Connected = f.conn != nil
	f.connMu.Unlock()
	return s
}

// Connect dials the tracker
func (f *Feed) Connect(ctx context.Context) error {
	conn, _, err := f.dialer.DialContext(ctx, f.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("pose feed connect %s: %w", f.cfg.URL, err)
	}
	if f.cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(f.cfg.MaxMessageSize)
	}
	f.connMu.Lock()
	f.conn = conn
	f.connMu.Unlock()
	log.Printf("Pose feed connected to %s", f.cfg.URL)
	return nil
}

// Run reads frames until ctx is done, reconnecting after ReconnectDelay
// whenever the connection drops.
func (f *Feed) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		f.Close()
	}()

	for {
		if f.connection() == nil {
			if err := f.Connect(ctx); err != nil {
				log.Printf("Pose feed: %v", err)
				if !f.wait(ctx) {
					return ctx.Err()
				}
				continue
			}
		}

		err := f.readLoop()
		f.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("Pose feed disconnected: %v", err)
		if !f.wait(ctx) {
			return ctx.Err()
		}
	}
}

func (f *Feed) wait(ctx context.Context) bool {
	t := time.NewTimer(f.cfg.ReconnectDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (f *Feed) readLoop() error {
	conn := f.connection()
	if conn == nil {
		return errors.New("not connected")
	}
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
			continue
		}
		hands, err := Decode(data)
		if err != nil {
			f.mu.Lock()
			f.errors++
			f.mu.Unlock()
			log.Printf("Pose feed: %v", err)
			continue
		}
		f.store(hands)
	}
}

func (f *Feed) connection() *websocket.Conn {
	f.connMu.Lock()
	defer f.connMu.Unlock()
	return f.conn
}

// Close drops the current connection, if any
func (f *Feed) Close() error {
	f.connMu.Lock()
	conn := f.conn
	f.conn = nil
	f.connMu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}
