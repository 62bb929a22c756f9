package web

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // Must be less than pongWait
	maxMessageSize = 4 * 1024
)

// Hub fans snapshots out to websocket viewers. Every snapshot supersedes
// the previous one, so each viewer holds at most one pending frame: a
// viewer that falls behind skips to the newest snapshot instead of
// queueing stale ones.
type Hub struct {
	name string

	mu      sync.Mutex
	viewers map[*viewer]struct{}
	closed  bool
}

func NewHub(name string) *Hub {
	return &Hub{
		name:    name,
		viewers: make(map[*viewer]struct{}),
	}
}

// Publish hands data to every viewer. It never blocks.
func (h *Hub) Publish(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		v.offer(data)
	}
}

func (h *Hub) PublishJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Publish(data)
	return nil
}

func (h *Hub) ViewerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Close disconnects every viewer and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for v := range h.viewers {
		delete(h.viewers, v)
		close(v.frames)
	}
}

func (h *Hub) join(v *viewer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.viewers[v] = struct{}{}
	log.Printf("[%s] Viewer connected (%d total)", h.name, len(h.viewers))
	return true
}

func (h *Hub) leave(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.viewers[v]; !ok {
		return
	}
	delete(h.viewers, v)
	close(v.frames)
	log.Printf("[%s] Viewer disconnected (%d remaining)", h.name, len(h.viewers))
}

// viewer is one websocket connection. Only writeLoop writes to conn.
type viewer struct {
	conn   *websocket.Conn
	frames chan []byte // Holds the newest unsent snapshot
}

// offer replaces any pending frame with data. Callers hold the hub lock,
// which makes the hub the only sender.
func (v *viewer) offer(data []byte) {
	select {
	case v.frames <- data:
		return
	default:
	}
	select {
	case <-v.frames:
	default:
	}
	select {
	case v.frames <- data:
	default:
	}
}

// serve streams snapshots to conn, starting with greeting, and blocks
// until the connection or the hub closes.
func (h *Hub) serve(conn *websocket.Conn, greeting []byte) {
	v := &viewer{conn: conn, frames: make(chan []byte, 1)}
	if greeting != nil {
		v.frames <- greeting
	}
	if !h.join(v) {
		conn.Close()
		return
	}
	done := make(chan struct{})
	go func() {
		v.writeLoop()
		close(done)
	}()
	v.readLoop()
	h.leave(v)
	<-done
}

// readLoop only watches for disconnects and pongs; viewers send nothing
func (v *viewer) readLoop() {
	v.conn.SetReadLimit(maxMessageSize)
	v.conn.SetReadDeadline(time.Now().Add(pongWait))
	v.conn.SetPongHandler(func(string) error {
		return v.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (v *viewer) writeLoop() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		v.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-v.frames:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				v.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ping.C:
			v.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
