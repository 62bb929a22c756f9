package web

import (
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/handbeat/persistence"
	"github.com/automoto/handbeat/posefeed"
	"github.com/automoto/handbeat/session"
)

type fakeGame struct {
	mu     sync.Mutex
	snap   session.Snapshot
	starts int
	stops  int
}

func (g *fakeGame) Last() session.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snap
}

func (g *fakeGame) StartSession() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.starts++
	g.snap.Running = true
	g.snap.SessionID = "abc"
}

func (g *fakeGame) StopSession() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stops++
	g.snap.Running = false
}

type fakeFeed struct{}

func (fakeFeed) Stats() posefeed.Stats { return posefeed.Stats{Frames: 7, Connected: true} }

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}

func TestStateEndpoint(t *testing.T) {
	game := &fakeGame{snap: session.Snapshot{Score: 40, Health: 80, MaxHealth: 100}}
	s := NewServer(game, nil)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/state", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	snap := decode[session.Snapshot](t, resp.Body)
	assert.Equal(t, 40, snap.Score)
	assert.Equal(t, 80, snap.Health)
}

func TestSessionControl(t *testing.T) {
	game := &fakeGame{}
	s := NewServer(game, nil)

	resp, err := s.App().Test(httptest.NewRequest("POST", "/api/session/start", nil))
	require.NoError(t, err)
	snap := decode[session.Snapshot](t, resp.Body)
	assert.True(t, snap.Running)
	assert.Equal(t, "abc", snap.SessionID)

	resp, err = s.App().Test(httptest.NewRequest("POST", "/api/session/stop", nil))
	require.NoError(t, err)
	snap = decode[session.Snapshot](t, resp.Body)
	assert.False(t, snap.Running)
	assert.Equal(t, 1, game.starts)
	assert.Equal(t, 1, game.stops)
}

func TestPoseEndpoint(t *testing.T) {
	resp, err := NewServer(&fakeGame{}, nil).App().Test(httptest.NewRequest("GET", "/api/pose", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = NewServer(&fakeGame{}, fakeFeed{}).App().Test(httptest.NewRequest("GET", "/api/pose", nil))
	require.NoError(t, err)
	stats := decode[posefeed.Stats](t, resp.Body)
	assert.Equal(t, uint64(7), stats.Frames)
	assert.True(t, stats.Connected)
}

type fakeScores []persistence.Record

func (f fakeScores) Scores() ([]persistence.Record, error) { return f, nil }

func TestScoresEndpoint(t *testing.T) {
	s := NewServer(&fakeGame{}, nil)
	resp, err := s.App().Test(httptest.NewRequest("GET", "/api/scores", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	s.SetScores(fakeScores{{SessionID: "x", Score: 90}, {SessionID: "y", Score: 10}})
	resp, err = s.App().Test(httptest.NewRequest("GET", "/api/scores", nil))
	require.NoError(t, err)
	records := decode[[]persistence.Record](t, resp.Body)
	require.Len(t, records, 2)
	assert.Equal(t, 90, records[0].Score)
}

func TestConfigEndpoint(t *testing.T) {
	resp, err := NewServer(&fakeGame{}, nil).App().Test(httptest.NewRequest("GET", "/api/config", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode[map[string]json.RawMessage](t, resp.Body)
	assert.Contains(t, body, "Gesture")
	assert.Contains(t, body, "Combat")
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	resp, err := NewServer(&fakeGame{}, nil).App().Test(httptest.NewRequest("GET", "/ws/state", nil))
	require.NoError(t, err)
	assert.Equal(t, 426, resp.StatusCode)
}

func TestWebsocketStreamsSnapshots(t *testing.T) {
	game := &fakeGame{snap: session.Snapshot{Score: 1}}
	s := NewServer(game, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go s.Serve(ln)
	defer s.Shutdown()

	ws, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/state", nil)
	require.NoError(t, err)
	defer ws.Close()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))

	var greeting session.Snapshot
	require.NoError(t, ws.ReadJSON(&greeting))
	assert.Equal(t, 1, greeting.Score)
	assert.Equal(t, 1, s.Hub().ViewerCount())

	s.Publish(session.Snapshot{Score: 2, Kills: 1})
	var next session.Snapshot
	require.NoError(t, ws.ReadJSON(&next))
	assert.Equal(t, 2, next.Score)
	assert.Equal(t, 1, next.Kills)

	ws.Close()
	require.Eventually(t, func() bool { return s.Hub().ViewerCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
