package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer(t *testing.T, h *Hub) *viewer {
	t.Helper()
	v := &viewer{frames: make(chan []byte, 1)}
	require.True(t, h.join(v))
	return v
}

func TestSlowViewerGetsNewestSnapshot(t *testing.T) {
	h := NewHub("test")
	v := newTestViewer(t, h)

	h.Publish([]byte("1"))
	h.Publish([]byte("2"))
	h.Publish([]byte("3"))

	assert.Equal(t, "3", string(<-v.frames))
	assert.Empty(t, v.frames)
	assert.Equal(t, 1, h.ViewerCount())
}

func TestPublishReachesEveryViewer(t *testing.T) {
	h := NewHub("test")
	a, b := newTestViewer(t, h), newTestViewer(t, h)

	require.NoError(t, h.PublishJSON(map[string]int{"score": 5}))

	assert.JSONEq(t, `{"score":5}`, string(<-a.frames))
	assert.JSONEq(t, `{"score":5}`, string(<-b.frames))
}

func TestCloseDisconnectsViewers(t *testing.T) {
	h := NewHub("test")
	v := newTestViewer(t, h)

	h.Close()
	h.Close()

	_, open := <-v.frames
	assert.False(t, open)
	assert.Zero(t, h.ViewerCount())
	assert.False(t, h.join(&viewer{frames: make(chan []byte, 1)}))

	// Leaving after close must not close the channel twice
	assert.NotPanics(t, func() { h.leave(v) })
}
