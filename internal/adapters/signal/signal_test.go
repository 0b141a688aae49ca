package signal

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []string
	err    error
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.frames = append(f.frames, string(fr))
	return nil
}

func (f *fakeConn) Close() {}

func TestHubPublishFilters(t *testing.T) {
	h := NewHub()
	all, only := &fakeConn{}, &fakeConn{}
	h.add("all", all)
	h.add("only", only)
	h.filter("only", "r2")
	h.add("full", &fakeConn{err: ErrBackpressure})

	h.Publish(core.RoomEvent{Type: core.RoomCreated, Room: "r1"})
	h.Publish(core.RoomEvent{Type: core.RoomUpdated, Room: "r2"})

	require.Len(t, all.frames, 2)
	assert.JSONEq(t, `{"type":"room_created","room":"r1"}`, all.frames[0])
	require.Len(t, only.frames, 1)
	assert.JSONEq(t, `{"type":"room_updated","room":"r2"}`, only.frames[0])

	h.remove("all")
	assert.Equal(t, 2, h.Len())
}

func TestWsSignalConnClosed(t *testing.T) {
	c := &WsSignalConn{send: make(chan core.Frame, 1)}
	require.NoError(t, c.TrySend([]byte("a")))
	assert.ErrorIs(t, c.TrySend([]byte("b")), ErrBackpressure)

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	assert.ErrorIs(t, c.TrySend([]byte("c")), ErrClosed)
}

func TestHandleWatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	r := gin.New()
	r.GET("/watch", func(c *gin.Context) { h.HandleWatch(ctx, c) })
	srv := httptest.NewServer(r)
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/watch", nil)
	require.NoError(t, err)
	defer ws.Close()
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 10*time.Millisecond)

	read := func() map[string]any {
		t.Helper()
		require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg map[string]any
		require.NoError(t, ws.ReadJSON(&msg))
		return msg
	}

	require.NoError(t, ws.WriteJSON(map[string]string{"type": "ping"}))
	assert.Equal(t, "pong", read()["type"])

	require.NoError(t, ws.WriteJSON(map[string]string{"type": "watch", "room": "r1"}))
	assert.Equal(t, "watching", read()["type"])

	h.Publish(core.RoomEvent{Type: core.RoomUpdated, Room: "r2"})
	h.Publish(core.RoomEvent{Type: core.RoomUpdated, Room: "r1"})
	msg := read()
	assert.Equal(t, "room_updated", msg["type"])
	assert.Equal(t, "r1", msg["room"])

	require.NoError(t, ws.Close())
	require.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, 10*time.Millisecond)
}
