// Package signal pushes room events to websocket watchers.
package signal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrClosed       = errors.New("connection closed")
)

const sendBuffer = 32

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

type watcher struct {
	conn core.SignalConnection
	// room limits delivery to one room; empty means every room.
	room domain.RoomName
}

// Hub fans room events out to every connected watcher. Slow watchers miss
// events instead of stalling the publisher.
type Hub struct {
	mu       sync.RWMutex
	watchers map[string]*watcher
}

func NewHub() *Hub {
	return &Hub{watchers: make(map[string]*watcher)}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers)
}

func (h *Hub) add(id string, conn core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.watchers[id] = &watcher{conn: conn}
	log.Info().Str("module", "adapters.signal").Str("watcher", id).Msg("watcher added")
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.watchers, id)
	log.Info().Str("module", "adapters.signal").Str("watcher", id).Msg("watcher removed")
}

func (h *Hub) filter(id string, room domain.RoomName) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w, ok := h.watchers[id]; ok {
		w.room = room
	}
}

// Publish implements core.EventSink.
func (h *Hub) Publish(ev core.RoomEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("publish marshal")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, w := range h.watchers {
		if w.room != "" && w.room != ev.Room {
			continue
		}
		if err := w.conn.TrySend(b); err != nil {
			log.Warn().Err(err).Str("module", "adapters.signal").Str("watcher", id).Msg("event dropped")
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWatch upgrades the request and streams events until the client goes
// away or ctx ends.
func (h *Hub) HandleWatch(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("ws upgrade")
		return
	}

	id := uuid.NewString()
	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, sendBuffer),
	}
	h.add(id, conn)

	ctx, cancel := context.WithCancel(ctx)
	go h.writePump(ctx, conn)
	go func() {
		defer cancel()
		defer h.remove(id)
		h.readPump(ctx, id, conn)
	}()
}

var _ core.EventSink = (*Hub)(nil)
