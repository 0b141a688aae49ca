package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

func (h *Hub) writePump(ctx context.Context, c *WsSignalConn) {
	for {
		select {
		case <-ctx.Done():
			c.Close()
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "adapters.signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "adapters.signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (h *Hub) readPump(ctx context.Context, id string, c *WsSignalConn) {
	defer c.Close()

	for {
		if ctx.Err() != nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Str("module", "adapters.signal").Str("watcher", id).Msg("readPump read error")
			return
		}
		h.handleControl(id, c, data)
	}
}

func (h *Hub) handleControl(id string, c *WsSignalConn, data []byte) {
	var env struct {
		Type string `json:"type"`
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "adapters.signal").Msg("bad json")
		sendJSON(c, map[string]any{"type": "error", "error": "bad_payload"})
		return
	}

	switch env.Type {
	case "ping":
		sendJSON(c, map[string]any{"type": "pong"})
	case "watch":
		h.filter(id, domain.RoomName(env.Room))
		sendJSON(c, map[string]any{"type": "watching", "room": env.Room})
	default:
		log.Warn().Str("module", "adapters.signal").Str("type", env.Type).Msg("unknown control message")
	}
}

func sendJSON(c *WsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
