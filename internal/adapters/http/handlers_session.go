package http

import (
	"fmt"
	"net/http"

	"github.com/dkeye/FrontDesk/internal/app"
	"github.com/dkeye/FrontDesk/internal/app/broker"
	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type handlers struct {
	broker *broker.Broker
	rooms  *app.Registry
	events core.EventSink
}

func (h *handlers) publish(room domain.RoomName) {
	if h.events != nil {
		h.events.Publish(core.RoomEvent{Type: core.RoomUpdated, Room: room})
	}
}

// identity prefers the one in the request body and falls back to the one
// handed out by /session/new.
func identity(c *gin.Context, given string) domain.Identity {
	if given != "" {
		return domain.Identity(given)
	}
	if v, ok := sessions.Default(c).Get(identityKey).(string); ok {
		return domain.Identity(v)
	}
	return ""
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, fmt.Errorf("%w: %s", core.ErrValidation, err.Error()))
		return false
	}
	return true
}

func (h *handlers) newSession(c *gin.Context) {
	id := h.broker.NewIdentity()
	s := sessions.Default(c)
	s.Set(identityKey, string(id))
	if err := s.Save(); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("session save")
	}
	c.JSON(http.StatusOK, gin.H{"identity": id})
}

func (h *handlers) generateRoomName(c *gin.Context) {
	name, err := h.broker.SuggestRoomName(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name})
}

type createRoomRequest struct {
	Room     string `json:"room" binding:"required"`
	Passcode string `json:"passcode" binding:"required"`
	Identity string `json:"identity"`
}

func (h *handlers) createRoom(c *gin.Context) {
	var req createRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	cred, err := h.broker.CreateRoom(c.Request.Context(), domain.RoomName(req.Room), req.Passcode, identity(c, req.Identity))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cred)
}

type joinRoomRequest struct {
	Passcode string `json:"passcode"`
	Identity string `json:"identity"`
}

func (h *handlers) joinRoom(c *gin.Context) {
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		writeError(c, fmt.Errorf("%w: %w", core.ErrValidation, err))
		return
	}
	var req joinRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	cred, err := h.broker.JoinRoom(c.Request.Context(), role, domain.RoomName(c.Param("room")), req.Passcode, identity(c, req.Identity))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cred)
}

type setNicknameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

func (h *handlers) setNickname(c *gin.Context) {
	var req setNicknameRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.broker.SetNickname(c.Request.Context(),
		domain.RoomName(c.Param("room")),
		domain.Identity(c.Param("identity")),
		domain.Nickname(req.Nickname))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *handlers) listRooms(c *gin.Context) {
	rosters, err := h.broker.ListRooms(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rosters})
}

func (h *handlers) inspectRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.rooms.Snapshot()})
}
