package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/dkeye/FrontDesk/internal/domain"
	"github.com/gin-gonic/gin"
)

func roomParam(c *gin.Context) domain.RoomName { return domain.RoomName(c.Param("room")) }

func nicknameParam(c *gin.Context) domain.Nickname { return domain.Nickname(c.Param("nickname")) }

func slotParam(c *gin.Context) domain.SlotID { return domain.SlotID(c.Param("slot")) }

var jsonNull = []byte("null")

// missing reports whether a descriptor field was absent or null.
func missing(d json.RawMessage) bool {
	return len(d) == 0 || bytes.Equal(d, jsonNull)
}

type mixBody struct {
	Mix json.RawMessage `json:"mix"`
}

type layoutBody struct {
	Layout json.RawMessage `json:"layout"`
}

func (h *handlers) getMix(c *gin.Context) {
	d, _, err := h.rooms.GetMix(roomParam(c), nicknameParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, mixBody{Mix: d})
}

func (h *handlers) setMix(c *gin.Context) {
	var req mixBody
	if !bindJSON(c, &req) {
		return
	}
	if missing(req.Mix) {
		writeError(c, fmt.Errorf("%w: mix is required", core.ErrValidation))
		return
	}
	d, err := h.rooms.SetMix(roomParam(c), nicknameParam(c), req.Mix)
	if err != nil {
		writeError(c, err)
		return
	}
	h.publish(roomParam(c))
	c.JSON(http.StatusOK, mixBody{Mix: d})
}

func (h *handlers) getLayout(c *gin.Context) {
	d, _, err := h.rooms.GetLayout(roomParam(c), nicknameParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, layoutBody{Layout: d})
}

func (h *handlers) setLayout(c *gin.Context) {
	var req layoutBody
	if !bindJSON(c, &req) {
		return
	}
	if missing(req.Layout) {
		writeError(c, fmt.Errorf("%w: layout is required", core.ErrValidation))
		return
	}
	d, err := h.rooms.SetLayout(roomParam(c), nicknameParam(c), req.Layout)
	if err != nil {
		writeError(c, err)
		return
	}
	h.publish(roomParam(c))
	c.JSON(http.StatusOK, layoutBody{Layout: d})
}

func (h *handlers) save(c *gin.Context, save func(domain.RoomName, domain.SlotID) error) {
	if err := save(roomParam(c), slotParam(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *handlers) load(c *gin.Context, load func(domain.RoomName, domain.SlotID) (bool, error)) {
	loaded, err := load(roomParam(c), slotParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if loaded {
		h.publish(roomParam(c))
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "loaded": loaded})
}

func (h *handlers) saveMixSlot(c *gin.Context)    { h.save(c, h.rooms.SaveMixSlot) }
func (h *handlers) loadMixSlot(c *gin.Context)    { h.load(c, h.rooms.LoadMixSlot) }
func (h *handlers) saveLayoutSlot(c *gin.Context) { h.save(c, h.rooms.SaveLayoutSlot) }
func (h *handlers) loadLayoutSlot(c *gin.Context) { h.load(c, h.rooms.LoadLayoutSlot) }

func (h *handlers) getState(c *gin.Context) {
	state, ok := h.rooms.State(roomParam(c))
	if !ok {
		writeError(c, fmt.Errorf("%w: no such room %q", core.ErrNotFound, roomParam(c)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomState": state})
}

type replaceStateRequest struct {
	RoomState domain.RoomState `json:"roomState"`
}

func (h *handlers) replaceState(c *gin.Context) {
	var req replaceStateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.rooms.ReplaceState(roomParam(c), req.RoomState); err != nil {
		writeError(c, err)
		return
	}
	h.publish(roomParam(c))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
