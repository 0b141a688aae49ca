package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/FrontDesk/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// statusOf maps an error class to a status and a client-safe message.
// Transport and signing causes are never echoed back.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, core.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, core.ErrTransport):
		return http.StatusBadGateway, core.ErrTransport.Error()
	case errors.Is(err, core.ErrSigning):
		return http.StatusInternalServerError, core.ErrSigning.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

func writeError(c *gin.Context, err error) {
	status, msg := statusOf(err)
	ev := log.Debug()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Str("module", "adapters.http").Str("path", c.FullPath()).Int("status", status).Msg("request failed")
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
