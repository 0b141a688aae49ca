package http

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"net/http"

	"github.com/dkeye/FrontDesk/internal/adapters/signal"
	"github.com/dkeye/FrontDesk/internal/app/broker"
	"github.com/dkeye/FrontDesk/internal/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	sessionName      = "FrontDeskSessions"
	identityKey      = "identity"
	adminTokenHeader = "X-Admin-Token"
)

// AdminGuard protects debug endpoints. With no token configured the
// endpoints are hidden entirely.
func AdminGuard(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(c.GetHeader(adminTokenHeader)), []byte(token)) != 1 {
			log.Warn().Str("module", "adapters.http").Str("path", c.FullPath()).Msg("admin token rejected")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func sessionSecret(cfg *config.Config) []byte {
	if cfg.Secret != "" {
		return []byte(cfg.Secret)
	}
	log.Warn().Str("module", "adapters.http").Msg("no session secret configured, sessions won't survive a restart")
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return b
}

func SetupRouter(ctx context.Context, cfg *config.Config, b *broker.Broker, hub *signal.Hub) *gin.Engine {
	switch cfg.Mode {
	case gin.ReleaseMode, gin.DebugMode, gin.TestMode:
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	if cfg.Mode == gin.DebugMode {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(sessions.Sessions(sessionName, cookie.NewStore(sessionSecret(cfg))))

	h := &handlers{broker: b, rooms: b.Registry, events: b.Events}

	r.POST("/session/new", h.newSession)
	r.GET("/generate-room-name", h.generateRoomName)
	r.GET("/inspect-rooms", AdminGuard(cfg.AdminToken), h.inspectRooms)
	r.GET("/watch", func(c *gin.Context) {
		hub.HandleWatch(ctx, c)
	})

	rooms := r.Group("/rooms")
	rooms.GET("", h.listRooms)
	rooms.POST("", h.createRoom)

	room := rooms.Group("/:room")
	room.POST("/join/:role", h.joinRoom)
	room.POST("/participants/:identity/nickname", h.setNickname)

	room.GET("/nicknames/:nickname/mix", h.getMix)
	room.POST("/nicknames/:nickname/mix", h.setMix)
	room.GET("/nicknames/:nickname/layout", h.getLayout)
	room.POST("/nicknames/:nickname/layout", h.setLayout)

	room.POST("/mix/save/:slot", h.saveMixSlot)
	room.POST("/mix/load/:slot", h.loadMixSlot)
	room.POST("/layout/save/:slot", h.saveLayoutSlot)
	room.POST("/layout/load/:slot", h.loadLayoutSlot)

	room.GET("/state", h.getState)
	room.POST("/state", h.replaceState)

	log.Info().Str("module", "adapters.http").Str("mode", cfg.Mode).Msg("router setup")
	return r
}
