package user

import (
	"github.com/ZJUSCT/resolver/internal/api"
	"github.com/ZJUSCT/resolver/internal/config"
	"github.com/ZJUSCT/resolver/internal/embedui"
	"github.com/ZJUSCT/resolver/internal/pubsub"
	"github.com/ZJUSCT/resolver/internal/session"
	"github.com/gin-gonic/gin"
)

// NewUserRouter creates the read-only viewer engine shown on the big screen.
func NewUserRouter(cfg *config.Config, s *session.Session, broker *pubsub.Broker) *gin.Engine {
	r := gin.Default()

	r.Use(api.CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, s, broker)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/state", h.getState)
		v1.GET("/problems", h.getProblems)
		v1.GET("/ws/state", h.handleStateWs)
	}

	embedui.RegisterUIHandlers(r, "viewer")

	return r
}
