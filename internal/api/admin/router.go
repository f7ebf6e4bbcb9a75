package admin

import (
	"github.com/ZJUSCT/resolver/internal/api"
	"github.com/ZJUSCT/resolver/internal/config"
	"github.com/ZJUSCT/resolver/internal/embedui"
	"github.com/ZJUSCT/resolver/internal/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewAdminRouter creates the presenter console engine.
func NewAdminRouter(cfg *config.Config, db *gorm.DB, s *session.Session) *gin.Engine {
	r := gin.Default()

	r.Use(api.CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, db, s)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", h.login)

		authed := v1.Group("/")
		authed.Use(api.AuthMiddleware(cfg.Auth.JWT.Secret))
		{
			authed.GET("/state", h.getState)
			authed.GET("/problems", h.getProblems)
			authed.POST("/step", h.step)
			authed.POST("/rollback", h.rollback)
			authed.POST("/reload", h.reload)

			authed.GET("/standings/:view", h.getStandings)
			authed.GET("/export", h.export)
			authed.GET("/events", h.getEvents)
		}
	}

	embedui.RegisterUIHandlers(r, "admin")

	return r
}
