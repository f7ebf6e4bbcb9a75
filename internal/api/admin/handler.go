package admin

import (
	"github.com/ZJUSCT/resolver/internal/config"
	"github.com/ZJUSCT/resolver/internal/session"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the presenter API handlers.
type Handler struct {
	cfg     *config.Config
	db      *gorm.DB
	session *session.Session
}

// NewHandler creates a new admin handler with its dependencies. db may be
// nil when no audit log is kept.
func NewHandler(cfg *config.Config, db *gorm.DB, s *session.Session) *Handler {
	return &Handler{
		cfg:     cfg,
		db:      db,
		session: s,
	}
}
