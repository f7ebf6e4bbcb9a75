package user

import (
	"github.com/ZJUSCT/resolver/internal/config"
	"github.com/ZJUSCT/resolver/internal/pubsub"
	"github.com/ZJUSCT/resolver/internal/session"
)

// Handler holds all dependencies for the public viewer handlers.
type Handler struct {
	cfg     *config.Config
	session *session.Session
	broker  *pubsub.Broker
}

func NewHandler(cfg *config.Config, s *session.Session, broker *pubsub.Broker) *Handler {
	return &Handler{
		cfg:     cfg,
		session: s,
		broker:  broker,
	}
}
