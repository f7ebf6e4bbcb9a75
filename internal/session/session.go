package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZJUSCT/resolver/internal/config"
	"github.com/ZJUSCT/resolver/internal/database"
	"github.com/ZJUSCT/resolver/internal/database/models"
	"github.com/ZJUSCT/resolver/internal/exporter"
	"github.com/ZJUSCT/resolver/internal/loader"
	"github.com/ZJUSCT/resolver/internal/pubsub"
	"github.com/ZJUSCT/resolver/internal/resolver"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StreamView = "view"

	actionRollback = "rollback"
	actionReload   = "reload"
)

// Session is the one running ceremony of a server. Its methods may be
// called from concurrent handlers.
type Session struct {
	mu     sync.Mutex
	id     string
	cfg    *config.Config
	db     *gorm.DB
	src    *loader.Source
	broker *pubsub.Broker
	res    *resolver.Resolver
	seq    int
}

// New loads the configured contest and publishes its initial view. db may
// be nil, in which case no audit log is written.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, src *loader.Source, broker *pubsub.Broker) (*Session, error) {
	res, err := LoadResolver(ctx, cfg, db, src)
	if err != nil {
		return nil, err
	}
	return NewWithResolver(cfg, db, src, broker, res), nil
}

func NewWithResolver(cfg *config.Config, db *gorm.DB, src *loader.Source, broker *pubsub.Broker, res *resolver.Resolver) *Session {
	s := &Session{
		id:     uuid.NewString(),
		cfg:    cfg,
		db:     db,
		src:    src,
		broker: broker,
		res:    res,
	}
	s.record(string(resolver.ActionStart), res.State())
	s.publish()
	zap.S().Infof("session %s started with %d rows", s.id, len(res.State().Users))
	return s
}

func (s *Session) ID() string { return s.id }

// Topic is the pubsub topic carrying the session's views.
func (s *Session) Topic() string { return "resolver:" + s.id }

func (s *Session) View() resolver.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res.View()
}

func (s *Session) Problems() []resolver.Problem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res.Index().Problems()
}

// Final returns the standings with every submission revealed.
func (s *Session) Final() []resolver.UserRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res.Final()
}

const (
	ViewFrozen  = "frozen"
	ViewCurrent = "current"
	ViewFinal   = "final"
)

// Standings returns the frozen, current or final scoreboard.
func (s *Session) Standings(view string) (exporter.Standings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StandingsOf(s.res, view)
}

func StandingsOf(res *resolver.Resolver, view string) (exporter.Standings, error) {
	var rows []resolver.UserRow
	switch view {
	case ViewFrozen:
		rows = res.Frozen()
	case ViewCurrent, "":
		rows = res.Rows()
	case ViewFinal:
		rows = res.Final()
	default:
		return exporter.Standings{}, fmt.Errorf("unknown standings view %q", view)
	}
	return exporter.Standings{Problems: res.Index().Problems(), Rows: rows}, nil
}

// Step advances the ceremony. A non-nil choice selects the pending
// submission of the marked user; an invalid one returns
// resolver.ErrInvalidStepChoice and leaves the state as it was.
func (s *Session) Step(choice *int) (resolver.View, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.res.Steps()
	var cont bool
	var err error
	if choice == nil {
		cont = s.res.Step()
	} else {
		cont, err = s.res.StepChoice(*choice)
	}

	if s.res.Steps() != before {
		state := s.res.State()
		s.record(string(state.Action), state)
		s.publish()
		zap.S().Debugf("session %s step %d: %s", s.id, s.res.Steps(), state.Action)
	}
	return s.res.View(), cont, err
}

// Rollback undoes the last transition. It reports false when the ceremony
// is back at its start.
func (s *Session) Rollback() (resolver.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.res.Rollback() {
		return s.res.View(), false
	}
	s.record(actionRollback, s.res.State())
	s.publish()
	zap.S().Debugf("session %s rolled back to step %d", s.id, s.res.Steps())
	return s.res.View(), true
}

// Reload rebuilds the ceremony from the configured contest. On failure the
// running ceremony is kept.
func (s *Session) Reload(ctx context.Context) (resolver.View, error) {
	res, err := LoadResolver(ctx, s.cfg, s.db, s.src)
	if err != nil {
		return resolver.View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.res = res
	s.record(actionReload, res.State())
	s.publish()
	zap.S().Infof("session %s reloaded", s.id)
	return s.res.View(), nil
}

// publish must be called with s.mu held.
func (s *Session) publish() {
	if s.broker == nil {
		return
	}
	s.broker.Publish(s.Topic(), pubsub.FormatMessage(StreamView, s.res.View()))
}

// record appends an audit event. Failures are logged only.
func (s *Session) record(action string, state *resolver.State) {
	if s.db == nil {
		return
	}
	event := models.RevealEvent{
		SessionID:    s.id,
		Seq:          s.seq,
		Action:       action,
		UserID:       state.MarkedUserID,
		ProblemID:    state.MarkedProblemID,
		SubmissionID: state.NextSubmissionID,
	}
	s.seq++
	if err := database.CreateRevealEvent(s.db, &event); err != nil {
		zap.S().Errorf("failed to record reveal event for session %s: %v", s.id, err)
	}
}
