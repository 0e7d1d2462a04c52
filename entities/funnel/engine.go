// Package funnel is the funnel analytics engine: it reads prospect, stage,
// call, proposal and contract records from the relational store and turns them
// into conversion metrics, source performance, bottleneck diagnostics and
// revenue attribution.
package funnel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrConnection is returned by NewEngine when the store cannot be reached.
	ErrConnection = errors.New("funnel store unreachable")
	// ErrQuery wraps every failed analytic query.
	ErrQuery = errors.New("funnel query failed")
)

const ENGINE_PING_TIMEOUT = 5 * time.Second

type Engine struct {
	repo   *Repository
	logger zerolog.Logger
	now    func() time.Time
	models *ModelRegistry

	listeners []TrackListener
}

type Option func(*Engine)

// WithClock overrides the clock used for open stage visits and report stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithModels(models *ModelRegistry) Option {
	return func(e *Engine) { e.models = models }
}

func NewEngine(ctx context.Context, db *sql.DB, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: no database handle", ErrConnection)
	}

	pingCtx, cancel := context.WithTimeout(ctx, ENGINE_PING_TIMEOUT)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error().Err(err).Msg("funnel store connection failed")
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	e := &Engine{
		repo:   NewRepository(db),
		logger: logger.With().Str("component", "funnel_engine").Logger(),
		now:    time.Now,
		models: DefaultModelRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger.Info().Msg("funnel analytics engine ready")
	return e, nil
}

func (e *Engine) queryFailed(op string, err error) error {
	wrapped := fmt.Errorf("%w: %s: %v", ErrQuery, op, err)
	e.logger.Error().Err(err).Str("op", op).Msg("analytic query failed, returning empty result")
	return wrapped
}
