// Package report is the HTTP surface over the funnel engine and the insights
// generator.
package report

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"funnel-analytics/schemas"
	"funnel-analytics/utils"
)

// Engine is the part of the funnel engine the handlers call.
type Engine interface {
	CalculateConversionRates(ctx context.Context, rng schemas.DateRange, sourceID *int64) schemas.Result[schemas.ConversionMetrics]
	GetLeadSourcePerformance(ctx context.Context, rng schemas.DateRange) schemas.Result[[]schemas.SourcePerformance]
	IdentifyBottlenecks(ctx context.Context, rng schemas.DateRange) schemas.Result[[]schemas.BottleneckAnalysis]
	CalculateRevenueAttribution(ctx context.Context, rng schemas.DateRange, model string) schemas.Result[schemas.RevenueAttribution]
	GetWeeklyTrends(ctx context.Context, rng schemas.DateRange) schemas.Result[[]schemas.WeeklyTrend]
	GenerateComprehensiveInsights(ctx context.Context, rng schemas.DateRange) schemas.Result[schemas.EngineInsights]
	TrackLeadSource(ctx context.Context, email, sourceName string, meta schemas.AttributionMetadata) schemas.Result[bool]
}

type InsightsGenerator interface {
	Generate(ctx context.Context, rng schemas.DateRange) schemas.Result[schemas.InsightBundle]
}

type SnapshotStore interface {
	ListSnapshots(ctx context.Context, limit int) ([]schemas.InsightSnapshot, error)
}

type Handlers struct {
	engine    Engine
	insights  InsightsGenerator
	snapshots SnapshotStore
	cache     Cache
	logger    zerolog.Logger
	now       func() time.Time
}

type Option func(*Handlers)

func WithCache(cache Cache) Option {
	return func(h *Handlers) { h.cache = cache }
}

func WithSnapshots(store SnapshotStore) Option {
	return func(h *Handlers) { h.snapshots = store }
}

func WithClock(now func() time.Time) Option {
	return func(h *Handlers) { h.now = now }
}

func NewHandlers(engine Engine, insights InsightsGenerator, logger zerolog.Logger, opts ...Option) *Handlers {
	h := &Handlers{
		engine:   engine,
		insights: insights,
		cache:    noCache{},
		logger:   logger.With().Str("component", "report_handlers").Logger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts every route on mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /v1/reports", h.GetByQuery)
	mux.HandleFunc("GET /v1/insights", h.GetInsights)
	mux.HandleFunc("GET /v1/insights/snapshots", h.GetSnapshots)
	mux.HandleFunc("POST /v1/lead-sources/track", h.TrackLeadSource)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	utils.SendResponse(w, http.StatusOK, "ok", nil, utils.NO_INTERNAL_ERROR)
}
