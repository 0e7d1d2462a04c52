// Package insights turns the funnel engine's analyzer outputs into
// prioritized strategic insights, benchmarks, forecasts and an action plan.
package insights

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"funnel-analytics/schemas"
)

// Analyzer is the part of the funnel engine the generator reads from.
type Analyzer interface {
	CalculateConversionRates(ctx context.Context, rng schemas.DateRange, sourceID *int64) schemas.Result[schemas.ConversionMetrics]
	GetLeadSourcePerformance(ctx context.Context, rng schemas.DateRange) schemas.Result[[]schemas.SourcePerformance]
	IdentifyBottlenecks(ctx context.Context, rng schemas.DateRange) schemas.Result[[]schemas.BottleneckAnalysis]
	CalculateRevenueAttribution(ctx context.Context, rng schemas.DateRange, model string) schemas.Result[schemas.RevenueAttribution]
}

// BundleListener is notified of every bundle built from complete inputs.
type BundleListener interface {
	InsightsGenerated(ctx context.Context, bundle schemas.InsightBundle)
}

type Generator struct {
	analyzer  Analyzer
	logger    zerolog.Logger
	rules     []Rule
	now       func() time.Time
	listeners []BundleListener
}

type Option func(*Generator)

func WithRules(rules []Rule) Option {
	return func(g *Generator) { g.rules = rules }
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithBundleListeners(listeners ...BundleListener) Option {
	return func(g *Generator) { g.listeners = append(g.listeners, listeners...) }
}

func NewGenerator(analyzer Analyzer, logger zerolog.Logger, opts ...Option) *Generator {
	g := &Generator{
		analyzer: analyzer,
		logger:   logger.With().Str("component", "insights_generator").Logger(),
		rules:    Rules,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

const (
	INPUT_CONVERSION  = "conversion_metrics"
	INPUT_SOURCES     = "source_performance"
	INPUT_BOTTLENECKS = "bottlenecks"
	INPUT_ATTRIBUTION = "revenue_attribution"
)

// Generate queries the four analyzers concurrently and builds the bundle.
// A failed analyzer contributes empty input, is listed in Degraded, and makes
// the result failed while the bundle is still filled in.
func (g *Generator) Generate(ctx context.Context, rng schemas.DateRange) schemas.Result[schemas.InsightBundle] {
	var (
		in       Inputs
		mu       sync.Mutex
		degraded []string
		errs     []error
	)
	record := func(input string, ok bool, msg string) {
		if ok {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		degraded = append(degraded, input)
		errs = append(errs, fmt.Errorf("%s: %s", input, msg))
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		r := g.analyzer.CalculateConversionRates(groupCtx, rng, nil)
		in.Metrics = r.Value
		record(INPUT_CONVERSION, r.OK(), r.Error)
		return nil
	})
	group.Go(func() error {
		r := g.analyzer.GetLeadSourcePerformance(groupCtx, rng)
		in.Sources = r.Value
		record(INPUT_SOURCES, r.OK(), r.Error)
		return nil
	})
	group.Go(func() error {
		r := g.analyzer.IdentifyBottlenecks(groupCtx, rng)
		in.Bottlenecks = r.Value
		record(INPUT_BOTTLENECKS, r.OK(), r.Error)
		return nil
	})
	group.Go(func() error {
		r := g.analyzer.CalculateRevenueAttribution(groupCtx, rng, "")
		in.Attribution = r.Value.Sources
		record(INPUT_ATTRIBUTION, r.OK(), r.Error)
		return nil
	})
	_ = group.Wait()

	bundle := g.Build(rng, in)
	bundle.Degraded = degraded

	if len(errs) > 0 {
		err := errors.Join(errs...)
		g.logger.Error().Err(err).Strs("degraded_inputs", degraded).Msg("insights built from partial data")
		return schemas.Failed(bundle, err)
	}

	g.logger.Info().
		Int("strategic_insights", len(bundle.StrategicInsights)).
		Int("health_score", bundle.ExecutiveSummary.OverallHealthScore).
		Msg("comprehensive insights generated")

	for _, listener := range g.listeners {
		listener.InsightsGenerated(ctx, bundle)
	}
	return schemas.Succeeded(bundle)
}

// Build assembles a bundle from analyzer outputs without touching the store.
func (g *Generator) Build(rng schemas.DateRange, in Inputs) schemas.InsightBundle {
	strategic := EvaluateRules(g.rules, in)
	comparisons := CompareToBenchmarks(in.Metrics)

	return schemas.InsightBundle{
		Period:              rng,
		GeneratedAt:         g.now().UTC(),
		ExecutiveSummary:    Summarize(in.Metrics, strategic, comparisons),
		StrategicInsights:   strategic,
		BenchmarkComparison: comparisons,
		GrowthOpportunities: GrowthOpportunities(in),
		Risks:               Risks(in),
		ROIOptimization:     ROIOptimization(in.Sources),
		Predictions:         Forecast(rng, in.Metrics),
		ActionPlan:          BuildActionPlan(strategic),
		SuccessMetrics:      SuccessMetrics(in.Metrics),
	}
}
