package funnel

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"funnel-analytics/schemas"
)

const (
	SUMMARY_TOP_SOURCES         = 5
	SUMMARY_TOP_ATTRIBUTIONS    = 3
	SUMMARY_MAX_RECOMMENDATIONS = 5
)

// GenerateComprehensiveInsights runs every analyzer over rng and condenses the
// results into one summary. Failed analyzers contribute empty sections and
// mark the summary failed; the remaining sections are still filled in.
func (e *Engine) GenerateComprehensiveInsights(ctx context.Context, rng schemas.DateRange) schemas.Result[schemas.EngineInsights] {
	const op = "generate_comprehensive_insights"

	conversion := e.CalculateConversionRates(ctx, rng, nil)
	sources := e.GetLeadSourcePerformance(ctx, rng)
	bottlenecks := e.IdentifyBottlenecks(ctx, rng)
	attribution := e.CalculateRevenueAttribution(ctx, rng, DEFAULT_ATTRIBUTION_MODEL)
	trends := e.GetWeeklyTrends(ctx, rng)

	insights := SummarizeInsights(rng, conversion.Value, sources.Value, bottlenecks.Value, attribution.Value.Sources, trends.Value)
	insights.GeneratedAt = e.now().UTC()

	var errs []error
	for _, r := range []struct {
		ok  bool
		err string
	}{
		{conversion.OK(), conversion.Error},
		{sources.OK(), sources.Error},
		{bottlenecks.OK(), bottlenecks.Error},
		{attribution.OK(), attribution.Error},
		{trends.OK(), trends.Error},
	} {
		if !r.ok {
			errs = append(errs, errors.New(r.err))
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		e.logger.Error().Err(err).Str("op", op).Int("failed_sections", len(errs)).Msg("summary built from partial data")
		return schemas.Failed(insights, err)
	}

	e.logger.Info().Str("op", op).Int("recommendations", len(insights.KeyRecommendations)).Msg("comprehensive insights generated")
	return schemas.Succeeded(insights)
}

// SummarizeInsights is the pure part of GenerateComprehensiveInsights.
func SummarizeInsights(
	rng schemas.DateRange,
	metrics schemas.ConversionMetrics,
	sources []schemas.SourcePerformance,
	bottlenecks []schemas.BottleneckAnalysis,
	attribution []schemas.SourceAttribution,
	trends []schemas.WeeklyTrend,
) schemas.EngineInsights {
	high := highSeverity(bottlenecks)

	insights := schemas.EngineInsights{
		Period: rng,
		Conversion: schemas.ConversionSummary{
			TotalLeads:            metrics.TotalLeads,
			ContractsSigned:       metrics.ContractsSigned,
			TotalRevenue:          metrics.TotalRevenue,
			OverallConversionRate: metrics.OverallConversionRate,
			AvgDealSize:           metrics.AvgDealSize,
			AvgSalesCycleDays:     metrics.AvgSalesCycleDays,
			FunnelRates: schemas.FunnelRates{
				LeadToDiscovery:     metrics.LeadToDiscoveryRate,
				DiscoveryToProposal: metrics.DiscoveryToProposalRate,
				ProposalToContract:  metrics.ProposalToContractRate,
			},
		},
		Sources: schemas.SourceSummary{
			TopByRevenue:  topSources(sources, nil),
			TopByVolume:   topSources(sources, func(a, b schemas.SourcePerformance) bool { return a.TotalLeads > b.TotalLeads }),
			MostEfficient: topSources(sources, func(a, b schemas.SourcePerformance) bool { return a.ROI > b.ROI }),
		},
		Bottlenecks: schemas.BottleneckSummary{
			HighPriorityCount:        len(high),
			CriticalStages:           []schemas.CriticalStage{},
			ImprovementOpportunities: []string{},
		},
		Attribution: schemas.AttributionSummary{TopRevenueSources: []schemas.SourceAttribution{}},
		Trends:      trends,
		ExecutiveSummary: schemas.EngineExecutiveSummary{
			TotalPipelineValue:  metrics.TotalRevenue,
			ConversionHealth:    "Needs Improvement",
			PrimaryBottleneck:   "None identified",
			TopPerformingSource: "No data",
		},
	}
	if insights.Trends == nil {
		insights.Trends = []schemas.WeeklyTrend{}
	}

	for _, b := range high {
		insights.Bottlenecks.CriticalStages = append(insights.Bottlenecks.CriticalStages, schemas.CriticalStage{
			Stage:          b.StageName,
			ConversionRate: b.ConversionRate,
			ProspectsStuck: b.ProspectsStuck,
		})
		insights.Bottlenecks.ImprovementOpportunities = append(insights.Bottlenecks.ImprovementOpportunities, firstN(b.Recommendations, 2)...)
	}

	for i, a := range attribution {
		if i == SUMMARY_TOP_ATTRIBUTIONS {
			break
		}
		insights.Attribution.TopRevenueSources = append(insights.Attribution.TopRevenueSources, a)
		insights.Attribution.RevenueConcentration += a.RevenuePercentage
	}

	if metrics.OverallConversionRate > 10 {
		insights.ExecutiveSummary.ConversionHealth = "Good"
	}
	if len(high) > 0 {
		insights.ExecutiveSummary.PrimaryBottleneck = high[0].StageName
	}
	if len(sources) > 0 {
		insights.ExecutiveSummary.TopPerformingSource = sources[0].SourceName
	}

	insights.KeyRecommendations = keyRecommendations(metrics, high, sources)
	return insights
}

func keyRecommendations(metrics schemas.ConversionMetrics, high []schemas.BottleneckAnalysis, sources []schemas.SourcePerformance) []string {
	recommendations := []string{}

	switch {
	case metrics.OverallConversionRate < 5:
		recommendations = append(recommendations, "CRITICAL: Overall conversion rate is below 5%. Focus on lead qualification and sales process optimization.")
	case metrics.OverallConversionRate < 10:
		recommendations = append(recommendations, "Conversion rate needs improvement. Consider implementing lead scoring and nurturing sequences.")
	}

	if len(sources) > 0 {
		if top := sources[0]; top.ROI > 200 {
			recommendations = append(recommendations, fmt.Sprintf("Scale investment in %s - showing excellent ROI of %.0f%%", top.SourceName, top.ROI))
		}
		lowPerforming := 0
		for _, s := range sources {
			if s.ConversionRate < 2 {
				lowPerforming++
			}
		}
		if lowPerforming > 0 {
			recommendations = append(recommendations, fmt.Sprintf("Consider pausing or optimizing %d underperforming lead sources", lowPerforming))
		}
	}

	if len(high) > 0 {
		advice := "needs immediate attention"
		if len(high[0].Recommendations) > 0 {
			advice = high[0].Recommendations[0]
		}
		recommendations = append(recommendations, fmt.Sprintf("Address %s bottleneck - %s", high[0].StageName, advice))
	}

	if metrics.AvgSalesCycleDays > 60 {
		recommendations = append(recommendations, "Sales cycle is lengthy. Implement urgency tactics and streamline decision-making process.")
	}

	return firstN(recommendations, SUMMARY_MAX_RECOMMENDATIONS)
}

func highSeverity(bottlenecks []schemas.BottleneckAnalysis) []schemas.BottleneckAnalysis {
	var high []schemas.BottleneckAnalysis
	for _, b := range bottlenecks {
		if b.Severity == schemas.SEVERITY_HIGH {
			high = append(high, b)
		}
	}
	return high
}

// topSources keeps the incoming order when less is nil.
func topSources(sources []schemas.SourcePerformance, less func(a, b schemas.SourcePerformance) bool) []schemas.SourcePerformance {
	ranked := append([]schemas.SourcePerformance{}, sources...)
	if less != nil {
		sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	}
	return firstN(ranked, SUMMARY_TOP_SOURCES)
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
