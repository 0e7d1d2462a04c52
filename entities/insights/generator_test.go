package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnel-analytics/schemas"
)

type fakeAnalyzer struct {
	metrics     schemas.Result[schemas.ConversionMetrics]
	sources     schemas.Result[[]schemas.SourcePerformance]
	bottlenecks schemas.Result[[]schemas.BottleneckAnalysis]
	attribution schemas.Result[schemas.RevenueAttribution]
}

func (f fakeAnalyzer) CalculateConversionRates(context.Context, schemas.DateRange, *int64) schemas.Result[schemas.ConversionMetrics] {
	return f.metrics
}

func (f fakeAnalyzer) GetLeadSourcePerformance(context.Context, schemas.DateRange) schemas.Result[[]schemas.SourcePerformance] {
	return f.sources
}

func (f fakeAnalyzer) IdentifyBottlenecks(context.Context, schemas.DateRange) schemas.Result[[]schemas.BottleneckAnalysis] {
	return f.bottlenecks
}

func (f fakeAnalyzer) CalculateRevenueAttribution(context.Context, schemas.DateRange, string) schemas.Result[schemas.RevenueAttribution] {
	return f.attribution
}

type bundleRecorder struct {
	bundles []schemas.InsightBundle
}

func (r *bundleRecorder) InsightsGenerated(_ context.Context, bundle schemas.InsightBundle) {
	r.bundles = append(r.bundles, bundle)
}

func healthyAnalyzer() fakeAnalyzer {
	return fakeAnalyzer{
		metrics: schemas.Succeeded(schemas.ConversionMetrics{
			TotalLeads: 120, ContractsSigned: 3, TotalRevenue: 90000, OverallConversionRate: 2.5,
			AvgDealSize: 30000, AvgSalesCycleDays: 40,
		}),
		sources: schemas.Succeeded([]schemas.SourcePerformance{
			{SourceName: "Referral", TotalRevenue: 90000, TotalLeads: 20, ROI: 900, RevenuePerLead: 4500, CostPerLead: 10},
			{SourceName: "Ads", TotalLeads: 100, ROI: -100, TotalAcquisitionCost: 800},
		}),
		bottlenecks: schemas.Succeeded([]schemas.BottleneckAnalysis{
			{StageName: "Proposal Sent", Severity: schemas.SEVERITY_HIGH, ConversionRate: 20, Recommendations: []string{"r1", "r2"}},
		}),
		attribution: schemas.Succeeded(schemas.RevenueAttribution{Sources: []schemas.SourceAttribution{
			{SourceName: "Referral", TotalAttributedRevenue: 90000, RevenuePercentage: 100},
		}}),
	}
}

func TestGenerate(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	recorder := &bundleRecorder{}
	generator := NewGenerator(healthyAnalyzer(), zerolog.Nop(), WithClock(func() time.Time { return now }), WithBundleListeners(recorder))

	rng := schemas.NewDateRange(periodStart, periodStart.AddDate(0, 0, 30))
	result := generator.Generate(context.Background(), rng)
	require.True(t, result.OK())

	bundle := result.Value
	assert.Equal(t, now, bundle.GeneratedAt)
	assert.Equal(t, rng, bundle.Period)
	assert.Empty(t, bundle.Degraded)
	assert.Equal(t, []string{
		schemas.INSIGHT_CONVERSION_OPTIMIZATION,
		schemas.INSIGHT_INVESTMENT_SCALING,
		schemas.INSIGHT_COST_OPTIMIZATION,
		schemas.INSIGHT_PROCESS_OPTIMIZATION,
		schemas.INSIGHT_VALUE_OPTIMIZATION,
	}, insightTypes(bundle.StrategicInsights))

	assert.Equal(t, 3, bundle.ExecutiveSummary.CriticalActionsNeeded)
	assert.Equal(t, "Conversion Rate Optimization", bundle.ExecutiveSummary.RecommendedFocus)
	assert.Len(t, bundle.ActionPlan.Days30, 4)

	riskTypes := []string{}
	for _, r := range bundle.Risks {
		riskTypes = append(riskTypes, r.Type)
	}
	assert.Equal(t, []string{"CONCENTRATION_RISK", "PROCESS_RISK", "PERFORMANCE_RISK"}, riskTypes)
	assert.Equal(t, "Referral represents 100% of revenue", bundle.Risks[0].Description)

	require.Len(t, bundle.GrowthOpportunities, 1)
	assert.Equal(t, "SOURCE_SCALING", bundle.GrowthOpportunities[0].Type)
	assert.Equal(t, "$500/month", bundle.GrowthOpportunities[0].InvestmentRequired)

	require.Len(t, recorder.bundles, 1)
	assert.Equal(t, bundle.GeneratedAt, recorder.bundles[0].GeneratedAt)
}

func TestGenerateDegradedInputs(t *testing.T) {
	analyzer := healthyAnalyzer()
	analyzer.bottlenecks = schemas.Failed([]schemas.BottleneckAnalysis{}, errors.New("funnel query failed: identify_bottlenecks: boom"))
	analyzer.attribution = schemas.Failed(schemas.RevenueAttribution{}, errors.New("funnel query failed: attribution: boom"))
	recorder := &bundleRecorder{}
	generator := NewGenerator(analyzer, zerolog.Nop(), WithBundleListeners(recorder))

	result := generator.Generate(context.Background(), schemas.NewDateRange(periodStart, periodStart.AddDate(0, 0, 7)))
	assert.False(t, result.OK())
	assert.Contains(t, result.Error, "boom")
	assert.ElementsMatch(t, []string{INPUT_BOTTLENECKS, INPUT_ATTRIBUTION}, result.Value.Degraded)
	assert.NotContains(t, insightTypes(result.Value.StrategicInsights), schemas.INSIGHT_PROCESS_OPTIMIZATION)
	assert.Contains(t, insightTypes(result.Value.StrategicInsights), schemas.INSIGHT_CONVERSION_OPTIMIZATION)
	assert.Empty(t, recorder.bundles)
}
