package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnel-analytics/schemas"
)

func TestCompareToBenchmarks(t *testing.T) {
	comparisons := CompareToBenchmarks(schemas.ConversionMetrics{
		OverallConversionRate:  17,
		LeadToDiscoveryRate:    42,
		ProposalToContractRate: 28,
		AvgSalesCycleDays:      108,
		AvgDealSize:            54000,
	})
	require.Len(t, comparisons, 5)

	byName := map[string]schemas.BenchmarkComparison{}
	for _, c := range comparisons {
		byName[c.MetricName] = c
	}
	assert.NotContains(t, byName, "Discovery to Proposal Rate")

	assert.Equal(t, schemas.PERFORMANCE_EXCELLENT, byName["Overall Conversion Rate"].PerformanceStatus)
	assert.Equal(t, 95, byName["Overall Conversion Rate"].PercentileRank)
	assert.Equal(t, schemas.PERFORMANCE_AVERAGE, byName["Lead to Discovery Rate"].PerformanceStatus)
	assert.Equal(t, schemas.PERFORMANCE_BELOW_AVERAGE, byName["Proposal to Contract Rate"].PerformanceStatus)
	assert.Equal(t, schemas.PERFORMANCE_GOOD, byName["Average Deal Size"].PerformanceStatus)

	cycle := byName["Average Sales Cycle"]
	assert.InDelta(t, 0.5, cycle.PerformanceRatio, 1e-9)
	assert.Equal(t, schemas.PERFORMANCE_POOR, cycle.PerformanceStatus)
	assert.Equal(t, 10, cycle.PercentileRank)

	assert.Equal(t, 55, HealthScore(comparisons))
}

func TestHealthScoreWithoutData(t *testing.T) {
	comparisons := CompareToBenchmarks(schemas.ConversionMetrics{})
	assert.Empty(t, comparisons)
	assert.Equal(t, DEFAULT_HEALTH_SCORE, HealthScore(comparisons))
}

func TestFastSalesCycleIsExcellent(t *testing.T) {
	comparisons := CompareToBenchmarks(schemas.ConversionMetrics{AvgSalesCycleDays: 30})
	require.Len(t, comparisons, 1)
	assert.Equal(t, schemas.PERFORMANCE_EXCELLENT, comparisons[0].PerformanceStatus)
	assert.Equal(t, 95, HealthScore(comparisons))
}
