package funnel

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnel-analytics/database/storetest"
	"funnel-analytics/schemas"
)

func TestSummarizeInsightsRecommendations(t *testing.T) {
	metrics := schemas.ConversionMetrics{
		TotalLeads:            200,
		ContractsSigned:       8,
		TotalRevenue:          240000,
		OverallConversionRate: 4,
		AvgSalesCycleDays:     75,
	}
	sources := []schemas.SourcePerformance{
		{SourceName: "Referral", TotalRevenue: 180000, TotalLeads: 40, ROI: 450, ConversionRate: 10},
		{SourceName: "Cold Email", TotalRevenue: 60000, TotalLeads: 160, ROI: 20, ConversionRate: 1.25},
		{SourceName: "Events", TotalLeads: 0},
	}
	bottlenecks := []schemas.BottleneckAnalysis{
		{StageName: schemas.STAGE_LEAD_GENERATED, Severity: schemas.SEVERITY_LOW},
		{StageName: schemas.STAGE_PROPOSAL_UNDER_REVIEW, Severity: schemas.SEVERITY_HIGH, ConversionRate: 30, ProspectsStuck: 6,
			Recommendations: []string{"Create structured follow-up sequences", "Implement proposal tracking and engagement analytics", "x"}},
	}
	attribution := []schemas.SourceAttribution{
		{SourceName: "Referral", RevenuePercentage: 70},
		{SourceName: "Cold Email", RevenuePercentage: 20},
		{SourceName: "Website", RevenuePercentage: 6},
		{SourceName: "Other", RevenuePercentage: 4},
	}

	insights := SummarizeInsights(testRange(), metrics, sources, bottlenecks, attribution, nil)

	assert.Equal(t, []string{
		"CRITICAL: Overall conversion rate is below 5%. Focus on lead qualification and sales process optimization.",
		"Scale investment in Referral - showing excellent ROI of 450%",
		"Consider pausing or optimizing 2 underperforming lead sources",
		"Address Proposal Under Review bottleneck - Create structured follow-up sequences",
		"Sales cycle is lengthy. Implement urgency tactics and streamline decision-making process.",
	}, insights.KeyRecommendations)

	assert.Equal(t, "Needs Improvement", insights.ExecutiveSummary.ConversionHealth)
	assert.Equal(t, schemas.STAGE_PROPOSAL_UNDER_REVIEW, insights.ExecutiveSummary.PrimaryBottleneck)
	assert.Equal(t, "Referral", insights.ExecutiveSummary.TopPerformingSource)
	assert.InDelta(t, 240000.0, insights.ExecutiveSummary.TotalPipelineValue, 1e-6)

	assert.Equal(t, 1, insights.Bottlenecks.HighPriorityCount)
	assert.Len(t, insights.Bottlenecks.ImprovementOpportunities, 2)
	assert.Len(t, insights.Attribution.TopRevenueSources, 3)
	assert.InDelta(t, 96.0, insights.Attribution.RevenueConcentration, 1e-9)

	assert.Equal(t, "Cold Email", insights.Sources.TopByVolume[0].SourceName)
	assert.Equal(t, "Referral", insights.Sources.MostEfficient[0].SourceName)
	assert.NotNil(t, insights.Trends)
}

func TestSummarizeInsightsWithoutData(t *testing.T) {
	insights := SummarizeInsights(testRange(), schemas.ConversionMetrics{}, nil, nil, nil, nil)

	assert.Equal(t, "None identified", insights.ExecutiveSummary.PrimaryBottleneck)
	assert.Equal(t, "No data", insights.ExecutiveSummary.TopPerformingSource)
	assert.Equal(t, []string{
		"CRITICAL: Overall conversion rate is below 5%. Focus on lead qualification and sales process optimization.",
	}, insights.KeyRecommendations)
	assert.Empty(t, insights.Sources.TopByRevenue)
}

func TestGenerateComprehensiveInsights(t *testing.T) {
	store := storetest.Open(t)
	store.DefaultStages()
	referral := store.Source("Referral", schemas.SOURCE_CATEGORY_REFERRAL, 20)
	for i := 0; i < 8; i++ {
		p := store.Prospect(fmt.Sprintf("r%d@example.com", i), referral, base)
		if i < 2 {
			store.Contract(p, 50000, 4000, schemas.CONTRACT_STATUS_ACTIVE, base.AddDate(0, 0, 12))
		}
	}

	engine := newTestEngine(t, store)
	result := engine.GenerateComprehensiveInsights(context.Background(), testRange())
	require.True(t, result.OK())

	insights := result.Value
	assert.Equal(t, "Good", insights.ExecutiveSummary.ConversionHealth)
	assert.Equal(t, "Referral", insights.ExecutiveSummary.TopPerformingSource)
	assert.Equal(t, 8, insights.Conversion.TotalLeads)
	assert.InDelta(t, 25.0, insights.Conversion.OverallConversionRate, 1e-9)
	assert.InDelta(t, 100.0, insights.Attribution.RevenueConcentration, 1e-9)
	require.Len(t, insights.Trends, 1)
	assert.Equal(t, base.AddDate(0, 0, 40), insights.GeneratedAt)
	assert.Contains(t, insights.KeyRecommendations, "Scale investment in Referral - showing excellent ROI of 62400%")
}
