package insights

import (
	"fmt"

	"funnel-analytics/schemas"
)

const ACTIONS_PER_INSIGHT = 2

// BuildActionPlan spreads insights over 30/60/90 days by priority: the first
// two HIGH insights go first, then the remaining HIGH ones with the first
// MEDIUM, then the rest of the MEDIUM ones.
func BuildActionPlan(insights []schemas.StrategicInsight) schemas.ActionPlan {
	var high, medium []schemas.StrategicInsight
	for _, in := range insights {
		switch in.Priority {
		case schemas.PRIORITY_HIGH:
			high = append(high, in)
		case schemas.PRIORITY_MEDIUM:
			medium = append(medium, in)
		}
	}

	var days60, days90 []schemas.StrategicInsight
	days30 := high
	if len(high) > 2 {
		days30, days60 = high[:2], append(days60, high[2:]...)
	}
	if len(medium) > 0 {
		days60 = append(days60, medium[0])
		days90 = medium[1:]
	}

	return schemas.ActionPlan{
		Days30: actionsOf(days30),
		Days60: actionsOf(days60),
		Days90: actionsOf(days90),
	}
}

func actionsOf(insights []schemas.StrategicInsight) []string {
	actions := []string{}
	for _, in := range insights {
		n := min(len(in.RecommendedActions), ACTIONS_PER_INSIGHT)
		actions = append(actions, in.RecommendedActions[:n]...)
	}
	return actions
}

var focusOrder = []struct {
	insightType string
	focus       string
}{
	{schemas.INSIGHT_CONVERSION_OPTIMIZATION, "Conversion Rate Optimization"},
	{schemas.INSIGHT_PROCESS_OPTIMIZATION, "Bottleneck Elimination"},
	{schemas.INSIGHT_INVESTMENT_SCALING, "High-ROI Source Scaling"},
	{schemas.INSIGHT_COST_OPTIMIZATION, "Cost Efficiency Improvement"},
}

func Summarize(m schemas.ConversionMetrics, insights []schemas.StrategicInsight, comparisons []schemas.BenchmarkComparison) schemas.ExecutiveSummary {
	summary := schemas.ExecutiveSummary{
		OverallHealthScore: HealthScore(comparisons),
		KeyFindings: []string{
			fmt.Sprintf("Overall conversion rate: %.1f%%", m.OverallConversionRate),
			"Total revenue analyzed: " + money(m.TotalRevenue),
			"Average deal size: " + money(m.AvgDealSize),
			fmt.Sprintf("Sales cycle length: %.0f days", m.AvgSalesCycleDays),
		},
		AreasOfExcellence:       []string{},
		AreasNeedingImprovement: []string{},
		RecommendedFocus:        "Performance Monitoring",
	}

	highTypes := map[string]bool{}
	score := 0
	for _, in := range insights {
		switch in.Priority {
		case schemas.PRIORITY_HIGH:
			summary.CriticalActionsNeeded++
			highTypes[in.Type] = true
			score += 30
		case schemas.PRIORITY_MEDIUM:
			score += 15
		}
	}
	summary.RevenueOpportunity = revenueOpportunity(score)

	for _, f := range focusOrder {
		if highTypes[f.insightType] {
			summary.RecommendedFocus = f.focus
			break
		}
	}

	for _, c := range comparisons {
		switch c.PerformanceStatus {
		case schemas.PERFORMANCE_EXCELLENT:
			summary.AreasOfExcellence = append(summary.AreasOfExcellence, c.MetricName)
		case schemas.PERFORMANCE_POOR:
			summary.AreasNeedingImprovement = append(summary.AreasNeedingImprovement, c.MetricName)
		}
	}
	return summary
}

func revenueOpportunity(score int) string {
	switch {
	case score > 80:
		return "Very High (50%+ revenue increase potential)"
	case score > 50:
		return "High (25-50% revenue increase potential)"
	case score > 25:
		return "Medium (10-25% revenue increase potential)"
	default:
		return "Low (0-10% revenue increase potential)"
	}
}

func SuccessMetrics(m schemas.ConversionMetrics) schemas.SuccessTargets {
	return schemas.SuccessTargets{
		Days30: schemas.TargetSet{
			ConversionRate: fmt.Sprintf("%.1f%%", max(m.OverallConversionRate*1.15, 6.0)),
			LeadVolume:     fmt.Sprintf("%d leads", int(float64(m.TotalLeads)*1.1)),
			Revenue:        money(m.TotalRevenue * 1.1),
		},
		Days90: schemas.TargetSet{
			ConversionRate: fmt.Sprintf("%.1f%%", max(m.OverallConversionRate*1.3, 8.0)),
			LeadVolume:     fmt.Sprintf("%d leads", int(float64(m.TotalLeads)*1.25)),
			Revenue:        money(m.TotalRevenue * 1.4),
		},
	}
}
