package insights

import "funnel-analytics/schemas"

const DEFAULT_HEALTH_SCORE = 50

type benchmark struct {
	name        string
	industry    float64
	lowerBetter bool
	value       func(m schemas.ConversionMetrics) float64
}

var benchmarks = []benchmark{
	{"Overall Conversion Rate", 8.5, false, func(m schemas.ConversionMetrics) float64 { return m.OverallConversionRate }},
	{"Lead to Discovery Rate", 42, false, func(m schemas.ConversionMetrics) float64 { return m.LeadToDiscoveryRate }},
	{"Discovery to Proposal Rate", 78, false, func(m schemas.ConversionMetrics) float64 { return m.DiscoveryToProposalRate }},
	{"Proposal to Contract Rate", 35, false, func(m schemas.ConversionMetrics) float64 { return m.ProposalToContractRate }},
	{"Average Sales Cycle", 54, true, func(m schemas.ConversionMetrics) float64 { return m.AvgSalesCycleDays }},
	{"Average Deal Size", 45000, false, func(m schemas.ConversionMetrics) float64 { return m.AvgDealSize }},
}

var tiers = []struct {
	minRatio   float64
	percentile int
	status     schemas.PerformanceStatus
}{
	{1.5, 95, schemas.PERFORMANCE_EXCELLENT},
	{1.2, 80, schemas.PERFORMANCE_GOOD},
	{0.9, 60, schemas.PERFORMANCE_AVERAGE},
	{0.7, 30, schemas.PERFORMANCE_BELOW_AVERAGE},
}

// CompareToBenchmarks rates each metric against its industry reference.
// Metrics without data (value 0) are skipped.
func CompareToBenchmarks(m schemas.ConversionMetrics) []schemas.BenchmarkComparison {
	comparisons := []schemas.BenchmarkComparison{}
	for _, b := range benchmarks {
		value := b.value(m)
		if value == 0 {
			continue
		}

		ratio := value / b.industry
		if b.lowerBetter {
			ratio = b.industry / value
		}

		comparison := schemas.BenchmarkComparison{
			MetricName:        b.name,
			YourValue:         value,
			IndustryAverage:   b.industry,
			PerformanceRatio:  ratio,
			PercentileRank:    10,
			PerformanceStatus: schemas.PERFORMANCE_POOR,
		}
		for _, tier := range tiers {
			if ratio >= tier.minRatio {
				comparison.PercentileRank = tier.percentile
				comparison.PerformanceStatus = tier.status
				break
			}
		}
		comparisons = append(comparisons, comparison)
	}
	return comparisons
}

// HealthScore is the mean percentile rank, truncated and capped at 100.
func HealthScore(comparisons []schemas.BenchmarkComparison) int {
	if len(comparisons) == 0 {
		return DEFAULT_HEALTH_SCORE
	}
	sum := 0
	for _, c := range comparisons {
		sum += c.PercentileRank
	}
	return max(0, min(100, sum/len(comparisons)))
}
