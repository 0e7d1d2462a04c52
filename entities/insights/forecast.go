package insights

import "funnel-analytics/schemas"

const GROWTH_MULTIPLIER = 1.1

// Forecast extrapolates the period's daily lead and revenue rates. It is a
// straight line, not a statistical model.
func Forecast(rng schemas.DateRange, m schemas.ConversionMetrics) schemas.PredictiveInsights {
	periodDays := rng.Days()

	var dailyLeads, dailyRevenue float64
	if periodDays > 0 {
		dailyLeads = float64(m.TotalLeads) / float64(periodDays)
		dailyRevenue = m.TotalRevenue / float64(periodDays)
	}
	conversion := m.OverallConversionRate / 100

	leads90 := dailyLeads * 90 * GROWTH_MULTIPLIER
	return schemas.PredictiveInsights{
		PeriodDays: max(periodDays, 0),
		Next30Days: schemas.Forecast{
			ProjectedLeads:     int(dailyLeads * 30),
			ProjectedContracts: int(dailyLeads * 30 * conversion),
			ProjectedRevenue:   dailyRevenue * 30,
			Confidence:         "MEDIUM",
		},
		Next90Days: schemas.Forecast{
			ProjectedLeads:     int(leads90),
			ProjectedContracts: int(leads90 * conversion),
			ProjectedRevenue:   dailyRevenue * 90 * GROWTH_MULTIPLIER,
			Confidence:         "LOW",
		},
		Scenarios: []schemas.Scenario{
			{Name: "conservative", Assumption: "No changes to current performance", Revenue90Days: dailyRevenue * 90, Probability: "HIGH"},
			{Name: "optimistic", Assumption: "20% improvement in conversion rate", Revenue90Days: dailyRevenue * 90 * 1.2, Probability: "MEDIUM"},
			{Name: "aggressive", Assumption: "50% increase in leads + 20% better conversion", Revenue90Days: dailyRevenue * 90 * 1.5 * 1.2, Probability: "LOW"},
		},
	}
}
