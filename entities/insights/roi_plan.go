package insights

import (
	"fmt"
	"math"

	"funnel-analytics/schemas"
)

const (
	ROI_EXCELLENT  = 300.0
	ROI_GOOD       = 150.0
	ROI_ACCEPTABLE = 75.0
)

var roiBuckets = []struct {
	name     string
	min, max float64
}{
	{"Excellent", ROI_EXCELLENT, math.Inf(1)},
	{"Good", ROI_GOOD, ROI_EXCELLENT},
	{"Acceptable", ROI_ACCEPTABLE, ROI_GOOD},
	{"Poor", math.Inf(-1), ROI_ACCEPTABLE},
}

// ROIOptimization buckets sources by ROI and recommends scaling the
// excellent ones and cutting the poor ones.
func ROIOptimization(sources []schemas.SourcePerformance) schemas.ROIOptimizationPlan {
	plan := schemas.ROIOptimizationPlan{
		Distribution:    map[string]schemas.ROIBucket{},
		Recommendations: []schemas.ROIRecommendation{},
	}
	if len(sources) == 0 {
		return plan
	}

	for _, bucket := range roiBuckets {
		var agg schemas.ROIBucket
		for _, s := range sources {
			if s.ROI >= bucket.min && s.ROI < bucket.max {
				agg.Count++
				agg.TotalSpend += s.TotalAcquisitionCost
				agg.TotalRevenue += s.TotalRevenue
			}
		}
		plan.Distribution[bucket.name] = agg
	}

	var excellent, poor []string
	var excellentROI, poorSpend float64
	for _, s := range sources {
		switch {
		case s.ROI >= ROI_EXCELLENT:
			excellent = append(excellent, s.SourceName)
			excellentROI += s.ROI
		case s.ROI < ROI_ACCEPTABLE:
			poor = append(poor, s.SourceName)
			poorSpend += s.TotalAcquisitionCost
		}
	}

	if len(excellent) > 0 {
		plan.Recommendations = append(plan.Recommendations, schemas.ROIRecommendation{
			Action:         "SCALE_HIGH_PERFORMERS",
			Sources:        excellent,
			Recommendation: "Increase budget allocation by 50-100%",
			ExpectedROI:    fmt.Sprintf("%.0f%%+", excellentROI/float64(len(excellent))),
		})
	}
	if len(poor) > 0 {
		plan.Recommendations = append(plan.Recommendations, schemas.ROIRecommendation{
			Action:           "OPTIMIZE_OR_PAUSE",
			Sources:          poor,
			Recommendation:   "Reduce spend by 50% or pause while optimizing",
			PotentialSavings: money(poorSpend) + "/month",
		})
	}
	return plan
}
