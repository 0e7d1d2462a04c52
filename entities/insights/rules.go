package insights

import (
	"fmt"
	"strings"

	"funnel-analytics/schemas"
)

// Inputs are the analyzer outputs every rule reads from.
type Inputs struct {
	Metrics     schemas.ConversionMetrics
	Sources     []schemas.SourcePerformance
	Bottlenecks []schemas.BottleneckAnalysis
	Attribution []schemas.SourceAttribution
}

func (in Inputs) highBottlenecks() []schemas.BottleneckAnalysis {
	return bottlenecksWith(in.Bottlenecks, schemas.SEVERITY_HIGH)
}

func (in Inputs) poorROISources() []schemas.SourcePerformance {
	var poor []schemas.SourcePerformance
	for _, s := range in.Sources {
		if s.ROI < 50 {
			poor = append(poor, s)
		}
	}
	return poor
}

// Rule pairs a predicate with the insight it produces.
type Rule struct {
	Name    string
	Applies func(in Inputs) bool
	Build   func(in Inputs) schemas.StrategicInsight
}

// Rules are evaluated in this order; every applicable rule fires.
var Rules = []Rule{
	{
		Name:    schemas.INSIGHT_CONVERSION_OPTIMIZATION,
		Applies: func(in Inputs) bool { return in.Metrics.OverallConversionRate < 5 },
		Build: func(in Inputs) schemas.StrategicInsight {
			return schemas.StrategicInsight{
				Type:           schemas.INSIGHT_CONVERSION_OPTIMIZATION,
				Priority:       schemas.PRIORITY_HIGH,
				Title:          "Critical Conversion Rate Issue",
				Description:    fmt.Sprintf("Overall conversion rate of %.1f%% is significantly below industry standard of 8.5%%", in.Metrics.OverallConversionRate),
				ImpactEstimate: "Could increase revenue by 60-80% with optimization",
				RecommendedActions: []string{
					"Implement lead scoring to focus on high-quality prospects",
					"Review and improve qualification criteria",
					"Analyze lost prospects for common patterns",
					"Implement A/B testing for key funnel stages",
				},
				SuccessMetrics: []string{
					"Target: 8%+ overall conversion rate within 90 days",
					"Intermediate: 6%+ conversion rate within 30 days",
				},
				ConfidenceScore: 0.92,
			}
		},
	},
	{
		Name:    schemas.INSIGHT_SCALING_OPPORTUNITY,
		Applies: func(in Inputs) bool { return in.Metrics.OverallConversionRate > 12 },
		Build: func(in Inputs) schemas.StrategicInsight {
			return schemas.StrategicInsight{
				Type:           schemas.INSIGHT_SCALING_OPPORTUNITY,
				Priority:       schemas.PRIORITY_HIGH,
				Title:          "Exceptional Conversion Performance",
				Description:    fmt.Sprintf("Conversion rate of %.1f%% is well above industry average - scaling opportunity", in.Metrics.OverallConversionRate),
				ImpactEstimate: "Could 2-3x revenue with increased lead volume",
				RecommendedActions: []string{
					"Scale investment in top-performing lead sources",
					"Expand team capacity to handle increased volume",
					"Document and systematize successful processes",
					"Consider raising pricing to optimize for deal value",
				},
				SuccessMetrics: []string{
					"Maintain 12%+ conversion while doubling lead volume",
					"Increase average deal size by 15-25%",
				},
				ConfidenceScore: 0.88,
			}
		},
	},
	{
		Name:    schemas.INSIGHT_INVESTMENT_SCALING,
		Applies: func(in Inputs) bool { return len(in.Sources) > 0 && in.Sources[0].ROI > 200 },
		Build: func(in Inputs) schemas.StrategicInsight {
			top := in.Sources[0]
			return schemas.StrategicInsight{
				Type:           schemas.INSIGHT_INVESTMENT_SCALING,
				Priority:       schemas.PRIORITY_HIGH,
				Title:          "High-ROI Source Scaling Opportunity",
				Description:    fmt.Sprintf("%s shows exceptional %.0f%% ROI", top.SourceName, top.ROI),
				ImpactEstimate: fmt.Sprintf("Could generate additional %s monthly with 100 more leads", money(top.RevenuePerLead*100)),
				RecommendedActions: []string{
					fmt.Sprintf("Double marketing budget allocation to %s", top.SourceName),
					"Analyze what makes this source successful",
					"Replicate successful tactics across other channels",
					"Set up dedicated tracking and optimization",
				},
				SuccessMetrics: []string{
					fmt.Sprintf("Increase %s lead volume by 50%%", top.SourceName),
					fmt.Sprintf("Maintain %.0f%%+ ROI at scale", top.ROI),
				},
				ConfidenceScore: 0.85,
			}
		},
	},
	{
		Name:    schemas.INSIGHT_COST_OPTIMIZATION,
		Applies: func(in Inputs) bool { return len(in.poorROISources()) > 0 },
		Build: func(in Inputs) schemas.StrategicInsight {
			poor := in.poorROISources()
			var names []string
			var spend float64
			for i, s := range poor {
				if i < 3 {
					names = append(names, s.SourceName)
				}
				spend += s.TotalAcquisitionCost
			}
			return schemas.StrategicInsight{
				Type:           schemas.INSIGHT_COST_OPTIMIZATION,
				Priority:       schemas.PRIORITY_MEDIUM,
				Title:          "Underperforming Source Optimization",
				Description:    "Sources showing poor ROI: " + strings.Join(names, ", "),
				ImpactEstimate: fmt.Sprintf("Could save %s monthly", money(spend)),
				RecommendedActions: []string{
					"Pause or reduce spend on underperforming sources",
					"Analyze messaging and targeting for these channels",
					"A/B test different approaches before eliminating",
					"Reallocate budget to high-performing sources",
				},
				SuccessMetrics: []string{
					"Achieve 100%+ ROI on all active sources",
					"Reduce overall customer acquisition cost by 20%",
				},
				ConfidenceScore: 0.78,
			}
		},
	},
	{
		Name:    schemas.INSIGHT_PROCESS_OPTIMIZATION,
		Applies: func(in Inputs) bool { return len(in.highBottlenecks()) > 0 },
		Build: func(in Inputs) schemas.StrategicInsight {
			primary := in.highBottlenecks()[0]
			actions := primary.Recommendations
			if len(actions) > 4 {
				actions = actions[:4]
			}
			return schemas.StrategicInsight{
				Type:               schemas.INSIGHT_PROCESS_OPTIMIZATION,
				Priority:           schemas.PRIORITY_HIGH,
				Title:              "Critical Bottleneck: " + primary.StageName,
				Description:        fmt.Sprintf("Stage conversion rate of %.1f%% with %d stuck prospects", primary.ConversionRate, primary.ProspectsStuck),
				ImpactEstimate:     "Could improve overall conversion by 25-40%",
				RecommendedActions: append([]string{}, actions...),
				SuccessMetrics: []string{
					fmt.Sprintf("Improve %s conversion rate to 70%%+", primary.StageName),
					"Reduce average stage duration to target levels",
				},
				ConfidenceScore: 0.90,
			}
		},
	},
	{
		Name:    schemas.INSIGHT_VELOCITY_OPTIMIZATION,
		Applies: func(in Inputs) bool { return in.Metrics.AvgSalesCycleDays > 70 },
		Build: func(in Inputs) schemas.StrategicInsight {
			return schemas.StrategicInsight{
				Type:           schemas.INSIGHT_VELOCITY_OPTIMIZATION,
				Priority:       schemas.PRIORITY_MEDIUM,
				Title:          "Sales Cycle Length Optimization",
				Description:    fmt.Sprintf("Average sales cycle of %.0f days is above optimal range", in.Metrics.AvgSalesCycleDays),
				ImpactEstimate: "Could increase revenue velocity by 20-30%",
				RecommendedActions: []string{
					"Implement urgency tactics and deadlines",
					"Streamline proposal and contract processes",
					"Improve qualification to focus on ready-to-buy prospects",
					"Create fast-track options for qualified prospects",
				},
				SuccessMetrics: []string{
					"Reduce average sales cycle to 45-60 days",
					"Maintain or improve conversion rates",
				},
				ConfidenceScore: 0.75,
			}
		},
	},
	{
		Name: schemas.INSIGHT_VALUE_OPTIMIZATION,
		Applies: func(in Inputs) bool {
			return len(in.Attribution) > 0 && in.Metrics.AvgDealSize < 40000
		},
		Build: func(in Inputs) schemas.StrategicInsight {
			return schemas.StrategicInsight{
				Type:           schemas.INSIGHT_VALUE_OPTIMIZATION,
				Priority:       schemas.PRIORITY_MEDIUM,
				Title:          "Deal Size Enhancement Opportunity",
				Description:    fmt.Sprintf("Average deal size of %s has room for improvement", money(in.Metrics.AvgDealSize)),
				ImpactEstimate: "Could increase revenue per deal by 20-40%",
				RecommendedActions: []string{
					"Implement value-based pricing strategies",
					"Create tiered service packages",
					"Focus on larger enterprise prospects",
					"Improve consultative selling techniques",
				},
				SuccessMetrics: []string{
					"Increase average deal size to $50,000+",
					"Maintain current conversion rates",
				},
				ConfidenceScore: 0.70,
			}
		},
	},
}

// EvaluateRules returns one insight per applicable rule, in rule order.
func EvaluateRules(rules []Rule, in Inputs) []schemas.StrategicInsight {
	insights := []schemas.StrategicInsight{}
	for _, rule := range rules {
		if rule.Applies(in) {
			insights = append(insights, rule.Build(in))
		}
	}
	return insights
}

func bottlenecksWith(bottlenecks []schemas.BottleneckAnalysis, severity schemas.Severity) []schemas.BottleneckAnalysis {
	var matched []schemas.BottleneckAnalysis
	for _, b := range bottlenecks {
		if b.Severity == severity {
			matched = append(matched, b)
		}
	}
	return matched
}
