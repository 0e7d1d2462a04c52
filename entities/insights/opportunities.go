package insights

import (
	"fmt"

	"funnel-analytics/schemas"
)

func GrowthOpportunities(in Inputs) []schemas.GrowthOpportunity {
	opportunities := []schemas.GrowthOpportunity{}

	for _, s := range in.Sources {
		if s.ROI <= 200 {
			continue
		}
		opportunities = append(opportunities, schemas.GrowthOpportunity{
			Type:               "SOURCE_SCALING",
			Title:              "Scale " + s.SourceName,
			PotentialImpact:    money(s.RevenuePerLead*50) + "/month with 50 more leads",
			InvestmentRequired: money(s.CostPerLead*50) + "/month",
			ROIProjection:      fmt.Sprintf("%.0f%%+", s.ROI),
			RiskLevel:          "LOW",
		})
	}

	medium := bottlenecksWith(in.Bottlenecks, schemas.SEVERITY_MEDIUM)
	for i, b := range medium {
		if i == 2 {
			break
		}
		opportunities = append(opportunities, schemas.GrowthOpportunity{
			Type:               "PROCESS_IMPROVEMENT",
			Title:              "Optimize " + b.StageName,
			PotentialImpact:    "15-25% conversion improvement",
			InvestmentRequired: "Process optimization and training",
			ROIProjection:      "200-400%",
			RiskLevel:          "LOW",
		})
	}

	if in.Metrics.OverallConversionRate > 10 {
		opportunities = append(opportunities, schemas.GrowthOpportunity{
			Type:               "MARKET_EXPANSION",
			Title:              "Expand to New Lead Sources",
			PotentialImpact:    money(in.Metrics.TotalRevenue*0.5) + " additional revenue",
			InvestmentRequired: "New channel development",
			ROIProjection:      "150-300%",
			RiskLevel:          "MEDIUM",
		})
	}

	return opportunities
}

const CONCENTRATION_RISK_PERCENT = 60

func Risks(in Inputs) []schemas.Risk {
	risks := []schemas.Risk{}

	if len(in.Sources) > 0 {
		var total float64
		for _, s := range in.Sources {
			total += s.TotalRevenue
		}
		if total > 0 {
			top := in.Sources[0]
			share := top.TotalRevenue / total * 100
			if share > CONCENTRATION_RISK_PERCENT {
				risks = append(risks, schemas.Risk{
					Type:            "CONCENTRATION_RISK",
					Title:           "Over-dependence on Single Lead Source",
					Description:     fmt.Sprintf("%s represents %.0f%% of revenue", top.SourceName, share),
					PotentialImpact: "High vulnerability to channel disruption",
					Mitigation:      "Diversify lead sources and reduce dependence",
					Priority:        schemas.PRIORITY_HIGH,
				})
			}
		}
	}

	for _, b := range in.highBottlenecks() {
		mitigation := "Process optimization needed"
		if len(b.Recommendations) > 0 {
			mitigation = b.Recommendations[0]
		}
		risks = append(risks, schemas.Risk{
			Type:            "PROCESS_RISK",
			Title:           "Critical Bottleneck: " + b.StageName,
			Description:     fmt.Sprintf("Only %.1f%% conversion rate", b.ConversionRate),
			PotentialImpact: "Significant revenue loss and poor customer experience",
			Mitigation:      mitigation,
			Priority:        schemas.PRIORITY_HIGH,
		})
	}

	if in.Metrics.OverallConversionRate < 5 {
		risks = append(risks, schemas.Risk{
			Type:            "PERFORMANCE_RISK",
			Title:           "Below-Average Conversion Performance",
			Description:     fmt.Sprintf("Conversion rate of %.1f%% is well below industry standard", in.Metrics.OverallConversionRate),
			PotentialImpact: "Inefficient use of marketing budget and resources",
			Mitigation:      "Comprehensive funnel optimization program",
			Priority:        schemas.PRIORITY_HIGH,
		})
	}

	return risks
}
