package funnel

import "funnel-analytics/schemas"

const MAX_BOTTLENECK_RECOMMENDATIONS = 5

var stageRecommendations = map[string][]string{
	schemas.STAGE_LEAD_GENERATED: {
		"Implement lead scoring to prioritize high-quality prospects",
		"Create automated qualification sequences",
		"Review lead source quality and adjust targeting",
	},
	schemas.STAGE_DISCOVERY_CALL_SCHEDULED: {
		"Improve initial outreach messaging and value proposition",
		"Implement calendar booking automation",
		"Create urgency with limited-time offers or consultations",
	},
	schemas.STAGE_DISCOVERY_CALL_COMPLETED: {
		"Reduce no-show rates with confirmation sequences",
		"Train sales team on discovery call best practices",
		"Implement call recording and analysis for improvement",
	},
	schemas.STAGE_PROPOSAL_SENT: {
		"Streamline discovery-to-proposal process",
		"Create proposal templates for faster turnaround",
		"Implement better qualification to ensure proposal-ready prospects",
	},
	schemas.STAGE_PROPOSAL_UNDER_REVIEW: {
		"Create structured follow-up sequences",
		"Implement proposal tracking and engagement analytics",
		"Add social proof and case studies to proposals",
	},
	schemas.STAGE_CONTRACT_NEGOTIATION: {
		"Streamline contract terms and reduce complexity",
		"Train team on objection handling and negotiation",
		"Create flexible pricing options and packages",
	},
}

type performanceRule struct {
	triggered       func(conversionRate, durationFactor, stuckFactor float64) bool
	recommendations []string
}

var performanceRules = []performanceRule{
	{
		triggered: func(conversionRate, _, _ float64) bool { return conversionRate < 50 },
		recommendations: []string{
			"URGENT: Review and improve qualification criteria",
			"Analyze lost prospects for common patterns",
		},
	},
	{
		triggered: func(_, durationFactor, _ float64) bool { return durationFactor > 2 },
		recommendations: []string{
			"Implement automated follow-up sequences",
			"Set clear timelines and next steps with prospects",
		},
	},
	{
		triggered: func(_, _, stuckFactor float64) bool { return stuckFactor > 0.3 },
		recommendations: []string{
			"Create re-engagement campaigns for stalled prospects",
			"Implement stage-specific nurturing content",
		},
	},
}

// BottleneckRecommendations lists the stage's baseline advice followed by the
// advice of every triggered performance rule, capped at five entries.
func BottleneckRecommendations(stageName string, conversionRate, durationFactor, stuckFactor float64) []string {
	recommendations := append([]string{}, stageRecommendations[stageName]...)
	for _, rule := range performanceRules {
		if rule.triggered(conversionRate, durationFactor, stuckFactor) {
			recommendations = append(recommendations, rule.recommendations...)
		}
	}
	if len(recommendations) > MAX_BOTTLENECK_RECOMMENDATIONS {
		recommendations = recommendations[:MAX_BOTTLENECK_RECOMMENDATIONS]
	}
	return recommendations
}
