package schemas

import "time"

type Priority string

const (
	PRIORITY_HIGH   Priority = "HIGH"
	PRIORITY_MEDIUM Priority = "MEDIUM"
	PRIORITY_LOW    Priority = "LOW"
)

const (
	INSIGHT_CONVERSION_OPTIMIZATION = "CONVERSION_OPTIMIZATION"
	INSIGHT_SCALING_OPPORTUNITY     = "SCALING_OPPORTUNITY"
	INSIGHT_INVESTMENT_SCALING      = "INVESTMENT_SCALING"
	INSIGHT_COST_OPTIMIZATION       = "COST_OPTIMIZATION"
	INSIGHT_PROCESS_OPTIMIZATION    = "PROCESS_OPTIMIZATION"
	INSIGHT_VELOCITY_OPTIMIZATION   = "VELOCITY_OPTIMIZATION"
	INSIGHT_VALUE_OPTIMIZATION      = "VALUE_OPTIMIZATION"
)

type StrategicInsight struct {
	Type               string   `json:"insight_type" bson:"insight_type"`
	Priority           Priority `json:"priority" bson:"priority"`
	Title              string   `json:"title" bson:"title"`
	Description        string   `json:"description" bson:"description"`
	ImpactEstimate     string   `json:"impact_estimate" bson:"impact_estimate"`
	RecommendedActions []string `json:"recommended_actions" bson:"recommended_actions"`
	SuccessMetrics     []string `json:"success_metrics" bson:"success_metrics"`
	ConfidenceScore    float64  `json:"confidence_score" bson:"confidence_score"`
}

type PerformanceStatus string

const (
	PERFORMANCE_EXCELLENT     PerformanceStatus = "EXCELLENT"
	PERFORMANCE_GOOD          PerformanceStatus = "GOOD"
	PERFORMANCE_AVERAGE       PerformanceStatus = "AVERAGE"
	PERFORMANCE_BELOW_AVERAGE PerformanceStatus = "BELOW_AVERAGE"
	PERFORMANCE_POOR          PerformanceStatus = "POOR"
)

type BenchmarkComparison struct {
	MetricName        string            `json:"metric_name" bson:"metric_name"`
	YourValue         float64           `json:"your_value" bson:"your_value"`
	IndustryAverage   float64           `json:"industry_average" bson:"industry_average"`
	PerformanceRatio  float64           `json:"performance_ratio" bson:"performance_ratio"`
	PercentileRank    int               `json:"percentile_rank" bson:"percentile_rank"`
	PerformanceStatus PerformanceStatus `json:"performance_status" bson:"performance_status"`
}

type GrowthOpportunity struct {
	Type               string `json:"type" bson:"type"`
	Title              string `json:"title" bson:"title"`
	PotentialImpact    string `json:"potential_impact" bson:"potential_impact"`
	InvestmentRequired string `json:"investment_required" bson:"investment_required"`
	ROIProjection      string `json:"roi_projection" bson:"roi_projection"`
	RiskLevel          string `json:"risk_level" bson:"risk_level"`
}

type Risk struct {
	Type            string   `json:"type" bson:"type"`
	Title           string   `json:"title" bson:"title"`
	Description     string   `json:"description" bson:"description"`
	PotentialImpact string   `json:"potential_impact" bson:"potential_impact"`
	Mitigation      string   `json:"mitigation" bson:"mitigation"`
	Priority        Priority `json:"priority" bson:"priority"`
}

type ROIBucket struct {
	Count        int     `json:"count" bson:"count"`
	TotalSpend   float64 `json:"total_spend" bson:"total_spend"`
	TotalRevenue float64 `json:"total_revenue" bson:"total_revenue"`
}

type ROIRecommendation struct {
	Action           string   `json:"action" bson:"action"`
	Sources          []string `json:"sources" bson:"sources"`
	Recommendation   string   `json:"recommendation" bson:"recommendation"`
	ExpectedROI      string   `json:"expected_roi,omitempty" bson:"expected_roi,omitempty"`
	PotentialSavings string   `json:"potential_savings,omitempty" bson:"potential_savings,omitempty"`
}

type ROIOptimizationPlan struct {
	Distribution    map[string]ROIBucket `json:"current_roi_distribution" bson:"current_roi_distribution"`
	Recommendations []ROIRecommendation  `json:"optimization_recommendations" bson:"optimization_recommendations"`
}

type Forecast struct {
	ProjectedLeads     int     `json:"projected_leads" bson:"projected_leads"`
	ProjectedContracts int     `json:"projected_contracts" bson:"projected_contracts"`
	ProjectedRevenue   float64 `json:"projected_revenue" bson:"projected_revenue"`
	Confidence         string  `json:"confidence" bson:"confidence"`
}

type Scenario struct {
	Name          string  `json:"name" bson:"name"`
	Assumption    string  `json:"assumption" bson:"assumption"`
	Revenue90Days float64 `json:"90_day_revenue" bson:"revenue_90_days"`
	Probability   string  `json:"probability" bson:"probability"`
}

type PredictiveInsights struct {
	PeriodDays int        `json:"period_days" bson:"period_days"`
	Next30Days Forecast   `json:"30_day_forecast" bson:"next_30_days"`
	Next90Days Forecast   `json:"90_day_forecast" bson:"next_90_days"`
	Scenarios  []Scenario `json:"scenario_planning" bson:"scenarios"`
}

type ActionPlan struct {
	Days30 []string `json:"30_days" bson:"days_30"`
	Days60 []string `json:"60_days" bson:"days_60"`
	Days90 []string `json:"90_days" bson:"days_90"`
}

type ExecutiveSummary struct {
	OverallHealthScore      int      `json:"overall_health_score" bson:"overall_health_score"`
	KeyFindings             []string `json:"key_findings" bson:"key_findings"`
	CriticalActionsNeeded   int      `json:"critical_actions_needed" bson:"critical_actions_needed"`
	AreasOfExcellence       []string `json:"areas_of_excellence" bson:"areas_of_excellence"`
	AreasNeedingImprovement []string `json:"areas_needing_improvement" bson:"areas_needing_improvement"`
	RevenueOpportunity      string   `json:"revenue_opportunity" bson:"revenue_opportunity"`
	RecommendedFocus        string   `json:"recommended_focus" bson:"recommended_focus"`
}

type TargetSet struct {
	ConversionRate string `json:"conversion_rate" bson:"conversion_rate"`
	LeadVolume     string `json:"lead_volume" bson:"lead_volume"`
	Revenue        string `json:"revenue" bson:"revenue"`
}

type SuccessTargets struct {
	Days30 TargetSet `json:"30_day_targets" bson:"days_30"`
	Days90 TargetSet `json:"90_day_targets" bson:"days_90"`
}

// InsightBundle is the full output of the insights generator.
type InsightBundle struct {
	Period              DateRange             `json:"analysis_period" bson:"period"`
	GeneratedAt         time.Time             `json:"generated_at" bson:"generated_at"`
	ExecutiveSummary    ExecutiveSummary      `json:"executive_summary" bson:"executive_summary"`
	StrategicInsights   []StrategicInsight    `json:"strategic_insights" bson:"strategic_insights"`
	BenchmarkComparison []BenchmarkComparison `json:"benchmark_comparison" bson:"benchmark_comparison"`
	GrowthOpportunities []GrowthOpportunity   `json:"growth_opportunities" bson:"growth_opportunities"`
	Risks               []Risk                `json:"risk_analysis" bson:"risks"`
	ROIOptimization     ROIOptimizationPlan   `json:"roi_optimization" bson:"roi_optimization"`
	Predictions         PredictiveInsights    `json:"predictive_insights" bson:"predictions"`
	ActionPlan          ActionPlan            `json:"action_plan" bson:"action_plan"`
	SuccessMetrics      SuccessTargets        `json:"success_metrics" bson:"success_metrics"`
	Degraded            []string              `json:"degraded_inputs,omitempty" bson:"degraded_inputs,omitempty"`
}
