package schemas

import "time"

type FunnelRates struct {
	LeadToDiscovery     float64 `json:"lead_to_discovery"`
	DiscoveryToProposal float64 `json:"discovery_to_proposal"`
	ProposalToContract  float64 `json:"proposal_to_contract"`
}

type ConversionSummary struct {
	TotalLeads            int         `json:"total_leads"`
	ContractsSigned       int         `json:"contracts_signed"`
	TotalRevenue          float64     `json:"total_revenue"`
	OverallConversionRate float64     `json:"overall_conversion_rate"`
	AvgDealSize           float64     `json:"avg_deal_size"`
	AvgSalesCycleDays     float64     `json:"avg_sales_cycle_days"`
	FunnelRates           FunnelRates `json:"funnel_conversion_rates"`
}

type SourceSummary struct {
	TopByRevenue  []SourcePerformance `json:"top_sources_by_revenue"`
	TopByVolume   []SourcePerformance `json:"top_sources_by_volume"`
	MostEfficient []SourcePerformance `json:"most_efficient_sources"`
}

type CriticalStage struct {
	Stage          string  `json:"stage"`
	ConversionRate float64 `json:"conversion_rate"`
	ProspectsStuck int     `json:"prospects_stuck"`
}

type BottleneckSummary struct {
	HighPriorityCount        int             `json:"high_priority_count"`
	CriticalStages           []CriticalStage `json:"critical_stages"`
	ImprovementOpportunities []string        `json:"improvement_opportunities"`
}

type AttributionSummary struct {
	TopRevenueSources    []SourceAttribution `json:"top_revenue_sources"`
	RevenueConcentration float64             `json:"revenue_concentration"`
}

type EngineExecutiveSummary struct {
	TotalPipelineValue  float64 `json:"total_pipeline_value"`
	ConversionHealth    string  `json:"conversion_health"`
	PrimaryBottleneck   string  `json:"primary_bottleneck"`
	TopPerformingSource string  `json:"top_performing_source"`
}

// EngineInsights is the engine-level summary; the insights generator produces
// the richer InsightBundle.
type EngineInsights struct {
	Period             DateRange              `json:"period"`
	GeneratedAt        time.Time              `json:"generated_at"`
	ExecutiveSummary   EngineExecutiveSummary `json:"executive_summary"`
	Conversion         ConversionSummary      `json:"conversion_metrics"`
	Sources            SourceSummary          `json:"lead_source_performance"`
	Bottlenecks        BottleneckSummary      `json:"bottleneck_analysis"`
	Attribution        AttributionSummary     `json:"revenue_attribution"`
	Trends             []WeeklyTrend          `json:"key_metric_trends"`
	KeyRecommendations []string               `json:"key_recommendations"`
}
