package schemas

import "time"

type ConversionMetrics struct {
	TotalLeads              int     `json:"total_leads"`
	DiscoveryCallsScheduled int     `json:"discovery_calls_scheduled"`
	DiscoveryCallsCompleted int     `json:"discovery_calls_completed"`
	ProposalsSent           int     `json:"proposals_sent"`
	ContractsSigned         int     `json:"contracts_signed"`
	TotalRevenue            float64 `json:"total_revenue"`
	ActiveRevenue           float64 `json:"active_revenue"`
	AvgDealSize             float64 `json:"avg_deal_size"`
	AvgSalesCycleDays       float64 `json:"avg_sales_cycle_days"`
	LeadToDiscoveryRate     float64 `json:"lead_to_discovery_rate"`
	DiscoveryToProposalRate float64 `json:"discovery_to_proposal_rate"`
	ProposalToContractRate  float64 `json:"proposal_to_contract_rate"`
	OverallConversionRate   float64 `json:"overall_conversion_rate"`
	CostPerAcquisition      float64 `json:"cost_per_acquisition"`
	LifetimeValue           float64 `json:"lifetime_value"`
}

type SourcePerformance struct {
	SourceID             int64          `json:"source_id"`
	SourceName           string         `json:"source_name"`
	SourceCategory       SourceCategory `json:"source_category"`
	CostPerLead          float64        `json:"cost_per_lead"`
	TotalLeads           int            `json:"total_leads"`
	DiscoveryCalls       int            `json:"discovery_calls"`
	ProposalsSent        int            `json:"proposals_sent"`
	ContractsSigned      int            `json:"contracts_signed"`
	TotalRevenue         float64        `json:"total_revenue"`
	AvgDealSize          float64        `json:"avg_deal_size"`
	ConversionRate       float64        `json:"conversion_rate"`
	RevenuePerLead       float64        `json:"revenue_per_lead"`
	TotalAcquisitionCost float64        `json:"total_acquisition_cost"`
	ROI                  float64        `json:"roi"`
	PaybackPeriodMonths  float64        `json:"payback_period_months"`
}

type Severity string

const (
	SEVERITY_HIGH   Severity = "HIGH"
	SEVERITY_MEDIUM Severity = "MEDIUM"
	SEVERITY_LOW    Severity = "LOW"
)

// Rank orders severities so that HIGH > MEDIUM > LOW.
func (s Severity) Rank() int {
	switch s {
	case SEVERITY_HIGH:
		return 3
	case SEVERITY_MEDIUM:
		return 2
	case SEVERITY_LOW:
		return 1
	}
	return 0
}

type BottleneckAnalysis struct {
	StageID              int64    `json:"stage_id"`
	StageName            string   `json:"stage_name"`
	StageOrder           int      `json:"stage_order"`
	ExpectedDurationDays int      `json:"expected_duration_days"`
	ProspectsEntered     int      `json:"prospects_entered"`
	ProspectsExited      int      `json:"prospects_exited"`
	ConversionRate       float64  `json:"conversion_rate"`
	AvgDurationDays      float64  `json:"avg_duration_days"`
	ProspectsStuck       int      `json:"prospects_stuck"`
	DurationFactor       float64  `json:"duration_factor"`
	StuckFactor          float64  `json:"stuck_factor"`
	Severity             Severity `json:"bottleneck_severity"`
	Recommendations      []string `json:"recommendations"`
}

type SourceAttribution struct {
	SourceName             string         `json:"source_name"`
	SourceCategory         SourceCategory `json:"source_category"`
	TotalAttributedRevenue float64        `json:"total_attributed_revenue"`
	AvgDealSize            float64        `json:"avg_deal_size"`
	TotalContracts         int            `json:"total_contracts"`
	TotalMRR               float64        `json:"total_mrr"`
	AvgSalesCycleDays      float64        `json:"avg_sales_cycle_days"`
	RevenuePercentage      float64        `json:"revenue_percentage"`
}

type RevenueAttribution struct {
	RequestedModel string              `json:"requested_model"`
	AppliedModel   string              `json:"applied_model"`
	Implemented    bool                `json:"implemented"`
	Sources        []SourceAttribution `json:"sources"`
}

type WeeklyTrend struct {
	WeekStart      time.Time `json:"week_start"`
	Leads          int       `json:"leads"`
	Contracts      int       `json:"contracts"`
	Revenue        float64   `json:"revenue"`
	ConversionRate float64   `json:"conversion_rate"`
}
