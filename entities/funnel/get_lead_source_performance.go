package funnel

import (
	"context"
	"sort"

	"funnel-analytics/schemas"
)

// GetLeadSourcePerformance reports every active lead source, including those
// with no leads in rng, ordered by revenue then lead volume.
func (e *Engine) GetLeadSourcePerformance(ctx context.Context, rng schemas.DateRange) schemas.Result[[]schemas.SourcePerformance] {
	const op = "get_lead_source_performance"

	activity, err := e.repo.SourceActivity(ctx, rng)
	if err != nil {
		return schemas.Failed([]schemas.SourcePerformance{}, e.queryFailed(op, err))
	}
	revenue, err := e.repo.SourceRevenue(ctx, rng)
	if err != nil {
		return schemas.Failed([]schemas.SourcePerformance{}, e.queryFailed(op, err))
	}

	performance := make([]schemas.SourcePerformance, 0, len(activity))
	for _, a := range activity {
		performance = append(performance, sourcePerformance(a, revenue[a.Source.ID]))
	}
	sortSourcePerformance(performance)

	e.logger.Info().Str("op", op).Int("sources", len(performance)).Msg("lead source performance calculated")
	return schemas.Succeeded(performance)
}

func sourcePerformance(a sourceActivity, rev sourceRevenue) schemas.SourcePerformance {
	p := schemas.SourcePerformance{
		SourceID:        a.Source.ID,
		SourceName:      a.Source.Name,
		SourceCategory:  a.Source.Category,
		CostPerLead:     a.Source.CostPerLead,
		TotalLeads:      a.TotalLeads,
		DiscoveryCalls:  a.DiscoveryCalls,
		ProposalsSent:   a.ProposalsSent,
		ContractsSigned: a.Contracts,
		TotalRevenue:    rev.Total,
		AvgDealSize:     rev.Average,
		ConversionRate:  round2(percent(a.Contracts, a.TotalLeads)),
	}

	p.RevenuePerLead = safeDiv(p.TotalRevenue, float64(p.TotalLeads))
	p.TotalAcquisitionCost = p.CostPerLead * float64(p.TotalLeads)
	if p.TotalAcquisitionCost > 0 {
		p.ROI = (p.TotalRevenue - p.TotalAcquisitionCost) / p.TotalAcquisitionCost * 100
	}
	if p.RevenuePerLead > 0 {
		p.PaybackPeriodMonths = p.CostPerLead / (p.RevenuePerLead / 12)
	}
	return p
}

func sortSourcePerformance(performance []schemas.SourcePerformance) {
	sort.SliceStable(performance, func(i, j int) bool {
		a, b := performance[i], performance[j]
		if a.TotalRevenue != b.TotalRevenue {
			return a.TotalRevenue > b.TotalRevenue
		}
		if a.TotalLeads != b.TotalLeads {
			return a.TotalLeads > b.TotalLeads
		}
		return a.SourceName < b.SourceName
	})
}
