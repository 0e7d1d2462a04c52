package funnel

import (
	"context"

	"funnel-analytics/schemas"
)

// CalculateConversionRates computes funnel counts and stage-to-stage rates for
// prospects created in rng, optionally restricted to one lead source.
func (e *Engine) CalculateConversionRates(ctx context.Context, rng schemas.DateRange, sourceID *int64) schemas.Result[schemas.ConversionMetrics] {
	const op = "calculate_conversion_rates"

	counts, err := e.repo.FunnelCounts(ctx, rng, sourceID)
	if err != nil {
		return schemas.Failed(schemas.ConversionMetrics{}, e.queryFailed(op, err))
	}
	contracts, err := e.repo.ContractFacts(ctx, rng, sourceID)
	if err != nil {
		return schemas.Failed(schemas.ConversionMetrics{}, e.queryFailed(op, err))
	}
	costPerLead, err := e.repo.CostPerLead(ctx, rng, sourceID)
	if err != nil {
		return schemas.Failed(schemas.ConversionMetrics{}, e.queryFailed(op, err))
	}

	metrics := conversionMetrics(counts, contracts, costPerLead)

	e.logger.Info().
		Str("op", op).
		Int("total_leads", metrics.TotalLeads).
		Int("contracts_signed", metrics.ContractsSigned).
		Float64("overall_conversion_rate", metrics.OverallConversionRate).
		Msg("conversion rates calculated")

	return schemas.Succeeded(metrics)
}

func conversionMetrics(counts funnelCounts, contracts []contractFact, costPerLead float64) schemas.ConversionMetrics {
	metrics := schemas.ConversionMetrics{
		TotalLeads:              counts.TotalLeads,
		DiscoveryCallsScheduled: counts.DiscoveryScheduled,
		DiscoveryCallsCompleted: counts.DiscoveryCompleted,
		ProposalsSent:           counts.ProposalsSent,
		ContractsSigned:         counts.ContractsSigned,
		LeadToDiscoveryRate:     percent(counts.DiscoveryScheduled, counts.TotalLeads),
		DiscoveryToProposalRate: percent(counts.ProposalsSent, counts.DiscoveryCompleted),
		ProposalToContractRate:  percent(counts.ContractsSigned, counts.ProposalsSent),
		OverallConversionRate:   percent(counts.ContractsSigned, counts.TotalLeads),
	}

	var cycleDays float64
	var cycles int
	for _, f := range contracts {
		metrics.TotalRevenue += f.Contract.Value
		if f.Contract.Status == schemas.CONTRACT_STATUS_ACTIVE {
			metrics.ActiveRevenue += f.Contract.Value
		}
		// Contracts missing a timestamp are left out of the cycle average.
		if days, ok := f.SalesCycleDays(); ok {
			cycleDays += days
			cycles++
		}
	}
	if len(contracts) > 0 {
		metrics.AvgDealSize = metrics.TotalRevenue / float64(len(contracts))
	}
	if cycles > 0 {
		metrics.AvgSalesCycleDays = cycleDays / float64(cycles)
	}

	if metrics.ContractsSigned > 0 {
		metrics.CostPerAcquisition = costPerLead * float64(metrics.TotalLeads) / float64(metrics.ContractsSigned)
	}
	metrics.LifetimeValue = metrics.AvgDealSize

	return metrics
}
