package funnel

import (
	"context"
	"sort"

	"funnel-analytics/schemas"
)

type attributionGroup struct {
	attribution schemas.SourceAttribution
	dealWeight  float64
	cycleDays   float64
}

// CalculateRevenueAttribution credits active contracts signed in rng to lead
// sources. Unimplemented or unknown model names fall back to last touch; the
// result echoes both the requested and the applied model.
func (e *Engine) CalculateRevenueAttribution(ctx context.Context, rng schemas.DateRange, model string) schemas.Result[schemas.RevenueAttribution] {
	const op = "calculate_revenue_attribution"

	if model == "" {
		model = DEFAULT_ATTRIBUTION_MODEL
	}
	applied, implemented := e.models.Resolve(model)
	result := schemas.RevenueAttribution{
		RequestedModel: model,
		AppliedModel:   applied.Name(),
		Implemented:    implemented,
		Sources:        []schemas.SourceAttribution{},
	}

	contracts, err := e.repo.AttributedContracts(ctx, rng)
	if err != nil {
		return schemas.Failed(result, e.queryFailed(op, err))
	}

	if !implemented {
		e.logger.Warn().Str("op", op).Str("requested_model", model).Str("applied_model", applied.Name()).
			Bool("known_model", e.models.Known(model)).Msg("attribution model not implemented, using fallback")
	}

	result.Sources = attributeRevenue(applied.Attribute(contracts))

	e.logger.Info().Str("op", op).Str("applied_model", applied.Name()).Int("sources", len(result.Sources)).
		Msg("revenue attribution calculated")
	return schemas.Succeeded(result)
}

func attributeRevenue(contracts []AttributedContract) []schemas.SourceAttribution {
	type groupKey struct {
		name     string
		category schemas.SourceCategory
	}

	var keys []groupKey
	groups := map[groupKey]*attributionGroup{}
	for _, c := range contracts {
		key := groupKey{c.SourceName, c.SourceCategory}
		g, ok := groups[key]
		if !ok {
			g = &attributionGroup{attribution: schemas.SourceAttribution{SourceName: c.SourceName, SourceCategory: c.SourceCategory}}
			groups[key] = g
			keys = append(keys, key)
		}
		g.attribution.TotalAttributedRevenue += c.Value * c.Weight
		g.attribution.TotalMRR += c.MRR * c.Weight
		g.attribution.TotalContracts++
		g.dealWeight += c.Weight
		g.cycleDays += c.SignedAt.Sub(c.CreatedAt).Hours() / 24
	}

	var grandTotal float64
	for _, g := range groups {
		grandTotal += g.attribution.TotalAttributedRevenue
	}

	sources := make([]schemas.SourceAttribution, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		a := g.attribution
		a.AvgDealSize = safeDiv(a.TotalAttributedRevenue, g.dealWeight)
		a.AvgSalesCycleDays = safeDiv(g.cycleDays, float64(a.TotalContracts))
		a.RevenuePercentage = round2(safeDiv(a.TotalAttributedRevenue, grandTotal) * 100)
		sources = append(sources, a)
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].TotalAttributedRevenue > sources[j].TotalAttributedRevenue
	})
	return sources
}
