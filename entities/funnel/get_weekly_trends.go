package funnel

import (
	"context"
	"sort"
	"time"

	"funnel-analytics/schemas"
)

// weekStart truncates t to Monday 00:00 UTC of its ISO week.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}

// GetWeeklyTrends groups prospects created in rng by week. Weeks without
// leads are omitted.
func (e *Engine) GetWeeklyTrends(ctx context.Context, rng schemas.DateRange) schemas.Result[[]schemas.WeeklyTrend] {
	const op = "get_weekly_trends"

	activity, err := e.repo.ProspectActivity(ctx, rng)
	if err != nil {
		return schemas.Failed([]schemas.WeeklyTrend{}, e.queryFailed(op, err))
	}

	type week struct {
		leads     map[int64]struct{}
		contracts map[int64]struct{}
		revenue   float64
	}
	weeks := map[time.Time]*week{}
	for _, a := range activity {
		start := weekStart(a.Prospect.CreatedAt)
		w, ok := weeks[start]
		if !ok {
			w = &week{leads: map[int64]struct{}{}, contracts: map[int64]struct{}{}}
			weeks[start] = w
		}
		w.leads[a.Prospect.ID] = struct{}{}
		if a.ContractID.Valid {
			w.contracts[a.ContractID.Int64] = struct{}{}
			w.revenue += a.ContractValue.Float64
		}
	}

	trends := make([]schemas.WeeklyTrend, 0, len(weeks))
	for start, w := range weeks {
		trends = append(trends, schemas.WeeklyTrend{
			WeekStart:      start,
			Leads:          len(w.leads),
			Contracts:      len(w.contracts),
			Revenue:        w.revenue,
			ConversionRate: round2(percent(len(w.contracts), len(w.leads))),
		})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].WeekStart.Before(trends[j].WeekStart) })

	e.logger.Info().Str("op", op).Int("weeks", len(trends)).Msg("weekly trends calculated")
	return schemas.Succeeded(trends)
}
