package funnel

import (
	"context"

	"funnel-analytics/schemas"
)

type stageAccumulator struct {
	stage         schemas.FunnelStage
	entered       map[int64]struct{}
	exited        map[int64]struct{}
	stuck         map[int64]struct{}
	durationDays  float64
	durationCount int
}

// IdentifyBottlenecks diagnoses every active stage except the terminal
// lost/disqualified stage, in stage order. Open visits count their elapsed
// time toward the stage's average duration.
func (e *Engine) IdentifyBottlenecks(ctx context.Context, rng schemas.DateRange) schemas.Result[[]schemas.BottleneckAnalysis] {
	const op = "identify_bottlenecks"

	visits, err := e.repo.StageVisits(ctx, rng)
	if err != nil {
		return schemas.Failed([]schemas.BottleneckAnalysis{}, e.queryFailed(op, err))
	}

	now := e.now()
	var order []int64
	stages := make(map[int64]*stageAccumulator)

	for _, v := range visits {
		acc, ok := stages[v.Stage.ID]
		if !ok {
			acc = &stageAccumulator{
				stage:   v.Stage,
				entered: map[int64]struct{}{},
				exited:  map[int64]struct{}{},
				stuck:   map[int64]struct{}{},
			}
			stages[v.Stage.ID] = acc
			order = append(order, v.Stage.ID)
		}
		if !v.Visited {
			continue
		}

		j := v.Journey
		acc.entered[j.ProspectID] = struct{}{}

		var elapsedDays float64
		if j.Open() {
			elapsedDays = now.Sub(j.EnteredAt).Hours() / 24
			// Without an expected duration there is no threshold to be stuck past.
			if v.ExpectedDefined && elapsedDays > float64(acc.stage.ExpectedDurationDays) {
				acc.stuck[j.ProspectID] = struct{}{}
			}
		} else {
			acc.exited[j.ProspectID] = struct{}{}
			elapsedDays = j.ExitedAt.Time.Sub(j.EnteredAt).Hours() / 24
		}
		acc.durationDays += elapsedDays
		acc.durationCount++
	}

	bottlenecks := make([]schemas.BottleneckAnalysis, 0, len(order))
	high := 0
	for _, id := range order {
		acc := stages[id]
		avgDuration := safeDiv(acc.durationDays, float64(acc.durationCount))
		analysis := analyzeStage(acc.stage, len(acc.entered), len(acc.exited), len(acc.stuck), avgDuration)
		if analysis.Severity == schemas.SEVERITY_HIGH {
			high++
		}
		bottlenecks = append(bottlenecks, analysis)
	}

	e.logger.Info().Str("op", op).Int("stages", len(bottlenecks)).Int("high_severity", high).Msg("bottlenecks identified")
	return schemas.Succeeded(bottlenecks)
}

func analyzeStage(stage schemas.FunnelStage, entered, exited, stuck int, avgDurationDays float64) schemas.BottleneckAnalysis {
	analysis := schemas.BottleneckAnalysis{
		StageID:              stage.ID,
		StageName:            stage.Name,
		StageOrder:           stage.Order,
		ExpectedDurationDays: stage.ExpectedDurationDays,
		ProspectsEntered:     entered,
		ProspectsExited:      exited,
		ProspectsStuck:       stuck,
		AvgDurationDays:      avgDurationDays,
		ConversionRate:       percent(exited, entered),
		DurationFactor:       1,
	}

	if stage.ExpectedDurationDays > 0 {
		analysis.DurationFactor = avgDurationDays / float64(stage.ExpectedDurationDays)
	}
	if entered > 0 {
		analysis.StuckFactor = float64(stuck) / float64(entered)
	}

	analysis.Severity = ClassifySeverity(analysis.ConversionRate, analysis.DurationFactor, analysis.StuckFactor)
	analysis.Recommendations = BottleneckRecommendations(stage.Name, analysis.ConversionRate, analysis.DurationFactor, analysis.StuckFactor)
	return analysis
}

// ClassifySeverity applies the HIGH rule first, then MEDIUM, else LOW.
func ClassifySeverity(conversionRate, durationFactor, stuckFactor float64) schemas.Severity {
	switch {
	case conversionRate < 50 || durationFactor > 2 || stuckFactor > 0.3:
		return schemas.SEVERITY_HIGH
	case conversionRate < 70 || durationFactor > 1.5 || stuckFactor > 0.2:
		return schemas.SEVERITY_MEDIUM
	default:
		return schemas.SEVERITY_LOW
	}
}
