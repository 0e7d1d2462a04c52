package funnel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnel-analytics/database/storetest"
	"funnel-analytics/schemas"
)

// Monday.
var base = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func testRange() schemas.DateRange {
	return schemas.NewDateRange(base.AddDate(0, 0, -1), base.AddDate(0, 0, 30))
}

func newTestEngine(t *testing.T, store *storetest.Store, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return base.AddDate(0, 0, 40) })}, opts...)
	engine, err := NewEngine(context.Background(), store.DB, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return engine
}

func TestNewEngineUnreachableStore(t *testing.T) {
	store := storetest.Open(t)
	require.NoError(t, store.DB.Close())

	engine, err := NewEngine(context.Background(), store.DB, zerolog.Nop())
	assert.Nil(t, engine)
	assert.ErrorIs(t, err, ErrConnection)

	_, err = NewEngine(context.Background(), nil, zerolog.Nop())
	assert.ErrorIs(t, err, ErrConnection)
}

func TestQueryFailureIsLoggedAndReturnsEmptyResults(t *testing.T) {
	store := storetest.Open(t)
	var logs bytes.Buffer
	engine, err := NewEngine(context.Background(), store.DB, zerolog.New(&logs))
	require.NoError(t, err)
	require.NoError(t, store.DB.Close())

	ctx := context.Background()
	rng := testRange()

	conversion := engine.CalculateConversionRates(ctx, rng, nil)
	assert.False(t, conversion.OK())
	assert.Equal(t, schemas.ConversionMetrics{}, conversion.Value)
	assert.Contains(t, conversion.Error, ErrQuery.Error())

	sources := engine.GetLeadSourcePerformance(ctx, rng)
	assert.False(t, sources.OK())
	assert.NotNil(t, sources.Value)
	assert.Empty(t, sources.Value)

	bottlenecks := engine.IdentifyBottlenecks(ctx, rng)
	assert.False(t, bottlenecks.OK())
	assert.Empty(t, bottlenecks.Value)

	attribution := engine.CalculateRevenueAttribution(ctx, rng, "")
	assert.False(t, attribution.OK())
	assert.Empty(t, attribution.Value.Sources)

	tracked := engine.TrackLeadSource(ctx, "a@example.com", "LinkedIn", schemas.AttributionMetadata{})
	assert.False(t, tracked.OK())
	assert.False(t, tracked.Value)

	summary := engine.GenerateComprehensiveInsights(ctx, rng)
	assert.False(t, summary.OK())
	assert.Equal(t, "No data", summary.Value.ExecutiveSummary.TopPerformingSource)

	assert.Contains(t, logs.String(), `"op":"calculate_conversion_rates"`)
	assert.Contains(t, logs.String(), `"level":"error"`)
}
