package funnel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnel-analytics/database/storetest"
	"funnel-analytics/schemas"
)

func seedAttribution(t *testing.T) *storetest.Store {
	t.Helper()
	store := storetest.Open(t)
	referral := store.Source("Referral", schemas.SOURCE_CATEGORY_REFERRAL, 0)
	linkedin := store.Source("LinkedIn", schemas.SOURCE_CATEGORY_LINKEDIN, 80)
	website := store.Source("Website", schemas.SOURCE_CATEGORY_WEBSITE, 15)

	r1 := store.Prospect("r1@example.com", referral, base)
	r2 := store.Prospect("r2@example.com", referral, base)
	l1 := store.Prospect("l1@example.com", linkedin, base)
	w1 := store.Prospect("w1@example.com", website, base)
	orphan := store.Prospect("orphan@example.com", 0, base)

	store.Contract(r1, 20000, 1500, schemas.CONTRACT_STATUS_ACTIVE, base.AddDate(0, 0, 10))
	store.Contract(r2, 40000, 3000, schemas.CONTRACT_STATUS_ACTIVE, base.AddDate(0, 0, 20))
	store.Contract(l1, 33333.33, 2000, schemas.CONTRACT_STATUS_ACTIVE, base.AddDate(0, 0, 5))
	store.Contract(w1, 10000, 900, schemas.CONTRACT_STATUS_ACTIVE, base.AddDate(0, 0, 3))
	store.Contract(w1, 50000, 0, schemas.CONTRACT_STATUS_PAUSED, base.AddDate(0, 0, 3))
	store.Contract(orphan, 70000, 0, schemas.CONTRACT_STATUS_ACTIVE, base.AddDate(0, 0, 3))
	// Signed outside the range.
	store.Contract(l1, 90000, 0, schemas.CONTRACT_STATUS_ACTIVE, base.AddDate(0, 2, 0))
	return store
}

func TestCalculateRevenueAttribution(t *testing.T) {
	engine := newTestEngine(t, seedAttribution(t))

	result := engine.CalculateRevenueAttribution(context.Background(), testRange(), "")
	require.True(t, result.OK())
	assert.Equal(t, MODEL_FIRST_TOUCH, result.Value.RequestedModel)
	assert.Equal(t, MODEL_LAST_TOUCH, result.Value.AppliedModel)
	assert.False(t, result.Value.Implemented)

	sources := result.Value.Sources
	require.Len(t, sources, 3)

	assert.Equal(t, "Referral", sources[0].SourceName)
	assert.Equal(t, schemas.SOURCE_CATEGORY_REFERRAL, sources[0].SourceCategory)
	assert.Equal(t, 2, sources[0].TotalContracts)
	assert.InDelta(t, 60000.0, sources[0].TotalAttributedRevenue, 1e-6)
	assert.InDelta(t, 30000.0, sources[0].AvgDealSize, 1e-6)
	assert.InDelta(t, 4500.0, sources[0].TotalMRR, 1e-6)
	assert.InDelta(t, 15.0, sources[0].AvgSalesCycleDays, 1e-9)

	assert.Equal(t, "LinkedIn", sources[1].SourceName)
	assert.Equal(t, "Website", sources[2].SourceName)
	assert.InDelta(t, 10000.0, sources[2].TotalAttributedRevenue, 1e-6)

	var total float64
	for i, s := range sources {
		total += s.RevenuePercentage
		if i > 0 {
			assert.GreaterOrEqual(t, sources[i-1].TotalAttributedRevenue, s.TotalAttributedRevenue)
		}
	}
	assert.InDelta(t, 100.0, total, 0.02)
}

func TestCalculateRevenueAttributionModels(t *testing.T) {
	engine := newTestEngine(t, seedAttribution(t))
	ctx := context.Background()

	baseline := engine.CalculateRevenueAttribution(ctx, testRange(), MODEL_FIRST_TOUCH)
	require.True(t, baseline.OK())

	for _, model := range []string{MODEL_LINEAR, MODEL_TIME_DECAY, MODEL_POSITION_BASED, "made_up"} {
		result := engine.CalculateRevenueAttribution(ctx, testRange(), model)
		require.True(t, result.OK(), model)
		assert.Equal(t, model, result.Value.RequestedModel)
		assert.Equal(t, MODEL_LAST_TOUCH, result.Value.AppliedModel)
		assert.False(t, result.Value.Implemented)
		assert.Equal(t, baseline.Value.Sources, result.Value.Sources)
	}

	lastTouch := engine.CalculateRevenueAttribution(ctx, testRange(), MODEL_LAST_TOUCH)
	require.True(t, lastTouch.OK())
	assert.True(t, lastTouch.Value.Implemented)
}

func TestCalculateRevenueAttributionEmpty(t *testing.T) {
	engine := newTestEngine(t, storetest.Open(t))

	result := engine.CalculateRevenueAttribution(context.Background(), testRange(), "")
	require.True(t, result.OK())
	assert.NotNil(t, result.Value.Sources)
	assert.Empty(t, result.Value.Sources)
}

type splitModel struct{}

func (splitModel) Name() string { return "split" }

func (splitModel) Attribute(contracts []AttributedContract) []AttributedContract {
	var out []AttributedContract
	for _, c := range contracts {
		half := c
		half.Weight = 0.5
		other := half
		other.SourceName = "Shared"
		other.SourceCategory = schemas.SOURCE_CATEGORY_OTHER
		out = append(out, half, other)
	}
	return out
}

func TestModelRegistryCustomModel(t *testing.T) {
	registry := DefaultModelRegistry()
	registry.Register(splitModel{})
	engine := newTestEngine(t, seedAttribution(t), WithModels(registry))

	result := engine.CalculateRevenueAttribution(context.Background(), testRange(), "split")
	require.True(t, result.OK())
	assert.True(t, result.Value.Implemented)
	require.NotEmpty(t, result.Value.Sources)
	assert.Equal(t, "Shared", result.Value.Sources[0].SourceName)
	assert.InDelta(t, 50.0, result.Value.Sources[0].RevenuePercentage, 0.01)
}

func TestModelRegistryResolve(t *testing.T) {
	registry := DefaultModelRegistry()

	model, implemented := registry.Resolve(" Last_Touch ")
	assert.True(t, implemented)
	assert.Equal(t, MODEL_LAST_TOUCH, model.Name())

	model, implemented = registry.Resolve(MODEL_FIRST_TOUCH)
	assert.False(t, implemented)
	assert.Equal(t, MODEL_LAST_TOUCH, model.Name())
	assert.True(t, registry.Known(MODEL_FIRST_TOUCH))
	assert.False(t, registry.Known("made_up"))
}
