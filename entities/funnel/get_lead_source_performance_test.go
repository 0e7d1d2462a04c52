package funnel

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnel-analytics/database/storetest"
	"funnel-analytics/schemas"
)

func TestGetLeadSourcePerformance(t *testing.T) {
	store := storetest.Open(t)
	referral := store.Source("Referral", schemas.SOURCE_CATEGORY_REFERRAL, 0)
	linkedin := store.Source("LinkedIn", schemas.SOURCE_CATEGORY_LINKEDIN, 100)
	store.Source("Trade Show", schemas.SOURCE_CATEGORY_EVENT, 250)
	store.InactiveSource("Legacy Ads", schemas.SOURCE_CATEGORY_OTHER, 5)

	for i := 0; i < 10; i++ {
		p := store.Prospect(fmt.Sprintf("ref%d@example.com", i), referral, base)
		if i < 3 {
			store.Contract(p, 30000, 2500, schemas.CONTRACT_STATUS_ACTIVE, base.AddDate(0, 0, 14))
		}
	}
	for i := 0; i < 20; i++ {
		p := store.Prospect(fmt.Sprintf("li%d@example.com", i), linkedin, base)
		if i == 0 {
			// Several calls and proposals must not multiply revenue.
			store.Call(p, schemas.CALL_STATUS_NO_SHOW, base.AddDate(0, 0, 1))
			store.Call(p, schemas.CALL_STATUS_COMPLETED, base.AddDate(0, 0, 2))
			store.Proposal(p, 9000, schemas.PROPOSAL_STATUS_REJECTED)
			store.Proposal(p, 8000, schemas.PROPOSAL_STATUS_ACCEPTED)
			store.Contract(p, 8000, 700, schemas.CONTRACT_STATUS_ACTIVE, base.AddDate(0, 0, 9))
		}
	}

	engine := newTestEngine(t, store)
	result := engine.GetLeadSourcePerformance(context.Background(), testRange())
	require.True(t, result.OK())
	require.Len(t, result.Value, 3)

	ref := result.Value[0]
	assert.Equal(t, "Referral", ref.SourceName)
	assert.Equal(t, 10, ref.TotalLeads)
	assert.Equal(t, 3, ref.ContractsSigned)
	assert.InDelta(t, 90000.0, ref.TotalRevenue, 1e-6)
	assert.InDelta(t, 30.0, ref.ConversionRate, 1e-9)
	assert.InDelta(t, 30000.0, ref.AvgDealSize, 1e-6)
	assert.Zero(t, ref.TotalAcquisitionCost)
	assert.Zero(t, ref.ROI)
	assert.Zero(t, ref.PaybackPeriodMonths)

	li := result.Value[1]
	assert.Equal(t, "LinkedIn", li.SourceName)
	assert.Equal(t, 2, li.DiscoveryCalls)
	assert.Equal(t, 2, li.ProposalsSent)
	assert.Equal(t, 1, li.ContractsSigned)
	assert.InDelta(t, 8000.0, li.TotalRevenue, 1e-6)
	assert.InDelta(t, 400.0, li.RevenuePerLead, 1e-9)
	assert.InDelta(t, 2000.0, li.TotalAcquisitionCost, 1e-9)
	assert.InDelta(t, 300.0, li.ROI, 1e-9)
	assert.InDelta(t, 3.0, li.PaybackPeriodMonths, 1e-9)

	idle := result.Value[2]
	assert.Equal(t, "Trade Show", idle.SourceName)
	assert.Equal(t, schemas.SOURCE_CATEGORY_EVENT, idle.SourceCategory)
	assert.Zero(t, idle.TotalLeads)
	assert.Zero(t, idle.TotalRevenue)
	assert.Zero(t, idle.ConversionRate)
	assert.Zero(t, idle.RevenuePerLead)
	assert.Zero(t, idle.ROI)
	assert.Zero(t, idle.PaybackPeriodMonths)
}

func TestSortSourcePerformanceBreaksTiesOnVolume(t *testing.T) {
	performance := []schemas.SourcePerformance{
		{SourceName: "a", TotalRevenue: 100, TotalLeads: 1},
		{SourceName: "b", TotalRevenue: 100, TotalLeads: 5},
		{SourceName: "c", TotalRevenue: 500, TotalLeads: 0},
	}
	sortSourcePerformance(performance)
	assert.Equal(t, "c", performance[0].SourceName)
	assert.Equal(t, "b", performance[1].SourceName)
	assert.Equal(t, "a", performance[2].SourceName)
}
