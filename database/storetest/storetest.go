// Package storetest opens an in-memory funnel store seeded through small
// fixture builders. It is imported by tests only.
package storetest

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"funnel-analytics/schemas"
)

var dbCounter atomic.Int64

type Store struct {
	DB *sql.DB
	t  testing.TB
}

func Open(t testing.TB) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:funnel_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(Schema)
	require.NoError(t, err)

	return &Store{DB: db, t: t}
}

func (s *Store) insert(query string, args ...any) int64 {
	s.t.Helper()
	res, err := s.DB.Exec(query, args...)
	require.NoError(s.t, err)
	id, err := res.LastInsertId()
	require.NoError(s.t, err)
	return id
}

func (s *Store) Source(name string, category schemas.SourceCategory, costPerLead float64) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO lead_sources (source_name, source_category, cost_per_lead, is_active) VALUES (?, ?, ?, 1)`,
		name, string(category), costPerLead)
}

func (s *Store) InactiveSource(name string, category schemas.SourceCategory, costPerLead float64) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO lead_sources (source_name, source_category, cost_per_lead, is_active) VALUES (?, ?, ?, 0)`,
		name, string(category), costPerLead)
}

// Prospect inserts a prospect. A sourceID of 0 leaves the lead source unset.
func (s *Store) Prospect(email string, sourceID int64, createdAt time.Time) int64 {
	s.t.Helper()
	var source any
	if sourceID > 0 {
		source = sourceID
	}
	return s.insert(`INSERT INTO prospects (first_name, last_name, email, lead_source_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"Test", "Prospect", email, source, createdAt.UTC(), createdAt.UTC())
}

func (s *Store) Call(prospectID int64, status schemas.CallStatus, scheduledAt time.Time) int64 {
	s.t.Helper()
	var completed any
	if status == schemas.CALL_STATUS_COMPLETED {
		completed = scheduledAt.UTC()
	}
	return s.insert(`INSERT INTO discovery_calls (prospect_id, scheduled_at, completed_at, call_status) VALUES (?, ?, ?, ?)`,
		prospectID, scheduledAt.UTC(), completed, string(status))
}

func (s *Store) Proposal(prospectID int64, amount float64, status schemas.ProposalStatus) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO proposals (prospect_id, proposal_amount, proposal_status) VALUES (?, ?, ?)`,
		prospectID, amount, string(status))
}

func (s *Store) Contract(prospectID int64, value, mrr float64, status schemas.ContractStatus, signedAt time.Time) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO contracts (prospect_id, contract_value, monthly_recurring_revenue, contract_status, signed_at) VALUES (?, ?, ?, ?, ?)`,
		prospectID, value, mrr, string(status), signedAt.UTC())
}

func (s *Store) Stage(name string, order, expectedDays int) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO funnel_stages (stage_name, stage_order, expected_duration_days, is_active) VALUES (?, ?, ?, 1)`,
		name, order, expectedDays)
}

// DefaultStages seeds the canonical pipeline and returns stage ids by name.
func (s *Store) DefaultStages() map[string]int64 {
	s.t.Helper()
	stages := []struct {
		name     string
		expected int
	}{
		{schemas.STAGE_LEAD_GENERATED, 1},
		{schemas.STAGE_DISCOVERY_CALL_SCHEDULED, 3},
		{schemas.STAGE_DISCOVERY_CALL_COMPLETED, 1},
		{schemas.STAGE_PROPOSAL_SENT, 7},
		{schemas.STAGE_PROPOSAL_UNDER_REVIEW, 14},
		{schemas.STAGE_CONTRACT_NEGOTIATION, 7},
		{schemas.STAGE_CONTRACT_SIGNED, 1},
		{schemas.STAGE_LOST_DISQUALIFIED, 0},
	}
	ids := make(map[string]int64, len(stages))
	for i, stage := range stages {
		ids[stage.name] = s.Stage(stage.name, i+1, stage.expected)
	}
	return ids
}

// Journey records a stage visit. A zero exitedAt leaves the visit open.
func (s *Store) Journey(prospectID, stageID int64, enteredAt, exitedAt time.Time) int64 {
	s.t.Helper()
	var exited, hours any
	if !exitedAt.IsZero() {
		exited = exitedAt.UTC()
		hours = exitedAt.Sub(enteredAt).Hours()
	}
	return s.insert(`INSERT INTO prospect_journey (prospect_id, stage_id, entered_at, exited_at, duration_hours) VALUES (?, ?, ?, ?, ?)`,
		prospectID, stageID, enteredAt.UTC(), exited, hours)
}

func (s *Store) ProspectSource(email string) sql.NullInt64 {
	s.t.Helper()
	var id sql.NullInt64
	require.NoError(s.t, s.DB.QueryRow(`SELECT lead_source_id FROM prospects WHERE email = ?`, email).Scan(&id))
	return id
}

func (s *Store) Count(table string) int {
	s.t.Helper()
	var n int
	require.NoError(s.t, s.DB.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}
