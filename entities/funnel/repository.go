package funnel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"funnel-analytics/database"
	"funnel-analytics/schemas"
)

// Repository runs read-only aggregate queries plus the single lead source
// tracking write. Statements use only portable SQL so the same text runs
// against MySQL in production and SQLite under test; date arithmetic is done
// in Go from raw timestamps.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

type funnelCounts struct {
	TotalLeads         int
	DiscoveryScheduled int
	DiscoveryCompleted int
	ProposalsSent      int
	ContractsSigned    int
}

// contractFact is a contract of a prospect created in the range. Nullable
// columns stay nullable so one incomplete row cannot fail the whole report.
type contractFact struct {
	Contract          schemas.Contract
	ProspectCreatedAt sql.NullTime
}

// SalesCycleDays is the time from prospect creation to signature, when both
// timestamps are known.
func (f contractFact) SalesCycleDays() (float64, bool) {
	if !f.Contract.SignedAt.Valid || !f.ProspectCreatedAt.Valid {
		return 0, false
	}
	return f.Contract.SignedAt.Time.Sub(f.ProspectCreatedAt.Time).Hours() / 24, true
}

type sourceActivity struct {
	Source         schemas.LeadSource
	TotalLeads     int
	DiscoveryCalls int
	ProposalsSent  int
	Contracts      int
}

type sourceRevenue struct {
	Total   float64
	Average float64
}

// stageVisit is one journey row joined to its stage. Visited is false for the
// placeholder row of a stage nobody entered in the range.
type stageVisit struct {
	Stage           schemas.FunnelStage
	ExpectedDefined bool
	Visited         bool
	Journey         schemas.ProspectJourney
}

// AttributedContract is an active contract credited to a lead source. Weight
// is the share of the contract an attribution model assigns to that source.
type AttributedContract struct {
	SourceID       int64
	SourceName     string
	SourceCategory schemas.SourceCategory
	ContractID     int64
	Value          float64
	MRR            float64
	SignedAt       time.Time
	CreatedAt      time.Time
	Weight         float64
}

type prospectActivity struct {
	Prospect      schemas.Prospect
	ContractID    sql.NullInt64
	ContractValue sql.NullFloat64
}

func rangeArgs(rng schemas.DateRange) []any {
	return []any{rng.Start.UTC(), rng.End.UTC()}
}

func sourceFilter(column string, sourceID *int64, args []any) (string, []any) {
	if sourceID == nil {
		return "", args
	}
	return fmt.Sprintf(" AND %s = ?", column), append(args, *sourceID)
}

func (r *Repository) FunnelCounts(ctx context.Context, rng schemas.DateRange, sourceID *int64) (funnelCounts, error) {
	var counts funnelCounts

	filter, args := sourceFilter("p.lead_source_id", sourceID, append([]any{string(schemas.CALL_STATUS_COMPLETED)}, rangeArgs(rng)...))
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN EXISTS (SELECT 1 FROM ` + database.TABLE_DISCOVERY_CALLS + ` dc WHERE dc.prospect_id = p.prospect_id) THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN EXISTS (SELECT 1 FROM ` + database.TABLE_DISCOVERY_CALLS + ` dc WHERE dc.prospect_id = p.prospect_id AND dc.call_status = ?) THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN EXISTS (SELECT 1 FROM ` + database.TABLE_PROPOSALS + ` pr WHERE pr.prospect_id = p.prospect_id) THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN EXISTS (SELECT 1 FROM ` + database.TABLE_CONTRACTS + ` c WHERE c.prospect_id = p.prospect_id) THEN 1 ELSE 0 END), 0)
		FROM ` + database.TABLE_PROSPECTS + ` p
		WHERE p.created_at BETWEEN ? AND ?` + filter

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&counts.TotalLeads,
		&counts.DiscoveryScheduled,
		&counts.DiscoveryCompleted,
		&counts.ProposalsSent,
		&counts.ContractsSigned,
	)
	return counts, err
}

func (r *Repository) ContractFacts(ctx context.Context, rng schemas.DateRange, sourceID *int64) ([]contractFact, error) {
	filter, args := sourceFilter("p.lead_source_id", sourceID, rangeArgs(rng))
	query := `
		SELECT c.contract_id, c.prospect_id, c.proposal_id, c.contract_value, c.monthly_recurring_revenue,
			c.contract_status, c.signed_at, p.created_at
		FROM ` + database.TABLE_CONTRACTS + ` c
		JOIN ` + database.TABLE_PROSPECTS + ` p ON p.prospect_id = c.prospect_id
		WHERE p.created_at BETWEEN ? AND ?` + filter

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []contractFact
	for rows.Next() {
		var f contractFact
		var value, mrr sql.NullFloat64
		var status sql.NullString
		if err := rows.Scan(&f.Contract.ID, &f.Contract.ProspectID, &f.Contract.ProposalID, &value, &mrr,
			&status, &f.Contract.SignedAt, &f.ProspectCreatedAt); err != nil {
			return nil, err
		}
		f.Contract.Value = value.Float64
		f.Contract.MonthlyRecurringRevenue = mrr.Float64
		f.Contract.Status = schemas.ParseContractStatus(status.String)
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

// CostPerLead returns the source's configured cost when filtered, otherwise
// the mean configured cost of the sources that produced leads in the range.
func (r *Repository) CostPerLead(ctx context.Context, rng schemas.DateRange, sourceID *int64) (float64, error) {
	var cost float64

	if sourceID != nil {
		err := r.db.QueryRowContext(ctx,
			`SELECT cost_per_lead FROM `+database.TABLE_LEAD_SOURCES+` WHERE source_id = ?`, *sourceID,
		).Scan(&cost)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return cost, err
	}

	query := `
		SELECT COALESCE(AVG(ls.cost_per_lead), 0)
		FROM ` + database.TABLE_LEAD_SOURCES + ` ls
		WHERE ls.source_id IN (
			SELECT p.lead_source_id FROM ` + database.TABLE_PROSPECTS + ` p
			WHERE p.created_at BETWEEN ? AND ? AND p.lead_source_id IS NOT NULL
		)`
	err := r.db.QueryRowContext(ctx, query, rangeArgs(rng)...).Scan(&cost)
	return cost, err
}

func (r *Repository) SourceActivity(ctx context.Context, rng schemas.DateRange) ([]sourceActivity, error) {
	query := `
		SELECT ls.source_id, ls.source_name, ls.source_category, ls.cost_per_lead,
			COUNT(DISTINCT p.prospect_id),
			COUNT(DISTINCT dc.call_id),
			COUNT(DISTINCT pr.proposal_id),
			COUNT(DISTINCT c.contract_id)
		FROM ` + database.TABLE_LEAD_SOURCES + ` ls
		LEFT JOIN ` + database.TABLE_PROSPECTS + ` p ON p.lead_source_id = ls.source_id AND p.created_at BETWEEN ? AND ?
		LEFT JOIN ` + database.TABLE_DISCOVERY_CALLS + ` dc ON dc.prospect_id = p.prospect_id
		LEFT JOIN ` + database.TABLE_PROPOSALS + ` pr ON pr.prospect_id = p.prospect_id
		LEFT JOIN ` + database.TABLE_CONTRACTS + ` c ON c.prospect_id = p.prospect_id
		WHERE ls.is_active = 1
		GROUP BY ls.source_id, ls.source_name, ls.source_category, ls.cost_per_lead`

	rows, err := r.db.QueryContext(ctx, query, rangeArgs(rng)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activity []sourceActivity
	for rows.Next() {
		var a sourceActivity
		var category string
		var cost sql.NullFloat64
		if err := rows.Scan(&a.Source.ID, &a.Source.Name, &category, &cost,
			&a.TotalLeads, &a.DiscoveryCalls, &a.ProposalsSent, &a.Contracts); err != nil {
			return nil, err
		}
		a.Source.Category = schemas.ParseSourceCategory(category)
		a.Source.CostPerLead = cost.Float64
		a.Source.Active = true
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

// SourceRevenue sums contract value per source in a query of its own so the
// call and proposal joins cannot multiply it.
func (r *Repository) SourceRevenue(ctx context.Context, rng schemas.DateRange) (map[int64]sourceRevenue, error) {
	query := `
		SELECT p.lead_source_id, COALESCE(SUM(c.contract_value), 0), COALESCE(AVG(c.contract_value), 0)
		FROM ` + database.TABLE_CONTRACTS + ` c
		JOIN ` + database.TABLE_PROSPECTS + ` p ON p.prospect_id = c.prospect_id
		WHERE p.created_at BETWEEN ? AND ? AND p.lead_source_id IS NOT NULL
		GROUP BY p.lead_source_id`

	rows, err := r.db.QueryContext(ctx, query, rangeArgs(rng)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revenue := make(map[int64]sourceRevenue)
	for rows.Next() {
		var id int64
		var rev sourceRevenue
		if err := rows.Scan(&id, &rev.Total, &rev.Average); err != nil {
			return nil, err
		}
		revenue[id] = rev
	}
	return revenue, rows.Err()
}

// StageVisits returns one row per visit entered in the range, plus one row
// without a visit for every active stage nobody entered. Terminal stages are
// left out.
func (r *Repository) StageVisits(ctx context.Context, rng schemas.DateRange) ([]stageVisit, error) {
	query := `
		SELECT fs.stage_id, fs.stage_name, fs.stage_order, fs.expected_duration_days,
			pj.journey_id, pj.prospect_id, pj.entered_at, pj.exited_at, pj.duration_hours
		FROM ` + database.TABLE_FUNNEL_STAGES + ` fs
		LEFT JOIN ` + database.TABLE_PROSPECT_JOURNEY + ` pj ON pj.stage_id = fs.stage_id AND pj.entered_at BETWEEN ? AND ?
		WHERE fs.is_active = 1
		ORDER BY fs.stage_order, fs.stage_id`

	rows, err := r.db.QueryContext(ctx, query, rangeArgs(rng)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []stageVisit
	for rows.Next() {
		var v stageVisit
		var expected, journeyID, prospectID sql.NullInt64
		var enteredAt sql.NullTime
		if err := rows.Scan(&v.Stage.ID, &v.Stage.Name, &v.Stage.Order, &expected,
			&journeyID, &prospectID, &enteredAt, &v.Journey.ExitedAt, &v.Journey.DurationHours); err != nil {
			return nil, err
		}
		if v.Stage.Terminal() {
			continue
		}
		v.Stage.ExpectedDurationDays = int(expected.Int64)
		v.Stage.Active = true
		v.ExpectedDefined = expected.Valid
		v.Visited = prospectID.Valid && enteredAt.Valid
		v.Journey.ID = journeyID.Int64
		v.Journey.ProspectID = prospectID.Int64
		v.Journey.StageID = v.Stage.ID
		v.Journey.EnteredAt = enteredAt.Time
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// AttributedContracts lists active contracts signed in the range whose
// prospect carries a lead source.
func (r *Repository) AttributedContracts(ctx context.Context, rng schemas.DateRange) ([]AttributedContract, error) {
	query := `
		SELECT ls.source_id, ls.source_name, ls.source_category,
			c.contract_id, c.contract_value, c.monthly_recurring_revenue, c.signed_at, p.created_at
		FROM ` + database.TABLE_CONTRACTS + ` c
		JOIN ` + database.TABLE_PROSPECTS + ` p ON p.prospect_id = c.prospect_id
		JOIN ` + database.TABLE_LEAD_SOURCES + ` ls ON ls.source_id = p.lead_source_id
		WHERE c.signed_at BETWEEN ? AND ? AND c.contract_status = ?
		ORDER BY ls.source_name, c.signed_at`

	args := append(rangeArgs(rng), string(schemas.CONTRACT_STATUS_ACTIVE))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []AttributedContract
	for rows.Next() {
		var c AttributedContract
		var category string
		var mrr sql.NullFloat64
		if err := rows.Scan(&c.SourceID, &c.SourceName, &category,
			&c.ContractID, &c.Value, &mrr, &c.SignedAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.SourceCategory = schemas.ParseSourceCategory(category)
		c.MRR = mrr.Float64
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (r *Repository) ProspectActivity(ctx context.Context, rng schemas.DateRange) ([]prospectActivity, error) {
	query := `
		SELECT p.prospect_id, p.lead_source_id, p.created_at, c.contract_id, c.contract_value
		FROM ` + database.TABLE_PROSPECTS + ` p
		LEFT JOIN ` + database.TABLE_CONTRACTS + ` c ON c.prospect_id = p.prospect_id
		WHERE p.created_at BETWEEN ? AND ?`

	rows, err := r.db.QueryContext(ctx, query, rangeArgs(rng)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activity []prospectActivity
	for rows.Next() {
		var a prospectActivity
		if err := rows.Scan(&a.Prospect.ID, &a.Prospect.LeadSourceID, &a.Prospect.CreatedAt, &a.ContractID, &a.ContractValue); err != nil {
			return nil, err
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

type trackOutcome struct {
	SourceID      int64
	SourceCreated bool
	Matched       bool
}

// TrackLeadSource resolves the source by name, creating it when missing, and
// points the prospect with the given email at it. Both steps share one
// transaction.
func (r *Repository) TrackLeadSource(ctx context.Context, email, sourceName string, meta schemas.AttributionMetadata, now time.Time) (trackOutcome, error) {
	var outcome trackOutcome

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return outcome, err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`SELECT source_id FROM `+database.TABLE_LEAD_SOURCES+` WHERE source_name = ?`, sourceName,
	).Scan(&outcome.SourceID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			`INSERT INTO `+database.TABLE_LEAD_SOURCES+` (source_name, source_category, attribution_window_days, cost_per_lead, created_at, is_active) VALUES (?, ?, ?, ?, ?, 1)`,
			sourceName, string(meta.SourceCategory()), meta.WindowDays(), meta.CostPerLead, now.UTC(),
		)
		if err != nil {
			return outcome, err
		}
		if outcome.SourceID, err = res.LastInsertId(); err != nil {
			return outcome, err
		}
		outcome.SourceCreated = true
	case err != nil:
		return outcome, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE `+database.TABLE_PROSPECTS+` SET lead_source_id = ?, updated_at = ? WHERE email = ?`,
		outcome.SourceID, now.UTC(), email,
	)
	if err != nil {
		return outcome, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return outcome, err
	}
	outcome.Matched = affected > 0

	return outcome, tx.Commit()
}
