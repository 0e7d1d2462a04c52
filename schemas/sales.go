package schemas

import (
	"database/sql"
	"strings"
)

type CallStatus string

const (
	CALL_STATUS_SCHEDULED   CallStatus = "scheduled"
	CALL_STATUS_COMPLETED   CallStatus = "completed"
	CALL_STATUS_NO_SHOW     CallStatus = "no_show"
	CALL_STATUS_CANCELLED   CallStatus = "cancelled"
	CALL_STATUS_RESCHEDULED CallStatus = "rescheduled"
)

type ProposalStatus string

const (
	PROPOSAL_STATUS_DRAFT        ProposalStatus = "draft"
	PROPOSAL_STATUS_SENT         ProposalStatus = "sent"
	PROPOSAL_STATUS_VIEWED       ProposalStatus = "viewed"
	PROPOSAL_STATUS_UNDER_REVIEW ProposalStatus = "under_review"
	PROPOSAL_STATUS_ACCEPTED     ProposalStatus = "accepted"
	PROPOSAL_STATUS_REJECTED     ProposalStatus = "rejected"
	PROPOSAL_STATUS_EXPIRED      ProposalStatus = "expired"
)

type ContractStatus string

const (
	CONTRACT_STATUS_ACTIVE    ContractStatus = "active"
	CONTRACT_STATUS_COMPLETED ContractStatus = "completed"
	CONTRACT_STATUS_CANCELLED ContractStatus = "cancelled"
	CONTRACT_STATUS_PAUSED    ContractStatus = "paused"
	CONTRACT_STATUS_UNKNOWN   ContractStatus = "unknown"
)

// ParseContractStatus maps unknown or missing values to CONTRACT_STATUS_UNKNOWN.
func ParseContractStatus(value string) ContractStatus {
	switch s := ContractStatus(normalizeEnum(value)); s {
	case CONTRACT_STATUS_ACTIVE, CONTRACT_STATUS_COMPLETED, CONTRACT_STATUS_CANCELLED, CONTRACT_STATUS_PAUSED:
		return s
	}
	return CONTRACT_STATUS_UNKNOWN
}

func normalizeEnum(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

type Contract struct {
	ID                      int64          `json:"id"`
	ProspectID              int64          `json:"prospect_id"`
	ProposalID              sql.NullInt64  `json:"-"`
	Value                   float64        `json:"value"`
	MonthlyRecurringRevenue float64        `json:"monthly_recurring_revenue"`
	Status                  ContractStatus `json:"status"`
	SignedAt                sql.NullTime   `json:"-"`
}
