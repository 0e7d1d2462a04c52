package schemas

const (
	STAGE_LEAD_GENERATED           = "Lead Generated"
	STAGE_DISCOVERY_CALL_SCHEDULED = "Discovery Call Scheduled"
	STAGE_DISCOVERY_CALL_COMPLETED = "Discovery Call Completed"
	STAGE_PROPOSAL_SENT            = "Proposal Sent"
	STAGE_PROPOSAL_UNDER_REVIEW    = "Proposal Under Review"
	STAGE_CONTRACT_NEGOTIATION     = "Contract Negotiation"
	STAGE_CONTRACT_SIGNED          = "Contract Signed"
	STAGE_LOST_DISQUALIFIED        = "Lost/Disqualified"
)

// FunnelStage is static reference data. Order defines stage adjacency.
type FunnelStage struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Order                int    `json:"order"`
	Description          string `json:"description,omitempty"`
	ExpectedDurationDays int    `json:"expected_duration_days"`
	Active               bool   `json:"active"`
}

func (s FunnelStage) Terminal() bool {
	return s.Name == STAGE_LOST_DISQUALIFIED
}
