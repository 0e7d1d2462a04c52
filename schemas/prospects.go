package schemas

import (
	"database/sql"
	"time"
)

type Prospect struct {
	ID           int64         `json:"id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Email        string        `json:"email"`
	CompanyName  string        `json:"company_name,omitempty"`
	JobTitle     string        `json:"job_title,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	Industry     string        `json:"industry,omitempty"`
	LeadSourceID sql.NullInt64 `json:"-"`
	LeadScore    int           `json:"lead_score"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type ProspectJourney struct {
	ID            int64           `json:"id"`
	ProspectID    int64           `json:"prospect_id"`
	StageID       int64           `json:"stage_id"`
	EnteredAt     time.Time       `json:"entered_at"`
	ExitedAt      sql.NullTime    `json:"-"`
	DurationHours sql.NullFloat64 `json:"-"`
	Notes         string          `json:"notes,omitempty"`
}

// Open reports whether the prospect still occupies the stage.
func (j ProspectJourney) Open() bool {
	return !j.ExitedAt.Valid
}
