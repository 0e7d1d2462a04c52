package schemas

import (
	"strings"
	"time"
)

type SourceCategory string

const (
	SOURCE_CATEGORY_LINKEDIN      SourceCategory = "linkedin"
	SOURCE_CATEGORY_REFERRAL      SourceCategory = "referral"
	SOURCE_CATEGORY_COLD_OUTREACH SourceCategory = "cold_outreach"
	SOURCE_CATEGORY_WEBSITE       SourceCategory = "website"
	SOURCE_CATEGORY_SOCIAL_MEDIA  SourceCategory = "social_media"
	SOURCE_CATEGORY_EVENT         SourceCategory = "event"
	SOURCE_CATEGORY_OTHER         SourceCategory = "other"
)

var sourceCategories = []SourceCategory{
	SOURCE_CATEGORY_LINKEDIN,
	SOURCE_CATEGORY_REFERRAL,
	SOURCE_CATEGORY_COLD_OUTREACH,
	SOURCE_CATEGORY_WEBSITE,
	SOURCE_CATEGORY_SOCIAL_MEDIA,
	SOURCE_CATEGORY_EVENT,
	SOURCE_CATEGORY_OTHER,
}

// ParseSourceCategory maps stored values onto the closed set. Unseen values
// become SOURCE_CATEGORY_OTHER.
func ParseSourceCategory(value string) SourceCategory {
	normalized := SourceCategory(strings.ToLower(strings.TrimSpace(value)))
	for _, c := range sourceCategories {
		if c == normalized {
			return c
		}
	}
	return SOURCE_CATEGORY_OTHER
}

const (
	DEFAULT_ATTRIBUTION_WINDOW_DAYS = 30
)

type LeadSource struct {
	ID                    int64          `json:"id"`
	Name                  string         `json:"name"`
	Category              SourceCategory `json:"category"`
	AttributionWindowDays int            `json:"attribution_window_days"`
	CostPerLead           float64        `json:"cost_per_lead"`
	Active                bool           `json:"active"`
	CreatedAt             time.Time      `json:"created_at"`
}

// AttributionMetadata describes a lead source the first time it is tracked.
// Zero values fall back to category "other", the default window and no cost.
type AttributionMetadata struct {
	Category              string         `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,oneof=linkedin referral cold_outreach website social_media event other"`
	AttributionWindowDays int            `json:"attribution_window,omitempty" bson:"attribution_window,omitempty" validate:"gte=0,lte=365"`
	CostPerLead           float64        `json:"cost_per_lead,omitempty" bson:"cost_per_lead,omitempty" validate:"gte=0"`
	Extra                 map[string]any `json:"extra,omitempty" bson:"extra,omitempty"`
}

func (m AttributionMetadata) SourceCategory() SourceCategory {
	if m.Category == "" {
		return SOURCE_CATEGORY_OTHER
	}
	return ParseSourceCategory(m.Category)
}

func (m AttributionMetadata) WindowDays() int {
	if m.AttributionWindowDays <= 0 {
		return DEFAULT_ATTRIBUTION_WINDOW_DAYS
	}
	return m.AttributionWindowDays
}
