package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type AttributionHistory struct {
	ID            bson.ObjectID       `json:"id,omitempty" bson:"_id,omitempty"`
	ProspectEmail string              `json:"prospect_email" bson:"prospect_email"`
	SourceID      int64               `json:"source_id" bson:"source_id"`
	SourceName    string              `json:"source_name" bson:"source_name"`
	SourceCreated bool                `json:"source_created" bson:"source_created"`
	Matched       bool                `json:"matched" bson:"matched"`
	Metadata      AttributionMetadata `json:"metadata" bson:"metadata"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
}

type InsightSnapshot struct {
	ID           string        `json:"id" bson:"_id"`
	Period       DateRange     `json:"period" bson:"period"`
	HealthScore  int           `json:"health_score" bson:"health_score"`
	InsightCount int           `json:"insight_count" bson:"insight_count"`
	HighPriority int           `json:"high_priority" bson:"high_priority"`
	Bundle       InsightBundle `json:"bundle" bson:"bundle"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}
