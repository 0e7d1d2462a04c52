// Package history archives lead source attribution writes and generated
// insight bundles in MongoDB.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"funnel-analytics/database"
	"funnel-analytics/schemas"
)

const (
	DEFAULT_SNAPSHOT_LIMIT = 10
	MAX_SNAPSHOT_LIMIT     = 100
)

type collection interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
}

type Archive struct {
	attributions collection
	snapshots    collection
	logger       zerolog.Logger
	now          func() time.Time
}

func NewArchive(db *mongo.Database, logger zerolog.Logger) *Archive {
	return newArchive(
		db.Collection(database.COLLECTION_ATTRIBUTION_HISTORY),
		db.Collection(database.COLLECTION_INSIGHT_SNAPSHOTS),
		logger,
	)
}

func newArchive(attributions, snapshots collection, logger zerolog.Logger) *Archive {
	return &Archive{
		attributions: attributions,
		snapshots:    snapshots,
		logger:       logger.With().Str("component", "history_archive").Logger(),
		now:          time.Now,
	}
}

// detached keeps archive writes alive after the request that triggered them
// has finished.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), database.MONGO_TIMEOUT)
}

func (a *Archive) RecordAttribution(ctx context.Context, event schemas.AttributionHistory) error {
	ctx, cancel := detached(ctx)
	defer cancel()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = a.now().UTC()
	}
	_, err := a.attributions.InsertOne(ctx, event)
	return err
}

func (a *Archive) SaveSnapshot(ctx context.Context, bundle schemas.InsightBundle) (schemas.InsightSnapshot, error) {
	ctx, cancel := detached(ctx)
	defer cancel()

	high := 0
	for _, in := range bundle.StrategicInsights {
		if in.Priority == schemas.PRIORITY_HIGH {
			high++
		}
	}
	snapshot := schemas.InsightSnapshot{
		ID:           uuid.NewString(),
		Period:       bundle.Period,
		HealthScore:  bundle.ExecutiveSummary.OverallHealthScore,
		InsightCount: len(bundle.StrategicInsights),
		HighPriority: high,
		Bundle:       bundle,
		CreatedAt:    a.now().UTC(),
	}

	_, err := a.snapshots.InsertOne(ctx, snapshot)
	return snapshot, err
}

// ListSnapshots returns the most recent snapshots first. limit is clamped to
// [1, MAX_SNAPSHOT_LIMIT]; 0 means DEFAULT_SNAPSHOT_LIMIT.
func (a *Archive) ListSnapshots(ctx context.Context, limit int) ([]schemas.InsightSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, database.MONGO_TIMEOUT)
	defer cancel()

	switch {
	case limit <= 0:
		limit = DEFAULT_SNAPSHOT_LIMIT
	case limit > MAX_SNAPSHOT_LIMIT:
		limit = MAX_SNAPSHOT_LIMIT
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := a.snapshots.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	snapshots := []schemas.InsightSnapshot{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// LeadSourceTracked archives a tracking event. Failures are only logged.
func (a *Archive) LeadSourceTracked(ctx context.Context, event schemas.AttributionHistory) {
	if err := a.RecordAttribution(ctx, event); err != nil {
		a.logger.Error().Err(err).Str("prospect_email", event.ProspectEmail).Msg("failed to archive attribution")
	}
}

// InsightsGenerated archives a bundle as a snapshot. Failures are only logged.
func (a *Archive) InsightsGenerated(ctx context.Context, bundle schemas.InsightBundle) {
	snapshot, err := a.SaveSnapshot(ctx, bundle)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to archive insight snapshot")
		return
	}
	a.logger.Info().Str("snapshot_id", snapshot.ID).Int("health_score", snapshot.HealthScore).Msg("insight snapshot archived")
}
