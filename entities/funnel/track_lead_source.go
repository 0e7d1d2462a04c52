package funnel

import (
	"context"
	"strings"

	"funnel-analytics/schemas"
)

// TrackListener is notified after a lead source assignment commits.
// Listener failures never change the tracking result.
type TrackListener interface {
	LeadSourceTracked(ctx context.Context, event schemas.AttributionHistory)
}

func WithTrackListeners(listeners ...TrackListener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, listeners...) }
}

// TrackLeadSource points the prospect identified by email at the named lead
// source, creating the source from meta when it does not exist yet. Repeating
// the call with the same arguments changes nothing.
func (e *Engine) TrackLeadSource(ctx context.Context, email, sourceName string, meta schemas.AttributionMetadata) schemas.Result[bool] {
	const op = "track_lead_source"

	email = strings.TrimSpace(email)
	sourceName = strings.TrimSpace(sourceName)
	now := e.now()

	outcome, err := e.repo.TrackLeadSource(ctx, email, sourceName, meta, now)
	if err != nil {
		return schemas.Failed(false, e.queryFailed(op, err))
	}

	log := e.logger.Info()
	if !outcome.Matched {
		log = e.logger.Warn()
	}
	log.Str("op", op).
		Str("source_name", sourceName).
		Int64("source_id", outcome.SourceID).
		Bool("source_created", outcome.SourceCreated).
		Bool("prospect_matched", outcome.Matched).
		Msg("lead source tracked")

	event := schemas.AttributionHistory{
		ProspectEmail: email,
		SourceID:      outcome.SourceID,
		SourceName:    sourceName,
		SourceCreated: outcome.SourceCreated,
		Matched:       outcome.Matched,
		Metadata:      meta,
		CreatedAt:     now.UTC(),
	}
	for _, listener := range e.listeners {
		listener.LeadSourceTracked(ctx, event)
	}

	return schemas.Succeeded(true)
}
