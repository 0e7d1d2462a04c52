// Package live pushes analytics events to connected dashboards over
// WebSocket.
package live

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"funnel-analytics/schemas"
)

const (
	ACTION_ATTRIBUTION_TRACKED = "attribution_tracked"
	ACTION_INSIGHTS_GENERATED  = "insights_generated"

	WRITE_TIMEOUT = 5 * time.Second
)

type Event struct {
	Action  string    `json:"action"`
	Data    any       `json:"data"`
	Details string    `json:"details,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

type InsightsDigest struct {
	Period           schemas.DateRange `json:"period"`
	HealthScore      int               `json:"health_score"`
	CriticalActions  int               `json:"critical_actions"`
	RecommendedFocus string            `json:"recommended_focus"`
}

type Hub struct {
	upgrader websocket.Upgrader
	logger   zerolog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger.With().Str("component", "live_hub").Logger(),
		clients: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends event to every client, dropping clients whose write fails.
func (h *Hub) Broadcast(event Event) {
	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
		if err := client.WriteJSON(event); err != nil {
			h.logger.Warn().Err(err).Str("action", event.Action).Msg("dropping websocket client")
			client.Close()
			delete(h.clients, client)
		}
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects. Messages sent by clients are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Time{})

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func (h *Hub) LeadSourceTracked(_ context.Context, event schemas.AttributionHistory) {
	h.Broadcast(Event{
		Action:  ACTION_ATTRIBUTION_TRACKED,
		Data:    event,
		Details: event.SourceName,
	})
}

func (h *Hub) InsightsGenerated(_ context.Context, bundle schemas.InsightBundle) {
	h.Broadcast(Event{
		Action: ACTION_INSIGHTS_GENERATED,
		Data: InsightsDigest{
			Period:           bundle.Period,
			HealthScore:      bundle.ExecutiveSummary.OverallHealthScore,
			CriticalActions:  bundle.ExecutiveSummary.CriticalActionsNeeded,
			RecommendedFocus: bundle.ExecutiveSummary.RecommendedFocus,
		},
	})
}
