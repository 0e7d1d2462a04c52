package live

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnel-analytics/schemas"
)

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastsEvents(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	server := httptest.NewServer(hub)
	defer server.Close()

	first := dial(t, server)
	second := dial(t, server)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 10*time.Millisecond)

	hub.LeadSourceTracked(context.Background(), schemas.AttributionHistory{ProspectEmail: "jane@example.com", SourceName: "Referral"})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		var event struct {
			Action  string                     `json:"action"`
			Details string                     `json:"details"`
			Data    schemas.AttributionHistory `json:"data"`
		}
		require.NoError(t, conn.ReadJSON(&event))
		assert.Equal(t, ACTION_ATTRIBUTION_TRACKED, event.Action)
		assert.Equal(t, "Referral", event.Details)
		assert.Equal(t, "jane@example.com", event.Data.ProspectEmail)
	}
}

func TestHubSendsInsightDigest(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dial(t, server)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.InsightsGenerated(context.Background(), schemas.InsightBundle{
		ExecutiveSummary: schemas.ExecutiveSummary{OverallHealthScore: 71, CriticalActionsNeeded: 2, RecommendedFocus: "Bottleneck Elimination"},
	})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var event struct {
		Action string         `json:"action"`
		Data   InsightsDigest `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, ACTION_INSIGHTS_GENERATED, event.Action)
	assert.Equal(t, 71, event.Data.HealthScore)
	assert.Equal(t, "Bottleneck Elimination", event.Data.RecommendedFocus)
}

func TestHubForgetsDisconnectedClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dial(t, server)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}
