package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timehair/internal/domain"
	"timehair/internal/pkg/jwt"
)

func setupServer(t *testing.T) (*Hub, *jwt.Service, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	tokens := jwt.New("secret", time.Hour)
	r := gin.New()
	NewHandler(hub, tokens).RegisterRoutes(r.Group("/api"))

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, tokens, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/seats?token=" + token
}

func TestSeats_ReceivesPublishedEvents(t *testing.T) {
	hub, tokens, srv := setupServer(t)
	token, err := tokens.GenerateToken("u-1", "admin")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	hub.Publish(domain.SeatEvent{Type: domain.EventServiceStarted, SeatID: 3, Status: domain.SeatInUse, At: at})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got struct {
		Type   string `json:"type"`
		SeatID int    `json:"seatId"`
		Status string `json:"status"`
	}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "service_started", got.Type)
	assert.Equal(t, 3, got.SeatID)
	assert.Equal(t, "in_use", got.Status)
}

func TestSeats_DisconnectUnregisters(t *testing.T) {
	hub, tokens, srv := setupServer(t)
	token, _ := tokens.GenerateToken("u-1", "admin")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSeats_RejectsMissingOrBadToken(t *testing.T) {
	_, _, srv := setupServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv, "garbage"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHub_PublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() {
		hub.Publish(domain.SeatEvent{Type: domain.EventSeatStatus, SeatID: 1})
	})
}
