package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"timehair/internal/pkg/jwt"
	"timehair/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the server binds to loopback (config HOST); the webview origin varies by platform
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub    *Hub
	tokens *jwt.Service
}

func NewHandler(hub *Hub, tokens *jwt.Service) *Handler {
	return &Handler{hub: hub, tokens: tokens}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/ws/seats", h.Seats)
}

// Seats upgrades to a websocket that receives seat board events.
//
// Endpoint: GET /api/ws/seats?token=JWT
func (h *Handler) Seats(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "token query parameter is required")
		return
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("seat_board_upgrade_failed err=%v", err)
		return
	}

	cl := &client{conn: conn, userID: claims.UserID}
	h.hub.register(cl)
	defer h.hub.unregister(cl)

	// the board is push-only; reading just detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("seat_board_read_error user_id=%s err=%v", cl.userID, err)
			}
			return
		}
	}
}
