package ws

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hirehub/internal/auth"
	"hirehub/internal/logger"
	"hirehub/pkg/apperrors"
)

type Handler struct {
	hub      *Hub
	tokens   *auth.JWTManager
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, tokens *auth.JWTManager) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS для REST открыт так же
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeWS - GET /api/ws. Браузер не умеет заголовки у WebSocket, поэтому токен можно передать в ?token=.
func (h *Handler) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	claims, err := h.tokens.Parse(token)
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrInvalidToken)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		UserID: claims.UserID,
		hub:    h.hub,
		conn:   conn,
		send:   make(chan Event, sendBuffer),
	}
	if !h.hub.add(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
