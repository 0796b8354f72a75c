package alerts

import (
	"net/http"

	"conectasonda/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are already filtered by the CORS middleware.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/alerts", h.Stream)
}

// Stream upgrades the connection and holds it open until the client goes
// away; alerts are pushed by the hub.
func (h *Handler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "WebSocket upgrade failed")
		return
	}

	id := h.hub.register(conn)
	defer h.hub.unregister(id)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
