package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"arcade_server/internal/logger"
)

// HandleWS upgrades the connection and starts its pumps. The peer identity
// comes from the caller-supplied ?peer= query parameter; every payload
// peerId after that is ignored in favor of this one.
func HandleWS(hub *Hub, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		peer := c.Query("peer")
		if peer == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "peer required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := NewClient(uuid.NewString(), peer, conn, hub)
		hub.addClient(client)
		go client.Run()
	}
}
