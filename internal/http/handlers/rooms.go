package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"arcade_server/internal/room"
)

// RoomsHandler exposes read-only room summaries for operators. Game state
// itself stays private to room members.
type RoomsHandler struct {
	registry *room.Registry
}

func NewRoomsHandler(registry *room.Registry) *RoomsHandler {
	return &RoomsHandler{registry: registry}
}

type roomSummary struct {
	ID          string `json:"id"`
	GameType    string `json:"gameType"`
	State       string `json:"state"`
	Players     int    `json:"players"`
	CreatedAt   string `json:"createdAt"`
	IdleSeconds int64  `json:"idleSeconds"`
	CurrentTurn string `json:"currentTurn,omitempty"`
}

func (h *RoomsHandler) List(c *gin.Context) {
	snaps := h.registry.Rooms()
	now := time.Now()

	out := make([]roomSummary, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, roomSummary{
			ID:          s.ID,
			GameType:    string(s.GameType),
			State:       string(s.State),
			Players:     len(s.Players),
			CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
			IdleSeconds: int64(now.Sub(s.LastActivity).Seconds()),
			CurrentTurn: s.CurrentTurn,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(out),
		"rooms": out,
	})
}
