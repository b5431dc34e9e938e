package ws

import (
	"encoding/json"
	"sync"
	"time"

	"arcade_server/internal/logger"
	"arcade_server/internal/metrics"
	"arcade_server/internal/room"
)

// Hub tracks live connections and routes events between them and the
// registry. It is the registry's Sender: deliveries are non-blocking
// enqueues so a slow consumer never stalls a room.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	registry *room.Registry
	grace    time.Duration
}

func NewHub(registry *room.Registry, grace time.Duration) *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		registry: registry,
		grace:    grace,
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c.ConnID] = c
	h.mu.Unlock()
	metrics.Connections.Inc()
	logger.Info("connection opened", "conn", c.ConnID, "peer", c.PeerID)
}

// dropClient handles a transport-level disconnect. The registry is told to
// remove the peer only after the grace period, so a transient network blip
// with a quick reconnect does not forfeit a running game.
func (h *Hub) dropClient(c *Client) {
	h.mu.Lock()
	if h.clients[c.ConnID] != c {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.ConnID)
	h.mu.Unlock()

	metrics.Connections.Dec()
	_ = c.Conn.Close()
	logger.Info("connection closed", "conn", c.ConnID, "peer", c.PeerID)

	roomID := c.room()
	if roomID == "" {
		return
	}
	time.AfterFunc(h.grace, func() {
		// the conn id guard makes this a no-op if the peer reconnected
		h.registry.Leave(roomID, c.PeerID, c.ConnID)
	})
}

// Send implements room.Sender.
func (h *Hub) Send(connID, event string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("marshal payload", "event", event, "error", err)
		return
	}
	data, err := json.Marshal(Envelope{Type: event, Payload: body})
	if err != nil {
		logger.Error("marshal envelope", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case c.Send <- data:
	default:
		logger.Warn("send queue full, dropping event", "conn", connID, "event", event)
	}
}

// Dispatch handles one inbound frame. A panic in room handling is contained
// here so a single bad event cannot take other rooms down with it.
func (h *Hub) Dispatch(c *Client, raw []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("panic handling event", "conn", c.ConnID, "peer", c.PeerID, "panic", rec)
			h.reject(c, "internal", "internal error")
		}
	}()

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.reject(c, "bad-envelope", "malformed message")
		return
	}

	switch env.Type {
	case EventJoinRoom:
		var p JoinRoomPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil || p.RoomID == "" {
			h.reject(c, "bad-payload", "join-room needs roomId and gameType")
			return
		}
		if _, err := h.registry.Join(p.RoomID, c.PeerID, c.ConnID, p.GameType); err != nil {
			h.rejectErr(c, err)
			return
		}
		c.setRoom(p.RoomID)

	case EventPlayerReady:
		var p RoomRefPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.reject(c, "bad-payload", "malformed player-ready")
			return
		}
		if _, _, err := h.registry.SetReady(h.roomFor(c, p.RoomID), c.PeerID); err != nil {
			h.rejectErr(c, err)
		}

	case EventSubmitMove:
		var p SubmitMovePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.reject(c, "bad-payload", "malformed submit-move")
			return
		}
		if _, _, err := h.registry.ApplyMove(h.roomFor(c, p.RoomID), c.PeerID, p.Move); err != nil {
			h.rejectErr(c, err)
		}

	case EventLeaveRoom:
		var p RoomRefPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.reject(c, "bad-payload", "malformed leave-room")
			return
		}
		// explicit leave skips the disconnect grace
		h.registry.Leave(h.roomFor(c, p.RoomID), c.PeerID, c.ConnID)
		c.setRoom("")

	default:
		h.reject(c, "unknown-event", "unknown event type: "+env.Type)
	}
}

// roomFor prefers the payload's room id and falls back to the room the
// connection last joined.
func (h *Hub) roomFor(c *Client, roomID string) string {
	if roomID != "" {
		return roomID
	}
	return c.room()
}

func (h *Hub) rejectErr(c *Client, err error) {
	h.reject(c, room.Code(err), err.Error())
}

// reject reports a failed action to the offending client only; other room
// members see nothing.
func (h *Hub) reject(c *Client, code, msg string) {
	metrics.EventsRejected.WithLabelValues(code).Inc()
	logger.Debug("event rejected", "conn", c.ConnID, "peer", c.PeerID, "code", code)
	h.Send(c.ConnID, EventError, ErrorPayload{Code: code, Message: msg})
}

// ConnCount reports the number of open connections, for the ops surface.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var _ room.Sender = (*Hub)(nil)
