package ws

import (
	"encoding/json"

	"arcade_server/internal/game"
)

const (
	// client → server
	EventJoinRoom    = "join-room"
	EventPlayerReady = "player-ready"
	EventSubmitMove  = "submit-move"
	EventLeaveRoom   = "leave-room"

	// server → client; room events carry the names from the room package
	EventError = "error"
)

// Envelope frames every message in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type JoinRoomPayload struct {
	RoomID   string    `json:"roomId"`
	PeerID   string    `json:"peerId"`
	GameType game.Type `json:"gameType"`
}

// RoomRefPayload covers player-ready and leave-room.
type RoomRefPayload struct {
	RoomID string `json:"roomId"`
	PeerID string `json:"peerId"`
}

type SubmitMovePayload struct {
	RoomID string    `json:"roomId"`
	PeerID string    `json:"peerId"`
	Move   game.Move `json:"move"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
