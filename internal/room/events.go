package room

import "arcade_server/internal/game"

// server → client event kinds
const (
	EventPlayerJoined       = "player-joined"
	EventPlayerReadyUpdate  = "player-ready-update"
	EventGameStart          = "game-start"
	EventGameUpdate         = "game-update"
	EventGameEnd            = "game-end"
	EventPlayerDisconnected = "player-disconnected"
)

// Sender delivers one event to one connection. Implementations must not
// block: the registry calls Send while holding a room lock so that clients
// observe events in mutation order.
type Sender interface {
	Send(connID, event string, payload any)
}

type PlayerInfo struct {
	ID    string `json:"id"` // connection id, changes on reconnect
	Peer  string `json:"peer"`
	Ready bool   `json:"ready"`
}

type PlayerJoinedPayload struct {
	Players   []PlayerInfo `json:"players"`
	GameState game.State   `json:"gameState"`
	// CurrentTurn lets a mid-game reconnector recover whose turn it is
	// without waiting for the next game-update.
	CurrentTurn string `json:"currentTurn"`
}

type ReadyUpdatePayload struct {
	Players  []PlayerInfo `json:"players"`
	AllReady bool         `json:"allReady"`
}

type GameStartPayload struct {
	GameState   game.State `json:"gameState"`
	CurrentTurn string     `json:"currentTurn"`
}

type GameUpdatePayload struct {
	GameState   game.State `json:"gameState"`
	CurrentTurn string     `json:"currentTurn"`
}

type GameEndPayload struct {
	Winner     string     `json:"winner"`
	FinalState game.State `json:"finalState"`
}

type PlayerDisconnectedPayload struct {
	Peer    string       `json:"peer"`
	Players []PlayerInfo `json:"players"`
}
