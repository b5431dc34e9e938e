package room

import (
	"errors"

	"arcade_server/internal/game"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrUnknownPeer      = errors.New("peer is not a room member")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrGameTypeMismatch = errors.New("room plays a different game")
)

// Code maps a registry error to the reason code reported back to the
// offending client.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrRoomFull):
		return "room-full"
	case errors.Is(err, ErrUnknownPeer):
		return "unknown-peer"
	case errors.Is(err, ErrNotYourTurn):
		return "not-your-turn"
	case errors.Is(err, ErrGameTypeMismatch):
		return "game-type-mismatch"
	case errors.Is(err, ErrRoomNotFound):
		return "room-not-found"
	case errors.Is(err, game.ErrInvalidMove):
		return "invalid-move"
	case errors.Is(err, game.ErrUnknownGameType):
		return "unknown-game-type"
	default:
		return "internal"
	}
}
