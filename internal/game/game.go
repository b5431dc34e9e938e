package game

import "errors"

type Type string

const (
	TypeTicTacToe Type = "tictactoe"
	TypeRPS       Type = "rps"
	TypeMemory    Type = "memory"
)

// Tie is the winner sentinel for drawn matches.
const Tie = "tie"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrUnknownGameType = errors.New("unknown game type")
)

// State is an engine-owned payload. Callers treat it as opaque and only pass
// it back into the engine that produced it.
type State any

// Move is the wire shape of a submitted move. Which field matters depends on
// Type: "cell-click" uses CellIndex, "choice" uses Choice, "card-flip" uses
// CardID.
type Move struct {
	Type      string `json:"type"`
	CellIndex int    `json:"cellIndex"`
	Choice    string `json:"choice"`
	CardID    int    `json:"cardId"`
}

// Result reports a finished match. Winner is a peer id or Tie.
type Result struct {
	Winner string
}

// Engine is a pure rule module for one game type. Implementations never
// mutate an input State and keep no per-match fields of their own.
type Engine interface {
	Type() Type

	// InitialState returns the opening state and the peer who moves first.
	// An empty first turn means moves are simultaneous and turn gating does
	// not apply.
	InitialState(players [2]string) (State, string)

	// ApplyMove validates mv against s and returns the successor state, the
	// peer holding the next turn and a terminal result once the match ends.
	ApplyMove(s State, peer string, mv Move) (State, string, *Result, error)
}

// FlipResolver is implemented by engines whose state can carry a delayed
// transition (the memory-match flip-back). The caller owns all timing; the
// engine only exposes the transition itself.
type FlipResolver interface {
	// NeedsResolve reports whether s holds a pending pair waiting to be
	// flipped back.
	NeedsResolve(s State) bool

	// ResolvePendingFlips flips the pending pair face-down and passes the
	// turn away from mover. No-op when nothing is pending.
	ResolvePendingFlips(s State, mover string) (State, string)
}
