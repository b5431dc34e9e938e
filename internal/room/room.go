package room

import (
	"sync"
	"time"

	"arcade_server/internal/game"
)

type State string

const (
	StateWaitingForPlayers State = "waiting_for_players"
	StateWaitingForReady   State = "waiting_for_ready"
	StateInProgress        State = "in_progress"
	StateFinished          State = "finished"
)

type player struct {
	connID string
	peerID string
	ready  bool
}

// Room is a server-side session pairing up to two peers around one game
// instance. All fields are guarded by mu; the registry is the only writer.
type Room struct {
	mu sync.Mutex

	id       string
	gameType game.Type
	engine   game.Engine

	players      []*player
	state        State
	gameState    game.State
	currentTurn  string
	createdAt    time.Time
	lastActivity time.Time

	// flipGen invalidates scheduled flip-backs: a timer fire whose
	// generation no longer matches is a no-op.
	flipGen   uint64
	flipTimer *time.Timer
}

// Snapshot is an immutable view of a room, safe to hand out after the room
// lock is released.
type Snapshot struct {
	ID           string
	GameType     game.Type
	State        State
	Players      []PlayerInfo
	GameState    game.State
	CurrentTurn  string
	CreatedAt    time.Time
	LastActivity time.Time
}

func (rm *Room) snapshotLocked() Snapshot {
	return Snapshot{
		ID:           rm.id,
		GameType:     rm.gameType,
		State:        rm.state,
		Players:      rm.playersLocked(),
		GameState:    rm.gameState,
		CurrentTurn:  rm.currentTurn,
		CreatedAt:    rm.createdAt,
		LastActivity: rm.lastActivity,
	}
}

func (rm *Room) playersLocked() []PlayerInfo {
	out := make([]PlayerInfo, len(rm.players))
	for i, p := range rm.players {
		out[i] = PlayerInfo{ID: p.connID, Peer: p.peerID, Ready: p.ready}
	}
	return out
}

func (rm *Room) memberLocked(peerID string) *player {
	for _, p := range rm.players {
		if p.peerID == peerID {
			return p
		}
	}
	return nil
}

func (rm *Room) touchLocked(now time.Time) {
	rm.lastActivity = now
}

// cancelFlipLocked voids any scheduled flip-back.
func (rm *Room) cancelFlipLocked() {
	rm.flipGen++
	if rm.flipTimer != nil {
		rm.flipTimer.Stop()
		rm.flipTimer = nil
	}
}
