package room

import (
	"fmt"
	"sync"
	"time"

	"arcade_server/internal/game"
	"arcade_server/internal/logger"
	"arcade_server/internal/metrics"
)

type Options struct {
	TTL           time.Duration // idle rooms older than this are swept
	EmptyGrace    time.Duration // empty rooms older than this are swept
	FlipBackDelay time.Duration // memory-match flip-back window
}

func (o *Options) withDefaults() {
	if o.TTL <= 0 {
		o.TTL = time.Hour
	}
	if o.EmptyGrace <= 0 {
		o.EmptyGrace = 5 * time.Second
	}
	if o.FlipBackDelay <= 0 {
		o.FlipBackDelay = 1500 * time.Millisecond
	}
}

// Registry owns every active room. All room mutation goes through its API:
// operations on one room serialize on the room's own lock while distinct
// rooms proceed in parallel.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	senderMu sync.RWMutex
	sender   Sender

	engines *game.Factory
	opts    Options

	done      chan struct{}
	closeOnce sync.Once
}

func NewRegistry(sender Sender, engines *game.Factory, opts Options) *Registry {
	opts.withDefaults()
	return &Registry{
		rooms:   make(map[string]*Room),
		sender:  sender,
		engines: engines,
		opts:    opts,
		done:    make(chan struct{}),
	}
}

// Join adds peerID to the room, creating it on first join. A peer already in
// the room reconnects: its stored connection id is replaced and ready state
// and game progress are untouched.
func (r *Registry) Join(roomID, peerID, connID string, gameType game.Type) (Snapshot, error) {
	engine, err := r.engines.Engine(gameType)
	if err != nil {
		return Snapshot{}, err
	}

	now := time.Now()

	r.mu.Lock()
	rm, ok := r.rooms[roomID]
	if !ok {
		rm = &Room{
			id:           roomID,
			gameType:     gameType,
			engine:       engine,
			state:        StateWaitingForPlayers,
			createdAt:    now,
			lastActivity: now,
		}
		r.rooms[roomID] = rm
		metrics.RoomsActive.Set(float64(len(r.rooms)))
	}
	r.mu.Unlock()

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.gameType != gameType {
		return Snapshot{}, fmt.Errorf("%w: room %s plays %s", ErrGameTypeMismatch, roomID, rm.gameType)
	}

	if existing := rm.memberLocked(peerID); existing != nil {
		// reconnect: same identity, new transport
		logger.Info("peer reconnected", "room", roomID, "peer", peerID, "conn", connID)
		existing.connID = connID
	} else {
		if len(rm.players) >= 2 {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrRoomFull, roomID)
		}
		rm.players = append(rm.players, &player{connID: connID, peerID: peerID})
		if len(rm.players) == 2 && rm.state == StateWaitingForPlayers {
			rm.state = StateWaitingForReady
		}
		logger.Info("peer joined", "room", roomID, "peer", peerID, "players", len(rm.players))
	}

	rm.touchLocked(now)

	r.broadcastLocked(rm, EventPlayerJoined, PlayerJoinedPayload{
		Players:     rm.playersLocked(),
		GameState:   rm.gameState,
		CurrentTurn: rm.currentTurn,
	})

	return rm.snapshotLocked(), nil
}

// SetReady flags peerID ready. When both players are ready the initial game
// state and the opening turn become visible in the same critical section as
// the InProgress transition.
func (r *Registry) SetReady(roomID, peerID string) (Snapshot, bool, error) {
	rm, err := r.room(roomID)
	if err != nil {
		return Snapshot{}, false, err
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	member := rm.memberLocked(peerID)
	if member == nil {
		return Snapshot{}, false, fmt.Errorf("%w: %s in room %s", ErrUnknownPeer, peerID, roomID)
	}

	if rm.state != StateWaitingForPlayers && rm.state != StateWaitingForReady {
		// ready during a running game is noise, not an error
		return rm.snapshotLocked(), false, nil
	}

	member.ready = true
	rm.touchLocked(time.Now())

	allReady := len(rm.players) == 2 && rm.players[0].ready && rm.players[1].ready

	r.broadcastLocked(rm, EventPlayerReadyUpdate, ReadyUpdatePayload{
		Players:  rm.playersLocked(),
		AllReady: allReady,
	})

	if allReady {
		pair := [2]string{rm.players[0].peerID, rm.players[1].peerID}
		rm.gameState, rm.currentTurn = rm.engine.InitialState(pair)
		rm.state = StateInProgress
		metrics.GamesStarted.WithLabelValues(string(rm.gameType)).Inc()
		logger.Info("game started", "room", roomID, "game", rm.gameType, "first_turn", rm.currentTurn)

		r.broadcastLocked(rm, EventGameStart, GameStartPayload{
			GameState:   rm.gameState,
			CurrentTurn: rm.currentTurn,
		})
	}

	return rm.snapshotLocked(), allReady, nil
}

// ApplyMove validates and applies one move. Rejected moves leave the room
// untouched and nothing is broadcast.
func (r *Registry) ApplyMove(roomID, peerID string, mv game.Move) (Snapshot, *game.Result, error) {
	rm, err := r.room(roomID)
	if err != nil {
		return Snapshot{}, nil, err
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.memberLocked(peerID) == nil {
		return Snapshot{}, nil, fmt.Errorf("%w: %s in room %s", ErrUnknownPeer, peerID, roomID)
	}
	if rm.state != StateInProgress {
		return Snapshot{}, nil, fmt.Errorf("%w: no game in progress", game.ErrInvalidMove)
	}
	// an empty current turn means simultaneous moves (rps rounds)
	if rm.currentTurn != "" && rm.currentTurn != peerID {
		return Snapshot{}, nil, fmt.Errorf("%w: waiting for %s", ErrNotYourTurn, rm.currentTurn)
	}

	newState, nextTurn, result, err := rm.engine.ApplyMove(rm.gameState, peerID, mv)
	if err != nil {
		return Snapshot{}, nil, err
	}

	rm.gameState = newState
	rm.touchLocked(time.Now())

	if result != nil {
		r.finishLocked(rm, result.Winner)
		return rm.snapshotLocked(), result, nil
	}

	rm.currentTurn = nextTurn
	r.broadcastLocked(rm, EventGameUpdate, GameUpdatePayload{
		GameState:   rm.gameState,
		CurrentTurn: rm.currentTurn,
	})

	if fr, ok := rm.engine.(game.FlipResolver); ok && fr.NeedsResolve(rm.gameState) {
		r.scheduleFlipBackLocked(rm)
	}

	return rm.snapshotLocked(), nil, nil
}

// scheduleFlipBackLocked arms the one delayed transition the coordinator
// has: the memory-match flip-back. The generation counter makes a fire after
// game end or room removal a no-op.
func (r *Registry) scheduleFlipBackLocked(rm *Room) {
	rm.cancelFlipLocked()
	gen := rm.flipGen
	roomID := rm.id
	rm.flipTimer = time.AfterFunc(r.opts.FlipBackDelay, func() {
		r.resolvePendingFlips(roomID, gen)
	})
}

func (r *Registry) resolvePendingFlips(roomID string, gen uint64) {
	rm, err := r.room(roomID)
	if err != nil {
		return
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.flipGen != gen || rm.state != StateInProgress {
		return
	}
	fr, ok := rm.engine.(game.FlipResolver)
	if !ok || !fr.NeedsResolve(rm.gameState) {
		return
	}

	rm.gameState, rm.currentTurn = fr.ResolvePendingFlips(rm.gameState, rm.currentTurn)
	rm.flipTimer = nil
	rm.touchLocked(time.Now())

	r.broadcastLocked(rm, EventGameUpdate, GameUpdatePayload{
		GameState:   rm.gameState,
		CurrentTurn: rm.currentTurn,
	})
}

// Leave removes peerID from the room. A non-empty connID restricts the
// removal to that connection: a stale grace-period expiry loses the race
// against a reconnect and becomes a no-op.
func (r *Registry) Leave(roomID, peerID, connID string) {
	rm, err := r.room(roomID)
	if err != nil {
		return
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	idx := -1
	for i, p := range rm.players {
		if p.peerID == peerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	if connID != "" && rm.players[idx].connID != connID {
		// peer already reconnected on a fresh connection
		return
	}

	rm.players = append(rm.players[:idx], rm.players[idx+1:]...)
	rm.touchLocked(time.Now())
	logger.Info("peer left", "room", roomID, "peer", peerID, "players", len(rm.players))

	r.broadcastLocked(rm, EventPlayerDisconnected, PlayerDisconnectedPayload{
		Peer:    peerID,
		Players: rm.playersLocked(),
	})

	if rm.state == StateInProgress {
		// opponent forfeit: the remaining player wins
		winner := game.Tie
		if len(rm.players) == 1 {
			winner = rm.players[0].peerID
		}
		r.finishLocked(rm, winner)
		return
	}

	if len(rm.players) < 2 && rm.state == StateWaitingForReady {
		rm.state = StateWaitingForPlayers
	}
}

// finishLocked ends the running game: broadcasts game-end with the final
// state, then resets the room for a rematch when both players remain.
func (r *Registry) finishLocked(rm *Room, winner string) {
	rm.state = StateFinished
	rm.currentTurn = ""
	rm.cancelFlipLocked()

	outcome := "win"
	if winner == game.Tie {
		outcome = "tie"
	}
	metrics.GamesFinished.WithLabelValues(string(rm.gameType), outcome).Inc()
	logger.Info("game finished", "room", rm.id, "game", rm.gameType, "winner", winner)

	r.broadcastLocked(rm, EventGameEnd, GameEndPayload{
		Winner:     winner,
		FinalState: rm.gameState,
	})

	// rematch: keep the pairing, drop the finished game
	rm.gameState = nil
	for _, p := range rm.players {
		p.ready = false
	}
	switch len(rm.players) {
	case 2:
		rm.state = StateWaitingForReady
	case 1:
		rm.state = StateWaitingForPlayers
	}
}

// Sweep removes rooms idle beyond ttl, and empty rooms idle beyond the empty
// grace. Safe to call concurrently with other operations; iterates over a
// snapshot so it never holds the table lock while touching a room.
func (r *Registry) Sweep(now time.Time, ttl time.Duration) int {
	r.mu.RLock()
	candidates := make([]*Room, 0, len(r.rooms))
	for _, rm := range r.rooms {
		candidates = append(candidates, rm)
	}
	r.mu.RUnlock()

	removed := 0
	for _, rm := range candidates {
		rm.mu.Lock()
		idle := now.Sub(rm.lastActivity)
		expired := idle > ttl || (len(rm.players) == 0 && idle > r.opts.EmptyGrace)
		if expired {
			rm.cancelFlipLocked()
		}
		id := rm.id
		rm.mu.Unlock()

		if !expired {
			continue
		}

		r.mu.Lock()
		if r.rooms[id] == rm {
			delete(r.rooms, id)
			removed++
			metrics.RoomsReaped.Inc()
			logger.Info("reaped stale room", "room", id, "idle", idle.Round(time.Second))
		}
		metrics.RoomsActive.Set(float64(len(r.rooms)))
		r.mu.Unlock()
	}
	return removed
}

// StartReaper sweeps on every tick until Close.
func (r *Registry) StartReaper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.Sweep(time.Now(), r.opts.TTL)
			case <-r.done:
				return
			}
		}
	}()
}

// Close stops the reaper and cancels every scheduled flip-back.
func (r *Registry) Close() {
	r.closeOnce.Do(func() {
		close(r.done)

		r.mu.RLock()
		rooms := make([]*Room, 0, len(r.rooms))
		for _, rm := range r.rooms {
			rooms = append(rooms, rm)
		}
		r.mu.RUnlock()

		for _, rm := range rooms {
			rm.mu.Lock()
			rm.cancelFlipLocked()
			rm.mu.Unlock()
		}
	})
}

// Rooms returns a snapshot of every active room, for the ops surface.
func (r *Registry) Rooms() []Snapshot {
	r.mu.RLock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, rm := range r.rooms {
		rooms = append(rooms, rm)
	}
	r.mu.RUnlock()

	out := make([]Snapshot, 0, len(rooms))
	for _, rm := range rooms {
		rm.mu.Lock()
		out = append(out, rm.snapshotLocked())
		rm.mu.Unlock()
	}
	return out
}

// Len reports the number of active rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) room(roomID string) (*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return rm, nil
}

// SetSender wires the gateway in after construction. The hub and the
// registry reference each other, so one of them has to be attached late.
func (r *Registry) SetSender(s Sender) {
	r.senderMu.Lock()
	r.sender = s
	r.senderMu.Unlock()
}

// broadcastLocked fans an event out to every member. Called with the room
// lock held so delivery order matches mutation order; Send must not block.
func (r *Registry) broadcastLocked(rm *Room, event string, payload any) {
	r.senderMu.RLock()
	sender := r.sender
	r.senderMu.RUnlock()
	if sender == nil {
		return
	}
	for _, p := range rm.players {
		sender.Send(p.connID, event, payload)
	}
}
