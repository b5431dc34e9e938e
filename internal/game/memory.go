package game

import (
	"fmt"
	"math/rand"
	"sync"
)

var memoryEmojis = []string{"🎮", "🎯", "🎲", "🎪", "🎨", "🎭", "🎵", "🎸"}

type MemoryCard struct {
	ID      int    `json:"id"`
	Emoji   string `json:"emoji"`
	Flipped bool   `json:"isFlipped"`
	Matched bool   `json:"isMatched"`
}

type MemoryState struct {
	Cards  []MemoryCard   `json:"cards"`
	Scores map[string]int `json:"scores"`
	// PendingFlips holds the card ids flipped this turn. Two unmatched
	// entries mean a flip-back is due via ResolvePendingFlips.
	PendingFlips []int `json:"flippedCards"`
}

type MemoryEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMemoryEngine(rng *rand.Rand) *MemoryEngine {
	return &MemoryEngine{rng: rng}
}

func (e *MemoryEngine) Type() Type { return TypeMemory }

// InitialState deals every emoji twice into a shuffled 16-card deck. Card ids
// are deck positions.
func (e *MemoryEngine) InitialState(players [2]string) (State, string) {
	deck := make([]string, 0, 2*len(memoryEmojis))
	deck = append(deck, memoryEmojis...)
	deck = append(deck, memoryEmojis...)

	e.mu.Lock()
	e.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	e.mu.Unlock()

	cards := make([]MemoryCard, len(deck))
	for i, emoji := range deck {
		cards[i] = MemoryCard{ID: i, Emoji: emoji}
	}

	return &MemoryState{
		Cards: cards,
		Scores: map[string]int{
			players[0]: 0,
			players[1]: 0,
		},
	}, players[0]
}

func (e *MemoryEngine) ApplyMove(s State, peer string, mv Move) (State, string, *Result, error) {
	st, ok := s.(*MemoryState)
	if !ok {
		return nil, "", nil, fmt.Errorf("%w: bad state type", ErrInvalidMove)
	}
	if mv.Type != "card-flip" {
		return nil, "", nil, fmt.Errorf("%w: want card-flip, got %q", ErrInvalidMove, mv.Type)
	}
	if _, ok := st.Scores[peer]; !ok {
		return nil, "", nil, fmt.Errorf("%w: peer not in match", ErrInvalidMove)
	}
	if len(st.PendingFlips) >= 2 {
		return nil, "", nil, fmt.Errorf("%w: waiting for flip-back", ErrInvalidMove)
	}
	if mv.CardID < 0 || mv.CardID >= len(st.Cards) {
		return nil, "", nil, fmt.Errorf("%w: card %d out of range", ErrInvalidMove, mv.CardID)
	}
	if st.Cards[mv.CardID].Flipped || st.Cards[mv.CardID].Matched {
		return nil, "", nil, fmt.Errorf("%w: card %d already face-up", ErrInvalidMove, mv.CardID)
	}

	next := st.clone()
	next.Cards[mv.CardID].Flipped = true
	next.PendingFlips = append(next.PendingFlips, mv.CardID)

	if len(next.PendingFlips) < 2 {
		// first flip of the turn
		return next, peer, nil, nil
	}

	first := &next.Cards[next.PendingFlips[0]]
	second := &next.Cards[next.PendingFlips[1]]

	if first.Emoji != second.Emoji {
		// Leave the mismatched pair face-up; the registry schedules the
		// flip-back and the turn passes when it fires.
		return next, peer, nil, nil
	}

	first.Matched = true
	second.Matched = true
	next.Scores[peer]++
	next.PendingFlips = nil

	for _, card := range next.Cards {
		if !card.Matched {
			// matching pair keeps the turn
			return next, peer, nil, nil
		}
	}
	return next, "", &Result{Winner: memoryWinner(next.Scores)}, nil
}

// NeedsResolve reports whether s holds a mismatched pair awaiting flip-back.
func (e *MemoryEngine) NeedsResolve(s State) bool {
	st, ok := s.(*MemoryState)
	return ok && len(st.PendingFlips) == 2
}

// ResolvePendingFlips turns the mismatched pair face-down again and passes
// the turn to the other player.
func (e *MemoryEngine) ResolvePendingFlips(s State, mover string) (State, string) {
	st, ok := s.(*MemoryState)
	if !ok || len(st.PendingFlips) != 2 {
		return s, mover
	}

	next := st.clone()
	for _, id := range next.PendingFlips {
		next.Cards[id].Flipped = false
	}
	next.PendingFlips = nil
	return next, otherPeer(next.Scores, mover)
}

func memoryWinner(scores map[string]int) string {
	var best string
	tie := false
	for peer, score := range scores {
		switch {
		case best == "" || score > scores[best]:
			best = peer
			tie = false
		case score == scores[best]:
			tie = true
		}
	}
	if tie {
		return Tie
	}
	return best
}

func (st *MemoryState) clone() *MemoryState {
	c := &MemoryState{
		Cards:  make([]MemoryCard, len(st.Cards)),
		Scores: make(map[string]int, len(st.Scores)),
	}
	copy(c.Cards, st.Cards)
	for k, v := range st.Scores {
		c.Scores[k] = v
	}
	if len(st.PendingFlips) > 0 {
		c.PendingFlips = append([]int(nil), st.PendingFlips...)
	}
	return c
}
