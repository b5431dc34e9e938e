package game

import (
	"fmt"
	"math/rand"
	"time"
)

type Factory struct {
	tictactoe *TicTacToeEngine
	rps       *RPSEngine
	memory    *MemoryEngine
}

func NewFactory() *Factory {
	return NewFactoryWithSeed(time.Now().UnixNano())
}

// NewFactoryWithSeed pins the memory-match deck order, for tests.
func NewFactoryWithSeed(seed int64) *Factory {
	return &Factory{
		tictactoe: &TicTacToeEngine{},
		rps:       &RPSEngine{},
		memory:    NewMemoryEngine(rand.New(rand.NewSource(seed))),
	}
}

func (f *Factory) Engine(t Type) (Engine, error) {
	switch t {
	case TypeTicTacToe:
		return f.tictactoe, nil
	case TypeRPS:
		return f.rps, nil
	case TypeMemory:
		return f.memory, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownGameType, t)
	}
}

// Valid reports whether t names a known game type.
func Valid(t Type) bool {
	switch t {
	case TypeTicTacToe, TypeRPS, TypeMemory:
		return true
	}
	return false
}
