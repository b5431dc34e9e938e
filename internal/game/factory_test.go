package game

import (
	"errors"
	"math/rand"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestFactoryEngines(t *testing.T) {
	f := NewFactoryWithSeed(1)

	for _, gt := range []Type{TypeTicTacToe, TypeRPS, TypeMemory} {
		e, err := f.Engine(gt)
		if err != nil {
			t.Fatalf("Engine(%s): %v", gt, err)
		}
		if e.Type() != gt {
			t.Fatalf("Engine(%s).Type() = %s", gt, e.Type())
		}
	}

	if _, err := f.Engine("chess"); !errors.Is(err, ErrUnknownGameType) {
		t.Fatalf("err = %v; want ErrUnknownGameType", err)
	}
}

func TestValid(t *testing.T) {
	if !Valid(TypeMemory) || !Valid(TypeRPS) || !Valid(TypeTicTacToe) {
		t.Fatal("known types reported invalid")
	}
	if Valid("checkers") || Valid("") {
		t.Fatal("unknown type reported valid")
	}
}
