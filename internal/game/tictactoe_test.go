package game

import (
	"errors"
	"testing"
)

func cellMove(idx int) Move {
	return Move{Type: "cell-click", CellIndex: idx}
}

func TestTicTacToeFirstJoinerGetsXAndTurn(t *testing.T) {
	e := &TicTacToeEngine{}
	s, first := e.InitialState([2]string{"p1", "p2"})

	if first != "p1" {
		t.Fatalf("first turn = %s; want p1", first)
	}
	st := s.(*TicTacToeState)
	if st.Symbols["p1"] != "X" || st.Symbols["p2"] != "O" {
		t.Fatalf("symbols = %v; want p1:X p2:O", st.Symbols)
	}
	for i, cell := range st.Board {
		if cell != "" {
			t.Fatalf("board[%d] = %q; want empty", i, cell)
		}
	}
}

func TestTicTacToeTurnsAlternate(t *testing.T) {
	e := &TicTacToeEngine{}
	s, turn := e.InitialState([2]string{"p1", "p2"})

	// play a drawn game: X O X / X X O / O X O
	moves := []struct {
		peer string
		cell int
	}{
		{"p1", 0}, {"p2", 1}, {"p1", 2},
		{"p2", 5}, {"p1", 3}, {"p2", 6},
		{"p1", 4}, {"p2", 8}, {"p1", 7},
	}

	var res *Result
	for i, m := range moves {
		if turn != m.peer {
			t.Fatalf("move %d: turn = %s; want %s", i, turn, m.peer)
		}
		var err error
		s, turn, res, err = e.ApplyMove(s, m.peer, cellMove(m.cell))
		if err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		if res != nil && i < len(moves)-1 {
			t.Fatalf("move %d: premature result %+v", i, res)
		}
	}

	if res == nil || res.Winner != Tie {
		t.Fatalf("result = %+v; want tie", res)
	}
}

func TestTicTacToeWinningLine(t *testing.T) {
	e := &TicTacToeEngine{}
	s, _ := e.InitialState([2]string{"p1", "p2"})

	plays := []struct {
		peer string
		cell int
	}{
		{"p1", 0}, {"p2", 3}, {"p1", 1}, {"p2", 4},
	}
	for _, m := range plays {
		var err error
		s, _, _, err = e.ApplyMove(s, m.peer, cellMove(m.cell))
		if err != nil {
			t.Fatal(err)
		}
	}

	_, _, res, err := e.ApplyMove(s, "p1", cellMove(2))
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || res.Winner != "p1" {
		t.Fatalf("result = %+v; want winner p1", res)
	}
}

func TestTicTacToeRejects(t *testing.T) {
	e := &TicTacToeEngine{}
	s, _ := e.InitialState([2]string{"p1", "p2"})
	s, _, _, err := e.ApplyMove(s, "p1", cellMove(4))
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		peer string
		mv   Move
	}{
		{"occupied cell", "p2", cellMove(4)},
		{"index too high", "p2", cellMove(9)},
		{"negative index", "p2", cellMove(-1)},
		{"wrong move type", "p2", Move{Type: "choice", Choice: "rock"}},
		{"unknown peer", "p3", cellMove(0)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := e.ApplyMove(s, tc.peer, tc.mv)
			if !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("err = %v; want ErrInvalidMove", err)
			}
		})
	}

	// rejected moves leave the state untouched
	st := s.(*TicTacToeState)
	if st.Board[4] != "X" {
		t.Fatalf("board[4] = %q; want X", st.Board[4])
	}
	for i, cell := range st.Board {
		if i != 4 && cell != "" {
			t.Fatalf("board[%d] = %q; want empty", i, cell)
		}
	}
}

func TestTicTacToeApplyMoveDoesNotMutateInput(t *testing.T) {
	e := &TicTacToeEngine{}
	s, _ := e.InitialState([2]string{"p1", "p2"})
	before := s.(*TicTacToeState)

	if _, _, _, err := e.ApplyMove(s, "p1", cellMove(0)); err != nil {
		t.Fatal(err)
	}
	if before.Board[0] != "" {
		t.Fatalf("input state mutated: board[0] = %q", before.Board[0])
	}
}
