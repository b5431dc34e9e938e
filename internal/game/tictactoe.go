package game

import "fmt"

type TicTacToeState struct {
	Board   [9]string         `json:"board"`
	Symbols map[string]string `json:"playerSymbols"`
}

type TicTacToeEngine struct{}

var winningCombos = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func (e *TicTacToeEngine) Type() Type { return TypeTicTacToe }

// InitialState gives the first joiner X and the opening turn.
func (e *TicTacToeEngine) InitialState(players [2]string) (State, string) {
	return &TicTacToeState{
		Symbols: map[string]string{
			players[0]: "X",
			players[1]: "O",
		},
	}, players[0]
}

func (e *TicTacToeEngine) ApplyMove(s State, peer string, mv Move) (State, string, *Result, error) {
	st, ok := s.(*TicTacToeState)
	if !ok {
		return nil, "", nil, fmt.Errorf("%w: bad state type", ErrInvalidMove)
	}
	if mv.Type != "cell-click" {
		return nil, "", nil, fmt.Errorf("%w: want cell-click, got %q", ErrInvalidMove, mv.Type)
	}
	if mv.CellIndex < 0 || mv.CellIndex > 8 {
		return nil, "", nil, fmt.Errorf("%w: cell %d out of range", ErrInvalidMove, mv.CellIndex)
	}
	if st.Board[mv.CellIndex] != "" {
		return nil, "", nil, fmt.Errorf("%w: cell %d occupied", ErrInvalidMove, mv.CellIndex)
	}
	symbol, ok := st.Symbols[peer]
	if !ok {
		return nil, "", nil, fmt.Errorf("%w: peer has no symbol", ErrInvalidMove)
	}

	next := st.clone()
	next.Board[mv.CellIndex] = symbol

	for _, combo := range winningCombos {
		a, b, c := combo[0], combo[1], combo[2]
		if next.Board[a] != "" && next.Board[a] == next.Board[b] && next.Board[a] == next.Board[c] {
			return next, "", &Result{Winner: peer}, nil
		}
	}

	full := true
	for _, cell := range next.Board {
		if cell == "" {
			full = false
			break
		}
	}
	if full {
		return next, "", &Result{Winner: Tie}, nil
	}

	return next, otherPeer(st.Symbols, peer), nil, nil
}

func (st *TicTacToeState) clone() *TicTacToeState {
	c := &TicTacToeState{
		Board:   st.Board,
		Symbols: make(map[string]string, len(st.Symbols)),
	}
	for k, v := range st.Symbols {
		c.Symbols[k] = v
	}
	return c
}

// otherPeer picks the map key that is not peer. Maps here always hold the two
// room members.
func otherPeer[V any](m map[string]V, peer string) string {
	for k := range m {
		if k != peer {
			return k
		}
	}
	return peer
}
