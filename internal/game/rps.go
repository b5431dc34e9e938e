package game

import "fmt"

// winTarget ends the match at the first score to reach it.
const winTarget = 3

type RPSState struct {
	Round   int               `json:"round"`
	Choices map[string]string `json:"choices"`
	Scores  map[string]int    `json:"scores"`
}

type RPSEngine struct{}

func (e *RPSEngine) Type() Type { return TypeRPS }

// InitialState returns an empty first round. The first turn is empty: both
// players submit choices within the same round.
func (e *RPSEngine) InitialState(players [2]string) (State, string) {
	return &RPSState{
		Round:   1,
		Choices: make(map[string]string),
		Scores: map[string]int{
			players[0]: 0,
			players[1]: 0,
		},
	}, ""
}

func (e *RPSEngine) ApplyMove(s State, peer string, mv Move) (State, string, *Result, error) {
	st, ok := s.(*RPSState)
	if !ok {
		return nil, "", nil, fmt.Errorf("%w: bad state type", ErrInvalidMove)
	}
	if mv.Type != "choice" {
		return nil, "", nil, fmt.Errorf("%w: want choice, got %q", ErrInvalidMove, mv.Type)
	}
	if mv.Choice != "rock" && mv.Choice != "paper" && mv.Choice != "scissors" {
		return nil, "", nil, fmt.Errorf("%w: choice %q", ErrInvalidMove, mv.Choice)
	}
	if _, ok := st.Scores[peer]; !ok {
		return nil, "", nil, fmt.Errorf("%w: peer not in match", ErrInvalidMove)
	}
	if _, chosen := st.Choices[peer]; chosen {
		return nil, "", nil, fmt.Errorf("%w: already chose this round", ErrInvalidMove)
	}

	next := st.clone()
	next.Choices[peer] = mv.Choice

	if len(next.Choices) < 2 {
		// waiting for the opponent
		return next, "", nil, nil
	}

	opponent := otherPeer(next.Scores, peer)
	winner := decide(peer, next.Choices[peer], opponent, next.Choices[opponent])
	if winner != "" {
		next.Scores[winner]++
	}

	next.Choices = make(map[string]string)
	next.Round++

	if winner != "" && next.Scores[winner] >= winTarget {
		return next, "", &Result{Winner: winner}, nil
	}
	return next, "", nil, nil
}

// decide returns the round winner's peer id, or "" for a tied round.
func decide(peerA, choiceA, peerB, choiceB string) string {
	if choiceA == choiceB {
		return ""
	}
	beats := map[string]string{
		"rock":     "scissors",
		"paper":    "rock",
		"scissors": "paper",
	}
	if beats[choiceA] == choiceB {
		return peerA
	}
	return peerB
}

func (st *RPSState) clone() *RPSState {
	c := &RPSState{
		Round:   st.Round,
		Choices: make(map[string]string, len(st.Choices)),
		Scores:  make(map[string]int, len(st.Scores)),
	}
	for k, v := range st.Choices {
		c.Choices[k] = v
	}
	for k, v := range st.Scores {
		c.Scores[k] = v
	}
	return c
}
