package game

import (
	"errors"
	"testing"
)

func choiceMove(c string) Move {
	return Move{Type: "choice", Choice: c}
}

func TestRPSDecide(t *testing.T) {
	cases := []struct {
		a, b string
		want string
	}{
		{"rock", "scissors", "pA"},
		{"rock", "paper", "pB"},
		{"paper", "rock", "pA"},
		{"paper", "scissors", "pB"},
		{"scissors", "paper", "pA"},
		{"scissors", "rock", "pB"},
		{"rock", "rock", ""},
		{"scissors", "scissors", ""},
	}

	for _, tc := range cases {
		if got := decide("pA", tc.a, "pB", tc.b); got != tc.want {
			t.Fatalf("decide(%s,%s) = %q; want %q", tc.a, tc.b, got, tc.want)
		}
	}
}

// playRound submits both choices and returns the resulting state.
func playRound(t *testing.T, e *RPSEngine, s State, c1, c2 string) (State, *Result) {
	t.Helper()
	s, _, res, err := e.ApplyMove(s, "p1", choiceMove(c1))
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Fatalf("result after single choice: %+v", res)
	}
	s, _, res, err = e.ApplyMove(s, "p2", choiceMove(c2))
	if err != nil {
		t.Fatal(err)
	}
	return s, res
}

func TestRPSRoundScoring(t *testing.T) {
	e := &RPSEngine{}
	s, first := e.InitialState([2]string{"p1", "p2"})
	if first != "" {
		t.Fatalf("first turn = %q; want empty (simultaneous)", first)
	}

	s, res := playRound(t, e, s, "rock", "scissors")
	if res != nil {
		t.Fatalf("unexpected match end: %+v", res)
	}

	st := s.(*RPSState)
	if st.Scores["p1"] != 1 || st.Scores["p2"] != 0 {
		t.Fatalf("scores = %v; want p1:1 p2:0", st.Scores)
	}
	if st.Round != 2 {
		t.Fatalf("round = %d; want 2", st.Round)
	}
	if len(st.Choices) != 0 {
		t.Fatalf("choices not cleared: %v", st.Choices)
	}
}

func TestRPSTiedRoundLeavesScores(t *testing.T) {
	e := &RPSEngine{}
	s, _ := e.InitialState([2]string{"p1", "p2"})

	s, res := playRound(t, e, s, "paper", "paper")
	if res != nil {
		t.Fatalf("unexpected match end: %+v", res)
	}

	st := s.(*RPSState)
	if st.Scores["p1"] != 0 || st.Scores["p2"] != 0 {
		t.Fatalf("scores changed on tied round: %v", st.Scores)
	}
	if st.Round != 2 {
		t.Fatalf("round = %d; want 2", st.Round)
	}
}

func TestRPSMatchEndsAtThree(t *testing.T) {
	e := &RPSEngine{}
	s, _ := e.InitialState([2]string{"p1", "p2"})

	var res *Result
	for i := 0; i < 2; i++ {
		s, res = playRound(t, e, s, "rock", "scissors")
		if res != nil {
			t.Fatalf("round %d: premature end %+v", i+1, res)
		}
	}

	// throw in a tie and a p2 win before match point
	s, _ = playRound(t, e, s, "rock", "rock")
	s, _ = playRound(t, e, s, "scissors", "rock")

	s, res = playRound(t, e, s, "paper", "rock")
	if res == nil || res.Winner != "p1" {
		t.Fatalf("result = %+v; want winner p1", res)
	}

	st := s.(*RPSState)
	if st.Scores["p1"] != 3 || st.Scores["p2"] != 1 {
		t.Fatalf("final scores = %v; want p1:3 p2:1", st.Scores)
	}
}

func TestRPSRejects(t *testing.T) {
	e := &RPSEngine{}
	s, _ := e.InitialState([2]string{"p1", "p2"})

	if _, _, _, err := e.ApplyMove(s, "p1", choiceMove("lizard")); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("bad choice: err = %v; want ErrInvalidMove", err)
	}
	if _, _, _, err := e.ApplyMove(s, "p3", choiceMove("rock")); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("unknown peer: err = %v; want ErrInvalidMove", err)
	}

	s, _, _, err := e.ApplyMove(s, "p1", choiceMove("rock"))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := e.ApplyMove(s, "p1", choiceMove("paper")); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("double choice: err = %v; want ErrInvalidMove", err)
	}
}
