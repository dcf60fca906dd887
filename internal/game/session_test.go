package game

import (
	"context"
	"errors"
	"testing"
)

func TestNewSession(t *testing.T) {
	s := NewSession(true)
	if s.Turn() != SideA {
		t.Errorf("Turn = %v, want X", s.Turn())
	}
	if a, b := s.Scores(); a != 2 || b != 2 {
		t.Errorf("Scores = (%d,%d), want (2,2)", a, b)
	}
	if s.Terminal() || s.Outcome() != OutcomeNone {
		t.Error("new session should be in progress")
	}
	if s.Cell(1, 1) != Blocked || !s.Blocked() {
		t.Error("ice blocks missing")
	}
}

func TestAttemptMove(t *testing.T) {
	s := NewSession(false)
	if err := s.AttemptMove(2, 3, SideA); err != nil {
		t.Fatalf("AttemptMove: %v", err)
	}
	if s.Cell(2, 3) != SideA {
		t.Errorf("cell (2,3) = %v, want X", s.Cell(2, 3))
	}
	// (3,3) was X and (3,4) was O; both toggle.
	if s.Cell(3, 3) != SideB || s.Cell(3, 4) != SideA {
		t.Errorf("neighbours not toggled:\n%s", s.Board())
	}
	if a, b := s.Scores(); a != 3 || b != 2 {
		t.Errorf("Scores = (%d,%d), want (3,2)", a, b)
	}
	if s.Turn() != SideB {
		t.Errorf("Turn = %v, want O", s.Turn())
	}
	if h := s.History(); len(h) != 1 || h[0].Move != (Move{2, 3}) || h[0].Side != SideA {
		t.Errorf("History = %+v", h)
	}
}

func TestAttemptMoveRejections(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		side     Side
		want     error
	}{
		{name: "wrong turn", row: 2, col: 3, side: SideB, want: ErrNotYourTurn},
		{name: "occupied", row: 3, col: 3, side: SideA, want: ErrInvalidMove},
		{name: "not adjacent", row: 0, col: 0, side: SideA, want: ErrInvalidMove},
		{name: "off board", row: 8, col: 0, side: SideA, want: ErrInvalidMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(true)
			before := s.Snapshot()
			err := s.AttemptMove(tt.row, tt.col, tt.side)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			after := s.Snapshot()
			if after.Board != before.Board || after.Turn != before.Turn || len(after.History) != 0 {
				t.Error("rejected move changed the session")
			}
		})
	}

	s := NewSession(true)
	if err := s.AttemptMove(1, 1, SideA); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("blocked cell: error = %v, want ErrInvalidMove", err)
	}
}

func TestSessionEndsOnFullBoard(t *testing.T) {
	b := MustParseBoard(
		".XXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"OOOOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
	)
	s := SessionFromBoard(b, SideB)
	if s.Terminal() {
		t.Fatal("one empty cell left")
	}
	if err := s.AttemptMove(0, 0, SideB); err != nil {
		t.Fatalf("AttemptMove: %v", err)
	}
	if !s.Terminal() {
		t.Fatal("full board should end the game")
	}
	// O: 32 + (0,0),(0,1),(1,0),(1,1) = 36, X: 31 - 3 = 28.
	if a, o := s.Scores(); a != 28 || o != 36 {
		t.Errorf("Scores = (%d,%d), want (28,36)", a, o)
	}
	if s.Outcome() != OutcomeSideB {
		t.Errorf("Outcome = %v, want O", s.Outcome())
	}
	if err := s.AttemptMove(0, 0, SideA); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after end: error = %v, want ErrGameOver", err)
	}
}

func TestSessionTie(t *testing.T) {
	b := MustParseBoard(
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"XXXXXXXX",
		"OOOOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
		"OOOOOOOO",
	)
	s := SessionFromBoard(b, SideA)
	if !s.Terminal() || s.Outcome() != OutcomeTie {
		t.Errorf("Terminal=%v Outcome=%v, want tie", s.Terminal(), s.Outcome())
	}
}

func TestSessionFromBoardDetectsBlocked(t *testing.T) {
	if s := SessionFromBoard(NewBoard(true), SideA); !s.Blocked() || !s.Snapshot().Blocked {
		t.Error("board with ice blocks reported as unblocked")
	}
	if s := SessionFromBoard(NewBoard(false), SideA); s.Blocked() {
		t.Error("plain board reported as blocked")
	}
}

func TestSessionStalemateEndsGame(t *testing.T) {
	s := SessionFromBoard(stalledBoard(), SideA)
	if !s.Terminal() {
		t.Fatal("stalled board should end the game")
	}
	if s.Outcome() != OutcomeSideA {
		t.Errorf("Outcome = %v, want X", s.Outcome())
	}
	if _, err := s.RequestAIMove(context.Background(), NewEngine(3, SideA)); !errors.Is(err, ErrGameOver) {
		t.Errorf("RequestAIMove error = %v, want ErrGameOver", err)
	}
}

func TestSessionRequestAIMove(t *testing.T) {
	s := NewSession(false)
	if err := s.AttemptMove(2, 2, SideA); err != nil {
		t.Fatal(err)
	}

	if _, err := s.RequestAIMove(context.Background(), NewEngine(2, SideA)); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("engine for the wrong side: error = %v", err)
	}

	res, err := s.RequestAIMove(context.Background(), NewEngine(2, SideB))
	if err != nil {
		t.Fatalf("RequestAIMove: %v", err)
	}
	if err := s.AttemptMove(res.Move.Row, res.Move.Col, SideB); err != nil {
		t.Fatalf("engine move rejected: %v", err)
	}
	if s.Turn() != SideA {
		t.Errorf("Turn = %v, want X", s.Turn())
	}
}

func TestSelfPlayFinishes(t *testing.T) {
	s := NewSession(true)
	engines := map[Side]*Engine{SideA: NewEngine(1, SideA), SideB: NewEngine(2, SideB)}
	for i := 0; !s.Terminal(); i++ {
		if i > 64 {
			t.Fatal("game did not finish")
		}
		res, err := s.RequestAIMove(context.Background(), engines[s.Turn()])
		if err != nil {
			t.Fatalf("RequestAIMove: %v", err)
		}
		if err := s.AttemptMove(res.Move.Row, res.Move.Col, s.Turn()); err != nil {
			t.Fatalf("AttemptMove: %v", err)
		}
		a, b := s.Scores()
		if a+b+4+Count(s.Board(), Empty) != 64 {
			t.Fatalf("cells not conserved: %d+%d+4+%d", a, b, Count(s.Board(), Empty))
		}
	}
	a, b := s.Scores()
	if s.Outcome() != Winner(a, b) {
		t.Errorf("Outcome = %v, want %v", s.Outcome(), Winner(a, b))
	}
	if len(s.History()) != 56 {
		t.Errorf("history has %d moves, want 56", len(s.History()))
	}
}
