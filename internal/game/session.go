package game

import (
	"context"
	"fmt"
)

// Session is one game from setup to the final score. It is not safe for
// concurrent use; callers serialize access.
type Session struct {
	board    Board
	turn     Side
	scoreA   int
	scoreB   int
	terminal bool
	outcome  Outcome
	blocked  bool
	history  []HistoryEntry
}

type HistoryEntry struct {
	Side Side `json:"side"`
	Move Move `json:"move"`
}

// State is a read-only view of a session.
type State struct {
	Board    Board          `json:"board"`
	Turn     Side           `json:"turn"`
	ScoreA   int            `json:"scoreA"`
	ScoreB   int            `json:"scoreB"`
	Terminal bool           `json:"terminal"`
	Winner   Outcome        `json:"winner"`
	Blocked  bool           `json:"blocked"`
	History  []HistoryEntry `json:"history"`
}

func NewSession(withBlocked bool) *Session {
	s := &Session{
		board:   NewBoard(withBlocked),
		turn:    SideA,
		blocked: withBlocked,
	}
	s.refresh()
	return s
}

// AttemptMove validates and plays side at (row, col). A rejected move leaves
// the session untouched.
func (s *Session) AttemptMove(row, col int, side Side) error {
	if s.terminal {
		return ErrGameOver
	}
	if side != s.turn {
		return fmt.Errorf("%w: %s to move", ErrNotYourTurn, s.turn)
	}
	if !in(row, col) {
		return fmt.Errorf("%w: (%d,%d) is off the board", ErrInvalidMove, row, col)
	}
	if s.board[row][col] != Empty {
		return fmt.Errorf("%w: (%d,%d) is not empty", ErrInvalidMove, row, col)
	}
	if !IsValidMove(s.board, row, col) {
		return fmt.Errorf("%w: (%d,%d) has no adjacent gift", ErrInvalidMove, row, col)
	}

	s.board = ApplyMove(s.board, row, col, side)
	s.history = append(s.history, HistoryEntry{Side: side, Move: Move{Row: row, Col: col}})
	s.turn = side.Opponent()
	s.refresh()
	return nil
}

// RequestAIMove searches for the side to move without playing it.
func (s *Session) RequestAIMove(ctx context.Context, e *Engine) (Result, error) {
	if s.terminal {
		return Result{}, ErrGameOver
	}
	if e.Maximizer != s.turn {
		return Result{}, fmt.Errorf("%w: engine plays %s, %s to move", ErrNotYourTurn, e.Maximizer, s.turn)
	}
	return e.BestMove(ctx, s.board)
}

// refresh recomputes scores and the end state. A board with empty cells but
// no legal placement ends the game; legality does not depend on the side, so
// passing could never unblock it.
func (s *Session) refresh() {
	s.scoreA, s.scoreB = Score(s.board)
	s.terminal = IsTerminal(s.board) || stalled(s.board)
	s.outcome = OutcomeNone
	if s.terminal {
		s.outcome = Winner(s.scoreA, s.scoreB)
	}
}

func (s *Session) Board() Board { return s.board }

func (s *Session) Cell(row, col int) Cell { return s.board[row][col] }

func (s *Session) Turn() Side { return s.turn }

func (s *Session) Scores() (int, int) { return s.scoreA, s.scoreB }

func (s *Session) Terminal() bool { return s.terminal }

func (s *Session) Outcome() Outcome { return s.outcome }

func (s *Session) Blocked() bool { return s.blocked }

func (s *Session) History() []HistoryEntry {
	return append([]HistoryEntry(nil), s.history...)
}

func (s *Session) Snapshot() State {
	return State{
		Board:    s.board,
		Turn:     s.turn,
		ScoreA:   s.scoreA,
		ScoreB:   s.scoreB,
		Terminal: s.terminal,
		Winner:   s.outcome,
		Blocked:  s.blocked,
		History:  s.History(),
	}
}

// SessionFromBoard starts a session on an arbitrary position.
func SessionFromBoard(b Board, turn Side) *Session {
	s := &Session{board: b, turn: turn, blocked: Count(b, Blocked) > 0}
	s.refresh()
	return s
}
