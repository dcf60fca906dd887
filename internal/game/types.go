package game

import (
	"errors"
	"fmt"
)

const BoardSize = 8

type Cell uint8

const (
	Empty Cell = iota
	SideA
	SideB
	Blocked
)

// Side is the acting player. Only SideA and SideB are valid sides.
type Side = Cell

var (
	ErrInvalidMove    = errors.New("invalid move")
	ErrNoLegalMove    = errors.New("no legal moves available")
	ErrNotYourTurn    = errors.New("not this side's turn")
	ErrGameOver       = errors.New("game already finished")
	ErrMalformedBoard = errors.New("malformed board")
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case SideA:
		return "X"
	case SideB:
		return "O"
	case Blocked:
		return "B"
	}
	return "?"
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	v, ok := cellFromSymbol(string(text))
	if !ok {
		return fmt.Errorf("unknown cell symbol %q", text)
	}
	*c = v
	return nil
}

func cellFromSymbol(s string) (Cell, bool) {
	switch s {
	case ".":
		return Empty, true
	case "X":
		return SideA, true
	case "O":
		return SideB, true
	case "B":
		return Blocked, true
	}
	return Empty, false
}

// IsSide reports whether the cell is owned by one of the two players.
func (c Cell) IsSide() bool { return c == SideA || c == SideB }

// Opponent returns the other side. Non-side cells are returned unchanged.
func (c Cell) Opponent() Cell {
	switch c {
	case SideA:
		return SideB
	case SideB:
		return SideA
	}
	return c
}

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) String() string { return fmt.Sprintf("(%d,%d)", m.Row, m.Col) }

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSideA
	OutcomeSideB
	OutcomeTie
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSideA:
		return "X"
	case OutcomeSideB:
		return "O"
	case OutcomeTie:
		return "tie"
	}
	return "none"
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Board is indexed as Board[row][col]. Assigning a Board copies it.
type Board [BoardSize][BoardSize]Cell

var dirs = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

var blockedCells = []Move{{1, 1}, {6, 6}, {1, 6}, {6, 1}}

func NewBoard(withBlocked bool) Board {
	var b Board
	b[3][3] = SideA
	b[4][4] = SideA
	b[3][4] = SideB
	b[4][3] = SideB
	if withBlocked {
		for _, m := range blockedCells {
			b[m.Row][m.Col] = Blocked
		}
	}
	return b
}

// ParseBoard builds a board from eight rows of ".XOB" symbols.
func ParseBoard(rows []string) (Board, error) {
	var b Board
	if len(rows) != BoardSize {
		return b, fmt.Errorf("%w: want %d rows, got %d", ErrMalformedBoard, BoardSize, len(rows))
	}
	for r, line := range rows {
		if len(line) != BoardSize {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, r, len(line))
		}
		for c := 0; c < BoardSize; c++ {
			v, ok := cellFromSymbol(line[c : c+1])
			if !ok {
				return b, fmt.Errorf("%w: unknown symbol %q at (%d,%d)", ErrMalformedBoard, line[c], r, c)
			}
			b[r][c] = v
		}
	}
	return b, nil
}

func MustParseBoard(rows ...string) Board {
	b, err := ParseBoard(rows)
	if err != nil {
		panic(err)
	}
	return b
}

func in(r, c int) bool {
	return r >= 0 && r < BoardSize && c >= 0 && c < BoardSize
}

func (b Board) At(row, col int) Cell {
	return b[row][col]
}

func (b Board) String() string {
	buf := make([]byte, 0, BoardSize*(BoardSize+1))
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			buf = append(buf, b[r][c].String()...)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
