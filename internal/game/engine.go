package game

// IsValidMove reports whether (row, col) is empty and touches a cell owned by
// either side. Blocked neighbours do not count.
func IsValidMove(b Board, row, col int) bool {
	if !in(row, col) || b[row][col] != Empty {
		return false
	}
	return hasOwnedNeighbor(b, row, col)
}

// ApplyMove places side at (row, col) and toggles the owner of every
// neighbouring cell held by either side. The caller checks IsValidMove first.
func ApplyMove(b Board, row, col int, side Side) Board {
	b[row][col] = side
	for _, d := range dirs {
		nr, nc := row+d[0], col+d[1]
		if !in(nr, nc) {
			continue
		}
		switch b[nr][nc] {
		case SideA:
			b[nr][nc] = SideB
		case SideB:
			b[nr][nc] = SideA
		}
	}
	return b
}

// LegalMoves lists every valid placement in row-major order.
func LegalMoves(b Board) []Move {
	var moves []Move
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if IsValidMove(b, r, c) {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

func HasLegalMove(b Board) bool {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if IsValidMove(b, r, c) {
				return true
			}
		}
	}
	return false
}

func hasOwnedNeighbor(b Board, row, col int) bool {
	for _, d := range dirs {
		nr, nc := row+d[0], col+d[1]
		if in(nr, nc) && b[nr][nc].IsSide() {
			return true
		}
	}
	return false
}
