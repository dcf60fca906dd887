package game

// IsTerminal reports whether the board has no empty cell left.
func IsTerminal(b Board) bool {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

func Winner(countA, countB int) Outcome {
	switch {
	case countA > countB:
		return OutcomeSideA
	case countB > countA:
		return OutcomeSideB
	}
	return OutcomeTie
}

// stalled is a board that is not full but where nobody can place.
func stalled(b Board) bool {
	return !IsTerminal(b) && !HasLegalMove(b)
}
