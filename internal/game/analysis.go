package game

// Count returns how many cells hold the given state.
func Count(b Board, cell Cell) int {
	n := 0
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c] == cell {
				n++
			}
		}
	}
	return n
}

// Score returns the number of cells owned by SideA and SideB.
func Score(b Board) (countA, countB int) {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			switch b[r][c] {
			case SideA:
				countA++
			case SideB:
				countB++
			}
		}
	}
	return countA, countB
}
