package game

// Evaluate scores b from the maximizer's point of view: its cell count minus
// the opponent's.
func Evaluate(b Board, maximizer Side) int {
	a, o := Score(b)
	if maximizer == SideA {
		return a - o
	}
	return o - a
}
