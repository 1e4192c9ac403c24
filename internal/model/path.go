package model

// IsClear walks line in order and reports whether every square before
// stopAt is empty. stopAt itself is never inspected; whether it may be
// captured is decided by the same-color veto.
func IsClear(line []Position, stopAt Position, board *Board) bool {
	for _, pos := range line {
		if pos == stopAt {
			break
		}
		if board.Occupant(pos) != nil {
			return false
		}
	}
	return true
}
