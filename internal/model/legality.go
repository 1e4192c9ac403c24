package model

// IsLegal reports whether the piece on from may step to to under its
// movement rule given the current occupancy. It never mutates board.
// Out-of-bounds coordinates and an empty origin are illegal.
func IsLegal(board *Board, from, to Position) bool {
	if !InBounds(from) || !InBounds(to) {
		return false
	}
	piece := board.Occupant(from)
	if piece == nil {
		return false
	}

	// same-color veto, ahead of any piece rule
	if target := board.Occupant(to); target != nil && target.Color == piece.Color {
		return false
	}

	predicate := predicateFor(piece.Type)
	if predicate == nil {
		return false
	}
	return predicate(newMoveAttempt(board, *piece, from, to))
}

// LegalDestinations lists every square the piece on from may step to.
func LegalDestinations(board *Board, from Position) []Position {
	destinations := []Position{}
	if !InBounds(from) || board.Occupant(from) == nil {
		return destinations
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			to := Position{Row: row, Col: col}
			if IsLegal(board, from, to) {
				destinations = append(destinations, to)
			}
		}
	}
	return destinations
}
