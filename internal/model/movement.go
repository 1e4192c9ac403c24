package model

// MoveAttempt describes one proposed step. It is built per check and
// thrown away afterwards.
type MoveAttempt struct {
	Piece    Piece
	From     Position
	To       Position
	RowDelta int
	ColDelta int
	// Target is the piece on To, nil if empty.
	Target *Piece
	Board  *Board
}

func newMoveAttempt(board *Board, piece Piece, from, to Position) MoveAttempt {
	rowDelta, colDelta := Delta(from, to)
	return MoveAttempt{
		Piece:    piece,
		From:     from,
		To:       to,
		RowDelta: rowDelta,
		ColDelta: colDelta,
		Target:   board.Occupant(to),
		Board:    board,
	}
}

type movePredicate func(MoveAttempt) bool

// predicateFor returns the movement rule for kind, or nil for a kind the
// engine does not know.
func predicateFor(kind PieceKind) movePredicate {
	switch kind {
	case Pawn:
		return pawnMove
	case Knight:
		return knightMove
	case Bishop:
		return bishopMove
	case Rook:
		return rookMove
	case Queen:
		return queenMove
	case King:
		return kingMove
	}
	return nil
}

func kingMove(m MoveAttempt) bool {
	return abs(m.RowDelta) <= 1 && abs(m.ColDelta) <= 1
}

func knightMove(m MoveAttempt) bool {
	rowDist, colDist := abs(m.RowDelta), abs(m.ColDelta)
	return (rowDist == 2 && colDist == 1) || (rowDist == 1 && colDist == 2)
}

func rookMove(m MoveAttempt) bool {
	if m.RowDelta != 0 && m.ColDelta != 0 {
		return false
	}
	dir := Direction{DRow: Sign(m.RowDelta), DCol: Sign(m.ColDelta)}
	return IsClear(Ray(m.From, dir), m.To, m.Board)
}

func bishopMove(m MoveAttempt) bool {
	if m.RowDelta == 0 || m.ColDelta == 0 {
		return false
	}
	if abs(m.RowDelta) != abs(m.ColDelta) {
		return false
	}
	dir := Direction{DRow: Sign(m.RowDelta), DCol: Sign(m.ColDelta)}
	return IsClear(Ray(m.From, dir), m.To, m.Board)
}

func queenMove(m MoveAttempt) bool {
	return bishopMove(m) || rookMove(m)
}

// pawnMove does not look at the square a double step passes over.
func pawnMove(m MoveAttempt) bool {
	if m.Target != nil && abs(m.ColDelta) != 1 {
		return false
	}
	if m.Target == nil && m.ColDelta != 0 {
		return false
	}

	dir := m.Piece.Color.Forward()
	if m.Target == nil && m.From.Row == m.Piece.Color.PawnHomeRow() && m.RowDelta == 2*dir {
		return true
	}

	return m.RowDelta == dir && abs(m.ColDelta) <= 1
}
