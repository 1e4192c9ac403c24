package model

import "testing"

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func boardWith(pieces map[Position]Piece) *Board {
	board := EmptyBoard()
	for p, piece := range pieces {
		board.Place(p, piece)
	}
	return board
}

func TestSameColorVeto(t *testing.T) {
	board := NewBoard()
	for _, from := range board.Occupied() {
		for _, to := range board.Occupied() {
			if from.Piece.Color != to.Piece.Color {
				continue
			}
			if IsLegal(board, from.Position, to.Position) {
				t.Fatalf("%s %s %v -> %v onto own piece was allowed", from.Piece.Color, from.Piece.Type, from.Position, to.Position)
			}
		}
	}
}

func TestRookPathBlocking(t *testing.T) {
	board := NewBoard()
	if IsLegal(board, pos(7, 0), pos(5, 0)) {
		t.Fatalf("rook jumped over the pawn on (6,0)")
	}
	board.Clear(pos(6, 0))
	if !IsLegal(board, pos(7, 0), pos(5, 0)) {
		t.Fatalf("rook should reach (5,0) once (6,0) is clear")
	}
	if !IsLegal(board, pos(7, 0), pos(1, 0)) {
		t.Fatalf("rook should capture the black pawn on (1,0)")
	}
	if IsLegal(board, pos(7, 0), pos(0, 0)) {
		t.Fatalf("rook jumped over the black pawn on (1,0)")
	}
	if IsLegal(board, pos(7, 0), pos(5, 1)) {
		t.Fatalf("rook moved off its lines")
	}
}

func TestBishopDiagonalOnly(t *testing.T) {
	board := NewBoard()
	board.Clear(pos(6, 3))
	if !IsLegal(board, pos(7, 2), pos(6, 3)) {
		t.Fatalf("bishop (7,2)->(6,3) should be legal with the square clear")
	}
	if IsLegal(board, pos(7, 2), pos(5, 2)) {
		t.Fatalf("bishop moved straight")
	}
	if !IsLegal(board, pos(7, 2), pos(2, 7)) {
		t.Fatalf("bishop should run the open diagonal to (2,7)")
	}
	if IsLegal(board, pos(7, 2), pos(5, 5)) {
		t.Fatalf("bishop moved along a non-diagonal")
	}
	if IsLegal(board, pos(7, 2), pos(6, 1)) {
		t.Fatalf("bishop captured its own pawn")
	}
}

func TestKnightJumps(t *testing.T) {
	board := NewBoard()
	if board.Occupant(pos(6, 1)) == nil || board.Occupant(pos(6, 2)) == nil {
		t.Fatalf("expected pawns in front of the knight")
	}
	if !IsLegal(board, pos(7, 1), pos(5, 2)) {
		t.Fatalf("knight (7,1)->(5,2) should jump the pawns")
	}
	if !IsLegal(board, pos(7, 1), pos(5, 0)) {
		t.Fatalf("knight (7,1)->(5,0) should be legal")
	}
	if IsLegal(board, pos(7, 1), pos(5, 1)) {
		t.Fatalf("knight moved straight")
	}
}

func TestPredicates(t *testing.T) {
	white := func(kind PieceKind) Piece { return Piece{Type: kind, Color: White} }
	black := func(kind PieceKind) Piece { return Piece{Type: kind, Color: Black} }

	tests := []struct {
		name   string
		pieces map[Position]Piece
		from   Position
		to     Position
		want   bool
	}{
		{name: "king one step", pieces: map[Position]Piece{pos(4, 4): white(King)}, from: pos(4, 4), to: pos(3, 5), want: true},
		{name: "king two steps", pieces: map[Position]Piece{pos(4, 4): white(King)}, from: pos(4, 4), to: pos(2, 4), want: false},
		{name: "king captures", pieces: map[Position]Piece{pos(4, 4): white(King), pos(5, 4): black(Rook)}, from: pos(4, 4), to: pos(5, 4), want: true},
		{name: "knight one-two", pieces: map[Position]Piece{pos(4, 4): black(Knight)}, from: pos(4, 4), to: pos(5, 6), want: true},
		{name: "knight two-two", pieces: map[Position]Piece{pos(4, 4): black(Knight)}, from: pos(4, 4), to: pos(6, 6), want: false},
		{name: "queen diagonal", pieces: map[Position]Piece{pos(4, 4): white(Queen)}, from: pos(4, 4), to: pos(1, 1), want: true},
		{name: "queen file", pieces: map[Position]Piece{pos(4, 4): white(Queen)}, from: pos(4, 4), to: pos(0, 4), want: true},
		{name: "queen knight jump", pieces: map[Position]Piece{pos(4, 4): white(Queen)}, from: pos(4, 4), to: pos(2, 5), want: false},
		{name: "queen blocked", pieces: map[Position]Piece{pos(4, 4): white(Queen), pos(3, 3): black(Pawn)}, from: pos(4, 4), to: pos(2, 2), want: false},
		{name: "queen captures blocker", pieces: map[Position]Piece{pos(4, 4): white(Queen), pos(3, 3): black(Pawn)}, from: pos(4, 4), to: pos(3, 3), want: true},
		{name: "rook rank", pieces: map[Position]Piece{pos(4, 0): black(Rook)}, from: pos(4, 0), to: pos(4, 7), want: true},
		{name: "rook rank blocked", pieces: map[Position]Piece{pos(4, 0): black(Rook), pos(4, 3): white(Knight)}, from: pos(4, 0), to: pos(4, 7), want: false},
		{name: "bishop blocked", pieces: map[Position]Piece{pos(0, 0): white(Bishop), pos(2, 2): black(Pawn)}, from: pos(0, 0), to: pos(5, 5), want: false},
		{name: "white pawn single", pieces: map[Position]Piece{pos(4, 4): white(Pawn)}, from: pos(4, 4), to: pos(3, 4), want: true},
		{name: "white pawn backwards", pieces: map[Position]Piece{pos(4, 4): white(Pawn)}, from: pos(4, 4), to: pos(5, 4), want: false},
		{name: "white pawn double off home row", pieces: map[Position]Piece{pos(4, 4): white(Pawn)}, from: pos(4, 4), to: pos(2, 4), want: false},
		{name: "white pawn straight capture", pieces: map[Position]Piece{pos(4, 4): white(Pawn), pos(3, 4): black(Pawn)}, from: pos(4, 4), to: pos(3, 4), want: false},
		{name: "black pawn single", pieces: map[Position]Piece{pos(3, 2): black(Pawn)}, from: pos(3, 2), to: pos(4, 2), want: true},
		{name: "black pawn double from home", pieces: map[Position]Piece{pos(1, 2): black(Pawn)}, from: pos(1, 2), to: pos(3, 2), want: true},
		{name: "black pawn capture", pieces: map[Position]Piece{pos(3, 2): black(Pawn), pos(4, 1): white(Bishop)}, from: pos(3, 2), to: pos(4, 1), want: true},
		{name: "black pawn capture backwards", pieces: map[Position]Piece{pos(3, 2): black(Pawn), pos(2, 1): white(Bishop)}, from: pos(3, 2), to: pos(2, 1), want: false},
		{name: "black pawn wide capture", pieces: map[Position]Piece{pos(3, 2): black(Pawn), pos(4, 4): white(Bishop)}, from: pos(3, 2), to: pos(4, 4), want: false},
		// the square passed over is not checked
		{name: "double step over a piece", pieces: map[Position]Piece{pos(6, 0): white(Pawn), pos(5, 0): black(Knight)}, from: pos(6, 0), to: pos(4, 0), want: true},
		{name: "double step onto a piece", pieces: map[Position]Piece{pos(6, 0): white(Pawn), pos(4, 0): black(Knight)}, from: pos(6, 0), to: pos(4, 0), want: false},
		{name: "empty origin", pieces: map[Position]Piece{}, from: pos(4, 4), to: pos(3, 4), want: false},
		{name: "out of bounds", pieces: map[Position]Piece{pos(0, 0): white(Rook)}, from: pos(0, 0), to: pos(-1, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLegal(boardWith(tt.pieces), tt.from, tt.to); got != tt.want {
				t.Fatalf("IsLegal(%v -> %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestPawnDoubleStep(t *testing.T) {
	board := NewBoard()
	if !IsLegal(board, pos(6, 3), pos(4, 3)) {
		t.Fatalf("pawn (6,3)->(4,3) should be legal")
	}
	if IsLegal(board, pos(6, 3), pos(3, 3)) {
		t.Fatalf("pawn (6,3)->(3,3) should be illegal")
	}
}

func TestPawnDiagonalNeedsEnemy(t *testing.T) {
	board := NewBoard()
	if IsLegal(board, pos(6, 3), pos(5, 4)) {
		t.Fatalf("diagonal onto an empty square should be illegal")
	}

	board.Place(pos(5, 4), Piece{Type: Knight, Color: Black})
	if !IsLegal(board, pos(6, 3), pos(5, 4)) {
		t.Fatalf("diagonal capture of a black piece should be legal")
	}

	board.Place(pos(5, 4), Piece{Type: Knight, Color: White})
	if IsLegal(board, pos(6, 3), pos(5, 4)) {
		t.Fatalf("diagonal onto a white piece should be vetoed")
	}
}

func TestKingZeroMovePredicate(t *testing.T) {
	m := MoveAttempt{Piece: Piece{Type: King, Color: White}, From: pos(4, 4), To: pos(4, 4)}
	if !kingMove(m) {
		t.Fatalf("king predicate accepts a zero delta")
	}
	board := boardWith(map[Position]Piece{pos(4, 4): {Type: King, Color: White}})
	if IsLegal(board, pos(4, 4), pos(4, 4)) {
		t.Fatalf("moving onto the origin square should be vetoed")
	}
}

func TestEveryKindHasPredicate(t *testing.T) {
	for _, kind := range []PieceKind{Pawn, Knight, Bishop, Rook, Queen, King} {
		if predicateFor(kind) == nil {
			t.Fatalf("no predicate for %s", kind)
		}
	}

	if predicateFor(PieceKind("archbishop")) != nil {
		t.Fatalf("unknown kind should have no predicate")
	}
	board := boardWith(map[Position]Piece{pos(4, 4): {Type: PieceKind("archbishop"), Color: White}})
	if IsLegal(board, pos(4, 4), pos(3, 4)) {
		t.Fatalf("a piece of unknown kind should never move")
	}
}

func TestIsLegalDoesNotMutate(t *testing.T) {
	board := NewBoard()
	before := *board
	for _, sq := range board.Occupied() {
		LegalDestinations(board, sq.Position)
	}
	if *board != before {
		t.Fatalf("legality checks changed the board")
	}
}

func TestLegalDestinationsFromStart(t *testing.T) {
	board := NewBoard()
	tests := []struct {
		from Position
		want int
	}{
		{pos(7, 1), 2}, // knight
		{pos(6, 4), 2}, // pawn single and double
		{pos(7, 0), 0}, // boxed-in rook
		{pos(7, 4), 0}, // boxed-in king
		{pos(4, 4), 0}, // empty square
	}
	for _, tt := range tests {
		if got := LegalDestinations(board, tt.from); len(got) != tt.want {
			t.Fatalf("LegalDestinations(%v) = %v, want %d squares", tt.from, got, tt.want)
		}
	}
}
