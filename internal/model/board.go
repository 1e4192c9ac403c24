package model

const BoardSize = 8

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the row step a pawn of this color advances by.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PawnHomeRow is the row this color's pawns start on.
func (c Color) PawnHomeRow() int {
	if c == White {
		return 6
	}
	return 1
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"
)

// backRank is the column order of the major pieces on rows 0 and 7.
var backRank = [BoardSize]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Piece is never mutated once placed; moves and captures replace it.
type Piece struct {
	Type  PieceKind `json:"type"`
	Color Color     `json:"color"`
}

type Square struct {
	Position Position `json:"position"`
	Piece    Piece    `json:"piece"`
}

// Board is indexed [row][col]. Row 0 is black's back rank, row 7 white's.
// Callers only pass in-bounds coordinates.
type Board struct {
	Squares [BoardSize][BoardSize]*Piece `json:"board"`
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	board := &Board{}
	for col := 0; col < BoardSize; col++ {
		board.Place(Position{Row: 0, Col: col}, Piece{Type: backRank[col], Color: Black})
		board.Place(Position{Row: 1, Col: col}, Piece{Type: Pawn, Color: Black})
		board.Place(Position{Row: 6, Col: col}, Piece{Type: Pawn, Color: White})
		board.Place(Position{Row: 7, Col: col}, Piece{Type: backRank[col], Color: White})
	}
	return board
}

// EmptyBoard returns a board with no pieces on it.
func EmptyBoard() *Board {
	return &Board{}
}

// Occupant returns the piece on pos, or nil if the square is empty.
func (b *Board) Occupant(pos Position) *Piece {
	return b.Squares[pos.Row][pos.Col]
}

func (b *Board) Place(pos Position, piece Piece) {
	b.Squares[pos.Row][pos.Col] = &piece
}

func (b *Board) Clear(pos Position) {
	b.Squares[pos.Row][pos.Col] = nil
}

// Occupied lists the occupied squares in row-major order.
func (b *Board) Occupied() []Square {
	squares := []Square{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if piece := b.Squares[row][col]; piece != nil {
				squares = append(squares, Square{Position: Position{Row: row, Col: col}, Piece: *piece})
			}
		}
	}
	return squares
}

// Clone copies the grid. Pieces are immutable so sharing them is safe.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}
