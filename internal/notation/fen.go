// Package notation converts boards to and from FEN and algebraic square
// names. FEN decoding and drawing go through github.com/notnil/chess.
package notation

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/notnil/chess"
)

var ErrInvalidFEN = errors.New("invalid fen")

const StartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

var toLibPiece = map[model.Piece]chess.Piece{
	{Type: model.King, Color: model.White}:   chess.WhiteKing,
	{Type: model.Queen, Color: model.White}:  chess.WhiteQueen,
	{Type: model.Rook, Color: model.White}:   chess.WhiteRook,
	{Type: model.Bishop, Color: model.White}: chess.WhiteBishop,
	{Type: model.Knight, Color: model.White}: chess.WhiteKnight,
	{Type: model.Pawn, Color: model.White}:   chess.WhitePawn,
	{Type: model.King, Color: model.Black}:   chess.BlackKing,
	{Type: model.Queen, Color: model.Black}:  chess.BlackQueen,
	{Type: model.Rook, Color: model.Black}:   chess.BlackRook,
	{Type: model.Bishop, Color: model.Black}: chess.BlackBishop,
	{Type: model.Knight, Color: model.Black}: chess.BlackKnight,
	{Type: model.Pawn, Color: model.Black}:   chess.BlackPawn,
}

var fromLibPiece = func() map[chess.Piece]model.Piece {
	m := make(map[chess.Piece]model.Piece, len(toLibPiece))
	for piece, libPiece := range toLibPiece {
		m[libPiece] = piece
	}
	return m
}()

// Rows run from black's back rank down; ranks run up from white's.
func toLibSquare(pos model.Position) chess.Square {
	return chess.Square(pos.Col + (model.BoardSize-1-pos.Row)*model.BoardSize)
}

func fromLibSquare(sq chess.Square) model.Position {
	return model.Position{Row: model.BoardSize - 1 - int(sq.Rank()), Col: int(sq.File())}
}

func toLibBoard(board *model.Board) *chess.Board {
	squares := make(map[chess.Square]chess.Piece)
	for _, sq := range board.Occupied() {
		squares[toLibSquare(sq.Position)] = toLibPiece[sq.Piece]
	}
	return chess.NewBoard(squares)
}

// FEN encodes the placement and side to move. Castling and en passant
// are not part of this game, so those fields are always "-".
func FEN(board *model.Board, toMove model.Color) string {
	side := "w"
	if toMove == model.Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", toLibBoard(board).String(), side)
}

// ParseFEN decodes a FEN record into a board and the side to move.
// Castling rights, en passant and move counters are accepted but ignored.
func ParseFEN(fen string) (*model.Board, model.Color, error) {
	pos := &chess.Position{}
	if err := pos.UnmarshalText([]byte(fen)); err != nil {
		return nil, "", fmt.Errorf("%w %q: %v", ErrInvalidFEN, fen, err)
	}

	board := model.EmptyBoard()
	for sq, libPiece := range pos.Board().SquareMap() {
		piece, ok := fromLibPiece[libPiece]
		if !ok {
			continue
		}
		board.Place(fromLibSquare(sq), piece)
	}

	toMove := model.White
	if pos.Turn() == chess.Black {
		toMove = model.Black
	}
	return board, toMove, nil
}

// Draw renders the board as a text diagram, white at the bottom.
func Draw(board *model.Board) string {
	return toLibBoard(board).Draw()
}
