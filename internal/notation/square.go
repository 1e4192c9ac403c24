package notation

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

var ErrInvalidSquare = errors.New("invalid square")

// SquareName returns the algebraic name of pos, e.g. row 6 col 4 is "e2".
func SquareName(pos model.Position) string {
	return fmt.Sprintf("%c%d", pos.Col+'a', model.BoardSize-pos.Row)
}

// ParseSquare turns "e2" into its board position.
func ParseSquare(name string) (model.Position, error) {
	if len(name) != 2 {
		return model.Position{}, fmt.Errorf("%w %q", ErrInvalidSquare, name)
	}
	file, rank := name[0], name[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return model.Position{}, fmt.Errorf("%w %q", ErrInvalidSquare, name)
	}
	return model.Position{Row: model.BoardSize - int(rank-'0'), Col: int(file - 'a')}, nil
}
