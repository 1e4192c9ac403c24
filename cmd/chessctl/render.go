package main

import (
	"fmt"
	"io"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/fatih/color"
)

const (
	lightSquare    = color.BgHiWhite
	darkSquare     = color.BgGreen
	selectedSquare = color.BgYellow
	whitePiece     = color.FgHiBlue
	blackPiece     = color.FgBlack
)

var letters = map[model.PieceKind]string{
	model.King:   "K",
	model.Queen:  "Q",
	model.Rook:   "R",
	model.Bishop: "B",
	model.Knight: "N",
	model.Pawn:   "P",
}

func render(out io.Writer, game *model.Game) {
	state := game.GetState()
	for row := 0; row < model.BoardSize; row++ {
		fmt.Fprintf(out, "%d ", model.BoardSize-row)
		for col := 0; col < model.BoardSize; col++ {
			fmt.Fprint(out, cell(state, model.Position{Row: row, Col: col}))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, "   a  b  c  d  e  f  g  h")
	fmt.Fprintf(out, "%s to move\n", state.ToMove)
}

func cell(state model.GameState, pos model.Position) string {
	bg := lightSquare
	if (pos.Row+pos.Col)%2 == 1 {
		bg = darkSquare
	}
	if state.Selected != nil && state.Selected.Position == pos {
		bg = selectedSquare
	}

	piece := state.Board.Occupant(pos)
	if piece == nil {
		return color.New(bg).Sprint("   ")
	}
	fg := blackPiece
	if piece.Color == model.White {
		fg = whitePiece
	}
	return color.New(bg, fg, color.Bold).Sprintf(" %s ", letters[piece.Type])
}
