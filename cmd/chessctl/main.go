// Command chessctl plays a hot-seat game in the terminal. Enter two
// squares ("e2 e4") to move, or one square at a time to select and move
// the way a board UI does.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/notation"
	"github.com/fatih/color"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	fenFlag   = flag.String("fen", notation.StartingPositionFEN, "starting position")
	plainFlag = flag.Bool("plain", false, "draw the board without colors")
)

func main() {
	flag.Parse()
	if *plainFlag {
		color.NoColor = true
	}

	if err := run(*fenFlag, os.Stdin, color.Output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func run(fen string, in io.Reader, out io.Writer) error {
	board, toMove, err := notation.ParseFEN(fen)
	if err != nil {
		return err
	}
	game := model.NewGameFromBoard("local", board, toMove, time.Hour)

	render(out, game)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", game.ToMove())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		quit, err := handleLine(out, game, strings.Fields(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func handleLine(out io.Writer, game *model.Game, fields []string) (bool, error) {
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "fen":
		fmt.Fprintln(out, notation.FEN(game.Board(), game.ToMove()))
		return false, nil
	case "draw":
		fmt.Fprint(out, notation.Draw(game.Board()))
		return false, nil
	case "moves":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: moves <square>")
		}
		from, err := notation.ParseSquare(fields[1])
		if err != nil {
			return false, err
		}
		names := []string{}
		for _, dest := range game.LegalDestinations(from) {
			names = append(names, notation.SquareName(dest))
		}
		fmt.Fprintln(out, strings.Join(names, " "))
		return false, nil
	}

	switch len(fields) {
	case 1:
		pos, err := notation.ParseSquare(fields[0])
		if err != nil {
			return false, err
		}
		result := game.Click(pos)
		switch result.Action {
		case model.ClickIgnored:
			fmt.Fprintf(out, "nothing to select on %s\n", fields[0])
		case model.ClickSelected:
			fmt.Fprintf(out, "selected %s\n", fields[0])
		case model.ClickRejected:
			fmt.Fprintln(out, "illegal move")
		case model.ClickMoved:
			render(out, game)
		}
	case 2:
		from, err := notation.ParseSquare(fields[0])
		if err != nil {
			return false, err
		}
		to, err := notation.ParseSquare(fields[1])
		if err != nil {
			return false, err
		}
		if !game.AttemptMove(from, to) {
			fmt.Fprintln(out, "illegal move")
			return false, nil
		}
		render(out, game)
	default:
		return false, fmt.Errorf("unrecognized input %q", strings.Join(fields, " "))
	}
	return false, nil
}
