package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/notation"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a game on the standard position, or on fen if given.
func (gs *GameService) CreateGame(fen string) (string, error) {
	gameID := uuid.New().String()

	if fen == "" {
		if _, err := gs.gameManager.CreateGame(gameID); err != nil {
			return "", fmt.Errorf("failed to create game: %w", err)
		}
		return gameID, nil
	}

	board, toMove, err := notation.ParseFEN(fen)
	if err != nil {
		return "", err
	}
	if _, err := gs.gameManager.CreateGameFromBoard(gameID, board, toMove); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gs *GameService) GetFEN(gameID string) (string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return notation.FEN(game.Board(), game.ToMove()), nil
}

// LegalMoves lists the squares the piece on from may step to.
func (gs *GameService) LegalMoves(gameID string, from string) ([]string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	pos, err := notation.ParseSquare(from)
	if err != nil {
		return nil, err
	}

	squares := []string{}
	for _, dest := range game.LegalDestinations(pos) {
		squares = append(squares, notation.SquareName(dest))
	}
	return squares, nil
}

// HandleMove attempts move for playerID. An illegal move is a false
// verdict, not an error.
func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) (model.MoveResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}
	from, err := notation.ParseSquare(move.From)
	if err != nil {
		return model.MoveResult{}, err
	}
	to, err := notation.ParseSquare(move.To)
	if err != nil {
		return model.MoveResult{}, err
	}

	legal, err := game.AttemptMoveAs(playerID, from, to)
	if err != nil {
		return model.MoveResult{}, err
	}
	return model.MoveResult{Legal: legal, Move: model.SimpleMove{From: from, To: to}}, nil
}

func (gs *GameService) HandleClick(gameID string, playerID string, click model.WSClick) (model.ClickResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.ClickResult{}, err
	}
	pos, err := notation.ParseSquare(click.Square)
	if err != nil {
		return model.ClickResult{}, err
	}
	return game.ClickAs(playerID, pos)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gs *GameService) GetGame(gameID string) (*model.Game, error) {
	return gs.gameManager.GetGame(gameID)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}
