package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/notation"
)

func newService() *GameService {
	return NewGameService(NewGameManager(time.Minute))
}

func TestCreateAndMove(t *testing.T) {
	gs := newService()
	gameID, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := gs.HandleMove(gameID, "alice", model.WSMove{From: "e2", To: "e4"})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !result.Legal {
		t.Fatalf("e2-e4 should be legal")
	}

	result, err = gs.HandleMove(gameID, "bob", model.WSMove{From: "e7", To: "e4"})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if result.Legal {
		t.Fatalf("e7-e4 should be illegal")
	}

	fen, err := gs.GetFEN(gameID)
	if err != nil {
		t.Fatalf("fen: %v", err)
	}
	if want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1"; fen != want {
		t.Fatalf("fen = %q, want %q", fen, want)
	}
}

func TestCreateFromFEN(t *testing.T) {
	gs := newService()
	gameID, err := gs.CreateGame("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	moves, err := gs.LegalMoves(gameID, "a1")
	if err != nil {
		t.Fatalf("moves: %v", err)
	}
	// a2..a8 up the file plus b1..d1 before the king
	if len(moves) != 10 {
		t.Fatalf("expected 10 rook moves, got %v", moves)
	}

	if _, err := gs.CreateGame("nonsense"); !errors.Is(err, notation.ErrInvalidFEN) {
		t.Fatalf("expected ErrInvalidFEN, got %v", err)
	}
}

func TestUnknownGame(t *testing.T) {
	gs := newService()
	if _, err := gs.GetGameState("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if _, err := gs.HandleMove("missing", "alice", model.WSMove{From: "e2", To: "e4"}); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestBadSquare(t *testing.T) {
	gs := newService()
	gameID, _ := gs.CreateGame("")
	if _, err := gs.HandleMove(gameID, "alice", model.WSMove{From: "z9", To: "e4"}); !errors.Is(err, notation.ErrInvalidSquare) {
		t.Fatalf("expected ErrInvalidSquare, got %v", err)
	}
	if _, err := gs.HandleClick(gameID, "alice", model.WSClick{Square: ""}); !errors.Is(err, notation.ErrInvalidSquare) {
		t.Fatalf("expected ErrInvalidSquare, got %v", err)
	}
}

func TestJoinAndTurnOwnership(t *testing.T) {
	gs := newService()
	gameID, _ := gs.CreateGame("")

	if c, err := gs.JoinGame(gameID, "alice"); err != nil || c != model.White {
		t.Fatalf("alice should be white: %v %v", c, err)
	}
	if c, err := gs.JoinGame(gameID, "bob"); err != nil || c != model.Black {
		t.Fatalf("bob should be black: %v %v", c, err)
	}
	if _, err := gs.HandleMove(gameID, "bob", model.WSMove{From: "e7", To: "e5"}); !errors.Is(err, model.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}

	res, err := gs.HandleClick(gameID, "alice", model.WSClick{Square: "g1"})
	if err != nil || res.Action != model.ClickSelected {
		t.Fatalf("select g1: %v %v", res, err)
	}
	res, err = gs.HandleClick(gameID, "alice", model.WSClick{Square: "f3"})
	if err != nil || res.Action != model.ClickMoved {
		t.Fatalf("move g1-f3: %v %v", res, err)
	}

	state, _ := gs.GetGameState(gameID)
	if state.ToMove != model.Black {
		t.Fatalf("expected black to move")
	}
}

func TestMatchmakingPairsPlayers(t *testing.T) {
	gm := NewGameManager(time.Minute)
	gs := NewGameService(gm)

	aliceCh := make(chan string, 1)
	bobCh := make(chan string, 1)
	gs.RegisterMatchmakingChannel("alice", aliceCh)
	gs.RegisterMatchmakingChannel("bob", bobCh)

	if err := gs.JoinMatchmaking("alice"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if gm.MatchNext() {
		t.Fatalf("matched with only one player queued")
	}
	if err := gs.JoinMatchmaking("bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if !gm.MatchNext() {
		t.Fatalf("expected a match")
	}

	var aliceEvent, bobEvent model.MatchFoundEvent
	if err := json.Unmarshal([]byte(<-aliceCh), &aliceEvent); err != nil {
		t.Fatalf("decode alice event: %v", err)
	}
	if err := json.Unmarshal([]byte(<-bobCh), &bobEvent); err != nil {
		t.Fatalf("decode bob event: %v", err)
	}
	if aliceEvent.GameID == "" || aliceEvent.GameID != bobEvent.GameID {
		t.Fatalf("players sent to different games: %v %v", aliceEvent, bobEvent)
	}
	if aliceEvent.Color != model.White || bobEvent.Color != model.Black {
		t.Fatalf("unexpected colors %s %s", aliceEvent.Color, bobEvent.Color)
	}
	if _, ok := <-aliceCh; ok {
		t.Fatalf("channel should be closed after the event")
	}

	game, err := gs.GetGame(aliceEvent.GameID)
	if err != nil {
		t.Fatalf("matched game missing: %v", err)
	}
	if !game.IsPlayerInGame("alice") || !game.IsPlayerInGame("bob") {
		t.Fatalf("players not seated")
	}
	if gm.QueueSize() != 0 {
		t.Fatalf("queue not drained")
	}
}

func TestDuplicateGameID(t *testing.T) {
	gm := NewGameManager(time.Minute)
	if _, err := gm.CreateGame("same"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := gm.CreateGame("same"); !errors.Is(err, ErrGameExists) {
		t.Fatalf("expected ErrGameExists, got %v", err)
	}
}
