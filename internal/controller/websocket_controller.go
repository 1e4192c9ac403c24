package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

const closeGrace = time.Second

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection serves one player's socket on a game until it closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("game %s: failed to register connection for %s: %v", gameID, playerID, err)
		c.WriteJSON(ws.ErrorMessage(err.Error()))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read from %s: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("game %s: parse from %s: %v", gameID, playerID, err)
			wsc.reply(gameID, playerID, ws.ErrorMessage("malformed message"))
			continue
		}

		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Debugf("game %s: handle %s from %s: %v", gameID, msg.Type, playerID, err)
			reply = ws.ErrorMessage(err.Error())
		}
		wsc.reply(gameID, playerID, reply)
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return ws.Message{}, err
		}
		result, err := wsc.gameService.HandleMove(gameID, playerID, move)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeMoveResult, result)

	case ws.MessageTypeClick:
		var click model.WSClick
		if err := json.Unmarshal(msg.Payload, &click); err != nil {
			return ws.Message{}, err
		}
		result, err := wsc.gameService.HandleClick(gameID, playerID, click)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeClickResult, result)

	default:
		return ws.Message{}, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) reply(gameID, playerID string, msg ws.Message) {
	game, err := wsc.gameService.GetGame(gameID)
	if err != nil {
		return
	}
	if err := game.SendTo(playerID, msg); err != nil {
		log.Warnf("game %s: reply to %s: %v", gameID, playerID, err)
	}
}

// HandleMatchmaking queues the player and holds the socket open until a
// match is found or the client goes away. The connection is returned to
// the pool when this returns, so the reader must be gone by then.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)

	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, model.ErrPlayerInQueue) {
		wsc.gameService.UnregisterMatchmakingChannel(playerID)
		c.WriteJSON(ws.ErrorMessage(err.Error()))
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()
	defer func() {
		// give the client a moment to answer the close frame
		select {
		case <-closed:
		case <-time.After(closeGrace):
		}
		c.Close()
		<-closed
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			// replaced by a newer matchmaking socket
			closeWith(c, "replaced by another connection")
			return
		}
		if err := c.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(event)}); err != nil {
			log.Warnf("matchmaking: notify %s: %v", playerID, err)
			return
		}
		closeWith(c, "match found")
	case <-closed:
		wsc.gameService.UnregisterMatchmakingChannel(playerID)
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}

func closeWith(c *websocket.Conn, reason string) {
	c.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
		time.Now().Add(time.Second),
	)
}
