package model

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex

	// sendMu serializes writes; a websocket allows one writer at a time.
	sendMu sync.Mutex

	// lastSeq is the newest state broadcast so far, guarded by sendMu.
	lastSeq uint64
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// CapturedPieces holds the pieces each side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// Game owns one board exclusively. Every check and commit on it happens
// under mu, so an attempt is observed as one unit.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	toMove      Color
	selected    *Selection
	lastMove    *SimpleMove
	captured    CapturedPieces
	sound       string
	players     Players
	whiteClock  *Clock
	blackClock  *Clock
	seq         uint64
	connections *GameConnections
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          *Board         `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	Selected       *Selection     `json:"selected"`
	LastMove       *SimpleMove    `json:"lastMove"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Players        Players        `json:"players"`

	// Seq increases with every snapshot; clients keep the highest seen.
	Seq uint64 `json:"seq"`
}

func NewGame(id string, clock time.Duration) *Game {
	return NewGameFromBoard(id, NewBoard(), White, clock)
}

// NewGameFromBoard starts a game on an arbitrary position.
func NewGameFromBoard(id string, board *Board, toMove Color, clock time.Duration) *Game {
	g := &Game{
		ID:     id,
		board:  board,
		toMove: toMove,
		captured: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
		whiteClock:  NewClock(clock),
		blackClock:  NewClock(clock),
		connections: NewGameConnections(),
	}
	g.players.White.TimeLeft = g.whiteClock.Tenths()
	g.players.Black.TimeLeft = g.blackClock.Tenths()
	return g
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.colorOf(playerID); ok {
		return color, nil
	}
	if g.players.White.ID == "" {
		g.players.White.ID = playerID
		g.players.White.Color = White
		return White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black.ID = playerID
		g.players.Black.Color = Black
		return Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) ColorOf(playerID string) (Color, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.colorOf(playerID)
}

func (g *Game) colorOf(playerID string) (Color, bool) {
	if playerID == "" {
		return "", false
	}
	if g.players.White.ID == playerID {
		return White, true
	}
	if g.players.Black.ID == playerID {
		return Black, true
	}
	return "", false
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	_, ok := g.ColorOf(playerID)
	return ok
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// mayAct reports whether playerID may move for the side to move. With no
// seats taken the game is open hot-seat play.
func (g *Game) mayAct(playerID string) bool {
	if g.players.White.ID == "" && g.players.Black.ID == "" {
		return true
	}
	color, ok := g.colorOf(playerID)
	return ok && color == g.toMove
}

func (g *Game) ToMove() Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.toMove
}

// Occupant returns a copy of the piece on pos, or nil.
func (g *Game) Occupant(pos Position) *Piece {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !InBounds(pos) {
		return nil
	}
	if piece := g.board.Occupant(pos); piece != nil {
		p := *piece
		return &p
	}
	return nil
}

func (g *Game) Board() *Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone()
}

func (g *Game) Selected() *Selection {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.selected == nil {
		return nil
	}
	s := *g.selected
	return &s
}

func (g *Game) LegalDestinations(from Position) []Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	return LegalDestinations(g.board, from)
}

// AttemptMove checks the move and commits it when legal. Any selection is
// cleared whatever the verdict.
func (g *Game) AttemptMove(from, to Position) bool {
	g.mu.Lock()
	legal := g.attemptMove(from, to)
	g.selected = nil
	state := g.snapshot()
	g.mu.Unlock()

	g.broadcastState(state)
	return legal
}

// AttemptMoveAs is AttemptMove on behalf of a seated player.
func (g *Game) AttemptMoveAs(playerID string, from, to Position) (bool, error) {
	g.mu.Lock()
	if !g.mayAct(playerID) {
		g.mu.Unlock()
		return false, ErrNotYourTurn
	}
	legal := g.attemptMove(from, to)
	g.selected = nil
	state := g.snapshot()
	g.mu.Unlock()

	g.broadcastState(state)
	return legal, nil
}

func (g *Game) attemptMove(from, to Position) bool {
	if !InBounds(from) || !InBounds(to) {
		return false
	}
	piece := g.board.Occupant(from)
	if piece == nil || piece.Color != g.toMove {
		return false
	}
	if !IsLegal(g.board, from, to) {
		log.Debugf("game %s: rejected %s %v -> %v", g.ID, piece.Type, from, to)
		return false
	}
	g.commit(*piece, from, to)
	return true
}

func (g *Game) commit(piece Piece, from, to Position) {
	g.sound = "move"
	if captured := g.board.Occupant(to); captured != nil {
		g.sound = "capture"
		switch piece.Color {
		case White:
			g.captured.White = append(g.captured.White, *captured)
		case Black:
			g.captured.Black = append(g.captured.Black, *captured)
		}
	}

	g.board.Place(to, piece)
	g.board.Clear(from)
	g.lastMove = &SimpleMove{From: from, To: to}

	g.clockFor(g.toMove).Stop()
	g.switchTurn()
	g.clockFor(g.toMove).Start()

	g.players.White.TimeLeft = g.whiteClock.Tenths()
	g.players.Black.TimeLeft = g.blackClock.Tenths()
	log.Debugf("game %s: %s %s %v -> %v", g.ID, piece.Color, piece.Type, from, to)
}

func (g *Game) clockFor(color Color) *Clock {
	if color == White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) switchTurn() {
	g.toMove = g.toMove.Opposite()
}

// Select marks the piece on pos as the origin of the next attempt. It is
// only honoured for a piece of the side to move.
func (g *Game) Select(pos Position) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selectSquare(pos)
}

func (g *Game) selectSquare(pos Position) bool {
	if !InBounds(pos) {
		return false
	}
	piece := g.board.Occupant(pos)
	if piece == nil || piece.Color != g.toMove {
		return false
	}
	g.selected = &Selection{Piece: *piece, Position: pos}
	return true
}

// MoveSelected attempts a move from the current selection. Without a
// selection there is no verdict and false is returned.
func (g *Game) MoveSelected(to Position) bool {
	g.mu.Lock()
	if g.selected == nil {
		g.mu.Unlock()
		return false
	}
	legal := g.attemptMove(g.selected.Position, to)
	g.selected = nil
	state := g.snapshot()
	g.mu.Unlock()

	g.broadcastState(state)
	return legal
}

// Click drives the select-then-move cycle of a board UI: the first click
// selects, the next one attempts a move and always drops the selection.
func (g *Game) Click(pos Position) ClickResult {
	result, _ := g.ClickAs("", pos)
	return result
}

func (g *Game) ClickAs(playerID string, pos Position) (ClickResult, error) {
	g.mu.Lock()
	if playerID != "" && !g.mayAct(playerID) {
		g.mu.Unlock()
		return ClickResult{Action: ClickIgnored}, ErrNotYourTurn
	}

	var result ClickResult
	if g.selected == nil {
		result.Action = ClickIgnored
		if g.selectSquare(pos) {
			result.Action = ClickSelected
		}
	} else {
		move := SimpleMove{From: g.selected.Position, To: pos}
		result.Move = &move
		result.Action = ClickRejected
		if g.attemptMove(move.From, move.To) {
			result.Action = ClickMoved
		}
		g.selected = nil
	}
	state := g.snapshot()
	g.mu.Unlock()

	if result.Action != ClickIgnored {
		g.broadcastState(state)
	}
	return result, nil
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// snapshot copies the session state. Callers hold g.mu, so Seq follows
// the order in which the state was observed.
func (g *Game) snapshot() GameState {
	g.seq++
	state := GameState{
		Sound:  g.sound,
		Board:  g.board.Clone(),
		ToMove: g.toMove,
		CapturedPieces: CapturedPieces{
			White: append([]Piece{}, g.captured.White...),
			Black: append([]Piece{}, g.captured.Black...),
		},
		Players: g.players,
		Seq:     g.seq,
	}
	state.Players.White.TimeLeft = g.whiteClock.Tenths()
	state.Players.Black.TimeLeft = g.blackClock.Tenths()
	if g.selected != nil {
		s := *g.selected
		state.Selected = &s
	}
	if g.lastMove != nil {
		m := *g.lastMove
		state.LastMove = &m
	}
	return state
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	_, seated := g.colorOf(playerID)
	isAuthorized := seated || g.canSpectate()
	state := g.snapshot()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection, reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection %p for player %s", g.ID, conn, playerID)

	g.broadcastState(state)
	return nil
}

// UnregisterConnection drops playerID's connection if conn is still the
// current one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Infof("game %s: unregistering connection %p for player %s", g.ID, conn, playerID)
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// broadcastState sends state unless a newer one already went out.
func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()
	if state.Seq < g.connections.lastSeq {
		log.Debugf("game %s: dropping stale state %d, already sent %d", g.ID, state.Seq, g.connections.lastSeq)
		return
	}
	g.connections.lastSeq = state.Seq
	g.writeAll(ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)})
}

// Broadcast writes msg to every connection, dropping those that fail.
func (g *Game) Broadcast(msg ws.Message) {
	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()
	g.writeAll(msg)
}

// writeAll is called with sendMu held.
func (g *Game) writeAll(msg ws.Message) {
	g.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send %s to player %s: %v", g.ID, msg.Type, playerID, err)
			g.UnregisterConnection(playerID, conn)
			continue
		}
	}
}

// SendTo writes msg to playerID's connection only.
func (g *Game) SendTo(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	conn, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no connection for player %s", playerID)
	}

	g.connections.sendMu.Lock()
	defer g.connections.sendMu.Unlock()
	return conn.WriteJSON(msg)
}

func (g *Game) String() string {
	return fmt.Sprintf("game %s (%s to move)", g.ID, g.ToMove())
}
