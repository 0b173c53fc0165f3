package model

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chess-rules-backend/internal/chess"
	"github.com/benbeisheim/chess-rules-backend/internal/ws"
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
}

// Game is one session. It owns its board exclusively; every access goes
// through mu.
type Game struct {
	ID          string
	OwnerID     string
	mu          sync.Mutex
	board       *chess.Board
	plies       []Ply
	captured    CapturedPieces
	sound       string
	lastActive  time.Time
	version     uint64
	connections *GameConnections

	// sendMu orders pushes; sentVersion is the newest state observers have.
	sendMu      sync.Mutex
	sentVersion uint64
}

// GameState is the snapshot sent to the presentation layer after every change.
type GameState struct {
	ID              string            `json:"id"`
	Version         uint64            `json:"version"`
	Sound           string            `json:"sound"`
	Board           BoardState        `json:"boardState"`
	ToMove          chess.Color       `json:"toMove"`
	Status          chess.GameStatus  `json:"status"`
	MoveHistory     []Move            `json:"moveHistory"`
	CapturedPieces  CapturedPieces    `json:"capturedPieces"`
	IsCheck         bool              `json:"isCheck"`
	PromotionSquare *chess.Coordinate `json:"promotionSquare"`
	LastMove        *SimpleMove       `json:"lastMove"`
	FEN             string            `json:"fen"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []chess.Piece `json:"white"`
	Black []chess.Piece `json:"black"`
}

func NewGame(id, ownerID string) *Game {
	return &Game{
		ID:          id,
		OwnerID:     ownerID,
		board:       chess.NewBoard(),
		captured:    newCapturedPieces(),
		lastActive:  time.Now(),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]chess.Piece, 0),
		Black: make([]chess.Piece, 0),
	}
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// Board returns a copy of the game's board.
func (g *Game) Board() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Clone()
}

func (g *Game) IsOwner(playerID string) bool {
	return playerID != "" && playerID == g.OwnerID
}

// LastActive is when the game last accepted a move or a connection.
func (g *Game) LastActive() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastActive
}

// LegalMoves lists where the piece on from may go.
func (g *Game) LegalMoves(from chess.Coordinate) []chess.Coordinate {
	g.mu.Lock()
	defer g.mu.Unlock()
	moves := g.board.LegalMoves(from)
	if moves == nil {
		return []chess.Coordinate{}
	}
	return moves
}

// MakeMove applies a move for playerID and returns the state it produced.
// A move the rules refuse comes back as chess.Rejected with the unchanged
// state and a nil error; errors are reserved for requests the player may
// not make at all.
func (g *Game) MakeMove(playerID string, move MoveRequest) (chess.MoveResult, GameState, error) {
	if !g.IsOwner(playerID) {
		return chess.Rejected, GameState{}, ErrNotOwner
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	mover := g.board.SideToMove()
	result := g.board.ApplyMove(move.From, move.To)
	log.Debugw("move requested", "game", g.ID, "from", move.From, "to", move.To, "result", result)
	if result == chess.Rejected {
		return result, g.snapshot(), nil
	}

	applied, _ := g.board.LastMove()
	g.plies = append(g.plies, newPly(applied))
	if applied.IsCapture {
		g.addCaptured(mover, applied.Captured)
	}
	return result, g.changed(applied), nil
}

// ChoosePromotion completes a pending promotion for playerID.
func (g *Game) ChoosePromotion(playerID string, req PromotionRequest) (chess.MoveResult, GameState, error) {
	if !g.IsOwner(playerID) {
		return chess.Rejected, GameState{}, ErrNotOwner
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	result := g.board.ChoosePromotion(req.Piece)
	log.Debugw("promotion requested", "game", g.ID, "piece", req.Piece, "result", result)
	if result == chess.Rejected {
		return result, g.snapshot(), nil
	}

	applied, _ := g.board.LastMove()
	g.plies[len(g.plies)-1] = newPly(applied)
	return result, g.changed(applied), nil
}

// changed records a new position and pushes it to observers. Callers hold g.mu.
func (g *Game) changed(applied chess.Move) GameState {
	g.sound = soundFor(applied, g.board.Status())
	g.lastActive = time.Now()
	g.version++

	state := g.snapshot()
	go g.broadcastState(state)
	return state
}

func (g *Game) addCaptured(by chess.Color, p chess.Piece) {
	switch by {
	case chess.White:
		g.captured.White = append(g.captured.White, p)
	case chess.Black:
		g.captured.Black = append(g.captured.Black, p)
	}
}

func soundFor(m chess.Move, status chess.GameStatus) string {
	switch {
	case status.State.Terminal():
		return "game-end"
	case m.Check:
		return "check"
	case m.IsPromotion && m.PromotedTo.Valid():
		return "promote"
	case m.IsCastle:
		return "castle"
	case m.IsCapture:
		return "capture"
	}
	return "move"
}

// snapshot builds the client state. Callers hold g.mu.
func (g *Game) snapshot() GameState {
	state := GameState{
		ID:          g.ID,
		Version:     g.version,
		Sound:       g.sound,
		Board:       newBoardState(g.board),
		ToMove:      g.board.SideToMove(),
		Status:      g.board.Status(),
		MoveHistory: pairPlies(g.plies),
		CapturedPieces: CapturedPieces{
			White: append([]chess.Piece{}, g.captured.White...),
			Black: append([]chess.Piece{}, g.captured.Black...),
		},
		IsCheck: g.board.IsInCheck(g.board.SideToMove()),
		FEN:     g.board.FEN(),
	}
	if sq, ok := g.board.PromotionSquare(); ok {
		state.PromotionSquare = &sq
	}
	if last, ok := g.board.LastMove(); ok {
		state.LastMove = &SimpleMove{From: last.From, To: last.To}
	}
	return state
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	connID := fmt.Sprintf("%p", conn)
	log.Debugw("registering connection", "game", g.ID, "player", playerID, "conn", connID)

	if !g.IsOwner(playerID) {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and turn the new one away
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infow("registered connection", "game", g.ID, "player", playerID, "conn", connID)

	g.mu.Lock()
	g.lastActive = time.Now()
	state := g.snapshot()
	g.mu.Unlock()

	go g.broadcastState(state)
	return nil
}

// UnregisterConnection drops playerID's connection if conn is still the
// registered one.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Infow("unregistering connection", "game", g.ID, "player", playerID)
		delete(g.connections.connections, playerID)
	}
}

// ConnectionCount reports how many clients are watching the game.
func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// CloseConnections closes every connection, e.g. when the game is removed.
func (g *Game) CloseConnections() {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		conn.Close()
		delete(g.connections.connections, playerID)
	}
}

// broadcastState pushes state unless observers already hold a newer one, so
// pushes racing each other never leave a client on an old position.
func (g *Game) broadcastState(state GameState) {
	g.sendMu.Lock()
	defer g.sendMu.Unlock()
	if state.Version < g.sentVersion {
		log.Debugw("skipping stale state", "game", g.ID, "version", state.Version, "sent", g.sentVersion)
		return
	}
	g.sentVersion = state.Version

	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorw("failed to marshal state", "game", g.ID, "error", err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}

	// Copy the connections so no lock is held while writing
	g.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnw("failed to send state", "game", g.ID, "player", playerID, "error", err)
			g.UnregisterConnection(playerID, conn)
			continue
		}
		log.Debugw("sent state", "game", g.ID, "player", playerID)
	}
}
