package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-rules-backend/internal/chess"
	"github.com/benbeisheim/chess-rules-backend/internal/model"
	"github.com/benbeisheim/chess-rules-backend/internal/service"
	"github.com/benbeisheim/chess-rules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// lockedConn serialises writes; game broadcasts and direct replies share
// one socket and the socket allows a single writer at a time.
type lockedConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

func (lc *lockedConn) WriteMessage(messageType int, data []byte) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteMessage(messageType, data)
}

func (lc *lockedConn) Close() error {
	return lc.conn.Close()
}

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(raw *websocket.Conn) {
	gameID, _ := raw.Locals("wsGameID").(string)
	playerID, _ := raw.Locals("wsPlayerID").(string)
	log.Debugw("handling connection", "game", gameID, "player", playerID)

	c := &lockedConn{conn: raw}

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnw("failed to register connection", "game", gameID, "player", playerID, "error", err)
		wsc.send(c, ws.MessageTypeError, ws.ErrorReply{Error: err.Error()})
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := raw.ReadMessage()
		if err != nil {
			log.Debugw("read error", "game", gameID, "player", playerID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.send(c, ws.MessageTypeError, ws.ErrorReply{Error: "malformed message"})
			continue
		}

		replyType, reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Debugw("handle error", "game", gameID, "type", msg.Type, "error", err)
			wsc.send(c, ws.MessageTypeError, ws.ErrorReply{Error: err.Error()})
			continue
		}
		wsc.send(c, replyType, reply)
	}
}

// handleMessage dispatches one client message and returns the reply to
// send back on the same connection.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (ws.MessageType, interface{}, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.MoveRequest
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return "", nil, err
		}
		result, _, err := wsc.gameService.HandleMove(gameID, playerID, move)
		if err != nil {
			return "", nil, err
		}
		return ws.MessageTypeMoveResult, ws.MoveResultReply{Result: result.String()}, nil

	case ws.MessageTypePromote:
		var req model.PromotionRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return "", nil, err
		}
		result, _, err := wsc.gameService.HandlePromotion(gameID, playerID, req)
		if err != nil {
			return "", nil, err
		}
		return ws.MessageTypeMoveResult, ws.MoveResultReply{Result: result.String()}, nil

	case ws.MessageTypeLegalMoves:
		var query ws.LegalMovesQuery
		if err := json.Unmarshal(msg.Payload, &query); err != nil {
			return "", nil, err
		}
		from, err := chess.ParseSquare(query.From)
		if err != nil {
			return "", nil, err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, from)
		if err != nil {
			return "", nil, err
		}
		reply := ws.LegalMovesReply{From: from.String(), Moves: make([]string, 0, len(moves))}
		for _, to := range moves {
			reply.Moves = append(reply.Moves, to.String())
		}
		return ws.MessageTypeLegalMoves, reply, nil

	default:
		return "", nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) send(c model.Conn, t ws.MessageType, payload interface{}) {
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		log.Errorw("failed to encode reply", "type", t, "error", err)
		return
	}
	if err := c.WriteJSON(msg); err != nil {
		log.Warnw("failed to send reply", "type", t, "error", err)
	}
}
