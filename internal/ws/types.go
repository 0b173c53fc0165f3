package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypePromote    MessageType = "promote"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeMoveResult MessageType = "moveResult"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// LegalMovesQuery asks for the destinations of the piece on From.
type LegalMovesQuery struct {
	From string `json:"from"`
}

// LegalMovesReply answers a LegalMovesQuery.
type LegalMovesReply struct {
	From  string   `json:"from"`
	Moves []string `json:"moves"`
}

// MoveResultReply reports the outcome of a move or promotion message.
type MoveResultReply struct {
	Result string `json:"result"`
}

// ErrorReply carries a human readable error.
type ErrorReply struct {
	Error string `json:"error"`
}

// NewMessage wraps payload in an envelope of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
