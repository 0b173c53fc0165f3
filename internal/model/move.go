package model

import "github.com/benbeisheim/chess-rules-backend/internal/chess"

// MoveRequest asks to move the piece on From to To.
type MoveRequest struct {
	From chess.Coordinate `json:"from"`
	To   chess.Coordinate `json:"to"`
}

// PromotionRequest names the piece a waiting pawn becomes.
type PromotionRequest struct {
	Piece chess.PieceKind `json:"piece"`
}

type CastleRookMove struct {
	From chess.Coordinate `json:"from"`
	To   chess.Coordinate `json:"to"`
}

// Ply is one half move in the game record.
type Ply struct {
	Piece          chess.Piece      `json:"piece"`
	From           chess.Coordinate `json:"from"`
	To             chess.Coordinate `json:"to"`
	CapturedPiece  *chess.Piece     `json:"capturedPiece"`
	CastleRookMove *CastleRookMove  `json:"castleRookMove"`
	Promotion      chess.PieceKind  `json:"promotion,omitempty"`
	Notation       string           `json:"notation"`
}

// Move pairs White's ply with Black's reply.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From chess.Coordinate `json:"from"`
	To   chess.Coordinate `json:"to"`
}

func newPly(m chess.Move) Ply {
	ply := Ply{
		Piece:     m.Piece,
		From:      m.From,
		To:        m.To,
		Promotion: m.PromotedTo,
		Notation:  m.Notation(),
	}
	if m.IsCapture {
		captured := m.Captured
		ply.CapturedPiece = &captured
	}
	if m.IsCastle {
		ply.CastleRookMove = &CastleRookMove{From: m.RookFrom, To: m.RookTo}
	}
	return ply
}

// pairPlies groups a ply list into numbered moves. The game always starts
// with White to move.
func pairPlies(plies []Ply) []Move {
	moves := make([]Move, 0, (len(plies)+1)/2)
	for i := range plies {
		ply := plies[i]
		if i%2 == 0 {
			moves = append(moves, Move{WhitePly: &ply})
			continue
		}
		moves[len(moves)-1].BlackPly = &ply
	}
	return moves
}
