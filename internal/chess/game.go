package chess

import (
	"encoding/json"
	"fmt"
)

// State is the phase of a game.
type State uint8

const (
	InProgress State = iota
	AwaitingPromotion
	Checkmate
	Stalemate
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case AwaitingPromotion:
		return "awaiting_promotion"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return fmt.Sprintf("state(%d)", s)
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether the game has ended.
func (s State) Terminal() bool {
	return s == Checkmate || s == Stalemate
}

// GameStatus is the state of the game and, for Checkmate, the side that lost.
type GameStatus struct {
	State State
	Loser Color
}

func (s GameStatus) String() string {
	if s.State == Checkmate {
		return fmt.Sprintf("%s (%s loses)", s.State, s.Loser)
	}
	return s.State.String()
}

func (s GameStatus) MarshalJSON() ([]byte, error) {
	out := struct {
		State  State  `json:"state"`
		Loser  *Color `json:"loser,omitempty"`
		Winner *Color `json:"winner,omitempty"`
	}{State: s.State}
	if s.State == Checkmate {
		loser, winner := s.Loser, s.Loser.Opposite()
		out.Loser, out.Winner = &loser, &winner
	}
	return json.Marshal(out)
}

// MoveResult is the outcome of a move or promotion request.
type MoveResult uint8

const (
	Rejected MoveResult = iota
	Applied
	AppliedPendingPromotion
)

func (r MoveResult) String() string {
	switch r {
	case Applied:
		return "applied"
	case AppliedPendingPromotion:
		return "applied_pending_promotion"
	}
	return "rejected"
}

func (r MoveResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (b *Board) Status() GameStatus {
	return b.status
}

// PromotionSquare returns the square of the pawn awaiting promotion.
func (b *Board) PromotionSquare() (Coordinate, bool) {
	return b.promotionAt, b.status.State == AwaitingPromotion
}

// ApplyMove plays the piece on from to to. The move is either applied in
// full or rejected with the board untouched. It is rejected when the game is
// not in progress, when from holds no piece of the side to move, and when to
// is not one of that piece's legal moves. A pawn reaching the far rank is
// moved and the board then waits for ChoosePromotion.
func (b *Board) ApplyMove(from, to Coordinate) MoveResult {
	if b.status.State != InProgress {
		return Rejected
	}
	p, ok := b.PieceAt(from)
	if !ok || p.Color != b.sideToMove {
		return Rejected
	}
	move, ok := b.resolve(p, to)
	if !ok {
		return Rejected
	}

	b.execute(move)
	b.lastMove, b.hasLastMove = move, true
	if move.IsPromotion {
		b.status = GameStatus{State: AwaitingPromotion}
		b.promotionAt = move.To
		return AppliedPendingPromotion
	}
	b.completeTurn()
	return Applied
}

// ChoosePromotion replaces the pawn awaiting promotion with a piece of kind,
// which must be a queen, rook, bishop or knight. The turn then passes as
// after any other move.
func (b *Board) ChoosePromotion(kind PieceKind) MoveResult {
	if b.status.State != AwaitingPromotion {
		return Rejected
	}
	pawn, ok := b.PieceAt(b.promotionAt)
	if !ok {
		return Rejected
	}
	promoted, err := Promote(pawn, kind)
	if err != nil {
		return Rejected
	}
	b.set(promoted)
	b.lastMove.PromotedTo = kind
	b.completeTurn()
	return Applied
}

// resolve builds the Move for p going to to, if that move is legal.
func (b *Board) resolve(p Piece, to Coordinate) (Move, bool) {
	move := Move{From: p.Coordinate, To: to, Piece: p}
	if c, ok := b.castlingTo(p, to); ok {
		move.IsCastle = true
		move.RookFrom, move.RookTo = c.rookFrom, c.rookTo
		return move, true
	}
	legal := false
	for _, dest := range b.pseudoMoves(p) {
		if dest == to {
			legal = !b.leavesKingInCheck(p, to)
			break
		}
	}
	if !legal {
		return Move{}, false
	}
	if captured, ok := b.PieceAt(to); ok {
		move.Captured, move.IsCapture = captured, true
	}
	move.IsPromotion = p.Kind == Pawn && to.Rank == p.Color.promotionRank()
	move.Disambiguation = b.disambiguation(p, to)
	return move, true
}

// disambiguation returns the origin hint notation needs when another piece
// of the same kind and color could also move to to.
func (b *Board) disambiguation(p Piece, to Coordinate) string {
	if p.Kind == Pawn || p.Kind == King {
		return ""
	}
	sameFile, sameRank, rivals := false, false, false
	for _, other := range b.FindPieces(p.Kind, p.Color) {
		if other.Coordinate == p.Coordinate {
			continue
		}
		for _, dest := range b.pseudoMoves(other) {
			if dest == to && !b.leavesKingInCheck(other, to) {
				rivals = true
				sameFile = sameFile || other.Coordinate.File == p.Coordinate.File
				sameRank = sameRank || other.Coordinate.Rank == p.Coordinate.Rank
			}
		}
	}
	switch {
	case !rivals:
		return ""
	case !sameFile:
		return p.Coordinate.fileNotation()
	case !sameRank:
		return fmt.Sprintf("%d", BoardSize-p.Coordinate.Rank)
	}
	return p.Coordinate.String()
}

func (b *Board) execute(m Move) {
	if m.IsCastle {
		b.castle(castling{kingFrom: m.From, kingTo: m.To, rookFrom: m.RookFrom, rookTo: m.RookTo})
		return
	}
	p := b.relocate(m.From, m.To)
	p.MoveCount++
	b.set(p)
}

// completeTurn passes the turn after a finished move. When the side now to
// move has no legal move the game ends: checkmate if it is in check,
// stalemate otherwise. The turn passes in both cases so the final position
// still names the side that is mated or stalemated.
func (b *Board) completeTurn() {
	mover := b.sideToMove
	opponent := mover.Opposite()
	if mover == Black {
		b.moveNumber++
	}
	b.sideToMove = opponent
	b.status = GameStatus{State: InProgress}

	inCheck := b.IsKingInCheck(opponent)
	b.lastMove.Check = inCheck
	if b.hasLegalMove(opponent) {
		return
	}
	if inCheck {
		b.lastMove.Mate = true
		b.status = GameStatus{State: Checkmate, Loser: opponent}
		return
	}
	b.status = GameStatus{State: Stalemate}
}
