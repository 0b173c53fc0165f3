package chess

import "strings"

// Move is a fully resolved move as it was applied to a board.
type Move struct {
	From  Coordinate
	To    Coordinate
	Piece Piece // the moving piece before the move

	Captured  Piece
	IsCapture bool

	IsCastle bool
	RookFrom Coordinate
	RookTo   Coordinate

	IsPromotion bool
	PromotedTo  PieceKind // NoKind until the promotion choice is made

	Disambiguation string
	Check          bool
	Mate           bool
}

// Notation renders the move in short algebraic notation, e.g. "Nbd2",
// "exd5", "O-O-O", "e8=Q+".
func (m Move) Notation() string {
	var sb strings.Builder
	switch {
	case m.IsCastle && m.To.File > m.From.File:
		sb.WriteString("O-O")
	case m.IsCastle:
		sb.WriteString("O-O-O")
	default:
		sb.WriteString(m.Piece.Kind.Notation())
		sb.WriteString(m.Disambiguation)
		if m.IsCapture {
			if m.Piece.Kind == Pawn {
				sb.WriteString(m.From.fileNotation())
			}
			sb.WriteString("x")
		}
		sb.WriteString(m.To.String())
		if m.IsPromotion && m.PromotedTo.Valid() {
			sb.WriteString("=")
			sb.WriteString(m.PromotedTo.Notation())
		}
	}
	switch {
	case m.Mate:
		sb.WriteString("#")
	case m.Check:
		sb.WriteString("+")
	}
	return sb.String()
}

func (m Move) String() string {
	return m.Notation()
}
