package chess

import (
	"fmt"
	"strings"
)

// String draws the board as text, Black's back rank at the top. Empty
// squares are dots, pieces use FEN letters.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 0; rank < BoardSize; rank++ {
		fmt.Fprintf(&sb, "%d ", BoardSize-rank)
		for file := 0; file < BoardSize; file++ {
			if p, ok := b.PieceAt(At(rank, file)); ok {
				sb.WriteString(p.Symbol())
			} else {
				sb.WriteString(".")
			}
			if file < BoardSize-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// FEN encodes the position in Forsyth-Edwards Notation. Castling rights are
// derived from unmoved kings and rooks on their home squares. En passant is
// not part of these rules, so that field is always "-", and no halfmove
// clock is kept.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 0; rank < BoardSize; rank++ {
		empty := 0
		for file := 0; file < BoardSize; file++ {
			p, ok := b.PieceAt(At(rank, file))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteString(p.Symbol())
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if rank < BoardSize-1 {
			sb.WriteString("/")
		}
	}

	side := "w"
	if b.sideToMove == Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s %s - 0 %d", sb.String(), side, b.castlingRights(), b.moveNumber)
}

func (b *Board) castlingRights() string {
	var rights string
	for _, color := range []Color{White, Black} {
		rank := color.backRank()
		king, ok := b.PieceAt(At(rank, 4))
		if !ok || king.Kind != King || king.Color != color || king.HasMoved() {
			continue
		}
		for _, side := range []struct {
			file   int
			letter string
		}{{7, "K"}, {0, "Q"}} {
			rook, ok := b.PieceAt(At(rank, side.file))
			if !ok || rook.Kind != Rook || rook.Color != color || rook.HasMoved() {
				continue
			}
			if color == Black {
				rights += strings.ToLower(side.letter)
			} else {
				rights += side.letter
			}
		}
	}
	if rights == "" {
		return "-"
	}
	return rights
}
