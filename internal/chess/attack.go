package chess

import "golang.org/x/exp/slices"

// attacks returns the squares p threatens. For every kind but the pawn this
// is its pseudo-legal move set; a pawn threatens both forward diagonals even
// when they are empty.
func (b *Board) attacks(p Piece) []Coordinate {
	if p.Kind == Pawn {
		return pawnAttacks(p)
	}
	return b.pseudoMoves(p)
}

// IsSquareAttacked reports whether any piece of color by threatens sq.
func (b *Board) IsSquareAttacked(sq Coordinate, by Color) bool {
	for _, p := range b.Pieces(by) {
		if slices.Contains(b.attacks(p), sq) {
			return true
		}
	}
	return false
}

// IsKingInCheck reports whether color's king is attacked. A board without
// that king is never in check.
func (b *Board) IsKingInCheck(color Color) bool {
	king, ok := b.KingSquare(color)
	if !ok {
		return false
	}
	return b.IsSquareAttacked(king, color.Opposite())
}

// IsInCheck is IsKingInCheck under the name the presentation layer uses.
func (b *Board) IsInCheck(color Color) bool {
	return b.IsKingInCheck(color)
}
