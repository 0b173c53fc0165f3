package chess

// LegalMoves returns the squares the piece on c may move to. The result is
// empty when c holds no piece, when the piece does not belong to the side to
// move, or when the game is not accepting moves.
func (b *Board) LegalMoves(c Coordinate) []Coordinate {
	if b.status.State != InProgress {
		return nil
	}
	p, ok := b.PieceAt(c)
	if !ok || p.Color != b.sideToMove {
		return nil
	}
	return b.legalMovesFor(p)
}

// AllLegalMoves returns the legal destinations of every piece of color that
// has at least one, keyed by the piece's square. It ignores whose turn it is.
func (b *Board) AllLegalMoves(color Color) map[Coordinate][]Coordinate {
	all := make(map[Coordinate][]Coordinate)
	for _, p := range b.Pieces(color) {
		if moves := b.legalMovesFor(p); len(moves) > 0 {
			all[p.Coordinate] = moves
		}
	}
	return all
}

func (b *Board) legalMovesFor(p Piece) []Coordinate {
	var legal []Coordinate
	for _, to := range b.pseudoMoves(p) {
		if !b.leavesKingInCheck(p, to) {
			legal = append(legal, to)
		}
	}
	if p.Kind == King {
		for _, c := range b.castlings(p) {
			legal = append(legal, c.kingTo)
		}
	}
	return legal
}

func (b *Board) hasLegalMove(color Color) bool {
	for _, p := range b.Pieces(color) {
		for _, to := range b.pseudoMoves(p) {
			if !b.leavesKingInCheck(p, to) {
				return true
			}
		}
	}
	// Castling needs a safe, empty adjacent square, so it is never the only move.
	return false
}

// leavesKingInCheck plays p to to on a copy of the board and reports whether
// p's own king is attacked afterwards. The origin square is emptied before
// the test so the moving piece cannot shield its king.
func (b *Board) leavesKingInCheck(p Piece, to Coordinate) bool {
	sim := b.Clone()
	sim.relocate(p.Coordinate, to)
	return sim.IsKingInCheck(p.Color)
}
