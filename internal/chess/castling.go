package chess

// castling is one castling option open to a king.
type castling struct {
	kingFrom Coordinate
	kingTo   Coordinate
	rookFrom Coordinate
	rookTo   Coordinate
}

// castlings returns the castling moves king may make right now. A king and
// a rook of its color may castle when neither has moved, they share a rank,
// every square between them is empty, and neither the king's square, the
// square it crosses nor the square it lands on is attacked.
func (b *Board) castlings(king Piece) []castling {
	if king.Kind != King || king.HasMoved() {
		return nil
	}
	opponent := king.Color.Opposite()
	if b.IsSquareAttacked(king.Coordinate, opponent) {
		return nil
	}

	var options []castling
	for _, rook := range b.FindPieces(Rook, king.Color) {
		if rook.HasMoved() || rook.Coordinate.Rank != king.Coordinate.Rank {
			continue
		}
		distance := rook.Coordinate.File - king.Coordinate.File
		if abs(distance) < 3 {
			continue
		}
		if !b.pathClear(king.Coordinate, rook.Coordinate) {
			continue
		}
		step := Coordinate{File: sign(distance)}
		crossing := king.Coordinate.Add(step)
		landing := crossing.Add(step)
		if b.IsSquareAttacked(crossing, opponent) || b.IsSquareAttacked(landing, opponent) {
			continue
		}
		options = append(options, castling{
			kingFrom: king.Coordinate,
			kingTo:   landing,
			rookFrom: rook.Coordinate,
			rookTo:   crossing,
		})
	}
	return options
}

// castlingTo returns the castling option that lands king on to.
func (b *Board) castlingTo(king Piece, to Coordinate) (castling, bool) {
	for _, c := range b.castlings(king) {
		if c.kingTo == to {
			return c, true
		}
	}
	return castling{}, false
}

// pathClear reports whether every square strictly between from and to is
// empty. from and to must share a rank, a file or a diagonal.
func (b *Board) pathClear(from, to Coordinate) bool {
	step := Coordinate{Rank: sign(to.Rank - from.Rank), File: sign(to.File - from.File)}
	for sq := from.Add(step); sq != to; sq = sq.Add(step) {
		if b.IsOccupied(sq) {
			return false
		}
	}
	return true
}

// castle moves king and rook together and counts the move for both.
func (b *Board) castle(c castling) {
	king := b.relocate(c.kingFrom, c.kingTo)
	king.MoveCount++
	b.set(king)

	rook := b.relocate(c.rookFrom, c.rookTo)
	rook.MoveCount++
	b.set(rook)
}
