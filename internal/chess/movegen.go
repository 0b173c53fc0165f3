package chess

var (
	rookDirs      = []Coordinate{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs    = []Coordinate{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs     = append(append([]Coordinate{}, rookDirs...), bishopDirs...)
	knightOffsets = []Coordinate{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingOffsets   = queenDirs
)

// PseudoLegalMoves returns the squares the piece on c can reach by its
// movement shape and the occupancy of the board, without regard to whether
// the move would leave its own king in check. Castling is not included.
func (b *Board) PseudoLegalMoves(c Coordinate) []Coordinate {
	p, ok := b.PieceAt(c)
	if !ok {
		return nil
	}
	return b.pseudoMoves(p)
}

func (b *Board) pseudoMoves(p Piece) []Coordinate {
	switch p.Kind {
	case Pawn:
		return b.pawnMoves(p)
	case Knight:
		return b.stepMoves(p, knightOffsets)
	case Bishop:
		return b.slideMoves(p, bishopDirs)
	case Rook:
		return b.slideMoves(p, rookDirs)
	case Queen:
		return b.slideMoves(p, queenDirs)
	case King:
		return b.stepMoves(p, kingOffsets)
	}
	return nil
}

func (b *Board) pawnMoves(p Piece) []Coordinate {
	var moves []Coordinate
	forward := Coordinate{Rank: p.Color.pawnDirection()}

	// One step forward, then two from the pawn's first move
	one := p.Coordinate.Add(forward)
	if one.Valid() && !b.IsOccupied(one) {
		moves = append(moves, one)
		two := one.Add(forward)
		if p.MoveCount == 0 && two.Valid() && !b.IsOccupied(two) {
			moves = append(moves, two)
		}
	}

	// Diagonal captures
	for _, target := range pawnAttacks(p) {
		if occupant, ok := b.PieceAt(target); ok && p.IsOpponent(occupant) {
			moves = append(moves, target)
		}
	}
	return moves
}

// pawnAttacks returns the two forward diagonals of p whether or not anything
// stands on them.
func pawnAttacks(p Piece) []Coordinate {
	var squares []Coordinate
	dir := p.Color.pawnDirection()
	for _, df := range []int{-1, 1} {
		if target := p.Coordinate.Add(Coordinate{Rank: dir, File: df}); target.Valid() {
			squares = append(squares, target)
		}
	}
	return squares
}

func (b *Board) stepMoves(p Piece, offsets []Coordinate) []Coordinate {
	var moves []Coordinate
	for _, off := range offsets {
		target := p.Coordinate.Add(off)
		if !target.Valid() {
			continue
		}
		if occupant, ok := b.PieceAt(target); !ok || p.IsOpponent(occupant) {
			moves = append(moves, target)
		}
	}
	return moves
}

func (b *Board) slideMoves(p Piece, dirs []Coordinate) []Coordinate {
	var moves []Coordinate
	for _, dir := range dirs {
		for target := p.Coordinate.Add(dir); target.Valid(); target = target.Add(dir) {
			occupant, ok := b.PieceAt(target)
			if !ok {
				moves = append(moves, target)
				continue
			}
			if p.IsOpponent(occupant) {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}
