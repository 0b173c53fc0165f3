package chess

import "fmt"

// Board is the full rules state of one game: the 8x8 grid, the side to move
// and the game status. Every field is a value, so a plain copy is a deep copy.
type Board struct {
	squares     [BoardSize][BoardSize]Piece
	sideToMove  Color
	status      GameStatus
	promotionAt Coordinate
	lastMove    Move
	hasLastMove bool
	moveNumber  int
}

var backRankKinds = [BoardSize]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board in the standard starting position with White to move.
func NewBoard() *Board {
	b := NewEmptyBoard(White)
	for file, kind := range backRankKinds {
		b.set(MustPiece(kind, Black, At(Black.backRank(), file)))
		b.set(MustPiece(kind, White, At(White.backRank(), file)))
	}
	for file := 0; file < BoardSize; file++ {
		b.set(MustPiece(Pawn, Black, At(Black.backRank()+Black.pawnDirection(), file)))
		b.set(MustPiece(Pawn, White, At(White.backRank()+White.pawnDirection(), file)))
	}
	return b
}

// NewEmptyBoard returns a board with no pieces, for building custom positions.
func NewEmptyBoard(sideToMove Color) *Board {
	return &Board{sideToMove: sideToMove, status: GameStatus{State: InProgress}, moveNumber: 1}
}

func (b *Board) SideToMove() Color {
	return b.sideToMove
}

// MoveNumber is the full-move counter: it starts at 1 and grows after each
// Black move.
func (b *Board) MoveNumber() int {
	return b.moveNumber
}

func (b *Board) IsWithinBounds(c Coordinate) bool {
	return c.Valid()
}

// PieceAt returns the piece on c, if any.
func (b *Board) PieceAt(c Coordinate) (Piece, bool) {
	if !c.Valid() {
		return Piece{}, false
	}
	p := b.squares[c.Rank][c.File]
	return p, p.Kind.Valid()
}

func (b *Board) IsOccupied(c Coordinate) bool {
	_, ok := b.PieceAt(c)
	return ok
}

// Place puts p on the empty square c. The piece's coordinate is set to c.
func (b *Board) Place(c Coordinate, p Piece) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: kind %d", ErrInvalidPiece, p.Kind)
	}
	if b.IsOccupied(c) {
		return fmt.Errorf("%w: %s", ErrSquareOccupied, c)
	}
	p.Coordinate = c
	b.set(p)
	return nil
}

// Remove clears c and returns the piece that was there.
func (b *Board) Remove(c Coordinate) (Piece, bool) {
	p, ok := b.PieceAt(c)
	if ok {
		b.squares[c.Rank][c.File] = Piece{}
	}
	return p, ok
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// FindPieces returns every piece of the given kind and color, in rank then file order.
func (b *Board) FindPieces(kind PieceKind, color Color) []Piece {
	var found []Piece
	b.each(func(p Piece) {
		if p.Kind == kind && p.Color == color {
			found = append(found, p)
		}
	})
	return found
}

// Pieces returns every piece of color, in rank then file order.
func (b *Board) Pieces(color Color) []Piece {
	var found []Piece
	b.each(func(p Piece) {
		if p.Color == color {
			found = append(found, p)
		}
	})
	return found
}

// KingSquare returns the square of color's king.
func (b *Board) KingSquare(color Color) (Coordinate, bool) {
	kings := b.FindPieces(King, color)
	if len(kings) == 0 {
		return Coordinate{}, false
	}
	return kings[0].Coordinate, true
}

// LastMove returns the most recently applied move.
func (b *Board) LastMove() (Move, bool) {
	return b.lastMove, b.hasLastMove
}

func (b *Board) each(fn func(Piece)) {
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if p := b.squares[rank][file]; p.Kind.Valid() {
				fn(p)
			}
		}
	}
}

// set stores p under its own coordinate, replacing whatever was there.
func (b *Board) set(p Piece) {
	if !p.Coordinate.Valid() {
		panic(fmt.Sprintf("chess: piece stored off the board: %v", p))
	}
	b.squares[p.Coordinate.Rank][p.Coordinate.File] = p
}

// relocate moves the piece on from to to, capturing whatever stood on to.
// It does not touch the move count.
func (b *Board) relocate(from, to Coordinate) Piece {
	p, _ := b.Remove(from)
	p.Coordinate = to
	b.set(p)
	return p
}
