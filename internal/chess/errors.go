package chess

import "errors"

var (
	ErrInvalidPiece     = errors.New("invalid piece")
	ErrInvalidPromotion = errors.New("invalid promotion")
	ErrOutOfBounds      = errors.New("coordinate out of bounds")
	ErrSquareOccupied   = errors.New("square already occupied")
	ErrInvalidSquare    = errors.New("invalid square notation")
)
