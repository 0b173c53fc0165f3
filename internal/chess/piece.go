package chess

import (
	"fmt"
	"strings"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

// pawnDirection is the rank delta of a forward pawn step.
func (c Color) pawnDirection() int {
	if c == White {
		return -1
	}
	return 1
}

// backRank is the rank the color's pieces start on.
func (c Color) backRank() int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}

// promotionRank is the farthest rank from the color's start.
func (c Color) promotionRank() int {
	return c.Opposite().backRank()
}

// PieceKind is the movement class of a piece. The zero value marks an empty
// square and is never a valid kind for a stored piece.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) Valid() bool {
	return k >= Pawn && k <= King
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Notation is the piece letter used in move notation. Pawns have none.
func (k PieceKind) Notation() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// IsPromotionTarget reports whether a pawn may be promoted to k.
func (k PieceKind) IsPromotionTarget() bool {
	switch k {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PieceKind) UnmarshalText(text []byte) error {
	parsed, err := ParsePieceKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParsePieceKind accepts a kind name ("queen") or its letter ("Q", "q").
func ParsePieceKind(s string) (PieceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pawn", "p":
		return Pawn, nil
	case "knight", "n":
		return Knight, nil
	case "bishop", "b":
		return Bishop, nil
	case "rook", "r":
		return Rook, nil
	case "queen", "q":
		return Queen, nil
	case "king", "k":
		return King, nil
	}
	return NoKind, fmt.Errorf("%w: unknown piece kind %q", ErrInvalidPiece, s)
}

// Piece is a value type. Boards hold pieces by value, so copying a board
// never shares piece state with the original.
type Piece struct {
	Kind       PieceKind  `json:"type"`
	Color      Color      `json:"color"`
	Coordinate Coordinate `json:"position"`
	MoveCount  uint       `json:"moveCount"`
}

// NewPiece builds an unmoved piece after validating its kind, color and square.
func NewPiece(kind PieceKind, color Color, at Coordinate) (Piece, error) {
	if !kind.Valid() {
		return Piece{}, fmt.Errorf("%w: kind %d", ErrInvalidPiece, kind)
	}
	if color != White && color != Black {
		return Piece{}, fmt.Errorf("%w: color %d", ErrInvalidPiece, color)
	}
	if !at.Valid() {
		return Piece{}, fmt.Errorf("%w: %v", ErrOutOfBounds, at)
	}
	return Piece{Kind: kind, Color: color, Coordinate: at}, nil
}

// MustPiece is like NewPiece but panics on invalid input. It is meant for
// board setup code where a bad piece is a programming error.
func MustPiece(kind PieceKind, color Color, at Coordinate) Piece {
	p, err := NewPiece(kind, color, at)
	if err != nil {
		panic(err)
	}
	return p
}

// Promote returns the piece that replaces pawn when it is promoted to kind.
// The new piece keeps the pawn's color, square and move count.
func Promote(pawn Piece, kind PieceKind) (Piece, error) {
	if pawn.Kind != Pawn {
		return Piece{}, fmt.Errorf("%w: %s is not a pawn", ErrInvalidPromotion, pawn.Kind)
	}
	if !kind.IsPromotionTarget() {
		return Piece{}, fmt.Errorf("%w: cannot promote to %s", ErrInvalidPromotion, kind)
	}
	return Piece{Kind: kind, Color: pawn.Color, Coordinate: pawn.Coordinate, MoveCount: pawn.MoveCount}, nil
}

func (p Piece) IsOpponent(other Piece) bool {
	return other.Kind.Valid() && other.Color != p.Color
}

func (p Piece) HasMoved() bool {
	return p.MoveCount > 0
}

// Symbol is the FEN letter for the piece: upper case for White.
func (p Piece) Symbol() string {
	s := p.Kind.Notation()
	if p.Kind == Pawn {
		s = "P"
	}
	if p.Color == Black {
		return strings.ToLower(s)
	}
	return s
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s at %s", p.Color, p.Kind, p.Coordinate)
}
