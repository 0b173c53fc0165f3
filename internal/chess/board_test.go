package chess

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBoardSetup(t *testing.T) {
	b := NewBoard()

	if b.SideToMove() != White {
		t.Fatalf("expected white to move, got %s", b.SideToMove())
	}
	if b.Status().State != InProgress {
		t.Fatalf("expected in progress, got %s", b.Status())
	}

	for _, color := range []Color{White, Black} {
		if got := len(b.Pieces(color)); got != 16 {
			t.Errorf("%s has %d pieces, want 16", color, got)
		}
		if got := len(b.FindPieces(Pawn, color)); got != 8 {
			t.Errorf("%s has %d pawns, want 8", color, got)
		}
	}

	king, ok := b.KingSquare(White)
	if !ok || king != At(7, 4) {
		t.Fatalf("white king at %v (found %v), want e1", king, ok)
	}
	king, ok = b.KingSquare(Black)
	if !ok || king != At(0, 4) {
		t.Fatalf("black king at %v (found %v), want e8", king, ok)
	}

	queen, ok := b.PieceAt(sq(t, "d1"))
	if !ok || queen.Kind != Queen || queen.Color != White {
		t.Fatalf("expected white queen on d1, got %v", queen)
	}
	if b.IsOccupied(sq(t, "e4")) {
		t.Fatalf("e4 should be empty")
	}
}

func TestPieceCoordinateMatchesSquare(t *testing.T) {
	b := NewBoard()
	play(t, b, "e2e4", "e7e5", "g1f3", "b8c6")
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if p, ok := b.PieceAt(At(rank, file)); ok && p.Coordinate != At(rank, file) {
				t.Fatalf("piece %v stored under %v", p, At(rank, file))
			}
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	clone := b.Clone()
	if *clone != *b {
		t.Fatalf("clone differs from original before any mutation")
	}
	before := *b

	if res := clone.ApplyMove(sq(t, "e2"), sq(t, "e4")); res != Applied {
		t.Fatalf("clone move: %s", res)
	}
	clone.Remove(sq(t, "d1"))

	if *b != before {
		t.Fatalf("mutating the clone changed the original")
	}
	if _, ok := b.PieceAt(sq(t, "e2")); !ok {
		t.Fatalf("original lost its e2 pawn")
	}
}

func TestPlaceAndRemove(t *testing.T) {
	b := NewEmptyBoard(White)
	rook := MustPiece(Rook, Black, At(0, 0))

	if err := b.Place(sq(t, "d4"), rook); err != nil {
		t.Fatalf("place: %v", err)
	}
	got, ok := b.PieceAt(sq(t, "d4"))
	if !ok || got.Coordinate != sq(t, "d4") {
		t.Fatalf("placed piece has coordinate %v, want d4", got.Coordinate)
	}

	if err := b.Place(sq(t, "d4"), rook); !errors.Is(err, ErrSquareOccupied) {
		t.Fatalf("expected ErrSquareOccupied, got %v", err)
	}
	if err := b.Place(At(8, 0), rook); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := b.Place(sq(t, "a1"), Piece{}); !errors.Is(err, ErrInvalidPiece) {
		t.Fatalf("expected ErrInvalidPiece, got %v", err)
	}

	removed, ok := b.Remove(sq(t, "d4"))
	if !ok || removed.Kind != Rook {
		t.Fatalf("remove returned %v, %v", removed, ok)
	}
	if _, ok := b.Remove(sq(t, "d4")); ok {
		t.Fatalf("second remove should find nothing")
	}
}

func TestNewPieceValidation(t *testing.T) {
	tests := []struct {
		name  string
		kind  PieceKind
		color Color
		at    Coordinate
		err   error
	}{
		{name: "valid", kind: Knight, color: White, at: At(7, 1)},
		{name: "no kind", kind: NoKind, color: White, at: At(0, 0), err: ErrInvalidPiece},
		{name: "unknown kind", kind: King + 1, color: Black, at: At(0, 0), err: ErrInvalidPiece},
		{name: "unknown color", kind: Rook, color: Color(7), at: At(0, 0), err: ErrInvalidPiece},
		{name: "off board", kind: Rook, color: Black, at: At(-1, 3), err: ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPiece(tt.kind, tt.color, tt.at)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := Piece{Kind: tt.kind, Color: tt.color, Coordinate: tt.at}
			if diff := cmp.Diff(want, p); diff != "" {
				t.Fatalf("piece mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMustPiecePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for invalid piece")
		}
	}()
	MustPiece(NoKind, White, At(0, 0))
}

func TestPromote(t *testing.T) {
	pawn := Piece{Kind: Pawn, Color: Black, Coordinate: At(7, 2), MoveCount: 5}

	for _, kind := range []PieceKind{Queen, Rook, Bishop, Knight} {
		got, err := Promote(pawn, kind)
		if err != nil {
			t.Fatalf("promote to %s: %v", kind, err)
		}
		want := Piece{Kind: kind, Color: Black, Coordinate: At(7, 2), MoveCount: 5}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("promote to %s mismatch (-want +got):\n%s", kind, diff)
		}
	}

	for _, kind := range []PieceKind{Pawn, King, NoKind} {
		if _, err := Promote(pawn, kind); !errors.Is(err, ErrInvalidPromotion) {
			t.Errorf("promote to %s: expected ErrInvalidPromotion, got %v", kind, err)
		}
	}
	if _, err := Promote(MustPiece(Rook, White, At(0, 0)), Queen); !errors.Is(err, ErrInvalidPromotion) {
		t.Fatalf("promoting a rook: expected ErrInvalidPromotion, got %v", err)
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want Coordinate
		ok   bool
	}{
		{"a8", At(0, 0), true},
		{"h1", At(7, 7), true},
		{"e2", At(6, 4), true},
		{"e4", At(4, 4), true},
		{"i1", Coordinate{}, false},
		{"a9", Coordinate{}, false},
		{"a0", Coordinate{}, false},
		{"e", Coordinate{}, false},
		{"e22", Coordinate{}, false},
	}
	for _, tt := range tests {
		got, err := ParseSquare(tt.in)
		if tt.ok != (err == nil) {
			t.Errorf("ParseSquare(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseSquare(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.ok && got.String() != tt.in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}

func TestIsWithinBounds(t *testing.T) {
	b := NewBoard()
	tests := []struct {
		c    Coordinate
		want bool
	}{
		{At(0, 0), true},
		{At(7, 7), true},
		{At(3, 5), true},
		{At(-1, 0), false},
		{At(0, -1), false},
		{At(8, 0), false},
		{At(0, 8), false},
		{At(8, 8), false},
	}
	for _, tt := range tests {
		if got := b.IsWithinBounds(tt.c); got != tt.want {
			t.Errorf("IsWithinBounds(%d,%d) = %v, want %v", tt.c.Rank, tt.c.File, got, tt.want)
		}
	}
}

func TestMoveNumber(t *testing.T) {
	b := NewBoard()
	steps := []struct {
		move string
		want int
	}{
		{"", 1},
		{"e2e4", 1},
		{"e7e5", 2},
		{"g1f3", 2},
		{"b8c6", 3},
	}
	for _, st := range steps {
		if st.move != "" {
			play(t, b, st.move)
		}
		if got := b.MoveNumber(); got != st.want {
			t.Errorf("after %q: MoveNumber = %d, want %d", st.move, got, st.want)
		}
	}

	if b.ApplyMove(sq(t, "e4"), sq(t, "e6")) != Rejected {
		t.Fatal("e4e6 was accepted")
	}
	if got := b.MoveNumber(); got != 3 {
		t.Errorf("rejected move changed MoveNumber to %d", got)
	}

	black := setup(t, Black,
		placement{kind: King, color: White, at: At(7, 4)},
		placement{kind: King, color: Black, at: At(0, 4)},
	)
	if got := black.MoveNumber(); got != 1 {
		t.Fatalf("empty board MoveNumber = %d, want 1", got)
	}
	play(t, black, "e8d8")
	if got := black.MoveNumber(); got != 2 {
		t.Errorf("MoveNumber after Black's first move = %d, want 2", got)
	}
}

func TestStringAndFEN(t *testing.T) {
	b := NewBoard()
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	if got := b.FEN(); got != want {
		t.Fatalf("FEN = %q, want %q", got, want)
	}

	play(t, b, "e2e4", "e7e5", "e1e2")
	want = "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPPKPPP/RNBQ1BNR b kq - 0 2"
	if got := b.FEN(); got != want {
		t.Fatalf("FEN = %q, want %q", got, want)
	}

	diagram := NewBoard().String()
	wantDiagram := "8 r n b q k b n r\n" +
		"7 p p p p p p p p\n" +
		"6 . . . . . . . .\n" +
		"5 . . . . . . . .\n" +
		"4 . . . . . . . .\n" +
		"3 . . . . . . . .\n" +
		"2 P P P P P P P P\n" +
		"1 R N B Q K B N R\n" +
		"  a b c d e f g h\n"
	if diff := cmp.Diff(wantDiagram, diagram); diff != "" {
		t.Fatalf("diagram mismatch (-want +got):\n%s", diff)
	}
}
