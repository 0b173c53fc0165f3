package chess

import (
	"sort"
	"testing"
)

// placement describes one piece for a test position.
type placement struct {
	kind  PieceKind
	color Color
	at    Coordinate
	moves uint
}

func setup(t *testing.T, side Color, pieces ...placement) *Board {
	t.Helper()
	b := NewEmptyBoard(side)
	for _, pl := range pieces {
		p, err := NewPiece(pl.kind, pl.color, pl.at)
		if err != nil {
			t.Fatalf("new piece %+v: %v", pl, err)
		}
		p.MoveCount = pl.moves
		if err := b.Place(pl.at, p); err != nil {
			t.Fatalf("place %+v: %v", pl, err)
		}
	}
	return b
}

func sq(t *testing.T, s string) Coordinate {
	t.Helper()
	c, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("parse square %q: %v", s, err)
	}
	return c
}

func sorted(cs []Coordinate) []Coordinate {
	out := append([]Coordinate(nil), cs...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].File < out[j].File
	})
	return out
}

func squares(t *testing.T, names ...string) []Coordinate {
	t.Helper()
	out := make([]Coordinate, 0, len(names))
	for _, n := range names {
		out = append(out, sq(t, n))
	}
	return sorted(out)
}

// play applies a sequence of "e2e4"-style moves and fails on any rejection.
// A fifth character chooses a promotion piece.
func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		from, to := sq(t, mv[:2]), sq(t, mv[2:4])
		res := b.ApplyMove(from, to)
		if res == Rejected {
			t.Fatalf("move %s rejected\n%s", mv, b)
		}
		if len(mv) == 5 {
			kind, err := ParsePieceKind(mv[4:])
			if err != nil {
				t.Fatalf("promotion %s: %v", mv, err)
			}
			if got := b.ChoosePromotion(kind); got != Applied {
				t.Fatalf("promotion %s: got %s", mv, got)
			}
		}
	}
}
