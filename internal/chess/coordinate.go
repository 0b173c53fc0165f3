package chess

import "fmt"

// BoardSize is the number of ranks and files on the board.
const BoardSize = 8

// Coordinate addresses a square by rank and file. Rank 0 is Black's back
// rank ("8" in algebraic notation), rank 7 is White's ("1").
type Coordinate struct {
	Rank int
	File int
}

// At is shorthand for Coordinate{Rank: rank, File: file}.
func At(rank, file int) Coordinate {
	return Coordinate{Rank: rank, File: file}
}

func (c Coordinate) Valid() bool {
	return c.Rank >= 0 && c.Rank < BoardSize && c.File >= 0 && c.File < BoardSize
}

func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{Rank: c.Rank + d.Rank, File: c.File + d.File}
}

func (c Coordinate) String() string {
	if !c.Valid() {
		return fmt.Sprintf("(%d,%d)", c.Rank, c.File)
	}
	return fmt.Sprintf("%c%d", 'a'+c.File, BoardSize-c.Rank)
}

func (c Coordinate) fileNotation() string {
	return fmt.Sprintf("%c", 'a'+c.File)
}

// ParseSquare reads algebraic square notation such as "e2".
func ParseSquare(s string) (Coordinate, error) {
	if len(s) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	c := Coordinate{Rank: BoardSize - int(s[1]-'0'), File: int(s[0] - 'a')}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return c, nil
}

// MarshalText encodes the coordinate in algebraic notation.
func (c Coordinate) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	return []byte(c.String()), nil
}

func (c *Coordinate) UnmarshalText(text []byte) error {
	parsed, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
