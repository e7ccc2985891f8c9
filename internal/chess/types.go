// Package chess provides the core chess types: colours, piece kinds,
// coordinates and the board container.
package chess

import (
	"fmt"

	"github.com/lgbarn/xadrez-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Kind is the variant tag of a piece.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter maps a letter (either case) to a kind. It returns NoKind
// for anything else.
func KindFromLetter(letter byte) Kind {
	switch letter {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoKind
}

// IsPromotionTarget reports whether a pawn may be promoted to k.
func (k Kind) IsPromotionTarget() bool {
	return k == Knight || k == Bishop || k == Rook || k == Queen
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	FirstRank = 1
	LastRank  = BoardSize
	FirstFile = 'a'
	LastFile  = FirstFile + BoardSize - 1
)

// Position is a zero-indexed (row, column) coordinate on the board.
// Row 0 is rank 8, row 7 is rank 1.
type Position struct {
	Row int
	Col int
}

// Add returns the position offset by the given row and column deltas.
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// String returns a debugging representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Square is an algebraic coordinate, a1 through h8.
type Square struct {
	File byte
	Rank int
}

// NewSquare validates file and rank and returns the square.
func NewSquare(file byte, rank int) (Square, error) {
	if file < FirstFile || file > LastFile || rank < FirstRank || rank > LastRank {
		return Square{}, errors.Wrapf(errors.ErrMalformedCoordinate, "%c%d", file, rank)
	}
	return Square{File: file, Rank: rank}, nil
}

// ParseSquare parses text such as "e4". Surrounding whitespace is not accepted.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, errors.Wrapf(errors.ErrMalformedCoordinate, "%q", s)
	}
	file := s[0]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if s[1] < '1' || s[1] > '9' {
		return Square{}, errors.Wrapf(errors.ErrMalformedCoordinate, "%q", s)
	}
	return NewSquare(file, int(s[1]-'0'))
}

// MustSquare is like ParseSquare but panics on malformed input. It is meant
// for constant coordinates in setup code and tests.
func MustSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// Position converts the square to its board position.
func (s Square) Position() Position {
	return Position{Row: BoardSize - s.Rank, Col: int(s.File - FirstFile)}
}

// String returns the algebraic form of the square.
func (s Square) String() string {
	return fmt.Sprintf("%c%d", s.File, s.Rank)
}

// SquareOf converts a board position to its algebraic square.
func SquareOf(p Position) (Square, error) {
	if p.Row < 0 || p.Row >= BoardSize || p.Col < 0 || p.Col >= BoardSize {
		return Square{}, errors.Wrapf(errors.ErrOutOfBounds, "position %v", p)
	}
	return NewSquare(byte(FirstFile+p.Col), BoardSize-p.Row)
}

// ColourOffset returns the row step a pawn of the colour moves by:
// -1 for White (towards row 0), +1 for Black.
func ColourOffset(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// HomeRow returns the back-rank row of the colour.
func HomeRow(colour Colour) int {
	if colour == White {
		return BoardSize - 1
	}
	return 0
}
