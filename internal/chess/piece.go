package chess

import "fmt"

// Piece is a chess piece on, or captured from, a board. Its position is a
// cached copy kept up to date by Board; the board is the authority on
// placement.
type Piece struct {
	Kind      Kind
	Colour    Colour
	MoveCount int

	pos    Position
	placed bool
}

// NewPiece creates an unplaced piece.
func NewPiece(kind Kind, colour Colour) *Piece {
	return &Piece{Kind: kind, Colour: colour}
}

// Position returns the square the piece was last placed on and whether it
// is currently on a board.
func (p *Piece) Position() (Position, bool) {
	return p.pos, p.placed
}

// IncreaseMoveCount records one more move by the piece.
func (p *Piece) IncreaseMoveCount() {
	p.MoveCount++
}

// DecreaseMoveCount undoes IncreaseMoveCount.
func (p *Piece) DecreaseMoveCount() {
	if p.MoveCount > 0 {
		p.MoveCount--
	}
}

// IsOpponent reports whether other is a piece of the opposite colour.
func (p *Piece) IsOpponent(other *Piece) bool {
	return other != nil && other.Colour != p.Colour
}

// String returns the piece letter, lowercase for Black.
func (p *Piece) String() string {
	letter := p.Kind.Letter()
	if p.Colour == Black {
		letter += 'a' - 'A'
	}
	return string(letter)
}

// GoString helps when pieces show up in test diffs.
func (p *Piece) GoString() string {
	return fmt.Sprintf("%s %s x%d @%v", p.Colour, p.Kind, p.MoveCount, p.pos)
}
