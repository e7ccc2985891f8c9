package chess

import "github.com/lgbarn/xadrez-go/internal/errors"

// Board is a fixed grid holding at most one piece per square. It knows
// nothing about chess rules.
type Board struct {
	rows    int
	cols    int
	squares [][]*Piece
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(rows, cols int) (*Board, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.Wrapf(errors.ErrInvalidBoard, "%dx%d", rows, cols)
	}
	squares := make([][]*Piece, rows)
	for i := range squares {
		squares[i] = make([]*Piece, cols)
	}
	return &Board{rows: rows, cols: cols, squares: squares}, nil
}

// NewStandardBoard creates an empty 8x8 board.
func NewStandardBoard() *Board {
	b, _ := NewBoard(BoardSize, BoardSize)
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

// Exists reports whether pos lies on the board.
func (b *Board) Exists(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.rows && pos.Col >= 0 && pos.Col < b.cols
}

// IsOccupied reports whether a piece stands on pos. Positions off the board
// are never occupied.
func (b *Board) IsOccupied(pos Position) bool {
	return b.Exists(pos) && b.squares[pos.Row][pos.Col] != nil
}

// PieceAt returns the piece on pos, or nil if the square is empty.
func (b *Board) PieceAt(pos Position) (*Piece, error) {
	if !b.Exists(pos) {
		return nil, errors.Wrapf(errors.ErrOutOfBounds, "position %v", pos)
	}
	return b.squares[pos.Row][pos.Col], nil
}

// Get returns the piece on pos, or nil if pos is empty or off the board.
func (b *Board) Get(pos Position) *Piece {
	if !b.Exists(pos) {
		return nil
	}
	return b.squares[pos.Row][pos.Col]
}

// Place puts piece on pos and records the position on the piece.
func (b *Board) Place(piece *Piece, pos Position) error {
	if !b.Exists(pos) {
		return errors.Wrapf(errors.ErrOutOfBounds, "position %v", pos)
	}
	if b.squares[pos.Row][pos.Col] != nil {
		return errors.Wrapf(errors.ErrOccupiedSquare, "position %v", pos)
	}
	if piece.placed {
		return errors.Wrapf(errors.ErrOccupiedSquare, "piece %s already stands on %v", piece, piece.pos)
	}
	b.squares[pos.Row][pos.Col] = piece
	piece.pos = pos
	piece.placed = true
	return nil
}

// Remove detaches and returns the piece on pos. It returns nil if the
// square is empty.
func (b *Board) Remove(pos Position) (*Piece, error) {
	if !b.Exists(pos) {
		return nil, errors.Wrapf(errors.ErrOutOfBounds, "position %v", pos)
	}
	piece := b.squares[pos.Row][pos.Col]
	if piece == nil {
		return nil, nil
	}
	b.squares[pos.Row][pos.Col] = nil
	piece.placed = false
	return piece, nil
}

// Pieces returns every piece on the board in row-major order.
func (b *Board) Pieces() []*Piece {
	var out []*Piece
	for _, row := range b.squares {
		for _, p := range row {
			if p != nil {
				out = append(out, p)
			}
		}
	}
	return out
}
