// Package engine generates pseudo-legal destinations for chess pieces.
//
// Generation never mutates the board and never consults a match: everything
// a piece needs beyond the board contents is carried in a Snapshot.
package engine

import "github.com/lgbarn/xadrez-go/internal/chess"

// Snapshot is the read-only context for move generation.
type Snapshot struct {
	Board *chess.Board

	// EnPassant is the pawn that just made a two-square advance, if any.
	EnPassant *chess.Piece

	// ToMove is the colour whose turn it is; InCheck reports whether that
	// colour's king is attacked. Castling is withheld from a king in check.
	ToMove  chess.Colour
	InCheck bool
}

// kingInCheck reports whether the snapshot marks colour as being in check.
func (s Snapshot) kingInCheck(colour chess.Colour) bool {
	return s.InCheck && s.ToMove == colour
}
