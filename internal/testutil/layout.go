// Package testutil provides shared test utilities for the xadrez-go project.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"testing"

	"github.com/lgbarn/xadrez-go/internal/chess"
)

// Layout maps squares such as "e4" to piece letters: uppercase for White,
// lowercase for Black.
type Layout map[string]byte

// MustPlace puts the layout on a fresh 8x8 board and returns the board with
// the placed pieces keyed by square. It calls t.Fatal on any bad entry.
func MustPlace(t *testing.T, layout Layout) (*chess.Board, map[string]*chess.Piece) {
	t.Helper()
	board := chess.NewStandardBoard()
	pieces := make(map[string]*chess.Piece, len(layout))
	for sq, letter := range layout {
		kind := chess.KindFromLetter(letter)
		if kind == chess.NoKind {
			t.Fatalf("unknown piece letter %q on %s", letter, sq)
		}
		square, err := chess.ParseSquare(sq)
		if err != nil {
			t.Fatalf("bad square %q: %v", sq, err)
		}
		p := chess.NewPiece(kind, LetterColour(letter))
		if err := board.Place(p, square.Position()); err != nil {
			t.Fatalf("placing %c on %s: %v", letter, sq, err)
		}
		pieces[sq] = p
	}
	return board, pieces
}

// LetterColour returns Black for lowercase letters and White otherwise.
func LetterColour(letter byte) chess.Colour {
	if letter >= 'a' && letter <= 'z' {
		return chess.Black
	}
	return chess.White
}
