package match

import (
	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/engine"
	"github.com/lgbarn/xadrez-go/internal/errors"
)

// king returns the king of colour. A missing king means an earlier
// invariant was broken, so it panics rather than returning an error.
func (m *Match) king(colour chess.Colour) *chess.Piece {
	for _, p := range m.onBoard {
		if p.Kind == chess.King && p.Colour == colour {
			return p
		}
	}
	panic(errors.Fatal(errors.Wrapf(errors.ErrMissingKing, "no %s king", colour)))
}

// TestCheck reports whether the king of colour is attacked by any opposing
// piece on the board.
func (m *Match) TestCheck(colour chess.Colour) bool {
	kingPos, _ := m.king(colour).Position()
	opponent := colour.Opposite()
	return engine.Attacked(kingPos, m.piecesOf(opponent), m.snapshot(opponent, false))
}

// TestCheckmate reports whether colour is in check and no move of any of its
// pieces gets it out. Every candidate is tried on the board and undone.
func (m *Match) TestCheckmate(colour chess.Colour) bool {
	if !m.TestCheck(colour) {
		return false
	}
	s := m.snapshot(colour, true)
	for _, p := range m.piecesOf(colour) {
		source, _ := p.Position()
		for _, target := range engine.LegalDestinations(p, s).Positions() {
			rec := m.applyMove(source, target)
			stillInCheck := m.TestCheck(colour)
			m.undoMove(rec)
			if !stillInCheck {
				return false
			}
		}
	}
	return true
}

// leavesInCheck reports whether moving source -> target would leave colour's
// king attacked. The board is restored before returning.
func (m *Match) leavesInCheck(colour chess.Colour, source, target chess.Position) bool {
	rec := m.applyMove(source, target)
	defer m.undoMove(rec)
	return m.TestCheck(colour)
}
