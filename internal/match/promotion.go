package match

import (
	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/errors"
)

// PendingPromotion returns the piece that just reached the last rank and
// may still be changed by ResolvePromotion, or nil.
func (m *Match) PendingPromotion() *PieceView {
	if m.promoted == nil {
		return nil
	}
	v := newPieceView(m.promoted)
	return &v
}

// ResolvePromotion turns the pending piece into kind, one of Knight, Bishop,
// Rook or Queen, and re-evaluates check and checkmate for the opponent.
//
// An invalid kind leaves the match untouched and returns the still-pending
// piece together with ErrInvalidPromotion. Without a pending piece it fails
// with ErrNoPromotion.
func (m *Match) ResolvePromotion(kind chess.Kind) (PieceView, error) {
	if m.promoted == nil {
		return PieceView{}, errors.ErrNoPromotion
	}
	if !kind.IsPromotionTarget() {
		return newPieceView(m.promoted), errors.Wrapf(errors.ErrInvalidPromotion, "%s", kind)
	}

	p := m.promoted
	m.promoted = nil
	p.Kind = kind

	wasMate := m.checkmate
	m.checkmate = false
	m.inCheck = m.TestCheck(p.Colour.Opposite())
	m.checkmate = m.TestCheckmate(p.Colour.Opposite())
	switch {
	case wasMate && !m.checkmate:
		m.nextTurn()
	case !wasMate && m.checkmate:
		m.turn--
		m.currentPlayer = p.Colour
	}

	if n := len(m.history); n > 0 {
		m.history[n-1].Promotion = kind
		m.history[n-1].Check = m.inCheck
		m.history[n-1].Checkmate = m.checkmate
	}
	return newPieceView(p), nil
}
