package match

import (
	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/engine"
	"github.com/lgbarn/xadrez-go/internal/errors"
)

// PossibleMoves returns the pseudo-legal destinations of the piece on
// source. It fails if the square is empty, holds an opponent piece, or the
// piece cannot move at all.
func (m *Match) PossibleMoves(source chess.Square) (chess.Grid, error) {
	p, err := m.validateSource(source)
	if err != nil {
		return nil, err
	}
	return engine.LegalDestinations(p, m.snapshot(m.currentPlayer, m.inCheck)), nil
}

// SafeDestinations is PossibleMoves without the destinations that would
// leave the mover's own king in check.
func (m *Match) SafeDestinations(source chess.Square) (chess.Grid, error) {
	grid, err := m.PossibleMoves(source)
	if err != nil {
		return nil, err
	}
	from := source.Position()
	for _, to := range grid.Positions() {
		if m.leavesInCheck(m.currentPlayer, from, to) {
			grid[to.Row][to.Col] = false
		}
	}
	return grid, nil
}

// PerformMove plays the piece on source to target for the current player
// and returns the captured piece, or nil. A rejected move leaves the match
// exactly as it was.
func (m *Match) PerformMove(source, target chess.Square) (*PieceView, error) {
	if m.checkmate {
		return nil, m.moveError(errors.ErrMatchOver, source.String(), target.String())
	}
	p, err := m.validateSource(source)
	if err != nil {
		return nil, err
	}
	if err := m.validateTarget(p, source, target); err != nil {
		return nil, err
	}

	from, to := source.Position(), target.Position()
	rec := m.applyMove(from, to)
	if m.TestCheck(m.currentPlayer) {
		m.undoMove(rec)
		return nil, m.moveError(errors.ErrMovesIntoCheck, source.String(), target.String())
	}

	mover := m.currentPlayer
	ply := Ply{
		Turn:      m.turn,
		Colour:    mover,
		Kind:      p.Kind,
		From:      source,
		To:        target,
		Castle:    rec.castled,
		EnPassant: rec.enPassant,
	}

	m.promoted = nil
	if engine.IsPromotion(p, to, m.board) {
		p.Kind = m.promotionDefault
		m.promoted = p
		ply.Promotion = p.Kind
	}

	// The vulnerable pawn is recorded before the mate search so that an
	// en passant capture counts as a way out of check.
	if engine.IsDoubleStep(p, from, to) {
		m.enPassant = p
	} else {
		m.enPassant = nil
	}

	m.evaluateCheck(mover)

	ply.Check = m.inCheck
	ply.Checkmate = m.checkmate
	if rec.captured != nil {
		v := newPieceView(rec.captured)
		ply.Captured = &v
	}
	m.history = append(m.history, ply)

	return ply.Captured, nil
}

// evaluateCheck updates the check and checkmate flags for mover's opponent
// and advances the turn unless the game is over.
func (m *Match) evaluateCheck(mover chess.Colour) {
	defender := mover.Opposite()
	m.inCheck = m.TestCheck(defender)
	if m.TestCheckmate(defender) {
		m.checkmate = true
		return
	}
	m.nextTurn()
}

func (m *Match) validateSource(source chess.Square) (*chess.Piece, error) {
	p := m.board.Get(source.Position())
	if p == nil {
		return nil, m.moveError(errors.ErrEmptySquare, source.String(), "")
	}
	if p.Colour != m.currentPlayer {
		return nil, m.moveError(errors.ErrNotYourPiece, source.String(), "")
	}
	if !engine.HasDestinations(p, m.snapshot(m.currentPlayer, m.inCheck)) {
		return nil, m.moveError(errors.ErrNoLegalMoves, source.String(), "")
	}
	return p, nil
}

func (m *Match) validateTarget(p *chess.Piece, source, target chess.Square) error {
	grid := engine.LegalDestinations(p, m.snapshot(m.currentPlayer, m.inCheck))
	if !grid.At(target.Position()) {
		return m.moveError(errors.ErrIllegalDestination, source.String(), target.String())
	}
	return nil
}

func (m *Match) moveError(err error, source, target string) error {
	return &errors.MoveError{
		Err:    err,
		Source: source,
		Target: target,
		Player: m.currentPlayer.String(),
		Turn:   m.turn,
	}
}
