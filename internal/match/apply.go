package match

import (
	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/engine"
	"github.com/lgbarn/xadrez-go/internal/errors"
)

// moveRecord is everything undoMove needs to restore the position exactly.
type moveRecord struct {
	piece          *chess.Piece
	source, target chess.Position

	captured   *chess.Piece
	capturedAt chess.Position
	// capturedIndex is where captured stood in onBoard before the move.
	capturedIndex int

	castled          bool
	rookFrom, rookTo chess.Position

	enPassant bool
}

// applyMove moves the piece on source to target with every side effect:
// capture, the castling rook shift and the en passant capture. The move
// must already be known to be pseudo-legal.
func (m *Match) applyMove(source, target chess.Position) moveRecord {
	p := m.mustRemove(source)
	p.IncreaseMoveCount()
	rec := moveRecord{piece: p, source: source, target: target}

	if captured := m.mustRemove(target); captured != nil {
		rec.captured = captured
		rec.capturedAt = target
		rec.capturedIndex = m.capture(captured)
	}
	m.mustPlace(p, target)

	if rookFrom, rookTo, ok := engine.CastlingRookShift(p, source, target); ok {
		rook := m.mustRemove(rookFrom)
		if rook == nil {
			panic(errors.Fatal(errors.Wrapf(errors.ErrEmptySquare, "castling rook missing from %v", rookFrom)))
		}
		m.mustPlace(rook, rookTo)
		rook.IncreaseMoveCount()
		rec.castled = true
		rec.rookFrom, rec.rookTo = rookFrom, rookTo
	}

	if engine.IsEnPassantCapture(p, source, target, rec.captured != nil) {
		victimAt := chess.Position{Row: source.Row, Col: target.Col}
		if victim := m.mustRemove(victimAt); victim != nil {
			rec.captured = victim
			rec.capturedAt = victimAt
			rec.capturedIndex = m.capture(victim)
			rec.enPassant = true
		}
	}

	return rec
}

// undoMove reverses applyMove. Records must be undone in reverse order.
func (m *Match) undoMove(rec moveRecord) {
	if rec.castled {
		rook := m.mustRemove(rec.rookTo)
		m.mustPlace(rook, rec.rookFrom)
		rook.DecreaseMoveCount()
	}

	p := m.mustRemove(rec.target)
	p.DecreaseMoveCount()
	m.mustPlace(p, rec.source)

	if rec.captured != nil {
		m.mustPlace(rec.captured, rec.capturedAt)
		m.uncapture(rec.captured, rec.capturedIndex)
	}
}

// capture moves p from the on-board list to the captured list and returns
// the index it held.
func (m *Match) capture(p *chess.Piece) int {
	for i, q := range m.onBoard {
		if q == p {
			m.onBoard = append(m.onBoard[:i], m.onBoard[i+1:]...)
			m.captured = append(m.captured, p)
			return i
		}
	}
	panic(errors.Fatal(errors.Wrapf(errors.ErrInvalidBoard, "captured %s is not on the board list", p.GoString())))
}

// uncapture reverses capture. p must be the most recently captured piece.
func (m *Match) uncapture(p *chess.Piece, index int) {
	last := len(m.captured) - 1
	if last < 0 || m.captured[last] != p {
		panic(errors.Fatal(errors.Wrapf(errors.ErrInvalidBoard, "%s is not the last captured piece", p.GoString())))
	}
	m.captured = m.captured[:last]
	m.onBoard = append(m.onBoard, nil)
	copy(m.onBoard[index+1:], m.onBoard[index:])
	m.onBoard[index] = p
}

func (m *Match) mustPlace(p *chess.Piece, pos chess.Position) {
	if err := m.board.Place(p, pos); err != nil {
		panic(errors.Fatal(err))
	}
}

func (m *Match) mustRemove(pos chess.Position) *chess.Piece {
	p, err := m.board.Remove(pos)
	if err != nil {
		panic(errors.Fatal(err))
	}
	return p
}
