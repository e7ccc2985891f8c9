package engine

import "github.com/lgbarn/xadrez-go/internal/chess"

// Castling geometry relative to the king's square.
const (
	kingsideRookOffset  = 3
	queensideRookOffset = -4
	castleStep          = 2
)

// castlingDestinations marks the king's two-square hop toward an unmoved
// rook of its colour when every square between them is empty. The rook's
// relocation is applied when the move is executed.
func castlingDestinations(grid chess.Grid, king *chess.Piece, from chess.Position, s Snapshot) {
	if king.MoveCount != 0 || s.kingInCheck(king.Colour) {
		return
	}
	for _, offset := range []int{kingsideRookOffset, queensideRookOffset} {
		if canCastle(s.Board, king, from, offset) {
			grid.Mark(from.Add(0, castleStep*sign(offset)))
		}
	}
}

// canCastle checks the rook at from+rookOffset and the squares between.
func canCastle(board *chess.Board, king *chess.Piece, from chess.Position, rookOffset int) bool {
	rook := board.Get(from.Add(0, rookOffset))
	if rook == nil || rook.Kind != chess.Rook || rook.Colour != king.Colour || rook.MoveCount != 0 {
		return false
	}
	step := sign(rookOffset)
	for c := step; c != rookOffset; c += step {
		if board.IsOccupied(from.Add(0, c)) {
			return false
		}
	}
	return true
}

// CastlingRookShift returns the rook's source and destination for a king
// move from -> to, and false if the move is not a castling hop.
func CastlingRookShift(piece *chess.Piece, from, to chess.Position) (rookFrom, rookTo chess.Position, ok bool) {
	if piece.Kind != chess.King || from.Row != to.Row || abs(to.Col-from.Col) != castleStep {
		return chess.Position{}, chess.Position{}, false
	}
	if to.Col > from.Col {
		return from.Add(0, kingsideRookOffset), from.Add(0, 1), true
	}
	return from.Add(0, queensideRookOffset), from.Add(0, -1), true
}
