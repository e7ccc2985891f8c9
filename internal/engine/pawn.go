package engine

import "github.com/lgbarn/xadrez-go/internal/chess"

// pawnDestinations marks single and double advances, diagonal captures and
// en passant captures.
func pawnDestinations(grid chess.Grid, pawn *chess.Piece, from chess.Position, s Snapshot) {
	board := s.Board
	dir := chess.ColourOffset(pawn.Colour)

	// Forward moves never capture
	one := from.Add(dir, 0)
	if board.Exists(one) && !board.IsOccupied(one) {
		grid.Mark(one)
		two := from.Add(2*dir, 0)
		if pawn.MoveCount == 0 && from.Row == startRow(pawn.Colour, board) && board.Exists(two) && !board.IsOccupied(two) {
			grid.Mark(two)
		}
	}

	// Captures
	for _, dc := range []int{-1, 1} {
		to := from.Add(dir, dc)
		if board.Exists(to) && pawn.IsOpponent(board.Get(to)) {
			grid.Mark(to)
		}
	}

	// En passant
	if s.EnPassant == nil || from.Row != enPassantRow(pawn.Colour, board) {
		return
	}
	for _, dc := range []int{-1, 1} {
		side := from.Add(0, dc)
		victim := board.Get(side)
		if victim != nil && victim == s.EnPassant && pawn.IsOpponent(victim) {
			grid.Mark(side.Add(dir, 0))
		}
	}
}

// startRow returns the row pawns of the colour start on.
func startRow(colour chess.Colour, board *chess.Board) int {
	if colour == chess.White {
		return board.Rows() - 2
	}
	return 1
}

// enPassantRow returns the row a pawn of the colour must stand on to capture
// en passant: its fifth rank.
func enPassantRow(colour chess.Colour, board *chess.Board) int {
	if colour == chess.White {
		return 3
	}
	return board.Rows() - 4
}

// IsDoubleStep reports whether a pawn moving from -> to advanced two ranks.
func IsDoubleStep(piece *chess.Piece, from, to chess.Position) bool {
	return piece.Kind == chess.Pawn && from.Col == to.Col && abs(to.Row-from.Row) == 2
}

// IsEnPassantCapture reports whether a pawn move from -> to onto an empty
// square changed file, which only an en passant capture can do.
func IsEnPassantCapture(piece *chess.Piece, from, to chess.Position, targetOccupied bool) bool {
	return piece.Kind == chess.Pawn && from.Col != to.Col && !targetOccupied
}

// IsPromotion reports whether a pawn arriving at pos has reached the
// opponent's back rank.
func IsPromotion(piece *chess.Piece, pos chess.Position, board *chess.Board) bool {
	if piece.Kind != chess.Pawn {
		return false
	}
	if piece.Colour == chess.White {
		return pos.Row == 0
	}
	return pos.Row == board.Rows()-1
}
