package engine

import "github.com/lgbarn/xadrez-go/internal/chess"

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// LegalDestinations returns every square piece could move to, ignoring
// whether the move would expose its own king. The piece must be on s.Board.
func LegalDestinations(piece *chess.Piece, s Snapshot) chess.Grid {
	grid := chess.NewGrid(s.Board.Rows(), s.Board.Cols())
	from, placed := piece.Position()
	if !placed {
		return grid
	}

	switch piece.Kind {
	case chess.Pawn:
		pawnDestinations(grid, piece, from, s)
	case chess.Knight:
		stepDestinations(grid, piece, from, s.Board, knightOffsets)
	case chess.Bishop:
		slideDestinations(grid, piece, from, s.Board, diagonalDirs)
	case chess.Rook:
		slideDestinations(grid, piece, from, s.Board, straightDirs)
	case chess.Queen:
		slideDestinations(grid, piece, from, s.Board, diagonalDirs)
		slideDestinations(grid, piece, from, s.Board, straightDirs)
	case chess.King:
		stepDestinations(grid, piece, from, s.Board, kingOffsets)
		castlingDestinations(grid, piece, from, s)
	}
	return grid
}

// HasDestinations reports whether LegalDestinations marks any square.
func HasDestinations(piece *chess.Piece, s Snapshot) bool {
	return LegalDestinations(piece, s).Any()
}

// blockedOrCapturable reports whether piece may land on pos: the square
// exists and is either empty or holds an opponent piece.
func blockedOrCapturable(board *chess.Board, piece *chess.Piece, pos chess.Position) bool {
	if !board.Exists(pos) {
		return false
	}
	other := board.Get(pos)
	return other == nil || piece.IsOpponent(other)
}

// stepDestinations marks fixed single-step offsets (knight and king).
func stepDestinations(grid chess.Grid, piece *chess.Piece, from chess.Position, board *chess.Board, offsets [][2]int) {
	for _, off := range offsets {
		to := from.Add(off[0], off[1])
		if blockedOrCapturable(board, piece, to) {
			grid.Mark(to)
		}
	}
}
