package engine

import "github.com/lgbarn/xadrez-go/internal/chess"

var (
	diagonalDirs = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// slideDestinations casts a ray in each direction. Empty squares are
// marked; the first occupied square is marked only if it holds an opponent,
// and ends the ray either way.
func slideDestinations(grid chess.Grid, piece *chess.Piece, from chess.Position, board *chess.Board, dirs [][2]int) {
	for _, dir := range dirs {
		to := from.Add(dir[0], dir[1])
		for board.Exists(to) {
			other := board.Get(to)
			if other != nil {
				if piece.IsOpponent(other) {
					grid.Mark(to)
				}
				break // Blocked
			}
			grid.Mark(to)
			to = to.Add(dir[0], dir[1])
		}
	}
}
