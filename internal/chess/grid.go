package chess

// Grid marks squares of a board, true where a piece may move.
// It is indexed [row][col] with the same dimensions as the board.
type Grid [][]bool

// NewGrid returns an all-false grid.
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = make([]bool, cols)
	}
	return g
}

// At reports whether pos is marked. Positions outside the grid are never marked.
func (g Grid) At(pos Position) bool {
	if pos.Row < 0 || pos.Row >= len(g) || pos.Col < 0 || pos.Col >= len(g[pos.Row]) {
		return false
	}
	return g[pos.Row][pos.Col]
}

// Mark sets pos, ignoring positions outside the grid.
func (g Grid) Mark(pos Position) {
	if pos.Row < 0 || pos.Row >= len(g) || pos.Col < 0 || pos.Col >= len(g[pos.Row]) {
		return
	}
	g[pos.Row][pos.Col] = true
}

// Any reports whether at least one square is marked.
func (g Grid) Any() bool {
	for _, row := range g {
		for _, v := range row {
			if v {
				return true
			}
		}
	}
	return false
}

// Positions lists the marked squares in row-major order.
func (g Grid) Positions() []Position {
	var out []Position
	for r, row := range g {
		for c, v := range row {
			if v {
				out = append(out, Position{Row: r, Col: c})
			}
		}
	}
	return out
}

// Squares lists the marked squares in algebraic form, row-major order.
// Only meaningful on a standard 8x8 board.
func (g Grid) Squares() []string {
	var out []string
	for _, pos := range g.Positions() {
		if sq, err := SquareOf(pos); err == nil {
			out = append(out, sq.String())
		}
	}
	return out
}
