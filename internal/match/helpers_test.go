package match

import (
	"strings"
	"testing"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/testutil"
)

// parseMove splits "e2e4" or "e2-e4" into its squares.
func parseMove(t *testing.T, mv string) (chess.Square, chess.Square) {
	t.Helper()
	mv = strings.ReplaceAll(mv, "-", "")
	if len(mv) != 4 {
		t.Fatalf("bad move text %q", mv)
	}
	from, err := chess.ParseSquare(mv[:2])
	if err != nil {
		t.Fatalf("bad move text %q: %v", mv, err)
	}
	to, err := chess.ParseSquare(mv[2:])
	if err != nil {
		t.Fatalf("bad move text %q: %v", mv, err)
	}
	return from, to
}

// play performs the moves in order and fails the test on the first error.
func play(t *testing.T, m *Match, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		from, to := parseMove(t, mv)
		if _, err := m.PerformMove(from, to); err != nil {
			t.Fatalf("move %s: %v", mv, err)
		}
	}
}

// mustSetup builds a match from a layout; every piece starts unmoved.
func mustSetup(t *testing.T, layout testutil.Layout, opts ...Option) *Match {
	t.Helper()
	var placements []Placement
	for sq, letter := range layout {
		placements = append(placements, Placement{
			Kind:   chess.KindFromLetter(letter),
			Colour: testutil.LetterColour(letter),
			Square: chess.MustSquare(sq),
		})
	}
	m, err := NewWithSetup(placements, opts...)
	if err != nil {
		t.Fatalf("NewWithSetup: %v", err)
	}
	return m
}

// state captures everything a rejected or undone move must leave intact.
type state struct {
	Squares   [][]string
	OnBoard   []string
	Captured  []string
	Turn      int
	Player    chess.Colour
	InCheck   bool
	Checkmate bool
	EnPassant string
}

func captureState(m *Match) state {
	s := state{
		Turn:      m.turn,
		Player:    m.currentPlayer,
		InCheck:   m.inCheck,
		Checkmate: m.checkmate,
	}
	for r := 0; r < m.board.Rows(); r++ {
		row := make([]string, m.board.Cols())
		for c := range row {
			if p := m.board.Get(chess.Position{Row: r, Col: c}); p != nil {
				row[c] = p.GoString()
			}
		}
		s.Squares = append(s.Squares, row)
	}
	for _, p := range m.onBoard {
		s.OnBoard = append(s.OnBoard, p.GoString())
	}
	for _, p := range m.captured {
		s.Captured = append(s.Captured, p.GoString())
	}
	if m.enPassant != nil {
		s.EnPassant = m.enPassant.GoString()
	}
	return s
}

func square(s string) chess.Square {
	return chess.MustSquare(s)
}
