package match

import (
	"fmt"
	"strings"

	"github.com/lgbarn/xadrez-go/internal/chess"
)

// PieceView is a read-only projection of a piece for rendering.
type PieceView struct {
	Kind      chess.Kind
	Colour    chess.Colour
	MoveCount int
	// Square is the piece's square; for captured pieces, the square it was
	// taken on.
	Square   chess.Square
	Captured bool
}

func newPieceView(p *chess.Piece) PieceView {
	pos, placed := p.Position()
	sq, _ := chess.SquareOf(pos)
	return PieceView{
		Kind:      p.Kind,
		Colour:    p.Colour,
		MoveCount: p.MoveCount,
		Square:    sq,
		Captured:  !placed,
	}
}

// String returns the piece letter, lowercase for Black.
func (v PieceView) String() string {
	letter := v.Kind.Letter()
	if v.Colour == chess.Black {
		letter += 'a' - 'A'
	}
	return string(letter)
}

// BoardSnapshot returns the board as rows of optional pieces, row 0 being
// rank 8.
func (m *Match) BoardSnapshot() [][]*PieceView {
	out := make([][]*PieceView, m.board.Rows())
	for r := range out {
		out[r] = make([]*PieceView, m.board.Cols())
		for c := range out[r] {
			if p := m.board.Get(chess.Position{Row: r, Col: c}); p != nil {
				v := newPieceView(p)
				out[r][c] = &v
			}
		}
	}
	return out
}

// OnBoard returns views of the pieces still on the board.
func (m *Match) OnBoard() []PieceView {
	return views(m.onBoard)
}

// Captured returns views of the captured pieces in capture order.
func (m *Match) Captured() []PieceView {
	return views(m.captured)
}

// EnPassantVulnerable returns the pawn that may be captured en passant on
// the next move, or nil.
func (m *Match) EnPassantVulnerable() *PieceView {
	if m.enPassant == nil {
		return nil
	}
	v := newPieceView(m.enPassant)
	return &v
}

// History returns the completed half-moves in order.
func (m *Match) History() []Ply {
	out := make([]Ply, len(m.history))
	copy(out, m.history)
	return out
}

func views(pieces []*chess.Piece) []PieceView {
	out := make([]PieceView, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, newPieceView(p))
	}
	return out
}

// Ply is one completed half-move.
type Ply struct {
	Turn      int
	Colour    chess.Colour
	Kind      chess.Kind // kind before any promotion
	From, To  chess.Square
	Captured  *PieceView
	Castle    bool
	EnPassant bool
	Promotion chess.Kind
	Check     bool
	Checkmate bool
}

// String formats the ply in long algebraic notation, e.g. "Ng1-f3",
// "e5xf6 e.p.", "e7-e8=Q+", "Ke1-g1 (O-O)".
func (p Ply) String() string {
	var b strings.Builder
	if p.Kind != chess.Pawn {
		b.WriteByte(p.Kind.Letter())
	}
	sep := "-"
	if p.Captured != nil {
		sep = "x"
	}
	fmt.Fprintf(&b, "%s%s%s", p.From, sep, p.To)
	if p.Promotion != chess.NoKind {
		fmt.Fprintf(&b, "=%c", p.Promotion.Letter())
	}
	switch {
	case p.Checkmate:
		b.WriteByte('#')
	case p.Check:
		b.WriteByte('+')
	}
	if p.EnPassant {
		b.WriteString(" e.p.")
	}
	if p.Castle {
		if p.To.File > p.From.File {
			b.WriteString(" (O-O)")
		} else {
			b.WriteString(" (O-O-O)")
		}
	}
	return b.String()
}
