// Package render draws a match on a text console: the board with rank and
// file labels, highlighted destinations, captured pieces and the status lines.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/match"
)

// ANSI escape sequences.
const (
	ansiReset          = "\x1b[0m"
	ansiWhite          = "\x1b[37m"
	ansiYellow         = "\x1b[33m"
	ansiBlueBackground = "\x1b[44m"
	clearScreen        = "\x1b[H\x1b[2J"
)

// Square markers for plain output.
const (
	emptySquare   = "-"
	highlightMark = "*"
)

// MatchView is the read-only part of a match the renderer needs.
type MatchView interface {
	BoardSnapshot() [][]*match.PieceView
	Captured() []match.PieceView
	Turn() int
	CurrentPlayer() chess.Colour
	InCheck() bool
	Checkmate() bool
}

// Printer writes match displays to w.
type Printer struct {
	w      io.Writer
	colour bool
}

// NewPrinter creates a printer. With colour false no escape sequences are
// written, which keeps output readable in files and pipes.
func NewPrinter(w io.Writer, colour bool) *Printer {
	return &Printer{w: w, colour: colour}
}

// Clear clears a terminal screen. It does nothing without colour.
func (p *Printer) Clear() {
	if p.colour {
		fmt.Fprint(p.w, clearScreen)
	}
}

// Match prints the board, the captured pieces and the status lines.
func (p *Printer) Match(m MatchView) {
	p.Board(m.BoardSnapshot(), nil)
	fmt.Fprintln(p.w)
	p.Captured(m.Captured())
	fmt.Fprintln(p.w)
	p.Status(m)
}

// Board prints the board with rank 8 at the top. Squares marked in
// highlight get a blue background; highlight may be nil.
func (p *Printer) Board(squares [][]*match.PieceView, highlight chess.Grid) {
	for r, row := range squares {
		fmt.Fprintf(p.w, "%d ", len(squares)-r)
		for c, v := range row {
			p.square(v, highlight.At(chess.Position{Row: r, Col: c}))
		}
		fmt.Fprintln(p.w)
	}
	fmt.Fprintf(p.w, "  %s\n", fileLabels(len(squares)))
}

func (p *Printer) square(v *match.PieceView, highlighted bool) {
	text := emptySquare
	if v != nil {
		text = v.String()
	}
	if !p.colour {
		if highlighted && v == nil {
			text = highlightMark
		}
		fmt.Fprint(p.w, text+" ")
		return
	}
	if v != nil {
		text = colourFor(v.Colour) + text + ansiReset
	}
	if highlighted {
		text = ansiBlueBackground + text + ansiReset
	}
	fmt.Fprint(p.w, text+" ")
}

// Captured prints the captured pieces grouped by colour.
func (p *Printer) Captured(captured []match.PieceView) {
	fmt.Fprintln(p.w, "Captured pieces:")
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		var letters []string
		for _, v := range captured {
			if v.Colour == colour {
				letters = append(letters, v.String())
			}
		}
		list := "[" + strings.Join(letters, ", ") + "]"
		if p.colour {
			list = colourFor(colour) + list + ansiReset
		}
		fmt.Fprintf(p.w, "%s: %s\n", colour, list)
	}
}

// Status prints the turn and either the player to move or the winner.
func (p *Printer) Status(m MatchView) {
	fmt.Fprintf(p.w, "Turn: %d\n", m.Turn())
	if m.Checkmate() {
		fmt.Fprintln(p.w, "CHECKMATE!")
		fmt.Fprintf(p.w, "Winner: %s\n", m.CurrentPlayer())
		return
	}
	fmt.Fprintf(p.w, "Waiting player: %s\n", m.CurrentPlayer())
	if m.InCheck() {
		fmt.Fprintln(p.w, "CHECK!")
	}
}

func colourFor(c chess.Colour) string {
	if c == chess.White {
		return ansiWhite
	}
	return ansiYellow
}

func fileLabels(cols int) string {
	labels := make([]string, cols)
	for i := range labels {
		labels[i] = string(rune(chess.FirstFile + i))
	}
	return strings.Join(labels, " ")
}
