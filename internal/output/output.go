// Package output writes replay results as text or JSON.
package output

import (
	"fmt"
	"io"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/match"
)

// DefaultLineLength is the wrap column for move lists.
const DefaultLineLength = 80

// LineWriter handles formatted output with line length control.
type LineWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewLineWriter creates a new line writer.
func NewLineWriter(w io.Writer, maxLineLength int) *LineWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &LineWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a word, separated by a space or a line break.
func (o *LineWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line.
func (o *LineWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// WriteMoves writes the plies numbered by move pair, e.g.
// "1. e2-e4 e7-e5 2. Ng1-f3". A list starting with Black gets "1..." first.
func WriteMoves(lw *LineWriter, plies []match.Ply) {
	for i, ply := range plies {
		moveNumber := (ply.Turn + 1) / 2
		switch {
		case ply.Colour == chess.White:
			lw.Write(fmt.Sprintf("%d.", moveNumber))
		case i == 0:
			lw.Write(fmt.Sprintf("%d...", moveNumber))
		}
		lw.Write(ply.String())
	}
	if len(plies) > 0 {
		lw.NewLine()
	}
}
