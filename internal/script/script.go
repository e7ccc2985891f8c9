// Package script reads and replays move scripts: plain text files with one
// move per line, such as
//
//	# Italian game
//	e2 e4
//	e7-e5
//	g1f3
//	a7a8=N
//
// Blank lines and text after '#' are ignored. A promotion choice may follow
// the target square as "=N", "N" or a separate token. A script may start
// from a custom position with a "fen" line ahead of the first move:
//
//	fen 4k3/P7/8/8/8/8/8/4K3 w - - 0 1
package script

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/errors"
	"github.com/lgbarn/xadrez-go/internal/match"
)

const (
	commentChar  = '#'
	fenDirective = "fen"
)

// Step is one move of a script.
type Step struct {
	Line      int
	Source    chess.Square
	Target    chess.Square
	Promotion chess.Kind // NoKind keeps the default
}

// String returns the step in the "e2-e4" form.
func (s Step) String() string {
	text := s.Source.String() + "-" + s.Target.String()
	if s.Promotion != chess.NoKind {
		text += "=" + string(s.Promotion.Letter())
	}
	return text
}

// Script is a parsed move script.
type Script struct {
	Name  string
	FEN   string // starting position; empty for the standard setup
	Steps []Step
}

// field is a whitespace-separated token and its 1-based column.
type field struct {
	text   string
	column int
}

// Parser reads a script line by line.
type Parser struct {
	scanner *bufio.Scanner
	name    string
	line    int
}

// NewParser creates a parser for r. name is used in error messages.
func NewParser(r io.Reader, name string) *Parser {
	return &Parser{scanner: bufio.NewScanner(r), name: name}
}

// Parse reads the whole script. Every malformed line is reported; the
// returned error is a *multierror.Error of *errors.ParseError values.
func (p *Parser) Parse() (*Script, error) {
	s := &Script{Name: p.name}
	var result *multierror.Error

	for p.scanner.Scan() {
		p.line++
		if fen, ok := fenLine(p.scanner.Text()); ok {
			if err := p.setFEN(s, fen); err != nil {
				result = multierror.Append(result, err)
			}
			continue
		}
		step, ok, err := p.parseLine(p.scanner.Text())
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if ok {
			s.Steps = append(s.Steps, step)
		}
	}
	if err := p.scanner.Err(); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "reading %s", p.name))
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseFile opens and parses the script at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewParser(f, path).Parse()
}

// ParseString parses a script held in memory.
func ParseString(name, text string) (*Script, error) {
	return NewParser(strings.NewReader(text), name).Parse()
}

// fenLine returns the position text of a "fen" line.
func fenLine(text string) (string, bool) {
	if i := strings.IndexByte(text, commentChar); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.EqualFold(fields[0], fenDirective) {
		return "", false
	}
	return strings.Join(fields[1:], " "), true
}

func (p *Parser) setFEN(s *Script, fen string) error {
	switch {
	case s.FEN != "" || len(s.Steps) > 0:
		return p.errorAt(1, "fen line before the first move", quote(fenDirective))
	case fen == "":
		return p.errorAt(len(fenDirective)+2, "FEN position", "end of line")
	}
	if _, err := match.NewFromFEN(fen); err != nil {
		return &errors.ParseError{
			Err:      errors.ErrInvalidFEN,
			File:     p.name,
			Line:     p.line,
			Column:   len(fenDirective) + 2,
			Expected: "valid FEN position",
			Got:      quote(fen),
		}
	}
	s.FEN = fen
	return nil
}

// parseLine returns false without error for blank and comment lines.
func (p *Parser) parseLine(text string) (Step, bool, error) {
	if i := strings.IndexByte(text, commentChar); i >= 0 {
		text = text[:i]
	}
	fields := splitFields(text)
	if len(fields) == 0 {
		return Step{}, false, nil
	}

	step := Step{Line: p.line}
	var squares, rest []field
	first := fields[0]
	if compact := strings.ReplaceAll(first.text, "-", ""); len(compact) >= 4 {
		squares = []field{
			{text: compact[:2], column: first.column},
			{text: compact[2:4], column: first.column + 2},
		}
		if suffix := compact[4:]; suffix != "" {
			rest = append(rest, field{text: suffix, column: first.column + 4})
		}
		rest = append(rest, fields[1:]...)
	} else {
		if len(fields) < 2 {
			return Step{}, false, p.errorAt(first.column, "source and target squares", quote(first.text))
		}
		squares = fields[:2]
		rest = fields[2:]
	}

	var err error
	if step.Source, err = p.square(squares[0]); err != nil {
		return Step{}, false, err
	}
	if step.Target, err = p.square(squares[1]); err != nil {
		return Step{}, false, err
	}

	switch len(rest) {
	case 0:
	case 1:
		if step.Promotion, err = p.promotion(rest[0]); err != nil {
			return Step{}, false, err
		}
	default:
		return Step{}, false, p.errorAt(rest[1].column, "end of line", quote(rest[1].text))
	}
	return step, true, nil
}

func (p *Parser) square(f field) (chess.Square, error) {
	sq, err := chess.ParseSquare(strings.TrimSuffix(f.text, "-"))
	if err != nil {
		return chess.Square{}, &errors.ParseError{
			Err:      errors.ErrMalformedCoordinate,
			File:     p.name,
			Line:     p.line,
			Column:   f.column,
			Expected: "square a1 to h8",
			Got:      quote(f.text),
		}
	}
	return sq, nil
}

func (p *Parser) promotion(f field) (chess.Kind, error) {
	text := strings.TrimPrefix(f.text, "=")
	if len(text) == 1 {
		if kind := chess.KindFromLetter(text[0]); kind.IsPromotionTarget() {
			return kind, nil
		}
	}
	return chess.NoKind, &errors.ParseError{
		Err:      errors.ErrInvalidPromotion,
		File:     p.name,
		Line:     p.line,
		Column:   f.column,
		Expected: "promotion piece B, N, R or Q",
		Got:      quote(f.text),
	}
}

func (p *Parser) errorAt(column int, expected, got string) error {
	return &errors.ParseError{
		Err:      errors.ErrParseFailure,
		File:     p.name,
		Line:     p.line,
		Column:   column,
		Expected: expected,
		Got:      got,
	}
}

func splitFields(text string) []field {
	var out []field
	start := -1
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == ' ' || text[i] == '\t' || text[i] == '\r' {
			if start >= 0 {
				out = append(out, field{text: text[start:i], column: start + 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}

func quote(s string) string {
	return "\"" + s + "\""
}
