// Package errors provides sentinel errors and error types for the chess engine.
// It defines the move rejection kinds and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrOutOfBounds indicates a coordinate outside the board.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrOccupiedSquare indicates a placement onto a non-empty square.
	ErrOccupiedSquare = errors.New("square already occupied")

	// ErrEmptySquare indicates there is no piece on the source square.
	ErrEmptySquare = errors.New("no piece on source square")

	// ErrNotYourPiece indicates the source piece belongs to the other player.
	ErrNotYourPiece = errors.New("piece belongs to the other player")

	// ErrNoLegalMoves indicates the source piece cannot move anywhere.
	ErrNoLegalMoves = errors.New("piece has no legal moves")

	// ErrIllegalDestination indicates the piece cannot move to the target square.
	ErrIllegalDestination = errors.New("piece cannot move to target square")

	// ErrMovesIntoCheck indicates the move would leave the mover's king in check.
	ErrMovesIntoCheck = errors.New("move leaves own king in check")

	// ErrMalformedCoordinate indicates algebraic notation outside a1-h8.
	ErrMalformedCoordinate = errors.New("malformed coordinate, valid squares are a1 to h8")

	// ErrMatchOver indicates a move was attempted after checkmate.
	ErrMatchOver = errors.New("match is over")

	// ErrNoPromotion indicates there is no pawn awaiting promotion.
	ErrNoPromotion = errors.New("no piece awaiting promotion")

	// ErrInvalidPromotion indicates a promotion kind other than B, N, R or Q.
	ErrInvalidPromotion = errors.New("invalid promotion piece")

	// ErrInvalidBoard indicates an impossible board size or setup.
	ErrInvalidBoard = errors.New("invalid board")

	// ErrMissingKing indicates a colour has no king on the board. It is an
	// internal consistency failure and is raised as a panic, never returned.
	ErrMissingKing = errors.New("king missing from board")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrParseFailure indicates a general move script parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps a move rejection with the squares involved and the
// match state it was attempted in. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err    error  // The underlying error
	Source string // Source square, algebraic (if applicable)
	Target string // Target square, algebraic (if applicable)
	Player string // Colour of the player who attempted the move
	Turn   int    // Match turn when the move was attempted
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Turn > 0 {
		parts = append(parts, fmt.Sprintf("turn %d", e.Turn))
	}
	if e.Player != "" {
		parts = append(parts, e.Player)
	}

	switch {
	case e.Source != "" && e.Target != "":
		parts = append(parts, fmt.Sprintf("move %s-%s", e.Source, e.Target))
	case e.Source != "":
		parts = append(parts, fmt.Sprintf("square %s", e.Source))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error with file location context.
// It's used for move script errors.
type ParseError struct {
	Err      error  // The underlying error
	File     string // Source file name
	Line     int    // Line number (1-based)
	Column   int    // Column number (1-based)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.File != "" {
		loc := e.File
		if e.Line > 0 {
			loc += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, loc)
	} else if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.WithMessage(err, context)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return pkgerrors.WithMessagef(err, format, args...)
}

// Fatal returns err annotated with the current stack trace. It is used for
// invariant violations that abort instead of being reported to a player.
func Fatal(err error) error {
	return pkgerrors.WithStack(err)
}
