// Package match implements the state machine of a two-player chess match:
// turn sequencing, move validation and application, the special moves
// (castling, en passant, promotion) and check/checkmate detection.
//
// A Match is not safe for concurrent use. Callers that share one between
// goroutines must serialize access.
package match

import (
	"github.com/google/uuid"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/engine"
	"github.com/lgbarn/xadrez-go/internal/errors"
)

// Match is a single game between White and Black.
type Match struct {
	id    string
	board *chess.Board

	turn          int
	currentPlayer chess.Colour
	inCheck       bool
	checkmate     bool

	// enPassant is the pawn that just advanced two squares, if any.
	enPassant *chess.Piece
	// promoted is the piece awaiting a promotion choice, if any.
	promoted         *chess.Piece
	promotionDefault chess.Kind

	// Every piece ever created is in exactly one of these.
	onBoard  []*chess.Piece
	captured []*chess.Piece

	history []Ply
}

// Option configures a Match.
type Option func(*Match)

// WithID sets the match identifier. By default a random UUID is used.
func WithID(id string) Option {
	return func(m *Match) {
		if id != "" {
			m.id = id
		}
	}
}

// WithStartingPlayer sets the colour that moves first.
func WithStartingPlayer(colour chess.Colour) Option {
	return func(m *Match) {
		m.currentPlayer = colour
	}
}

// WithPromotionDefault sets the kind a pawn becomes when it reaches the last
// rank, before ResolvePromotion is called. Kinds other than Knight, Bishop,
// Rook and Queen are ignored.
func WithPromotionDefault(kind chess.Kind) Option {
	return func(m *Match) {
		if kind.IsPromotionTarget() {
			m.promotionDefault = kind
		}
	}
}

func newMatch(opts []Option) *Match {
	m := &Match{
		id:               uuid.New().String(),
		board:            chess.NewStandardBoard(),
		turn:             1,
		currentPlayer:    chess.White,
		promotionDefault: chess.Queen,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// New creates a match in the standard starting position.
func New(opts ...Option) *Match {
	m := newMatch(opts)
	m.initialSetup()
	return m
}

// Placement describes one piece of a custom setup.
type Placement struct {
	Kind      chess.Kind
	Colour    chess.Colour
	Square    chess.Square
	MoveCount int
}

// NewWithSetup creates a match from explicit placements. Each colour needs
// exactly one king, and the side not to move may not start in check.
func NewWithSetup(placements []Placement, opts ...Option) (*Match, error) {
	m := newMatch(opts)
	kings := map[chess.Colour]int{}
	for _, pl := range placements {
		if pl.Kind < chess.Pawn || pl.Kind > chess.King {
			return nil, errors.Wrapf(errors.ErrInvalidBoard, "unknown piece kind on %s", pl.Square)
		}
		p := chess.NewPiece(pl.Kind, pl.Colour)
		p.MoveCount = pl.MoveCount
		if err := m.board.Place(p, pl.Square.Position()); err != nil {
			return nil, errors.Wrapf(err, "placing %s %s on %s", pl.Colour, pl.Kind, pl.Square)
		}
		m.onBoard = append(m.onBoard, p)
		if pl.Kind == chess.King {
			kings[pl.Colour]++
		}
	}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if kings[colour] != 1 {
			return nil, errors.Wrapf(errors.ErrInvalidBoard, "%s has %d kings", colour, kings[colour])
		}
	}
	if m.TestCheck(m.currentPlayer.Opposite()) {
		return nil, errors.Wrapf(errors.ErrInvalidBoard, "%s is in check but not to move", m.currentPlayer.Opposite())
	}
	m.evaluateSetup()
	return m, nil
}

// evaluateSetup sets the check flags for the side to move. A setup that is
// already mate hands the turn to the winner, as a mating move would.
func (m *Match) evaluateSetup() {
	m.inCheck = m.TestCheck(m.currentPlayer)
	m.checkmate = m.TestCheckmate(m.currentPlayer)
	if m.checkmate {
		m.currentPlayer = m.currentPlayer.Opposite()
	}
}

// ID returns the match identifier.
func (m *Match) ID() string {
	return m.id
}

// Turn returns the turn counter, starting at 1 and advancing once per
// completed half-move.
func (m *Match) Turn() int {
	return m.turn
}

// CurrentPlayer returns the colour to move. After checkmate it stays on
// the player who delivered mate.
func (m *Match) CurrentPlayer() chess.Colour {
	return m.currentPlayer
}

// InCheck reports whether the player to move is in check.
func (m *Match) InCheck() bool {
	return m.inCheck
}

// Checkmate reports whether the match has ended in checkmate.
func (m *Match) Checkmate() bool {
	return m.checkmate
}

func (m *Match) nextTurn() {
	m.turn++
	m.currentPlayer = m.currentPlayer.Opposite()
}

// snapshot returns the move generation context with toMove to play.
func (m *Match) snapshot(toMove chess.Colour, inCheck bool) engine.Snapshot {
	return engine.Snapshot{
		Board:     m.board,
		EnPassant: m.enPassant,
		ToMove:    toMove,
		InCheck:   inCheck,
	}
}

// piecesOf returns a copy of the on-board pieces of colour.
func (m *Match) piecesOf(colour chess.Colour) []*chess.Piece {
	var out []*chess.Piece
	for _, p := range m.onBoard {
		if p.Colour == colour {
			out = append(out, p)
		}
	}
	return out
}

func (m *Match) placeNewPiece(square string, kind chess.Kind, colour chess.Colour) {
	p := chess.NewPiece(kind, colour)
	m.mustPlace(p, chess.MustSquare(square).Position())
	m.onBoard = append(m.onBoard, p)
}

func (m *Match) initialSetup() {
	backRank := []chess.Kind{chess.Rook, chess.Knight, chess.Bishop, chess.Queen, chess.King, chess.Bishop, chess.Knight, chess.Rook}
	for col, kind := range backRank {
		file := string(rune(chess.FirstFile + col))
		m.placeNewPiece(file+"1", kind, chess.White)
		m.placeNewPiece(file+"2", chess.Pawn, chess.White)
	}
	for col, kind := range backRank {
		file := string(rune(chess.FirstFile + col))
		m.placeNewPiece(file+"8", kind, chess.Black)
		m.placeNewPiece(file+"7", chess.Pawn, chess.Black)
	}
}
