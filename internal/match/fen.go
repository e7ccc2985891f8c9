package match

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Home files of the castling pieces.
const (
	kingFile      = 'e'
	kingsideRook  = 'h'
	queensideRook = 'a'
)

// NewFromFEN creates a match from a FEN string. Only the piece placement
// field is required; side to move, castling rights, en passant square and
// the fullmove number are honoured when present. The halfmove clock is
// ignored.
//
// Move counts are inferred: pawns off their start rank, and kings and rooks
// without castling rights, count as having moved.
func NewFromFEN(fen string, opts ...Option) (*Match, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidFEN, "empty FEN string")
	}

	placements, err := parsePiecePlacement(parts[0])
	if err != nil {
		return nil, err
	}

	toMove := chess.White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
		case "b":
			toMove = chess.Black
		default:
			return nil, errors.Wrapf(errors.ErrInvalidFEN, "side to move %q", parts[1])
		}
	}

	rights := "-"
	if len(parts) > 2 {
		rights = parts[2]
	}
	if err := applyCastlingRights(placements, rights); err != nil {
		return nil, err
	}

	m, err := NewWithSetup(placements, append(opts, WithStartingPlayer(toMove))...)
	if err != nil {
		return nil, err
	}

	if len(parts) > 3 && parts[3] != "-" {
		if err := m.setEnPassantTarget(parts[3]); err != nil {
			return nil, err
		}
	}
	if len(parts) > 5 {
		fullmove, err := strconv.Atoi(parts[5])
		if err != nil || fullmove < 1 {
			return nil, errors.Wrapf(errors.ErrInvalidFEN, "fullmove number %q", parts[5])
		}
		m.turn = 2*(fullmove-1) + 1
		if toMove == chess.Black {
			m.turn++
		}
	}
	return m, nil
}

// parsePiecePlacement parses the piece placement field of a FEN string.
func parsePiecePlacement(field string) ([]Placement, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != chess.BoardSize {
		return nil, errors.Wrapf(errors.ErrInvalidFEN, "%d ranks in %q", len(ranks), field)
	}

	var placements []Placement
	for i, row := range ranks {
		rank := chess.LastRank - i
		file := byte(chess.FirstFile)
		for _, c := range row {
			if c >= '1' && c <= '8' {
				file += byte(c - '0')
				continue
			}
			kind := chess.NoKind
			if c <= unicode.MaxASCII {
				kind = chess.KindFromLetter(byte(c))
			}
			if kind == chess.NoKind {
				return nil, errors.Wrapf(errors.ErrInvalidFEN, "invalid piece character %q", c)
			}
			sq, err := chess.NewSquare(file, rank)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidFEN, "rank %d overflows", rank)
			}
			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			pl := Placement{Kind: kind, Colour: colour, Square: sq}
			if kind == chess.Pawn && rank != pawnStartRank(colour) {
				pl.MoveCount = 1
			}
			placements = append(placements, pl)
			file++
		}
		if file != chess.LastFile+1 {
			return nil, errors.Wrapf(errors.ErrInvalidFEN, "rank %d has %d files", rank, file-chess.FirstFile)
		}
	}
	return placements, nil
}

// applyCastlingRights marks kings and rooks that may not castle as moved.
func applyCastlingRights(placements []Placement, rights string) error {
	allowed := map[chess.Colour]map[byte]bool{chess.White: {}, chess.Black: {}}
	if rights != "-" {
		for _, c := range rights {
			switch c {
			case 'K':
				allowed[chess.White][kingsideRook] = true
			case 'Q':
				allowed[chess.White][queensideRook] = true
			case 'k':
				allowed[chess.Black][kingsideRook] = true
			case 'q':
				allowed[chess.Black][queensideRook] = true
			default:
				return errors.Wrapf(errors.ErrInvalidFEN, "castling rights %q", rights)
			}
		}
	}

	for i := range placements {
		pl := &placements[i]
		home := homeRank(pl.Colour)
		switch pl.Kind {
		case chess.King:
			if pl.Square.Rank != home || pl.Square.File != kingFile || len(allowed[pl.Colour]) == 0 {
				pl.MoveCount = 1
			}
		case chess.Rook:
			if pl.Square.Rank != home || !allowed[pl.Colour][pl.Square.File] {
				pl.MoveCount = 1
			}
		}
	}
	return nil
}

// setEnPassantTarget records the pawn that skipped over target.
func (m *Match) setEnPassantTarget(target string) error {
	sq, err := chess.ParseSquare(target)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidFEN, "en passant square %q", target)
	}
	mover := m.currentPlayer.Opposite()
	if m.checkmate {
		mover = m.currentPlayer
	}
	pawnAt := sq.Position().Add(chess.ColourOffset(mover), 0)
	p := m.board.Get(pawnAt)
	if p == nil || p.Kind != chess.Pawn || p.Colour != mover {
		return errors.Wrapf(errors.ErrInvalidFEN, "no %s pawn in front of en passant square %s", mover, sq)
	}
	m.enPassant = p
	if m.checkmate {
		// capturing en passant may be the only way out
		m.currentPlayer = mover.Opposite()
		m.evaluateSetup()
	}
	return nil
}

// FEN returns the position as a FEN string. The halfmove clock is not
// tracked and is always 0.
func (m *Match) FEN() string {
	var sb strings.Builder

	for r := 0; r < m.board.Rows(); r++ {
		empty := 0
		for c := 0; c < m.board.Cols(); c++ {
			p := m.board.Get(chess.Position{Row: r, Col: c})
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r < m.board.Rows()-1 {
			sb.WriteByte('/')
		}
	}

	toMove := m.currentPlayer
	if m.checkmate {
		toMove = toMove.Opposite()
	}
	side := "w"
	if toMove == chess.Black {
		side = "b"
	}

	ep := "-"
	if m.enPassant != nil {
		pos, _ := m.enPassant.Position()
		if sq, err := chess.SquareOf(pos.Add(-chess.ColourOffset(m.enPassant.Colour), 0)); err == nil {
			ep = sq.String()
		}
	}

	fmt.Fprintf(&sb, " %s %s %s 0 %d", side, m.castlingRights(), ep, (m.turn+1)/2)
	return sb.String()
}

// castlingRights lists the castles still possible in principle: king and
// rook unmoved on their home squares.
func (m *Match) castlingRights() string {
	var sb strings.Builder
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		home := homeRank(colour)
		king := m.pieceOn(kingFile, home)
		if king == nil || king.Kind != chess.King || king.Colour != colour || king.MoveCount != 0 {
			continue
		}
		for _, file := range []byte{kingsideRook, queensideRook} {
			rook := m.pieceOn(file, home)
			if rook == nil || rook.Kind != chess.Rook || rook.Colour != colour || rook.MoveCount != 0 {
				continue
			}
			letter := byte('K')
			if file == queensideRook {
				letter = 'Q'
			}
			if colour == chess.Black {
				letter += 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func (m *Match) pieceOn(file byte, rank int) *chess.Piece {
	return m.board.Get(chess.Square{File: file, Rank: rank}.Position())
}

func homeRank(colour chess.Colour) int {
	if colour == chess.White {
		return chess.FirstRank
	}
	return chess.LastRank
}

func pawnStartRank(colour chess.Colour) int {
	if colour == chess.White {
		return chess.FirstRank + 1
	}
	return chess.LastRank - 1
}
