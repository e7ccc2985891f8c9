package script

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/errors"
)

func TestParse_Forms(t *testing.T) {
	s, err := ParseString("forms", `
# opening
e2 e4
e7-e5   # symmetric
G1F3
a7a8=N
b7 b8 q
c7-c8 =R
	d2	d4
`)
	require.NoError(t, err)
	require.Equal(t, "forms", s.Name)

	want := []Step{
		{Line: 3, Source: chess.MustSquare("e2"), Target: chess.MustSquare("e4")},
		{Line: 4, Source: chess.MustSquare("e7"), Target: chess.MustSquare("e5")},
		{Line: 5, Source: chess.MustSquare("g1"), Target: chess.MustSquare("f3")},
		{Line: 6, Source: chess.MustSquare("a7"), Target: chess.MustSquare("a8"), Promotion: chess.Knight},
		{Line: 7, Source: chess.MustSquare("b7"), Target: chess.MustSquare("b8"), Promotion: chess.Queen},
		{Line: 8, Source: chess.MustSquare("c7"), Target: chess.MustSquare("c8"), Promotion: chess.Rook},
		{Line: 9, Source: chess.MustSquare("d2"), Target: chess.MustSquare("d4")},
	}
	require.Equal(t, want, s.Steps)
	require.Equal(t, "a7-a8=N", s.Steps[3].String())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   error
		column int
	}{
		{"off board file", "i2 i4", errors.ErrMalformedCoordinate, 1},
		{"off board rank", "e2 e9", errors.ErrMalformedCoordinate, 4},
		{"rank zero", "e0e2", errors.ErrMalformedCoordinate, 1},
		{"single square", "e2", errors.ErrParseFailure, 1},
		{"king promotion", "e7e8=K", errors.ErrInvalidPromotion, 5},
		{"long promotion", "e7 e8 queen", errors.ErrInvalidPromotion, 7},
		{"trailing text", "e7 e8 Q extra", errors.ErrParseFailure, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString("bad.txt", "e2e4\n"+tt.line+"\n")
			require.Error(t, err)
			require.ErrorIs(t, err, tt.want)

			var perr *errors.ParseError
			require.True(t, stderrors.As(err, &perr), "want a *ParseError, got %T", err)
			require.Equal(t, "bad.txt", perr.File)
			require.Equal(t, 2, perr.Line)
			require.Equal(t, tt.column, perr.Column)
		})
	}
}

func TestParse_ReportsEveryBadLine(t *testing.T) {
	_, err := ParseString("many", "z1 z2\ne2e4\nq9q8\n")
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "want *multierror.Error, got %T", err)
	require.Len(t, merr.Errors, 2)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fools.txt")
	require.NoError(t, os.WriteFile(path, []byte("f2f3\ne7e5\ng2g4\nd8h4\n"), 0o600))

	s, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, s.Steps, 4)
	require.Equal(t, path, s.Name)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestReplay_Checkmate(t *testing.T) {
	s, err := ParseString("fools", "f2f3\ne7e5\ng2g4\nd8h4\n")
	require.NoError(t, err)

	r := Replay(s, ReplayOptions{StopOnError: true})
	require.NoError(t, r.Err)
	require.Equal(t, 4, r.Played)
	require.True(t, r.Match.Checkmate())
	require.Equal(t, "checkmate, Black wins", r.Outcome())
	require.Empty(t, r.Errors())
}

func TestReplay_StopOnError(t *testing.T) {
	s, err := ParseString("bad", "e2e4\ne4e5\ne7e5\n")
	require.NoError(t, err)

	stopped := Replay(s, ReplayOptions{StopOnError: true})
	require.Equal(t, 1, stopped.Played)
	require.ErrorIs(t, stopped.Err, errors.ErrNotYourPiece)
	require.Equal(t, "Black to move", stopped.Outcome())

	continued := Replay(s, ReplayOptions{})
	require.Equal(t, 2, continued.Played)
	require.Len(t, continued.Errors(), 1)
	require.Contains(t, continued.Errors()[0].Error(), "bad line 2")
	require.Equal(t, "White to move", continued.Outcome())
}

func TestReplay_Promotion(t *testing.T) {
	// White walks the h-pawn up, capturing on g7 and promoting on h8.
	s, err := ParseString("promote", `
h2h4
a7a6
h4h5
a6a5
h5h6
a5a4
h6g7
a4a3
g7h8=N
`)
	require.NoError(t, err)

	r := Replay(s, ReplayOptions{StopOnError: true})
	require.NoError(t, r.Err)
	require.Equal(t, 9, r.Played)

	history := r.Match.History()
	require.Equal(t, "g7xh8=N", history[8].String())
	require.Nil(t, r.Match.PendingPromotion())
}

func TestReplay_PromotionWithoutPawn(t *testing.T) {
	s, err := ParseString("nopromo", "e2e4=Q\n")
	require.NoError(t, err)

	r := Replay(s, ReplayOptions{})
	require.Equal(t, 1, r.Played, "the move itself stands")
	require.ErrorIs(t, r.Err, errors.ErrNoPromotion)
}

func TestReplay_InCheckOutcome(t *testing.T) {
	s, err := ParseString("check", "e2e4\nf7f6\nd1h5\n")
	require.NoError(t, err)

	r := Replay(s, ReplayOptions{})
	require.Equal(t, "Black to move, in check", r.Outcome())
}

func TestParse_FEN(t *testing.T) {
	s, err := ParseString("fen", `
# promote from a custom position
FEN 4k3/P7/8/8/8/8/8/4K3 w - - 0 1   # white to move
a7a8=R
`)
	require.NoError(t, err)
	require.Equal(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", s.FEN)
	require.Len(t, s.Steps, 1)

	r := Replay(s, ReplayOptions{StopOnError: true})
	require.NoError(t, r.Err)
	require.Equal(t, 1, r.Played)
	require.Equal(t, "R3k3/8/8/8/8/8/8/4K3 b - - 0 1", r.Match.FEN())
	require.True(t, r.Match.InCheck())
}

func TestParse_FENErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"invalid position", "fen 8/8/8 w - - 0 1\n", errors.ErrInvalidFEN},
		{"missing position", "fen\n", errors.ErrParseFailure},
		{"after a move", "e2e4\nfen 4k3/8/8/8/8/8/8/4K3 w - - 0 1\n", errors.ErrParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.name, tt.text)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
