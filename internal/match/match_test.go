package match

import (
	stderrors "errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/xadrez-go/internal/chess"
	"github.com/lgbarn/xadrez-go/internal/engine"
	"github.com/lgbarn/xadrez-go/internal/errors"
	"github.com/lgbarn/xadrez-go/internal/testutil"
)

func TestNew(t *testing.T) {
	m := New()

	testutil.AssertEqual(t, m.Turn(), 1)
	testutil.AssertEqual(t, m.CurrentPlayer(), chess.White)
	testutil.AssertFalse(t, m.InCheck())
	testutil.AssertFalse(t, m.Checkmate())
	testutil.AssertEqual(t, len(m.OnBoard()), 32)
	testutil.AssertEqual(t, len(m.Captured()), 0)
	testutil.AssertTrue(t, m.ID() != "", "match should get an id")

	snap := m.BoardSnapshot()
	tests := []struct {
		square string
		kind   chess.Kind
		colour chess.Colour
	}{
		{"a1", chess.Rook, chess.White},
		{"b1", chess.Knight, chess.White},
		{"c1", chess.Bishop, chess.White},
		{"d1", chess.Queen, chess.White},
		{"e1", chess.King, chess.White},
		{"e2", chess.Pawn, chess.White},
		{"d8", chess.Queen, chess.Black},
		{"e8", chess.King, chess.Black},
		{"h7", chess.Pawn, chess.Black},
	}
	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			pos := square(tt.square).Position()
			v := snap[pos.Row][pos.Col]
			if v == nil {
				t.Fatalf("%s is empty", tt.square)
			}
			testutil.AssertEqual(t, *v, PieceView{Kind: tt.kind, Colour: tt.colour, Square: square(tt.square)})
		})
	}
	testutil.AssertNil(t, snap[4][4], "e4 should be empty")
}

func TestWithOptions(t *testing.T) {
	m := New(WithID("game-1"), WithStartingPlayer(chess.Black), WithPromotionDefault(chess.King))
	testutil.AssertEqual(t, m.ID(), "game-1")
	testutil.AssertEqual(t, m.CurrentPlayer(), chess.Black)
	testutil.AssertEqual(t, m.promotionDefault, chess.Queen, "King is not a promotion target")
}

func TestPossibleMoves(t *testing.T) {
	m := New()

	grid, err := m.PossibleMoves(square("g1"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, grid.Squares(), []string{"f3", "h3"})

	grid, err = m.PossibleMoves(square("e2"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, grid.Squares(), []string{"e4", "e3"})
}

func TestPerformMove_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     error
	}{
		{"empty square", "e4", "e5", errors.ErrEmptySquare},
		{"opponent piece", "e7", "e5", errors.ErrNotYourPiece},
		{"boxed in rook", "a1", "a3", errors.ErrNoLegalMoves},
		{"off pattern", "e2", "e5", errors.ErrIllegalDestination},
		{"knight onto own pawn", "g1", "e2", errors.ErrIllegalDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			before := captureState(m)

			captured, err := m.PerformMove(square(tt.from), square(tt.to))
			testutil.AssertErrorIs(t, err, tt.want)
			testutil.AssertNil(t, captured)
			testutil.AssertEqual(t, captureState(m), before, "rejected move must not change the match")

			var moveErr *errors.MoveError
			if !stderrors.As(err, &moveErr) {
				t.Fatalf("error %v is not a *MoveError", err)
			}
			testutil.AssertEqual(t, moveErr.Source, tt.from)
		})
	}
}

func TestPossibleMoves_Rejections(t *testing.T) {
	m := New()
	_, err := m.PossibleMoves(square("d4"))
	testutil.AssertErrorIs(t, err, errors.ErrEmptySquare)
	_, err = m.PossibleMoves(square("d7"))
	testutil.AssertErrorIs(t, err, errors.ErrNotYourPiece)
	_, err = m.PossibleMoves(square("d1"))
	testutil.AssertErrorIs(t, err, errors.ErrNoLegalMoves)
}

func TestFoolsMate(t *testing.T) {
	m := New()
	play(t, m, "f2f3", "e7e5", "g2g4", "d8h4")

	testutil.AssertTrue(t, m.Checkmate(), "Qh4 should mate")
	testutil.AssertTrue(t, m.InCheck())
	testutil.AssertEqual(t, m.CurrentPlayer(), chess.Black, "player freezes on the side that mated")
	testutil.AssertEqual(t, m.Turn(), 4)

	history := m.History()
	testutil.AssertEqual(t, len(history), 4)
	testutil.AssertEqual(t, history[3].String(), "Qd8-h4#")

	_, err := m.PerformMove(square("e2"), square("e4"))
	testutil.AssertErrorIs(t, err, errors.ErrMatchOver)
	testutil.AssertEqual(t, m.Turn(), 4)
}

func TestScholarsMate(t *testing.T) {
	m := New()
	play(t, m, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6")
	testutil.AssertFalse(t, m.InCheck())

	captured, err := m.PerformMove(square("h5"), square("f7"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *captured, PieceView{Kind: chess.Pawn, Colour: chess.Black, Square: square("f7"), Captured: true})
	testutil.AssertTrue(t, m.Checkmate())
	testutil.AssertEqual(t, m.CurrentPlayer(), chess.White)
}

func TestCheckWithoutMate(t *testing.T) {
	m := New()
	play(t, m, "e2e4", "f7f6", "d1h5")

	testutil.AssertTrue(t, m.InCheck(), "Qh5 checks along the e8-h5 diagonal")
	testutil.AssertFalse(t, m.Checkmate(), "g6 blocks")
	testutil.AssertEqual(t, m.CurrentPlayer(), chess.Black)

	_, err := m.PerformMove(square("a7"), square("a6"))
	testutil.AssertErrorIs(t, err, errors.ErrMovesIntoCheck, "ignoring the check")

	play(t, m, "g7g6")
	testutil.AssertFalse(t, m.InCheck())
	testutil.AssertEqual(t, m.History()[2].String(), "Qd1-h5+")
}

func TestEnPassant(t *testing.T) {
	m := New()
	play(t, m, "e2e4", "d7d5", "e4e5", "f7f5")

	vulnerable := m.EnPassantVulnerable()
	if vulnerable == nil || vulnerable.Square != square("f5") {
		t.Fatalf("EnPassantVulnerable() = %v, want the f5 pawn", vulnerable)
	}

	grid, err := m.PossibleMoves(square("e5"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, grid.At(square("f6").Position()), "e5xf6 should be offered")
	testutil.AssertFalse(t, grid.At(square("d6").Position()), "d5 pawn did not just double-step")

	captured, err := m.PerformMove(square("e5"), square("f6"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *captured, PieceView{Kind: chess.Pawn, Colour: chess.Black, MoveCount: 1, Square: square("f5"), Captured: true})

	snap := m.BoardSnapshot()
	f5, f6 := square("f5").Position(), square("f6").Position()
	testutil.AssertNil(t, snap[f5.Row][f5.Col], "f5 pawn should be gone")
	testutil.AssertEqual(t, snap[f6.Row][f6.Col].Kind, chess.Pawn)
	testutil.AssertEqual(t, snap[f6.Row][f6.Col].Colour, chess.White)
	testutil.AssertEqual(t, len(m.Captured()), 1)
	testutil.AssertEqual(t, len(m.OnBoard()), 31)
	testutil.AssertEqual(t, m.History()[4].String(), "e5xf6 e.p.")
	testutil.AssertNil(t, m.EnPassantVulnerable())
}

func TestEnPassant_ExpiresAfterOneMove(t *testing.T) {
	m := New()
	play(t, m, "e2e4", "a7a6", "e4e5", "f7f5", "h2h3", "a6a5")

	_, err := m.PerformMove(square("e5"), square("f6"))
	testutil.AssertErrorIs(t, err, errors.ErrIllegalDestination)
}

func TestCastling_Kingside(t *testing.T) {
	m := New()
	play(t, m, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6")

	grid, err := m.PossibleMoves(square("e1"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, grid.Squares(), []string{"e2", "f1", "g1"})

	play(t, m, "e1g1")
	snap := m.BoardSnapshot()
	g1, f1, h1 := square("g1").Position(), square("f1").Position(), square("h1").Position()
	testutil.AssertEqual(t, *snap[g1.Row][g1.Col], PieceView{Kind: chess.King, Colour: chess.White, MoveCount: 1, Square: square("g1")})
	testutil.AssertEqual(t, *snap[f1.Row][f1.Col], PieceView{Kind: chess.Rook, Colour: chess.White, MoveCount: 1, Square: square("f1")})
	testutil.AssertNil(t, snap[h1.Row][h1.Col])
	testutil.AssertEqual(t, m.History()[6].String(), "Ke1-g1 (O-O)")
}

func TestCastling_Queenside(t *testing.T) {
	m := mustSetup(t, testutil.Layout{"e8": 'k', "a8": 'r', "h8": 'r', "e1": 'K'}, WithStartingPlayer(chess.Black))
	play(t, m, "e8c8")

	snap := m.BoardSnapshot()
	c8, d8 := square("c8").Position(), square("d8").Position()
	testutil.AssertEqual(t, snap[c8.Row][c8.Col].Kind, chess.King)
	testutil.AssertEqual(t, *snap[d8.Row][d8.Col], PieceView{Kind: chess.Rook, Colour: chess.Black, MoveCount: 1, Square: square("d8")})
	testutil.AssertFalse(t, m.InCheck(), "the d8 rook does not reach e1")
}

func TestCastling_NotOutOfCheck(t *testing.T) {
	m := mustSetup(t, testutil.Layout{"e1": 'K', "h1": 'R', "e8": 'r', "a8": 'k'})
	testutil.AssertTrue(t, m.InCheck())

	grid, err := m.PossibleMoves(square("e1"))
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, grid.At(square("g1").Position()), "no castling while in check")
}

func TestMovesIntoCheck_Pin(t *testing.T) {
	m := mustSetup(t, testutil.Layout{"e1": 'K', "e2": 'B', "e8": 'r', "a8": 'k'})
	before := captureState(m)

	_, err := m.PerformMove(square("e2"), square("d3"))
	testutil.AssertErrorIs(t, err, errors.ErrMovesIntoCheck)
	testutil.AssertEqual(t, captureState(m), before, "board must be unchanged")

	safe, err := m.SafeDestinations(square("e2"))
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, safe.Any(), "pinned bishop has no safe squares")
	testutil.AssertEqual(t, captureState(m), before, "SafeDestinations must not change the match")
}

func TestMovesIntoCheck_KingStep(t *testing.T) {
	m := mustSetup(t, testutil.Layout{"e1": 'K', "d8": 'r', "h8": 'k'})
	_, err := m.PerformMove(square("e1"), square("d1"))
	testutil.AssertErrorIs(t, err, errors.ErrMovesIntoCheck)
	testutil.AssertEqual(t, m.Turn(), 1)
	testutil.AssertEqual(t, m.CurrentPlayer(), chess.White)
}

func TestMovesIntoCheck_RestoresCapture(t *testing.T) {
	// Taking the d2 knight with the pinned e2 rook is pseudo-legal but exposes the king.
	m := mustSetup(t, testutil.Layout{"e1": 'K', "e2": 'R', "d2": 'n', "e8": 'q', "a8": 'k'})
	before := captureState(m)

	_, err := m.PerformMove(square("e2"), square("d2"))
	testutil.AssertErrorIs(t, err, errors.ErrMovesIntoCheck)
	testutil.AssertEqual(t, captureState(m), before)
}

func TestPromotion(t *testing.T) {
	m := mustSetup(t, testutil.Layout{"a7": 'P', "e1": 'K', "h5": 'k'})
	play(t, m, "a7a8")

	pending := m.PendingPromotion()
	if pending == nil {
		t.Fatal("PendingPromotion() = nil after reaching the last rank")
	}
	testutil.AssertEqual(t, pending.Kind, chess.Queen, "default promotion")
	testutil.AssertEqual(t, m.History()[0].String(), "a7-a8=Q")

	view, err := m.ResolvePromotion(chess.King)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidPromotion)
	testutil.AssertEqual(t, view.Kind, chess.Queen, "invalid kind returns the pending piece")
	testutil.AssertNotNil(t, m.PendingPromotion())

	view, err = m.ResolvePromotion(chess.Knight)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, view, PieceView{Kind: chess.Knight, Colour: chess.White, MoveCount: 1, Square: square("a8")})
	testutil.AssertNil(t, m.PendingPromotion())
	testutil.AssertEqual(t, m.History()[0].String(), "a7-a8=N")

	_, err = m.ResolvePromotion(chess.Rook)
	testutil.AssertErrorIs(t, err, errors.ErrNoPromotion)
}

func TestPromotion_ResolutionChangesMate(t *testing.T) {
	layout := testutil.Layout{"a7": 'P', "e1": 'K', "g8": 'k', "f7": 'p', "g7": 'p', "h7": 'p'}

	t.Run("queen mates", func(t *testing.T) {
		m := mustSetup(t, layout)
		play(t, m, "a7a8")
		testutil.AssertTrue(t, m.Checkmate())

		_, err := m.ResolvePromotion(chess.Rook)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, m.Checkmate(), "a rook mates as well")
		testutil.AssertEqual(t, m.CurrentPlayer(), chess.White)
	})

	t.Run("knight does not", func(t *testing.T) {
		m := mustSetup(t, layout)
		play(t, m, "a7a8")
		testutil.AssertEqual(t, m.Turn(), 1)

		_, err := m.ResolvePromotion(chess.Knight)
		testutil.AssertNoError(t, err)
		testutil.AssertFalse(t, m.Checkmate())
		testutil.AssertFalse(t, m.InCheck())
		testutil.AssertEqual(t, m.CurrentPlayer(), chess.Black)
		testutil.AssertEqual(t, m.Turn(), 2)
		play(t, m, "g8f8")
	})

	t.Run("knight then queen", func(t *testing.T) {
		m := mustSetup(t, layout, WithPromotionDefault(chess.Knight))
		play(t, m, "a7a8")
		testutil.AssertFalse(t, m.Checkmate())
		testutil.AssertEqual(t, m.CurrentPlayer(), chess.Black)

		_, err := m.ResolvePromotion(chess.Queen)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, m.Checkmate())
		testutil.AssertEqual(t, m.CurrentPlayer(), chess.White)
		testutil.AssertEqual(t, m.Turn(), 1)
	})
}

func TestPromotion_SkippedResolutionKeepsDefault(t *testing.T) {
	m := mustSetup(t, testutil.Layout{"b7": 'P', "e1": 'K', "h5": 'k'})
	play(t, m, "b7b8", "h5h4")

	testutil.AssertNil(t, m.PendingPromotion(), "next move clears the pending flag")
	snap := m.BoardSnapshot()
	b8 := square("b8").Position()
	testutil.AssertEqual(t, snap[b8.Row][b8.Col].Kind, chess.Queen)
}

func TestNewWithSetup_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		layout testutil.Layout
		want   error
	}{
		{"no kings", testutil.Layout{"a1": 'R'}, errors.ErrInvalidBoard},
		{"two white kings", testutil.Layout{"a1": 'K', "h1": 'K', "e8": 'k'}, errors.ErrInvalidBoard},
		{"side not to move in check", testutil.Layout{"e1": 'K', "e8": 'k', "e4": 'R'}, errors.ErrInvalidBoard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var placements []Placement
			for sq, letter := range tt.layout {
				placements = append(placements, Placement{Kind: chess.KindFromLetter(letter), Colour: testutil.LetterColour(letter), Square: square(sq)})
			}
			_, err := NewWithSetup(placements)
			testutil.AssertErrorIs(t, err, tt.want)
		})
	}

	t.Run("two pieces on one square", func(t *testing.T) {
		_, err := NewWithSetup([]Placement{
			{Kind: chess.King, Colour: chess.White, Square: square("e1")},
			{Kind: chess.Queen, Colour: chess.White, Square: square("e1")},
			{Kind: chess.King, Colour: chess.Black, Square: square("e8")},
		})
		testutil.AssertErrorIs(t, err, errors.ErrOccupiedSquare)
	})
}

func TestMissingKingPanics(t *testing.T) {
	m := New()
	for i, p := range m.onBoard {
		if p.Kind == chess.King && p.Colour == chess.White {
			m.onBoard = append(m.onBoard[:i], m.onBoard[i+1:]...)
			break
		}
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("recover() = %v, want an error", r)
		}
		testutil.AssertErrorIs(t, err, errors.ErrMissingKing)
	}()
	m.TestCheck(chess.White)
	t.Fatal("TestCheck without a king should panic")
}

// TestRandomGames plays seeded random legal games and checks the match
// invariants after every half-move.
func TestRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := 0; game < 20; game++ {
		m := New()
		for ply := 0; ply < 120 && !m.Checkmate(); ply++ {
			from, to, ok := randomSafeMove(t, m, rng)
			if !ok {
				break // stalemate
			}
			turn, player := m.Turn(), m.CurrentPlayer()

			if _, err := m.PerformMove(from, to); err != nil {
				t.Fatalf("game %d ply %d: safe move %s-%s rejected: %v", game, ply, from, to, err)
			}
			if pending := m.PendingPromotion(); pending != nil {
				kinds := []chess.Kind{chess.Knight, chess.Bishop, chess.Rook, chess.Queen}
				if _, err := m.ResolvePromotion(kinds[rng.Intn(len(kinds))]); err != nil {
					t.Fatalf("ResolvePromotion: %v", err)
				}
			}

			if m.Checkmate() {
				testutil.AssertEqual(t, m.Turn(), turn, "turn freezes on mate")
				testutil.AssertEqual(t, m.CurrentPlayer(), player, "player freezes on mate")
			} else {
				testutil.AssertEqual(t, m.Turn(), turn+1)
				testutil.AssertEqual(t, m.CurrentPlayer(), player.Opposite())
			}
			checkBookkeeping(t, m)
		}
	}
}

// TestTrialRollback applies and undoes every pseudo-legal move of every
// piece along a random game and checks the match is restored exactly.
func TestTrialRollback(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := New()

	for ply := 0; ply < 60 && !m.Checkmate(); ply++ {
		before := captureState(m)
		for _, colour := range []chess.Colour{chess.White, chess.Black} {
			s := m.snapshot(colour, false)
			for _, p := range m.piecesOf(colour) {
				from, _ := p.Position()
				for _, to := range engine.LegalDestinations(p, s).Positions() {
					rec := m.applyMove(from, to)
					m.undoMove(rec)
					if diff := cmp.Diff(before, captureState(m)); diff != "" {
						t.Fatalf("ply %d: %s %v->%v not restored (-want +got):\n%s", ply, p.GoString(), from, to, diff)
					}
				}
			}
		}

		from, to, ok := randomSafeMove(t, m, rng)
		if !ok {
			break
		}
		if _, err := m.PerformMove(from, to); err != nil {
			t.Fatal(err)
		}
	}
}

func checkBookkeeping(t *testing.T, m *Match) {
	t.Helper()
	seen := make(map[*chess.Piece]bool)
	for _, p := range m.onBoard {
		pos, placed := p.Position()
		if !placed || m.board.Get(pos) != p {
			t.Fatalf("on-board piece %s is not on its square", p.GoString())
		}
		seen[p] = true
	}
	for _, p := range m.captured {
		if seen[p] {
			t.Fatalf("piece %s is both on board and captured", p.GoString())
		}
		if _, placed := p.Position(); placed {
			t.Fatalf("captured piece %s is still placed", p.GoString())
		}
		seen[p] = true
	}
	testutil.AssertEqual(t, len(seen), 32, "every piece is tracked exactly once")
	testutil.AssertEqual(t, len(m.board.Pieces()), len(m.onBoard))
}

func randomSafeMove(t *testing.T, m *Match, rng *rand.Rand) (chess.Square, chess.Square, bool) {
	t.Helper()
	type move struct{ from, to chess.Square }
	var moves []move
	for _, p := range m.piecesOf(m.currentPlayer) {
		pos, _ := p.Position()
		from, err := chess.SquareOf(pos)
		if err != nil {
			t.Fatal(err)
		}
		grid, err := m.SafeDestinations(from)
		if err != nil {
			continue // no pseudo-legal moves
		}
		for _, target := range grid.Positions() {
			to, _ := chess.SquareOf(target)
			moves = append(moves, move{from, to})
		}
	}
	if len(moves) == 0 {
		return chess.Square{}, chess.Square{}, false
	}
	mv := moves[rng.Intn(len(moves))]
	return mv.from, mv.to, true
}
