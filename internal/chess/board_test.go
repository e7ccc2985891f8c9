package chess

import (
	"errors"
	"testing"

	cerrors "github.com/lgbarn/xadrez-go/internal/errors"
)

func TestNewBoard(t *testing.T) {
	b := NewStandardBoard()

	t.Run("dimensions", func(t *testing.T) {
		if b.Rows() != 8 || b.Cols() != 8 {
			t.Errorf("dimensions = %dx%d; want 8x8", b.Rows(), b.Cols())
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				if b.IsOccupied(Position{row, col}) {
					t.Errorf("IsOccupied(%d, %d) = true; want false", row, col)
				}
			}
		}
	})

	t.Run("rejects empty dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 8}, {8, 0}, {-1, -1}} {
			if _, err := NewBoard(dims[0], dims[1]); !errors.Is(err, cerrors.ErrInvalidBoard) {
				t.Errorf("NewBoard(%d, %d) error = %v; want ErrInvalidBoard", dims[0], dims[1], err)
			}
		}
	})

	t.Run("one by one board", func(t *testing.T) {
		small, err := NewBoard(1, 1)
		if err != nil {
			t.Fatalf("NewBoard(1, 1) error = %v", err)
		}
		if !small.Exists(Position{0, 0}) || small.Exists(Position{0, 1}) {
			t.Error("1x1 board should contain exactly (0,0)")
		}
	})
}

func TestBoardPlaceAndRemove(t *testing.T) {
	b := NewStandardBoard()
	rook := NewPiece(Rook, White)
	pos := Position{Row: 7, Col: 0}

	if err := b.Place(rook, pos); err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if got, _ := b.PieceAt(pos); got != rook {
		t.Errorf("PieceAt(%v) = %v; want the placed rook", pos, got)
	}
	if cached, placed := rook.Position(); !placed || cached != pos {
		t.Errorf("rook.Position() = %v, %v; want %v, true", cached, placed, pos)
	}

	t.Run("occupied square", func(t *testing.T) {
		err := b.Place(NewPiece(Knight, White), pos)
		if !errors.Is(err, cerrors.ErrOccupiedSquare) {
			t.Errorf("Place() on occupied square error = %v; want ErrOccupiedSquare", err)
		}
	})

	t.Run("piece already placed", func(t *testing.T) {
		err := b.Place(rook, Position{Row: 4, Col: 4})
		if !errors.Is(err, cerrors.ErrOccupiedSquare) {
			t.Errorf("Place() of a placed piece error = %v; want ErrOccupiedSquare", err)
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		if err := b.Place(NewPiece(Pawn, Black), Position{Row: 8, Col: 0}); !errors.Is(err, cerrors.ErrOutOfBounds) {
			t.Errorf("Place() off board error = %v; want ErrOutOfBounds", err)
		}
		if _, err := b.PieceAt(Position{Row: -1, Col: 3}); !errors.Is(err, cerrors.ErrOutOfBounds) {
			t.Errorf("PieceAt() off board error = %v; want ErrOutOfBounds", err)
		}
		if _, err := b.Remove(Position{Row: 0, Col: 9}); !errors.Is(err, cerrors.ErrOutOfBounds) {
			t.Errorf("Remove() off board error = %v; want ErrOutOfBounds", err)
		}
	})

	removed, err := b.Remove(pos)
	if err != nil || removed != rook {
		t.Fatalf("Remove() = %v, %v; want rook, nil", removed, err)
	}
	if _, placed := rook.Position(); placed {
		t.Error("removed rook still reports being placed")
	}
	if b.IsOccupied(pos) {
		t.Error("square still occupied after Remove()")
	}

	empty, err := b.Remove(pos)
	if err != nil || empty != nil {
		t.Errorf("Remove() on empty square = %v, %v; want nil, nil", empty, err)
	}
}

func TestBoardPieces(t *testing.T) {
	b := NewStandardBoard()
	wk := NewPiece(King, White)
	bk := NewPiece(King, Black)
	_ = b.Place(wk, Position{7, 4})
	_ = b.Place(bk, Position{0, 4})

	pieces := b.Pieces()
	if len(pieces) != 2 || pieces[0] != bk || pieces[1] != wk {
		t.Errorf("Pieces() = %v; want [black king, white king]", pieces)
	}
}

func TestSquareConversion(t *testing.T) {
	tests := []struct {
		square string
		pos    Position
	}{
		{"a8", Position{0, 0}},
		{"h8", Position{0, 7}},
		{"a1", Position{7, 0}},
		{"h1", Position{7, 7}},
		{"e2", Position{6, 4}},
		{"d5", Position{3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			sq, err := ParseSquare(tt.square)
			if err != nil {
				t.Fatalf("ParseSquare(%q) error = %v", tt.square, err)
			}
			if got := sq.Position(); got != tt.pos {
				t.Errorf("Position() = %v; want %v", got, tt.pos)
			}
			back, err := SquareOf(tt.pos)
			if err != nil || back.String() != tt.square {
				t.Errorf("SquareOf(%v) = %v, %v; want %s", tt.pos, back, err, tt.square)
			}
		})
	}
}

func TestParseSquare_Malformed(t *testing.T) {
	for _, in := range []string{"", "e", "e9", "i1", "a0", "e22", "11", "ee"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseSquare(in); !errors.Is(err, cerrors.ErrMalformedCoordinate) {
				t.Errorf("ParseSquare(%q) error = %v; want ErrMalformedCoordinate", in, err)
			}
		})
	}
}

func TestParseSquare_UpperCaseFile(t *testing.T) {
	sq, err := ParseSquare("E4")
	if err != nil || sq.String() != "e4" {
		t.Errorf("ParseSquare(\"E4\") = %v, %v; want e4", sq, err)
	}
}

func TestSquareOf_OutOfBounds(t *testing.T) {
	if _, err := SquareOf(Position{Row: 8, Col: 0}); !errors.Is(err, cerrors.ErrOutOfBounds) {
		t.Errorf("SquareOf() error = %v; want ErrOutOfBounds", err)
	}
}

func TestKindLetters(t *testing.T) {
	for _, k := range []Kind{Pawn, Knight, Bishop, Rook, Queen, King} {
		if got := KindFromLetter(k.Letter()); got != k {
			t.Errorf("KindFromLetter(%c) = %v; want %v", k.Letter(), got, k)
		}
	}
	if KindFromLetter('x') != NoKind {
		t.Error("KindFromLetter('x') should be NoKind")
	}
	if King.IsPromotionTarget() || Pawn.IsPromotionTarget() || !Queen.IsPromotionTarget() {
		t.Error("IsPromotionTarget() wrong for King, Pawn or Queen")
	}
}

func TestGrid(t *testing.T) {
	g := NewGrid(8, 8)
	if g.Any() {
		t.Error("new grid should be empty")
	}
	g.Mark(Position{6, 4})
	g.Mark(Position{9, 9})
	if !g.At(Position{6, 4}) || g.At(Position{9, 9}) {
		t.Error("Mark/At mismatch")
	}
	if got := g.Squares(); len(got) != 1 || got[0] != "e2" {
		t.Errorf("Squares() = %v; want [e2]", got)
	}
}
