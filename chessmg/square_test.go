package chessmg_test

import (
	"errors"
	"testing"

	"chess-core/chessmg"
)

func TestSquareFromIndexRejectsOffBoard(t *testing.T) {
	for _, i := range []int{-1, 64, 100} {
		if _, err := chessmg.SquareFromIndex(i); !errors.Is(err, chessmg.ErrInvalidSquare) {
			t.Fatalf("SquareFromIndex(%d): got %v want ErrInvalidSquare", i, err)
		}
	}
	for i := 0; i < 64; i++ {
		s, err := chessmg.SquareFromIndex(i)
		if err != nil || int(s) != i {
			t.Fatalf("SquareFromIndex(%d) = %v, %v", i, s, err)
		}
	}
}

func TestParseSquare(t *testing.T) {
	cases := map[string]chessmg.Square{"a1": chessmg.A1, "h8": chessmg.H8, "e4": chessmg.E4, "D5": chessmg.D5}
	for in, want := range cases {
		got, err := chessmg.ParseSquare(in)
		if err != nil || got != want {
			t.Fatalf("ParseSquare(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "i1", "a9", "a0", "e44", "-"} {
		if _, err := chessmg.ParseSquare(bad); !errors.Is(err, chessmg.ErrInvalidSquare) {
			t.Fatalf("ParseSquare(%q): expected ErrInvalidSquare, got %v", bad, err)
		}
	}
}

func TestSquareGeometry(t *testing.T) {
	if chessmg.E4.Rank() != 3 || chessmg.E4.File() != 4 {
		t.Fatalf("e4 rank/file = %d/%d", chessmg.E4.Rank(), chessmg.E4.File())
	}
	if chessmg.E4.Mask() != uint64(1)<<28 {
		t.Fatalf("e4 mask = %#x", chessmg.E4.Mask())
	}
	if chessmg.E4.String() != "e4" || chessmg.NoSquare.String() != "-" {
		t.Fatalf("unexpected String output")
	}
	if to, ok := chessmg.E4.Offset(1, 1); !ok || to != chessmg.F5 {
		t.Fatalf("e4+(1,1) = %v, %v", to, ok)
	}
	// Offsets must not wrap around the board edge.
	if _, ok := chessmg.H4.Offset(0, 1); ok {
		t.Fatalf("h4 east should leave the board")
	}
	if _, ok := chessmg.A8.Offset(1, 0); ok {
		t.Fatalf("a8 north should leave the board")
	}
}
