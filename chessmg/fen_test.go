package chessmg_test

import (
	"errors"
	"testing"

	"chess-core/chessmg"
	"chess-core/internal/testutil"
)

func TestFENRoundTrip(t *testing.T) {
	corpus := append([]string{
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 b - - 99 250",
		"r3k2r/8/8/8/8/8/8/R3K2R w Kq - 3 17",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	}, testutil.SamplePositions...)
	for _, fen := range corpus {
		b := mustFEN(t, fen)
		if got := b.FEN(); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
		if err := b.Validate(); err != nil {
			t.Fatalf("%q: %v", fen, err)
		}
		if b.Hash() != b.ComputeHash() {
			t.Fatalf("%q: incremental hash differs from recomputed", fen)
		}
	}
}

func TestParseFENEmpty(t *testing.T) {
	for _, fen := range []string{"", "   ", "\t\n"} {
		if _, err := chessmg.ParseFEN(testKeys, fen); !errors.Is(err, chessmg.ErrEmptyFEN) {
			t.Fatalf("ParseFEN(%q): got %v want ErrEmptyFEN", fen, err)
		}
	}
}

func TestParseFENDefaults(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/8/4K3")
	testutil.AssertEqual(t, b.FEN(), "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	b = mustFEN(t, "4k3/8/8/8/8/8/8/4K3 b")
	testutil.AssertEqual(t, b.FEN(), "4k3/8/8/8/8/8/8/4K3 b - - 0 1")
}

func TestParseFENLenient(t *testing.T) {
	cases := []struct{ in, want string }{
		// unknown characters are skipped
		{"4k3/8/8/8/8/8/8/4K3 w KQxz - 0 1", "4k3/8/8/8/8/8/8/4K3 w KQ - 0 1"},
		{"4kX3/8/8/8/8/8/8/4K3 w - - 0 1", "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		// squares past the h-file and extra ranks are dropped
		{"4k3pp/8/8/8/8/8/8/4K3/PPPP w - - 0 1", "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		// bad en passant target and counters fall back to defaults
		{"4k3/8/8/8/8/8/8/4K3 w - e4 x -3", "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"4k3/8/8/8/8/8/8/4K3 w - z9 5 0", "4k3/8/8/8/8/8/8/4K3 w - - 5 1"},
		// extra whitespace
		{"  4k3/8/8/8/8/8/8/4K3   b   -  -  2  9 ", "4k3/8/8/8/8/8/8/4K3 b - - 2 9"},
	}
	for _, c := range cases {
		b := mustFEN(t, c.in)
		if got := b.FEN(); got != c.want {
			t.Fatalf("ParseFEN(%q).FEN() = %q want %q", c.in, got, c.want)
		}
		if err := b.Validate(); err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
	}
}

func TestStartingBoard(t *testing.T) {
	b := chessmg.StartingBoard(testKeys)
	testutil.AssertEqual(t, b.FEN(), chessmg.FENStartPos)
	if b.KingSquare(chessmg.White) != chessmg.E1 || b.KingSquare(chessmg.Black) != chessmg.E8 {
		t.Fatalf("king squares wrong")
	}
	if b.PieceAt(chessmg.D1) != chessmg.WhiteQueen || b.PieceAt(chessmg.G8) != chessmg.BlackKnight {
		t.Fatalf("reverse index wrong")
	}
	if b.AllOccupancy() != 0xFFFF00000000FFFF || b.EmptySquares() != ^uint64(0xFFFF00000000FFFF) {
		t.Fatalf("occupancy aggregates wrong: %#x", b.AllOccupancy())
	}
}
