package chessmg_test

import (
	"testing"

	"chess-core/chessmg"
)

func TestNewKeysDeterministic(t *testing.T) {
	a := chessmg.NewKeys(chessmg.DefaultSeed)
	b := chessmg.NewKeys(chessmg.DefaultSeed)
	if *a != *b {
		t.Fatalf("same seed produced different keys")
	}
	c := chessmg.NewKeys(chessmg.DefaultSeed + 1)
	if a.SideToMove == c.SideToMove && a.Pieces == c.Pieces {
		t.Fatalf("different seeds produced identical keys")
	}
}

func TestHashDependsOnKeys(t *testing.T) {
	a, _ := chessmg.ParseFEN(chessmg.NewKeys(1), chessmg.FENStartPos)
	b, _ := chessmg.ParseFEN(chessmg.NewKeys(2), chessmg.FENStartPos)
	if a.Hash() == b.Hash() {
		t.Fatalf("boards with different key sets hashed equal")
	}
	if a.FEN() != b.FEN() {
		t.Fatalf("key set changed the position")
	}
}

func TestHashDistinguishesStateFields(t *testing.T) {
	base := mustFEN(t, "r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1")
	variants := []string{
		"r3k2r/8/8/3pP3/8/8/8/R3K2R b KQkq d6 0 1",
		"r3k2r/8/8/3pP3/8/8/8/R3K2R w Kkq d6 0 1",
		"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq - 0 1",
		"r3k2r/8/8/3pP3/8/8/8/R3K1R1 w KQkq d6 0 1",
	}
	for _, fen := range variants {
		if mustFEN(t, fen).Hash() == base.Hash() {
			t.Fatalf("hash collision between %q and base", fen)
		}
	}
	// Clocks are not part of the hash.
	if mustFEN(t, "r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 7 30").Hash() != base.Hash() {
		t.Fatalf("move counters leaked into the hash")
	}
}
