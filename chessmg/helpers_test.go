package chessmg_test

import (
	"testing"

	"chess-core/chessmg"
)

var testKeys = chessmg.NewKeys(chessmg.DefaultSeed)

func mustFEN(t testing.TB, fen string) *chessmg.Board {
	t.Helper()
	b, err := chessmg.ParseFEN(testKeys, fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func emptyBoard(t testing.TB) *chessmg.Board {
	t.Helper()
	return chessmg.NewBoard(testKeys)
}

func legalStrings(b *chessmg.Board) []string {
	var list chessmg.MoveList
	b.GenerateLegalMoves(&list)
	out := make([]string, 0, list.Len())
	for _, m := range list.Moves() {
		out = append(out, m.String())
	}
	return out
}

func sq(t testing.TB, s string) chessmg.Square {
	t.Helper()
	v, err := chessmg.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return v
}
