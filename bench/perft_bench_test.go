package bench

import (
	"testing"

	"chess-core/chessmg"
	"chess-core/engine"
	"chess-core/internal/testutil"
)

func benchPerft(b *testing.B, fen string, depth int) {
	board := mustParse(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = chessmg.Perft(board, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, chessmg.FENStartPos, 4)
}

func BenchmarkPerft_Kiwipete_D3(b *testing.B) {
	benchPerft(b, testutil.KiwipeteFEN, 3)
}

func BenchmarkSearch_Initial_D5(b *testing.B) {
	board := mustParse(b, chessmg.FENStartPos)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := engine.NewSearcher(engine.NewTransTable(16))
		s.Search(board, engine.Limits{Depth: 5})
	}
}

func BenchmarkEvaluate_Kiwipete(b *testing.B) {
	board := mustParse(b, testutil.KiwipeteFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Evaluate(board)
	}
}
