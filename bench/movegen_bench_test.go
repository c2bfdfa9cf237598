package bench

import (
	"testing"

	"chess-core/chessmg"
	"chess-core/internal/testutil"
)

var keys = chessmg.NewKeys(chessmg.DefaultSeed)

func mustParse(b *testing.B, fen string) *chessmg.Board {
	board, err := chessmg.ParseFEN(keys, fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	return board
}

func benchGenerateMoves(b *testing.B, fen string) {
	board := mustParse(b, fen)
	var list chessmg.MoveList
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		list.Clear()
		board.GeneratePseudoMoves(&list)
	}
}

func BenchmarkGenerateMoves_Initial(b *testing.B) {
	benchGenerateMoves(b, chessmg.FENStartPos)
}

func BenchmarkGenerateMoves_Kiwipete(b *testing.B) {
	benchGenerateMoves(b, testutil.KiwipeteFEN)
}

func BenchmarkGenerateMoves_Pos6(b *testing.B) {
	benchGenerateMoves(b, "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10")
}

func BenchmarkGenerateLegalMoves_Kiwipete(b *testing.B) {
	board := mustParse(b, testutil.KiwipeteFEN)
	var list chessmg.MoveList
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		list.Clear()
		board.GenerateLegalMoves(&list)
	}
}

func BenchmarkMovePicker_Kiwipete(b *testing.B) {
	board := mustParse(b, testutil.KiwipeteFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := chessmg.NewMovePicker(board)
		for {
			if _, ok := p.Next(); !ok {
				break
			}
		}
	}
}

func BenchmarkMakeUndo_AllMoves_Initial(b *testing.B) {
	board := mustParse(b, chessmg.FENStartPos)
	var list chessmg.MoveList
	board.GeneratePseudoMoves(&list)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range list.Moves() {
			u := board.MakeMove(m)
			board.UndoMove(u)
		}
	}
}

func BenchmarkIsSquareAttacked(b *testing.B) {
	board := mustParse(b, testutil.KiwipeteFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for sq := chessmg.A1; sq <= chessmg.H8; sq++ {
			_ = board.IsSquareAttacked(sq, chessmg.Black)
		}
	}
}
