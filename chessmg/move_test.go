package chessmg_test

import (
	"testing"

	"chess-core/chessmg"
)

func TestMoveEncodingFields(t *testing.T) {
	for kind := chessmg.KindQuiet; kind <= chessmg.KindCapturePromoQueen; kind++ {
		m := chessmg.NewMove(chessmg.B7, chessmg.A8, kind)
		if m.From() != chessmg.B7 || m.To() != chessmg.A8 || m.Kind() != kind {
			t.Fatalf("kind %d: decoded %v %v %d", kind, m.From(), m.To(), m.Kind())
		}
		wantCapture := kind == chessmg.KindCapture || kind == chessmg.KindEnPassant || kind >= chessmg.KindCapturePromoKnight
		if m.IsCapture() != wantCapture {
			t.Fatalf("kind %d: IsCapture = %v", kind, m.IsCapture())
		}
		wantPromo := kind >= chessmg.KindPromoKnight
		if m.IsPromotion() != wantPromo {
			t.Fatalf("kind %d: IsPromotion = %v", kind, m.IsPromotion())
		}
		wantCastle := kind >= chessmg.KindCastleWhiteKing && kind <= chessmg.KindCastleBlackQueen
		if m.IsCastle() != wantCastle {
			t.Fatalf("kind %d: IsCastle = %v", kind, m.IsCastle())
		}
	}
}

func TestMoveString(t *testing.T) {
	cases := []struct {
		m    chessmg.Move
		want string
	}{
		{chessmg.NewMove(chessmg.E2, chessmg.E4, chessmg.KindDoublePawnPush), "e2e4"},
		{chessmg.NewMove(chessmg.E7, chessmg.E8, chessmg.KindPromoQueen), "e7e8q"},
		{chessmg.NewMove(chessmg.B7, chessmg.A8, chessmg.KindCapturePromoKnight), "b7a8n"},
		{chessmg.NewMove(chessmg.E1, chessmg.G1, chessmg.KindCastleWhiteKing), "e1g1"},
		{chessmg.NewMove(chessmg.E8, chessmg.C8, chessmg.KindCastleBlackQueen), "e8c8"},
		{chessmg.NullMove, "0000"},
	}
	for _, c := range cases {
		if got := c.m.String(); got != c.want {
			t.Fatalf("String() = %q want %q", got, c.want)
		}
	}
	if chessmg.NewMove(chessmg.A7, chessmg.A8, chessmg.KindPromoRook).PromotionType() != chessmg.PieceTypeRook {
		t.Fatalf("promotion type mismatch")
	}
}

func TestMoveListOperations(t *testing.T) {
	var l chessmg.MoveList
	a := chessmg.NewMove(chessmg.E2, chessmg.E4, chessmg.KindDoublePawnPush)
	b := chessmg.NewMove(chessmg.G1, chessmg.F3, chessmg.KindQuiet)
	l.Push(a)
	l.Push(b)
	if l.Len() != 2 || l.At(0) != a || !l.Contains(b) {
		t.Fatalf("unexpected list contents: %v", l.String())
	}
	l.Swap(0, 1)
	if l.At(0) != b || l.String() != "g1f3 e2e4" {
		t.Fatalf("swap failed: %v", l.String())
	}
	l.Clear()
	if l.Len() != 0 || l.Contains(a) {
		t.Fatalf("clear failed")
	}
}

func TestMoveListOverflowPanics(t *testing.T) {
	var l chessmg.MoveList
	for i := 0; i < chessmg.MaxMoves; i++ {
		l.Push(chessmg.NewMove(chessmg.A1, chessmg.A2, chessmg.KindQuiet))
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on overflow")
		}
	}()
	l.Push(chessmg.NewMove(chessmg.A1, chessmg.A2, chessmg.KindQuiet))
}
