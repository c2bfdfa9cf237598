package chessmg_test

import (
	"fmt"
	"testing"

	"chess-core/chessmg"
)

func TestIsSquareAttackedRookFiles(t *testing.T) {
	b := emptyBoard(t)
	b.SetPiece(chessmg.E1, chessmg.WhiteKing)
	b.SetPiece(chessmg.E8, chessmg.BlackRook)
	if !b.InCheck(chessmg.White) {
		t.Fatalf("expected White in check from rook on file")
	}
	b.SetPiece(chessmg.E3, chessmg.WhitePawn)
	if b.IsSquareAttacked(chessmg.E1, chessmg.Black) {
		t.Fatalf("did not expect e1 attacked after blocker added")
	}
}

func TestIsSquareAttackedBishopDiagonals(t *testing.T) {
	b := emptyBoard(t)
	b.SetPiece(chessmg.E1, chessmg.WhiteKing)
	b.SetPiece(chessmg.B4, chessmg.BlackBishop)
	if !b.IsSquareAttacked(chessmg.E1, chessmg.Black) || !b.InCheck(chessmg.White) {
		t.Fatalf("expected e1 attacked by bishop along diagonal")
	}
	b.SetPiece(chessmg.D2, chessmg.WhitePawn)
	if b.IsSquareAttacked(chessmg.E1, chessmg.Black) {
		t.Fatalf("did not expect e1 attacked after diagonal blocker")
	}
	b.ClearSquare(chessmg.D2)
	b.SetPiece(chessmg.B4, chessmg.BlackQueen)
	if !b.InCheck(chessmg.White) {
		t.Fatalf("queen on the diagonal should check")
	}
}

func TestIsSquareAttackedPawnsKnightsKings(t *testing.T) {
	b := emptyBoard(t)
	b.SetPiece(chessmg.E1, chessmg.WhiteKing)
	b.SetPiece(chessmg.E4, chessmg.WhitePawn)
	b.SetPiece(chessmg.D5, chessmg.BlackPawn)
	if !b.IsSquareAttacked(chessmg.E4, chessmg.Black) {
		t.Fatalf("expected e4 attacked by black pawn from d5")
	}
	if b.IsSquareAttacked(chessmg.D4, chessmg.Black) {
		t.Fatalf("pawns do not attack straight ahead")
	}
	if !b.IsSquareAttacked(chessmg.D5, chessmg.White) {
		t.Fatalf("expected d5 attacked by white pawn from e4")
	}
	b.SetPiece(chessmg.F3, chessmg.BlackKnight)
	if !b.IsSquareAttacked(chessmg.E1, chessmg.Black) {
		t.Fatalf("expected e1 attacked by black knight from f3")
	}
	b.ClearSquare(chessmg.F3)
	b.SetPiece(chessmg.D2, chessmg.BlackKing)
	if !b.IsSquareAttacked(chessmg.E1, chessmg.Black) {
		t.Fatalf("expected e1 attacked by adjacent black king")
	}
}

func TestPawnAttacksDoNotWrap(t *testing.T) {
	b := emptyBoard(t)
	b.SetPiece(chessmg.H4, chessmg.WhitePawn)
	if b.IsSquareAttacked(chessmg.A6, chessmg.White) || b.IsSquareAttacked(chessmg.A5, chessmg.White) {
		t.Fatalf("h-file pawn attack wrapped to the a-file")
	}
	if !b.IsSquareAttacked(chessmg.G5, chessmg.White) {
		t.Fatalf("expected g5 attacked from h4")
	}
}

func TestLeftInCheck(t *testing.T) {
	// The e2 bishop is pinned against the king by the e8 rook.
	b := mustFEN(t, "4r1k1/8/8/8/8/8/4B3/4K3 w - - 0 1")
	m, err := chessmg.ParseMove(b, "e2d3")
	if err == nil {
		t.Fatalf("pinned bishop move accepted as legal: %v", m)
	}
	var list chessmg.MoveList
	b.GeneratePseudoMoves(&list)
	for _, pm := range list.Moves() {
		if pm.String() != "e2d3" {
			continue
		}
		u := b.MakeMove(pm)
		if !b.LeftInCheck() {
			t.Fatalf("LeftInCheck false after exposing the king")
		}
		b.UndoMove(u)
		return
	}
	t.Fatalf("pseudo-legal generator missed e2d3")
}

// TestCastlingUnderAttack places an enemy rook on every file of the back rank
// approach and checks each castle against the king path it must keep clear.
func TestCastlingUnderAttack(t *testing.T) {
	type castle struct {
		move string
		path []string
	}
	sides := []struct {
		fen      string
		attacker chessmg.Piece
		rank     int
		castles  []castle
	}{
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", chessmg.BlackRook, 2, []castle{
			{"e1g1", []string{"e1", "f1", "g1"}},
			{"e1c1", []string{"e1", "d1", "c1"}},
		}},
		{"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", chessmg.WhiteRook, 5, []castle{
			{"e8g8", []string{"e8", "f8", "g8"}},
			{"e8c8", []string{"e8", "d8", "c8"}},
		}},
	}
	for _, side := range sides {
		for file := 1; file <= 6; file++ {
			attackerSq := chessmg.NewSquare(file, side.rank)
			target := chessmg.NewSquare(file, 0)
			if side.rank == 5 {
				target = chessmg.NewSquare(file, 7)
			}
			b := mustFEN(t, side.fen)
			b.SetPiece(attackerSq, side.attacker)
			legal := map[string]bool{}
			for _, s := range legalStrings(b) {
				legal[s] = true
			}
			for _, c := range side.castles {
				blocked := false
				for _, p := range c.path {
					if p == target.String() {
						blocked = true
					}
				}
				name := fmt.Sprintf("%s with %v attacked", c.move, target)
				if legal[c.move] == blocked {
					t.Fatalf("%s: castle available = %v", name, legal[c.move])
				}
			}
		}
	}
}

func TestCastlingNeedsEmptySquaresAndRook(t *testing.T) {
	cases := []struct {
		fen    string
		absent []string
		allow  []string
	}{
		{"r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1", []string{"e1g1", "e1c1"}, nil},
		{"r3k2r/8/8/8/8/8/8/R3K2R w Kk - 0 1", []string{"e1c1"}, []string{"e1g1"}},
		// right claimed but the rook is gone
		{"r3k3/8/8/8/8/8/8/4K2R b KQkq - 0 1", []string{"e8g8"}, []string{"e8c8"}},
		// b1 attacked does not stop long castling
		{"1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1", nil, []string{"e1c1"}},
		// the king is in check
		{"4k3/8/8/8/8/8/8/R3K1r1 w Q - 0 1", []string{"e1c1"}, nil},
	}
	for _, c := range cases {
		b := mustFEN(t, c.fen)
		legal := map[string]bool{}
		for _, s := range legalStrings(b) {
			legal[s] = true
		}
		for _, m := range c.absent {
			if legal[m] {
				t.Fatalf("%q: %s should not be generated", c.fen, m)
			}
		}
		for _, m := range c.allow {
			if !legal[m] {
				t.Fatalf("%q: %s missing from %v", c.fen, m, legalStrings(b))
			}
		}
	}
}
