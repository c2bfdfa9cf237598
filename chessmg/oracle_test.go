package chessmg_test

import (
	"math/rand"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"chess-core/chessmg"
	"chess-core/internal/testutil"
)

func dragontoothMoves(fen string) []string {
	b := dragontoothmg.ParseFen(fen)
	var out []string
	for _, m := range b.GenerateLegalMoves() {
		out = append(out, m.String())
	}
	return out
}

func notnilMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("notnil/chess rejected %q: %v", fen, err)
	}
	game := chess.NewGame(opt)
	var out []string
	for _, m := range game.ValidMoves() {
		out = append(out, chess.UCINotation{}.Encode(game.Position(), m))
	}
	return out
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		undo := b.Apply(m)
		n += dragontoothPerft(b, depth-1)
		undo()
	}
	return n
}

// TestLegalMovesAgainstOracles walks random games from every sample position
// and compares the legal move set at each ply with two independent generators.
func TestLegalMovesAgainstOracles(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	walks, plies := 8, 60
	if testing.Short() {
		walks, plies = 2, 20
	}
	for _, start := range testutil.SamplePositions {
		for w := 0; w < walks; w++ {
			b := mustFEN(t, start)
			for ply := 0; ply < plies; ply++ {
				fen := b.FEN()
				ours := legalStrings(b)
				testutil.AssertSameMoves(t, ours, dragontoothMoves(fen), "dragontoothmg %s", fen)
				testutil.AssertSameMoves(t, ours, notnilMoves(t, fen), "notnil/chess %s", fen)
				if t.Failed() || len(ours) == 0 {
					break
				}
				m, err := chessmg.ParseMove(b, ours[rng.Intn(len(ours))])
				testutil.AssertNoError(t, err)
				b.MakeMove(m)
			}
			if t.Failed() {
				return
			}
		}
	}
}

func TestPerftAgainstDragontooth(t *testing.T) {
	depth := 3
	if testing.Short() {
		depth = 2
	}
	for _, fen := range testutil.SamplePositions {
		dt := dragontoothmg.ParseFen(fen)
		want := dragontoothPerft(&dt, depth)
		if got := chessmg.Perft(mustFEN(t, fen), depth); got != want {
			t.Fatalf("%q perft(%d): got %d, dragontoothmg %d", fen, depth, got, want)
		}
	}
}
