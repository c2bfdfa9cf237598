package testutil

// PerftPosition is a reference position with known leaf counts keyed by depth.
type PerftPosition struct {
	Name  string
	FEN   string
	Nodes map[int]uint64
}

const (
	StartFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	KiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	EndgameEPFEN = "3k4/3p4/8/K1P4r/8/8/8/8 b - - 0 1"
)

// PerftPositions are the standard move generator regression positions.
var PerftPositions = []PerftPosition{
	{"start", StartFEN, map[int]uint64{1: 20, 2: 400, 3: 8902, 4: 197281, 5: 4865609, 6: 119060324}},
	{"kiwipete", KiwipeteFEN, map[int]uint64{1: 48, 2: 2039, 3: 97862, 4: 4085603, 5: 193690690}},
	{"rook-endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", map[int]uint64{1: 14, 2: 191, 3: 2812, 4: 43238, 5: 674624, 6: 11030083}},
	{"promotions", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", map[int]uint64{1: 6, 2: 264, 3: 9467, 4: 422333, 5: 15833292}},
	{"promotions-mirrored", "r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1", map[int]uint64{1: 6, 2: 264, 3: 9467, 4: 422333, 5: 15833292}},
	{"talkchess", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", map[int]uint64{1: 44, 2: 1486, 3: 62379, 4: 2103487, 5: 89941194}},
	{"steven-edwards", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", map[int]uint64{1: 46, 2: 2079, 3: 89890, 4: 3894594, 5: 164075551}},
	{"ep-discovered-check", EndgameEPFEN, map[int]uint64{6: 1134888}},
}

// SamplePositions is a varied corpus for make/undo and differential tests.
var SamplePositions = []string{
	StartFEN,
	KiwipeteFEN,
	EndgameEPFEN,
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	"rnbqkbnr/pppp1ppp/8/8/3Pp3/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 2",
	"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
	"4k3/1P6/8/8/8/8/6p1/4K3 w - - 0 1",
	"8/8/8/8/8/8/6k1/4K2R w K - 0 1",
	"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
	"k7/8/8/8/8/8/8/7K w - - 50 80",
}
