package engine

import (
	"chess-core/chessmg"
)

// Most Valuable Victim - Least Valuable Aggressor; used to score & sort captures
var mvvLva = [7][7]uint16{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim Pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim Knight
	{0, 34, 33, 32, 31, 30, 0}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim Rook
	{0, 54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King
}

/*
	Move ordering offsets
	- The table move goes first; it is the best move of an earlier, shallower search.
	- Promotions, then captures by MVV-LVA.
	- Killers beat the remaining quiets, which are ordered by history.
*/
const (
	ttMoveOffset    uint16 = 25000
	promotionOffset uint16 = 20000
	captureOffset   uint16 = 15000
	killerOffset    uint16 = 2000
)

// Keeps history scores below the killers.
const historyMaxVal = 1800

// KillerTable keeps two quiet moves per ply that caused a beta cutoff.
type KillerTable [MaxPly + 1][2]chessmg.Move

func (k *KillerTable) Insert(m chessmg.Move, ply int) {
	if m != k[ply][0] {
		k[ply][1] = k[ply][0]
		k[ply][0] = m
	}
}

func (k *KillerTable) Clear() {
	for i := range k {
		k[i] = [2]chessmg.Move{}
	}
}

// HistoryTable scores quiet moves by from/to square and side.
type HistoryTable [2][64][64]uint16

func (h *HistoryTable) Add(c chessmg.Color, m chessmg.Move, depth int) {
	v := &h[c][m.From()][m.To()]
	*v = uint16(Min(int(*v)+depth*depth, historyMaxVal))
}

func (h *HistoryTable) Clear() { *h = HistoryTable{} }

// scoredMoves pairs a move list with per-move ordering scores.
type scoredMoves struct {
	list   chessmg.MoveList
	scores [chessmg.MaxMoves]uint16
}

func isQuiet(m chessmg.Move) bool { return !m.IsCapture() && !m.IsPromotion() }

// scoreMoves fills the ordering score of every move in sm.
func (s *Searcher) scoreMoves(b *chessmg.Board, sm *scoredMoves, ttMove chessmg.Move, ply int) {
	us := b.SideToMove()
	for i := 0; i < sm.list.Len(); i++ {
		m := sm.list.At(i)
		var eval uint16
		switch {
		case m == ttMove:
			eval = ttMoveOffset
		case m.IsPromotion():
			eval = promotionOffset + uint16(m.PromotionType())*100
			if m.IsCapture() {
				eval += mvvLva[capturedType(b, m)][chessmg.PieceTypePawn]
			}
		case m.IsCapture():
			eval = captureOffset + mvvLva[capturedType(b, m)][b.PieceAt(m.From()).Type()]
		case s.killers[ply][0] == m:
			eval = killerOffset + 200
		case s.killers[ply][1] == m:
			eval = killerOffset
		default:
			eval = s.history[us][m.From()][m.To()]
		}
		sm.scores[i] = eval
	}
}

func capturedType(b *chessmg.Board, m chessmg.Move) chessmg.PieceType {
	if m.Kind() == chessmg.KindEnPassant {
		return chessmg.PieceTypePawn
	}
	return b.PieceAt(m.To()).Type()
}

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, sm *scoredMoves) {
	bestIndex := currIndex
	bestScore := sm.scores[bestIndex]

	for index := bestIndex + 1; index < sm.list.Len(); index++ {
		if sm.scores[index] > bestScore {
			bestIndex = index
			bestScore = sm.scores[index]
		}
	}
	sm.list.Swap(currIndex, bestIndex)
	sm.scores[currIndex], sm.scores[bestIndex] = sm.scores[bestIndex], sm.scores[currIndex]
}
