package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"chess-core/chessmg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxScore  int32 = 32500
	MateScore int32 = 32000
	MaxPly          = 128
	// Scores beyond Checkmate in magnitude are mate scores.
	Checkmate int32 = MateScore - MaxPly
	DrawScore int32 = 0

	// NoScore is returned by an aborted node; callers must check Searcher.aborted
	// before using any score.
	NoScore int32 = MaxScore + 1
)

// NodeCheckInterval is how many nodes pass between clock and stop checks.
// Must be a power of two.
const NodeCheckInterval = 4096

// Info describes one completed iteration.
type Info struct {
	Depth    int
	Score    int32
	Nodes    uint64
	Time     time.Duration
	NPS      uint64
	Hashfull int
	PV       []chessmg.Move
}

// String renders the iteration as a UCI info line.
func (i Info) String() string {
	return fmt.Sprint(
		"info depth ", i.Depth,
		" score ", getMateOrCPScore(i.Score),
		" nodes ", i.Nodes,
		" time ", i.Time.Milliseconds(),
		" nps ", i.NPS,
		" hashfull ", i.Hashfull,
		" pv", getPVLineString(i.PV),
	)
}

// Result is the outcome of a search: the best move of the deepest completed
// iteration.
type Result struct {
	Move    chessmg.Move
	Score   int32
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
	PV      []chessmg.Move
}

// Searcher runs a single-threaded iterative deepening alpha-beta search.
type Searcher struct {
	// TT may be nil, in which case the search runs without a table.
	TT     *TransTable
	Eval   EvalFunc
	OnInfo func(Info)

	timeHandler TimeHandler
	limits      Limits
	nodes       uint64
	stop        atomic.Bool
	aborted     bool
	canAbort    bool

	killers KillerTable
	history HistoryTable
}

// NewSearcher returns a searcher using tt and the default evaluation.
func NewSearcher(tt *TransTable) *Searcher {
	return &Searcher{TT: tt, Eval: Evaluate}
}

// StopSearch asks a running search to finish; it returns the last completed
// iteration's move. Safe to call from another goroutine.
func (s *Searcher) StopSearch() { s.stop.Store(true) }

// Nodes returns the node count of the current or last search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// Search runs iterative deepening on b until the limits are hit. The board is
// restored before returning. The first iteration always completes, so a
// legal move is returned whenever one exists.
func (s *Searcher) Search(b *chessmg.Board, l Limits) Result {
	s.limits = l
	s.nodes = 0
	s.aborted = false
	defer s.stop.Store(false)
	s.killers.Clear()
	s.history.Clear()
	s.timeHandler.StartTime(l, b)
	if s.Eval == nil {
		s.Eval = Evaluate
	}

	maxDepth := l.Depth
	if maxDepth <= 0 || maxDepth >= MaxPly {
		maxDepth = MaxPly - 1
	}

	var result Result
	for depth := 1; depth <= maxDepth; depth++ {
		s.canAbort = depth > 1
		score, move := s.alphaBeta(b, -MaxScore, MaxScore, depth, 0)
		if s.aborted {
			break
		}

		elapsed := s.timeHandler.Elapsed()
		result = Result{Move: move, Score: score, Depth: depth, Nodes: s.nodes, Elapsed: elapsed}
		result.PV = s.principalVariation(b, move, depth)

		if s.OnInfo != nil {
			ms := Max(elapsed.Milliseconds(), 1)
			info := Info{
				Depth: depth,
				Score: score,
				Nodes: s.nodes,
				Time:  elapsed,
				NPS:   uint64(float64(s.nodes*1000) / float64(ms)),
				PV:    result.PV,
			}
			if s.TT != nil {
				info.Hashfull = s.TT.Hashfull()
			}
			s.OnInfo(info)
		}

		if move == chessmg.NullMove {
			// no legal moves: mate or stalemate is already final
			break
		}
		if l.Infinite {
			continue
		}
		// A mate found at this depth cannot be shortened by searching deeper.
		if Abs(score) > Checkmate {
			break
		}
		if s.timeHandler.SoftTimeExceeded() || s.stop.Load() {
			break
		}
	}
	result.Nodes = s.nodes
	result.Elapsed = s.timeHandler.Elapsed()
	return result
}

// checkAbort polls the clock, the stop flag and the node limit.
func (s *Searcher) checkAbort() {
	if !s.canAbort {
		return
	}
	if s.stop.Load() || s.timeHandler.TimeStatus() || (s.limits.Nodes > 0 && s.nodes >= s.limits.Nodes) {
		s.aborted = true
	}
}

// alphaBeta is a fail-soft negamax. It returns the score from the side to
// move's point of view and the best move found at this node.
func (s *Searcher) alphaBeta(b *chessmg.Board, alpha, beta int32, depth, ply int) (int32, chessmg.Move) {
	s.nodes++
	if s.nodes&(NodeCheckInterval-1) == 0 {
		s.checkAbort()
	}
	if s.aborted {
		return NoScore, chessmg.NullMove
	}

	if depth <= 0 || ply >= MaxPly {
		return s.evaluate(b), chessmg.NullMove
	}

	alphaOrig := alpha
	hash := b.Hash()

	/*
		TRANSPOSITION TABLE LOOKUP
	*/
	var ttMove chessmg.Move
	if s.TT != nil {
		if e, ok := s.TT.Probe(hash); ok {
			ttMove = e.Move
			if ply > 0 {
				if score, usable := s.TT.Usable(e, depth, alpha, beta, ply); usable {
					return score, e.Move
				}
			}
		}
	}

	var moves scoredMoves
	b.GeneratePseudoMoves(&moves.list)
	s.scoreMoves(b, &moves, ttMove, ply)

	best := -MaxScore
	bestMove := chessmg.NullMove
	legal := 0
	for i := 0; i < moves.list.Len(); i++ {
		orderNextMove(i, &moves)
		m := moves.list.At(i)
		u := b.MakeMove(m)
		if b.LeftInCheck() {
			b.UndoMove(u)
			continue
		}
		legal++
		score, _ := s.alphaBeta(b, -beta, -alpha, depth-1, ply+1)
		b.UndoMove(u)
		if s.aborted {
			return NoScore, chessmg.NullMove
		}
		score = -score

		if score > best {
			best = score
			bestMove = m
			if score > alpha {
				alpha = score
			}
		}
		if alpha >= beta {
			if isQuiet(m) {
				s.killers.Insert(m, ply)
				s.history.Add(b.SideToMove(), m, depth)
			}
			break
		}
	}

	if legal == 0 {
		if b.InCheck(b.SideToMove()) {
			return -MateScore + int32(ply), chessmg.NullMove
		}
		return DrawScore, chessmg.NullMove
	}

	if s.TT != nil {
		flag := ExactFlag
		if best <= alphaOrig {
			flag = AlphaFlag
		} else if best >= beta {
			flag = BetaFlag
		}
		s.TT.Store(hash, bestMove, best, depth, flag, ply)
	}
	return best, bestMove
}

// evaluate returns the static evaluation from the side to move's point of view.
func (s *Searcher) evaluate(b *chessmg.Board) int32 {
	score := s.Eval(b)
	if b.SideToMove() == chessmg.Black {
		return -score
	}
	return score
}

// principalVariation starts with the root move and follows table moves,
// stopping at the first missing or illegal one.
func (s *Searcher) principalVariation(b *chessmg.Board, root chessmg.Move, depth int) []chessmg.Move {
	if root == chessmg.NullMove {
		return nil
	}
	pv := []chessmg.Move{root}
	if s.TT == nil {
		return pv
	}
	walk := b.Copy()
	walk.MakeMove(root)
	seen := map[uint64]bool{b.Hash(): true}
	for len(pv) < depth {
		if seen[walk.Hash()] {
			break
		}
		seen[walk.Hash()] = true
		e, ok := s.TT.Probe(walk.Hash())
		if !ok || e.Move == chessmg.NullMove {
			break
		}
		var legal chessmg.MoveList
		walk.GenerateLegalMoves(&legal)
		if !legal.Contains(e.Move) {
			break
		}
		walk.MakeMove(e.Move)
		pv = append(pv, e.Move)
	}
	return pv
}

func getPVLineString(pv []chessmg.Move) string {
	var sb strings.Builder
	for _, m := range pv {
		sb.WriteByte(' ')
		sb.WriteString(m.String())
	}
	return sb.String()
}

// FormatScore renders a score the way UCI info lines do.
func FormatScore(score int32) string { return getMateOrCPScore(score) }

// getMateOrCPScore formats a score as "cp N" or "mate N" (moves, negative
// when being mated).
func getMateOrCPScore(score int32) string {
	if score > Checkmate {
		plies := int(MateScore - score)
		return fmt.Sprintf("mate %d", (plies+1)/2)
	} else if score < -Checkmate {
		plies := int(MateScore + score)
		return fmt.Sprintf("mate %d", -(plies+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}
