package engine

import (
	"time"

	"chess-core/chessmg"
)

// Limits bounds a search. Zero values mean "not set"; with nothing set the
// search runs until Stop or MaxDepth.
type Limits struct {
	MoveTime  time.Duration
	WTime     time.Duration
	BTime     time.Duration
	WInc      time.Duration
	BInc      time.Duration
	MovesToGo int
	Depth     int
	Nodes     uint64
	Infinite  bool
}

type TimeHandler struct {
	start       time.Time
	timeForMove time.Time
	softLimit   time.Time
	hasDeadline bool
}

// Engine-side safety knobs
const (
	overheadMs    = 30   // reserve for UCI/IO jitter
	minMoveMs     = 5    // never less than this
	maxFrac       = 0.7  // never spend >70% of remaining time
	panicThreshMs = 1000 // below this, live off the increment
	panicFrac     = 0.90 // use 90% of inc in panic
)

// StartTime fixes the deadline for the search about to begin.
func (th *TimeHandler) StartTime(l Limits, b *chessmg.Board) {
	th.start = time.Now()
	th.hasDeadline = false
	if l.Infinite {
		return
	}

	var moveTime time.Duration
	switch {
	case l.MoveTime > 0:
		moveTime = l.MoveTime
	case l.WTime > 0 || l.BTime > 0:
		rem, inc := l.WTime, l.WInc
		if b.SideToMove() == chessmg.Black {
			rem, inc = l.BTime, l.BInc
		}
		moveTime = time.Duration(allocateMs(int(rem.Milliseconds()), int(inc.Milliseconds()), l.MovesToGo, GamePhase(b))) * time.Millisecond
	default:
		return
	}

	th.hasDeadline = true
	th.timeForMove = th.start.Add(moveTime)
	th.softLimit = th.start.Add(moveTime / 2)
}

// allocateMs splits the remaining clock over the estimated moves left.
func allocateMs(rem, inc, movesToGo, phase int) int {
	movesLeft := estimateMovesRemaining(phase)
	if movesToGo > 0 {
		movesLeft = Min(movesLeft, movesToGo)
	}

	var moveTime int
	if inc > 0 {
		if rem < panicThreshMs {
			moveTime = int(float64(inc) * panicFrac)
		} else {
			moveTime = rem/movesLeft + inc
		}
	} else if movesToGo > 0 {
		moveTime = rem / movesLeft
	} else {
		moveTime = rem / 40
	}

	moveTime = Max(moveTime, minMoveMs)
	moveTime = Min(moveTime, int(float64(rem)*maxFrac))
	moveTime = Min(moveTime, rem-overheadMs)
	// re-check after ceiling
	return Max(moveTime, minMoveMs)
}

/*
  - True if we're out of time
  - False if we still got time or the search has no deadline
*/
func (th *TimeHandler) TimeStatus() bool {
	return th.hasDeadline && th.timeForMove.Before(time.Now())
}

// SoftTimeExceeded reports that half the budget is gone, so another
// iteration would most likely not finish.
func (th *TimeHandler) SoftTimeExceeded() bool {
	return th.hasDeadline && th.softLimit.Before(time.Now())
}

// Elapsed returns the time since StartTime.
func (th *TimeHandler) Elapsed() time.Duration { return time.Since(th.start) }

func estimateMovesRemaining(phase int) int {
	// Linearly interpolate between 20 (endgame) and 45 (opening/midgame)
	return (phase*25)/TotalPhase + 20
}
