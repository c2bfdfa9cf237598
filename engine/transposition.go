package engine

import (
	"unsafe"

	"chess-core/chessmg"
)

// Bound flags. EmptyFlag marks a slot that has never been written.
const (
	EmptyFlag uint8 = iota
	AlphaFlag       // upper bound: score <= stored
	BetaFlag        // lower bound: score >= stored
	ExactFlag
)

// DefaultTTSizeMB is the table size used when none is configured.
const DefaultTTSizeMB = 64

type TTEntry struct {
	Hash  uint64
	Score int32
	Move  chessmg.Move
	Depth int8
	Flag  uint8
}

type TransTable struct {
	entries []TTEntry
	mask    uint64
	sizeMB  int
}

// NewTransTable allocates the largest power-of-two number of entries that
// fits in sizeMB megabytes (at least one entry).
func NewTransTable(sizeMB int) *TransTable {
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	if sizeMB < 0 {
		sizeMB = 0
	}
	capacity := uint64(sizeMB) * 1024 * 1024 / entrySize
	size := uint64(1)
	for size*2 <= capacity {
		size *= 2
	}
	return &TransTable{
		entries: make([]TTEntry, size),
		mask:    size - 1,
		sizeMB:  sizeMB,
	}
}

// Size returns the number of entries.
func (tt *TransTable) Size() int { return len(tt.entries) }

// SizeMB returns the configured size.
func (tt *TransTable) SizeMB() int { return tt.sizeMB }

// Clear empties every slot.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// Probe returns the entry for hash. Scores in the returned entry are still in
// table form; use Usable to read them at a given ply.
func (tt *TransTable) Probe(hash uint64) (TTEntry, bool) {
	e := tt.entries[hash&tt.mask]
	if e.Flag == EmptyFlag || e.Hash != hash {
		return TTEntry{}, false
	}
	return e, true
}

// Store writes an entry when the slot is empty, holds another position, or
// holds a result searched no deeper than this one.
func (tt *TransTable) Store(hash uint64, move chessmg.Move, score int32, depth int, flag uint8, ply int) {
	e := &tt.entries[hash&tt.mask]
	if e.Flag != EmptyFlag && e.Hash == hash && int(e.Depth) > depth {
		return
	}
	e.Hash = hash
	e.Move = move
	e.Score = scoreToTT(score, ply)
	e.Depth = int8(Clamp(depth, -128, 127))
	e.Flag = flag
}

// Usable reports whether a probed entry settles the node searched to depth
// with window (alpha, beta), returning the ply-adjusted score if so.
func (tt *TransTable) Usable(e TTEntry, depth int, alpha, beta int32, ply int) (int32, bool) {
	if e.Flag == EmptyFlag || int(e.Depth) < depth {
		return 0, false
	}
	score := scoreFromTT(e.Score, ply)
	switch e.Flag {
	case ExactFlag:
		return score, true
	case BetaFlag:
		if score >= beta {
			return score, true
		}
	case AlphaFlag:
		if score <= alpha {
			return score, true
		}
	}
	return 0, false
}

// Hashfull estimates table occupancy in permille from the first 1000 slots.
func (tt *TransTable) Hashfull() int {
	n := Min(1000, len(tt.entries))
	used := 0
	for i := 0; i < n; i++ {
		if tt.entries[i].Flag != EmptyFlag {
			used++
		}
	}
	return used * 1000 / n
}

// Mate scores are stored as distance from the node rather than from the root
// so they stay correct when the position is reached at another ply.
func scoreToTT(score int32, ply int) int32 {
	if score > Checkmate {
		return score + int32(ply)
	}
	if score < -Checkmate {
		return score - int32(ply)
	}
	return score
}

func scoreFromTT(score int32, ply int) int32 {
	if score > Checkmate {
		return score - int32(ply)
	}
	if score < -Checkmate {
		return score + int32(ply)
	}
	return score
}
