package chessmg

import "math/bits"

// Precomputed attack masks for knights and kings from each square.
var knightAttacks [64]uint64
var kingAttacks [64]uint64

// pawnAttacks[color][sq] is the set of squares a pawn of 'color' on 'sq' attacks.
var pawnAttacks [2][64]uint64

// pawnAttackers[color][sq] is the set of squares from which a pawn of 'color'
// attacks 'sq'. It is the reverse of pawnAttacks and is what the attack oracle
// and en passant generation consult.
var pawnAttackers [2][64]uint64

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Slider directions as (dRank, dFile).
var rookDirections = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func init() {
	initLeaperTables()
	initMagics()
}

// initLeaperTables precomputes attack bitboards for knights, kings and pawn captures.
func initLeaperTables() {
	for i := 0; i < 64; i++ {
		sq := Square(i)
		knightAttacks[i] = offsetMask(sq, knightOffsets[:])
		kingAttacks[i] = offsetMask(sq, kingOffsets[:])

		pawnAttacks[White][i] = offsetMask(sq, [][2]int{{1, -1}, {1, 1}})
		pawnAttacks[Black][i] = offsetMask(sq, [][2]int{{-1, -1}, {-1, 1}})
	}
	for i := 0; i < 64; i++ {
		pawnAttackers[White][i] = pawnAttacks[Black][i]
		pawnAttackers[Black][i] = pawnAttacks[White][i]
	}
}

func offsetMask(sq Square, offsets [][2]int) uint64 {
	var mask uint64
	for _, off := range offsets {
		if to, ok := sq.Offset(off[0], off[1]); ok {
			mask |= to.Mask()
		}
	}
	return mask
}

// slidingAttacks walks each direction from sq until it leaves the board or
// hits an occupied square (which is included). It is the slow reference used
// to fill and validate the magic tables.
func slidingAttacks(sq Square, occ uint64, dirs [4][2]int) uint64 {
	var attacks uint64
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := cur.Offset(d[0], d[1])
			if !ok {
				break
			}
			attacks |= next.Mask()
			if occ&next.Mask() != 0 {
				break
			}
			cur = next
		}
	}
	return attacks
}

// relevantMask is the slider's attack set on an empty board minus the last
// square of each ray, since the edge square never changes the attack set.
func relevantMask(sq Square, dirs [4][2]int) uint64 {
	var mask uint64
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := cur.Offset(d[0], d[1])
			if !ok {
				break
			}
			if _, more := next.Offset(d[0], d[1]); !more {
				break
			}
			mask |= next.Mask()
			cur = next
		}
	}
	return mask
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) uint64 { return knightAttacks[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) uint64 { return kingAttacks[sq] }

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(c Color, sq Square) uint64 { return pawnAttacks[c][sq] }

// QueenAttacks is the union of the rook and bishop attack sets.
func QueenAttacks(sq Square, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}
