package chessmg

import (
	"fmt"
	"math/bits"
	"math/rand"
)

// Slider selects which sliding piece a magic table belongs to.
type Slider uint8

const (
	RookSlider Slider = iota
	BishopSlider
)

func (s Slider) String() string {
	if s == RookSlider {
		return "rook"
	}
	return "bishop"
}

func (s Slider) directions() [4][2]int {
	if s == RookSlider {
		return rookDirections
	}
	return bishopDirections
}

// magicEntry holds everything a single square needs for a lookup:
// index = ((occ & mask) * magic) >> shift.
type magicEntry struct {
	mask    uint64
	magic   uint64
	shift   uint8
	attacks []uint64
}

func (e *magicEntry) index(occ uint64) uint64 {
	return ((occ & e.mask) * e.magic) >> e.shift
}

var rookMagics [64]magicEntry
var bishopMagics [64]magicEntry

// MagicRepair records a square whose built-in magic number failed validation
// and was replaced by a searched one at init.
type MagicRepair struct {
	Square Square
	Slider Slider
	Old    uint64
	New    uint64
}

var magicRepairs []MagicRepair

// MagicRepairs returns the repairs performed while building the tables. It is
// empty when every built-in constant validated.
func MagicRepairs() []MagicRepair {
	out := make([]MagicRepair, len(magicRepairs))
	copy(out, magicRepairs)
	return out
}

// magicRepairSeed seeds the per-square repair search so repaired tables are
// identical across runs.
const magicRepairSeed = 0x6D61676963

var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

// initMagics builds the rook and bishop tables from the built-in constants,
// replacing any constant that aliases two different attack sets.
func initMagics() {
	for i := 0; i < 64; i++ {
		sq := Square(i)
		rookMagics[i] = buildMagic(sq, RookSlider, rookMagicNumbers[i])
		bishopMagics[i] = buildMagic(sq, BishopSlider, bishopMagicNumbers[i])
	}
}

func buildMagic(sq Square, slider Slider, magic uint64) magicEntry {
	mask := relevantMask(sq, slider.directions())
	subsets, attacks := enumerateOccupancies(sq, mask, slider)
	n := bits.OnesCount64(mask)

	table, ok := fillTable(subsets, attacks, magic, n)
	if !ok {
		rng := rand.New(rand.NewSource(magicRepairSeed + int64(sq)*2 + int64(slider)))
		repaired, err := searchMagic(subsets, attacks, mask, n, rng, 1<<30)
		if err != nil {
			panic(fmt.Sprintf("chessmg: no magic for %v %v: %v", slider, sq, err))
		}
		magicRepairs = append(magicRepairs, MagicRepair{Square: sq, Slider: slider, Old: magic, New: repaired})
		magic = repaired
		table, _ = fillTable(subsets, attacks, magic, n)
	}
	return magicEntry{mask: mask, magic: magic, shift: uint8(64 - n), attacks: table}
}

// enumerateOccupancies lists every subset of mask (Carry-Rippler) together
// with the slow-ray attack set for that blocker configuration.
func enumerateOccupancies(sq Square, mask uint64, slider Slider) ([]uint64, []uint64) {
	size := 1 << bits.OnesCount64(mask)
	subsets := make([]uint64, 0, size)
	attacks := make([]uint64, 0, size)
	var subset uint64
	for {
		subsets = append(subsets, subset)
		attacks = append(attacks, slidingAttacks(sq, subset, slider.directions()))
		subset = (subset - mask) & mask
		if subset == 0 {
			break
		}
	}
	return subsets, attacks
}

// fillTable places every subset's attack set at its magic index. It fails if
// two subsets with different attack sets land on the same index.
func fillTable(subsets, attacks []uint64, magic uint64, n int) ([]uint64, bool) {
	shift := uint(64 - n)
	table := make([]uint64, 1<<n)
	used := make([]bool, 1<<n)
	for i, occ := range subsets {
		idx := (occ * magic) >> shift
		if used[idx] {
			if table[idx] != attacks[i] {
				return nil, false
			}
			continue
		}
		used[idx] = true
		table[idx] = attacks[i]
	}
	return table, true
}

// searchMagic tries sparse random candidates until one fills the table
// without destructive collisions.
func searchMagic(subsets, attacks []uint64, mask uint64, n int, rng *rand.Rand, tries int) (uint64, error) {
	shift := uint(64 - n)
	table := make([]uint64, 1<<n)
	epoch := make([]int, 1<<n)
	for t := 1; t <= tries; t++ {
		magic := rng.Uint64() & rng.Uint64() & rng.Uint64()
		if bits.OnesCount64((mask*magic)>>56) < 6 {
			continue
		}
		ok := true
		for i, occ := range subsets {
			idx := (occ * magic) >> shift
			if epoch[idx] != t {
				epoch[idx] = t
				table[idx] = attacks[i]
			} else if table[idx] != attacks[i] {
				ok = false
				break
			}
		}
		if ok {
			return magic, nil
		}
	}
	return 0, fmt.Errorf("no magic after %d candidates", tries)
}

// FindMagic searches a fresh magic number for sq using rng. It is what the
// magicgen command uses to regenerate the built-in constants.
func FindMagic(sq Square, slider Slider, rng *rand.Rand) (uint64, error) {
	if !sq.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSquare, int(sq))
	}
	mask := relevantMask(sq, slider.directions())
	subsets, attacks := enumerateOccupancies(sq, mask, slider)
	return searchMagic(subsets, attacks, mask, bits.OnesCount64(mask), rng, 100_000_000)
}

// RookAttacks returns the rook attack set from sq given the board occupancy.
func RookAttacks(sq Square, occ uint64) uint64 {
	e := &rookMagics[sq]
	return e.attacks[e.index(occ)]
}

// BishopAttacks returns the bishop attack set from sq given the board occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 {
	e := &bishopMagics[sq]
	return e.attacks[e.index(occ)]
}

// Magic returns the magic number in use for sq, after any repair.
func Magic(sq Square, slider Slider) uint64 {
	if slider == RookSlider {
		return rookMagics[sq].magic
	}
	return bishopMagics[sq].magic
}
