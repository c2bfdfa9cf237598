package chessmg

import "fmt"

// Square represents a board position (0-63), a1 = 0, h8 = 63.
type Square int

const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// Rank and file masks, little-endian rank-file mapping.
const (
	FileA uint64 = 0x0101010101010101
	FileB uint64 = FileA << 1
	FileG uint64 = FileA << 6
	FileH uint64 = FileA << 7

	Rank1 uint64 = 0x00000000000000FF
	Rank2 uint64 = Rank1 << 8
	Rank3 uint64 = Rank1 << 16
	Rank4 uint64 = Rank1 << 24
	Rank5 uint64 = Rank1 << 32
	Rank6 uint64 = Rank1 << 40
	Rank7 uint64 = Rank1 << 48
	Rank8 uint64 = Rank1 << 56
)

// NewSquare builds a square from zero-based file and rank. The result is
// NoSquare when either coordinate is off the board.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

// SquareFromIndex converts an arbitrary integer into a Square, rejecting
// anything outside 0-63.
func SquareFromIndex(i int) (Square, error) {
	if i < 0 || i > 63 {
		return NoSquare, fmt.Errorf("%w: index %d", ErrInvalidSquare, i)
	}
	return Square(i), nil
}

// ParseSquare parses algebraic coordinates such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file, rank := s[0], s[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return NewSquare(int(file-'a'), int(rank-'1')), nil
}

// Valid reports whether the square is on the board.
func (s Square) Valid() bool { return s >= A1 && s <= H8 }

// Rank returns the zero-based rank (0 = rank 1).
func (s Square) Rank() int { return int(s) >> 3 }

// File returns the zero-based file (0 = file a).
func (s Square) File() int { return int(s) & 7 }

// Mask returns the single-bit bitboard of the square.
func (s Square) Mask() uint64 { return uint64(1) << uint(s) }

// Offset moves the square by the given rank and file deltas. ok is false when
// the destination falls off the board.
func (s Square) Offset(dRank, dFile int) (Square, bool) {
	to := NewSquare(s.File()+dFile, s.Rank()+dRank)
	return to, to != NoSquare
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}
