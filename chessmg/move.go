package chessmg

import "strings"

// Move encodes a chess move in 16 bits.
type Move uint16

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift = 0  // 6 bits
	moveToShift   = 6  // 6 bits
	moveKindShift = 12 // 4 bits
)

// MoveKind is the 4-bit move classification stored in the top of a Move.
// Bit 3 is set only for promotions; bit 2 marks a capturing promotion.
type MoveKind uint8

const (
	KindQuiet MoveKind = iota
	KindDoublePawnPush
	KindCapture
	KindEnPassant
	KindCastleWhiteKing
	KindCastleWhiteQueen
	KindCastleBlackKing
	KindCastleBlackQueen
	KindPromoKnight
	KindPromoBishop
	KindPromoRook
	KindPromoQueen
	KindCapturePromoKnight
	KindCapturePromoBishop
	KindCapturePromoRook
	KindCapturePromoQueen
)

// NullMove is the zero Move; the generator never produces it.
const NullMove Move = 0

// NewMove constructs a Move value from components.
func NewMove(from, to Square, kind MoveKind) Move {
	return Move(uint16(from&0x3F)<<moveFromShift |
		uint16(to&0x3F)<<moveToShift |
		uint16(kind&0xF)<<moveKindShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((m >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((m >> moveToShift) & 0x3F) }

// Kind returns the move classification.
func (m Move) Kind() MoveKind { return MoveKind(m >> moveKindShift) }

// IsCapture reports captures, en passant and capturing promotions.
func (m Move) IsCapture() bool {
	k := m.Kind()
	return k == KindCapture || k == KindEnPassant || k >= KindCapturePromoKnight
}

func (m Move) IsPromotion() bool { return m.Kind()&8 != 0 }

func (m Move) IsCastle() bool {
	k := m.Kind()
	return k >= KindCastleWhiteKing && k <= KindCastleBlackQueen
}

// PromotionType returns the promoted piece type, or PieceTypeNone.
func (m Move) PromotionType() PieceType {
	if !m.IsPromotion() {
		return PieceTypeNone
	}
	return PieceTypeKnight + PieceType(m.Kind()&3)
}

// promoKind returns the promotion kind for the given piece type.
func promoKind(pt PieceType, capture bool) MoveKind {
	k := KindPromoKnight + MoveKind(pt-PieceTypeKnight)
	if capture {
		k += 4
	}
	return k
}

// String produces the coordinate form of the move (e.g. "e2e4", "e7e8q", "e1g1").
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	str := m.From().String() + m.To().String()
	if pt := m.PromotionType(); pt != PieceTypeNone {
		str += strings.ToLower(NewPiece(White, pt).String())
	}
	return str
}

// MaxMoves bounds the number of moves in any reachable position.
const MaxMoves = 256

// MoveList is a fixed capacity move buffer that lives on the stack.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

// Push appends a move. Overflowing the list is an invariant violation.
func (l *MoveList) Push(m Move) {
	if l.n >= MaxMoves {
		panic("chessmg: move list overflow")
	}
	l.moves[l.n] = m
	l.n++
}

func (l *MoveList) Len() int { return l.n }

func (l *MoveList) At(i int) Move { return l.moves[i] }

func (l *MoveList) Set(i int, m Move) { l.moves[i] = m }

func (l *MoveList) Swap(i, j int) { l.moves[i], l.moves[j] = l.moves[j], l.moves[i] }

func (l *MoveList) Clear() { l.n = 0 }

// Contains reports whether m is in the list.
func (l *MoveList) Contains(m Move) bool {
	for i := 0; i < l.n; i++ {
		if l.moves[i] == m {
			return true
		}
	}
	return false
}

// Moves returns a slice view over the list contents. The view is invalidated
// by the next Push or Clear.
func (l *MoveList) Moves() []Move { return l.moves[:l.n] }

func (l *MoveList) String() string {
	var sb strings.Builder
	for i := 0; i < l.n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(l.moves[i].String())
	}
	return sb.String()
}
