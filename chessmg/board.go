package chessmg

import (
	"fmt"
	"math/bits"
	"strings"
)

// Board represents the chess board state, including piece placement and game state.
type Board struct {
	// Piece bitboards indexed by [piece type][color]; index 0 (PieceTypeNone) is unused.
	bitboards [7][2]uint64

	// Occupancy aggregates, kept in step with bitboards.
	occupied [2]uint64
	all      uint64
	empty    uint64

	// Reverse index: the occupant of every square. This is the authoritative
	// lookup for "what stands on sq".
	squares [64]Piece

	sideToMove     Color
	castlingRights CastlingRights

	// En passant target square (the square a double-pushed pawn passed over), or NoSquare.
	enPassant Square

	// Half-moves since the last capture or pawn move.
	halfmoveClock int

	// Starts at 1, incremented after Black's move.
	fullmoveNumber int

	hash uint64
	keys *Keys
}

// NewBoard returns an empty board (White to move, no rights) hashed with keys.
func NewBoard(keys *Keys) *Board {
	b := &Board{
		keys:           keys,
		enPassant:      NoSquare,
		fullmoveNumber: 1,
		empty:          ^uint64(0),
	}
	b.hash = b.ComputeHash()
	return b
}

// StartingBoard returns the standard initial position.
func StartingBoard(keys *Keys) *Board {
	b, _ := ParseFEN(keys, FENStartPos)
	return b
}

// Copy returns an independent copy sharing the same immutable keys.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Keys returns the Zobrist key set the board hashes with.
func (b *Board) Keys() *Keys { return b.keys }

// Hash returns the current Zobrist hash key.
func (b *Board) Hash() uint64 { return b.hash }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// SetSideToMove updates the side to play, keeping the hash in step.
func (b *Board) SetSideToMove(c Color) {
	if b.sideToMove == c {
		return
	}
	b.sideToMove = c
	b.hash ^= b.keys.SideToMove
}

func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// SetCastlingRights replaces the castling rights, keeping the hash in step.
func (b *Board) SetCastlingRights(cr CastlingRights) {
	cr &= CastlingAll
	b.hash ^= b.keys.Castling[b.castlingRights] ^ b.keys.Castling[cr]
	b.castlingRights = cr
}

// EnPassantSquare returns the current en passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassant }

// SetEnPassantSquare replaces the en passant target, keeping the hash in step.
func (b *Board) SetEnPassantSquare(sq Square) {
	if !sq.Valid() {
		sq = NoSquare
	}
	b.hash ^= b.keys.enPassant(b.enPassant) ^ b.keys.enPassant(sq)
	b.enPassant = sq
}

func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.squares[sq] }

// Pieces returns the bitboard of pieces of the given type and color.
func (b *Board) Pieces(c Color, pt PieceType) uint64 { return b.bitboards[pt][c] }

// Occupancy returns the squares occupied by color c.
func (b *Board) Occupancy(c Color) uint64 { return b.occupied[c] }

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.all }

// EmptySquares returns a bitboard of all empty squares.
func (b *Board) EmptySquares() uint64 { return b.empty }

// KingSquare returns the square of c's king, or NoSquare when it has none.
func (b *Board) KingSquare(c Color) Square {
	k := b.bitboards[PieceTypeKing][c]
	if k == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(k))
}

// addPiece places a piece on an empty square and updates bitboards, aggregates and hash.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	mask := sq.Mask()
	c := p.Color()
	b.squares[sq] = p
	b.bitboards[p.Type()][c] |= mask
	b.occupied[c] |= mask
	b.all |= mask
	b.empty &^= mask
	b.hash ^= b.keys.piece(p, sq)
}

// removePiece clears a square and returns what stood there.
func (b *Board) removePiece(sq Square) Piece {
	p := b.squares[sq]
	if p == NoPiece {
		return NoPiece
	}
	mask := sq.Mask()
	c := p.Color()
	b.squares[sq] = NoPiece
	b.bitboards[p.Type()][c] &^= mask
	b.occupied[c] &^= mask
	b.all &^= mask
	b.empty |= mask
	b.hash ^= b.keys.piece(p, sq)
	return p
}

// movePiece relocates the piece on from to the empty square to.
func (b *Board) movePiece(from, to Square) {
	p := b.removePiece(from)
	b.addPiece(to, p)
}

// SetPiece sets a piece on a square, replacing any existing piece.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { b.removePiece(sq) }

// Validate cross-checks the reverse index against every bitboard and
// aggregate, and the incremental hash against a full recomputation.
func (b *Board) Validate() error {
	var boards [7][2]uint64
	var occ [2]uint64
	for sq := 0; sq < 64; sq++ {
		p := b.squares[sq]
		if p == NoPiece {
			continue
		}
		if p.Type() == PieceTypeNone || p.Type() > PieceTypeKing {
			return fmt.Errorf("bad piece code %d on %v", p, Square(sq))
		}
		bit := uint64(1) << uint(sq)
		boards[p.Type()][p.Color()] |= bit
		occ[p.Color()] |= bit
	}
	if boards != b.bitboards {
		return fmt.Errorf("piece bitboards disagree with square index")
	}
	if occ != b.occupied {
		return fmt.Errorf("color occupancy disagrees with square index")
	}
	if b.all != occ[White]|occ[Black] || b.empty != ^b.all {
		return fmt.Errorf("aggregate occupancy out of step")
	}
	if h := b.ComputeHash(); h != b.hash {
		return fmt.Errorf("hash %#016x, recomputed %#016x", b.hash, h)
	}
	return nil
}

// String renders an ASCII diagram, rank 8 first, followed by the FEN.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			sb.WriteByte(b.squares[rank*8+file].Char())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	fmt.Fprintf(&sb, "fen: %s\nkey: %016x\n", b.FEN(), b.hash)
	return sb.String()
}
