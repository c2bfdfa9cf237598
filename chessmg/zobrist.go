package chessmg

import "math/rand"

// DefaultSeed is the seed drivers use for their key set.
const DefaultSeed int64 = 0xC0DE

// noEnPassant is the en passant bucket used when there is no target square.
const noEnPassant = 8

// Keys holds the Zobrist hashing tables. A Keys value is never modified after
// NewKeys returns, so one instance can back any number of boards.
type Keys struct {
	Pieces     [2][7][64]uint64 // [color][piece type][square]
	Castling   [16]uint64       // one key per castling rights state
	EnPassant  [9]uint64        // en passant file, index 8 = none
	SideToMove uint64           // XORed in when Black is to move
}

// NewKeys generates a key set from a seeded source.
func NewKeys(seed int64) *Keys {
	rnd := rand.New(rand.NewSource(seed))
	k := &Keys{}

	for c := 0; c < 2; c++ {
		for pt := PieceTypePawn; pt <= PieceTypeKing; pt++ {
			for sq := 0; sq < 64; sq++ {
				k.Pieces[c][pt][sq] = rnd.Uint64()
			}
		}
	}
	for cr := 0; cr < 16; cr++ {
		k.Castling[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		k.EnPassant[f] = rnd.Uint64()
	}
	k.EnPassant[noEnPassant] = 0
	k.SideToMove = rnd.Uint64()
	return k
}

func (k *Keys) piece(p Piece, sq Square) uint64 {
	return k.Pieces[p.Color()][p.Type()][sq]
}

func (k *Keys) enPassant(sq Square) uint64 {
	if sq == NoSquare {
		return k.EnPassant[noEnPassant]
	}
	return k.EnPassant[sq.File()]
}

// ComputeHash calculates the Zobrist hash of the board from scratch.
func (b *Board) ComputeHash() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		if p := b.squares[sq]; p != NoPiece {
			key ^= b.keys.piece(p, Square(sq))
		}
	}
	if b.sideToMove == Black {
		key ^= b.keys.SideToMove
	}
	key ^= b.keys.Castling[b.castlingRights&CastlingAll]
	key ^= b.keys.enPassant(b.enPassant)
	return key
}
