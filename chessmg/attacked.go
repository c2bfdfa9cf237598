package chessmg

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.isSquareAttackedWithOcc(sq, by, b.all)
}

func (b *Board) isSquareAttackedWithOcc(sq Square, by Color, occ uint64) bool {
	// Pawn attacks via the reversed table
	if pawnAttackers[by][sq]&b.bitboards[PieceTypePawn][by] != 0 {
		return true
	}
	if knightAttacks[sq]&b.bitboards[PieceTypeKnight][by] != 0 {
		return true
	}
	if kingAttacks[sq]&b.bitboards[PieceTypeKing][by] != 0 {
		return true
	}
	queens := b.bitboards[PieceTypeQueen][by]
	if BishopAttacks(sq, occ)&(b.bitboards[PieceTypeBishop][by]|queens) != 0 {
		return true
	}
	return RookAttacks(sq, occ)&(b.bitboards[PieceTypeRook][by]|queens) != 0
}

// InCheck reports whether the specified color's king is currently in check.
func (b *Board) InCheck(c Color) bool {
	ks := b.KingSquare(c)
	if ks == NoSquare {
		return false
	}
	return b.IsSquareAttacked(ks, c.Other())
}

// LeftInCheck reports whether the side that just moved left its own king
// attacked. Call it right after MakeMove.
func (b *Board) LeftInCheck() bool {
	return b.InCheck(b.sideToMove.Other())
}
