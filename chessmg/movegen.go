package chessmg

// GeneratePseudoMoves appends every pseudo-legal move of the side to move.
// Moves may leave the mover's king in check; castling is fully validated.
func (b *Board) GeneratePseudoMoves(list *MoveList) {
	b.GeneratePawnMoves(list)
	b.GenerateKnightMoves(list)
	b.GenerateBishopMoves(list)
	b.GenerateRookMoves(list)
	b.GenerateQueenMoves(list)
	b.GenerateKingMoves(list)
}

// GenerateLegalMoves appends the legal moves of the side to move, filtering
// pseudo-legal moves through make/undo.
func (b *Board) GenerateLegalMoves(list *MoveList) {
	var pseudo MoveList
	b.GeneratePseudoMoves(&pseudo)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		u := b.MakeMove(m)
		if !b.LeftInCheck() {
			list.Push(m)
		}
		b.UndoMove(u)
	}
}

// LegalMoves is a convenience wrapper returning the legal moves as a slice.
func (b *Board) LegalMoves() []Move {
	var list MoveList
	b.GenerateLegalMoves(&list)
	return append([]Move(nil), list.Moves()...)
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	var pseudo MoveList
	b.GeneratePseudoMoves(&pseudo)
	for i := 0; i < pseudo.Len(); i++ {
		u := b.MakeMove(pseudo.At(i))
		legal := !b.LeftInCheck()
		b.UndoMove(u)
		if legal {
			return true
		}
	}
	return false
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

func pushPromotions(list *MoveList, from, to Square, capture bool) {
	list.Push(NewMove(from, to, promoKind(PieceTypeQueen, capture)))
	list.Push(NewMove(from, to, promoKind(PieceTypeRook, capture)))
	list.Push(NewMove(from, to, promoKind(PieceTypeBishop, capture)))
	list.Push(NewMove(from, to, promoKind(PieceTypeKnight, capture)))
}

// GeneratePawnMoves appends pushes, double pushes, captures, promotions and
// en passant captures. Targets are computed set-wise; the file masks stop
// captures from wrapping around the board edge.
func (b *Board) GeneratePawnMoves(list *MoveList) {
	us, them := b.sideToMove, b.sideToMove.Other()
	pawns := b.bitboards[PieceTypePawn][us]
	if pawns == 0 {
		return
	}
	enemy := b.occupied[them]

	var single, double, capWest, capEast uint64
	var push, west, east Square
	var promoRank uint64
	if us == White {
		single = (pawns << 8) & b.empty
		double = ((single & Rank3) << 8) & b.empty
		capWest = ((pawns &^ FileA) << 7) & enemy
		capEast = ((pawns &^ FileH) << 9) & enemy
		push, west, east = 8, 7, 9
		promoRank = Rank8
	} else {
		single = (pawns >> 8) & b.empty
		double = ((single & Rank6) >> 8) & b.empty
		capWest = ((pawns &^ FileA) >> 9) & enemy
		capEast = ((pawns &^ FileH) >> 7) & enemy
		push, west, east = -8, -9, -7
		promoRank = Rank1
	}

	for t := single; t != 0; {
		to := popLSB(&t)
		if to.Mask()&promoRank != 0 {
			pushPromotions(list, to-push, to, false)
		} else {
			list.Push(NewMove(to-push, to, KindQuiet))
		}
	}
	for t := double; t != 0; {
		to := popLSB(&t)
		list.Push(NewMove(to-2*push, to, KindDoublePawnPush))
	}
	for _, c := range [2]struct {
		targets uint64
		delta   Square
	}{{capWest, west}, {capEast, east}} {
		for t := c.targets; t != 0; {
			to := popLSB(&t)
			if to.Mask()&promoRank != 0 {
				pushPromotions(list, to-c.delta, to, true)
			} else {
				list.Push(NewMove(to-c.delta, to, KindCapture))
			}
		}
	}

	// En passant: the target must sit on the rank behind an enemy pawn that
	// just double-pushed, with that pawn actually present.
	ep := b.enPassant
	if ep == NoSquare {
		return
	}
	if (us == White && ep.Rank() != 5) || (us == Black && ep.Rank() != 2) {
		return
	}
	if b.squares[ep] != NoPiece || b.squares[epVictim(us, ep)] != NewPiece(them, PieceTypePawn) {
		return
	}
	for from := pawnAttackers[us][ep] & pawns; from != 0; {
		list.Push(NewMove(popLSB(&from), ep, KindEnPassant))
	}
}

// pushTargets appends a quiet move or capture from 'from' to every target square.
func (b *Board) pushTargets(list *MoveList, from Square, targets uint64) {
	enemy := b.occupied[b.sideToMove.Other()]
	for targets != 0 {
		to := popLSB(&targets)
		if enemy&to.Mask() != 0 {
			list.Push(NewMove(from, to, KindCapture))
		} else {
			list.Push(NewMove(from, to, KindQuiet))
		}
	}
}

// GenerateKnightMoves appends knight moves.
func (b *Board) GenerateKnightMoves(list *MoveList) {
	us := b.sideToMove
	for pcs := b.bitboards[PieceTypeKnight][us]; pcs != 0; {
		from := popLSB(&pcs)
		b.pushTargets(list, from, knightAttacks[from]&^b.occupied[us])
	}
}

// GenerateBishopMoves appends bishop moves.
func (b *Board) GenerateBishopMoves(list *MoveList) {
	us := b.sideToMove
	for pcs := b.bitboards[PieceTypeBishop][us]; pcs != 0; {
		from := popLSB(&pcs)
		b.pushTargets(list, from, BishopAttacks(from, b.all)&^b.occupied[us])
	}
}

// GenerateRookMoves appends rook moves.
func (b *Board) GenerateRookMoves(list *MoveList) {
	us := b.sideToMove
	for pcs := b.bitboards[PieceTypeRook][us]; pcs != 0; {
		from := popLSB(&pcs)
		b.pushTargets(list, from, RookAttacks(from, b.all)&^b.occupied[us])
	}
}

// GenerateQueenMoves appends queen moves.
func (b *Board) GenerateQueenMoves(list *MoveList) {
	us := b.sideToMove
	for pcs := b.bitboards[PieceTypeQueen][us]; pcs != 0; {
		from := popLSB(&pcs)
		b.pushTargets(list, from, QueenAttacks(from, b.all)&^b.occupied[us])
	}
}

// GenerateKingMoves appends king steps and castling.
func (b *Board) GenerateKingMoves(list *MoveList) {
	us := b.sideToMove
	for pcs := b.bitboards[PieceTypeKing][us]; pcs != 0; {
		from := popLSB(&pcs)
		b.pushTargets(list, from, kingAttacks[from]&^b.occupied[us])
	}
	b.generateCastles(list)
}

// generateCastles requires the right, the king and rook on their home
// squares, nothing between them, and no attack on the king's start, transit
// or destination square.
func (b *Board) generateCastles(list *MoveList) {
	us := b.sideToMove
	first := KindCastleWhiteKing
	if us == Black {
		first = KindCastleBlackKing
	}
	king, rook := NewPiece(us, PieceTypeKing), NewPiece(us, PieceTypeRook)
	for kind := first; kind <= first+1; kind++ {
		ci := castleFor(kind)
		if b.castlingRights&ci.right == 0 {
			continue
		}
		if b.squares[ci.kingFrom] != king || b.squares[ci.rookFrom] != rook {
			continue
		}
		if b.all&ci.between != 0 {
			continue
		}
		attacked := false
		for _, sq := range ci.kingPath {
			if b.IsSquareAttacked(sq, us.Other()) {
				attacked = true
				break
			}
		}
		if !attacked {
			list.Push(NewMove(ci.kingFrom, ci.kingTo, kind))
		}
	}
}
