package chessmg

import "fmt"

// UndoRecord holds the minimal state needed to undo a move. Aggregates and the
// hash are not stored; undo reproduces them by inverse placement.
type UndoRecord struct {
	Move          Move
	Captured      PieceType
	PrevEnPassant Square
	PrevCastling  CastlingRights
	PrevHalfmove  int
}

// castleInfo describes the king and rook relocation of one castling kind.
type castleInfo struct {
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	right            CastlingRights
	// squares that must be empty between king and rook
	between uint64
	// squares the king stands on, crosses or lands on; none may be attacked
	kingPath [3]Square
}

// castles is indexed by kind - KindCastleWhiteKing.
var castles = [4]castleInfo{
	{
		kingFrom: E1, kingTo: G1, rookFrom: H1, rookTo: F1, right: CastlingWhiteK,
		between: F1.Mask() | G1.Mask(), kingPath: [3]Square{E1, F1, G1},
	},
	{
		kingFrom: E1, kingTo: C1, rookFrom: A1, rookTo: D1, right: CastlingWhiteQ,
		between: B1.Mask() | C1.Mask() | D1.Mask(), kingPath: [3]Square{E1, D1, C1},
	},
	{
		kingFrom: E8, kingTo: G8, rookFrom: H8, rookTo: F8, right: CastlingBlackK,
		between: F8.Mask() | G8.Mask(), kingPath: [3]Square{E8, F8, G8},
	},
	{
		kingFrom: E8, kingTo: C8, rookFrom: A8, rookTo: D8, right: CastlingBlackQ,
		between: B8.Mask() | C8.Mask() | D8.Mask(), kingPath: [3]Square{E8, D8, C8},
	},
}

func castleFor(k MoveKind) *castleInfo { return &castles[k-KindCastleWhiteKing] }

// derivedCastlingRights reads castling availability off the home squares:
// a right survives only while its king and rook both stand at home.
func (b *Board) derivedCastlingRights() CastlingRights {
	var cr CastlingRights
	if b.squares[E1] == WhiteKing {
		if b.squares[H1] == WhiteRook {
			cr |= CastlingWhiteK
		}
		if b.squares[A1] == WhiteRook {
			cr |= CastlingWhiteQ
		}
	}
	if b.squares[E8] == BlackKing {
		if b.squares[H8] == BlackRook {
			cr |= CastlingBlackK
		}
		if b.squares[A8] == BlackRook {
			cr |= CastlingBlackQ
		}
	}
	return cr
}

// epVictim returns the square of the pawn captured en passant on to.
func epVictim(us Color, to Square) Square {
	if us == White {
		return to - 8
	}
	return to + 8
}

// MakeMove applies a pseudo-legal move produced by the generator. It does not
// check legality; call LeftInCheck afterwards. Moves the generator could not
// have produced (empty origin, wrong mover, unknown kind) panic.
func (b *Board) MakeMove(m Move) UndoRecord {
	from, to, kind := m.From(), m.To(), m.Kind()
	us := b.sideToMove
	moved := b.squares[from]
	if moved == NoPiece || moved.Color() != us {
		panic(fmt.Sprintf("chessmg: corrupt move %v (kind %d) in %s", m, kind, b.FEN()))
	}

	u := UndoRecord{
		Move:          m,
		PrevEnPassant: b.enPassant,
		PrevCastling:  b.castlingRights,
		PrevHalfmove:  b.halfmoveClock,
	}

	b.hash ^= b.keys.enPassant(b.enPassant)
	b.enPassant = NoSquare

	switch {
	case kind == KindQuiet:
		b.movePiece(from, to)
	case kind == KindDoublePawnPush:
		b.movePiece(from, to)
		b.enPassant = (from + to) / 2
	case kind == KindCapture:
		u.Captured = b.removePiece(to).Type()
		b.movePiece(from, to)
	case kind == KindEnPassant:
		b.removePiece(epVictim(us, to))
		u.Captured = PieceTypePawn
		b.movePiece(from, to)
	case m.IsCastle():
		ci := castleFor(kind)
		if from != ci.kingFrom || moved.Type() != PieceTypeKing {
			panic(fmt.Sprintf("chessmg: corrupt castle %v (kind %d)", m, kind))
		}
		b.movePiece(ci.kingFrom, ci.kingTo)
		b.movePiece(ci.rookFrom, ci.rookTo)
	case m.IsPromotion():
		if m.IsCapture() {
			u.Captured = b.removePiece(to).Type()
		}
		b.removePiece(from)
		b.addPiece(to, NewPiece(us, m.PromotionType()))
	default:
		panic(fmt.Sprintf("chessmg: unknown move kind %d", kind))
	}

	cr := u.PrevCastling & b.derivedCastlingRights()
	b.hash ^= b.keys.Castling[b.castlingRights] ^ b.keys.Castling[cr]
	b.castlingRights = cr

	if moved.Type() == PieceTypePawn || u.Captured != PieceTypeNone {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}

	b.hash ^= b.keys.enPassant(b.enPassant)
	b.sideToMove = us.Other()
	b.hash ^= b.keys.SideToMove
	return u
}

// UndoMove reverts the most recent MakeMove. Records must be undone in LIFO order.
func (b *Board) UndoMove(u UndoRecord) {
	m := u.Move
	from, to, kind := m.From(), m.To(), m.Kind()

	b.sideToMove = b.sideToMove.Other()
	b.hash ^= b.keys.SideToMove
	us, them := b.sideToMove, b.sideToMove.Other()
	if us == Black {
		b.fullmoveNumber--
	}

	b.hash ^= b.keys.Castling[b.castlingRights] ^ b.keys.Castling[u.PrevCastling]
	b.castlingRights = u.PrevCastling
	b.hash ^= b.keys.enPassant(b.enPassant) ^ b.keys.enPassant(u.PrevEnPassant)
	b.enPassant = u.PrevEnPassant
	b.halfmoveClock = u.PrevHalfmove

	switch {
	case kind == KindQuiet || kind == KindDoublePawnPush:
		b.movePiece(to, from)
	case kind == KindCapture:
		b.movePiece(to, from)
		b.addPiece(to, NewPiece(them, u.Captured))
	case kind == KindEnPassant:
		b.movePiece(to, from)
		b.addPiece(epVictim(us, to), NewPiece(them, PieceTypePawn))
	case m.IsCastle():
		ci := castleFor(kind)
		b.movePiece(ci.rookTo, ci.rookFrom)
		b.movePiece(ci.kingTo, ci.kingFrom)
	case m.IsPromotion():
		b.removePiece(to)
		b.addPiece(from, NewPiece(us, PieceTypePawn))
		if m.IsCapture() {
			b.addPiece(to, NewPiece(them, u.Captured))
		}
	default:
		panic(fmt.Sprintf("chessmg: unknown move kind %d", kind))
	}
}
