package chessmg

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Piece is a colored piece.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are (white piece | 8): piece & 7 is the type, piece & 8 the color.
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// NewPiece combines a colorless type with a side.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	if c == Black {
		return Piece(pt) | 8
	}
	return Piece(pt)
}

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece reports White.
func (p Piece) Color() Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

const pieceChars = " PNBRQK  pnbrqk"

// pieceFromChar maps a FEN letter to a piece; unknown letters give NoPiece.
func pieceFromChar(ch byte) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	}
	return NoPiece
}

// Char returns the FEN letter of the piece, or '.' for an empty square.
func (p Piece) Char() byte {
	if p == NoPiece || int(p) >= len(pieceChars) || pieceChars[p] == ' ' {
		return '.'
	}
	return pieceChars[p]
}

func (p Piece) String() string { return string(p.Char()) }

// CastlingRights bit flags
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ

	CastlingNone CastlingRights = 0
	CastlingAll  CastlingRights = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

func (cr CastlingRights) String() string {
	if cr&CastlingAll == 0 {
		return "-"
	}
	var buf []byte
	if cr&CastlingWhiteK != 0 {
		buf = append(buf, 'K')
	}
	if cr&CastlingWhiteQ != 0 {
		buf = append(buf, 'Q')
	}
	if cr&CastlingBlackK != 0 {
		buf = append(buf, 'k')
	}
	if cr&CastlingBlackQ != 0 {
		buf = append(buf, 'q')
	}
	return string(buf)
}
