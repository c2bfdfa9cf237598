package chessmg

import (
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a board from a FEN string. Parsing is lenient: characters
// that mean nothing in their field are skipped, squares beyond the board are
// dropped and missing trailing fields take their defaults (White to move, no
// castling, no en passant target, halfmove 0, fullmove 1). Only an empty
// string is rejected.
func ParseFEN(keys *Keys, fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, ErrEmptyFEN
	}

	b := NewBoard(keys)

	// 1. Piece placement, rank 8 first.
	rank, file := 7, 0
	for i := 0; i < len(fields[0]); i++ {
		ch := fields[0][i]
		switch {
		case ch == '/':
			rank--
			file = 0
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
		default:
			p := pieceFromChar(ch)
			if p == NoPiece {
				continue
			}
			if sq := NewSquare(file, rank); sq != NoSquare {
				b.SetPiece(sq, p)
			}
			file++
		}
	}

	// 2. Side to move
	if len(fields) > 1 && (fields[1] == "b" || fields[1] == "B") {
		b.SetSideToMove(Black)
	}

	// 3. Castling rights
	if len(fields) > 2 {
		var cr CastlingRights
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				cr |= CastlingWhiteK
			case 'Q':
				cr |= CastlingWhiteQ
			case 'k':
				cr |= CastlingBlackK
			case 'q':
				cr |= CastlingBlackQ
			}
		}
		b.SetCastlingRights(cr)
	}

	// 4. En passant target; anything but a rank 3 or rank 6 square means none.
	if len(fields) > 3 {
		if sq, err := ParseSquare(fields[3]); err == nil && (sq.Rank() == 2 || sq.Rank() == 5) {
			b.SetEnPassantSquare(sq)
		}
	}

	// 5. and 6. Clocks
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil && n >= 0 {
			b.halfmoveClock = n
		}
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n >= 1 {
			b.fullmoveNumber = n
		}
	}
	return b, nil
}

// FEN returns the Forsyth-Edwards Notation of the position.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[rank*8+file]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.sideToMove.String())
	sb.WriteByte(' ')
	sb.WriteString(b.castlingRights.String())
	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
