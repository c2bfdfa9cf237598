package chessmg

import (
	"fmt"
	"strings"
)

// ParseMove resolves a coordinate move ("e2e4", "e7e8q", "e1g1") against the
// legal moves of the position.
func ParseMove(b *Board, s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	promo := PieceTypeNone
	if len(s) == 5 {
		switch s[4] {
		case 'n', 'N':
			promo = PieceTypeKnight
		case 'b', 'B':
			promo = PieceTypeBishop
		case 'r', 'R':
			promo = PieceTypeRook
		case 'q', 'Q':
			promo = PieceTypeQueen
		default:
			return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
		}
	}

	var list MoveList
	b.GenerateLegalMoves(&list)
	for _, m := range list.Moves() {
		if m.From() == from && m.To() == to && m.PromotionType() == promo {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, s, b.FEN())
}

// ApplyMoves parses and plays a sequence of coordinate moves, stopping at the
// first one that fails.
func (b *Board) ApplyMoves(moves []string) error {
	for _, s := range moves {
		m, err := ParseMove(b, s)
		if err != nil {
			return err
		}
		b.MakeMove(m)
	}
	return nil
}
