package chessmg

import "errors"

var (
	ErrEmptyFEN      = errors.New("chessmg: empty FEN")
	ErrInvalidSquare = errors.New("chessmg: invalid square")
	ErrInvalidMove   = errors.New("chessmg: malformed move")
	ErrIllegalMove   = errors.New("chessmg: illegal move")
)
