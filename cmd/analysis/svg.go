package main

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"chess-core/chessmg"
)

const (
	lightSquare = "fill:#f0d9b5"
	darkSquare  = "fill:#b58863"
	checkSquare = "fill:#e06060"
)

var pieceGlyphs = map[chessmg.Piece]string{
	chessmg.WhiteKing: "♔", chessmg.WhiteQueen: "♕", chessmg.WhiteRook: "♖",
	chessmg.WhiteBishop: "♗", chessmg.WhiteKnight: "♘", chessmg.WhitePawn: "♙",
	chessmg.BlackKing: "♚", chessmg.BlackQueen: "♛", chessmg.BlackRook: "♜",
	chessmg.BlackBishop: "♝", chessmg.BlackKnight: "♞", chessmg.BlackPawn: "♟",
}

// renderBoard draws b from White's side with square edge size. The king of
// the side to move is highlighted when in check.
func renderBoard(w io.Writer, b *chessmg.Board, size int) {
	canvas := svg.New(w)
	canvas.Start(8*size, 8*size)
	checked := chessmg.NoSquare
	if b.InCheck(b.SideToMove()) {
		checked = b.KingSquare(b.SideToMove())
	}
	font := fmt.Sprintf("text-anchor:middle;dominant-baseline:central;font-size:%dpx", size*3/4)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := chessmg.NewSquare(file, rank)
			x, y := file*size, (7-rank)*size
			style := lightSquare
			if (file+rank)%2 == 0 {
				style = darkSquare
			}
			if sq == checked {
				style = checkSquare
			}
			canvas.Rect(x, y, size, size, style)
			if glyph, ok := pieceGlyphs[b.PieceAt(sq)]; ok {
				canvas.Text(x+size/2, y+size/2, glyph, font)
			}
		}
	}
	canvas.End()
}
