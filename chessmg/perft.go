package chessmg

// Perft counts leaf nodes (legal move sequences) from the position for a given depth.
// Each ply generates into its own stack-allocated move list.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var list MoveList
	b.GeneratePseudoMoves(&list)
	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		u := b.MakeMove(list.At(i))
		if !b.LeftInCheck() {
			if depth == 1 {
				nodes++
			} else {
				nodes += Perft(b, depth-1)
			}
		}
		b.UndoMove(u)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf nodes
// reachable from that move at the given depth. Useful for debugging.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	var list MoveList
	b.GenerateLegalMoves(&list)
	for _, m := range list.Moves() {
		u := b.MakeMove(m)
		result[m] = Perft(b, depth-1)
		b.UndoMove(u)
	}
	return result
}
