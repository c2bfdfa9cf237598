package chessmg

// GenStage is the state of a MovePicker: which piece's moves come next.
type GenStage uint8

const (
	StagePawns GenStage = iota
	StageKnights
	StageBishops
	StageRooks
	StageQueens
	StageKing
	StageDone
)

var stageNames = [...]string{"pawns", "knights", "bishops", "rooks", "queens", "king", "done"}

func (s GenStage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "done"
}

// Next is the stage transition. It is total: Done and anything past it map to Done.
func (s GenStage) Next() GenStage {
	if s >= StageDone {
		return StageDone
	}
	return s + 1
}

// MovePicker yields pseudo-legal moves lazily, one piece type at a time, so a
// caller that cuts off early never generates the later batches. The moves it
// yields are exactly those of GeneratePseudoMoves.
type MovePicker struct {
	board *Board
	stage GenStage
	batch MoveList
	next  int
}

// NewMovePicker starts a picker at the pawn stage. The board must not change
// while the picker is in use except through balanced MakeMove/UndoMove pairs.
func NewMovePicker(b *Board) *MovePicker {
	return &MovePicker{board: b, stage: StagePawns}
}

// Stage reports the stage whose batch will be generated next.
func (p *MovePicker) Stage() GenStage { return p.stage }

// Next returns the next move, or false once every stage is exhausted.
func (p *MovePicker) Next() (Move, bool) {
	for p.next >= p.batch.Len() {
		if p.stage == StageDone {
			return NullMove, false
		}
		p.batch.Clear()
		p.next = 0
		p.generate(p.stage)
		p.stage = p.stage.Next()
	}
	m := p.batch.At(p.next)
	p.next++
	return m, true
}

func (p *MovePicker) generate(s GenStage) {
	switch s {
	case StagePawns:
		p.board.GeneratePawnMoves(&p.batch)
	case StageKnights:
		p.board.GenerateKnightMoves(&p.batch)
	case StageBishops:
		p.board.GenerateBishopMoves(&p.batch)
	case StageRooks:
		p.board.GenerateRookMoves(&p.batch)
	case StageQueens:
		p.board.GenerateQueenMoves(&p.batch)
	case StageKing:
		p.board.GenerateKingMoves(&p.batch)
	}
}
