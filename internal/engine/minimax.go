package engine

import "xiangqi/internal/xiangqi"

func (e *Engine) minimax(b *xiangqi.Board, depth, ply int) int {
	if e.visit() {
		return 0
	}
	if score, ok := terminalScore(b, depth, ply); ok {
		return score
	}
	moves := xiangqi.LegalMoves(b)
	if len(moves) == 0 {
		return winScore(b.Turn().Opposite(), ply)
	}
	orderMovesByCaptureFirst(b, moves)

	maximizing := b.Turn() == xiangqi.Red
	best := scoreInf
	if maximizing {
		best = -scoreInf
	}
	for _, mv := range moves {
		rec, err := b.ApplyMove(mv.PieceID, mv.To)
		if err != nil {
			continue
		}
		score := e.minimax(b, depth-1, ply+1)
		b.Undo(rec)
		if e.aborted {
			return 0
		}
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}
	return best
}
