package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"xiangqi/internal/xiangqi"
)

// Search 固定深度 alpha-beta。搜索期间在 b 上走子/悔棋，返回时 b 与调用前完全一致，
// 包括被 ctx 取消的情况。
func (e *Engine) Search(ctx context.Context, b *xiangqi.Board, cfg SearchConfig) (SearchResult, error) {
	return e.run(ctx, b, cfg, true)
}

// Minimax is the exhaustive reference search: same move order, same leaf
// scoring, no pruning. Search must always agree with it on move and score.
func (e *Engine) Minimax(ctx context.Context, b *xiangqi.Board, cfg SearchConfig) (SearchResult, error) {
	return e.run(ctx, b, cfg, false)
}

func (e *Engine) run(ctx context.Context, b *xiangqi.Board, cfg SearchConfig, prune bool) (SearchResult, error) {
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}
	start := time.Now()
	e.reset(ctx)

	score, move, err := e.searchRoot(b, cfg.Depth, prune)
	if err != nil {
		return SearchResult{}, err
	}
	if e.aborted {
		return SearchResult{}, ctx.Err()
	}
	return SearchResult{
		Move:     move,
		Score:    score,
		Depth:    cfg.Depth,
		Nodes:    e.nodes,
		Cutoffs:  e.cutoffs,
		TimeUsed: time.Since(start),
	}, nil
}

// 根节点：根据走子方决定极大/极小；同分时保留最先遇到的着法
func (e *Engine) searchRoot(b *xiangqi.Board, depth int, prune bool) (int, xiangqi.Move, error) {
	side := b.Turn()
	if b.Count(side) == 0 {
		return 0, xiangqi.Move{}, fmt.Errorf("%w: %s has no pieces", ErrInvalidPosition, side)
	}
	if w, over := b.Winner(); over {
		return 0, xiangqi.Move{}, fmt.Errorf("%w: game already won by %s", ErrInvalidPosition, w)
	}
	moves := xiangqi.LegalMoves(b)
	if len(moves) == 0 {
		return 0, xiangqi.Move{}, fmt.Errorf("%w: %s has no legal moves", ErrInvalidPosition, side)
	}
	orderMovesByCaptureFirst(b, moves)
	e.nodes++

	maximizing := side == xiangqi.Red
	alpha, beta := -scoreInf, scoreInf
	var bestMove xiangqi.Move
	bestScore := 0
	for i, mv := range moves {
		rec, err := b.ApplyMove(mv.PieceID, mv.To)
		if err != nil {
			return 0, xiangqi.Move{}, err
		}
		var score int
		if prune {
			score = e.alphaBeta(b, depth-1, 1, alpha, beta)
		} else {
			score = e.minimax(b, depth-1, 1)
		}
		b.Undo(rec)
		if e.aborted {
			return 0, xiangqi.Move{}, nil
		}

		if i == 0 || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore = score
			bestMove = mv
		}
		if maximizing && bestScore > alpha {
			alpha = bestScore
		}
		if !maximizing && bestScore < beta {
			beta = bestScore
		}
	}
	return bestScore, bestMove, nil
}

// 内部递归：fail-soft alpha-beta，红方极大、黑方极小
func (e *Engine) alphaBeta(b *xiangqi.Board, depth, ply int, alpha, beta int) int {
	if e.visit() {
		return 0
	}
	if score, ok := terminalScore(b, depth, ply); ok {
		return score
	}
	moves := xiangqi.LegalMoves(b)
	if len(moves) == 0 {
		// 无子可动：将死与困毙同样判负
		return winScore(b.Turn().Opposite(), ply)
	}
	orderMovesByCaptureFirst(b, moves)

	if b.Turn() == xiangqi.Red {
		best := -scoreInf
		for _, mv := range moves {
			rec, err := b.ApplyMove(mv.PieceID, mv.To)
			if err != nil {
				continue
			}
			score := e.alphaBeta(b, depth-1, ply+1, alpha, beta)
			b.Undo(rec)
			if e.aborted {
				return 0
			}
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				e.cutoffs++
				break
			}
		}
		return best
	}

	best := scoreInf
	for _, mv := range moves {
		rec, err := b.ApplyMove(mv.PieceID, mv.To)
		if err != nil {
			continue
		}
		score := e.alphaBeta(b, depth-1, ply+1, alpha, beta)
		b.Undo(rec)
		if e.aborted {
			return 0
		}
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			e.cutoffs++
			break
		}
	}
	return best
}

// terminalScore scores nodes that are not expanded: a decided game or a leaf.
func terminalScore(b *xiangqi.Board, depth, ply int) (int, bool) {
	if w, over := b.Winner(); over {
		return winScore(w, ply), true
	}
	if depth <= 0 {
		return Evaluate(b), true
	}
	return 0, false
}

// winScore 红方视角的胜负分；越早赢分越高
func winScore(winner xiangqi.Side, ply int) int {
	if winner == xiangqi.Red {
		return MateScore - ply
	}
	return -(MateScore - ply)
}

// 吃子优先，按被吃子价值从高到低；同价值保持生成顺序，保证结果确定
func orderMovesByCaptureFirst(b *xiangqi.Board, moves []xiangqi.Move) {
	victim := func(mv xiangqi.Move) int {
		if p, ok := b.At(mv.To); ok {
			return PieceValue(p.Type)
		}
		return 0
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return victim(moves[i]) > victim(moves[j])
	})
}
