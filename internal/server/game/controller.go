package game

import (
	"context"
	"errors"
	"fmt"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

var ErrGameOver = errors.New("game is over")

// MoveOutcome describes a move that has been played.
type MoveOutcome struct {
	Move     xiangqi.Move
	Captured string // 被吃子的 id，没有吃子时为空
	Winner   xiangqi.Side
	Over     bool
}

// ApplyHumanMove validates a move against the movement rules and plays it.
// On error the board is left untouched.
func ApplyHumanMove(b *xiangqi.Board, id string, to xiangqi.Square) (MoveOutcome, error) {
	if _, over := b.Winner(); over {
		return MoveOutcome{}, ErrGameOver
	}
	pc, ok := b.Piece(id)
	if !ok {
		return MoveOutcome{}, fmt.Errorf("%w: unknown piece %q", xiangqi.ErrIllegalMove, id)
	}
	if !to.OnBoard() {
		return MoveOutcome{}, fmt.Errorf("%w: destination %v off board", xiangqi.ErrIllegalMove, to)
	}
	if pc.Side != b.Turn() {
		return MoveOutcome{}, fmt.Errorf("%w: %s to move, not %s", xiangqi.ErrIllegalMove, b.Turn(), pc.Side)
	}
	if !xiangqi.IsLegal(b, id, to) {
		return MoveOutcome{}, fmt.Errorf("%w: %s cannot reach %v", xiangqi.ErrIllegalMove, pc, to)
	}

	rec, err := b.ApplyMove(id, to)
	if err != nil {
		return MoveOutcome{}, err
	}
	return outcome(b, rec), nil
}

// Reply searches the position and plays the chosen move on b.
func Reply(ctx context.Context, e *engine.Engine, b *xiangqi.Board, cfg engine.SearchConfig) (engine.SearchResult, MoveOutcome, error) {
	if _, over := b.Winner(); over {
		return engine.SearchResult{}, MoveOutcome{}, ErrGameOver
	}
	res, err := e.Search(ctx, b, cfg)
	if err != nil {
		return engine.SearchResult{}, MoveOutcome{}, err
	}
	rec, err := b.ApplyMove(res.Move.PieceID, res.Move.To)
	if err != nil {
		return engine.SearchResult{}, MoveOutcome{}, fmt.Errorf("engine move %v: %w", res.Move, err)
	}
	return res, outcome(b, rec), nil
}

// EngineReply is Reply at a fixed depth, returning only the move played.
func EngineReply(ctx context.Context, e *engine.Engine, b *xiangqi.Board, depth int) (xiangqi.Move, error) {
	_, out, err := Reply(ctx, e, b, engine.SearchConfig{Depth: depth})
	if err != nil {
		return xiangqi.Move{}, err
	}
	return out.Move, nil
}

func Winner(b *xiangqi.Board) (xiangqi.Side, bool) {
	return b.Winner()
}

func outcome(b *xiangqi.Board, rec xiangqi.MoveRecord) MoveOutcome {
	out := MoveOutcome{Move: rec.Move(), Winner: xiangqi.NoSide}
	if rec.Captured != nil {
		out.Captured = rec.Captured.ID
	}
	if w, over := b.Winner(); over {
		out.Winner, out.Over = w, true
	}
	return out
}
