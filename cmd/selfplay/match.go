package main

import (
	"context"
	"fmt"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

type PlayerConfig struct {
	Name string
	Cfg  engine.SearchConfig
}

type gameResult struct {
	Index    int
	Winner   xiangqi.Side // NoSide: 超过步数上限
	StartFEN string
	Moves    []xiangqi.Move
	Nodes    int64
	Started  time.Time
	Finished time.Time
}

// playGame 一局引擎对引擎。verify 为真时每一步都用 Minimax 复核。
func playGame(ctx context.Context, idx int, red, black PlayerConfig, maxMoves int, verify bool) (gameResult, error) {
	b := xiangqi.NewGame()
	res := gameResult{
		Index:    idx,
		Winner:   xiangqi.NoSide,
		StartFEN: b.Encode(),
		Started:  time.Now(),
	}
	e := engine.NewEngine()

	for i := 0; i < maxMoves; i++ {
		cfg := red.Cfg
		if b.Turn() == xiangqi.Black {
			cfg = black.Cfg
		}

		if len(xiangqi.LegalMoves(b)) == 0 {
			// 无子可动，当前方输
			res.Winner = b.Turn().Opposite()
			break
		}
		sr, err := e.Search(ctx, b, cfg)
		if err != nil {
			return res, fmt.Errorf("game %d ply %d: %w", idx, i, err)
		}
		res.Nodes += sr.Nodes

		if verify {
			if err := verifyPruning(ctx, b, cfg, sr); err != nil {
				return res, fmt.Errorf("game %d ply %d: %w", idx, i, err)
			}
		}

		if _, err := b.ApplyMove(sr.Move.PieceID, sr.Move.To); err != nil {
			return res, fmt.Errorf("game %d: invalid move %v: %w", idx, sr.Move, err)
		}
		res.Moves = append(res.Moves, sr.Move)

		// 检查吃将
		if w, over := b.Winner(); over {
			res.Winner = w
			break
		}
	}
	res.Finished = time.Now()
	return res, nil
}

func verifyPruning(ctx context.Context, b *xiangqi.Board, cfg engine.SearchConfig, got engine.SearchResult) error {
	ref, err := engine.NewEngine().Minimax(ctx, b, engine.SearchConfig{Depth: got.Depth})
	if err != nil {
		return err
	}
	if ref.Move != got.Move || ref.Score != got.Score {
		return fmt.Errorf("alpha-beta %v (%d) disagrees with minimax %v (%d) on %s",
			got.Move, got.Score, ref.Move, ref.Score, b.Encode())
	}
	return nil
}
