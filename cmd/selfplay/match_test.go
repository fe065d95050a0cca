package main

import (
	"context"
	"testing"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

func TestPlayGameVerified(t *testing.T) {
	p := PlayerConfig{Name: "d2", Cfg: engine.SearchConfig{Depth: 2}}
	res, err := playGame(context.Background(), 1, p, p, 12, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Moves) == 0 || res.StartFEN != xiangqi.StartFEN {
		t.Fatalf("result %+v", res)
	}

	// 重放棋谱必须每步合法
	b := xiangqi.NewGame()
	for i, mv := range res.Moves {
		if !xiangqi.IsLegal(b, mv.PieceID, mv.To) {
			t.Fatalf("ply %d: %v not legal", i, mv)
		}
		if _, err := b.ApplyMove(mv.PieceID, mv.To); err != nil {
			t.Fatal(err)
		}
	}
	rec := toRecord(res)
	if rec.ID == "" || len(rec.Moves) != len(res.Moves) {
		t.Fatalf("record %+v", rec)
	}
}

func TestPlayGameCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := PlayerConfig{Cfg: engine.SearchConfig{Depth: 4}}
	if _, err := playGame(ctx, 1, p, p, 10, false); err == nil {
		t.Fatal("cancelled game finished without error")
	}
}
