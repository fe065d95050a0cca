package game

import (
	"context"
	"errors"
	"sync"
	"testing"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

func sq(row, col int) xiangqi.Square { return xiangqi.Square{Row: row, Col: col} }

func TestApplyHumanMoveRejects(t *testing.T) {
	cases := []struct {
		name string
		id   string
		to   xiangqi.Square
	}{
		{"unknown piece", "rx9", sq(5, 0)},
		{"off board", "rp0", sq(10, 0)},
		{"wrong side", "bh0", sq(2, 2)},
		{"rule violation", "rh0", sq(5, 0)},
		{"own piece", "rr0", sq(6, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := xiangqi.NewGame()
			before := b.Clone()
			_, err := ApplyHumanMove(b, tc.id, tc.to)
			if !errors.Is(err, xiangqi.ErrIllegalMove) {
				t.Fatalf("want ErrIllegalMove, got %v", err)
			}
			if !b.Equal(before) {
				t.Fatal("rejected move changed the board")
			}
		})
	}
}

func TestApplyHumanMove(t *testing.T) {
	b := xiangqi.NewGame()
	out, err := ApplyHumanMove(b, "rh0", sq(7, 2))
	if err != nil {
		t.Fatal(err)
	}
	if out.Over || out.Captured != "" || out.Winner != xiangqi.NoSide {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if b.Turn() != xiangqi.Black {
		t.Fatalf("turn %v after red move", b.Turn())
	}
	if p, _ := b.Piece("rh0"); p.Pos != sq(7, 2) {
		t.Fatalf("horse at %v", p.Pos)
	}
}

func TestCapturingGeneralEndsGame(t *testing.T) {
	b, err := xiangqi.DecodePosition("R2k5/9/9/9/9/9/9/9/9/4K4 w")
	if err != nil {
		t.Fatal(err)
	}
	out, err := ApplyHumanMove(b, "rr0", sq(0, 3))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Over || out.Winner != xiangqi.Red || out.Captured != "bg0" {
		t.Fatalf("outcome %+v", out)
	}
	if w, over := Winner(b); !over || w != xiangqi.Red {
		t.Fatalf("winner %v %v", w, over)
	}

	if _, err := ApplyHumanMove(b, "rg0", sq(8, 4)); !errors.Is(err, ErrGameOver) {
		t.Fatalf("move after game end: %v", err)
	}
	if _, err := EngineReply(context.Background(), engine.NewEngine(), b, 1); !errors.Is(err, ErrGameOver) {
		t.Fatalf("engine reply after game end: %v", err)
	}
}

func TestEngineReplyTakesHorse(t *testing.T) {
	b := xiangqi.NewGame()
	mv, err := EngineReply(context.Background(), engine.NewEngine(), b, 1)
	if err != nil {
		t.Fatal(err)
	}
	if mv.PieceID != "rc0" || mv.To != sq(0, 1) {
		t.Fatalf("engine played %v", mv)
	}
	if _, ok := b.Piece("bh0"); ok {
		t.Fatal("captured horse still on the board")
	}
	if b.Turn() != xiangqi.Black {
		t.Fatal("side to move not handed over")
	}
	if err := b.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	g := m.NewGame()
	got, err := m.Get(g.ID)
	if err != nil || got != g {
		t.Fatalf("Get(%s) = %v, %v", g.ID, got, err)
	}
	if _, err := m.Get("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("missing game: %v", err)
	}
	if _, err := m.NewGameFromFEN("not a fen"); !errors.Is(err, xiangqi.ErrInvalidFEN) {
		t.Fatalf("bad fen: %v", err)
	}
	other, err := m.NewGameFromFEN(xiangqi.StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	if other.ID == g.ID || m.Len() != 2 {
		t.Fatalf("ids %s %s, len %d", g.ID, other.ID, m.Len())
	}
	m.Remove(other.ID)
	if m.Len() != 1 {
		t.Fatalf("len %d after remove", m.Len())
	}
}

func TestGameStateSnapshotAndArchive(t *testing.T) {
	m := NewManager()
	g, err := m.NewGameFromFEN("R2k5/9/9/9/9/9/9/9/9/4K4 w")
	if err != nil {
		t.Fatal(err)
	}
	if g.MarkArchived() {
		t.Fatal("ongoing game archived")
	}
	s := g.Snapshot()
	if s.Over || len(s.LegalMoves) == 0 || s.ToMove != xiangqi.Red {
		t.Fatalf("snapshot %+v", s)
	}

	if _, err := g.Play("rr0", sq(0, 3)); err != nil {
		t.Fatal(err)
	}
	s = g.Snapshot()
	if !s.Over || s.Winner != xiangqi.Red || len(s.LegalMoves) != 0 || len(s.Moves) != 1 {
		t.Fatalf("snapshot after win %+v", s)
	}
	if !g.MarkArchived() {
		t.Fatal("finished game not archived")
	}
	if g.MarkArchived() {
		t.Fatal("game archived twice")
	}
}

func TestGameStateConcurrentAccess(t *testing.T) {
	g := NewManager().NewGame()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				s := g.Snapshot()
				if len(s.Pieces) == 0 {
					t.Error("empty snapshot")
					return
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		if _, _, err := g.AIMove(context.Background(), engine.NewEngine(), engine.SearchConfig{Depth: 2}); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()

	if n := len(g.Snapshot().Moves); n != 4 {
		t.Fatalf("%d moves recorded", n)
	}
	if err := g.Board.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotNoLegalMovesIsDecided(t *testing.T) {
	g, err := NewManager().NewGameFromFEN("9/9/9/9/9/R8/9/9/9/ppppppppp b")
	if err != nil {
		t.Fatal(err)
	}
	s := g.Snapshot()
	if !s.Over || s.Winner != xiangqi.Red {
		t.Fatalf("blocked side should lose: %+v", s)
	}
	if !g.MarkArchived() {
		t.Fatal("decided game not archived")
	}
	if _, _, err := g.AIMove(context.Background(), engine.NewEngine(), engine.SearchConfig{Depth: 1}); !errors.Is(err, engine.ErrInvalidPosition) {
		t.Fatalf("engine on blocked side: %v", err)
	}
}
