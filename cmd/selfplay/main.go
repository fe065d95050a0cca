package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"xiangqi/internal/engine"
	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

func main() {
	totalGames := flag.Int("games", 4, "number of games to play")
	workers := flag.Int("workers", 2, "games played in parallel")
	redDepth := flag.Int("depth", 3, "red search depth")
	blackDepth := flag.Int("black-depth", 0, "black search depth (0: same as red)")
	maxMoves := flag.Int("maxmoves", 200, "max plies per game")
	verify := flag.Bool("verify", false, "cross-check every move against exhaustive minimax")
	dbDir := flag.String("db", "", "archive finished games in this directory")
	flag.Parse()

	if *blackDepth <= 0 {
		*blackDepth = *redDepth
	}
	red := PlayerConfig{Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *redDepth), Cfg: engine.SearchConfig{Depth: *redDepth}}
	black := PlayerConfig{Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *blackDepth), Cfg: engine.SearchConfig{Depth: *blackDepth}}

	var store *storage.Storage
	if *dbDir != "" {
		var err error
		if store, err = storage.Open(*dbDir); err != nil {
			log.Fatalf("open storage: %v", err)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	var (
		mu      sync.Mutex
		results []gameResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for i := 0; i < *totalGames; i++ {
		idx := i + 1
		g.Go(func() error {
			res, err := playGame(gctx, idx, red, black, *maxMoves, *verify)
			if err != nil {
				return err
			}
			log.Printf("game %d: %s after %d plies, %d nodes, %s",
				idx, describe(res.Winner), len(res.Moves), res.Nodes, res.Finished.Sub(res.Started).Round(time.Millisecond))

			if store != nil {
				if err := store.SaveGame(toRecord(res)); err != nil {
					return fmt.Errorf("archive game %d: %w", idx, err)
				}
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("selfplay: %v", err)
	}

	redWins, blackWins, draws := 0, 0, 0
	for _, r := range results {
		switch r.Winner {
		case xiangqi.Red:
			redWins++
		case xiangqi.Black:
			blackWins++
		default:
			draws++
		}
	}
	fmt.Printf("\n=== Final Score (%s) ===\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("Red   %s: %d\n", red.Name, redWins)
	fmt.Printf("Black %s: %d\n", black.Name, blackWins)
	fmt.Printf("Unfinished: %d\n", draws)
	if *verify {
		fmt.Println("alpha-beta agreed with minimax on every move")
	}
	if store != nil {
		if stats, err := store.LoadStats(); err == nil {
			fmt.Printf("Archive: %d games, red %.1f%% of decided\n", stats.GamesPlayed, stats.RedWinRate())
		}
	}
}

func describe(w xiangqi.Side) string {
	if w == xiangqi.NoSide {
		return "move limit"
	}
	return w.String() + " wins"
}

func toRecord(r gameResult) *storage.GameRecord {
	rec := &storage.GameRecord{
		ID:         uuid.NewString(),
		StartFEN:   r.StartFEN,
		Moves:      r.Moves,
		StartedAt:  r.Started,
		FinishedAt: r.Finished,
	}
	if r.Winner != xiangqi.NoSide {
		rec.Winner = r.Winner.String()
	}
	return rec
}
