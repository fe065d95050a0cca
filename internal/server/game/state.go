package game

import (
	"context"
	"sync"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// GameState is one live game. All access to Board goes through the methods
// below, which hold mu for the whole operation.
type GameState struct {
	ID        string
	StartFEN  string
	Board     *xiangqi.Board
	Moves     []xiangqi.Move
	CreatedAt time.Time
	UpdatedAt time.Time

	mu       sync.Mutex
	archived bool
}

// Snapshot is a consistent read-only copy of a game.
type Snapshot struct {
	ID         string
	StartFEN   string
	FEN        string
	ToMove     xiangqi.Side
	Pieces     []xiangqi.Piece
	LegalMoves []xiangqi.Move
	Moves      []xiangqi.Move
	Winner     xiangqi.Side
	Over       bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func newGameState(id string, b *xiangqi.Board) *GameState {
	now := time.Now()
	return &GameState{
		ID:        id,
		StartFEN:  b.Encode(),
		Board:     b,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Play applies a human move.
func (g *GameState) Play(id string, to xiangqi.Square) (MoveOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out, err := ApplyHumanMove(g.Board, id, to)
	if err != nil {
		return MoveOutcome{}, err
	}
	g.record(out.Move)
	return out, nil
}

// AIMove lets the engine pick and play a move for the side to move.
func (g *GameState) AIMove(ctx context.Context, e *engine.Engine, cfg engine.SearchConfig) (engine.SearchResult, MoveOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	res, out, err := Reply(ctx, e, g.Board, cfg)
	if err != nil {
		return engine.SearchResult{}, MoveOutcome{}, err
	}
	g.record(out.Move)
	return res, out, nil
}

func (g *GameState) record(mv xiangqi.Move) {
	g.Moves = append(g.Moves, mv)
	g.UpdatedAt = time.Now()
}

func (g *GameState) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := Snapshot{
		ID:        g.ID,
		StartFEN:  g.StartFEN,
		FEN:       g.Board.Encode(),
		ToMove:    g.Board.Turn(),
		Pieces:    g.Board.Pieces(),
		Moves:     append([]xiangqi.Move(nil), g.Moves...),
		Winner:    xiangqi.NoSide,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if w, over := g.Board.Winner(); over {
		s.Winner, s.Over = w, true
		return s
	}
	s.LegalMoves = xiangqi.LegalMoves(g.Board)
	if len(s.LegalMoves) == 0 {
		// 困毙：无子可动的一方判负
		s.Winner, s.Over = g.Board.Turn().Opposite(), true
	}
	return s
}

// MarkArchived returns true exactly once, on the first call after the game
// has been decided.
func (g *GameState) MarkArchived() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.archived || !decided(g.Board) {
		return false
	}
	g.archived = true
	return true
}

func decided(b *xiangqi.Board) bool {
	if _, over := b.Winner(); over {
		return true
	}
	return len(xiangqi.LegalMoves(b)) == 0
}
