package engine

import (
	"context"
	"errors"
	"time"

	"xiangqi/internal/xiangqi"
)

var ErrInvalidPosition = errors.New("invalid position")

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000

	// MateScore is the score of a won game at the root; a win found n plies
	// deep scores MateScore-n.
	MateScore = 1_000_000

	DefaultDepth = 3

	// ctx is polled once per this many nodes
	pollInterval = 1024
)

// SearchConfig 搜索配置
type SearchConfig struct {
	Depth     int           // 固定搜索深度（ply）
	TimeLimit time.Duration // 0 表示不限制
}

// SearchResult 搜索结果
type SearchResult struct {
	Move     xiangqi.Move
	Score    int // 红方视角
	Depth    int
	Nodes    int64
	Cutoffs  int64
	TimeUsed time.Duration
}

// Difficulty maps player-facing levels to search depth.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var DifficultySettings = map[Difficulty]SearchConfig{
	Easy:   {Depth: 2},
	Medium: {Depth: 3},
	Hard:   {Depth: 4, TimeLimit: 20 * time.Second},
}

func ParseDifficulty(s string) (Difficulty, bool) {
	switch s {
	case "easy":
		return Easy, true
	case "medium", "":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return Medium, false
}

// Engine holds per-search counters. An Engine searches one board at a time;
// run separate engines for concurrent games.
type Engine struct {
	nodes   int64
	cutoffs int64

	done    <-chan struct{}
	aborted bool
}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) reset(ctx context.Context) {
	e.nodes = 0
	e.cutoffs = 0
	e.aborted = false
	e.done = ctx.Done()
}

// visit counts a node and reports whether the search has been cancelled.
func (e *Engine) visit() bool {
	e.nodes++
	if e.done != nil && e.nodes%pollInterval == 0 {
		select {
		case <-e.done:
			e.aborted = true
		default:
		}
	}
	return e.aborted
}
