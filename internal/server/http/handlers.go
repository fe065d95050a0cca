package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	"xiangqi/internal/storage"
	"xiangqi/internal/xiangqi"
)

// 深度再大单次请求就太慢了
const maxDepth = 6

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager
	store *storage.Storage // 可以为 nil：不归档

	defaultDepth int
}

// NewHandler builds the API handler. store may be nil.
func NewHandler(games *game.Manager, store *storage.Storage, defaultDepth int) *Handler {
	if games == nil {
		games = game.NewManager()
	}
	if defaultDepth <= 0 {
		defaultDepth = engine.DefaultDepth
	}
	return &Handler{games: games, store: store, defaultDepth: defaultDepth}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/stats" {
		h.handleStats(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/play":
		h.handlePlay(w, r)
	case "/api/state":
		h.handleState(w, r)
	case "/api/ai_move":
		h.handleAiMove(w, r)
	case "/api/record":
		h.handleRecord(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	// 允许空 body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	var g *game.GameState
	if req.FEN == "" {
		g = h.games.NewGame()
	} else {
		var err error
		if g, err = h.games.NewGameFromFEN(req.FEN); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	log.Printf("new game %s", g.ID)
	writeJSON(w, stateFromSnapshot(g.Snapshot()))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	g, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}

	out, err := g.Play(req.PieceID, dtoToSquare(req.To))
	if err != nil {
		writeGameError(w, err)
		return
	}
	snap := g.Snapshot()
	h.archive(g, snap)

	writeJSON(w, PlayResponse{
		StateResponse: stateFromSnapshot(snap),
		Captured:      out.Captured,
	})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	g, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	writeJSON(w, stateFromSnapshot(g.Snapshot()))
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	g, ok := h.lookup(w, req.GameID)
	if !ok {
		return
	}
	cfg, err := h.searchConfig(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 每次请求一个 Engine，不同对局之间互不影响
	res, out, err := g.AIMove(r.Context(), engine.NewEngine(), cfg)
	if err != nil {
		writeGameError(w, err)
		return
	}
	log.Printf("game %s: ai %v score=%d depth=%d nodes=%d time=%s",
		g.ID, out.Move, res.Score, res.Depth, res.Nodes, res.TimeUsed)

	snap := g.Snapshot()
	h.archive(g, snap)

	writeJSON(w, AiMoveResponse{
		StateResponse: stateFromSnapshot(snap),
		BestMove:      moveToDTO(out.Move),
		Captured:      out.Captured,
		Score:         res.Score,
		Depth:         res.Depth,
		Nodes:         res.Nodes,
		Cutoffs:       res.Cutoffs,
		TimeMs:        res.TimeUsed.Milliseconds(),
	})
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if h.store == nil {
		http.Error(w, "storage disabled", http.StatusNotFound)
		return
	}
	rec, err := h.store.LoadGame(req.GameID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("load record %s: %v", req.GameID, err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rec)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, storage.Stats{})
		return
	}
	stats, err := h.store.LoadStats()
	if err != nil {
		log.Printf("load stats: %v", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

func (h *Handler) lookup(w http.ResponseWriter, id string) (*game.GameState, bool) {
	g, err := h.games.Get(id)
	if err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return nil, false
	}
	return g, true
}

func (h *Handler) searchConfig(req AiMoveRequest) (engine.SearchConfig, error) {
	var cfg engine.SearchConfig
	switch {
	case req.Depth > 0:
		cfg.Depth = req.Depth
	case req.Difficulty != "":
		d, ok := engine.ParseDifficulty(req.Difficulty)
		if !ok {
			return cfg, errors.New("unknown difficulty " + req.Difficulty)
		}
		cfg = engine.DifficultySettings[d]
	default:
		cfg.Depth = h.defaultDepth
	}
	if cfg.Depth > maxDepth {
		return cfg, errors.New("depth too large")
	}
	if req.TimeMs > 0 {
		cfg.TimeLimit = time.Duration(req.TimeMs) * time.Millisecond
	}
	return cfg, nil
}

// archive 对局结束后写入存储，每局只写一次
func (h *Handler) archive(g *game.GameState, snap game.Snapshot) {
	if h.store == nil || !snap.Over || !g.MarkArchived() {
		return
	}
	rec := &storage.GameRecord{
		ID:         snap.ID,
		StartFEN:   snap.StartFEN,
		Moves:      snap.Moves,
		Winner:     snap.Winner.String(),
		StartedAt:  snap.CreatedAt,
		FinishedAt: snap.UpdatedAt,
	}
	if err := h.store.SaveGame(rec); err != nil {
		log.Printf("archive game %s: %v", snap.ID, err)
		return
	}
	log.Printf("game %s archived, %s wins after %d moves", snap.ID, rec.Winner, len(rec.Moves))
}

func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, xiangqi.ErrIllegalMove):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, game.ErrGameOver), errors.Is(err, engine.ErrInvalidPosition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		http.Error(w, "search interrupted", http.StatusServiceUnavailable)
	default:
		log.Printf("game error: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}
