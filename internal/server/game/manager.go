package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"xiangqi/internal/xiangqi"
)

var ErrGameNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

func (m *Manager) NewGame() *GameState {
	return m.add(xiangqi.NewGame())
}

// NewGameFromFEN starts a game from an arbitrary position.
func (m *Manager) NewGameFromFEN(fen string) (*GameState, error) {
	b, err := xiangqi.DecodePosition(fen)
	if err != nil {
		return nil, err
	}
	return m.add(b), nil
}

func (m *Manager) add(b *xiangqi.Board) *GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	g := newGameState(uuid.NewString(), b)
	m.games[g.ID] = g
	return g
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
