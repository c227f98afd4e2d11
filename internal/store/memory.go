// internal/store/memory.go
//
// In-memory implementation of the game.Store interface.
// This is a lightweight persistence layer for ephemeral sessions, primarily
// in development/testing, or when durability is not required.
//
// Characteristics:
//   - Holds JSON-marshalled state blobs keyed by the same keys the SQLite
//     store uses, so both paths exercise identical encode/decode round trips.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/hofgolf/go-server/internal/game"
)

// Storage keys, shared by every backend. They mirror the original client's
// saved-state names so exported data stays portable.
const (
	keyActiveGame = "active-game"
	keyHistory    = "game-history"
	keyBestScores = "best-scores"
)

// Memory is a map-backed game.Store implementation.
type Memory struct {
	mu   sync.RWMutex
	blob map[string][]byte
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blob: make(map[string][]byte)}
}

func (m *Memory) SaveActive(ctx context.Context, g *game.ActiveGame) error {
	if g == nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.blob, keyActiveGame)
		return nil
	}
	return m.put(keyActiveGame, g)
}

func (m *Memory) LoadActive(ctx context.Context) (*game.ActiveGame, error) {
	var g *game.ActiveGame
	ok, err := m.get(keyActiveGame, &g)
	if err != nil || !ok {
		return nil, err
	}
	return g, nil
}

func (m *Memory) SaveHistory(ctx context.Context, h []game.SavedGame) error {
	return m.put(keyHistory, h)
}

func (m *Memory) LoadHistory(ctx context.Context) ([]game.SavedGame, error) {
	var h []game.SavedGame
	if _, err := m.get(keyHistory, &h); err != nil {
		return nil, err
	}
	return h, nil
}

func (m *Memory) SaveBestScores(ctx context.Context, b map[string]int) error {
	return m.put(keyBestScores, b)
}

func (m *Memory) LoadBestScores(ctx context.Context) (map[string]int, error) {
	var b map[string]int
	if _, err := m.get(keyBestScores, &b); err != nil {
		return nil, err
	}
	return b, nil
}

func (m *Memory) put(key string, v any) error {
	raw, err := marshalState(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob[key] = raw
	return nil
}

func (m *Memory) get(key string, out any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.blob[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, unmarshalState(raw, out)
}
