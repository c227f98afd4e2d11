// internal/store/sqlite.go
//
// SQLite implementation of the game.Store interface.
// Session state lives in a single key/value table (app_state) as JSON blobs;
// the keys match the in-memory store and the original client's saved-state
// names, so a state dump is directly portable.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hofgolf/go-server/internal/game"
)

// SQLite persists session state in an app_state key/value table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open state database and ensures the schema exists.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS app_state (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("create app_state: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) SaveActive(ctx context.Context, g *game.ActiveGame) error {
	if g == nil {
		return s.del(ctx, keyActiveGame)
	}
	return s.put(ctx, keyActiveGame, g)
}

func (s *SQLite) LoadActive(ctx context.Context) (*game.ActiveGame, error) {
	var g *game.ActiveGame
	ok, err := s.get(ctx, keyActiveGame, &g)
	if err != nil || !ok {
		return nil, err
	}
	return g, nil
}

func (s *SQLite) SaveHistory(ctx context.Context, h []game.SavedGame) error {
	return s.put(ctx, keyHistory, h)
}

func (s *SQLite) LoadHistory(ctx context.Context) ([]game.SavedGame, error) {
	var h []game.SavedGame
	if _, err := s.get(ctx, keyHistory, &h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *SQLite) SaveBestScores(ctx context.Context, b map[string]int) error {
	return s.put(ctx, keyBestScores, b)
}

func (s *SQLite) LoadBestScores(ctx context.Context) (map[string]int, error) {
	var b map[string]int
	if _, err := s.get(ctx, keyBestScores, &b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *SQLite) put(ctx context.Context, key string, v any) error {
	raw, err := marshalState(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) get(ctx context.Context, key string, out any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	return true, unmarshalState([]byte(raw), out)
}

func (s *SQLite) del(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	return nil
}

func marshalState(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return raw, nil
}

func unmarshalState(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	return nil
}
