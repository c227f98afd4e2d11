// db.go
//
// Database helpers for the HOF Golf Go server.
// Responsibilities:
//   - Opening the read-only Lahman statistics database.
//   - Opening (and creating if missing) the session state database with safe
//     defaults (WAL, busy timeout).
//
// Two handles by design: the stats database ships with the app and is never
// written; session state lives in its own small file next to it.

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// openStatsDB opens the Lahman database read-only. A missing file is a
// startup error, not something to create.
func openStatsDB(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stats db %s: %w", path, err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("stats db %s: %w", path, err)
	}
	return db, nil
}

// openStateDB opens the session state database, creating file and parent
// directory as needed.
func openStateDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	// WAL and the busy timeout are set through the DSN; the driver applies
	// them on every new connection in the pool.
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	return db, nil
}
