// Package store persists saved list orders in a small SQLite database.
//
// The widget itself never touches storage; the demo app writes the finalized
// order here after each completed drag and restores it on startup.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by LoadOrder when no order has been saved for the
// list yet.
var ErrNotFound = errors.New("no saved order")

// Orders is a handle to the saved-orders database.
type Orders struct {
	db *sql.DB
}

// Open opens (creating if needed) the saved-orders database at path.
func Open(ctx context.Context, path string) (*Orders, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Orders{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS list_orders (
  list_id    TEXT PRIMARY KEY,
  keys       TEXT NOT NULL,
  updated_at TEXT NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("migrate list_orders: %w", err)
	}
	return nil
}

// SaveOrder stores the key order for listID, replacing any previous order.
func (o *Orders) SaveOrder(ctx context.Context, listID string, keys []string) error {
	b, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("encode keys: %w", err)
	}
	_, err = o.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO list_orders(list_id, keys, updated_at) VALUES(?, ?, ?)`,
		listID, string(b), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

// LoadOrder returns the saved key order for listID, or ErrNotFound.
func (o *Orders) LoadOrder(ctx context.Context, listID string) ([]string, error) {
	var raw string
	err := o.db.QueryRowContext(ctx,
		`SELECT keys FROM list_orders WHERE list_id = ?`, listID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, fmt.Errorf("decode keys: %w", err)
	}
	return keys, nil
}

// Close closes the underlying database.
func (o *Orders) Close() error {
	return o.db.Close()
}

// ApplyOrder reorders keys to match a saved order. Saved keys missing from the
// live set are dropped; live keys the saved order does not know are appended
// in their original relative order, so edits to the source collection survive.
func ApplyOrder(live, saved []string) []string {
	known := make(map[string]bool, len(live))
	for _, k := range live {
		known[k] = true
	}
	out := make([]string, 0, len(live))
	seen := make(map[string]bool, len(live))
	for _, k := range saved {
		if known[k] && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	for _, k := range live {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}
