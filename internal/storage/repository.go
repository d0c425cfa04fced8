// Package storage persists ledger snapshots to a local SQLite database.
// The schema is a key-value table: one serialized snapshot document per
// profile, replaced wholesale on every save. There is no merge or patch
// protocol; load returns the full document or nothing.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	applog "fintrack/internal/log"

	_ "modernc.org/sqlite"
)

// DefaultProfile is the snapshot key for the single local user.
const DefaultProfile = "default"

// Repository is the SQLite-backed persistence adapter.
type Repository struct {
	db      *sql.DB
	profile string
	logger  *applog.Logger
}

// NewRepository opens (creating if needed) the database at dbPath and runs
// migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{
		db:      db,
		profile: DefaultProfile,
		logger:  applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentStorage),
	}, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save serializes the snapshot and replaces the stored document.
func (r *Repository) Save(ctx context.Context, snap core.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (profile, document, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (profile) DO UPDATE
		SET document = excluded.document, updated_at = CURRENT_TIMESTAMP`,
		r.profile, string(doc))
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	r.logger.DebugContext(ctx, "Snapshot saved",
		applog.FieldOperation, applog.OpSave, "bytes", len(doc))
	return nil
}

// Load reads the stored snapshot. The second return value is false when no
// document exists yet; callers substitute the default snapshot.
func (r *Repository) Load(ctx context.Context) (core.Snapshot, bool, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM snapshots WHERE profile = ?`, r.profile).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Snapshot{}, false, nil
	}
	if err != nil {
		return core.Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var snap core.Snapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		return core.Snapshot{}, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	r.logger.DebugContext(ctx, "Snapshot loaded",
		applog.FieldOperation, applog.OpLoad, "bytes", len(doc))
	return snap, true, nil
}
