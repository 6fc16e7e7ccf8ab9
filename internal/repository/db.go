// Package repository persists profiles, tasks, and generated documents
// in SQLite.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open initializes or connects to the database at path and applies
// migrations.
func Open(path string, busyTimeoutMS int) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if busyTimeoutMS <= 0 {
		busyTimeoutMS = 5000
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMS),
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if err := applyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func applyMigrations(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id          TEXT PRIMARY KEY,
			first_name  TEXT NOT NULL,
			last_name   TEXT NOT NULL,
			email       TEXT NOT NULL DEFAULT '',
			address     TEXT NOT NULL DEFAULT '',
			postal_code TEXT NOT NULL DEFAULT '',
			city        TEXT NOT NULL DEFAULT '',
			children    TEXT NOT NULL DEFAULT '[]',
			spouse      TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id             TEXT PRIMARY KEY,
			profile_id     TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			title          TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			deadline       TEXT,
			category       TEXT NOT NULL DEFAULT '',
			contact_name   TEXT NOT NULL DEFAULT '',
			contact_email  TEXT NOT NULL DEFAULT '',
			contact_phone  TEXT NOT NULL DEFAULT '',
			attachment_url TEXT NOT NULL DEFAULT '',
			source         TEXT NOT NULL DEFAULT 'manual',
			done           INTEGER NOT NULL DEFAULT 0,
			created_at     TEXT NOT NULL,
			updated_at     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_profile ON tasks(profile_id, done, deadline)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id          TEXT PRIMARY KEY,
			profile_id  TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			task_id     TEXT,
			template_id TEXT NOT NULL,
			filename    TEXT NOT NULL,
			url         TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_profile ON documents(profile_id, created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
