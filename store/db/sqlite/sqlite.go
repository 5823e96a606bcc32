package sqlite

import (
	"context"
	"database/sql"
	"log"

	// Import the pure-Go SQLite driver.
	_ "modernc.org/sqlite"
	"github.com/pkg/errors"

	"github.com/moaworks/moa-router/internal/profile"
	"github.com/moaworks/moa-router/store"
)

// SQLite is the development/demo database. The catalog CRUD is fully
// supported; vector search is not, callers must fall back to keyword
// filtering.

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("sqlite", profile.DSN+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		log.Printf("Failed to open database: %s", err)
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	if err := db.Ping(); err != nil {
		log.Printf("Failed to ping database: %s", err)
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &DB{
		db:      db,
		profile: profile,
	}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Migrate creates the catalog schema if it does not exist. Features and
// embeddings are stored as JSON text: SQLite has neither arrays nor vectors.
func (d *DB) Migrate(ctx context.Context) error {
	stmt := `
		CREATE TABLE IF NOT EXISTS ai_tool (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT 'free',
			has_api INTEGER NOT NULL DEFAULT 0,
			features TEXT NOT NULL DEFAULT '[]',
			description TEXT NOT NULL DEFAULT '',
			rating REAL NOT NULL DEFAULT 0,
			service_id TEXT NOT NULL DEFAULT '',
			embedding TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_ai_tool_category ON ai_tool (category);
	`
	if _, err := d.db.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to migrate ai_tool schema")
	}
	return nil
}
