package postgres

import (
	"context"
	"database/sql"
	"log"
	"time"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/moaworks/moa-router/internal/profile"
	"github.com/moaworks/moa-router/store"
)

// PostgreSQL is the production database. It carries the full catalog plus
// pgvector semantic search; when adding features, postgres is the reference
// implementation.

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		log.Printf("Failed to open database: %s", err)
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	// The catalog is read-heavy and small; a modest pool is plenty.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Hour)
	db.SetConnMaxIdleTime(15 * time.Minute)

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

// Migrate creates the pgvector extension and the catalog schema if needed.
// The vector dimension matches text-embedding-3-small.
func (d *DB) Migrate(ctx context.Context) error {
	stmt := `
		CREATE EXTENSION IF NOT EXISTS vector;
		CREATE TABLE IF NOT EXISTS ai_tool (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT 'free',
			has_api BOOLEAN NOT NULL DEFAULT FALSE,
			features JSONB NOT NULL DEFAULT '[]',
			description TEXT NOT NULL DEFAULT '',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			service_id TEXT NOT NULL DEFAULT '',
			embedding vector(1536)
		);
		CREATE INDEX IF NOT EXISTS idx_ai_tool_category ON ai_tool (category);
	`
	if _, err := d.db.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to migrate ai_tool schema")
	}
	return nil
}
