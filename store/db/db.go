package db

import (
	"github.com/pkg/errors"

	"github.com/moaworks/moa-router/internal/profile"
	"github.com/moaworks/moa-router/store"
	"github.com/moaworks/moa-router/store/db/postgres"
	"github.com/moaworks/moa-router/store/db/sqlite"
)

// Only PostgreSQL and SQLite are supported.
//
// PostgreSQL: full support including pgvector semantic search.
// SQLite: development/demo use; catalog search falls back to keywords.

// NewDBDriver creates a new db driver based on profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'postgres' and 'sqlite' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
