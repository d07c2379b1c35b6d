// Package migrator applies the goose migrations embedded in a service's
// migrations directory.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ghuser/itemvalidation/pkg/logger"
)

// Migrator wraps a goose provider bound to one database and one set of files.
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
	log      logger.Logger
}

// New opens databaseURL with the pgx driver and loads the migrations in files.
func New(databaseURL string, files fs.FS, log logger.Logger) (*Migrator, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, files)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	return &Migrator{db: db, provider: provider, log: log}, nil
}

// Up applies every pending migration and logs each one applied.
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	for _, r := range results {
		m.log.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration,
		)
	}
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if len(results) == 0 {
		m.log.InfoContext(ctx, "schema up to date")
	}
	return nil
}

// Status logs the state of every known migration.
func (m *Migrator) Status(ctx context.Context) error {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	for _, s := range statuses {
		m.log.InfoContext(ctx, "migration",
			"version", s.Source.Version,
			"path", s.Source.Path,
			"state", string(s.State),
			"applied_at", s.AppliedAt,
		)
	}
	return nil
}

// Close releases the database handle.
func (m *Migrator) Close() error {
	return m.db.Close()
}
