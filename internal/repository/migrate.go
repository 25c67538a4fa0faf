package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/stdlib"
)

// MigrationsTable records the applied schema version.
const MigrationsTable = "schema_migrations"

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies every pending up migration.
// An up-to-date schema is not an error.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.runMigrations(ctx, "apply", (*migrate.Migrate).Up)
}

// DropSchema reverts every applied migration. Only tests call this.
func (r *Repository) DropSchema(ctx context.Context) error {
	return r.runMigrations(ctx, "revert", (*migrate.Migrate).Down)
}

func (r *Repository) runMigrations(ctx context.Context, action string, step func(*migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := r.newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	// Migrations cannot be interrupted mid-file; cancellation stops between files.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-done:
		}
	}()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to %s migrations: %w", action, err)
	}
	return nil
}

// newMigrator opens a dedicated database/sql handle for golang-migrate so
// closing the migrator never touches the pgx pool.
func (r *Repository) newMigrator() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	db := stdlib.OpenDB(*r.pool.Config().ConnConfig)
	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{
		MigrationsTable: MigrationsTable,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return m, nil
}
