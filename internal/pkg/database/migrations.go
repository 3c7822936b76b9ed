package database

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/migrations"
)

const dialect = "postgres"

// RunMigrations applies every pending embedded migration
func RunMigrations(ctx context.Context, db *sqlx.DB) error {
	return Migrate(ctx, db, migrations.FS, "up")
}

// Migrate runs a goose command ("up", "down", "status", "redo", ...) against the
// migrations found at the root of fsys
func Migrate(ctx context.Context, db *sqlx.DB, fsys fs.FS, command string, args ...string) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db.DB, ".", args...); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	return nil
}
