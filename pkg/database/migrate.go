package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

//go:embed catalog.sql
var catalog string

// Migrate applies the idempotent schema, so running it on each start is safe.
func Migrate(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SeedCatalog loads the regions, companies, routes and stops reference data.
// Existing rows are left untouched.
func SeedCatalog(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, catalog); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}
