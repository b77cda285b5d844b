//go:build !embed_migrations

package main

import (
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const defaultMigrationsPath = "db/migrations"

// migrationsPath may be overridden with HADEED_MIGRATIONS_PATH when running
// outside the repository root
func migrationsPath() string {
	if p := os.Getenv("HADEED_MIGRATIONS_PATH"); p != "" {
		return p
	}
	return defaultMigrationsPath
}

func createMigrateInstance(dbURL string) (*migrate.Migrate, error) {
	return migrate.New("file://"+migrationsPath(), dbURL)
}
