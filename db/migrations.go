// Package db holds the SQL migrations for the resources table.
package db

import "embed"

// Migrations contains the migration files under migrations/
//
//go:embed migrations/*.sql
var Migrations embed.FS
