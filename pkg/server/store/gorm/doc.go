// Package gorm provides the PostgreSQL implementation of the store
// interfaces defined in the parent store package.
//
// Queries are written as raw SQL against the resources table created by the
// migrations in db/migrations. The interfaces are defined in
// pkg/server/store.
package gorm
