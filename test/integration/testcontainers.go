package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/db"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	gormstore "github.com/HehLul/HadeedInstitute-MVP/pkg/server/store/gorm"
)

// TestContext holds the PostgreSQL container shared by every scenario
type TestContext struct {
	DB          *gorm.DB
	Container   testcontainers.Container
	DatabaseURL string
}

// NewTestContext starts PostgreSQL in a container and applies the
// migrations
func NewTestContext(ctx context.Context) (*TestContext, error) {
	// Find project root and migrations directory
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("hadeed_test"),
		tcpostgres.WithUsername("hadeed"),
		tcpostgres.WithPassword("hadeed"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	database, err := db.Connect(db.Config{URL: connStr})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	if err := runMigrations(database, migrationsDir); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestContext{
		DB:          database,
		Container:   pgContainer,
		DatabaseURL: connStr,
	}, nil
}

func (*TestContext) Name() string { return "postgres" }

// Reset empties the resources table
func (tc *TestContext) Reset(ctx context.Context) (store.ResourcesStore, store.HealthStore, error) {
	if err := tc.DB.WithContext(ctx).Exec(`DELETE FROM resources`).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to reset resources: %w", err)
	}
	return gormstore.NewResourcesStore(tc.DB), gormstore.NewHealthStore(tc.DB), nil
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.DB != nil {
		if rawDB, err := tc.DB.DB(); err == nil {
			_ = rawDB.Close()
		}
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	// Try relative paths from test directory
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}

// runMigrations applies the up migrations in order
func runMigrations(database *gorm.DB, migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		if err := database.Exec(string(content)).Error; err != nil {
			return fmt.Errorf("migration %s: %w", filepath.Base(file), err)
		}
		log.Printf("Applied migration %s", filepath.Base(file))
	}

	return nil
}
