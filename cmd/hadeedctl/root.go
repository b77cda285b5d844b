package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/config"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/db"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	gormstore "github.com/HehLul/HadeedInstitute-MVP/pkg/server/store/gorm"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store/rest"
)

var rootCmd = &cobra.Command{
	Use:   "hadeedctl",
	Short: "Run and administer the Hadeed resource library",
	Long: `Run and administer the Hadeed resource library.

Resources are stored in a Supabase project or a PostgreSQL database,
depending on the store_backend setting.`,
	SilenceUsage: true,
}

// logLevel is shared by every logger so a config reload can change it
var logLevel = new(slog.LevelVar)

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel.Set(cfg.SlogLevel())

	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// backend is the store selected by configuration
type backend struct {
	Resources store.ResourcesStore
	Health    store.HealthStore
	close     func() error
}

func (b *backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// openBackend connects to the configured store. The configuration must
// already be valid.
func openBackend(cfg *config.Config) (*backend, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		database, err := db.Connect(db.Config{URL: cfg.DatabaseURL, Debug: cfg.IsDebug()})
		if err != nil {
			return nil, err
		}
		return &backend{
			Resources: gormstore.NewResourcesStore(database),
			Health:    gormstore.NewHealthStore(database),
			close: func() error {
				sqlDB, err := database.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	case config.BackendSupabase:
		s, err := rest.New(rest.Config{
			URL:        cfg.SupabaseURL,
			APIKey:     cfg.SupabaseAnonKey,
			HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout()},
		})
		if err != nil {
			return nil, err
		}
		return &backend{Resources: s, Health: s}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// loadConfig loads and validates the configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
