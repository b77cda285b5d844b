package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/config"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/endpoints"
)

const shutdownTimeout = 10 * time.Second

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Hadeed web server",
	Long: `Run the Hadeed web server.

With the supabase backend, SUPABASE_URL and SUPABASE_ANON_KEY are required.
With the postgres backend, DATABASE_URL is required and database migrations
are run on startup. Use --no-migrate to skip them.`,
	Run: func(cmd *cobra.Command, args []string) {
		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		watch, _ := cmd.Flags().GetBool("watch-config")

		if err := runServer(host, port, noMigrate, watch); err != nil {
			var cfgErr *config.ConfigurationError
			if errors.As(err, &cfgErr) {
				fmt.Fprintln(os.Stderr, cfgErr.Error())
			} else {
				fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start (postgres backend)")
	serverCmd.Flags().Bool("watch-config", false, "reload settings when the config file changes")
}

func runServer(host, port string, noMigrate, watch bool) error {
	// fail fast before touching the network
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	if cfg.StoreBackend == config.BackendPostgres && !noMigrate {
		logger.Info("running database migrations")
		if err := runMigrations(cfg.DatabaseURL, os.Stdout); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	s, err := server.NewServer(cfg, b.Resources, b.Health, logger, host, port)
	if err != nil {
		return err
	}
	endpoints.RegisterAll(s)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if watch {
		go func() {
			err := config.Watch(ctx, logger, func(next *config.Config) {
				if err := next.Validate(); err != nil {
					logger.Warn("ignoring invalid config", "error", err)
					return
				}
				logLevel.Set(next.SlogLevel())
				s.ApplyConfig(next)
			})
			if err != nil {
				logger.Error("config watch stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("running server", "addr", "http://"+s.Addr(), "backend", cfg.StoreBackend)
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
