package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/config"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/metrics"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/form"
)

// Settings are the values that may change while the server runs
type Settings struct {
	ListLimit     int
	PreviewLength int
}

type Server struct {
	Router         *mux.Router
	Config         *config.Config
	ResourcesStore store.ResourcesStore
	HealthStore    store.HealthStore
	Forms          *form.Registry
	Metrics        *metrics.Metrics
	Logger         *slog.Logger

	settings atomic.Pointer[Settings]
	srv      *http.Server
}

func NewServer(
	cfg *config.Config,
	resources store.ResourcesStore,
	health store.HealthStore,
	logger *slog.Logger,
	host string,
	port string,
) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := metrics.New(metrics.DefaultNamespace)
	instrumented := metrics.InstrumentStore(resources, m)

	forms, err := form.NewRegistry(cfg.FormSessionCapacity, func() *form.Form {
		return form.New(instrumented,
			form.WithAutoCloseDelay(cfg.AutoCloseDelay()),
			form.WithLogger(logger),
		)
	}, form.OnSizeChange(m.FormSessionsSet))
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(cfg.IsDebug()),
	)
	srv := &http.Server{
		Handler:      recovery(handlers.LoggingHandler(os.Stdout, router)),
		Addr:         net.JoinHostPort(host, port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	s := &Server{
		Router:         router,
		Config:         cfg,
		ResourcesStore: instrumented,
		HealthStore:    health,
		Forms:          forms,
		Metrics:        m,
		Logger:         logger,
		srv:            srv,
	}
	s.ApplyConfig(cfg)
	return s, nil
}

// ApplyConfig updates the settings that can change without a restart
func (s *Server) ApplyConfig(cfg *config.Config) {
	s.settings.Store(&Settings{
		ListLimit:     cfg.ResourceListLimit,
		PreviewLength: cfg.BodyPreviewLength,
	})
}

// Settings returns the current runtime settings
func (s *Server) Settings() Settings {
	return *s.settings.Load()
}

// Handler returns the root handler with access logging and panic recovery
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and destroys
// every open form
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	s.Forms.Purge()
	return err
}
