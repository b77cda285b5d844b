package integration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync/atomic"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/config"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/endpoints"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store/storetest"
)

// Backend provides an empty store for each scenario
type Backend interface {
	Reset(ctx context.Context) (store.ResourcesStore, store.HealthStore, error)
	Name() string
}

// MemoryBackend hands out a fresh in-memory store per scenario
type MemoryBackend struct{}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (*MemoryBackend) Name() string { return "memory" }

func (*MemoryBackend) Reset(context.Context) (store.ResourcesStore, store.HealthStore, error) {
	mem := storetest.NewMemoryStore()
	return mem, mem, nil
}

// errInsertRejected is returned by a store told to reject inserts
var errInsertRejected = errors.New("insert rejected by store")

// switchableStore passes calls through until told to reject inserts
type switchableStore struct {
	store.ResourcesStore
	rejectInserts atomic.Bool
}

func (s *switchableStore) AddResource(ctx context.Context, input model.ResourceInput) (*store.Ack, error) {
	if s.rejectInserts.Load() {
		return nil, store.NewStorageError("add resource", errInsertRejected)
	}
	return s.ResourcesStore.AddResource(ctx, input)
}

// ServerInstance is a Hadeed server running for a single scenario
type ServerInstance struct {
	Server    *server.Server
	ServerURL string
	Store     *switchableStore

	httpServer *httptest.Server
}

func testConfig() *config.Config {
	return &config.Config{
		StoreBackend:        "test",
		ResourceListLimit:   100,
		FormAutoCloseMS:     60000,
		BodyPreviewLength:   180,
		FormSessionCapacity: 64,
		HTTPTimeoutSeconds:  15,
		LogLevel:            "error",
	}
}

// StartServer starts an in-process server on a fresh store from backend
func StartServer(ctx context.Context, backend Backend) (*ServerInstance, error) {
	resources, health, err := backend.Reset(ctx)
	if err != nil {
		return nil, err
	}
	switchable := &switchableStore{ResourcesStore: resources}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := server.NewServer(testConfig(), switchable, health, logger, "127.0.0.1", "0")
	if err != nil {
		return nil, err
	}
	endpoints.RegisterAll(s)

	ts := httptest.NewServer(s.Router)
	return &ServerInstance{
		Server:     s,
		ServerURL:  ts.URL,
		Store:      switchable,
		httpServer: ts,
	}, nil
}

// Stop shuts down the server instance
func (si *ServerInstance) Stop() {
	si.httpServer.Close()
	si.Server.Forms.Purge()
}
