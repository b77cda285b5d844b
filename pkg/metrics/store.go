package metrics

import (
	"context"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

// InstrumentedStore records timing and outcome of every store call
type InstrumentedStore struct {
	next    store.ResourcesStore
	metrics *Metrics
}

var _ store.ResourcesStore = (*InstrumentedStore)(nil)

// InstrumentStore wraps s. A nil Metrics returns s unchanged.
func InstrumentStore(s store.ResourcesStore, m *Metrics) store.ResourcesStore {
	if m == nil {
		return s
	}
	return &InstrumentedStore{next: s, metrics: m}
}

func (s *InstrumentedStore) AddResource(ctx context.Context, input model.ResourceInput) (*store.Ack, error) {
	timer := s.metrics.StoreTimer("add")
	ack, err := s.next.AddResource(ctx, input)
	timer.ObserveDuration()
	s.metrics.StoreRequestInc("add", err)
	if err == nil {
		s.metrics.ResourceAddedInc(string(input.Type))
	}
	return ack, err
}

func (s *InstrumentedStore) GetResources(ctx context.Context, opts store.ListOptions) ([]model.Resource, error) {
	timer := s.metrics.StoreTimer("list")
	resources, err := s.next.GetResources(ctx, opts)
	timer.ObserveDuration()
	s.metrics.StoreRequestInc("list", err)
	return resources, err
}

func (s *InstrumentedStore) GetResourceByID(ctx context.Context, id string) (*model.Resource, error) {
	timer := s.metrics.StoreTimer("get")
	res, err := s.next.GetResourceByID(ctx, id)
	timer.ObserveDuration()
	s.metrics.StoreRequestInc("get", err)
	return res, err
}

// CheckConnectivity forwards to the wrapped store when it supports health
// checks
func (s *InstrumentedStore) CheckConnectivity(ctx context.Context) error {
	if h, ok := s.next.(store.HealthStore); ok {
		return h.CheckConnectivity(ctx)
	}
	return nil
}
