package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

// MockResourcesStore implements store.ResourcesStore for testing using testify/mock
type MockResourcesStore struct {
	mock.Mock
}

func NewMockResourcesStore() *MockResourcesStore {
	return &MockResourcesStore{}
}

func (m *MockResourcesStore) AddResource(ctx context.Context, input model.ResourceInput) (*store.Ack, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Ack), args.Error(1)
}

func (m *MockResourcesStore) GetResources(ctx context.Context, opts store.ListOptions) ([]model.Resource, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *MockResourcesStore) GetResourceByID(ctx context.Context, id string) (*model.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
