package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

var (
	_ store.ResourcesStore = (*MemoryStore)(nil)
	_ store.HealthStore    = (*MemoryStore)(nil)
)

// MemoryStore is an in-process store.ResourcesStore with the same ordering,
// filtering and normalization rules as the real backends
type MemoryStore struct {
	mu        sync.Mutex
	resources []model.Resource
	now       func() time.Time

	// FailWith, when set, makes every call fail with a StorageError
	// wrapping it
	FailWith error
}

// NewMemoryStore creates an empty store. Each insert is stamped one
// millisecond after the previous one so ordering is deterministic.
func NewMemoryStore() *MemoryStore {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var n int64
	return &MemoryStore{
		now: func() time.Time {
			n++
			return base.Add(time.Duration(n) * time.Millisecond)
		},
	}
}

// Seed stores resources as they are, keeping their ids and timestamps
func (s *MemoryStore) Seed(resources ...model.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range resources {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		s.resources = append(s.resources, r)
	}
}

// All returns every stored resource in insertion order
func (s *MemoryStore) All() []model.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Resource(nil), s.resources...)
}

func (s *MemoryStore) AddResource(_ context.Context, input model.ResourceInput) (*store.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, store.NewStorageError("add resource", s.FailWith)
	}

	row := store.PrepareInsert(input)
	r := model.Resource{
		ID:           uuid.NewString(),
		Title:        row.Title,
		ResourceType: row.ResourceType,
		Body:         row.Body,
		Description:  row.Description,
		URL:          row.URL,
		Author:       row.Author,
		Tags:         pq.StringArray(row.Tags),
		CreatedAt:    s.now(),
	}
	s.resources = append(s.resources, r)
	return &store.Ack{ID: r.ID, CreatedAt: r.CreatedAt}, nil
}

func (s *MemoryStore) GetResources(_ context.Context, opts store.ListOptions) ([]model.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, store.NewStorageError("list resources", s.FailWith)
	}

	matching := lo.Filter(s.resources, func(r model.Resource, _ int) bool {
		return opts.Type == "" || r.ResourceType == opts.Type
	})
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})
	if limit := opts.EffectiveLimit(); len(matching) > limit {
		matching = matching[:limit]
	}
	return matching, nil
}

func (s *MemoryStore) GetResourceByID(_ context.Context, id string) (*model.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, store.NewStorageError("get resource", s.FailWith)
	}

	matching := lo.Filter(s.resources, func(r model.Resource, _ int) bool {
		return r.ID == id
	})
	switch len(matching) {
	case 0:
		return nil, store.NewStorageError("get resource", store.ErrNotFound)
	case 1:
		r := matching[0]
		return &r, nil
	default:
		return nil, store.NewStorageError("get resource", store.ErrNotSingle)
	}
}

func (s *MemoryStore) CheckConnectivity(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.FailWith
}
