package form

import (
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultCapacity bounds the number of live forms in a Registry
const DefaultCapacity = 1024

// Registry keeps one Form per visitor session. The least recently used
// form is destroyed when the registry is full.
type Registry struct {
	cache    *lru.Cache
	newForm  func() *Form
	onChange func(n int)
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// OnSizeChange is called with the number of live forms after every change
func OnSizeChange(fn func(n int)) RegistryOption {
	return func(r *Registry) { r.onChange = fn }
}

// NewRegistry creates a registry holding at most capacity forms built by
// newForm
func NewRegistry(capacity int, newForm func() *Form, opts ...RegistryOption) (*Registry, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r := &Registry{newForm: newForm}
	for _, opt := range opts {
		opt(r)
	}

	cache, err := lru.NewWithEvict(capacity, func(_ interface{}, value interface{}) {
		if f, ok := value.(*Form); ok {
			f.Destroy()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create form registry: %w", err)
	}
	r.cache = cache
	return r, nil
}

// Get returns the form for a session id
func (r *Registry) Get(id string) (*Form, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Form), true
}

// Acquire returns the form for id, or a new form under a fresh id when id
// is unknown
func (r *Registry) Acquire(id string) (*Form, string) {
	if f, ok := r.Get(id); ok {
		return f, id
	}

	id = uuid.NewString()
	f := r.newForm()
	r.cache.Add(id, f)
	r.changed()
	return f, id
}

// Remove destroys and forgets the form for id
func (r *Registry) Remove(id string) {
	if r.cache.Remove(id) {
		r.changed()
	}
}

// Len returns the number of live forms
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Purge destroys every form
func (r *Registry) Purge() {
	r.cache.Purge()
	r.changed()
}

func (r *Registry) changed() {
	if r.onChange != nil {
		r.onChange(r.cache.Len())
	}
}
