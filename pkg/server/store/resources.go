package store

import (
	"context"
	"strings"
	"time"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
)

// DefaultListLimit caps listings that do not ask for a limit
const DefaultListLimit = 100

// ListOptions filters and caps a listing
type ListOptions struct {
	// Type restricts the listing to one resource type when non-empty
	Type model.ResourceType
	// Limit caps the number of rows; zero or negative means DefaultListLimit
	Limit int
}

// EffectiveLimit returns the limit applied to the query
func (o ListOptions) EffectiveLimit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

// Ack acknowledges an insert. Callers do not rely on its content.
type Ack struct {
	ID        string
	CreatedAt time.Time
}

// ResourcesStore abstracts resource storage operations
type ResourcesStore interface {
	// AddResource normalizes and inserts a new resource
	AddResource(ctx context.Context, input model.ResourceInput) (*Ack, error)

	// GetResources returns resources newest first, optionally filtered by type
	GetResources(ctx context.Context, opts ListOptions) ([]model.Resource, error)

	// GetResourceByID returns exactly one resource.
	// Returns ErrNotFound or ErrNotSingle (wrapped in StorageError) otherwise.
	GetResourceByID(ctx context.Context, id string) (*model.Resource, error)
}

// PrepareInsert turns the raw submission into the row every backend inserts
func PrepareInsert(input model.ResourceInput) model.NewResource {
	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = model.DefaultAuthor
	}
	return model.NewResource{
		Title:        input.Title,
		ResourceType: input.Type,
		Body:         input.Body,
		Description:  input.Description,
		URL:          input.URL,
		Author:       author,
		Tags:         NormalizeTags(input.Tags),
	}
}
