package gorm

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

// Ensure ResourcesStore implements store.ResourcesStore
var _ store.ResourcesStore = (*ResourcesStore)(nil)

const resourceColumns = `id, title, resource_type, body, description, url, author, tags, created_at`

// ResourcesStore implements store.ResourcesStore using GORM
type ResourcesStore struct {
	db *gorm.DB
}

// NewResourcesStore creates a new ResourcesStore
func NewResourcesStore(db *gorm.DB) *ResourcesStore {
	return &ResourcesStore{db: db}
}

// AddResource inserts a new resource; id and created_at come from the database
func (s *ResourcesStore) AddResource(ctx context.Context, input model.ResourceInput) (*store.Ack, error) {
	row := store.PrepareInsert(input)

	type ackRow struct {
		ID        string
		CreatedAt time.Time
	}

	var ack ackRow
	result := s.db.WithContext(ctx).Raw(`
		INSERT INTO resources (title, resource_type, body, description, url, author, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at
	`,
		row.Title,
		string(row.ResourceType),
		row.Body,
		row.Description,
		row.URL,
		row.Author,
		pq.StringArray(row.Tags),
	).Scan(&ack)
	if result.Error != nil {
		return nil, store.NewStorageError("add resource", result.Error)
	}

	return &store.Ack{ID: ack.ID, CreatedAt: ack.CreatedAt}, nil
}

// GetResources returns resources newest first, optionally filtered by type
func (s *ResourcesStore) GetResources(ctx context.Context, opts store.ListOptions) ([]model.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources`
	args := []interface{}{}

	if opts.Type != "" {
		query += ` WHERE resource_type = ?`
		args = append(args, string(opts.Type))
	}

	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, opts.EffectiveLimit())

	var rows []model.Resource
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, store.NewStorageError("list resources", err)
	}

	if rows == nil {
		rows = []model.Resource{}
	}
	return rows, nil
}

// GetResourceByID retrieves a single resource by ID
func (s *ResourcesStore) GetResourceByID(ctx context.Context, id string) (*model.Resource, error) {
	if err := store.CheckID("get resource", id); err != nil {
		return nil, err
	}

	var rows []model.Resource
	err := s.db.WithContext(ctx).Raw(
		`SELECT `+resourceColumns+` FROM resources WHERE id = ? LIMIT 2`, id,
	).Scan(&rows).Error
	if err != nil {
		return nil, store.NewStorageError("get resource", err)
	}

	switch len(rows) {
	case 0:
		return nil, store.NewStorageError("get resource", store.ErrNotFound)
	case 1:
		return &rows[0], nil
	default:
		return nil, store.NewStorageError("get resource", store.ErrNotSingle)
	}
}
