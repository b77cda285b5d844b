package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

const (
	defaultTable    = "resources"
	objectMediaType = "application/vnd.pgrst.object+json"
	maxErrorBody    = 64 << 10
)

var (
	_ store.ResourcesStore = (*Store)(nil)
	_ store.HealthStore    = (*Store)(nil)
)

// Config holds the Supabase project coordinates
type Config struct {
	// URL is the project base URL, e.g. https://abc.supabase.co
	URL string
	// APIKey is the project's public (anon) key
	APIKey string
	// Table defaults to "resources"
	Table string
	// HTTPClient defaults to a client with a 15 second timeout
	HTTPClient *http.Client
	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Store implements store.ResourcesStore over PostgREST
type Store struct {
	endpoint *url.URL
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// New creates a Store for the given project
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase url is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase api key is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid supabase url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid supabase url %q: scheme must be http or https", cfg.URL)
	}
	if base.Path == "" {
		base.Path = "/"
	}

	table := cfg.Table
	if table == "" {
		table = defaultTable
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		endpoint: base.JoinPath("rest", "v1", table),
		apiKey:   cfg.APIKey,
		client:   client,
		logger:   logger,
	}, nil
}

// AddResource inserts a new resource and returns the row PostgREST created
func (s *Store) AddResource(ctx context.Context, input model.ResourceInput) (*store.Ack, error) {
	payload, err := json.Marshal([]model.NewResource{store.PrepareInsert(input)})
	if err != nil {
		return nil, store.NewStorageError("add resource", err)
	}

	req, err := s.newRequest(ctx, http.MethodPost, nil, bytes.NewReader(payload))
	if err != nil {
		return nil, store.NewStorageError("add resource", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	var rows []row
	if err := s.do(req, &rows); err != nil {
		return nil, store.NewStorageError("add resource", err)
	}

	ack := &store.Ack{}
	if len(rows) > 0 {
		ack.ID = string(rows[0].ID)
		// the row is already stored; only the ack loses its timestamp
		createdAt, err := parseTimestamp(rows[0].CreatedAt)
		if err != nil {
			s.logger.Warn("error decoding inserted created_at", "id", ack.ID, "error", err)
		}
		ack.CreatedAt = createdAt
	}
	return ack, nil
}

// GetResources returns resources newest first, optionally filtered by type
func (s *Store) GetResources(ctx context.Context, opts store.ListOptions) ([]model.Resource, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")
	query.Set("limit", strconv.Itoa(opts.EffectiveLimit()))
	if opts.Type != "" {
		query.Set("resource_type", "eq."+string(opts.Type))
	}

	req, err := s.newRequest(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, store.NewStorageError("list resources", err)
	}

	var rows []row
	if err := s.do(req, &rows); err != nil {
		return nil, store.NewStorageError("list resources", err)
	}

	resources := make([]model.Resource, 0, len(rows))
	for _, r := range rows {
		res, err := r.toModel()
		if err != nil {
			return nil, store.NewStorageError("list resources", err)
		}
		resources = append(resources, res)
	}
	return resources, nil
}

// GetResourceByID retrieves exactly one resource
func (s *Store) GetResourceByID(ctx context.Context, id string) (*model.Resource, error) {
	if err := store.CheckID("get resource", id); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+id)

	req, err := s.newRequest(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, store.NewStorageError("get resource", err)
	}
	req.Header.Set("Accept", objectMediaType)

	var r row
	if err := s.do(req, &r); err != nil {
		return nil, store.NewStorageError("get resource", err)
	}

	res, err := r.toModel()
	if err != nil {
		return nil, store.NewStorageError("get resource", err)
	}
	return &res, nil
}

// CheckConnectivity issues a one-row select against the table
func (s *Store) CheckConnectivity(ctx context.Context) error {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("limit", "1")

	req, err := s.newRequest(ctx, http.MethodGet, query, nil)
	if err != nil {
		return err
	}
	return s.do(req, nil)
}

func (s *Store) newRequest(ctx context.Context, method string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *s.endpoint
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (s *Store) do(req *http.Request, out interface{}) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}
