package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
)

// flexibleID accepts both uuid (string) and identity (number) primary keys
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("unsupported id %s: %w", data, err)
	}
	*id = flexibleID(n.String())
	return nil
}

// row is a resources row as serialized by PostgREST. Nullable text columns
// decode to empty strings.
type row struct {
	ID           flexibleID `json:"id"`
	Title        string     `json:"title"`
	ResourceType string     `json:"resource_type"`
	Body         string     `json:"body"`
	Description  string     `json:"description"`
	URL          string     `json:"url"`
	Author       string     `json:"author"`
	Tags         []string   `json:"tags"`
	CreatedAt    string     `json:"created_at"`
}

func (r row) toModel() (model.Resource, error) {
	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return model.Resource{}, err
	}
	return model.Resource{
		ID:           string(r.ID),
		Title:        r.Title,
		ResourceType: model.ResourceType(r.ResourceType),
		Body:         r.Body,
		Description:  r.Description,
		URL:          r.URL,
		Author:       r.Author,
		Tags:         r.Tags,
		CreatedAt:    createdAt,
	}, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp reads timestamptz and timestamp columns; values without a
// zone are taken as UTC
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid created_at %q", s)
}
