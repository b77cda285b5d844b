package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/samber/lo"
)

// DefaultAuthor is stored when a submission leaves the author blank
const DefaultAuthor = "Anonymous"

// ResourceType is the kind of a shared resource. Values read from the store
// are not validated, so rows written by newer clients still decode.
type ResourceType string

const (
	ResourceTypeReflection ResourceType = "reflection"
	ResourceTypeVideo      ResourceType = "video"
	ResourceTypePDF        ResourceType = "pdf"
	ResourceTypeLink       ResourceType = "link"
	ResourceTypePicture    ResourceType = "picture"
)

// AllResourceTypes returns the known types in form order
func AllResourceTypes() []ResourceType {
	return lo.Map(KindValues(), func(k Kind, _ int) ResourceType {
		return k.ResourceType()
	})
}

// Valid reports whether t is exactly one of the known resource types
func (t ResourceType) Valid() bool {
	k, err := KindString(string(t))
	return err == nil && k.String() == string(t)
}

func (t ResourceType) String() string {
	return string(t)
}

// Label is the human readable name used by the submission form
func (t ResourceType) Label() string {
	switch t {
	case ResourceTypeReflection:
		return "Reflection"
	case ResourceTypeVideo:
		return "Video"
	case ResourceTypePDF:
		return "PDF"
	case ResourceTypeLink:
		return "Website/Link"
	case ResourceTypePicture:
		return "Picture"
	default:
		return string(t)
	}
}

// ParseResourceType parses a known resource type, ignoring case and padding
func ParseResourceType(s string) (ResourceType, error) {
	k, err := KindString(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("unknown resource type %q", s)
	}
	return k.ResourceType(), nil
}

// Resource is a row of the resources table
type Resource struct {
	ID           string         `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	Title        string         `gorm:"column:title" json:"title" yaml:"title"`
	ResourceType ResourceType   `gorm:"column:resource_type" json:"resource_type" yaml:"resource_type"`
	Body         string         `gorm:"column:body" json:"body" yaml:"body"`
	Description  string         `gorm:"column:description" json:"description" yaml:"description"`
	URL          string         `gorm:"column:url" json:"url" yaml:"url"`
	Author       string         `gorm:"column:author" json:"author" yaml:"author"`
	Tags         pq.StringArray `gorm:"column:tags;type:text[]" json:"tags" yaml:"tags"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at" yaml:"created_at"`
}

func (Resource) TableName() string {
	return "resources"
}

// NewResource is the insert payload. It has no id or created_at: both are
// assigned by the store.
type NewResource struct {
	Title        string       `json:"title"`
	ResourceType ResourceType `json:"resource_type"`
	Body         string       `json:"body"`
	Description  string       `json:"description"`
	URL          string       `json:"url"`
	Author       string       `json:"author"`
	Tags         []string     `json:"tags"`
}

// TagInput holds tags as submitted: either one comma separated string or an
// already split list.
type TagInput struct {
	raw    string
	list   []string
	isList bool
}

// TagsFromString wraps a comma separated tag string
func TagsFromString(s string) TagInput {
	return TagInput{raw: s}
}

// TagsFromList wraps an already split tag list
func TagsFromList(tags []string) TagInput {
	return TagInput{list: tags, isList: true}
}

// Parts returns the unnormalized tag segments
func (t TagInput) Parts() []string {
	if t.isList {
		return t.list
	}
	if t.raw == "" {
		return nil
	}
	return strings.Split(t.raw, ",")
}

// ResourceInput is the raw submission shape accepted by the store client
type ResourceInput struct {
	Title       string
	Type        ResourceType
	Body        string
	URL         string
	Author      string
	Tags        TagInput
	Description string
}
