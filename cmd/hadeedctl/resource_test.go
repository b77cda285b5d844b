package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store/storetest"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/form"
)

const importYAML = `
resources:
  - title: Patience
    type: reflection
    body: Sabr is light.
    tags: "sabr, character,,"
  - title: Lecture
    type: Link
    url: https://example.com/lecture
    body: A talk on adab.
    author: Yusuf
    tags: [adab, " lecture "]
`

func TestParseImport(t *testing.T) {
	inputs, err := parseImport(strings.NewReader(importYAML))
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, model.ResourceTypeReflection, inputs[0].Type)
	assert.Equal(t, "Sabr is light.", inputs[0].Body)
	assert.Empty(t, inputs[0].Description)
	assert.Equal(t, []string{"sabr", "character"}, store.NormalizeTags(inputs[0].Tags))

	assert.Equal(t, model.ResourceTypeLink, inputs[1].Type)
	assert.Equal(t, "A talk on adab.", inputs[1].Description)
	assert.Equal(t, "Yusuf", inputs[1].Author)
	assert.Equal(t, []string{"adab", "lecture"}, store.NormalizeTags(inputs[1].Tags))
}

func TestParseImportRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty file", "", "file is empty"},
		{"no resources", "resources: []", "no resources listed"},
		{"unknown type", "resources:\n  - title: x\n    type: podcast", `unknown resource type "podcast"`},
		{"missing url", "resources:\n  - title: Khutbah\n    type: video", "url"},
		{"bad tags", "resources:\n  - title: x\n    type: reflection\n    body: b\n    tags: {a: b}", "tags must be a string or a list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseImport(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestImportResources(t *testing.T) {
	inputs, err := parseImport(strings.NewReader(importYAML))
	require.NoError(t, err)

	t.Run("stores every entry", func(t *testing.T) {
		mem := storetest.NewMemoryStore()
		var out bytes.Buffer

		require.NoError(t, importResources(context.Background(), mem, inputs, &out))

		stored := mem.All()
		require.Len(t, stored, 2)
		assert.Equal(t, "Patience", stored[0].Title)
		assert.Equal(t, model.DefaultAuthor, stored[0].Author)
		assert.Equal(t, stored[1].Body, stored[1].Description)
		assert.Equal(t, "Imported 2 resource(s)\n", out.String())
	})

	t.Run("reports how far it got", func(t *testing.T) {
		mem := storetest.NewMemoryStore()
		mem.FailWith = errors.New("permission denied")

		err := importResources(context.Background(), mem, inputs, &bytes.Buffer{})

		require.Error(t, err)
		assert.True(t, store.IsStorageError(err))
		assert.Contains(t, err.Error(), "0 of 2 stored")
	})
}

func TestAddResource(t *testing.T) {
	mem := storetest.NewMemoryStore()
	var out bytes.Buffer

	err := addResource(context.Background(), mem, "link", form.Fields{
		Title: "Lecture",
		URL:   "https://example.com/lecture",
		Body:  "Worth it",
		Tags:  "adab, ",
	}, &out)

	require.NoError(t, err)
	stored := mem.All()
	require.Len(t, stored, 1)
	assert.Equal(t, "Worth it", stored[0].Description)
	assert.Equal(t, []string{"adab"}, []string(stored[0].Tags))
	assert.Equal(t, "Resource shared: "+stored[0].ID+"\n", out.String())

	err = addResource(context.Background(), mem, "video", form.Fields{Title: "Khutbah"}, &out)
	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, form.FieldURL)

	err = addResource(context.Background(), mem, "podcast", form.Fields{Title: "x"}, &out)
	assert.Error(t, err)
	assert.Len(t, mem.All(), 1)
}

func TestWriteResources(t *testing.T) {
	resources := []model.Resource{{
		ID:           "r1",
		Title:        "Patience",
		ResourceType: model.ResourceTypeReflection,
		Body:         "Sabr is light.",
		Tags:         []string{"sabr"},
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeResources(&out, "text", resources))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "TITLE")
		assert.Contains(t, lines[1], "Patience")
		assert.Contains(t, lines[1], "Anonymous")
		assert.Contains(t, lines[1], "2025-03-01T12:00:00Z")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeResources(&out, "json", resources))
		var got []map[string]interface{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "reflection", got[0]["resource_type"])
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeResources(&out, "yaml", resources))
		var got []map[string]interface{}
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Patience", got[0]["title"])
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, writeResources(&bytes.Buffer{}, "xml", resources))
	})

	t.Run("single resource", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeResource(&out, "text", resources[0]))
		assert.Contains(t, out.String(), "Type:")
		assert.Contains(t, out.String(), "Reflection")
		assert.Contains(t, out.String(), "Tags:")
	})
}
