package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store/storetest"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/list"
)

func TestAPIListResources(t *testing.T) {
	mem := storetest.NewMemoryStore()
	for i, title := range []string{"One", "Two", "Three"} {
		_, err := mem.AddResource(t.Context(), model.ResourceInput{
			Title: title,
			Type:  []model.ResourceType{model.ResourceTypeReflection, model.ResourceTypeVideo, model.ResourceTypeReflection}[i],
			Tags:  model.TagsFromString("a,b"),
		})
		require.NoError(t, err)
	}
	srv, _ := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)

	t.Run("lists newest first", func(t *testing.T) {
		w := v.get("/api/resources")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var got []ResourceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 3)
		assert.Equal(t, []string{"Three", "Two", "One"}, []string{got[0].Title, got[1].Title, got[2].Title})
		assert.Equal(t, []string{"a", "b"}, got[0].Tags)
		assert.Equal(t, model.DefaultAuthor, got[0].Author)
	})

	t.Run("filters and limits", func(t *testing.T) {
		w := v.get("/api/resources?type=reflection&limit=1")
		require.Equal(t, http.StatusOK, w.Code)

		var got []ResourceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Three", got[0].Title)
	})

	t.Run("rejects bad parameters", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, v.get("/api/resources?type=podcast").Code)
		assert.Equal(t, http.StatusBadRequest, v.get("/api/resources?limit=0").Code)
		assert.Equal(t, http.StatusBadRequest, v.get("/api/resources?limit=ten").Code)
	})
}

func TestAPIListClampsLimit(t *testing.T) {
	resources := storetest.NewMockResourcesStore()
	resources.On("GetResources", mock.Anything, store.ListOptions{Limit: 100}).Return([]model.Resource{}, nil)
	srv, _ := newTestServer(t, resources, storetest.NewMockHealthStore())

	w := newVisitor(t, srv).get("/api/resources?limit=5000")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	resources.AssertExpectations(t)
}

func TestAPIListStoreFailure(t *testing.T) {
	resources := storetest.NewMockResourcesStore()
	resources.On("GetResources", mock.Anything, mock.Anything).
		Return(nil, store.NewStorageError("list resources", errors.New("boom")))
	srv, logs := newTestServer(t, resources, storetest.NewMockHealthStore())

	w := newVisitor(t, srv).get("/api/resources")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"`+list.MessageError+`"}`, w.Body.String())
	assert.Contains(t, logs.String(), "boom")
}

func TestAPIGetResource(t *testing.T) {
	mem := storetest.NewMemoryStore()
	created := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	mem.Seed(model.Resource{ID: "abc", Title: "Dawn", ResourceType: model.ResourceTypePicture, URL: "https://example.com/p.jpg", Body: "Fajr", CreatedAt: created})
	srv, _ := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)

	w := v.get("/api/resources/abc")
	require.Equal(t, http.StatusOK, w.Code)
	var got ResourceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, "picture", got.ResourceType)
	assert.Equal(t, "2025-02-03T04:05:06Z", got.CreatedAt)
	assert.Equal(t, []string{}, got.Tags)

	w = v.get("/api/resources/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"resource not found"}`, w.Body.String())
}

func TestAPIGetResourceNotSingle(t *testing.T) {
	mem := storetest.NewMemoryStore()
	mem.Seed(model.Resource{ID: "dup", Title: "a"}, model.Resource{ID: "dup", Title: "b"})
	srv, _ := newTestServer(t, mem, mem)

	w := newVisitor(t, srv).get("/api/resources/dup")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func postJSON(v *visitor, path, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return v.do(req)
}

func TestAPICreateResource(t *testing.T) {
	t.Run("accepts tags as a string", func(t *testing.T) {
		mem := storetest.NewMemoryStore()
		srv, _ := newTestServer(t, mem, mem)

		w := postJSON(newVisitor(t, srv), "/api/resources",
			`{"title":"Patience","type":"reflection","body":"Sabr","tags":"sabr, ,character"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var ack CreateResourceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
		assert.NotEmpty(t, ack.ID)
		assert.NotEmpty(t, ack.CreatedAt)

		stored := mem.All()
		require.Len(t, stored, 1)
		assert.Equal(t, ack.ID, stored[0].ID)
		assert.Equal(t, []string{"sabr", "character"}, []string(stored[0].Tags))
		assert.Equal(t, model.DefaultAuthor, stored[0].Author)
	})

	t.Run("accepts tags as a list and duplicates link descriptions", func(t *testing.T) {
		mem := storetest.NewMemoryStore()
		srv, _ := newTestServer(t, mem, mem)

		w := postJSON(newVisitor(t, srv), "/api/resources",
			`{"title":"Lecture","resource_type":"link","url":"https://example.com","body":"Worth it","tags":[" adab ",""]}`)

		require.Equal(t, http.StatusCreated, w.Code)
		stored := mem.All()
		require.Len(t, stored, 1)
		assert.Equal(t, "Worth it", stored[0].Description)
		assert.Equal(t, []string{"adab"}, []string(stored[0].Tags))
	})

	t.Run("reports missing fields", func(t *testing.T) {
		mem := storetest.NewMemoryStore()
		srv, _ := newTestServer(t, mem, mem)

		w := postJSON(newVisitor(t, srv), "/api/resources", `{"type":"video"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var got struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Contains(t, got.Fields, "title")
		assert.Equal(t, "URL is required", got.Fields["url"])
		assert.Empty(t, mem.All())
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		mem := storetest.NewMemoryStore()
		srv, _ := newTestServer(t, mem, mem)
		v := newVisitor(t, srv)

		assert.Equal(t, http.StatusBadRequest, postJSON(v, "/api/resources", `{`).Code)
		assert.Equal(t, http.StatusBadRequest, postJSON(v, "/api/resources", `{"title":"x","type":"podcast"}`).Code)
		assert.Equal(t, http.StatusBadRequest, postJSON(v, "/api/resources", `{"title":"x","type":"reflection","body":"b","tags":7}`).Code)
	})

	t.Run("store failure is a bad gateway", func(t *testing.T) {
		mem := storetest.NewMemoryStore()
		mem.FailWith = errors.New("unavailable")
		srv, _ := newTestServer(t, mem, mem)

		w := postJSON(newVisitor(t, srv), "/api/resources", `{"title":"x","type":"reflection","body":"b"}`)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
