package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store/storetest"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/ui/form"
)

func TestShareOpenAndClose(t *testing.T) {
	mem := storetest.NewMemoryStore()
	srv, _ := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)

	html := body(t, v.get("/"))
	assert.NotContains(t, html, `action="/share/submit"`)

	w := v.post("/share/open", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	require.Len(t, v.cookies, 1)
	assert.Equal(t, sessionCookie, v.cookies[0].Name)
	assert.True(t, v.cookies[0].HttpOnly)

	html = body(t, v.get("/"))
	assert.Contains(t, html, `action="/share/submit"`)
	assert.Contains(t, html, "Your Reflection")
	assert.Equal(t, 1, srv.Forms.Len())

	v.post("/share/close", nil)
	html = body(t, v.get("/"))
	assert.NotContains(t, html, `action="/share/submit"`)
}

func TestShareReflection(t *testing.T) {
	mem := storetest.NewMemoryStore()
	srv, _ := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)

	v.post("/share/open", nil)
	w := v.post("/share/submit", url.Values{
		"resource_type": {"reflection"},
		"title":         {"Patience"},
		"body":          {"Sabr is light."},
		"tags":          {" sabr, character ,, "},
		"author":        {""},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	stored := mem.All()
	require.Len(t, stored, 1)
	assert.Equal(t, "Patience", stored[0].Title)
	assert.Equal(t, model.ResourceTypeReflection, stored[0].ResourceType)
	assert.Equal(t, "Sabr is light.", stored[0].Body)
	assert.Equal(t, model.DefaultAuthor, stored[0].Author)
	assert.Equal(t, []string{"sabr", "character"}, []string(stored[0].Tags))

	html := body(t, v.get("/"))
	assert.Contains(t, html, form.MessageSuccess)
	assert.Contains(t, html, `<meta http-equiv="refresh" content="60">`)
	assert.Contains(t, html, "Patience")
}

func TestShareLinkDuplicatesDescription(t *testing.T) {
	mem := storetest.NewMemoryStore()
	srv, _ := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)

	v.post("/share/open", nil)
	v.post("/share/type", url.Values{"resource_type": {"link"}})
	v.post("/share/submit", url.Values{
		"resource_type": {"link"},
		"title":         {"Lecture"},
		"url":           {"https://example.com/lecture"},
		"body":          {"A talk on adab."},
		"author":        {"Yusuf"},
	})

	stored := mem.All()
	require.Len(t, stored, 1)
	assert.Equal(t, model.ResourceTypeLink, stored[0].ResourceType)
	assert.Equal(t, "https://example.com/lecture", stored[0].URL)
	assert.Equal(t, "A talk on adab.", stored[0].Body)
	assert.Equal(t, "A talk on adab.", stored[0].Description)
	assert.Equal(t, "Yusuf", stored[0].Author)
	assert.Equal(t, []string{}, []string(stored[0].Tags))
}

func TestShareRejectsMissingURL(t *testing.T) {
	mem := storetest.NewMemoryStore()
	srv, _ := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)

	v.post("/share/open", nil)
	v.post("/share/submit", url.Values{
		"resource_type": {"video"},
		"title":         {"Khutbah"},
	})

	assert.Empty(t, mem.All())
	html := body(t, v.get("/"))
	assert.Contains(t, html, "URL is required")
	assert.Contains(t, html, `value="Khutbah"`)
	assert.NotContains(t, html, form.MessageSuccess)
}

func TestShareStoreFailureKeepsFields(t *testing.T) {
	mem := storetest.NewMemoryStore()
	srv, logs := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)

	v.post("/share/open", nil)
	mem.FailWith = errors.New("insert rejected")
	v.post("/share/submit", url.Values{
		"resource_type": {"reflection"},
		"title":         {"Patience"},
		"body":          {"Sabr is light."},
	})
	mem.FailWith = nil

	html := body(t, v.get("/about"))
	assert.Contains(t, html, form.MessageFailure)
	assert.Contains(t, html, `value="Patience"`)
	assert.Contains(t, html, "Sabr is light.")
	assert.NotContains(t, html, `http-equiv="refresh"`)
	assert.Contains(t, logs.String(), "insert rejected")
}

func TestShareSubmitWhileInFlightKeepsSubmittedFields(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	resources := storetest.NewMockResourcesStore()
	resources.On("AddResource", mock.Anything, mock.MatchedBy(func(in model.ResourceInput) bool {
		return in.Title == "Patience"
	})).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil, errors.New("insert rejected")).Once()
	srv, logs := newTestServer(t, resources, storetest.NewMockHealthStore())
	v := newVisitor(t, srv)

	v.post("/share/open", nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		v.post("/share/submit", url.Values{
			"resource_type": {"reflection"},
			"title":         {"Patience"},
			"body":          {"Sabr is light."},
		})
	}()
	<-started

	w := v.post("/share/submit", url.Values{
		"resource_type": {"video"},
		"title":         {"Second"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, logs.String(), "submission ignored, another is in flight")

	close(release)
	<-done

	html := body(t, v.get("/about"))
	assert.Contains(t, html, form.MessageFailure)
	assert.Contains(t, html, `value="Patience"`)
	assert.Contains(t, html, "Sabr is light.")
	assert.NotContains(t, html, `value="Second"`)
	resources.AssertNumberOfCalls(t, "AddResource", 1)
}

func TestShareTypeChangeClearsFields(t *testing.T) {
	mem := storetest.NewMemoryStore()
	srv, _ := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)

	v.post("/share/open", nil)
	v.post("/share/submit", url.Values{
		"resource_type": {"video"},
		"title":         {"Draft"},
	})
	v.post("/share/type", url.Values{"resource_type": {"picture"}})

	html := body(t, v.get("/"))
	assert.Contains(t, html, "Image URL")
	assert.Contains(t, html, "Caption")
	assert.Contains(t, html, "File uploads are not available yet.")
	assert.NotContains(t, html, `value="Draft"`)
	assert.NotContains(t, html, "URL is required")
}

func TestShareRejectsUnknownType(t *testing.T) {
	mem := storetest.NewMemoryStore()
	srv, _ := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)

	v.post("/share/open", nil)
	w := v.post("/share/submit", url.Values{"resource_type": {"podcast"}, "title": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = v.post("/share/type", url.Values{"resource_type": {"podcast"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mem.All())
}

func TestRedirectBackIgnoresForeignReferer(t *testing.T) {
	mem := storetest.NewMemoryStore()
	srv, _ := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)
	v.post("/share/open", nil)

	tests := []struct {
		referer  string
		location string
	}{
		{"https://elsewhere.example/phish", "/"},
		{"http://example.com/resources?type=video", "/resources?type=video"},
		{"", "/"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/share/close", nil)
		if tt.referer != "" {
			req.Header.Set("Referer", tt.referer)
		}
		w := v.do(req)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, tt.location, w.Header().Get("Location"), tt.referer)
	}
}
