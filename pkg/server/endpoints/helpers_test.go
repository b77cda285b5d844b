package endpoints

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/config"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

func testConfig() *config.Config {
	return &config.Config{
		StoreBackend:        config.BackendSupabase,
		SupabaseURL:         "https://abc.supabase.co",
		SupabaseAnonKey:     "sb_publishable_test",
		ResourceListLimit:   100,
		FormAutoCloseMS:     60000,
		BodyPreviewLength:   180,
		FormSessionCapacity: 16,
		HTTPTimeoutSeconds:  15,
		LogLevel:            "info",
	}
}

// newTestServer builds a server with every endpoint registered. Logs are
// captured in the returned buffer.
func newTestServer(t *testing.T, resources store.ResourcesStore, health store.HealthStore) (*server.Server, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := server.NewServer(testConfig(), resources, health, logger, "127.0.0.1", "0")
	require.NoError(t, err)
	t.Cleanup(func() { s.Forms.Purge() })

	RegisterAll(s)
	return s, &logs
}

// visitor replays requests with the session cookie the server handed out
type visitor struct {
	t       *testing.T
	srv     *server.Server
	cookies []*http.Cookie
}

func newVisitor(t *testing.T, srv *server.Server) *visitor {
	return &visitor{t: t, srv: srv}
}

func (v *visitor) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range v.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	v.srv.Router.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		v.cookies = set
	}
	return w
}

func (v *visitor) get(path string) *httptest.ResponseRecorder {
	return v.do(httptest.NewRequest("GET", path, nil))
}

func (v *visitor) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "http://example.com/")
	return v.do(req)
}

func body(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	b, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	return string(b)
}
