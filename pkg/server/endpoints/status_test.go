package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store/storetest"
)

func TestHandleStatus(t *testing.T) {
	t.Run("returns HTML status page", func(t *testing.T) {
		health := storetest.NewMockHealthStore()
		health.On("CheckConnectivity", mock.Anything).Return(nil)
		srv, _ := newTestServer(t, storetest.NewMockResourcesStore(), health)

		w := newVisitor(t, srv).get("/status")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Hadeed is running!")
		assert.Contains(t, w.Body.String(), "supabase")
	})

	t.Run("returns JSON when Accept header is application/json", func(t *testing.T) {
		health := storetest.NewMockHealthStore()
		health.On("CheckConnectivity", mock.Anything).Return(nil)
		srv, _ := newTestServer(t, storetest.NewMockResourcesStore(), health)

		req := httptest.NewRequest("GET", "/status", nil)
		req.Header.Set("Accept", "application/json")
		w := newVisitor(t, srv).do(req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.JSONEq(t, `{"status":"ok","backend":"supabase"}`, w.Body.String())
	})

	t.Run("reports an unreachable store", func(t *testing.T) {
		health := storetest.NewMockHealthStore()
		health.On("CheckConnectivity", mock.Anything).Return(errors.New("dial tcp: refused"))
		srv, logs := newTestServer(t, storetest.NewMockResourcesStore(), health)

		w := newVisitor(t, srv).get("/status?format=json")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"error","backend":"supabase","error":"store connectivity check failed"}`, w.Body.String())
		assert.Contains(t, logs.String(), "dial tcp: refused")

		w = newVisitor(t, srv).get("/status")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "The resource store is unreachable.")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	mem := storetest.NewMemoryStore()
	srv, _ := newTestServer(t, mem, mem)
	v := newVisitor(t, srv)

	v.get("/")
	v.get("/api/resources?type=podcast")
	w := v.get("/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	metrics := w.Body.String()
	assert.Contains(t, metrics, `hadeed_store_requests_total{op="list",result="ok"} 1`)
	assert.Contains(t, metrics, `hadeed_api_errors_total{api="/api/resources",method="GET",status="400"} 1`)
}
