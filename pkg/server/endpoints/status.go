package endpoints

import (
	"net/http"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/server"
)

// StatusResponse represents the response from /status
type StatusResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

// RegisterStatusEndpoints registers the health and metrics endpoints
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/status", handleStatus(s)).Methods("GET")
	s.Router.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
}

func handleStatus(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := http.StatusOK
		response := StatusResponse{Status: "ok", Backend: s.Config.StoreBackend}

		if s.HealthStore != nil {
			if err := s.HealthStore.CheckConnectivity(r.Context()); err != nil {
				s.Logger.Error("store connectivity check failed", "error", err)
				code = http.StatusServiceUnavailable
				response.Status = "error"
				response.Error = "store connectivity check failed"
			}
		}

		if wantsJSON(r) {
			respondWithJSON(w, code, response)
			return
		}

		data := pageData{Title: "Status", Healthy: code == http.StatusOK, Backend: response.Backend}
		if err := renderPage(w, code, "status", data); err != nil {
			s.Logger.Error("error rendering page", "page", "status", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}
