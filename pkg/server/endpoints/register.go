package endpoints

import (
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server"
)

// RegisterAll registers all pages, form actions and API endpoints on the
// server
func RegisterAll(srv *server.Server) {
	RegisterPages(srv)
	RegisterShareEndpoints(srv)
	RegisterResourcesAPI(srv)
	RegisterStatusEndpoints(srv)

	// Static files
	RegisterStaticFiles(srv)
}
