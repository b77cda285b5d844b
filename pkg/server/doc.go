// Package server provides the HTTP server for the Hadeed resource library.
//
// The server renders pages on the server: the resource list and the share
// form are state machines from the ui packages, rendered with html/template.
// It uses gorilla/mux for routing and gorilla/handlers for access logging
// and panic recovery.
//
// # Server Setup
//
//	srv, err := server.NewServer(cfg, resources, health, logger, "0.0.0.0", "3000")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Router: HTTP request router
//   - ResourcesStore: the configured store, instrumented with metrics
//   - HealthStore: connectivity check used by /status
//   - Forms: one share form per visitor session
//   - Metrics: Prometheus collectors served on /metrics
package server
