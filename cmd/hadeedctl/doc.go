// Command hadeedctl runs and administers the Hadeed resource library.
//
// Hadeed is a community library where anyone can share reflections, videos,
// PDFs, links and pictures. Pages are rendered on the server; resources are
// kept in a Supabase project (through its REST API) or directly in
// PostgreSQL.
//
// # Quick Start
//
//	# Point at a Supabase project
//	export SUPABASE_URL=https://abc.supabase.co
//	export SUPABASE_ANON_KEY=sb_publishable_...
//
//	# Start the server
//	hadeedctl server
//
// Or keep resources in your own PostgreSQL database:
//
//	export HADEED_STORE_BACKEND=postgres
//	export DATABASE_URL=postgres://hadeed@localhost/hadeed?sslmode=disable
//	hadeedctl db migrate
//	hadeedctl server --no-migrate
//
// # Environment Variables
//
//   - SUPABASE_URL, SUPABASE_ANON_KEY: Supabase project (NEXT_PUBLIC_ names are accepted too)
//   - HADEED_STORE_BACKEND: supabase (default) or postgres
//   - DATABASE_URL: PostgreSQL connection string
//   - HADEED_LOG_LEVEL: Log level (debug, info, warn, error)
//   - HADEED_CONFIG_PATH: Directory holding hadeed.yml (default: /etc/hadeed)
//   - PORT: Server port (default: 8000)
//
// A .env file in the working directory is read as well.
package main
