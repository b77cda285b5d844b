// Package store provides the resource store client used by the web server,
// the UI state machines and the CLI.
//
// The ResourcesStore interface decouples callers from the backend: the rest
// subpackage talks to a Supabase (PostgREST) project over HTTPS and the gorm
// subpackage talks to PostgreSQL directly. Every operation is one round trip
// with no retries, caching or batching.
//
// # Errors
//
// All backend failures are returned as *StorageError. The underlying error is
// kept unmodified and is reachable with errors.As or errors.Unwrap:
//
//	res, err := s.GetResourceByID(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // zero rows matched
//	}
//
// # Usage
//
//	s := rest.New(rest.Config{URL: cfg.SupabaseURL, APIKey: cfg.SupabaseAnonKey})
//	resources, err := s.GetResources(ctx, store.ListOptions{Limit: 100})
package store
