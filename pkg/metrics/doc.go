// Package metrics exposes Prometheus collectors for store calls, stored
// resources, form sessions and API errors.
package metrics
