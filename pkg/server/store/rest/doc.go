// Package rest implements the store interfaces against a Supabase project
// through its PostgREST endpoint (/rest/v1).
//
// Requests carry the project's public API key in both the apikey and the
// Authorization headers. Single-row lookups use PostgREST's object media
// type so the server enforces the exactly-one-row contract.
package rest
