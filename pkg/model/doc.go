// Package model defines the resource entity shared by the store backends and
// the UI state machines.
//
// The only persisted type is Resource, stored in the "resources" table. Its
// flat columns are what every backend reads and writes; Content gives the
// typed view of the fields that are meaningful for each resource type.
//
// # Resource types
//
//   - reflection: free text body
//   - video: external URL
//   - pdf: optional URL (file uploads are not stored)
//   - link: URL plus description
//   - picture: optional image URL plus caption
//
// # Database Schema
//
//   - id: uuid, assigned by the database
//   - created_at: timestamptz, assigned by the database
//   - tags: text[], ordered
package model
