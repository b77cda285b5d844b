// Package form implements the resource submission form.
//
// A Form moves between idle, submitting, success and failure while open.
// Its state is an explicit value changed only through Reduce, so every
// transition can be tested without a store. After a successful submission
// the form schedules its own close; the timer belongs to the form and is
// cancelled by Close, Open, a new submission and Destroy.
//
// Registry hands out one Form per visitor session for the HTTP server.
package form
