// Package card turns a stored resource into the display model used by the
// resource grid. Rendering is pure: the same resource and index always give
// the same card.
package card
