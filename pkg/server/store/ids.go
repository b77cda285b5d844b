package store

import (
	"fmt"

	"github.com/google/uuid"
)

// CheckID rejects an id that cannot name a row. The id column is a uuid, so
// a malformed id is reported as ErrNotFound rather than sent to the backend.
func CheckID(op, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return NewStorageError(op, fmt.Errorf("%w: malformed id %q", ErrNotFound, id))
	}
	return nil
}
