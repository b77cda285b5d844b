package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a single-row lookup matches nothing
var ErrNotFound = errors.New("resource not found")

// ErrNotSingle is returned when a single-row lookup matches several rows
var ErrNotSingle = errors.New("more than one resource matched")

// StorageError reports any failure at the store boundary: network,
// validation or lookup. Err is the backend's error, unmodified.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err for operation op. A nil err stays nil and an
// existing StorageError is returned as is.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err came from the store boundary
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
