package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := NewStorageError("list resources", underlying)

	assert.True(t, IsStorageError(err))
	assert.Same(t, underlying, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "list resources")
	assert.Contains(t, err.Error(), "connection refused")

	wrapped := fmt.Errorf("page: %w", err)
	var se *StorageError
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, "list resources", se.Op)

	assert.Same(t, err, NewStorageError("other", err))
	assert.NoError(t, NewStorageError("noop", nil))
	assert.False(t, IsStorageError(underlying))
}

func TestStorageErrorSentinels(t *testing.T) {
	err := NewStorageError("get resource", ErrNotFound)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrNotSingle))
}
