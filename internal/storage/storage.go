// Package storage provides key-value string stores used to persist the job collection.
// It defines the Store interface (port) for hexagonal architecture and
// implementations backed by memory, local disk, SQLite, S3 and Supabase.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// ErrEmptyKey is returned when an operation is given a blank key.
var ErrEmptyKey = errors.New("storage: key is required")

// Store defines a synchronous key-value string store.
// Values are always read and written whole; there are no partial writes.
type Store interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if nothing is stored.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes the value stored under key.
	// Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// checkCall returns an error if the context is done or the key is blank.
func checkCall(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
