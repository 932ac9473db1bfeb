package job

import (
	"context"
	"errors"
	"fmt"
)

// ErrJobNotFound is returned when a record cannot be found by ID.
var ErrJobNotFound = errors.New("job not found")

// ErrDeleteDeclined is returned by Collection.Remove when the confirmation
// gate answers no. Callers treat it as a silent abort.
var ErrDeleteDeclined = errors.New("job: delete declined")

// errMalformedDocument is wrapped when the stored document decodes to nothing usable.
var errMalformedDocument = errors.New("malformed job document")

// StorageReadError describes why the persisted collection could not be read.
// Adapter.Load recovers from it by falling back to the seed set.
type StorageReadError struct {
	Key string
	Err error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("read job collection %q: %v", e.Key, e.Err)
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

// Persistence defines the whole-collection persistence the Collection writes through to.
// It acts as a port in the hexagonal architecture pattern.
type Persistence interface {
	// Load returns the stored collection, or the seed set if it is
	// missing or unreadable. It never fails.
	Load(ctx context.Context) []Record

	// Save overwrites the stored collection with records.
	Save(ctx context.Context, records []Record) error

	// Clear removes the stored collection.
	Clear(ctx context.Context) error
}
