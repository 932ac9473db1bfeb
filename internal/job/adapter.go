package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/maauso/joblisting/internal/storage"
)

// DefaultKey is the storage key holding the serialized collection.
const DefaultKey = "jobs_v1"

// Compile-time check that Adapter implements Persistence.
var _ Persistence = (*Adapter)(nil)

// Adapter persists the whole collection as one JSON array under a fixed key
// of a storage.Store. Every save overwrites the previous document.
type Adapter struct {
	store  storage.Store
	key    string
	logger *slog.Logger
}

// NewAdapter creates an Adapter writing under key. An empty key selects DefaultKey.
func NewAdapter(store storage.Store, key string, logger *slog.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		store:  store,
		key:    key,
		logger: logger,
	}
}

// Key returns the storage key used by the adapter.
func (a *Adapter) Key() string {
	return a.key
}

// Read returns the stored collection or a *StorageReadError explaining why
// it could not be used. A missing key wraps storage.ErrNotFound.
func (a *Adapter) Read(ctx context.Context) ([]Record, error) {
	raw, err := a.store.Get(ctx, a.key)
	if err != nil {
		return nil, &StorageReadError{Key: a.key, Err: err}
	}
	records, err := Decode([]byte(raw))
	if err != nil {
		return nil, &StorageReadError{Key: a.key, Err: err}
	}
	return records, nil
}

// Load returns the stored collection, falling back to the seed set when the
// document is missing or corrupt. The cause is logged and never returned.
func (a *Adapter) Load(ctx context.Context) []Record {
	records, err := a.Read(ctx)
	if err != nil {
		a.logger.Warn("using seed jobs",
			slog.String("key", a.key),
			slog.String("reason", err.Error()),
		)
		return Seed()
	}
	return records
}

// Save serializes the whole collection and overwrites the stored value.
func (a *Adapter) Save(ctx context.Context, records []Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if err := a.store.Put(ctx, a.key, string(data)); err != nil {
		return fmt.Errorf("save job collection: %w", err)
	}
	return nil
}

// Clear removes the stored value entirely.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.store.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("clear job collection: %w", err)
	}
	return nil
}

// Encode serializes records as a JSON array. A nil slice encodes as [].
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode job collection: %w", err)
	}
	return data, nil
}

// Decode parses a stored JSON array of records. A JSON null or any value
// that is not an array of record objects is rejected.
func Decode(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode job collection: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("decode job collection: %w", errMalformedDocument)
	}
	return records, nil
}
