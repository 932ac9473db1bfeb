package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	supabase "github.com/nedpals/supabase-go"
)

// Compile-time check that SupabaseStore implements Store.
var _ Store = (*SupabaseStore)(nil)

// DefaultSupabaseTable is the table holding key-value rows.
// It needs the columns entry_key (primary key), entry_value and updated_at.
const DefaultSupabaseTable = "kv_entries"

// supabaseRow is one key-value row as exchanged with PostgREST.
type supabaseRow struct {
	Key       string `json:"entry_key"`
	Value     string `json:"entry_value"`
	UpdatedAt int64  `json:"updated_at"`
}

// SupabaseStore uses the nedpals/supabase-go SDK to keep keys as table rows.
type SupabaseStore struct {
	client *supabase.Client
	table  string
}

// NewSupabaseStore creates a SupabaseStore for the given project URL and key.
// An empty table name selects DefaultSupabaseTable.
func NewSupabaseStore(supabaseURL, supabaseKey, table string) (*SupabaseStore, error) {
	if supabaseURL == "" || supabaseKey == "" {
		return nil, errors.New("supabase URL and key are required")
	}
	if table == "" {
		table = DefaultSupabaseTable
	}

	// CreateClient returns *supabase.Client (no error)
	client := supabase.CreateClient(supabaseURL, supabaseKey)
	return &SupabaseStore{client: client, table: table}, nil
}

// Get selects the row stored under key.
func (s *SupabaseStore) Get(ctx context.Context, key string) (string, error) {
	if err := checkCall(ctx, key); err != nil {
		return "", err
	}

	var rows []supabaseRow
	err := s.client.DB.From(s.table).Select("*").Eq("entry_key", key).ExecuteWithContext(ctx, &rows)
	if err != nil {
		return "", fmt.Errorf("select from supabase: %w", err)
	}
	if len(rows) == 0 {
		return "", ErrNotFound
	}
	return rows[0].Value, nil
}

// Put upserts the row stored under key. The response body is not decoded, so
// an empty PostgREST reply is accepted.
func (s *SupabaseStore) Put(ctx context.Context, key, value string) error {
	if err := checkCall(ctx, key); err != nil {
		return err
	}

	row := supabaseRow{Key: key, Value: value, UpdatedAt: time.Now().UTC().UnixMilli()}
	if err := s.client.DB.From(s.table).Upsert(row).ExecuteWithContext(ctx, nil); err != nil {
		return fmt.Errorf("upsert to supabase: %w", err)
	}
	return nil
}

// Delete removes the row stored under key.
func (s *SupabaseStore) Delete(ctx context.Context, key string) error {
	if err := checkCall(ctx, key); err != nil {
		return err
	}

	if err := s.client.DB.From(s.table).Delete().Eq("entry_key", key).ExecuteWithContext(ctx, nil); err != nil {
		return fmt.Errorf("delete from supabase: %w", err)
	}
	return nil
}
