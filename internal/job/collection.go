package job

import (
	"context"
	"log/slog"
	"sync"

	"github.com/maauso/joblisting/internal/job/id"
)

// Patch holds the fields to change on an existing record. Nil fields keep
// their current value. The ID is never patched.
type Patch struct {
	Title      *string
	Company    *string
	Logo       *string
	Posted     *string
	Category   *Category
	Employment *Employment
	Skill      *Skill
	Location   *string
	Salary     *string
}

// PatchFrom builds a patch that overwrites every mutable field with r's values.
func PatchFrom(r Record) Patch {
	return Patch{
		Title:      &r.Title,
		Company:    &r.Company,
		Logo:       &r.Logo,
		Posted:     &r.Posted,
		Category:   &r.Category,
		Employment: &r.Employment,
		Skill:      &r.Skill,
		Location:   &r.Location,
		Salary:     &r.Salary,
	}
}

// Apply returns r merged with the non-nil fields of p.
func (p Patch) Apply(r Record) Record {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Company != nil {
		r.Company = *p.Company
	}
	if p.Logo != nil {
		r.Logo = *p.Logo
	}
	if p.Posted != nil {
		r.Posted = *p.Posted
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Employment != nil {
		r.Employment = *p.Employment
	}
	if p.Skill != nil {
		r.Skill = *p.Skill
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Salary != nil {
		r.Salary = *p.Salary
	}
	return r
}

// ConfirmFunc is the yes/no gate asked before a record is removed.
type ConfirmFunc func(id int64) bool

// Answer returns a ConfirmFunc that always gives the same answer.
func Answer(yes bool) ConfirmFunc {
	return func(int64) bool { return yes }
}

// Collection is the ordered sequence of records owned by the application for
// the lifetime of a session. Every mutation writes the whole sequence through
// to its Persistence before returning.
//
// Mutations hold the lock across the write-through, so one mutation and its
// persistence complete before the next one starts.
type Collection struct {
	mu      sync.RWMutex
	records []Record
	store   Persistence
	logger  *slog.Logger
}

// OpenCollection loads the collection from store.
func OpenCollection(ctx context.Context, store Persistence, logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.Default()
	}
	records := store.Load(ctx)
	for _, r := range records {
		id.Observe(r.ID)
	}
	logger.Info("job collection loaded",
		slog.Int("count", len(records)),
	)
	return &Collection{
		records: records,
		store:   store,
		logger:  logger,
	}
}

// Records returns a copy of the records in storage order.
func (c *Collection) Records() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneRecords(c.records)
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Get returns the record with the given ID.
func (c *Collection) Get(id int64) (Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.records[i], true
	}
	return Record{}, false
}

// Add prepends r and persists the collection.
func (c *Collection) Add(ctx context.Context, r Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id.Observe(r.ID)
	next := make([]Record, 0, len(c.records)+1)
	next = append(next, r)
	next = append(next, c.records...)
	c.records = next

	c.logger.Info("job added",
		slog.Int64("job_id", r.ID),
		slog.String("title", r.Title),
	)
	return c.persist(ctx)
}

// Update merges p into the record with the given ID and persists the collection.
// It reports whether a record matched; an unknown ID leaves the records unchanged.
func (c *Collection) Update(ctx context.Context, id int64, p Patch) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i >= 0 {
		c.records[i] = p.Apply(c.records[i])
		c.logger.Info("job updated",
			slog.Int64("job_id", id),
		)
	}
	return i >= 0, c.persist(ctx)
}

// Remove asks confirm and, on a yes, deletes the record with the given ID and
// persists the collection. A no (or a nil gate) returns ErrDeleteDeclined
// without touching anything. It reports whether a record was deleted.
func (c *Collection) Remove(ctx context.Context, id int64, confirm ConfirmFunc) (bool, error) {
	if confirm == nil || !confirm(id) {
		return false, ErrDeleteDeclined
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i >= 0 {
		next := make([]Record, 0, len(c.records)-1)
		next = append(next, c.records[:i]...)
		next = append(next, c.records[i+1:]...)
		c.records = next
		c.logger.Info("job removed",
			slog.Int64("job_id", id),
		)
	}
	return i >= 0, c.persist(ctx)
}

// ResetAll replaces the collection with the seed set and clears the persisted copy.
func (c *Collection) ResetAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = Seed()
	c.logger.Info("job collection reset")

	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error("failed to clear job collection",
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (c *Collection) indexOf(id int64) int {
	for i := range c.records {
		if c.records[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the current records through. Callers must hold c.mu.
// The in-memory change stands even when the write fails.
func (c *Collection) persist(ctx context.Context) error {
	if err := c.store.Save(ctx, c.records); err != nil {
		c.logger.Error("failed to persist job collection",
			slog.Int("count", len(c.records)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}
