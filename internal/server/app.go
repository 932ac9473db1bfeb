package server

import (
	"log/slog"
	"time"

	"github.com/maauso/joblisting/internal/job"
	"github.com/maauso/joblisting/internal/job/id"
)

// App is the application state shared by every handler. Transient UI state
// (search text, criteria, the record being edited) travels in the request.
type App struct {
	// Jobs is the session's job collection.
	Jobs *job.Collection
	// Now returns the current time; posted dates of new drafts use it.
	Now func() time.Time
	// NewID returns a fresh job identifier.
	NewID func() int64

	logger *slog.Logger
}

// AppOption is a function that configures an App instance.
type AppOption func(*App)

// WithClock sets the clock used for new drafts.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		a.Now = now
	}
}

// WithIDGenerator sets the source of new job identifiers.
func WithIDGenerator(gen func() int64) AppOption {
	return func(a *App) {
		a.NewID = gen
	}
}

// NewApp creates an App serving jobs.
func NewApp(jobs *job.Collection, logger *slog.Logger, opts ...AppOption) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		Jobs:   jobs,
		Now:    time.Now,
		NewID:  id.Generate,
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
