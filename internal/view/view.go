// Package view renders the HTML pages of the job board as templ components.
package view

//go:generate templ generate

import (
	"slices"
	"strconv"
	"strings"

	"github.com/maauso/joblisting/internal/form"
	"github.com/maauso/joblisting/internal/job"
	"github.com/maauso/joblisting/internal/search"
)

// AppName is shown in the page header and title.
const AppName = "Job Board"

// EmptyMessage is shown when no record matches the current filters.
const EmptyMessage = "No jobs match your search/filters."

// ListingData is what the job list page shows.
type ListingData struct {
	Query    string
	Criteria search.Criteria
	// Jobs is already filtered and sorted.
	Jobs []job.Record
}

// JobPath returns the path of a job resource, with optional trailing segments.
func JobPath(id int64, rest ...string) string {
	p := "/jobs/" + strconv.FormatInt(id, 10)
	for _, s := range rest {
		p += "/" + s
	}
	return p
}

func pageTitle(title string) string {
	if title == "" {
		return AppName
	}
	return title + " | " + AppName
}

func formHeading(d form.Draft) string {
	if d.IsEdit() {
		return "Edit job"
	}
	return "Post a job"
}

func formAction(d form.Draft) string {
	if d.IsEdit() {
		return JobPath(d.ID)
	}
	return "/jobs"
}

// withValue keeps a value outside options selectable so editing a stored
// record never silently changes it.
func withValue(options []string, value string) []string {
	if value == "" || slices.Contains(options, value) {
		return options
	}
	return append(slices.Clone(options), value)
}

func initial(company string) string {
	for _, r := range company {
		return strings.ToUpper(string(r))
	}
	return "?"
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
