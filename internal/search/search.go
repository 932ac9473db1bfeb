// Package search filters and orders job records for display.
//
// Apply is a pure function: it never modifies its input and can be called
// again whenever the collection or the request's filters change.
package search

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/maauso/joblisting/internal/job"
)

// Form keys used by ParseCriteria, matching the persisted record keys.
const (
	KeyQuery      = "q"
	KeyCategory   = "jobType"
	KeyEmployment = "employment"
	KeySkill      = "Skills"
	KeyLocation   = "location"
)

// Criteria holds the structured filters. Empty fields match everything.
// Category, Employment and Skill match exactly after case folding;
// Location matches as a case-folded substring.
type Criteria struct {
	Category   string `json:"jobType,omitempty"`
	Employment string `json:"employment,omitempty"`
	Skill      string `json:"Skills,omitempty"`
	Location   string `json:"location,omitempty"`
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// ParseCriteria reads criteria from query or form values.
func ParseCriteria(values url.Values) Criteria {
	return Criteria{
		Category:   strings.TrimSpace(values.Get(KeyCategory)),
		Employment: strings.TrimSpace(values.Get(KeyEmployment)),
		Skill:      strings.TrimSpace(values.Get(KeySkill)),
		Location:   strings.TrimSpace(values.Get(KeyLocation)),
	}
}

// Values encodes the query and criteria back into URL values, omitting empty ones.
func Values(query string, c Criteria) url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set(KeyQuery, query)
	set(KeyCategory, c.Category)
	set(KeyEmployment, c.Employment)
	set(KeySkill, c.Skill)
	set(KeyLocation, c.Location)
	return v
}

// projection is the case-folded view of a record used for matching.
type projection struct {
	title      string
	company    string
	location   string
	skill      string
	category   string
	employment string
}

// Apply returns the records matching query and c, newest posted date first.
//
// Every whitespace-separated token of query must be a substring of the title,
// company, location or skill of a record. Records with equal dates keep their
// input order; unparseable dates sort last. The result is never nil.
func Apply(records []job.Record, query string, c Criteria) []job.Record {
	// A Caser holds state and must not be shared between goroutines.
	fold := cases.Fold()
	f := func(s string) string { return fold.String(s) }

	tokens := strings.Fields(f(query))
	category := f(strings.TrimSpace(c.Category))
	employment := f(strings.TrimSpace(c.Employment))
	skill := f(strings.TrimSpace(c.Skill))
	location := f(strings.TrimSpace(c.Location))

	out := make([]job.Record, 0, len(records))
	for _, r := range records {
		p := projection{
			title:      f(r.Title),
			company:    f(r.Company),
			location:   f(r.Location),
			skill:      f(string(r.Skill)),
			category:   f(string(r.Category)),
			employment: f(string(r.Employment)),
		}

		if !matchesTokens(p, tokens) {
			continue
		}
		if category != "" && p.category != category {
			continue
		}
		if employment != "" && p.employment != employment {
			continue
		}
		if skill != "" && p.skill != skill {
			continue
		}
		if location != "" && !strings.Contains(p.location, location) {
			continue
		}
		out = append(out, r)
	}

	SortNewestFirst(out)
	return out
}

func matchesTokens(p projection, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(p.title, tok) &&
			!strings.Contains(p.company, tok) &&
			!strings.Contains(p.location, tok) &&
			!strings.Contains(p.skill, tok) {
			return false
		}
	}
	return true
}

// SortNewestFirst stable-sorts records in place by descending posted date.
func SortNewestFirst(records []job.Record) {
	type dated struct {
		record job.Record
		posted time.Time
	}
	entries := make([]dated, len(records))
	for i, r := range records {
		t, _ := ParsePosted(r.Posted)
		entries[i] = dated{record: r, posted: t}
	}
	slices.SortStableFunc(entries, func(a, b dated) int {
		return b.posted.Compare(a.posted)
	})
	for i := range entries {
		records[i] = entries[i].record
	}
}

// ParsePosted parses a posted date in YYYY-MM-DD or RFC 3339 form.
// It returns the zero time and false when the value cannot be parsed,
// which orders the record as the earliest.
func ParsePosted(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(job.DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
