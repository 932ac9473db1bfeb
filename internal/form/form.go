// Package form holds the draft edited by the job form and the rules that turn
// a draft into a job record.
package form

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/joblisting/internal/job"
)

// Defaults shown in a fresh form.
const (
	DefaultLocation   = "Enter location"
	DefaultCategory   = job.CategorySalesMarketing
	DefaultEmployment = job.EmploymentFullTime
	DefaultSkill      = job.SkillJavaScript
)

// RequiredMessage is the blocking message shown when a required field is empty.
const RequiredMessage = "Title and Company are required"

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("job form validation failed")

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// Draft is the editable, not-yet-validated content of the job form.
// ID is zero for a new listing.
type Draft struct {
	ID         int64  `json:"id,omitempty"`
	Title      string `json:"title" validate:"required"`
	Company    string `json:"Company" validate:"required"`
	Logo       string `json:"logo"`
	Posted     string `json:"posted"`
	Category   string `json:"jobType"`
	Employment string `json:"employment"`
	Skill      string `json:"Skills"`
	Location   string `json:"location"`
	Salary     string `json:"salary"`
}

// IsEdit reports whether the draft edits an existing record.
func (d Draft) IsEdit() bool {
	return d.ID != 0
}

// NewDraft returns the draft for a new listing posted on now's date.
func NewDraft(now time.Time) Draft {
	return Draft{
		Posted:     now.Format(job.DateLayout),
		Category:   string(DefaultCategory),
		Employment: string(DefaultEmployment),
		Skill:      string(DefaultSkill),
		Location:   DefaultLocation,
	}
}

// DraftFrom prefills a draft from an existing record. Empty record fields
// fall back to the defaults of NewDraft(now).
func DraftFrom(r job.Record, now time.Time) Draft {
	def := NewDraft(now)
	or := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return Draft{
		ID:         r.ID,
		Title:      r.Title,
		Company:    r.Company,
		Logo:       r.Logo,
		Posted:     or(r.Posted, def.Posted),
		Category:   or(string(r.Category), def.Category),
		Employment: or(string(r.Employment), def.Employment),
		Skill:      or(string(r.Skill), def.Skill),
		Location:   or(r.Location, def.Location),
		Salary:     r.Salary,
	}
}

// ParseDraft decodes a submitted HTML form. Values are taken as typed;
// a missing or malformed id yields a new-listing draft.
func ParseDraft(values url.Values) Draft {
	id, _ := strconv.ParseInt(strings.TrimSpace(values.Get("id")), 10, 64)
	return Draft{
		ID:         id,
		Title:      values.Get("title"),
		Company:    values.Get("Company"),
		Logo:       values.Get("logo"),
		Posted:     values.Get("posted"),
		Category:   values.Get("jobType"),
		Employment: values.Get("employment"),
		Skill:      values.Get("Skills"),
		Location:   values.Get("location"),
		Salary:     values.Get("salary"),
	}
}

// ValidationError lists the required fields a draft is missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Message returns the text shown to the user.
func (e *ValidationError) Message() string {
	return RequiredMessage
}

// Check runs the struct tags of v through the shared validator. Field
// failures come back as a *ValidationError listing the lowercased field names
// in declaration order; any other validator error is returned unchanged.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, strings.ToLower(fe.StructField()))
	}
	return &ValidationError{Missing: missing}
}

// Validate checks d and returns the record it describes. An existing ID is
// kept; a new draft gets its ID from gen. On failure the error is a
// *ValidationError naming the missing fields in form order.
func Validate(d Draft, gen func() int64) (job.Record, error) {
	if err := Check(d); err != nil {
		return job.Record{}, err
	}

	id := d.ID
	if id == 0 {
		id = gen()
	}
	return job.Record{
		ID:         id,
		Title:      d.Title,
		Company:    d.Company,
		Logo:       d.Logo,
		Posted:     d.Posted,
		Category:   job.Category(d.Category),
		Employment: job.Employment(d.Employment),
		Skill:      job.Skill(d.Skill),
		Location:   d.Location,
		Salary:     d.Salary,
	}, nil
}
