package form

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/joblisting/internal/job"
)

var testNow = time.Date(2025, 10, 17, 9, 30, 0, 0, time.UTC)

func fixedID(id int64) func() int64 {
	return func() int64 { return id }
}

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft(testNow)

	assert.Equal(t, int64(0), d.ID)
	assert.False(t, d.IsEdit())
	assert.Equal(t, "2025-10-17", d.Posted)
	assert.Equal(t, "Sales/Marketing", d.Category)
	assert.Equal(t, "Full-time", d.Employment)
	assert.Equal(t, "JavaScript", d.Skill)
	assert.Equal(t, "Enter location", d.Location)
	assert.Empty(t, d.Title)
	assert.Empty(t, d.Company)
	assert.Empty(t, d.Logo)
	assert.Empty(t, d.Salary)
}

func TestDraftFrom(t *testing.T) {
	seed := job.Seed()[0]
	d := DraftFrom(seed, testNow)

	assert.True(t, d.IsEdit())
	assert.Equal(t, Draft{
		ID:         1,
		Title:      "Frontend Intern",
		Company:    "Acme Co",
		Posted:     "2025-09-15",
		Category:   "Sales/Marketing",
		Employment: "Internship",
		Skill:      "C++",
		Location:   "Kathmandu, Nepal",
		Salary:     "Negotiable",
	}, d)
}

func TestDraftFrom_EmptyFieldsUseDefaults(t *testing.T) {
	d := DraftFrom(job.Record{ID: 9, Title: "Sparse", Company: "Injected"}, testNow)

	assert.Equal(t, int64(9), d.ID)
	assert.Equal(t, "2025-10-17", d.Posted)
	assert.Equal(t, "Sales/Marketing", d.Category)
	assert.Equal(t, "Full-time", d.Employment)
	assert.Equal(t, "JavaScript", d.Skill)
	assert.Equal(t, "Enter location", d.Location)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		company     string
		wantMissing []string
	}{
		{"valid", "Go Developer", "Gopher Labs", nil},
		{"missing title", "", "Gopher Labs", []string{"title"}},
		{"missing company", "Go Developer", "", []string{"company"}},
		{"missing both", "", "", []string{"title", "company"}},
		{"whitespace counts as present", "  ", " ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft(testNow)
			d.Title = tt.title
			d.Company = tt.company

			r, err := Validate(d, fixedID(42))
			if tt.wantMissing == nil {
				require.NoError(t, err)
				assert.Equal(t, int64(42), r.ID)
				assert.Equal(t, tt.title, r.Title)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantMissing, vErr.Missing)
			assert.Equal(t, "Title and Company are required", vErr.Message())
			assert.Equal(t, job.Record{}, r)
		})
	}
}

func TestValidate_BuildsCompleteRecord(t *testing.T) {
	d := NewDraft(testNow)
	d.Title = "Backend Engineer"
	d.Company = "Gopher Labs"
	d.Logo = "https://example.com/logo.png"
	d.Category = "IT"
	d.Employment = "Contract"
	d.Skill = "Backend"
	d.Location = "Pokhara, Nepal"
	d.Salary = "80k"

	r, err := Validate(d, fixedID(1757894400123))
	require.NoError(t, err)
	assert.Equal(t, job.Record{
		ID:         1757894400123,
		Title:      "Backend Engineer",
		Company:    "Gopher Labs",
		Logo:       "https://example.com/logo.png",
		Posted:     "2025-10-17",
		Category:   job.CategoryIT,
		Employment: job.EmploymentContract,
		Skill:      job.SkillBackend,
		Location:   "Pokhara, Nepal",
		Salary:     "80k",
	}, r)
	assert.True(t, r.HasRequiredFields())
}

func TestValidate_EditKeepsIDAndSkipsGenerator(t *testing.T) {
	d := DraftFrom(job.Seed()[1], testNow)
	d.Title = "Senior Marketing Associate"

	called := false
	r, err := Validate(d, func() int64 {
		called = true
		return 99
	})
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, int64(2), r.ID)
	assert.Equal(t, "Senior Marketing Associate", r.Title)
}

func TestValidate_FailureDoesNotConsumeID(t *testing.T) {
	called := false
	_, err := Validate(NewDraft(testNow), func() int64 {
		called = true
		return 1
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
}

func TestParseDraft(t *testing.T) {
	values := url.Values{
		"id":         {"1757894400123"},
		"title":      {" Go Developer "},
		"Company":    {"Gopher Labs"},
		"logo":       {""},
		"posted":     {"2025-10-01"},
		"jobType":    {"IT"},
		"employment": {"Freelance"},
		"Skills":     {"Python"},
		"location":   {"Remote"},
		"salary":     {"$50/h"},
	}

	d := ParseDraft(values)
	assert.Equal(t, Draft{
		ID:         1757894400123,
		Title:      " Go Developer ",
		Company:    "Gopher Labs",
		Posted:     "2025-10-01",
		Category:   "IT",
		Employment: "Freelance",
		Skill:      "Python",
		Location:   "Remote",
		Salary:     "$50/h",
	}, d)
}

func TestParseDraft_BadIDIsNewDraft(t *testing.T) {
	assert.Equal(t, int64(0), ParseDraft(url.Values{"id": {"abc"}}).ID)
	assert.Equal(t, int64(0), ParseDraft(url.Values{}).ID)
}

func TestCheck(t *testing.T) {
	type patch struct {
		Title   *string `validate:"omitnil,min=1"`
		Company *string `validate:"omitnil,min=1"`
	}
	empty, name := "", "Gopher Labs"

	t.Run("passes valid struct", func(t *testing.T) {
		assert.NoError(t, Check(patch{Company: &name}))
	})

	t.Run("lists failing fields lowercased in order", func(t *testing.T) {
		err := Check(patch{Title: &empty, Company: &empty})

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, []string{"title", "company"}, vErr.Missing)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("returns non-field errors unchanged", func(t *testing.T) {
		err := Check("not a struct")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrValidation)
	})
}
