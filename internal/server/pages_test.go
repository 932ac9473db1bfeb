package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/joblisting/internal/job"
)

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func validForm() url.Values {
	return url.Values{
		"title":      {"Go Developer"},
		"Company":    {"Gopher Labs"},
		"logo":       {""},
		"posted":     {"2025-10-17"},
		"jobType":    {"IT"},
		"employment": {"Contract"},
		"Skills":     {"Backend"},
		"location":   {"Pokhara, Nepal"},
		"salary":     {"90k"},
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		contains    []string
		notContains []string
	}{
		{
			name:     "all jobs",
			target:   "/",
			contains: []string{"2 jobs found", "Sorted by newest", "Frontend Intern", "Marketing Associate"},
		},
		{
			name:        "location filter",
			target:      "/?location=kath",
			contains:    []string{"1 jobs found", "Frontend Intern"},
			notContains: []string{"Marketing Associate"},
		},
		{
			name:        "case-insensitive query",
			target:      "/?q=FRONTEND",
			contains:    []string{"1 jobs found", "Frontend Intern"},
			notContains: []string{"Marketing Associate"},
		},
		{
			name:     "no matches",
			target:   "/?q=astronaut",
			contains: []string{"0 jobs found", "No jobs match your search/filters."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			rec := serve(t, app, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			body := rec.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)
	rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewJobPage(t *testing.T) {
	app, _ := newTestApp(t)
	rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/jobs/new", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Post a job")
	assert.Contains(t, body, `value="2025-10-17"`)
	assert.Contains(t, body, `value="Enter location"`)
}

func TestEditJobPage(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/jobs/1/edit", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Frontend Intern"`)
	assert.Contains(t, rec.Body.String(), `action="/jobs/1"`)

	rec = serve(t, app, httptest.NewRequest(http.MethodGet, "/jobs/999/edit", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, app, httptest.NewRequest(http.MethodGet, "/jobs/abc/edit", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitNewJob(t *testing.T) {
	app, store := newTestApp(t)

	rec := serve(t, app, formRequest("/jobs", validForm()))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	records := app.Jobs.Records()
	require.Len(t, records, 3)
	assert.Equal(t, job.Record{
		ID:         1001,
		Title:      "Go Developer",
		Company:    "Gopher Labs",
		Posted:     "2025-10-17",
		Category:   job.CategoryIT,
		Employment: job.EmploymentContract,
		Skill:      job.SkillBackend,
		Location:   "Pokhara, Nepal",
		Salary:     "90k",
	}, records[0])
	assert.Equal(t, 1, store.Len())
}

func TestSubmitNewJob_EmptyTitleBlocksSubmission(t *testing.T) {
	app, store := newTestApp(t)
	values := validForm()
	values.Set("title", "")

	rec := serve(t, app, formRequest("/jobs", values))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Title and Company are required")
	// The draft is kept for correction.
	assert.Contains(t, body, `value="Gopher Labs"`)
	assert.Equal(t, 2, app.Jobs.Len())
	assert.Equal(t, 0, store.Len())
}

func TestSubmitJobEdit(t *testing.T) {
	app, _ := newTestApp(t)
	values := validForm()
	values.Set("title", "Senior Go Developer")

	rec := serve(t, app, formRequest("/jobs/2", values))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	r, ok := app.Jobs.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Senior Go Developer", r.Title)
	assert.Equal(t, job.EmploymentContract, r.Employment)
	assert.Equal(t, 2, app.Jobs.Len())
}

func TestSubmitJobEdit_IgnoresFormID(t *testing.T) {
	app, _ := newTestApp(t)
	values := validForm()
	values.Set("id", "1")

	rec := serve(t, app, formRequest("/jobs/2", values))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	first, _ := app.Jobs.Get(1)
	assert.Equal(t, "Frontend Intern", first.Title)
	second, _ := app.Jobs.Get(2)
	assert.Equal(t, "Go Developer", second.Title)
}

func TestSubmitJobEdit_Validation(t *testing.T) {
	app, _ := newTestApp(t)
	values := validForm()
	values.Set("Company", "")

	rec := serve(t, app, formRequest("/jobs/1", values))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title and Company are required")
	r, _ := app.Jobs.Get(1)
	assert.Equal(t, "Acme Co", r.Company)
}

func TestSubmitJobEdit_UnknownID(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, formRequest("/jobs/999", validForm()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, job.Seed(), app.Jobs.Records())
}

func TestDeletePage(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/jobs/2/delete", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Delete this job?")
	assert.Contains(t, rec.Body.String(), "Marketing Associate")

	rec = serve(t, app, httptest.NewRequest(http.MethodGet, "/jobs/999/delete", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitDelete(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		wantLen int
	}{
		{"confirmed", url.Values{"confirm": {"yes"}}, 1},
		{"declined", url.Values{"confirm": {"no"}}, 2},
		{"no answer", url.Values{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)

			rec := serve(t, app, formRequest("/jobs/2/delete", tt.values))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
			assert.Equal(t, tt.wantLen, app.Jobs.Len())
		})
	}
}

func TestSubmitReset(t *testing.T) {
	app, store := newTestApp(t)
	require.NoError(t, app.Jobs.Add(context.Background(), job.Record{ID: 77, Title: "Extra", Company: "Co"}))

	rec := serve(t, app, formRequest("/reset", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, job.Seed(), app.Jobs.Records())
	assert.Equal(t, 0, store.Len())
}

func TestSubmitNewJob_PersistFailure(t *testing.T) {
	app := newFailingApp(t)

	rec := serve(t, app, formRequest("/jobs", validForm()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be saved")
	assert.Equal(t, 3, app.Jobs.Len())
}
