package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maauso/joblisting/internal/job"
	"github.com/maauso/joblisting/internal/storage"
)

var testNow = time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC)

// mockPersistence implements job.Persistence for testing write failures.
type mockPersistence struct {
	mock.Mock
}

func (m *mockPersistence) Load(ctx context.Context) []job.Record {
	args := m.Called(ctx)
	return args.Get(0).([]job.Record)
}

func (m *mockPersistence) Save(ctx context.Context, records []job.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *mockPersistence) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sequence(start int64) func() int64 {
	n := start
	return func() int64 {
		n++
		return n
	}
}

func newTestApp(t *testing.T) (*App, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	adapter := job.NewAdapter(store, "", testLogger())
	jobs := job.OpenCollection(context.Background(), adapter, testLogger())
	app := NewApp(jobs, testLogger(),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(sequence(1000)),
	)
	return app, store
}

func newFailingApp(t *testing.T) *App {
	t.Helper()
	persist := &mockPersistence{}
	persist.On("Load", mock.Anything).Return(job.Seed())
	persist.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	persist.On("Clear", mock.Anything).Return(errors.New("disk full"))
	jobs := job.OpenCollection(context.Background(), persist, testLogger())
	return NewApp(jobs, testLogger(), WithClock(func() time.Time { return testNow }), WithIDGenerator(sequence(1000)))
}

func serve(t *testing.T, app *App, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewRouter(app, testLogger(), DefaultConfig()).ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	app.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestListJobs(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   []int64
	}{
		{"all newest first", "/api/jobs", []int64{1, 2}},
		{"query", "/api/jobs?q=bright", []int64{2}},
		{"location substring", "/api/jobs?location=kath", []int64{1}},
		{"category exact", "/api/jobs?jobType=it", []int64{2}},
		{"skill exact", "/api/jobs?Skills=c%2B%2B", []int64{1}},
		{"employment exact", "/api/jobs?employment=Contract", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			rec := serve(t, app, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var resp ListResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, len(tt.want), resp.Count)
			assert.NotNil(t, resp.Jobs)
			got := make([]int64, 0, len(resp.Jobs))
			for _, r := range resp.Jobs {
				got = append(got, r.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetJob(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/2", nil)
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()
	app.GetJob(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp job.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, job.Seed()[1], resp)
}

func TestGetJob_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/api/jobs/999", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "JOB_NOT_FOUND", decodeError(t, rec).Code)
}

func TestGetJob_InvalidID(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/api/jobs/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JOB_ID", decodeError(t, rec).Code)
}

func TestCreateJob_Success(t *testing.T) {
	app, store := newTestApp(t)

	rec := serve(t, app, jsonRequest(http.MethodPost, "/api/jobs",
		`{"title":"Go Developer","Company":"Gopher Labs","jobType":"IT","Skills":"Backend","salary":"90k"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var created job.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, int64(1001), created.ID)
	assert.Equal(t, "Go Developer", created.Title)
	assert.Equal(t, job.CategoryIT, created.Category)
	assert.Equal(t, job.SkillBackend, created.Skill)
	// Absent fields take the new-form defaults.
	assert.Equal(t, "2025-10-17", created.Posted)
	assert.Equal(t, job.EmploymentFullTime, created.Employment)
	assert.Equal(t, "Enter location", created.Location)

	records := app.Jobs.Records()
	require.Len(t, records, 3)
	assert.Equal(t, created, records[0])

	raw, err := store.Get(context.Background(), job.DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"title":"Go Developer"`)
}

func TestCreateJob_IgnoresClientID(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, jsonRequest(http.MethodPost, "/api/jobs", `{"id":1,"title":"Dup","Company":"Co"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 3, app.Jobs.Len())
	r, ok := app.Jobs.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Frontend Intern", r.Title)
}

func TestCreateJob_ValidationError(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMissing []string
	}{
		{"missing title", `{"Company":"Gopher Labs"}`, []string{"title"}},
		{"missing company", `{"title":"Go Developer"}`, []string{"company"}},
		{"missing both", `{}`, []string{"title", "company"}},
		{"empty strings", `{"title":"","Company":""}`, []string{"title", "company"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)

			rec := serve(t, app, jsonRequest(http.MethodPost, "/api/jobs", tt.body))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, "VALIDATION_ERROR", resp.Code)
			assert.Equal(t, "Title and Company are required", resp.Error)
			assert.Equal(t, tt.wantMissing, resp.Missing)
			assert.Equal(t, 2, app.Jobs.Len())
		})
	}
}

func TestCreateJob_InvalidJSON(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, jsonRequest(http.MethodPost, "/api/jobs", "invalid json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JSON", decodeError(t, rec).Code)
}

func TestCreateJob_PersistFailure(t *testing.T) {
	app := newFailingApp(t)

	rec := serve(t, app, jsonRequest(http.MethodPost, "/api/jobs", `{"title":"T","Company":"C"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "PERSIST_FAILED", decodeError(t, rec).Code)
	// The in-memory change stands.
	assert.Equal(t, 3, app.Jobs.Len())
}

func TestUpdateJob_MergesFields(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, jsonRequest(http.MethodPut, "/api/jobs/1", `{"title":"Senior Frontend Intern","Skills":"JavaScript"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var updated job.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Senior Frontend Intern", updated.Title)
	assert.Equal(t, job.SkillJavaScript, updated.Skill)
	assert.Equal(t, "Acme Co", updated.Company)
	assert.Equal(t, "Kathmandu, Nepal", updated.Location)

	stored, _ := app.Jobs.Get(1)
	assert.Equal(t, updated, stored)
}

func TestUpdateJob_RejectsEmptyRequiredField(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, jsonRequest(http.MethodPut, "/api/jobs/1", `{"title":"","Company":""}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Equal(t, []string{"title", "company"}, resp.Missing)

	r, _ := app.Jobs.Get(1)
	assert.Equal(t, "Frontend Intern", r.Title)
}

func TestUpdateJob_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, jsonRequest(http.MethodPut, "/api/jobs/999", `{"title":"ghost"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "JOB_NOT_FOUND", decodeError(t, rec).Code)
	assert.Equal(t, job.Seed(), app.Jobs.Records())
}

func TestUpdateJob_InvalidJSON(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, jsonRequest(http.MethodPut, "/api/jobs/1", "{"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JSON", decodeError(t, rec).Code)
}

func TestDeleteJob(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantLen    int
	}{
		{"unconfirmed is a silent no-op", "/api/jobs/1", http.StatusNoContent, 2},
		{"confirm=false is a silent no-op", "/api/jobs/1?confirm=false", http.StatusNoContent, 2},
		{"confirmed", "/api/jobs/1?confirm=true", http.StatusNoContent, 1},
		{"confirmed unknown id", "/api/jobs/999?confirm=true", http.StatusNotFound, 2},
		{"invalid id", "/api/jobs/x?confirm=true", http.StatusBadRequest, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)

			rec := serve(t, app, httptest.NewRequest(http.MethodDelete, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLen, app.Jobs.Len())
		})
	}
}

func TestDeleteJob_RemovedJobNeverListed(t *testing.T) {
	app, _ := newTestApp(t)

	rec := serve(t, app, httptest.NewRequest(http.MethodDelete, "/api/jobs/2?confirm=true", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, app, httptest.NewRequest(http.MethodGet, "/api/jobs?q=bright", nil))
	var resp ListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 0, resp.Count)
}

func TestResetJobs(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, app.Jobs.Add(ctx, job.Record{ID: 50, Title: "Extra", Company: "Co"}))
	require.Equal(t, 1, store.Len())

	rec := serve(t, app, httptest.NewRequest(http.MethodPost, "/api/reset", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, job.Seed(), app.Jobs.Records())
	assert.Equal(t, 0, store.Len())
}

func TestResetJobs_ClearFailure(t *testing.T) {
	app := newFailingApp(t)

	rec := serve(t, app, httptest.NewRequest(http.MethodPost, "/api/reset", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "PERSIST_FAILED", decodeError(t, rec).Code)
}

func TestRouter_Integration(t *testing.T) {
	app, _ := newTestApp(t)
	router := NewRouter(app, testLogger(), DefaultConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	body, _ := json.Marshal(map[string]string{"title": "Platform Engineer", "Company": "Infra Co", "posted": "2025-12-01"})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created job.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs?q=pLaTfOrM", nil))
	var list ListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, created.ID, list.Jobs[0].ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, created.ID, list.Jobs[0].ID, "newest posted date first")
}
