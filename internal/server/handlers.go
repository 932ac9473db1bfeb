package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/maauso/joblisting/internal/form"
	"github.com/maauso/joblisting/internal/job"
	"github.com/maauso/joblisting/internal/search"
)

// Health handles GET /health requests.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ListJobs handles GET /api/jobs requests.
func (a *App) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	jobs := search.Apply(a.Jobs.Records(), query.Get(search.KeyQuery), search.ParseCriteria(query))
	writeJSON(w, http.StatusOK, ListResponse{Count: len(jobs), Jobs: jobs})
}

// GetJob handles GET /api/jobs/{id} requests.
func (a *App) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid job ID", "INVALID_JOB_ID")
		return
	}

	rec, found := a.Jobs.Get(jobID)
	if !found {
		writeError(w, http.StatusNotFound, job.ErrJobNotFound.Error(), "JOB_NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// CreateJob handles POST /api/jobs requests. Absent fields take the defaults
// of a new form.
func (a *App) CreateJob(w http.ResponseWriter, r *http.Request) {
	draft := form.NewDraft(a.Now())
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		a.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}
	draft.ID = 0

	rec, err := form.Validate(draft, a.NewID)
	if err != nil {
		a.writeValidationError(w, err)
		return
	}

	if err := a.Jobs.Add(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist jobs", "PERSIST_FAILED")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// UpdateJob handles PUT /api/jobs/{id} requests.
func (a *App) UpdateJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid job ID", "INVALID_JOB_ID")
		return
	}

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}

	if err := form.Check(req); err != nil {
		a.writeValidationError(w, err)
		return
	}

	if _, found := a.Jobs.Get(jobID); !found {
		writeError(w, http.StatusNotFound, job.ErrJobNotFound.Error(), "JOB_NOT_FOUND")
		return
	}
	if _, err := a.Jobs.Update(r.Context(), jobID, req.Patch()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist jobs", "PERSIST_FAILED")
		return
	}

	rec, found := a.Jobs.Get(jobID)
	if !found {
		writeError(w, http.StatusNotFound, job.ErrJobNotFound.Error(), "JOB_NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteJob handles DELETE /api/jobs/{id} requests. Only confirm=true removes
// the job; any other value leaves the collection unchanged.
func (a *App) DeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid job ID", "INVALID_JOB_ID")
		return
	}

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	removed, err := a.Jobs.Remove(r.Context(), jobID, job.Answer(confirmed))
	switch {
	case errors.Is(err, job.ErrDeleteDeclined):
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to persist jobs", "PERSIST_FAILED")
	case !removed:
		writeError(w, http.StatusNotFound, job.ErrJobNotFound.Error(), "JOB_NOT_FOUND")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// ResetJobs handles POST /api/reset requests.
func (a *App) ResetJobs(w http.ResponseWriter, r *http.Request) {
	if err := a.Jobs.ResetAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear stored jobs", "PERSIST_FAILED")
		return
	}
	jobs := a.Jobs.Records()
	writeJSON(w, http.StatusOK, ListResponse{Count: len(jobs), Jobs: jobs})
}

func (a *App) writeValidationError(w http.ResponseWriter, err error) {
	var vErr *form.ValidationError
	if !errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}
	a.logger.Warn("job validation failed",
		slog.Any("missing", vErr.Missing),
	)
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:   vErr.Message(),
		Code:    "VALIDATION_ERROR",
		Missing: vErr.Missing,
	})
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, bool) {
	v, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return v, err == nil
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
