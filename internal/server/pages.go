package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/maauso/joblisting/internal/form"
	"github.com/maauso/joblisting/internal/job"
	"github.com/maauso/joblisting/internal/search"
	"github.com/maauso/joblisting/internal/view"
)

// Index handles GET / requests: the filtered, newest-first job list.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := query.Get(search.KeyQuery)
	criteria := search.ParseCriteria(query)

	renderPage(w, r, http.StatusOK, view.Listing(view.ListingData{
		Query:    q,
		Criteria: criteria,
		Jobs:     search.Apply(a.Jobs.Records(), q, criteria),
	}))
}

// NewJobPage handles GET /jobs/new requests.
func (a *App) NewJobPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, view.JobForm(form.NewDraft(a.Now()), ""))
}

// EditJobPage handles GET /jobs/{id}/edit requests.
func (a *App) EditJobPage(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.lookup(w, r)
	if !ok {
		return
	}
	renderPage(w, r, http.StatusOK, view.JobForm(form.DraftFrom(rec, a.Now()), ""))
}

// SubmitNewJob handles POST /jobs requests.
func (a *App) SubmitNewJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, r, http.StatusBadRequest, view.ErrorPage(http.StatusBadRequest, "invalid form submission"))
		return
	}
	draft := form.ParseDraft(r.PostForm)
	draft.ID = 0

	rec, err := form.Validate(draft, a.NewID)
	if err != nil {
		a.renderInvalidDraft(w, r, draft, err)
		return
	}
	if err := a.Jobs.Add(r.Context(), rec); err != nil {
		a.renderPersistFailure(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SubmitJobEdit handles POST /jobs/{id} requests.
func (a *App) SubmitJobEdit(w http.ResponseWriter, r *http.Request) {
	existing, ok := a.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		renderPage(w, r, http.StatusBadRequest, view.ErrorPage(http.StatusBadRequest, "invalid form submission"))
		return
	}
	draft := form.ParseDraft(r.PostForm)
	draft.ID = existing.ID

	rec, err := form.Validate(draft, a.NewID)
	if err != nil {
		a.renderInvalidDraft(w, r, draft, err)
		return
	}
	if _, err := a.Jobs.Update(r.Context(), rec.ID, job.PatchFrom(rec)); err != nil {
		a.renderPersistFailure(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeletePage handles GET /jobs/{id}/delete requests by asking for confirmation.
func (a *App) DeletePage(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.lookup(w, r)
	if !ok {
		return
	}
	renderPage(w, r, http.StatusOK, view.ConfirmDelete(rec))
}

// SubmitDelete handles POST /jobs/{id}/delete requests. Anything but
// confirm=yes returns to the list without changes.
func (a *App) SubmitDelete(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(r)
	if !ok {
		renderPage(w, r, http.StatusNotFound, view.ErrorPage(http.StatusNotFound, job.ErrJobNotFound.Error()))
		return
	}

	confirmed := r.PostFormValue("confirm") == "yes"
	_, err := a.Jobs.Remove(r.Context(), jobID, job.Answer(confirmed))
	if err != nil && !errors.Is(err, job.ErrDeleteDeclined) {
		a.renderPersistFailure(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SubmitReset handles POST /reset requests.
func (a *App) SubmitReset(w http.ResponseWriter, r *http.Request) {
	if err := a.Jobs.ResetAll(r.Context()); err != nil {
		a.renderPersistFailure(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// lookup resolves the {id} path value, rendering a 404 page when it names no job.
func (a *App) lookup(w http.ResponseWriter, r *http.Request) (job.Record, bool) {
	if jobID, ok := pathID(r); ok {
		if rec, found := a.Jobs.Get(jobID); found {
			return rec, true
		}
	}
	renderPage(w, r, http.StatusNotFound, view.ErrorPage(http.StatusNotFound, job.ErrJobNotFound.Error()))
	return job.Record{}, false
}

func (a *App) renderInvalidDraft(w http.ResponseWriter, r *http.Request, d form.Draft, err error) {
	var vErr *form.ValidationError
	if !errors.As(err, &vErr) {
		renderPage(w, r, http.StatusBadRequest, view.ErrorPage(http.StatusBadRequest, err.Error()))
		return
	}
	a.logger.Warn("job validation failed",
		slog.Any("missing", vErr.Missing),
	)
	renderPage(w, r, http.StatusUnprocessableEntity, view.JobForm(d, vErr.Message()))
}

func (a *App) renderPersistFailure(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusInternalServerError,
		view.ErrorPage(http.StatusInternalServerError, "Your change was applied but could not be saved."))
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}
