// Package server provides the HTTP surface of the job board: HTML pages,
// the JSON API, middleware and routes. DTOs are kept apart from domain types.
package server

import (
	"github.com/maauso/joblisting/internal/job"
)

// UpdateJobRequest is the HTTP request body for editing a job.
// Absent fields keep their current value; present required fields must not be empty.
type UpdateJobRequest struct {
	Title      *string `json:"title" validate:"omitnil,min=1"`
	Company    *string `json:"Company" validate:"omitnil,min=1"`
	Logo       *string `json:"logo"`
	Posted     *string `json:"posted"`
	Category   *string `json:"jobType"`
	Employment *string `json:"employment"`
	Skill      *string `json:"Skills"`
	Location   *string `json:"location"`
	Salary     *string `json:"salary"`
}

// Patch converts the request into a collection patch.
func (req UpdateJobRequest) Patch() job.Patch {
	p := job.Patch{
		Title:    req.Title,
		Company:  req.Company,
		Logo:     req.Logo,
		Posted:   req.Posted,
		Location: req.Location,
		Salary:   req.Salary,
	}
	if req.Category != nil {
		v := job.Category(*req.Category)
		p.Category = &v
	}
	if req.Employment != nil {
		v := job.Employment(*req.Employment)
		p.Employment = &v
	}
	if req.Skill != nil {
		v := job.Skill(*req.Skill)
		p.Skill = &v
	}
	return p
}

// ListResponse is the HTTP response for listing jobs.
type ListResponse struct {
	// Count is the number of jobs returned.
	Count int `json:"count"`
	// Jobs is the filtered list, newest posted first.
	Jobs []job.Record `json:"jobs"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
	// Missing lists the required fields a rejected job lacks.
	Missing []string `json:"missing,omitempty"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
