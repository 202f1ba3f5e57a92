package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pmonetwork/pmo-network/internal/db"
	"github.com/pmonetwork/pmo-network/internal/events"
	"github.com/pmonetwork/pmo-network/internal/search"
	"github.com/pmonetwork/pmo-network/internal/types"
)

// JobList is one page of public job search results.
type JobList struct {
	Jobs       []db.Job          `json:"jobs"`
	Pagination search.Pagination `json:"pagination"`
}

// handleCreateJob handles POST /api/employer/jobs.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, &ErrValidation{Message: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, newValidationError(err))
		return
	}

	job, err := s.store.CreateJob(r.Context(), &db.JobInput{
		EmployerID:       principal(r).UserID,
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Location:         strings.TrimSpace(req.Location),
		EmploymentType:   strings.TrimSpace(req.EmploymentType),
		RemotePreference: req.RemotePreference,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListEmployerJobs handles GET /api/employer/jobs.
func (s *Server) handleListEmployerJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobsByEmployer(r.Context(), principal(r).UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// ownedJob loads a job and hides it unless the caller posted it.
func (s *Server) ownedJob(r *http.Request, jobID uuid.UUID) (*db.Job, error) {
	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || job.EmployerID != principal(r).UserID {
		return nil, &ErrNotFound{Resource: "job", ID: jobID}
	}
	return job, nil
}

// handleUpdateJobStatus handles PATCH /api/employer/jobs/{id}/status.
// Active and paused jobs may move freely; a closed job stays closed.
func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "job")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.UpdateJobStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, &ErrValidation{Message: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, newValidationError(err))
		return
	}

	job, err := s.ownedJob(r, jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if job.Status == db.JobStatusClosed && req.Status != db.JobStatusClosed {
		s.writeError(w, r, &ErrConflict{Message: "closed jobs cannot be reopened"})
		return
	}

	updated, err := s.store.UpdateJobStatus(r.Context(), principal(r).UserID, jobID, req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if updated == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "job", ID: jobID})
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteJob handles DELETE /api/employer/jobs/{id}.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "job")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	deleted, err := s.store.DeleteJob(r.Context(), principal(r).UserID, jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		s.writeError(w, r, &ErrNotFound{Resource: "job", ID: jobID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListJobApplications handles GET /api/employer/jobs/{id}/applications.
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "job")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.ownedJob(r, jobID); err != nil {
		s.writeError(w, r, err)
		return
	}

	apps, err := s.store.ListApplicationsByJob(r.Context(), jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps})
}

// handleSearchJobs handles GET /api/jobs. Only active jobs are listed.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	filters, page := search.ParseJobQuery(r.URL.Query())

	jobs, total, err := s.store.SearchJobs(r.Context(), filters, page.Limit(), page.Offset())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, JobList{Jobs: jobs, Pagination: search.NewPagination(page, total)})
}

// handleGetJob handles GET /api/jobs/{id}. Paused and closed jobs are not public.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "job")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if job == nil || job.Status != db.JobStatusActive {
		s.writeError(w, r, &ErrNotFound{Resource: "job", ID: jobID})
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleApply handles POST /api/jobs/{id}/applications. The body is optional.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathID(r, "job")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.CreateApplicationRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, newValidationError(err))
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if job == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "job", ID: jobID})
		return
	}
	if job.Status != db.JobStatusActive {
		s.writeError(w, r, &ErrConflict{Message: "job is not accepting applications"})
		return
	}

	candidateID := principal(r).UserID
	appID, err := s.store.CreateApplication(r.Context(), jobID, candidateID, req.CoverLetter)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			err = &ErrConflict{Message: "already applied to this job"}
		}
		s.writeError(w, r, err)
		return
	}

	evt := events.ApplicationSubmitted{
		ApplicationID:   appID,
		JobID:           jobID,
		EmployerID:      job.EmployerID,
		CandidateUserID: candidateID,
		SubmittedAt:     s.now().UTC(),
	}
	if err := s.publisher.Publish(r.Context(), events.ChannelApplicationSubmitted, evt); err != nil {
		log.Warn().Err(err).Str("application_id", appID.String()).Msg("publish application.submitted failed")
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":     appID,
		"jobId":  jobID,
		"status": db.ApplicationStatusSubmitted,
	})
}
