package db

import (
	"time"

	"github.com/google/uuid"
)

// Job statuses.
const (
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"
)

// Job is a vacancy posted by an employer.
type Job struct {
	ID               uuid.UUID `json:"id"`
	EmployerID       uuid.UUID `json:"employerId"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Location         string    `json:"location"`
	EmploymentType   string    `json:"employmentType"`
	RemotePreference string    `json:"remotePreference"`
	SalaryMin        *float64  `json:"salaryMin"`
	SalaryMax        *float64  `json:"salaryMax"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// JobInput holds the fields of a new job posting.
type JobInput struct {
	EmployerID       uuid.UUID
	Title            string
	Description      string
	Location         string
	EmploymentType   string
	RemotePreference string
	SalaryMin        *float64
	SalaryMax        *float64
}

// JobFilters are the predicates of the public job search. Only active jobs are ever listed.
type JobFilters struct {
	Keywords       []string
	Location       string
	EmploymentType string
	RemoteOnly     bool
}

// Application is a candidate's application to a job.
type Application struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"jobId"`
	JobTitle        string    `json:"jobTitle"`
	CandidateUserID uuid.UUID `json:"candidateUserId"`
	CandidateName   string    `json:"candidateName"`
	CoverLetter     string    `json:"coverLetter,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}
