package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Application Methods
// -----------------------------------------------------------------------------

// ApplicationStatusSubmitted is the status of a freshly created application.
const ApplicationStatusSubmitted = "submitted"

const applicationColumns = `a.id, a.job_id, j.title, a.candidate_user_id, COALESCE(c.full_name, u.name),
	a.cover_letter, a.status, a.created_at`

const applicationJoins = `FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN users u ON u.id = a.candidate_user_id
	LEFT JOIN candidate_profiles c ON c.user_id = a.candidate_user_id`

// CreateApplication records a candidate's application to a job.
// Returns ErrDuplicate if the candidate already applied.
func (db *DB) CreateApplication(ctx context.Context, jobID, candidateUserID uuid.UUID, coverLetter string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, candidate_user_id, cover_letter, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		jobID, candidateUserID, coverLetter, ApplicationStatusSubmitted,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicate
		}
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

func (db *DB) listApplications(ctx context.Context, where string, arg uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` `+applicationJoins+` WHERE `+where+` ORDER BY a.created_at DESC, a.id DESC`,
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.JobTitle, &a.CandidateUserID, &a.CandidateName,
			&a.CoverLetter, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// ListApplicationsByCandidate returns the candidate's own applications, newest first.
func (db *DB) ListApplicationsByCandidate(ctx context.Context, candidateUserID uuid.UUID) ([]Application, error) {
	return db.listApplications(ctx, "a.candidate_user_id = $1", candidateUserID)
}

// ListApplicationsByJob returns every application to a job, newest first.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	return db.listApplications(ctx, "a.job_id = $1", jobID)
}
