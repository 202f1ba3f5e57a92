package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

const jobColumns = `j.id, j.employer_id, j.title, j.description, j.location, j.employment_type,
	j.remote_preference, j.salary_min::float8, j.salary_max::float8, j.status, j.created_at, j.updated_at`

func scanJob(row pgx.Row, j *Job) error {
	return row.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.Location, &j.EmploymentType,
		&j.RemotePreference, &j.SalaryMin, &j.SalaryMax, &j.Status, &j.CreatedAt, &j.UpdatedAt)
}

func scanJobs(rows pgx.Rows) ([]Job, error) {
	jobs := []Job{}
	for rows.Next() {
		var j Job
		if err := scanJob(rows, &j); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// ValidJobStatus reports whether s is a known job status.
func ValidJobStatus(s string) bool {
	return s == JobStatusActive || s == JobStatusPaused || s == JobStatusClosed
}

// CreateJob posts a new active job.
func (db *DB) CreateJob(ctx context.Context, input *JobInput) (*Job, error) {
	var j Job
	err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO jobs AS j (employer_id, title, description, location, employment_type,
		                        remote_preference, salary_min, salary_max)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+jobColumns,
		input.EmployerID, input.Title, input.Description, input.Location, input.EmploymentType,
		input.RemotePreference, input.SalaryMin, input.SalaryMax,
	), &j)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &j, nil
}

// GetJob retrieves a job by ID. Returns nil, nil if not found.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := scanJob(db.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id), &j)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// ListJobsByEmployer returns every job the employer posted, newest first.
func (db *DB) ListJobsByEmployer(ctx context.Context, employerID uuid.UUID) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs j WHERE j.employer_id = $1 ORDER BY j.created_at DESC, j.id DESC`,
		employerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

// UpdateJobStatus changes a job's status if it belongs to the employer.
// Returns nil, nil when no such job exists for the employer.
func (db *DB) UpdateJobStatus(ctx context.Context, employerID, jobID uuid.UUID, status string) (*Job, error) {
	var j Job
	err := scanJob(db.pool.QueryRow(ctx,
		`UPDATE jobs AS j SET status = $3, updated_at = NOW()
		 WHERE j.id = $1 AND j.employer_id = $2
		 RETURNING `+jobColumns,
		jobID, employerID, status,
	), &j)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	return &j, nil
}

// DeleteJob removes a job owned by the employer and reports whether a row was deleted.
func (db *DB) DeleteJob(ctx context.Context, employerID, jobID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND employer_id = $2`, jobID, employerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// buildJobWhere translates public job search filters into a WHERE clause over jobs (alias j).
func buildJobWhere(f JobFilters) (string, []any) {
	b := &whereBuilder{}
	b.add("j.status = " + b.arg(JobStatusActive))

	if len(f.Keywords) > 0 {
		var matches []string
		for _, term := range f.Keywords {
			p := b.arg(containsPattern(term))
			matches = append(matches, fmt.Sprintf("j.title ILIKE %[1]s OR j.description ILIKE %[1]s", p))
		}
		b.add("(" + strings.Join(matches, " OR ") + ")")
	}
	if f.Location != "" {
		b.add("j.location ILIKE " + b.arg(containsPattern(f.Location)))
	}
	if f.EmploymentType != "" {
		b.add("j.employment_type ILIKE " + b.arg(containsPattern(f.EmploymentType)))
	}
	if f.RemoteOnly {
		b.add("LOWER(j.remote_preference) IN ('remote', 'hybrid')")
	}
	return b.clause(), b.args
}

// SearchJobs returns one page of active jobs matching the filters, newest first,
// along with the total match count.
func (db *DB) SearchJobs(ctx context.Context, f JobFilters, limit, offset int) ([]Job, int, error) {
	whereClause, args := buildJobWhere(f)

	var total int
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM jobs j "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	if total == 0 {
		return []Job{}, 0, nil
	}

	argIndex := len(args) + 1
	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT %s FROM jobs j %s ORDER BY j.created_at DESC, j.id DESC LIMIT $%d OFFSET $%d`,
		jobColumns, whereClause, argIndex, argIndex+1,
	)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}
