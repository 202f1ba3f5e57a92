package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Candidate Search
// -----------------------------------------------------------------------------

const candidateColumns = `c.id, c.user_id, c.full_name, c.job_title, c.summary, c.sector, c.location,
	c.years_experience, c.remote_preference, c.availability, c.employment_type,
	c.salary_expectation::float8, c.day_rate::float8, c.right_to_work, c.profile_photo_url,
	c.is_public, c.is_anonymous, c.created_at, c.updated_at`

// candidateOrder keeps pagination stable: id breaks ties between equal experience and creation time.
const candidateOrder = `ORDER BY c.years_experience DESC NULLS LAST, c.created_at DESC, c.id DESC`

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conditions []string
	args       []any
}

// arg registers a value and returns its placeholder.
func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) add(cond string) {
	b.conditions = append(b.conditions, cond)
}

func (b *whereBuilder) clause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conditions, " AND ")
}

// escapeLike escapes LIKE metacharacters so user input only ever matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// containsPattern returns an ILIKE pattern matching s anywhere in the column.
func containsPattern(s string) string {
	return "%" + escapeLike(s) + "%"
}

// buildCandidateWhere translates search filters into a WHERE clause over candidate_profiles (alias c).
// The visibility precondition is always present.
func buildCandidateWhere(f CandidateFilters) (string, []any) {
	b := &whereBuilder{}
	b.add("c.is_public = TRUE")
	b.add("c.is_anonymous = FALSE")

	if len(f.Keywords) > 0 {
		var matches []string
		for _, term := range f.Keywords {
			p := b.arg(containsPattern(term))
			matches = append(matches, fmt.Sprintf(
				"c.full_name ILIKE %[1]s OR c.job_title ILIKE %[1]s OR c.summary ILIKE %[1]s OR c.sector ILIKE %[1]s", p))
		}
		b.add("(" + strings.Join(matches, " OR ") + ")")
	}

	if f.Location != "" {
		b.add("c.location ILIKE " + b.arg(containsPattern(f.Location)))
	}

	if len(f.Skills) > 0 {
		var matches []string
		for _, skill := range f.Skills {
			matches = append(matches, "s.name ILIKE "+b.arg(containsPattern(skill)))
		}
		b.add("EXISTS (SELECT 1 FROM candidate_skills s WHERE s.candidate_id = c.id AND (" +
			strings.Join(matches, " OR ") + "))")
	}

	if f.MinExp != nil {
		b.add("c.years_experience >= " + b.arg(*f.MinExp))
	}
	if f.MaxExp != nil {
		b.add("c.years_experience <= " + b.arg(*f.MaxExp))
	}

	if f.Availability != "" {
		b.add("c.availability = " + b.arg(f.Availability))
	}

	if f.EmploymentType != "" {
		b.add("c.employment_type ILIKE " + b.arg(containsPattern(f.EmploymentType)))
	}

	if f.MinSalary != nil {
		b.add("c.salary_expectation >= " + b.arg(*f.MinSalary))
	}
	if f.MaxSalary != nil {
		b.add("c.salary_expectation <= " + b.arg(*f.MaxSalary))
	}
	if f.MinDayRate != nil {
		b.add("c.day_rate >= " + b.arg(*f.MinDayRate))
	}
	if f.MaxDayRate != nil {
		b.add("c.day_rate <= " + b.arg(*f.MaxDayRate))
	}

	if len(f.RightToWork) > 0 {
		b.add("c.right_to_work = ANY(" + b.arg(f.RightToWork) + ")")
	}

	if f.RemoteOnly {
		b.add("LOWER(c.remote_preference) IN ('remote', 'hybrid')")
	}

	return b.clause(), b.args
}

// SearchCandidates returns one page of searchable profiles matching the filters
// together with the total number of matches across all pages.
func (db *DB) SearchCandidates(ctx context.Context, f CandidateFilters, limit, offset int) ([]CandidateProfile, int, error) {
	whereClause, args := buildCandidateWhere(f)

	var total int
	countQuery := "SELECT COUNT(*) FROM candidate_profiles c " + whereClause
	if err := db.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	if total == 0 {
		return []CandidateProfile{}, 0, nil
	}

	argIndex := len(args) + 1
	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT %s FROM candidate_profiles c %s %s LIMIT $%d OFFSET $%d`,
		candidateColumns, whereClause, candidateOrder, argIndex, argIndex+1,
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search candidates: %w", err)
	}
	defer rows.Close()

	profiles, err := scanCandidates(rows)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func scanCandidate(row pgx.Row, p *CandidateProfile) error {
	return row.Scan(&p.ID, &p.UserID, &p.FullName, &p.JobTitle, &p.Summary, &p.Sector, &p.Location,
		&p.YearsExperience, &p.RemotePreference, &p.Availability, &p.EmploymentType,
		&p.SalaryExpectation, &p.DayRate, &p.RightToWork, &p.ProfilePhotoURL,
		&p.IsPublic, &p.IsAnonymous, &p.CreatedAt, &p.UpdatedAt)
}

func scanCandidates(rows pgx.Rows) ([]CandidateProfile, error) {
	profiles := []CandidateProfile{}
	for rows.Next() {
		var p CandidateProfile
		if err := scanCandidate(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return profiles, nil
}

// GetSearchableCandidate returns a profile only if it is public and not anonymous.
// Returns nil, nil when no such profile exists.
func (db *DB) GetSearchableCandidate(ctx context.Context, id uuid.UUID) (*CandidateProfile, error) {
	var p CandidateProfile
	err := scanCandidate(db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidate_profiles c
		 WHERE c.id = $1 AND c.is_public = TRUE AND c.is_anonymous = FALSE`, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &p, nil
}

// ListSkillsForCandidates loads every skill of the given profiles in display order.
func (db *DB) ListSkillsForCandidates(ctx context.Context, candidateIDs []uuid.UUID) (map[uuid.UUID][]Skill, error) {
	result := make(map[uuid.UUID][]Skill, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return result, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, name, level, category, position
		 FROM candidate_skills
		 WHERE candidate_id = ANY($1)
		 ORDER BY candidate_id, position, name`,
		candidateIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.Name, &s.Level, &s.Category, &s.Position); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		result[s.CandidateID] = append(result[s.CandidateID], s)
	}
	return result, rows.Err()
}

// RecentExperiences returns, per profile, the role with the latest start date.
func (db *DB) RecentExperiences(ctx context.Context, candidateIDs []uuid.UUID) (map[uuid.UUID]Experience, error) {
	result := make(map[uuid.UUID]Experience, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return result, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT ON (candidate_id)
		        id, candidate_id, job_title, company, start_date, end_date, is_current, description
		 FROM candidate_experiences
		 WHERE candidate_id = ANY($1)
		 ORDER BY candidate_id, start_date DESC, id DESC`,
		candidateIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent experiences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.JobTitle, &e.Company, &e.StartDate,
			&e.EndDate, &e.IsCurrent, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		result[e.CandidateID] = e
	}
	return result, rows.Err()
}
