package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Candidate Profile Methods
// -----------------------------------------------------------------------------

// GetProfileByUserID returns the candidate's own profile with all skills and experiences,
// regardless of visibility. Returns nil, nil if the user has no profile yet.
func (db *DB) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*CandidateProfile, error) {
	var p CandidateProfile
	err := scanCandidate(db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidate_profiles c WHERE c.user_id = $1`, userID), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := db.loadProfileRelations(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *DB) loadProfileRelations(ctx context.Context, p *CandidateProfile) error {
	skills, err := db.ListSkillsForCandidates(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return err
	}
	p.Skills = skills[p.ID]

	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, job_title, company, start_date, end_date, is_current, description
		 FROM candidate_experiences
		 WHERE candidate_id = $1
		 ORDER BY start_date DESC, id DESC`,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	p.Experiences = nil
	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.JobTitle, &e.Company, &e.StartDate,
			&e.EndDate, &e.IsCurrent, &e.Description); err != nil {
			return fmt.Errorf("failed to scan experience: %w", err)
		}
		p.Experiences = append(p.Experiences, e)
	}
	return rows.Err()
}

// UpsertProfile creates or updates the candidate's profile and replaces its skill list,
// all in one transaction.
func (db *DB) UpsertProfile(ctx context.Context, userID uuid.UUID, input *ProfileInput) (*CandidateProfile, error) {
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		_, err := upsertProfile(ctx, tx, userID, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return db.GetProfileByUserID(ctx, userID)
}

func upsertProfile(ctx context.Context, tx pgx.Tx, userID uuid.UUID, input *ProfileInput) (uuid.UUID, error) {
	var profileID uuid.UUID
	err := tx.QueryRow(ctx,
		`INSERT INTO candidate_profiles (user_id, full_name, job_title, summary, sector, location,
		                                 years_experience, remote_preference, availability, employment_type,
		                                 salary_expectation, day_rate, right_to_work, profile_photo_url,
		                                 is_public, is_anonymous)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 ON CONFLICT (user_id) DO UPDATE SET
		     full_name = $2, job_title = $3, summary = $4, sector = $5, location = $6,
		     years_experience = $7, remote_preference = $8, availability = $9, employment_type = $10,
		     salary_expectation = $11, day_rate = $12, right_to_work = $13, profile_photo_url = $14,
		     is_public = $15, is_anonymous = $16, updated_at = NOW()
		 RETURNING id`,
		userID, input.FullName, input.JobTitle, input.Summary, input.Sector, input.Location,
		input.YearsExperience, input.RemotePreference, input.Availability, input.EmploymentType,
		input.SalaryExpectation, input.DayRate, input.RightToWork, input.ProfilePhotoURL,
		input.IsPublic, input.IsAnonymous,
	).Scan(&profileID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	if err := replaceSkills(ctx, tx, profileID, input.Skills); err != nil {
		return uuid.Nil, err
	}
	return profileID, nil
}

func replaceSkills(ctx context.Context, tx pgx.Tx, profileID uuid.UUID, skills []SkillInput) error {
	if _, err := tx.Exec(ctx, `DELETE FROM candidate_skills WHERE candidate_id = $1`, profileID); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}
	if len(skills) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, s := range skills {
		batch.Queue(
			`INSERT INTO candidate_skills (candidate_id, name, level, category, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			profileID, s.Name, s.Level, s.Category, i,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert skills: %w", err)
	}
	return nil
}
