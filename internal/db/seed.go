package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Seed Import
// -----------------------------------------------------------------------------

// SeedDateLayout is the date format used for experience dates in seed files.
const SeedDateLayout = "2006-01-02"

// SeedFile is the document accepted by `pmo seed`.
type SeedFile struct {
	Users []SeedUser `json:"users"`
	Jobs  []SeedJob  `json:"jobs"`
}

// SeedUser is an account, optionally with a candidate profile.
type SeedUser struct {
	Email    string       `json:"email"`
	Name     string       `json:"name"`
	Role     string       `json:"role"`
	Password string       `json:"password,omitempty"`
	Profile  *SeedProfile `json:"profile,omitempty"`
}

// SeedProfile is a candidate profile with its skills and experiences.
type SeedProfile struct {
	FullName          string           `json:"full_name"`
	JobTitle          string           `json:"job_title"`
	Summary           string           `json:"summary"`
	Sector            string           `json:"sector"`
	Location          string           `json:"location"`
	YearsExperience   *int             `json:"years_experience"`
	RemotePreference  string           `json:"remote_preference"`
	Availability      string           `json:"availability"`
	EmploymentType    string           `json:"employment_type"`
	SalaryExpectation *float64         `json:"salary_expectation"`
	DayRate           *float64         `json:"day_rate"`
	RightToWork       string           `json:"right_to_work"`
	ProfilePhotoURL   string           `json:"profile_photo_url"`
	IsPublic          *bool            `json:"is_public"`
	IsAnonymous       bool             `json:"is_anonymous"`
	Skills            []SkillInput     `json:"skills"`
	Experiences       []SeedExperience `json:"experiences"`
}

// SeedExperience is a role with dates in SeedDateLayout.
type SeedExperience struct {
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description"`
}

// SeedJob is a job posted by the employer with the given email.
type SeedJob struct {
	EmployerEmail    string   `json:"employer_email"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Location         string   `json:"location"`
	EmploymentType   string   `json:"employment_type"`
	RemotePreference string   `json:"remote_preference"`
	SalaryMin        *float64 `json:"salary_min"`
	SalaryMax        *float64 `json:"salary_max"`
	Status           string   `json:"status"`
}

// SeedResult counts what ImportSeed wrote.
type SeedResult struct {
	Users    int
	Profiles int
	Jobs     int
}

// PasswordHasher hashes a plain password for storage.
type PasswordHasher func(string) (string, error)

func (p *SeedProfile) toInput() *ProfileInput {
	public := true
	if p.IsPublic != nil {
		public = *p.IsPublic
	}
	return &ProfileInput{
		FullName:          p.FullName,
		JobTitle:          p.JobTitle,
		Summary:           p.Summary,
		Sector:            p.Sector,
		Location:          p.Location,
		YearsExperience:   p.YearsExperience,
		RemotePreference:  p.RemotePreference,
		Availability:      p.Availability,
		EmploymentType:    p.EmploymentType,
		SalaryExpectation: p.SalaryExpectation,
		DayRate:           p.DayRate,
		RightToWork:       p.RightToWork,
		ProfilePhotoURL:   p.ProfilePhotoURL,
		IsPublic:          public,
		IsAnonymous:       p.IsAnonymous,
		Skills:            p.Skills,
	}
}

func (e SeedExperience) toExperience(candidateID uuid.UUID) (*Experience, error) {
	start, err := time.Parse(SeedDateLayout, e.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %q: %w", e.StartDate, err)
	}
	exp := &Experience{
		CandidateID: candidateID,
		JobTitle:    e.JobTitle,
		Company:     e.Company,
		StartDate:   start,
		IsCurrent:   e.IsCurrent,
		Description: e.Description,
	}
	if e.EndDate != "" {
		end, err := time.Parse(SeedDateLayout, e.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date %q: %w", e.EndDate, err)
		}
		exp.EndDate = &end
	}
	return exp, nil
}

// ImportSeed writes the seed document in a single transaction. Users are matched by email,
// so importing the same file twice updates rather than duplicates accounts and profiles.
// Experiences of seeded profiles are replaced.
func (db *DB) ImportSeed(ctx context.Context, seed *SeedFile, hash PasswordHasher) (*SeedResult, error) {
	result := &SeedResult{}

	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		employers := make(map[string]uuid.UUID)

		for _, u := range seed.Users {
			passwordHash := ""
			if u.Password != "" {
				h, err := hash(u.Password)
				if err != nil {
					return err
				}
				passwordHash = h
			}

			email := strings.ToLower(strings.TrimSpace(u.Email))
			var userID uuid.UUID
			err := tx.QueryRow(ctx,
				`INSERT INTO users (email, name, role, password_hash)
				 VALUES ($1, $2, $3, $4)
				 ON CONFLICT (email) DO UPDATE SET
				     name = EXCLUDED.name, role = EXCLUDED.role,
				     password_hash = EXCLUDED.password_hash, updated_at = NOW()
				 RETURNING id`,
				email, u.Name, u.Role, passwordHash,
			).Scan(&userID)
			if err != nil {
				return fmt.Errorf("failed to seed user %s: %w", email, err)
			}
			result.Users++
			if u.Role == RoleEmployer {
				employers[email] = userID
			}

			if u.Profile == nil {
				continue
			}
			profileID, err := upsertProfile(ctx, tx, userID, u.Profile.toInput())
			if err != nil {
				return fmt.Errorf("failed to seed profile for %s: %w", email, err)
			}
			if err := replaceExperiences(ctx, tx, profileID, u.Profile.Experiences); err != nil {
				return fmt.Errorf("failed to seed experiences for %s: %w", email, err)
			}
			result.Profiles++
		}

		for _, j := range seed.Jobs {
			employerID, ok := employers[strings.ToLower(strings.TrimSpace(j.EmployerEmail))]
			if !ok {
				return fmt.Errorf("job %q references unknown employer %s", j.Title, j.EmployerEmail)
			}
			status := j.Status
			if status == "" {
				status = JobStatusActive
			}
			// An employer's job is identified by its title, so re-seeding does not repost it.
			tag, err := tx.Exec(ctx,
				`INSERT INTO jobs (employer_id, title, description, location, employment_type,
				                   remote_preference, salary_min, salary_max, status)
				 SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
				 WHERE NOT EXISTS (SELECT 1 FROM jobs WHERE employer_id = $1 AND title = $2)`,
				employerID, j.Title, j.Description, j.Location, j.EmploymentType,
				j.RemotePreference, j.SalaryMin, j.SalaryMax, status,
			)
			if err != nil {
				return fmt.Errorf("failed to seed job %q: %w", j.Title, err)
			}
			result.Jobs += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func replaceExperiences(ctx context.Context, tx pgx.Tx, profileID uuid.UUID, experiences []SeedExperience) error {
	if _, err := tx.Exec(ctx, `DELETE FROM candidate_experiences WHERE candidate_id = $1`, profileID); err != nil {
		return fmt.Errorf("failed to clear experiences: %w", err)
	}
	for _, se := range experiences {
		e, err := se.toExperience(profileID)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO candidate_experiences (candidate_id, job_title, company, start_date, end_date, is_current, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.CandidateID, e.JobTitle, e.Company, e.StartDate, e.EndDate, e.IsCurrent, e.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert experience: %w", err)
		}
	}
	return nil
}
