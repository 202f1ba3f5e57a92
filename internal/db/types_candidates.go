package db

import (
	"time"

	"github.com/google/uuid"
)

// Availability values accepted on candidate profiles.
const (
	AvailabilityImmediate    = "immediate"
	AvailabilityTwoWeeks     = "2-weeks"
	AvailabilityOneMonth     = "1-month"
	AvailabilityNotAvailable = "not-available"
)

// ValidAvailability reports whether v is one of the availability enum values.
func ValidAvailability(v string) bool {
	switch v {
	case AvailabilityImmediate, AvailabilityTwoWeeks, AvailabilityOneMonth, AvailabilityNotAvailable:
		return true
	}
	return false
}

// Remote preference values.
const (
	RemotePreferenceRemote = "remote"
	RemotePreferenceHybrid = "hybrid"
	RemotePreferenceOnsite = "onsite"
)

// CandidateProfile is a jobseeker's searchable profile.
type CandidateProfile struct {
	ID                uuid.UUID    `json:"id"`
	UserID            uuid.UUID    `json:"userId"`
	FullName          string       `json:"fullName"`
	JobTitle          string       `json:"jobTitle"`
	Summary           string       `json:"summary"`
	Sector            string       `json:"sector"`
	Location          string       `json:"location"`
	YearsExperience   *int         `json:"yearsExperience"`
	RemotePreference  string       `json:"remotePreference"`
	Availability      string       `json:"availability"`
	EmploymentType    string       `json:"employmentType"`
	SalaryExpectation *float64     `json:"salaryExpectation"`
	DayRate           *float64     `json:"dayRate"`
	RightToWork       string       `json:"rightToWork"`
	ProfilePhotoURL   string       `json:"profilePhotoUrl"`
	IsPublic          bool         `json:"isPublic"`
	IsAnonymous       bool         `json:"isAnonymous"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
	Skills            []Skill      `json:"skills,omitempty"`
	Experiences       []Experience `json:"experiences,omitempty"`
}

// Searchable reports whether the profile may ever appear in employer search results.
func (p *CandidateProfile) Searchable() bool {
	return p.IsPublic && !p.IsAnonymous
}

// Skill belongs to exactly one candidate profile. Position is the display order.
type Skill struct {
	ID          uuid.UUID `json:"id"`
	CandidateID uuid.UUID `json:"candidateId"`
	Name        string    `json:"name"`
	Level       string    `json:"level,omitempty"`
	Category    string    `json:"category,omitempty"`
	Position    int       `json:"position"`
}

// Experience is a prior or current role on a candidate profile.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	CandidateID uuid.UUID  `json:"candidateId"`
	JobTitle    string     `json:"jobTitle"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsCurrent   bool       `json:"isCurrent"`
	Description string     `json:"description,omitempty"`
}

// CandidateFilters are the store-level predicates of an employer candidate search.
// Zero values mean "no constraint".
type CandidateFilters struct {
	Keywords       []string // match-any across name, title, summary and sector
	Location       string
	Skills         []string // match-any against every skill name of the candidate
	MinExp         *int
	MaxExp         *int
	Availability   string
	EmploymentType string // substring match
	MinSalary      *float64
	MaxSalary      *float64
	MinDayRate     *float64
	MaxDayRate     *float64
	RightToWork    []string // match-any, exact
	RemoteOnly     bool
}

// ProfileInput carries the editable fields of a candidate profile.
type ProfileInput struct {
	FullName          string
	JobTitle          string
	Summary           string
	Sector            string
	Location          string
	YearsExperience   *int
	RemotePreference  string
	Availability      string
	EmploymentType    string
	SalaryExpectation *float64
	DayRate           *float64
	RightToWork       string
	ProfilePhotoURL   string
	IsPublic          bool
	IsAnonymous       bool
	Skills            []SkillInput
}

// SkillInput is a skill to store on a profile, in display order.
type SkillInput struct {
	Name     string `json:"name"`
	Level    string `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}
