package search

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pmonetwork/pmo-network/internal/db"
)

// Display limits applied when shaping a profile.
const (
	SummaryMaxRunes  = 150
	DisplaySkillsMax = 5
	ellipsis         = "..."
	dateLayout       = "2006-01-02"
)

var stripPolicy = bluemonday.StrictPolicy()

// Summary is the reduced public view of a candidate profile shown to employers.
type Summary struct {
	ID                string            `json:"id"`
	FullName          string            `json:"fullName"`
	JobTitle          string            `json:"jobTitle"`
	Location          string            `json:"location"`
	YearsExperience   *int              `json:"yearsExperience"`
	ProfilePhotoURL   string            `json:"profilePhotoUrl"`
	Summary           string            `json:"summary"`
	Skills            []string          `json:"skills"`
	TotalSkills       int               `json:"totalSkills"`
	Availability      string            `json:"availability"`
	EmploymentType    string            `json:"employmentType"`
	RemotePreference  string            `json:"remotePreference"`
	SalaryExpectation *float64          `json:"salaryExpectation"`
	DayRate           *float64          `json:"dayRate"`
	IsSaved           bool              `json:"isSaved"`
	RecentExperience  *RecentExperience `json:"recentExperience"`
}

// RecentExperience is the latest role on a profile, by start date.
type RecentExperience struct {
	JobTitle  string  `json:"jobTitle"`
	Company   string  `json:"company"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate"`
	IsCurrent bool    `json:"isCurrent"`
}

// TruncateSummary strips markup from s and cuts it to SummaryMaxRunes characters,
// appending an ellipsis only when something was removed.
func TruncateSummary(s string) string {
	plain := strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
	runes := []rune(plain)
	if len(runes) <= SummaryMaxRunes {
		return plain
	}
	return string(runes[:SummaryMaxRunes]) + ellipsis
}

// shape builds the public summary of p. skills must be the full skill list in display order.
func shape(p db.CandidateProfile, skills []db.Skill, recent *db.Experience, saved bool) Summary {
	names := make([]string, 0, min(len(skills), DisplaySkillsMax))
	for i := 0; i < len(skills) && i < DisplaySkillsMax; i++ {
		names = append(names, skills[i].Name)
	}

	return Summary{
		ID:                p.ID.String(),
		FullName:          p.FullName,
		JobTitle:          p.JobTitle,
		Location:          p.Location,
		YearsExperience:   p.YearsExperience,
		ProfilePhotoURL:   p.ProfilePhotoURL,
		Summary:           TruncateSummary(p.Summary),
		Skills:            names,
		TotalSkills:       len(skills),
		Availability:      p.Availability,
		EmploymentType:    p.EmploymentType,
		RemotePreference:  p.RemotePreference,
		SalaryExpectation: p.SalaryExpectation,
		DayRate:           p.DayRate,
		IsSaved:           saved,
		RecentExperience:  shapeExperience(recent),
	}
}

func shapeExperience(e *db.Experience) *RecentExperience {
	if e == nil {
		return nil
	}
	out := &RecentExperience{
		JobTitle:  e.JobTitle,
		Company:   e.Company,
		StartDate: e.StartDate.Format(dateLayout),
		IsCurrent: e.IsCurrent,
	}
	if e.EndDate != nil {
		end := e.EndDate.Format(dateLayout)
		out.EndDate = &end
	}
	return out
}
