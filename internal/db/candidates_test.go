package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.in))
		})
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%agile%", containsPattern("agile"))
	assert.Equal(t, `%50\%%`, containsPattern("50%"))
}

func TestBuildCandidateWhere_VisibilityAlwaysPresent(t *testing.T) {
	where, args := buildCandidateWhere(CandidateFilters{})

	assert.Equal(t, "WHERE c.is_public = TRUE AND c.is_anonymous = FALSE", where)
	assert.Empty(t, args)
}

func TestBuildCandidateWhere_Keywords(t *testing.T) {
	where, args := buildCandidateWhere(CandidateFilters{Keywords: []string{"agile", "prince2"}})

	require.Equal(t, []any{"%agile%", "%prince2%"}, args)
	assert.Contains(t, where, "c.full_name ILIKE $1 OR c.job_title ILIKE $1 OR c.summary ILIKE $1 OR c.sector ILIKE $1")
	assert.Contains(t, where, "c.full_name ILIKE $2 OR c.job_title ILIKE $2 OR c.summary ILIKE $2 OR c.sector ILIKE $2")
	// Terms are OR-ed inside a single AND-ed group.
	assert.Equal(t, 1, strings.Count(where, "(c.full_name"))
}

func TestBuildCandidateWhere_SkillsUseExistsOverAllSkills(t *testing.T) {
	where, args := buildCandidateWhere(CandidateFilters{Skills: []string{"Agile", "Scrum"}})

	assert.Contains(t, where, "EXISTS (SELECT 1 FROM candidate_skills s WHERE s.candidate_id = c.id AND (s.name ILIKE $1 OR s.name ILIKE $2))")
	assert.Equal(t, []any{"%Agile%", "%Scrum%"}, args)
	assert.NotContains(t, where, "LIMIT")
}

func TestBuildCandidateWhere_AllFilters(t *testing.T) {
	f := CandidateFilters{
		Keywords:       []string{"pmo"},
		Location:       "London",
		Skills:         []string{"agile"},
		MinExp:         intPtr(3),
		MaxExp:         intPtr(10),
		Availability:   AvailabilityImmediate,
		EmploymentType: "contract",
		MinSalary:      floatPtr(40000),
		MaxSalary:      floatPtr(90000),
		MinDayRate:     floatPtr(300),
		MaxDayRate:     floatPtr(700),
		RightToWork:    []string{"UK Citizen", "Settled Status"},
		RemoteOnly:     true,
	}

	where, args := buildCandidateWhere(f)

	for _, cond := range []string{
		"c.location ILIKE $2",
		"c.years_experience >= $4",
		"c.years_experience <= $5",
		"c.availability = $6",
		"c.employment_type ILIKE $7",
		"c.salary_expectation >= $8",
		"c.salary_expectation <= $9",
		"c.day_rate >= $10",
		"c.day_rate <= $11",
		"c.right_to_work = ANY($12)",
		"LOWER(c.remote_preference) IN ('remote', 'hybrid')",
	} {
		assert.Contains(t, where, cond)
	}
	require.Len(t, args, 12)
	assert.Equal(t, "%London%", args[1])
	assert.Equal(t, 3, args[3])
	assert.Equal(t, "%contract%", args[6])
	assert.Equal(t, []string{"UK Citizen", "Settled Status"}, args[11])
}

func TestBuildCandidateWhere_EscapesUserInput(t *testing.T) {
	_, args := buildCandidateWhere(CandidateFilters{Location: "50%_off"})
	assert.Equal(t, []any{`%50\%\_off%`}, args)
}

func TestBuildJobWhere(t *testing.T) {
	where, args := buildJobWhere(JobFilters{})
	assert.Equal(t, "WHERE j.status = $1", where)
	assert.Equal(t, []any{JobStatusActive}, args)

	where, args = buildJobWhere(JobFilters{
		Keywords:       []string{"programme"},
		Location:       "Leeds",
		EmploymentType: "permanent",
		RemoteOnly:     true,
	})
	assert.Contains(t, where, "j.title ILIKE $2 OR j.description ILIKE $2")
	assert.Contains(t, where, "j.location ILIKE $3")
	assert.Contains(t, where, "j.employment_type ILIKE $4")
	assert.Contains(t, where, "LOWER(j.remote_preference) IN ('remote', 'hybrid')")
	assert.Len(t, args, 4)
}

func TestValidAvailability(t *testing.T) {
	for _, v := range []string{"immediate", "2-weeks", "1-month", "not-available"} {
		assert.True(t, ValidAvailability(v), v)
	}
	assert.False(t, ValidAvailability("soon"))
	assert.False(t, ValidAvailability(""))
}

func TestValidJobStatus(t *testing.T) {
	assert.True(t, ValidJobStatus(JobStatusActive))
	assert.True(t, ValidJobStatus(JobStatusPaused))
	assert.True(t, ValidJobStatus(JobStatusClosed))
	assert.False(t, ValidJobStatus("archived"))
}

func TestCandidateProfile_Searchable(t *testing.T) {
	tests := []struct {
		name      string
		public    bool
		anonymous bool
		want      bool
	}{
		{"public named", true, false, true},
		{"private", false, false, false},
		{"anonymous", true, true, false},
		{"private anonymous", false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CandidateProfile{IsPublic: tt.public, IsAnonymous: tt.anonymous}
			assert.Equal(t, tt.want, p.Searchable())
		})
	}
}

func TestUser_Helpers(t *testing.T) {
	assert.False(t, (&User{}).PasswordSet())
	assert.True(t, (&User{PasswordHash: "$2a$12$x"}).PasswordSet())
	assert.True(t, ValidRole(RoleCandidate))
	assert.True(t, ValidRole(RoleEmployer))
	assert.False(t, ValidRole("admin"))
}
