// Package types provides the request payloads accepted by the PMO Network API.
package types

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// maxbytes limits the UTF-8 length of a string; max counts runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	})
	return v
}

// SaveCandidateRequest bookmarks a candidate for the calling employer.
type SaveCandidateRequest struct {
	CandidateID string `json:"candidateId" validate:"required,uuid"`
}

// Validate validates the SaveCandidateRequest using the validator.
func (r *SaveCandidateRequest) Validate() error {
	return validate.Struct(r)
}

// SkillRequest is one skill in a profile update, listed in display order.
type SkillRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Level    string `json:"level,omitempty" validate:"max=50"`
	Category string `json:"category,omitempty" validate:"max=50"`
}

// UpdateProfileRequest replaces the caller's candidate profile, including the full skill list.
type UpdateProfileRequest struct {
	FullName          string         `json:"fullName" validate:"required,max=200"`
	JobTitle          string         `json:"jobTitle" validate:"max=200"`
	Summary           string         `json:"summary" validate:"max=5000"`
	Sector            string         `json:"sector" validate:"max=200"`
	Location          string         `json:"location" validate:"max=200"`
	YearsExperience   *int           `json:"yearsExperience" validate:"omitempty,min=0,max=70"`
	RemotePreference  string         `json:"remotePreference" validate:"omitempty,oneof=remote hybrid onsite"`
	Availability      string         `json:"availability" validate:"omitempty,oneof=immediate 2-weeks 1-month not-available"`
	EmploymentType    string         `json:"employmentType" validate:"max=100"`
	SalaryExpectation *float64       `json:"salaryExpectation" validate:"omitempty,gte=0"`
	DayRate           *float64       `json:"dayRate" validate:"omitempty,gte=0"`
	RightToWork       string         `json:"rightToWork" validate:"max=100"`
	ProfilePhotoURL   string         `json:"profilePhotoUrl" validate:"omitempty,url,max=2048"`
	IsPublic          *bool          `json:"isPublic"` // defaults to true
	IsAnonymous       bool           `json:"isAnonymous"`
	Skills            []SkillRequest `json:"skills" validate:"max=100,dive"`
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	return validate.Struct(r)
}

// Public reports whether the profile should be public, defaulting to true when unset.
func (r *UpdateProfileRequest) Public() bool {
	return r.IsPublic == nil || *r.IsPublic
}

// CreateJobRequest posts a new job for the calling employer.
type CreateJobRequest struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Description      string   `json:"description" validate:"max=20000"`
	Location         string   `json:"location" validate:"max=200"`
	EmploymentType   string   `json:"employmentType" validate:"max=100"`
	RemotePreference string   `json:"remotePreference" validate:"omitempty,oneof=remote hybrid onsite"`
	SalaryMin        *float64 `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax        *float64 `json:"salaryMax" validate:"omitempty,gte=0"`
}

// Validate validates the CreateJobRequest and checks the salary range.
func (r *CreateJobRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.SalaryMin != nil && r.SalaryMax != nil && *r.SalaryMin > *r.SalaryMax {
		return fmt.Errorf("salaryMin must not exceed salaryMax")
	}
	return nil
}

// UpdateJobStatusRequest moves a job between active, paused and closed.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused closed"`
}

// Validate validates the UpdateJobStatusRequest using the validator.
func (r *UpdateJobStatusRequest) Validate() error {
	return validate.Struct(r)
}

// CreateApplicationRequest applies the calling candidate to a job.
type CreateApplicationRequest struct {
	CoverLetter string `json:"coverLetter" validate:"max=10000"`
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	return validate.Struct(r)
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,maxbytes=72"`
}

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error {
	return validate.Struct(r)
}
