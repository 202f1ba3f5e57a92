package types

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
func failedFields(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func TestSaveCandidateRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid uuid", id: "7f1c2f8e-7a55-4d0b-9d55-3f6c4a8b2e10"},
		{name: "missing", id: "", wantErr: true},
		{name: "not a uuid", id: "candidate-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := SaveCandidateRequest{CandidateID: tt.id}
			err := req.Validate()
			if tt.wantErr {
				assert.Equal(t, []string{"CandidateID"}, failedFields(t, err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateProfileRequest_Validation(t *testing.T) {
	valid := func() UpdateProfileRequest {
		return UpdateProfileRequest{
			FullName:          "Jane Doe",
			JobTitle:          "Programme Manager",
			YearsExperience:   intPtr(12),
			RemotePreference:  "hybrid",
			Availability:      "2-weeks",
			SalaryExpectation: floatPtr(85000),
			ProfilePhotoURL:   "https://cdn.example.com/jane.png",
			Skills:            []SkillRequest{{Name: "PRINCE2", Level: "expert"}, {Name: "Agile"}},
		}
	}

	tests := []struct {
		name       string
		mutate     func(r *UpdateProfileRequest)
		wantFields []string
	}{
		{name: "valid request", mutate: func(r *UpdateProfileRequest) {}},
		{name: "minimal request", mutate: func(r *UpdateProfileRequest) {
			*r = UpdateProfileRequest{FullName: "Sam"}
		}},
		{name: "missing name", mutate: func(r *UpdateProfileRequest) { r.FullName = "" }, wantFields: []string{"FullName"}},
		{name: "negative experience", mutate: func(r *UpdateProfileRequest) { r.YearsExperience = intPtr(-1) }, wantFields: []string{"YearsExperience"}},
		{name: "unknown availability", mutate: func(r *UpdateProfileRequest) { r.Availability = "soon" }, wantFields: []string{"Availability"}},
		{name: "unknown remote preference", mutate: func(r *UpdateProfileRequest) { r.RemotePreference = "mars" }, wantFields: []string{"RemotePreference"}},
		{name: "negative day rate", mutate: func(r *UpdateProfileRequest) { r.DayRate = floatPtr(-10) }, wantFields: []string{"DayRate"}},
		{name: "bad photo url", mutate: func(r *UpdateProfileRequest) { r.ProfilePhotoURL = "not a url" }, wantFields: []string{"ProfilePhotoURL"}},
		{name: "unnamed skill", mutate: func(r *UpdateProfileRequest) { r.Skills = append(r.Skills, SkillRequest{Level: "basic"}) }, wantFields: []string{"Name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, failedFields(t, err))
		})
	}
}

func TestUpdateProfileRequest_Public(t *testing.T) {
	assert.True(t, (&UpdateProfileRequest{}).Public())
	assert.True(t, (&UpdateProfileRequest{IsPublic: boolPtr(true)}).Public())
	assert.False(t, (&UpdateProfileRequest{IsPublic: boolPtr(false)}).Public())
}

func TestUpdateProfileRequest_JSON(t *testing.T) {
	body := `{"fullName":"Jane Doe","yearsExperience":12,"isPublic":false,"skills":[{"name":"PMP","level":"expert"}]}`

	var req UpdateProfileRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, "Jane Doe", req.FullName)
	require.NotNil(t, req.YearsExperience)
	assert.Equal(t, 12, *req.YearsExperience)
	assert.False(t, req.Public())
	assert.Equal(t, []SkillRequest{{Name: "PMP", Level: "expert"}}, req.Skills)
}

func TestCreateJobRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request CreateJobRequest
		wantErr string
	}{
		{name: "valid", request: CreateJobRequest{Title: "PMO Analyst", RemotePreference: "remote", SalaryMin: floatPtr(40000), SalaryMax: floatPtr(50000)}},
		{name: "missing title", request: CreateJobRequest{}, wantErr: "Title"},
		{name: "bad remote preference", request: CreateJobRequest{Title: "PMO Lead", RemotePreference: "sometimes"}, wantErr: "RemotePreference"},
		{name: "inverted salary range", request: CreateJobRequest{Title: "PMO Lead", SalaryMin: floatPtr(60000), SalaryMax: floatPtr(50000)}, wantErr: "salaryMin must not exceed salaryMax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUpdateJobStatusRequest_Validation(t *testing.T) {
	for _, status := range []string{"active", "paused", "closed"} {
		req := UpdateJobStatusRequest{Status: status}
		assert.NoError(t, req.Validate(), status)
	}
	for _, status := range []string{"", "archived", "Active"} {
		req := UpdateJobStatusRequest{Status: status}
		assert.Error(t, req.Validate(), status)
	}
}

func TestCreateApplicationRequest_Validation(t *testing.T) {
	assert.NoError(t, (&CreateApplicationRequest{}).Validate())
	assert.NoError(t, (&CreateApplicationRequest{CoverLetter: "I have run three PMOs."}).Validate())

	long := CreateApplicationRequest{CoverLetter: strings.Repeat("a", 10001)}
	assert.Equal(t, []string{"CoverLetter"}, failedFields(t, long.Validate()))
}

func TestUpdatePasswordRequest_Validation(t *testing.T) {
	tests := []struct {
		name       string
		request    UpdatePasswordRequest
		wantFields []string
	}{
		{name: "valid", request: UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}},
		{name: "missing current", request: UpdatePasswordRequest{NewPassword: "new-password"}, wantFields: []string{"CurrentPassword"}},
		{name: "short new", request: UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: "short"}, wantFields: []string{"NewPassword"}},
		{name: "72 ascii bytes", request: UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: strings.Repeat("a", 72)}},
		{name: "73 ascii bytes", request: UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: strings.Repeat("a", 73)}, wantFields: []string{"NewPassword"}},
		{name: "40 two-byte runes", request: UpdatePasswordRequest{CurrentPassword: "old-password", NewPassword: strings.Repeat("é", 40)}, wantFields: []string{"NewPassword"}},
		{name: "both missing", request: UpdatePasswordRequest{}, wantFields: []string{"CurrentPassword", "NewPassword"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, failedFields(t, err))
		})
	}
}
