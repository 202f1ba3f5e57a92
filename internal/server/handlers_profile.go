package server

import (
	"net/http"
	"strings"

	"golang.org/x/text/cases"

	"github.com/pmonetwork/pmo-network/internal/db"
	"github.com/pmonetwork/pmo-network/internal/types"
)

// handleGetProfile handles GET /api/candidate/profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.GetProfileByUserID(r.Context(), principal(r).UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if profile == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "profile"})
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateProfile handles PUT /api/candidate/profile. The skill list is replaced wholesale.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, &ErrValidation{Message: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, newValidationError(err))
		return
	}

	profile, err := s.store.UpsertProfile(r.Context(), principal(r).UserID, profileInput(&req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

func profileInput(req *types.UpdateProfileRequest) *db.ProfileInput {
	return &db.ProfileInput{
		FullName:          strings.TrimSpace(req.FullName),
		JobTitle:          strings.TrimSpace(req.JobTitle),
		Summary:           req.Summary,
		Sector:            strings.TrimSpace(req.Sector),
		Location:          strings.TrimSpace(req.Location),
		YearsExperience:   req.YearsExperience,
		RemotePreference:  req.RemotePreference,
		Availability:      req.Availability,
		EmploymentType:    strings.TrimSpace(req.EmploymentType),
		SalaryExpectation: req.SalaryExpectation,
		DayRate:           req.DayRate,
		RightToWork:       strings.TrimSpace(req.RightToWork),
		ProfilePhotoURL:   req.ProfilePhotoURL,
		IsPublic:          req.Public(),
		IsAnonymous:       req.IsAnonymous,
		Skills:            dedupeSkills(req.Skills),
	}
}

// dedupeSkills trims names and drops later duplicates under Unicode case folding,
// keeping the first occurrence's position.
func dedupeSkills(skills []types.SkillRequest) []db.SkillInput {
	fold := cases.Fold()
	seen := make(map[string]bool, len(skills))
	out := make([]db.SkillInput, 0, len(skills))
	for _, sk := range skills {
		name := strings.TrimSpace(sk.Name)
		if name == "" {
			continue
		}
		key := fold.String(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, db.SkillInput{
			Name:     name,
			Level:    strings.TrimSpace(sk.Level),
			Category: strings.TrimSpace(sk.Category),
		})
	}
	return out
}

// handleListMyApplications handles GET /api/candidate/applications.
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := s.store.ListApplicationsByCandidate(r.Context(), principal(r).UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps})
}
