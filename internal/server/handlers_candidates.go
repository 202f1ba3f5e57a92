package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/pmonetwork/pmo-network/internal/search"
	"github.com/pmonetwork/pmo-network/internal/types"
)

// handleSearchCandidates handles GET /api/employer/candidates/search.
// Malformed filters are ignored rather than rejected.
func (s *Server) handleSearchCandidates(w http.ResponseWriter, r *http.Request) {
	filters, page := search.ParseQuery(r.URL.Query())

	result, err := s.search.Search(r.Context(), principal(r).UserID, filters, page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleSaveCandidate handles POST /api/employer/saved-candidates.
func (s *Server) handleSaveCandidate(w http.ResponseWriter, r *http.Request) {
	var req types.SaveCandidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			err = &ErrValidation{Field: "candidateId", Message: "required"}
		}
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, newValidationError(err))
		return
	}

	candidateID := uuid.MustParse(req.CandidateID)
	if err := s.search.Save(r.Context(), principal(r).UserID, candidateID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"saved": true})
}

// handleUnsaveCandidate handles DELETE /api/employer/saved-candidates?candidateId=.
func (s *Server) handleUnsaveCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, err := uuid.Parse(r.URL.Query().Get("candidateId"))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "candidateId", Message: "uuid"})
		return
	}

	if err := s.search.Unsave(r.Context(), principal(r).UserID, candidateID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"saved": false})
}

// handleListSavedCandidates handles GET /api/employer/saved-candidates.
func (s *Server) handleListSavedCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.search.ListSaved(r.Context(), principal(r).UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"candidates": candidates})
}
