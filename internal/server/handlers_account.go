package server

import (
	"net/http"

	"github.com/pmonetwork/pmo-network/internal/types"
)

// handleUpdatePassword handles PUT /api/account/password for any authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req types.UpdatePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, &ErrValidation{Message: "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, newValidationError(err))
		return
	}

	if err := s.accounts.UpdatePassword(r.Context(), principal(r).UserID, req.CurrentPassword, req.NewPassword); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
