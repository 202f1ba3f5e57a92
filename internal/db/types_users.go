package db

import (
	"time"

	"github.com/google/uuid"
)

// Account roles.
const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
)

// User represents an account on the job board.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PasswordSet reports whether the account has a usable password.
func (u *User) PasswordSet() bool {
	return u.PasswordHash != ""
}

// ValidRole reports whether role is a known account role.
func ValidRole(role string) bool {
	return role == RoleCandidate || role == RoleEmployer
}
