package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pmonetwork/pmo-network/internal/config"
	"github.com/pmonetwork/pmo-network/internal/db"
)

// AccountStore is the persistence needed for account settings.
type AccountStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// AccountService handles account settings for authenticated users.
type AccountService struct {
	store          AccountStore
	passwordConfig *config.PasswordConfig
}

// NewAccountService creates a new AccountService with the given dependencies
func NewAccountService(store AccountStore, passwordConfig *config.PasswordConfig) *AccountService {
	return &AccountService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// UpdatePassword replaces the user's password after verifying the current one.
func (s *AccountService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if err := s.passwordConfig.CheckLength(newPassword); err != nil {
		return &ErrValidation{Field: "newPassword", Message: fmt.Sprintf("must be at most %d bytes", config.MaxPasswordBytes)}
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, user.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.store.UpdatePassword(ctx, userID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
