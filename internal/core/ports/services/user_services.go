package services

import (
	"context"

	"github.com/peerpay/peerpay/internal/core/domain"
)

// UserSvcFacade covers signup, credential checks and profile reads.
type UserSvcFacade interface {
	// Register creates a user with the fixed starting balance. A taken
	// username returns apperrors.ErrDuplicate.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Authenticate verifies username/password and returns the user, or
	// apperrors.ErrUnauthorized on any credential mismatch.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
