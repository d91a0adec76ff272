package repositories

import (
	"context"

	"github.com/peerpay/peerpay/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// SaveUser inserts a new user. The username unique constraint is checked
	// atomically with the insert; a taken username returns apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error
	// FindUserByID returns the user or apperrors.ErrNotFound.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByUsername returns the user or apperrors.ErrNotFound.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
