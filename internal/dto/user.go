package dto

import (
	"github.com/peerpay/peerpay/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UserResponse is the authenticated user's own profile (GET /user/me).
type UserResponse struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Balance  decimal.Decimal `json:"balance"`
}

// ToUserResponse converts a domain user for the wire.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.UserID,
		Username: u.Username,
		Balance:  u.Balance,
	}
}
