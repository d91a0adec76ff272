package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartingBalance is credited to every user at signup.
var StartingBalance = decimal.New(10000, -2) // 100.00

// User is an account holder in the ledger.
type User struct {
	UserID       string          `json:"userID"` // Primary Key (UUID)
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"createdAt"`
}
