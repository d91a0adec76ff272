package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a user row as stored in the database.
type User struct {
	UserID       string          `db:"user_id"`
	Username     string          `db:"username"`
	PasswordHash string          `db:"password_hash"`
	Balance      decimal.Decimal `db:"balance"`
	CreatedAt    time.Time       `db:"created_at"`
}
