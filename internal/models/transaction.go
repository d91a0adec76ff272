package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a transaction row as stored in the database.
type Transaction struct {
	TransactionID int64           `db:"transaction_id"`
	FromUserID    string          `db:"from_user_id"`
	ToUserID      string          `db:"to_user_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
}
