package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes an immediate send from a money request.
type TransactionType string

const (
	TypeSend    TransactionType = "send"
	TypeRequest TransactionType = "request"
)

// TransactionStatus is the lifecycle state of a transaction.
// A send is created completed; a request starts pending and transitions
// exactly once to completed or rejected.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusRejected  TransactionStatus = "rejected"
)

// IsTerminal reports whether no further status transition is permitted.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Transaction is one ledger entry between two distinct users.
// FromUserID is always the payer (or payer-to-be for a pending request) and
// ToUserID the payee, so completed rows read uniformly as "money moved from -> to".
type Transaction struct {
	TransactionID int64             `json:"id"` // Monotonic (BIGSERIAL)
	FromUserID    string            `json:"fromUserID"`
	ToUserID      string            `json:"toUserID"`
	Amount        decimal.Decimal   `json:"amount"` // Positive, two decimal places
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Timestamp     time.Time         `json:"timestamp"` // Creation time, immutable
}

// PendingRequest is a pending money request awaiting the payer's decision,
// joined with the requester's username for display.
type PendingRequest struct {
	Transaction
	RequesterUsername string `json:"requesterUsername"`
}

// HistoryEntry annotates a transaction with both parties' usernames.
type HistoryEntry struct {
	Transaction
	FromUsername string `json:"fromUsername"`
	ToUsername   string `json:"toUsername"`
}
