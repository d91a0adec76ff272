package repositories

import (
	"context"

	"github.com/peerpay/peerpay/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository is the sole place user balances are mutated. Every mutating
// operation runs as one database transaction: either both balances and the
// transaction row change together, or nothing changes.
type LedgerRepository interface {
	// Transfer debits fromUserID and credits toUserID by amount and records a
	// completed send transaction, all in one atomic unit. The balance check
	// happens under a row lock inside that unit; a payer balance below amount
	// returns apperrors.ErrInsufficientFunds, a missing user apperrors.ErrNotFound.
	Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal) (*domain.Transaction, error)

	// SavePendingRequest records a pending money request. fromUserID is the
	// payer being asked, toUserID the requester who will receive on approval.
	SavePendingRequest(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal) (*domain.Transaction, error)

	// ResolveRequest loads the request under a row lock and, in the same atomic
	// unit, transitions it out of pending. A request that is missing, not
	// pending, not a request, or whose payer is not resolverID returns
	// apperrors.ErrInvalidRequest. On approve the payer's balance is checked and
	// both balances updated exactly as Transfer does; on reject only the status
	// changes. The row lock serializes concurrent resolutions of the same id:
	// the loser observes a non-pending row and gets ErrInvalidRequest.
	ResolveRequest(ctx context.Context, requestID int64, resolverID string, approve bool) (*domain.Transaction, error)

	// ListPendingForUser returns pending requests awaiting userID's decision,
	// newest first, joined with each requester's username.
	ListPendingForUser(ctx context.Context, userID string) ([]domain.PendingRequest, error)

	// ListHistoryForUser returns every transaction where userID is either
	// party, newest first, joined with both usernames.
	ListHistoryForUser(ctx context.Context, userID string) ([]domain.HistoryEntry, error)
}
