package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peerpay/peerpay/internal/apperrors"
	"github.com/peerpay/peerpay/internal/core/domain"
	portsrepo "github.com/peerpay/peerpay/internal/core/ports/repositories"
	"github.com/peerpay/peerpay/internal/models"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the repository that owns all balance mutations.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		FromUserID:    m.FromUserID,
		ToUserID:      m.ToUserID,
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.Type),
		Status:        domain.TransactionStatus(m.Status),
		Timestamp:     m.CreatedAt,
	}
}

// lockUsersForUpdate locks both user rows in deterministic ID order so two
// transfers touching the same pair cannot deadlock. Must be called within a
// transaction. Returns apperrors.ErrNotFound if either user is missing.
func (r *PgxLedgerRepository) lockUsersForUpdate(ctx context.Context, tx pgx.Tx, userIDs []string) (map[string]domain.User, error) {
	query := `
		SELECT user_id, username, password_hash, balance, created_at
		FROM users
		WHERE user_id = ANY($1)
		ORDER BY user_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock user rows: %w", err)
	}
	defer rows.Close()

	users := make(map[string]domain.User)
	for rows.Next() {
		var m models.User
		if err := rows.Scan(&m.UserID, &m.Username, &m.PasswordHash, &m.Balance, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan locked user row: %w", err)
		}
		users[m.UserID] = toDomainUser(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked user rows: %w", err)
	}

	for _, id := range userIDs {
		if _, ok := users[id]; !ok {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
		}
	}
	return users, nil
}

// moveBalance applies the two-sided balance update inside tx. The caller has
// already locked both rows and verified the payer can cover the amount.
func (r *PgxLedgerRepository) moveBalance(ctx context.Context, tx pgx.Tx, fromUserID, toUserID string, amount decimal.Decimal) error {
	debit := `UPDATE users SET balance = balance - $2 WHERE user_id = $1;`
	if _, err := tx.Exec(ctx, debit, fromUserID, amount); err != nil {
		return fmt.Errorf("failed to debit user %s: %w", fromUserID, err)
	}
	credit := `UPDATE users SET balance = balance + $2 WHERE user_id = $1;`
	if _, err := tx.Exec(ctx, credit, toUserID, amount); err != nil {
		return fmt.Errorf("failed to credit user %s: %w", toUserID, err)
	}
	return nil
}

// Transfer executes an immediate send as one database transaction: lock both
// users, check the payer's balance under the lock, move the money and record
// the completed transaction row.
func (r *PgxLedgerRepository) Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	users, err := r.lockUsersForUpdate(ctx, tx, []string{fromUserID, toUserID})
	if err != nil {
		return nil, err
	}

	if users[fromUserID].Balance.LessThan(amount) {
		return nil, apperrors.ErrInsufficientFunds
	}

	if err := r.moveBalance(ctx, tx, fromUserID, toUserID, amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := models.Transaction{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		Type:       string(domain.TypeSend),
		Status:     string(domain.StatusCompleted),
		CreatedAt:  now,
	}
	insert := `
		INSERT INTO transactions (from_user_id, to_user_id, amount, type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING transaction_id;
	`
	if err := tx.QueryRow(ctx, insert, m.FromUserID, m.ToUserID, m.Amount, m.Type, m.Status, m.CreatedAt).Scan(&m.TransactionID); err != nil {
		return nil, fmt.Errorf("failed to insert send transaction: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	txn := toDomainTransaction(m)
	return &txn, nil
}

// SavePendingRequest records a money request awaiting the payer's decision.
func (r *PgxLedgerRepository) SavePendingRequest(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal) (*domain.Transaction, error) {
	m := models.Transaction{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		Type:       string(domain.TypeRequest),
		Status:     string(domain.StatusPending),
		CreatedAt:  time.Now().UTC(),
	}
	insert := `
		INSERT INTO transactions (from_user_id, to_user_id, amount, type, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING transaction_id;
	`
	err := r.Pool.QueryRow(ctx, insert, m.FromUserID, m.ToUserID, m.Amount, m.Type, m.Status, m.CreatedAt).Scan(&m.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pending request: %w", err)
	}

	txn := toDomainTransaction(m)
	return &txn, nil
}

// ResolveRequest transitions a pending request out of pending as one database
// transaction. The request row is locked first, so concurrent approve/reject
// calls on the same id serialize and the loser sees a non-pending status.
func (r *PgxLedgerRepository) ResolveRequest(ctx context.Context, requestID int64, resolverID string, approve bool) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var m models.Transaction
	load := `
		SELECT transaction_id, from_user_id, to_user_id, amount, type, status, created_at
		FROM transactions
		WHERE transaction_id = $1
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, load, requestID).Scan(
		&m.TransactionID,
		&m.FromUserID,
		&m.ToUserID,
		&m.Amount,
		&m.Type,
		&m.Status,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidRequest
		}
		return nil, fmt.Errorf("failed to load request %d: %w", requestID, err)
	}

	// Only the designated payer may resolve, and only while still pending.
	if m.Type != string(domain.TypeRequest) || m.Status != string(domain.StatusPending) || m.FromUserID != resolverID {
		return nil, apperrors.ErrInvalidRequest
	}

	newStatus := domain.StatusRejected
	if approve {
		users, err := r.lockUsersForUpdate(ctx, tx, []string{m.FromUserID, m.ToUserID})
		if err != nil {
			return nil, err
		}
		if users[m.FromUserID].Balance.LessThan(m.Amount) {
			return nil, apperrors.ErrInsufficientFunds
		}
		if err := r.moveBalance(ctx, tx, m.FromUserID, m.ToUserID, m.Amount); err != nil {
			return nil, err
		}
		newStatus = domain.StatusCompleted
	}

	update := `UPDATE transactions SET status = $2 WHERE transaction_id = $1;`
	if _, err := tx.Exec(ctx, update, requestID, string(newStatus)); err != nil {
		return nil, fmt.Errorf("failed to update request %d status: %w", requestID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Status = string(newStatus)
	txn := toDomainTransaction(m)
	return &txn, nil
}

// ListPendingForUser returns the requests waiting on userID to pay, with each
// requester's username joined in.
func (r *PgxLedgerRepository) ListPendingForUser(ctx context.Context, userID string) ([]domain.PendingRequest, error) {
	query := `
		SELECT t.transaction_id, t.from_user_id, t.to_user_id, t.amount, t.type, t.status, t.created_at,
		       u.username
		FROM transactions t
		JOIN users u ON u.user_id = t.to_user_id
		WHERE t.from_user_id = $1 AND t.type = 'request' AND t.status = 'pending'
		ORDER BY t.created_at DESC, t.transaction_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending requests for user %s: %w", userID, err)
	}
	defer rows.Close()

	pending := []domain.PendingRequest{}
	for rows.Next() {
		var m models.Transaction
		var requesterUsername string
		if err := rows.Scan(&m.TransactionID, &m.FromUserID, &m.ToUserID, &m.Amount, &m.Type, &m.Status, &m.CreatedAt, &requesterUsername); err != nil {
			return nil, fmt.Errorf("failed to scan pending request row: %w", err)
		}
		pending = append(pending, domain.PendingRequest{
			Transaction:       toDomainTransaction(m),
			RequesterUsername: requesterUsername,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending request rows: %w", err)
	}

	return pending, nil
}

// ListHistoryForUser returns every transaction involving userID, newest first,
// annotated with both parties' usernames.
func (r *PgxLedgerRepository) ListHistoryForUser(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	query := `
		SELECT t.transaction_id, t.from_user_id, t.to_user_id, t.amount, t.type, t.status, t.created_at,
		       fu.username, tu.username
		FROM transactions t
		JOIN users fu ON fu.user_id = t.from_user_id
		JOIN users tu ON tu.user_id = t.to_user_id
		WHERE t.from_user_id = $1 OR t.to_user_id = $1
		ORDER BY t.created_at DESC, t.transaction_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for user %s: %w", userID, err)
	}
	defer rows.Close()

	history := []domain.HistoryEntry{}
	for rows.Next() {
		var m models.Transaction
		var fromUsername, toUsername string
		if err := rows.Scan(&m.TransactionID, &m.FromUserID, &m.ToUserID, &m.Amount, &m.Type, &m.Status, &m.CreatedAt, &fromUsername, &toUsername); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		history = append(history, domain.HistoryEntry{
			Transaction:  toDomainTransaction(m),
			FromUsername: fromUsername,
			ToUsername:   toUsername,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return history, nil
}
