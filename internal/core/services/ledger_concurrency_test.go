package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/peerpay/peerpay/internal/apperrors"
	"github.com/peerpay/peerpay/internal/core/domain"
	portsrepo "github.com/peerpay/peerpay/internal/core/ports/repositories"
	"github.com/peerpay/peerpay/internal/core/services"
	"github.com/peerpay/peerpay/internal/dto"
)

// fakeLedger is an in-memory stand-in for the SQL-backed ledger. A single
// mutex plays the role of the database's row locks: every mutating operation
// is one critical section, so the balance check and the balance update cannot
// interleave across goroutines.
type fakeLedger struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	byName   map[string]string
	rows     map[int64]*domain.Transaction
	nextID   int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		balances: make(map[string]decimal.Decimal),
		byName:   make(map[string]string),
		rows:     make(map[int64]*domain.Transaction),
		nextID:   1,
	}
}

func (f *fakeLedger) addUser(userID, username string, balance decimal.Decimal) {
	f.balances[userID] = balance
	f.byName[username] = userID
}

// FindUserByUsername lets the fake double as the user lookup the services need.
func (f *fakeLedger) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.byName[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &domain.User{UserID: userID, Username: username, Balance: f.balances[userID]}, nil
}

func (f *fakeLedger) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	balance, ok := f.balances[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &domain.User{UserID: userID, Balance: balance}, nil
}

func (f *fakeLedger) SaveUser(ctx context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.byName[user.Username]; taken {
		return apperrors.ErrDuplicate
	}
	f.balances[user.UserID] = user.Balance
	f.byName[user.Username] = user.UserID
	return nil
}

func (f *fakeLedger) Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	from, ok := f.balances[fromUserID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if _, ok := f.balances[toUserID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	if from.LessThan(amount) {
		return nil, apperrors.ErrInsufficientFunds
	}

	f.balances[fromUserID] = from.Sub(amount)
	f.balances[toUserID] = f.balances[toUserID].Add(amount)

	txn := &domain.Transaction{
		TransactionID: f.nextID,
		FromUserID:    fromUserID,
		ToUserID:      toUserID,
		Amount:        amount,
		Type:          domain.TypeSend,
		Status:        domain.StatusCompleted,
	}
	f.rows[f.nextID] = txn
	f.nextID++
	return txn, nil
}

func (f *fakeLedger) SavePendingRequest(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	txn := &domain.Transaction{
		TransactionID: f.nextID,
		FromUserID:    fromUserID,
		ToUserID:      toUserID,
		Amount:        amount,
		Type:          domain.TypeRequest,
		Status:        domain.StatusPending,
	}
	f.rows[f.nextID] = txn
	f.nextID++
	return txn, nil
}

func (f *fakeLedger) ResolveRequest(ctx context.Context, requestID int64, resolverID string, approve bool) (*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[requestID]
	if !ok || row.Type != domain.TypeRequest || row.Status != domain.StatusPending || row.FromUserID != resolverID {
		return nil, apperrors.ErrInvalidRequest
	}

	if approve {
		from := f.balances[row.FromUserID]
		if from.LessThan(row.Amount) {
			return nil, apperrors.ErrInsufficientFunds
		}
		f.balances[row.FromUserID] = from.Sub(row.Amount)
		f.balances[row.ToUserID] = f.balances[row.ToUserID].Add(row.Amount)
		row.Status = domain.StatusCompleted
	} else {
		row.Status = domain.StatusRejected
	}
	return row, nil
}

func (f *fakeLedger) ListPendingForUser(ctx context.Context, userID string) ([]domain.PendingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pending []domain.PendingRequest
	for _, row := range f.rows {
		if row.FromUserID == userID && row.Type == domain.TypeRequest && row.Status == domain.StatusPending {
			pending = append(pending, domain.PendingRequest{Transaction: *row})
		}
	}
	return pending, nil
}

func (f *fakeLedger) ListHistoryForUser(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var history []domain.HistoryEntry
	for _, row := range f.rows {
		if row.FromUserID == userID || row.ToUserID == userID {
			history = append(history, domain.HistoryEntry{Transaction: *row})
		}
	}
	return history, nil
}

var _ portsrepo.LedgerRepository = (*fakeLedger)(nil)
var _ portsrepo.UserRepository = (*fakeLedger)(nil)

// With a balance covering only N-1 of N identical concurrent sends, exactly
// one must fail with insufficient funds and no balance may go negative.
func TestConcurrentSends_NeverOverdraw(t *testing.T) {
	const n = 20
	amount := decimal.RequireFromString("10.00")
	starting := amount.Mul(decimal.NewFromInt(n - 1))

	ledger := newFakeLedger()
	ledger.addUser("payer", "alice", starting)
	ledger.addUser("payee", "bob", decimal.Zero)

	svc := services.NewTransferService(ledger, ledger)

	errCh := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SendMoney(context.Background(), "payer", dto.SendMoneyRequest{
				RecipientUsername: "bob",
				Amount:            amount,
			})
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	var failures int
	for err := range errCh {
		if err != nil {
			require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
			failures++
		}
	}
	require.Equal(t, 1, failures, "exactly one send must fail")

	require.True(t, ledger.balances["payer"].IsZero(), "payer drained to exactly zero, got %s", ledger.balances["payer"])
	require.True(t, ledger.balances["payee"].Equal(starting), "payee received the full amount, got %s", ledger.balances["payee"])
}

// Two goroutines racing to resolve the same request: one wins, the loser sees
// the no-longer-pending row. Money moves at most once.
func TestConcurrentResolve_SingleWinner(t *testing.T) {
	amount := decimal.RequireFromString("25.00")

	ledger := newFakeLedger()
	ledger.addUser("payer", "alice", decimal.RequireFromString("100.00"))
	ledger.addUser("requester", "bob", decimal.Zero)

	row, err := ledger.SavePendingRequest(context.Background(), "payer", "requester", amount)
	require.NoError(t, err)

	svc := services.NewRequestService(ledger, ledger)

	errCh := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errCh <- svc.Approve(context.Background(), "payer", row.TransactionID)
		}()
	}
	wg.Wait()
	close(errCh)

	var wins, losses int
	for err := range errCh {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, apperrors.ErrInvalidRequest):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, 1, losses)

	require.True(t, ledger.balances["payer"].Equal(decimal.RequireFromString("75.00")))
	require.True(t, ledger.balances["requester"].Equal(amount))
}

// Sends between many user pairs in parallel must conserve the total supply.
func TestConcurrentSends_ConserveTotal(t *testing.T) {
	const users = 8
	const sendsPerUser = 10

	ledger := newFakeLedger()
	total := decimal.Zero
	for i := 0; i < users; i++ {
		ledger.addUser(fmt.Sprintf("user-%d", i), fmt.Sprintf("u%d", i), domain.StartingBalance)
		total = total.Add(domain.StartingBalance)
	}

	svc := services.NewTransferService(ledger, ledger)

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < sendsPerUser; j++ {
				target := fmt.Sprintf("u%d", (i+j+1)%users)
				// Failures from drained balances are fine; overdrafts are not.
				_, _ = svc.SendMoney(context.Background(), fmt.Sprintf("user-%d", i), dto.SendMoneyRequest{
					RecipientUsername: target,
					Amount:            decimal.RequireFromString("7.33"),
				})
			}
		}(i)
	}
	wg.Wait()

	sum := decimal.Zero
	for userID, balance := range ledger.balances {
		require.False(t, balance.IsNegative(), "balance of %s went negative: %s", userID, balance)
		sum = sum.Add(balance)
	}
	require.True(t, sum.Equal(total), "total supply changed: want %s, got %s", total, sum)
}
