package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/peerpay/peerpay/internal/core/domain"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Transfer(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, fromUserID, toUserID, amount)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockLedgerRepository) SavePendingRequest(ctx context.Context, fromUserID, toUserID string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, fromUserID, toUserID, amount)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockLedgerRepository) ResolveRequest(ctx context.Context, requestID int64, resolverID string, approve bool) (*domain.Transaction, error) {
	args := m.Called(ctx, requestID, resolverID, approve)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockLedgerRepository) ListPendingForUser(ctx context.Context, userID string) ([]domain.PendingRequest, error) {
	args := m.Called(ctx, userID)
	var pending []domain.PendingRequest
	if args.Get(0) != nil {
		pending = args.Get(0).([]domain.PendingRequest)
	}
	return pending, args.Error(1)
}

func (m *MockLedgerRepository) ListHistoryForUser(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, userID)
	var history []domain.HistoryEntry
	if args.Get(0) != nil {
		history = args.Get(0).([]domain.HistoryEntry)
	}
	return history, args.Error(1)
}
