package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/peerpay/peerpay/internal/apperrors"
	"github.com/peerpay/peerpay/internal/core/domain"
	portssvc "github.com/peerpay/peerpay/internal/core/ports/services"
	"github.com/peerpay/peerpay/internal/core/services"
	"github.com/peerpay/peerpay/internal/dto"
)

type RequestServiceTestSuite struct {
	suite.Suite
	mockUserRepo   *MockUserRepository
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.RequestSvcFacade
}

func (suite *RequestServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewRequestService(suite.mockUserRepo, suite.mockLedgerRepo)
}

// --- CreateRequest Tests ---

func (suite *RequestServiceTestSuite) TestCreateRequest_Success() {
	ctx := context.Background()
	payer := &domain.User{UserID: "user-payer", Username: "alice"}
	amount := decimal.RequireFromString("30.00")

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(payer, nil).Once()
	// The stored row points from the payer to the requester.
	suite.mockLedgerRepo.On("SavePendingRequest", ctx, "user-payer", "user-requester", amount).
		Return(&domain.Transaction{TransactionID: 11, FromUserID: "user-payer", ToUserID: "user-requester", Amount: amount}, nil).Once()

	msg, err := suite.service.CreateRequest(ctx, "user-requester", dto.CreateRequestRequest{
		RecipientUsername: "alice",
		Amount:            amount,
	})

	suite.Require().NoError(err)
	suite.Equal("Request of $30.00 sent to alice", msg)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestCreateRequest_PayerNotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateRequest(ctx, "user-requester", dto.CreateRequestRequest{
		RecipientUsername: "ghost",
		Amount:            decimal.RequireFromString("10"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePendingRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RequestServiceTestSuite) TestCreateRequest_SelfRequest() {
	ctx := context.Background()
	self := &domain.User{UserID: "user-1", Username: "alice"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(self, nil).Once()

	_, err := suite.service.CreateRequest(ctx, "user-1", dto.CreateRequestRequest{
		RecipientUsername: "alice",
		Amount:            decimal.RequireFromString("10"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePendingRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RequestServiceTestSuite) TestCreateRequest_InvalidAmount() {
	ctx := context.Background()

	_, err := suite.service.CreateRequest(ctx, "user-1", dto.CreateRequestRequest{
		RecipientUsername: "alice",
		Amount:            decimal.Zero,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByUsername", mock.Anything, mock.Anything)
}

// --- Approve / Reject Tests ---

func (suite *RequestServiceTestSuite) TestApprove_Success() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("ResolveRequest", ctx, int64(11), "user-payer", true).
		Return(&domain.Transaction{TransactionID: 11, Status: domain.StatusCompleted}, nil).Once()

	err := suite.service.Approve(ctx, "user-payer", 11)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestApprove_InvalidRequest() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("ResolveRequest", ctx, int64(99), "user-other", true).
		Return(nil, apperrors.ErrInvalidRequest).Once()

	err := suite.service.Approve(ctx, "user-other", 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidRequest)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestApprove_InsufficientFunds() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("ResolveRequest", ctx, int64(11), "user-payer", true).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	err := suite.service.Approve(ctx, "user-payer", 11)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestReject_Success() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("ResolveRequest", ctx, int64(11), "user-payer", false).
		Return(&domain.Transaction{TransactionID: 11, Status: domain.StatusRejected}, nil).Once()

	err := suite.service.Reject(ctx, "user-payer", 11)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestReject_InvalidRequest() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("ResolveRequest", ctx, int64(99), "user-other", false).
		Return(nil, apperrors.ErrInvalidRequest).Once()

	err := suite.service.Reject(ctx, "user-other", 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidRequest)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- ListPending / ListHistory Tests ---

func (suite *RequestServiceTestSuite) TestListPending_Success() {
	ctx := context.Background()
	amount := decimal.RequireFromString("12.00")
	pending := []domain.PendingRequest{
		{
			Transaction:       domain.Transaction{TransactionID: 3, Amount: amount},
			RequesterUsername: "bob",
		},
	}

	suite.mockLedgerRepo.On("ListPendingForUser", ctx, "user-1").Return(pending, nil).Once()

	resp, err := suite.service.ListPending(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(resp, 1)
	suite.Equal(int64(3), resp[0].ID)
	suite.True(resp[0].Amount.Equal(amount))
	suite.Equal("bob", resp[0].FromUser.Username)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestListPending_Empty() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("ListPendingForUser", ctx, "user-1").Return([]domain.PendingRequest{}, nil).Once()

	resp, err := suite.service.ListPending(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Empty(resp)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestListHistory_Success() {
	ctx := context.Background()
	now := time.Now().UTC()
	history := []domain.HistoryEntry{
		{
			Transaction: domain.Transaction{
				TransactionID: 5,
				Amount:        decimal.RequireFromString("20.00"),
				Type:          domain.TypeSend,
				Status:        domain.StatusCompleted,
				Timestamp:     now,
			},
			FromUsername: "alice",
			ToUsername:   "bob",
		},
	}

	suite.mockLedgerRepo.On("ListHistoryForUser", ctx, "user-1").Return(history, nil).Once()

	resp, err := suite.service.ListHistory(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(resp, 1)
	suite.Equal(int64(5), resp[0].ID)
	suite.Equal("send", resp[0].Type)
	suite.Equal("completed", resp[0].Status)
	suite.Equal("alice", resp[0].From)
	suite.Equal("bob", resp[0].To)
	suite.Equal(now, resp[0].Timestamp)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestListHistory_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockLedgerRepo.On("ListHistoryForUser", ctx, "user-1").Return(nil, expectedErr).Once()

	resp, err := suite.service.ListHistory(ctx, "user-1")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, expectedErr)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestRequestService(t *testing.T) {
	suite.Run(t, new(RequestServiceTestSuite))
}
