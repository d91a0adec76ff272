package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/peerpay/peerpay/internal/apperrors"
	portsrepo "github.com/peerpay/peerpay/internal/core/ports/repositories"
	portssvc "github.com/peerpay/peerpay/internal/core/ports/services"
	"github.com/peerpay/peerpay/internal/dto"
	"github.com/peerpay/peerpay/internal/middleware"
)

// requestService creates and resolves money requests.
type requestService struct {
	userRepo   portsrepo.UserRepository
	ledgerRepo portsrepo.LedgerRepository
}

// NewRequestService creates a new RequestService.
func NewRequestService(userRepo portsrepo.UserRepository, ledgerRepo portsrepo.LedgerRepository) portssvc.RequestSvcFacade {
	return &requestService{userRepo: userRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.RequestSvcFacade = (*requestService)(nil)

// CreateRequest asks the named user to pay the requester. The stored row's
// fromUserID is the named payer and toUserID the requester, so approval moves
// money in the same from -> to direction as a direct send.
func (s *requestService) CreateRequest(ctx context.Context, requesterID string, req dto.CreateRequestRequest) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount, err := normalizeAmount(req.RecipientUsername, req.Amount)
	if err != nil {
		return "", err
	}

	payer, err := s.userRepo.FindUserByUsername(ctx, req.RecipientUsername)
	if err != nil {
		return "", err
	}

	if payer.UserID == requesterID {
		return "", fmt.Errorf("%w: cannot request money from yourself", apperrors.ErrValidation)
	}

	txn, err := s.ledgerRepo.SavePendingRequest(ctx, payer.UserID, requesterID, amount)
	if err != nil {
		return "", err
	}

	logger.Info("Money request created",
		slog.Int64("transaction_id", txn.TransactionID),
		slog.String("payer_user_id", payer.UserID),
		slog.String("amount", amount.StringFixed(2)),
	)

	return fmt.Sprintf("Request of $%s sent to %s", amount.StringFixed(2), payer.Username), nil
}

// Approve completes the request and moves the money from the resolver to the
// requester. Authorization and the balance check happen inside the store's
// atomic unit.
func (s *requestService) Approve(ctx context.Context, resolverID string, requestID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.ledgerRepo.ResolveRequest(ctx, requestID, resolverID, true)
	if err != nil {
		return err
	}

	logger.Info("Money request approved",
		slog.Int64("transaction_id", txn.TransactionID),
		slog.String("to_user_id", txn.ToUserID),
	)
	return nil
}

// Reject marks the request rejected; no balance changes.
func (s *requestService) Reject(ctx context.Context, resolverID string, requestID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.ledgerRepo.ResolveRequest(ctx, requestID, resolverID, false)
	if err != nil {
		return err
	}

	logger.Info("Money request rejected", slog.Int64("transaction_id", txn.TransactionID))
	return nil
}

// ListPending returns the requests awaiting the user's decision.
func (s *requestService) ListPending(ctx context.Context, userID string) ([]dto.PendingRequestResponse, error) {
	pending, err := s.ledgerRepo.ListPendingForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.PendingRequestResponse, len(pending))
	for i, p := range pending {
		resp[i] = dto.ToPendingRequestResponse(p)
	}
	return resp, nil
}

// ListHistory returns the user's full transaction history, newest first.
func (s *requestService) ListHistory(ctx context.Context, userID string) ([]dto.HistoryEntryResponse, error) {
	history, err := s.ledgerRepo.ListHistoryForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.HistoryEntryResponse, len(history))
	for i, h := range history {
		resp[i] = dto.ToHistoryEntryResponse(h)
	}
	return resp, nil
}
