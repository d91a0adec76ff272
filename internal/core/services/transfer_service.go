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
	"github.com/shopspring/decimal"
)

// normalizeAmount applies the shared input checks for sends and requests:
// recipient present, amount positive, then rounded to two decimal places.
// Rounding happens after the positivity check; an amount that rounds to zero
// is still rejected so no zero-value row can reach the store.
func normalizeAmount(recipientUsername string, amount decimal.Decimal) (decimal.Decimal, error) {
	if recipientUsername == "" {
		return decimal.Zero, fmt.Errorf("%w: recipient username is required", apperrors.ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	rounded := amount.Round(2)
	if rounded.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: amount rounds to zero", apperrors.ErrValidation)
	}
	return rounded, nil
}

// transferService validates and executes immediate sends.
type transferService struct {
	userRepo   portsrepo.UserRepository
	ledgerRepo portsrepo.LedgerRepository
}

// NewTransferService creates a new TransferService.
func NewTransferService(userRepo portsrepo.UserRepository, ledgerRepo portsrepo.LedgerRepository) portssvc.TransferSvcFacade {
	return &transferService{userRepo: userRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// SendMoney moves the rounded amount from the sender to the recipient named by
// username. The balance check itself lives inside the store's atomic unit;
// this layer only validates input and resolves the recipient.
func (s *transferService) SendMoney(ctx context.Context, senderID string, req dto.SendMoneyRequest) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount, err := normalizeAmount(req.RecipientUsername, req.Amount)
	if err != nil {
		return "", err
	}

	recipient, err := s.userRepo.FindUserByUsername(ctx, req.RecipientUsername)
	if err != nil {
		return "", err
	}

	// Self-transfers are balance-neutral noise; reject them as invalid input.
	if recipient.UserID == senderID {
		return "", fmt.Errorf("%w: cannot send money to yourself", apperrors.ErrValidation)
	}

	txn, err := s.ledgerRepo.Transfer(ctx, senderID, recipient.UserID, amount)
	if err != nil {
		return "", err
	}

	logger.Info("Transfer completed",
		slog.Int64("transaction_id", txn.TransactionID),
		slog.String("to_user_id", recipient.UserID),
		slog.String("amount", amount.StringFixed(2)),
	)

	return fmt.Sprintf("Sent $%s to %s", amount.StringFixed(2), recipient.Username), nil
}
