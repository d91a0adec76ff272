package services

import (
	"context"

	"github.com/peerpay/peerpay/internal/dto"
)

// TransferSvcFacade validates and executes immediate sends.
type TransferSvcFacade interface {
	// SendMoney moves req.Amount from the sender to the named recipient and
	// returns a confirmation message. Errors: apperrors.ErrValidation (bad
	// input, self-send), apperrors.ErrNotFound (unknown recipient),
	// apperrors.ErrInsufficientFunds.
	SendMoney(ctx context.Context, senderID string, req dto.SendMoneyRequest) (string, error)
}
