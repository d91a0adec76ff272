package services

import (
	"context"

	"github.com/peerpay/peerpay/internal/dto"
)

// RequestSvcFacade creates and resolves money requests.
type RequestSvcFacade interface {
	// CreateRequest records a pending request asking the named user to pay the
	// requester, and returns a confirmation message. Errors mirror SendMoney
	// except insufficient funds, which cannot occur at creation time.
	CreateRequest(ctx context.Context, requesterID string, req dto.CreateRequestRequest) (string, error)
	// Approve transfers the requested amount from the resolver to the
	// requester and completes the request.
	Approve(ctx context.Context, resolverID string, requestID int64) error
	// Reject marks the request rejected without touching any balance.
	Reject(ctx context.Context, resolverID string, requestID int64) error
	ListPending(ctx context.Context, userID string) ([]dto.PendingRequestResponse, error)
	ListHistory(ctx context.Context, userID string) ([]dto.HistoryEntryResponse, error)
}
