package dto

import (
	"time"

	"github.com/peerpay/peerpay/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SendMoneyRequest is the body of POST /transaction/send.
// Amount binds from either a JSON number or a numeric string; anything else
// fails binding and is reported as invalid input.
type SendMoneyRequest struct {
	RecipientUsername string          `json:"recipientUsername"`
	Amount            decimal.Decimal `json:"amount"`
}

// CreateRequestRequest is the body of POST /transaction/request. The named
// user is the one being asked to pay the caller.
type CreateRequestRequest struct {
	RecipientUsername string          `json:"recipientUsername"`
	Amount            decimal.Decimal `json:"amount"`
}

// ResolveRequestRequest is the body of approve/reject calls.
type ResolveRequestRequest struct {
	RequestID int64 `json:"requestId"`
}

// MessageResponse wraps a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserRef is a minimal user reference embedded in list responses.
type UserRef struct {
	Username string `json:"username"`
}

// PendingRequestResponse is one element of GET /transaction/requests.
// The fromUser field names the person the request came from, i.e. the requester.
type PendingRequestResponse struct {
	ID       int64           `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	FromUser UserRef         `json:"fromUser"`
}

// ToPendingRequestResponse converts a domain pending request for the wire.
func ToPendingRequestResponse(p domain.PendingRequest) PendingRequestResponse {
	return PendingRequestResponse{
		ID:       p.TransactionID,
		Amount:   p.Amount,
		FromUser: UserRef{Username: p.RequesterUsername},
	}
}

// HistoryEntryResponse is one element of GET /transaction/history.
type HistoryEntryResponse struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	From      string          `json:"from"`
	To        string          `json:"to"`
}

// ToHistoryEntryResponse converts a domain history entry for the wire.
func ToHistoryEntryResponse(h domain.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:        h.TransactionID,
		Type:      string(h.Type),
		Status:    string(h.Status),
		Amount:    h.Amount,
		Timestamp: h.Timestamp,
		From:      h.FromUsername,
		To:        h.ToUsername,
	}
}
