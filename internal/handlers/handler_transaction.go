package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerpay/peerpay/internal/apperrors"
	portssvc "github.com/peerpay/peerpay/internal/core/ports/services"
	"github.com/peerpay/peerpay/internal/dto"
	"github.com/peerpay/peerpay/internal/middleware"
)

// TransactionHandler handles sends, requests and resolution.
type TransactionHandler struct {
	transferService portssvc.TransferSvcFacade
	requestService  portssvc.RequestSvcFacade
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ts portssvc.TransferSvcFacade, rs portssvc.RequestSvcFacade) *TransactionHandler {
	return &TransactionHandler{transferService: ts, requestService: rs}
}

// Send moves money from the caller to the named recipient.
func (h *TransactionHandler) Send(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SendMoneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input"})
		return
	}

	message, err := h.transferService.SendMoney(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sender or recipient not found"})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient balance"})
		default:
			logger.Error("Failed to send money", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send money"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// Request asks the named user to pay the caller.
func (h *TransactionHandler) Request(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input"})
		return
	}

	message, err := h.requestService.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid input"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		default:
			logger.Error("Failed to create money request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to request money"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// ListRequests returns the pending requests awaiting the caller's decision.
func (h *TransactionHandler) ListRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pending, err := h.requestService.ListPending(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list pending requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, pending)
}

// Approve completes a pending request, moving money from the caller to the requester.
func (h *TransactionHandler) Approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ResolveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or unauthorized request"})
		return
	}

	if err := h.requestService.Approve(c.Request.Context(), userID, req.RequestID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or unauthorized request"})
		case errors.Is(err, apperrors.ErrInsufficientFunds), errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient balance or users not found"})
		default:
			logger.Error("Failed to approve money request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to approve request"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Request approved and money transferred"})
}

// Reject declines a pending request without moving money.
func (h *TransactionHandler) Reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ResolveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or unauthorized request"})
		return
	}

	if err := h.requestService.Reject(c.Request.Context(), userID, req.RequestID); err != nil {
		if errors.Is(err, apperrors.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or unauthorized request"})
			return
		}
		logger.Error("Failed to reject money request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reject request"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Request rejected"})
}

// History returns the caller's transaction history, newest first.
func (h *TransactionHandler) History(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	history, err := h.requestService.ListHistory(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list transaction history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
