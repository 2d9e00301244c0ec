// Package handler exposes ledger transactions over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estimate_backend/internal/ledger/service"
	"estimate_backend/internal/ledger/transport"
	"estimate_backend/platform/httpkit"
	"estimate_backend/platform/validator"
)

// Handler handles HTTP requests for the ledger.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new ledger handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns ledger transactions, newest first.
// GET /api/v1/ledger/transactions
func (h *Handler) List(c *gin.Context) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transactions, total, err := h.svc.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to list transactions", nil)
		return
	}

	resp := transport.ListResponse{Total: total, Transactions: make([]transport.TransactionResponse, 0, len(transactions))}
	for _, tx := range transactions {
		resp.Transactions = append(resp.Transactions, transport.TransactionResponse{
			ID:              tx.ID.String(),
			Type:            tx.Type,
			Amount:          tx.Amount,
			Description:     tx.Description,
			Reference:       tx.Reference,
			TransactionDate: tx.TransactionDate,
			CreatedAt:       tx.CreatedAt,
		})
	}
	httpkit.OK(c, resp)
}
