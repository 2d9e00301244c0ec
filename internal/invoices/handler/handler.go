// Package handler exposes invoice operations over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"estimate_backend/internal/invoices/repository"
	"estimate_backend/internal/invoices/service"
	"estimate_backend/internal/invoices/transport"
	"estimate_backend/platform/httpkit"
	"estimate_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid invoice id"
)

// Handler handles HTTP requests for invoices.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new invoices handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create registers a new invoice in draft status.
// POST /api/v1/invoices
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	invoice, err := h.svc.Create(c.Request.Context(), req.InvoiceNumber, req.ClientName, req.Amount)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, toInvoiceResponse(invoice))
}

// Get fetches one invoice.
// GET /api/v1/invoices/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	invoice, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toInvoiceResponse(invoice))
}

// List returns invoices, optionally filtered by status.
// GET /api/v1/invoices
func (h *Handler) List(c *gin.Context) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	invoices, total, err := h.svc.List(c.Request.Context(), req.Status, req.Limit, req.Offset)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ListResponse{Total: total, Invoices: make([]transport.InvoiceResponse, 0, len(invoices))}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, toInvoiceResponse(inv))
	}
	httpkit.OK(c, resp)
}

// UpdateStatus applies a status transition with optional payment details.
// PATCH /api/v1/invoices/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	invoice, err := h.svc.UpdateStatus(c.Request.Context(), id, service.StatusTransition{
		TargetStatus:  req.Status,
		PaidAmount:    req.PaidAmount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toInvoiceResponse(invoice))
}

func toInvoiceResponse(inv repository.Invoice) transport.InvoiceResponse {
	return transport.InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		Amount:        inv.Amount,
		Status:        inv.Status,
		PaidAmount:    inv.PaidAmount,
		PaymentDate:   inv.PaymentDate,
		PaymentMethod: inv.PaymentMethod,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
