// Package transport defines DTOs for invoice endpoints.
package transport

import "time"

// CreateInvoiceRequest registers a new invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string  `json:"invoiceNumber" validate:"required,max=50"`
	ClientName    string  `json:"clientName" validate:"required,max=200"`
	Amount        float64 `json:"amount" validate:"gte=0"`
}

// UpdateStatusRequest is a status transition with optional payment details.
type UpdateStatusRequest struct {
	Status        string     `json:"status" validate:"required,oneof=draft sent paid overdue cancelled partial"`
	PaidAmount    *float64   `json:"paidAmount" validate:"omitempty,gte=0"`
	PaymentDate   *time.Time `json:"paymentDate"`
	PaymentMethod string     `json:"paymentMethod" validate:"omitempty,max=50"`
}

// ListRequest filters and pages invoice listing.
type ListRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=draft sent paid overdue cancelled partial"`
	Limit  int    `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int    `form:"offset" validate:"omitempty,gte=0"`
}

// InvoiceResponse is one invoice on the wire.
type InvoiceResponse struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoiceNumber"`
	ClientName    string     `json:"clientName"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	PaidAmount    float64    `json:"paidAmount"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ListResponse wraps an invoice page with its total count.
type ListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int               `json:"total"`
}
