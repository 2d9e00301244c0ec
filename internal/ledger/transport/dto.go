// Package transport defines DTOs for ledger endpoints.
package transport

import "time"

// ListRequest is the query for transaction listing.
type ListRequest struct {
	Limit  int `form:"limit" validate:"omitempty,gte=1,lte=100"`
	Offset int `form:"offset" validate:"omitempty,gte=0"`
}

// TransactionResponse is one ledger transaction on the wire.
type TransactionResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	Reference       string    `json:"reference"`
	TransactionDate time.Time `json:"transactionDate"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ListResponse wraps a transaction page with its total count.
type ListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}
