// Package transport defines request/response DTOs for pricebook endpoints.
package transport

// SearchRequest is the query for relevant reference prices.
type SearchRequest struct {
	Query string `form:"q" validate:"required,min=2,max=500"`
}

// EntryResponse is one catalog entry on the wire.
type EntryResponse struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
}

// CategoryResponse groups entries by work category.
type CategoryResponse struct {
	Category string          `json:"category"`
	Entries  []EntryResponse `json:"entries"`
}

// CatalogResponse is the full or matched catalog.
type CatalogResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
