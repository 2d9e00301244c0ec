// Package transport defines request/response DTOs for estimate endpoints.
package transport

// ProjectContext carries optional project identification for the prompt.
type ProjectContext struct {
	Name    string `json:"name" validate:"omitempty,max=200"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

// PhotoInput is one site photograph supplied as generation context.
// ImageData is base64-encoded.
type PhotoInput struct {
	ImageData string `json:"imageData" validate:"required"`
	MimeType  string `json:"mimeType" validate:"required,oneof=image/jpeg image/png image/webp"`
	ZoneLabel string `json:"zoneLabel" validate:"omitempty,max=100"`
}

// GenerateEstimateRequest is the input for estimate generation.
type GenerateEstimateRequest struct {
	Description    string         `json:"description" validate:"required,min=3,max=5000"`
	WorkType       string         `json:"workType" validate:"omitempty,max=100"`
	ClientName     string         `json:"clientName" validate:"omitempty,max=200"`
	ProjectContext *ProjectContext `json:"projectContext" validate:"omitempty"`
	Photos         []PhotoInput   `json:"photos" validate:"omitempty,max=10,dive"`
	MarginPercent  *float64       `json:"marginPercent" validate:"omitempty,gte=0,lte=500"`
}

// EstimateItem is one priced line of an estimate on the wire.
type EstimateItem struct {
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Unit          string  `json:"unit"`
	Quantity      float64 `json:"quantity"`
	CostPrice     float64 `json:"costPrice"`
	MarginPercent float64 `json:"marginPercent"`
	SellPrice     float64 `json:"sellPrice"`
	LineSubtotal  float64 `json:"lineSubtotal"`
	TaxRate       float64 `json:"taxRate"`
	OrderIndex    int     `json:"orderIndex"`
}

// TaxBreakdownEntry is tax owed for one rate group.
type TaxBreakdownEntry struct {
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

// EstimateResponse is the generated or modified estimate.
type EstimateResponse struct {
	Items               []EstimateItem      `json:"items"`
	Subtotal            float64             `json:"subtotal"`
	TaxBreakdown        []TaxBreakdownEntry `json:"taxBreakdown"`
	Total               float64             `json:"total"`
	AppliedGlobalMargin float64             `json:"appliedGlobalMargin"`
}

// ModifyEstimateRequest asks the model for a full replacement item set.
type ModifyEstimateRequest struct {
	CurrentItems        []EstimateItem `json:"currentItems" validate:"required,min=1,dive"`
	Instruction         string         `json:"instruction" validate:"required,min=3,max=2000"`
	CurrentGlobalMargin float64        `json:"currentGlobalMargin" validate:"gte=0,lte=500"`
}

// CalculateRequest recomputes pricing and totals for an item snapshot.
// Used for live preview while a caller edits items.
type CalculateRequest struct {
	Items         []EstimateItem `json:"items" validate:"required,min=1,dive"`
	MarginPercent float64        `json:"marginPercent" validate:"gte=0,lte=500"`
}

// VerifyRequest compares persisted totals against freshly recomputed ones.
type VerifyRequest struct {
	Items             []EstimateItem `json:"items" validate:"required,dive"`
	PersistedSubtotal float64        `json:"persistedSubtotal"`
	PersistedTotal    float64        `json:"persistedTotal"`
}

// VerifyResponse reports whether persisted totals match a recomputation.
// Drift is surfaced, never corrected silently; the caller decides to resync.
type VerifyResponse struct {
	InSync             bool                `json:"inSync"`
	RecomputedSubtotal float64             `json:"recomputedSubtotal"`
	RecomputedTotal    float64             `json:"recomputedTotal"`
	TaxBreakdown       []TaxBreakdownEntry `json:"taxBreakdown"`
}
