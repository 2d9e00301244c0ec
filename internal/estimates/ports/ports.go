// Package ports defines the interfaces the estimates module depends on.
// Implementations live in internal/adapters, keeping this module decoupled
// from the AI platform client and the pricebook module.
package ports

import "context"

// PromptPart is one piece of a multimodal prompt: either text or an image.
type PromptPart struct {
	Text      string
	ImageMIME string
	ImageData []byte
}

// TextPart creates a text prompt part.
func TextPart(text string) PromptPart {
	return PromptPart{Text: text}
}

// ImagePart creates an image prompt part.
func ImagePart(mimeType string, data []byte) PromptPart {
	return PromptPart{ImageMIME: mimeType, ImageData: data}
}

// Generator is the single-shot AI text generation boundary. One call per
// request, bounded by the implementation's timeout; no retries.
type Generator interface {
	GenerateJSON(ctx context.Context, systemInstruction string, parts []PromptPart) (string, error)
}

// ReferencePrice is one catalog entry offered to the model as grounding.
type ReferencePrice struct {
	Code        string
	Description string
	Unit        string
	UnitPrice   float64
}

// ReferenceGroup groups reference prices by work category.
type ReferenceGroup struct {
	Category string
	Prices   []ReferencePrice
}

// PriceMatcher returns the catalog subset relevant to a work description.
// A failure here must never fail estimate generation.
type PriceMatcher interface {
	Match(description string) ([]ReferenceGroup, error)
}
