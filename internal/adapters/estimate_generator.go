package adapters

import (
	"context"

	estports "estimate_backend/internal/estimates/ports"
	"estimate_backend/platform/ai/gemini"
)

// EstimateGenerator adapts the Gemini client to the estimates module's
// Generator port, translating prompt parts into the client's part type.
type EstimateGenerator struct {
	client *gemini.Client
}

// Compile-time check that the adapter satisfies the port.
var _ estports.Generator = (*EstimateGenerator)(nil)

// NewEstimateGenerator creates a generator adapter around a Gemini client.
func NewEstimateGenerator(client *gemini.Client) *EstimateGenerator {
	return &EstimateGenerator{client: client}
}

// GenerateJSON performs one bounded generation call and returns the raw text.
func (a *EstimateGenerator) GenerateJSON(ctx context.Context, systemInstruction string, parts []estports.PromptPart) (string, error) {
	clientParts := make([]gemini.Part, 0, len(parts))
	for _, p := range parts {
		if p.ImageMIME != "" {
			clientParts = append(clientParts, gemini.ImagePart(p.ImageMIME, p.ImageData))
			continue
		}
		clientParts = append(clientParts, gemini.TextPart(p.Text))
	}
	return a.client.GenerateJSON(ctx, systemInstruction, clientParts)
}
