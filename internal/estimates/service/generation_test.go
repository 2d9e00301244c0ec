package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"estimate_backend/internal/estimates/ports"
	"estimate_backend/platform/apperr"
	"estimate_backend/platform/logger"
)

type stubGenerator struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastParts  []ports.PromptPart
}

func (g *stubGenerator) GenerateJSON(_ context.Context, system string, parts []ports.PromptPart) (string, error) {
	g.calls++
	g.lastSystem = system
	g.lastParts = parts
	return g.response, g.err
}

type stubMatcher struct {
	groups []ports.ReferenceGroup
	err    error
}

func (m *stubMatcher) Match(string) ([]ports.ReferenceGroup, error) {
	return m.groups, m.err
}

type stubConfig struct {
	margin  float64
	taxRate float64
}

func (c stubConfig) GetDefaultMarginPercent() float64 { return c.margin }
func (c stubConfig) GetStandardTaxRate() float64      { return c.taxRate }

func newTestService(gen *stubGenerator, matcher *stubMatcher) *Service {
	return New(gen, matcher, stubConfig{margin: 20, taxRate: 21}, logger.New("development"))
}

func TestGenerateEndToEnd(t *testing.T) {
	gen := &stubGenerator{
		response: `{"items": [{"category": "Plumbing", "description": "Replace kitchen faucet", "unit": "unit", "quantity": 1, "costPrice": 80}]}`,
	}
	svc := newTestService(gen, &stubMatcher{})

	result, err := svc.Generate(context.Background(), GenerateInput{Description: "replace kitchen faucet"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if gen.calls != 1 {
		t.Errorf("generator called %d times, want exactly 1", gen.calls)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}

	item := result.Items[0]
	if item.SellPrice != 96.00 {
		t.Errorf("SellPrice = %v, want 96.00", item.SellPrice)
	}
	if item.LineSubtotal != 96.00 {
		t.Errorf("LineSubtotal = %v, want 96.00", item.LineSubtotal)
	}
	if item.TaxRate != 21 {
		t.Errorf("TaxRate = %v, want default 21", item.TaxRate)
	}
	if item.OrderIndex != 0 {
		t.Errorf("OrderIndex = %v, want 0", item.OrderIndex)
	}

	if result.Totals.Subtotal != 96.00 {
		t.Errorf("Subtotal = %v, want 96.00", result.Totals.Subtotal)
	}
	if len(result.Totals.TaxBreakdown) != 1 || result.Totals.TaxBreakdown[0].Amount != 20.16 {
		t.Errorf("TaxBreakdown = %+v, want one entry of 20.16", result.Totals.TaxBreakdown)
	}
	if result.Totals.Total != 116.16 {
		t.Errorf("Total = %v, want 116.16", result.Totals.Total)
	}
	if result.AppliedGlobalMargin != 20 {
		t.Errorf("AppliedGlobalMargin = %v, want 20", result.AppliedGlobalMargin)
	}
}

func TestGenerateEmptyDescriptionRejectedBeforeCall(t *testing.T) {
	gen := &stubGenerator{}
	svc := newTestService(gen, &stubMatcher{})

	_, err := svc.Generate(context.Background(), GenerateInput{Description: "   "})
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("error kind = %v, want bad request", apperr.GetKind(err))
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
}

func TestGenerateMatcherFailureIsNotFatal(t *testing.T) {
	gen := &stubGenerator{
		response: `{"items": [{"category": "Plumbing", "description": "x", "unit": "unit", "quantity": 1, "costPrice": 10}]}`,
	}
	svc := newTestService(gen, &stubMatcher{err: errors.New("catalog corrupted")})

	result, err := svc.Generate(context.Background(), GenerateInput{Description: "replace faucet"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if strings.Contains(gen.lastSystem, "Reference prices") {
		t.Error("system prompt should not contain a reference section after match failure")
	}
}

func TestGenerateIncludesReferenceSection(t *testing.T) {
	gen := &stubGenerator{
		response: `{"items": [{"category": "Plumbing", "description": "x", "unit": "unit", "quantity": 1, "costPrice": 10}]}`,
	}
	matcher := &stubMatcher{groups: []ports.ReferenceGroup{{
		Category: "Plumbing",
		Prices:   []ports.ReferencePrice{{Code: "PLB-001", Description: "Replace kitchen faucet", Unit: "unit", UnitPrice: 80}},
	}}}
	svc := newTestService(gen, matcher)

	if _, err := svc.Generate(context.Background(), GenerateInput{Description: "replace faucet"}); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.Contains(gen.lastSystem, "PLB-001") {
		t.Error("system prompt should contain matched reference entries")
	}
}

func TestGenerateUpstreamErrorsPassThrough(t *testing.T) {
	tests := []struct {
		name string
		err  *apperr.Error
		kind apperr.Kind
	}{
		{"timeout", apperr.Timeout("generation timed out"), apperr.KindTimeout},
		{"unavailable", apperr.Unavailable("generation service is overloaded"), apperr.KindUnavailable},
		{"no content", apperr.NoContent("generation returned no usable content"), apperr.KindNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{err: tt.err}
			svc := newTestService(gen, &stubMatcher{})

			_, err := svc.Generate(context.Background(), GenerateInput{Description: "replace faucet"})
			if !apperr.Is(err, tt.kind) {
				t.Errorf("error kind = %v, want %v", apperr.GetKind(err), tt.kind)
			}
			// Single attempt per request: failures are never retried.
			if gen.calls != 1 {
				t.Errorf("generator called %d times, want exactly 1", gen.calls)
			}
		})
	}
}

func TestGenerateUnparsableResponse(t *testing.T) {
	gen := &stubGenerator{response: "I'm sorry, I cannot help with that."}
	svc := newTestService(gen, &stubMatcher{})

	_, err := svc.Generate(context.Background(), GenerateInput{Description: "replace faucet"})
	if !apperr.Is(err, apperr.KindUnparsable) {
		t.Errorf("error kind = %v, want unparsable", apperr.GetKind(err))
	}
}

func TestGenerateExplicitMarginOverridesDefault(t *testing.T) {
	gen := &stubGenerator{
		response: `{"items": [{"category": "Plumbing", "description": "x", "unit": "unit", "quantity": 1, "costPrice": 100}]}`,
	}
	svc := newTestService(gen, &stubMatcher{})

	margin := 35.0
	result, err := svc.Generate(context.Background(), GenerateInput{Description: "replace faucet", MarginPercent: &margin})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.AppliedGlobalMargin != 35 {
		t.Errorf("AppliedGlobalMargin = %v, want 35", result.AppliedGlobalMargin)
	}
	if result.Items[0].SellPrice != 135.00 {
		t.Errorf("SellPrice = %v, want 135.00", result.Items[0].SellPrice)
	}
}

func TestGeneratePhotosGroupedByZone(t *testing.T) {
	gen := &stubGenerator{
		response: `{"items": [{"category": "Painting", "description": "x", "unit": "m2", "quantity": 1, "costPrice": 10}]}`,
	}
	svc := newTestService(gen, &stubMatcher{})

	input := GenerateInput{
		Description: "paint the kitchen and bathroom",
		Photos: []Photo{
			{Data: []byte{0x01}, MimeType: "image/jpeg", ZoneLabel: "kitchen"},
			{Data: []byte{0x02}, MimeType: "image/jpeg", ZoneLabel: "bathroom"},
			{Data: []byte{0x03}, MimeType: "image/jpeg", ZoneLabel: "kitchen"},
		},
	}
	if _, err := svc.Generate(context.Background(), input); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	var headers []string
	var imageCount int
	for _, part := range gen.lastParts {
		if strings.HasPrefix(part.Text, "Photos of zone:") {
			headers = append(headers, part.Text)
		}
		if part.ImageMIME != "" {
			imageCount++
		}
	}
	if len(headers) != 2 {
		t.Fatalf("expected 2 zone headers, got %d: %v", len(headers), headers)
	}
	if !strings.Contains(headers[0], "kitchen") || !strings.Contains(headers[1], "bathroom") {
		t.Errorf("zone headers in wrong order: %v", headers)
	}
	if imageCount != 3 {
		t.Errorf("expected 3 image parts, got %d", imageCount)
	}
}
