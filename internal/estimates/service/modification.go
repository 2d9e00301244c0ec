package service

import (
	"context"
	"strings"

	"estimate_backend/platform/apperr"
)

// Modify revises an existing estimate according to a natural-language
// instruction. The model receives the complete current item list (cost
// basis) and must return a full replacement set, which then flows through
// the same extraction and pricing stages as generation.
func (s *Service) Modify(ctx context.Context, input ModifyInput) (*Result, error) {
	if strings.TrimSpace(input.Instruction) == "" {
		return nil, apperr.BadRequest("instruction is required")
	}
	if len(input.CurrentItems) == 0 {
		return nil, apperr.BadRequest("current items are required")
	}

	parts, err := buildModificationParts(input.CurrentItems, input.Instruction)
	if err != nil {
		return nil, apperr.Internal("failed to serialize current items")
	}

	raw, err := s.generator.GenerateJSON(ctx, modificationRules, parts)
	if err != nil {
		s.log.UpstreamError("gemini", "modify_estimate", err)
		return nil, err
	}

	extraction, err := ExtractItems(raw)
	if err != nil {
		s.log.Warn("modification extraction failed", "error", err, "raw_length", len(raw))
		return nil, err
	}
	s.log.Debug("modification extracted", "strategy", extraction.Strategy, "items", len(extraction.Items))

	result := s.price(extraction.Items, input.CurrentGlobalMargin)
	return &result, nil
}

// Recalculate reprices an item snapshot with a margin and recomputes totals.
// Pure and reentrant: callers use it for live preview during manual edits.
func (s *Service) Recalculate(items []CostItem, marginPercent float64) Result {
	return s.price(items, marginPercent)
}

// VerifyTotals recomputes totals from an item snapshot and compares against
// persisted values. Drift is reported, never corrected here: resync is an
// explicit caller action.
func (s *Service) VerifyTotals(items []PricedItem, persistedSubtotal, persistedTotal float64) (Totals, bool) {
	totals := CalculateTotals(items)
	inSync := equalCents(totals.Subtotal, persistedSubtotal) && equalCents(totals.Total, persistedTotal)
	return totals, inSync
}

func equalCents(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.005
}
