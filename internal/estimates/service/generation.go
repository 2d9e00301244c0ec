package service

import (
	"context"
	"strings"

	"estimate_backend/platform/apperr"
)

// Generate produces a priced estimate from a free-text work description and
// optional photos. Exactly one AI call is made; every failure is returned to
// the caller, who may re-invoke ("regenerate").
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*Result, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperr.BadRequest("description is required")
	}

	// Reference prices are advisory grounding: a match failure is logged
	// and generation proceeds without a reference section.
	refs, err := s.matcher.Match(matchText(input))
	if err != nil {
		s.log.Warn("reference price match failed, continuing without references", "error", err)
		refs = nil
	}

	system := buildGenerationSystemPrompt(refs)
	parts := buildGenerationParts(input)

	raw, err := s.generator.GenerateJSON(ctx, system, parts)
	if err != nil {
		s.log.UpstreamError("gemini", "generate_estimate", err)
		return nil, err
	}

	extraction, err := ExtractItems(raw)
	if err != nil {
		s.log.Warn("estimate extraction failed", "error", err, "raw_length", len(raw))
		return nil, err
	}
	s.log.Debug("estimate extracted", "strategy", extraction.Strategy, "items", len(extraction.Items))

	margin := s.cfg.GetDefaultMarginPercent()
	if input.MarginPercent != nil {
		margin = *input.MarginPercent
	}

	result := s.price(extraction.Items, margin)
	return &result, nil
}

// matchText concatenates the descriptive fields used for catalog matching.
func matchText(input GenerateInput) string {
	fields := []string{input.WorkType, input.Description, input.ProjectName}
	var nonEmpty []string
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return strings.Join(nonEmpty, " ")
}
