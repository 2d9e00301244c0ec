// Package service implements estimate generation, modification, pricing and
// totals. Generation and modification are single-shot: one bounded AI call
// per request, no retries; a failed request is simply re-invoked by the user.
package service

import (
	"estimate_backend/internal/estimates/ports"
	"estimate_backend/platform/config"
	"estimate_backend/platform/logger"
)

// Service orchestrates the generation pipeline:
// catalog match → prompt → AI call → extraction → pricing → totals.
// All stages after the AI call are pure, so concurrent requests are
// naturally isolated.
type Service struct {
	generator ports.Generator
	matcher   ports.PriceMatcher
	cfg       config.EstimateConfig
	log       *logger.Logger
}

// New creates the estimates service.
func New(generator ports.Generator, matcher ports.PriceMatcher, cfg config.EstimateConfig, log *logger.Logger) *Service {
	return &Service{generator: generator, matcher: matcher, cfg: cfg, log: log}
}

// GenerateInput is the service-level input for estimate generation.
type GenerateInput struct {
	Description    string
	WorkType       string
	ClientName     string
	ProjectName    string
	ProjectAddress string
	Photos         []Photo
	MarginPercent  *float64
}

// ModifyInput is the service-level input for estimate modification.
type ModifyInput struct {
	CurrentItems        []CostItem
	Instruction         string
	CurrentGlobalMargin float64
}

// Result is a fully priced and totaled estimate.
type Result struct {
	Items               []PricedItem
	Totals              Totals
	AppliedGlobalMargin float64
}

// price runs the pure tail of the pipeline: margin application, tax rate
// defaulting, totals.
func (s *Service) price(items []CostItem, marginPercent float64) Result {
	standardRate := s.cfg.GetStandardTaxRate()
	for i := range items {
		if items[i].TaxRate <= 0 {
			items[i].TaxRate = standardRate
		}
	}

	priced := ApplyMargin(items, marginPercent)
	return Result{
		Items:               priced,
		Totals:              CalculateTotals(priced),
		AppliedGlobalMargin: marginPercent,
	}
}
