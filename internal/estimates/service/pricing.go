package service

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CostItem is a line item as extracted from generation output: cost-basis
// price only, no margin applied yet.
type CostItem struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	CostPrice   float64 `json:"costPrice"`
	TaxRate     float64 `json:"taxRate,omitempty"`
}

// PricedItem is a line item after margin application.
type PricedItem struct {
	Category      string
	Description   string
	Unit          string
	Quantity      float64
	CostPrice     float64
	MarginPercent float64
	SellPrice     float64
	LineSubtotal  float64
	TaxRate       float64
	OrderIndex    int
}

var oneHundred = decimal.NewFromInt(100)

// round2 rounds to cents, half away from zero.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ApplyMargin converts cost-basis items into sell-priced items. Rounding is
// applied once to the unit sell price and again to the line subtotal, so that
// the displayed unit price times quantity always reconciles exactly with the
// displayed line subtotal. Order index follows input position.
func ApplyMargin(items []CostItem, marginPercent float64) []PricedItem {
	margin := decimal.NewFromFloat(marginPercent)
	factor := decimal.NewFromInt(1).Add(margin.Div(oneHundred))

	priced := make([]PricedItem, 0, len(items))
	for i, item := range items {
		cost := decimal.NewFromFloat(item.CostPrice)
		qty := decimal.NewFromFloat(item.Quantity)
		sell := round2(cost.Mul(factor))
		lineSubtotal := round2(qty.Mul(sell))

		priced = append(priced, PricedItem{
			Category:      item.Category,
			Description:   item.Description,
			Unit:          item.Unit,
			Quantity:      item.Quantity,
			CostPrice:     item.CostPrice,
			MarginPercent: marginPercent,
			SellPrice:     sell.InexactFloat64(),
			LineSubtotal:  lineSubtotal.InexactFloat64(),
			TaxRate:       item.TaxRate,
			OrderIndex:    i,
		})
	}
	return priced
}

// TaxGroup is the tax owed for one rate.
type TaxGroup struct {
	Rate   float64
	Amount float64
}

// Totals aggregates priced items: subtotal, per-rate tax breakdown
// (ascending rate) and grand total.
type Totals struct {
	Subtotal     float64
	TaxBreakdown []TaxGroup
	Total        float64
}

// CalculateTotals is a pure aggregation over priced items. It groups by tax
// rate, computes per-group base and tax at cent precision, and sums. Safe to
// call repeatedly on the same snapshot: same input, same output.
func CalculateTotals(items []PricedItem) Totals {
	baseByRate := make(map[float64]decimal.Decimal)
	for _, item := range items {
		qty := decimal.NewFromFloat(item.Quantity)
		sell := decimal.NewFromFloat(item.SellPrice)
		baseByRate[item.TaxRate] = baseByRate[item.TaxRate].Add(qty.Mul(sell))
	}

	rates := make([]float64, 0, len(baseByRate))
	for rate := range baseByRate {
		rates = append(rates, rate)
	}
	sort.Float64s(rates)

	subtotal := decimal.Zero
	totalTax := decimal.Zero
	breakdown := make([]TaxGroup, 0, len(rates))
	for _, rate := range rates {
		base := round2(baseByRate[rate])
		tax := round2(base.Mul(decimal.NewFromFloat(rate)).Div(oneHundred))
		subtotal = subtotal.Add(base)
		totalTax = totalTax.Add(tax)
		breakdown = append(breakdown, TaxGroup{Rate: rate, Amount: tax.InexactFloat64()})
	}

	return Totals{
		Subtotal:     subtotal.InexactFloat64(),
		TaxBreakdown: breakdown,
		Total:        subtotal.Add(totalTax).InexactFloat64(),
	}
}
