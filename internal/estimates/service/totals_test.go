package service

import (
	"math"
	"testing"
)

func TestCalculateTotalsSingleRate(t *testing.T) {
	items := ApplyMargin([]CostItem{
		{Category: "Plumbing", Unit: "unit", Quantity: 1, CostPrice: 80, TaxRate: 21},
	}, 20)

	totals := CalculateTotals(items)

	if totals.Subtotal != 96.00 {
		t.Errorf("Subtotal = %v, want 96.00", totals.Subtotal)
	}
	if len(totals.TaxBreakdown) != 1 {
		t.Fatalf("expected 1 breakdown entry, got %d", len(totals.TaxBreakdown))
	}
	if totals.TaxBreakdown[0].Rate != 21 {
		t.Errorf("Rate = %v, want 21", totals.TaxBreakdown[0].Rate)
	}
	if totals.TaxBreakdown[0].Amount != 20.16 {
		t.Errorf("Tax = %v, want 20.16", totals.TaxBreakdown[0].Amount)
	}
	if totals.Total != 116.16 {
		t.Errorf("Total = %v, want 116.16", totals.Total)
	}
}

func TestCalculateTotalsMixedRates(t *testing.T) {
	items := []PricedItem{
		{Quantity: 2, SellPrice: 50.00, TaxRate: 21},
		{Quantity: 1, SellPrice: 200.00, TaxRate: 10},
		{Quantity: 3, SellPrice: 10.00, TaxRate: 21},
	}

	totals := CalculateTotals(items)

	if totals.Subtotal != 330.00 {
		t.Errorf("Subtotal = %v, want 330.00", totals.Subtotal)
	}
	if len(totals.TaxBreakdown) != 2 {
		t.Fatalf("expected 2 breakdown entries, got %d", len(totals.TaxBreakdown))
	}
	// Breakdown is ordered by ascending rate.
	if totals.TaxBreakdown[0].Rate != 10 || totals.TaxBreakdown[1].Rate != 21 {
		t.Errorf("breakdown rates = %v, %v; want 10, 21", totals.TaxBreakdown[0].Rate, totals.TaxBreakdown[1].Rate)
	}
	if totals.TaxBreakdown[0].Amount != 20.00 {
		t.Errorf("10%% tax = %v, want 20.00", totals.TaxBreakdown[0].Amount)
	}
	if totals.TaxBreakdown[1].Amount != 27.30 {
		t.Errorf("21%% tax = %v, want 27.30", totals.TaxBreakdown[1].Amount)
	}

	var taxSum float64
	for _, entry := range totals.TaxBreakdown {
		taxSum += entry.Amount
	}
	if math.Abs(totals.Total-(totals.Subtotal+taxSum)) > 1e-9 {
		t.Errorf("Total %v != Subtotal %v + taxes %v", totals.Total, totals.Subtotal, taxSum)
	}
}

func TestCalculateTotalsDeterministic(t *testing.T) {
	items := ApplyMargin([]CostItem{
		{Quantity: 2, CostPrice: 45.50, TaxRate: 21},
		{Quantity: 1, CostPrice: 120.00, TaxRate: 9},
		{Quantity: 4, CostPrice: 8.25, TaxRate: 21},
	}, 15)

	first := CalculateTotals(items)
	second := CalculateTotals(items)

	if first.Subtotal != second.Subtotal || first.Total != second.Total {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

func TestCalculateTotalsOrderIndependent(t *testing.T) {
	items := ApplyMargin([]CostItem{
		{Quantity: 2, CostPrice: 45.50, TaxRate: 21},
		{Quantity: 1, CostPrice: 120.00, TaxRate: 9},
		{Quantity: 4, CostPrice: 8.25, TaxRate: 21},
	}, 15)

	reversed := make([]PricedItem, len(items))
	for i, item := range items {
		reversed[len(items)-1-i] = item
	}

	a := CalculateTotals(items)
	b := CalculateTotals(reversed)

	if a.Subtotal != b.Subtotal || a.Total != b.Total {
		t.Errorf("totals depend on item order: %+v vs %+v", a, b)
	}
	if len(a.TaxBreakdown) != len(b.TaxBreakdown) {
		t.Fatalf("breakdown length differs: %d vs %d", len(a.TaxBreakdown), len(b.TaxBreakdown))
	}
	for i := range a.TaxBreakdown {
		if a.TaxBreakdown[i] != b.TaxBreakdown[i] {
			t.Errorf("breakdown entry %d differs: %+v vs %+v", i, a.TaxBreakdown[i], b.TaxBreakdown[i])
		}
	}
}

func TestCalculateTotalsEmpty(t *testing.T) {
	totals := CalculateTotals(nil)
	if totals.Subtotal != 0 || totals.Total != 0 || len(totals.TaxBreakdown) != 0 {
		t.Errorf("empty input should yield zero totals, got %+v", totals)
	}
}

// Single-rate sanity: total equals subtotal grossed up by the rate, within
// a cent of rounding tolerance.
func TestCalculateTotalsGrossUp(t *testing.T) {
	items := ApplyMargin([]CostItem{
		{Quantity: 3, CostPrice: 27.40, TaxRate: 21},
		{Quantity: 1, CostPrice: 310.00, TaxRate: 21},
	}, 20)

	totals := CalculateTotals(items)
	expected := math.Round(totals.Subtotal*1.21*100) / 100
	if math.Abs(totals.Total-expected) > 0.01 {
		t.Errorf("Total = %v, want ~%v", totals.Total, expected)
	}
}
