package service

import (
	"math"
	"testing"
)

func TestApplyMargin(t *testing.T) {
	tests := []struct {
		name         string
		cost         float64
		quantity     float64
		margin       float64
		wantSell     float64
		wantSubtotal float64
	}{
		{"standard margin", 80, 1, 20, 96.00, 96.00},
		{"zero margin", 100, 2, 0, 100.00, 200.00},
		{"fractional sell rounds to cents", 33.33, 3, 15, 38.33, 114.99},
		{"fractional quantity", 12.50, 2.5, 10, 13.75, 34.38},
		{"zero cost", 0, 5, 20, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			priced := ApplyMargin([]CostItem{{
				Description: "item",
				Quantity:    tt.quantity,
				CostPrice:   tt.cost,
			}}, tt.margin)

			if len(priced) != 1 {
				t.Fatalf("expected 1 item, got %d", len(priced))
			}
			item := priced[0]
			if item.SellPrice != tt.wantSell {
				t.Errorf("SellPrice = %v, want %v", item.SellPrice, tt.wantSell)
			}
			if item.LineSubtotal != tt.wantSubtotal {
				t.Errorf("LineSubtotal = %v, want %v", item.LineSubtotal, tt.wantSubtotal)
			}
			if item.MarginPercent != tt.margin {
				t.Errorf("MarginPercent = %v, want %v", item.MarginPercent, tt.margin)
			}
		})
	}
}

func TestApplyMarginOrderIndex(t *testing.T) {
	items := []CostItem{
		{Description: "first", Quantity: 1, CostPrice: 10},
		{Description: "second", Quantity: 1, CostPrice: 20},
		{Description: "third", Quantity: 1, CostPrice: 30},
	}

	priced := ApplyMargin(items, 20)
	for i, item := range priced {
		if item.OrderIndex != i {
			t.Errorf("item %d OrderIndex = %d, want %d", i, item.OrderIndex, i)
		}
	}
}

func TestApplyMarginSellNeverBelowCost(t *testing.T) {
	costs := []float64{0, 0.01, 1, 33.33, 80, 999.99}
	margins := []float64{0, 5, 20, 50, 150}

	for _, cost := range costs {
		for _, margin := range margins {
			priced := ApplyMargin([]CostItem{{Quantity: 1, CostPrice: cost}}, margin)
			if priced[0].SellPrice < cost-0.005 {
				t.Errorf("cost %v margin %v: sell %v below cost", cost, margin, priced[0].SellPrice)
			}
		}
	}
}

// The displayed unit price times quantity must reconcile exactly with the
// displayed line subtotal.
func TestApplyMarginNoDrift(t *testing.T) {
	items := []CostItem{
		{Quantity: 3, CostPrice: 33.33},
		{Quantity: 7, CostPrice: 14.29},
		{Quantity: 4, CostPrice: 19.99},
		{Quantity: 12, CostPrice: 8.75},
	}

	for _, item := range ApplyMargin(items, 17.5) {
		recomputed := math.Round(item.Quantity*item.SellPrice*100) / 100
		if recomputed != item.LineSubtotal {
			t.Errorf("qty %v sell %v: round2(qty*sell)=%v but LineSubtotal=%v",
				item.Quantity, item.SellPrice, recomputed, item.LineSubtotal)
		}
	}
}
