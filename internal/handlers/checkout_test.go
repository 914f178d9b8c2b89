package handlers

import (
	"testing"

	"storefront/internal/models"
)

func TestBuildOrderItemsComputesSubtotals(t *testing.T) {
	products := map[string]models.Product{
		"P1": {ProductID: "P1", Name: "Mug", Price: 10.00},
	}

	items, total := buildOrderItems([]checkoutItem{{ProductID: "P1", Quantity: 2}}, products)

	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Subtotal != 20.00 || total != 20.00 {
		t.Fatalf("expected subtotal and total 20.00, got %v and %v", items[0].Subtotal, total)
	}
	if items[0].Name != "Mug" || items[0].Price != 10.00 {
		t.Fatalf("expected snapshot of product name and price, got %q @ %v", items[0].Name, items[0].Price)
	}
}

// Checkout tolerates productIds with no matching product: the line item is
// kept at price zero, named "Unknown", and the order still goes through.
// That is the current behavior, deliberate or not.
func TestBuildOrderItemsUnknownProductIsZeroPriced(t *testing.T) {
	items, total := buildOrderItems([]checkoutItem{{ProductID: "ghost", Quantity: 3}}, nil)

	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Name != "Unknown" {
		t.Fatalf("expected name Unknown, got %q", items[0].Name)
	}
	if items[0].Price != 0 || items[0].Subtotal != 0 || total != 0 {
		t.Fatalf("expected zero price/subtotal/total, got %v/%v/%v", items[0].Price, items[0].Subtotal, total)
	}
}

func TestBuildOrderItemsMixedOrderTotals(t *testing.T) {
	products := map[string]models.Product{
		"P1": {ProductID: "P1", Name: "Mug", Price: 10.00},
		"P2": {ProductID: "P2", Name: "Shirt", Price: 25.50},
	}

	items, total := buildOrderItems([]checkoutItem{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 1},
		{ProductID: "gone", Quantity: 5},
	}, products)

	if len(items) != 3 {
		t.Fatalf("expected 3 line items, got %d", len(items))
	}
	if total != 45.50 {
		t.Fatalf("expected total 45.50, got %v", total)
	}

	var sum float64
	for _, item := range items {
		sum += item.Subtotal
	}
	if sum != total {
		t.Fatalf("total %v does not equal sum of subtotals %v", total, sum)
	}
}

func TestParseQuantityDefaultsToOne(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{"0", 1},
		{"-2", 1},
		{"abc", 1},
		{"", 1},
		{" 4 ", 4},
	}
	for _, tt := range tests {
		if got := parseQuantity(tt.raw); got != tt.want {
			t.Fatalf("parseQuantity(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
