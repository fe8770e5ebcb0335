package request

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToLineItems(t *testing.T) {
	items, err := ToLineItems([]LineItemRequest{
		{Description: "Umzugsservice", Quantity: decimal.NewFromInt(8), UnitPrice: decimal.NewFromInt(45), TaxRate: decimal.NewFromInt(19)},
		{Description: "Kartons", Quantity: decimal.NewFromInt(20), UnitPrice: decimal.RequireFromString("2.50"), TaxRate: decimal.NewFromInt(7)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Description != "Umzugsservice" || !items[1].TaxRate.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("unexpected items: %+v", items)
	}

	empty, err := ToLineItems(nil)
	if err != nil || empty != nil {
		t.Fatalf("expected nil, nil for empty input, got %v, %v", empty, err)
	}
}

func TestToLineItems_Invalid(t *testing.T) {
	_, err := ToLineItems([]LineItemRequest{
		{Description: "x", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(10), TaxRate: decimal.NewFromInt(19)},
	})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	_, err = ToLineItems([]LineItemRequest{
		{Description: "x", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10), TaxRate: decimal.NewFromInt(15)},
	})
	if !errors.Is(err, ErrInvalidTaxRate) {
		t.Fatalf("expected ErrInvalidTaxRate, got %v", err)
	}
}
