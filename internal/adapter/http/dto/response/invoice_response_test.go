package response

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase"
)

func TestFromInvoice(t *testing.T) {
	now := time.Now().UTC()
	inv := &entities.Invoice{
		ID:         "inv-1",
		Number:     "RG-2026-000001",
		CustomerID: "cust-1",
		Status:     entities.InvoiceStatusPartiallyPaid,
		IssueDate:  now,
		DueDate:    now.AddDate(0, 0, 14),
		Items: []entities.LineItem{
			{Position: 1, Description: "Transport", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(200), TaxRate: decimal.NewFromInt(19)},
		},
		Payments: []entities.Payment{
			{ID: "p-1", Amount: decimal.NewFromInt(100), Date: now, Method: "bank_transfer", Reference: "ref-1"},
		},
	}
	if err := inv.Recalculate(now); err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	got := FromInvoice(inv)
	if got.Number != "RG-2026-000001" || got.Status != "partially_paid" {
		t.Fatalf("unexpected response: %+v", got)
	}
	if got.GrossTotal != "238.00" || got.PaidAmount != "100.00" || got.OutstandingAmount != "138.00" {
		t.Fatalf("unexpected amounts: %s %s %s", got.GrossTotal, got.PaidAmount, got.OutstandingAmount)
	}
	if len(got.Payments) != 1 || got.Payments[0].Amount != "100.00" {
		t.Fatalf("unexpected payments: %+v", got.Payments)
	}
	if len(got.TaxBreakdown) != 1 || got.TaxBreakdown[0].Tax != "38.00" {
		t.Fatalf("unexpected tax breakdown: %+v", got.TaxBreakdown)
	}
	if got.ReminderLevel != 0 {
		t.Fatalf("unexpected reminder level: %d", got.ReminderLevel)
	}
}

func TestFromDunningResults(t *testing.T) {
	got := FromDunningResults([]usecase.DunningResult{
		{InvoiceID: "inv-1", Number: "RG-2026-000001", Level: 2},
		{InvoiceID: "inv-2", Number: "RG-2026-000002", Skipped: "max reminder level reached"},
		{InvoiceID: "inv-3", Number: "RG-2026-000003", Error: "lost save race"},
	})
	if got.Checked != 3 || got.Reminded != 1 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.Results[1].Skipped == "" || got.Results[2].Error == "" {
		t.Fatalf("unexpected results: %+v", got.Results)
	}

	empty := FromDunningResults(nil)
	if empty.Checked != 0 || empty.Reminded != 0 {
		t.Fatalf("unexpected empty run: %+v", empty)
	}
}
