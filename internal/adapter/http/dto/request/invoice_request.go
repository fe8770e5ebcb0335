package request

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest opens a new draft invoice.
type CreateInvoiceRequest struct {
	CustomerID      string            `json:"customer_id" binding:"required"`
	ProjectID       string            `json:"project_id"`
	QuoteID         string            `json:"quote_id"`
	DueDate         *time.Time        `json:"due_date"`
	Items           []LineItemRequest `json:"items"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	DiscountAmount  decimal.Decimal   `json:"discount_amount"`
	Notes           string            `json:"notes"`
	Actor           string            `json:"actor"`
}

// UpdateInvoiceItemsRequest replaces a draft invoice's lines and discount terms.
type UpdateInvoiceItemsRequest struct {
	Items           []LineItemRequest `json:"items"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	DiscountAmount  decimal.Decimal   `json:"discount_amount"`
}

// RecordPaymentRequest books an incoming payment against an invoice.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
	PaidAt    *time.Time      `json:"paid_at"`
	Actor     string          `json:"actor"`
}

// OnlinePaymentRequest forwards a gateway payment payload for the
// invoice's outstanding amount.
type OnlinePaymentRequest struct {
	Payload json.RawMessage `json:"payload" binding:"required"`
	Actor   string          `json:"actor"`
}

// RaiseReminderRequest escalates the dunning level of one invoice. The fee
// is charged on top of the outstanding amount; zero is allowed.
type RaiseReminderRequest struct {
	Fee   decimal.Decimal `json:"fee"`
	Actor string          `json:"actor"`
}

// CancelInvoiceRequest voids an invoice.
type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"required"`
	Actor  string `json:"actor"`
}

// DuplicateInvoiceRequest copies an invoice into a fresh draft.
type DuplicateInvoiceRequest struct {
	Actor string `json:"actor"`
}

// DunningRunRequest triggers a dunning pass over due invoices. An empty
// cutoff defaults to now.
type DunningRunRequest struct {
	Cutoff *time.Time `json:"cutoff"`
}
