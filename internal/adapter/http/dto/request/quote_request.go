package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateQuoteRequest opens a new draft quote.
type CreateQuoteRequest struct {
	CustomerID      string            `json:"customer_id" binding:"required"`
	ProjectID       string            `json:"project_id"`
	ValidUntil      *time.Time        `json:"valid_until"`
	Items           []LineItemRequest `json:"items"`
	OptionalItems   []LineItemRequest `json:"optional_items"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	DiscountAmount  decimal.Decimal   `json:"discount_amount"`
	Notes           string            `json:"notes"`
	Actor           string            `json:"actor"`
}

// UpdateQuoteItemsRequest replaces a draft quote's lines and discount terms.
type UpdateQuoteItemsRequest struct {
	Items           []LineItemRequest `json:"items"`
	OptionalItems   []LineItemRequest `json:"optional_items"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	DiscountAmount  decimal.Decimal   `json:"discount_amount"`
}

// SendRequest records an outbound delivery (quote or invoice).
type SendRequest struct {
	Channel   string `json:"channel" binding:"required"`
	Recipient string `json:"recipient" binding:"required"`
	Actor     string `json:"actor"`
}

// FollowUpRequest records one follow-up contact on a sent quote.
type FollowUpRequest struct {
	Kind     string `json:"kind" binding:"required"`
	Outcome  string `json:"outcome"`
	NextStep string `json:"next_step"`
	Actor    string `json:"actor"`
}

// NegotiationRequest moves a quote into negotiation.
type NegotiationRequest struct {
	Actor string `json:"actor"`
	Note  string `json:"note"`
}

// AcceptQuoteRequest converts a quote.
type AcceptQuoteRequest struct {
	ReferenceOrderID string `json:"reference_order_id"`
	Actor            string `json:"actor"`
}

// RejectQuoteRequest declines a quote.
type RejectQuoteRequest struct {
	Reason string `json:"reason" binding:"required"`
	Actor  string `json:"actor"`
}

// NewVersionRequest creates a successor draft of a quote.
type NewVersionRequest struct {
	Actor string `json:"actor"`
}
