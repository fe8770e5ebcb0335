package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
)

// CostApprovalStatus is the approval sub-state of a cost record.
type CostApprovalStatus string

const (
	CostApprovalOpen     CostApprovalStatus = "open"
	CostApprovalApproved CostApprovalStatus = "approved"
	CostApprovalRejected CostApprovalStatus = "rejected"
)

// CostPaymentStatus is the payment sub-state; it moves independently of the
// approval sub-state. paid and cancelled are terminal for the record.
type CostPaymentStatus string

const (
	CostPaymentUnpaid    CostPaymentStatus = "unpaid"
	CostPaymentPaid      CostPaymentStatus = "paid"
	CostPaymentCancelled CostPaymentStatus = "cancelled"
)

// AuditEntry is one row of a cost record's append-only audit history.
type AuditEntry struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CostRecord is a single internal expense (Projektkosten) persisted in
// DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// TaxAmount and GrossAmount are derived on Recalculate. Records whose gross
// stays at or under the approval threshold are pre-approved on creation;
// everything above needs an explicit approval.
type CostRecord struct {
	ID        string `json:"id"`
	Number    string `json:"number,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Category  string `json:"category"`

	Description string          `json:"description,omitempty"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	GrossAmount decimal.Decimal `json:"gross_amount"`

	ApprovalStatus CostApprovalStatus `json:"approval_status"`
	PaymentStatus  CostPaymentStatus  `json:"payment_status"`
	PaymentDetail  string             `json:"payment_detail,omitempty"`
	PaidAt         *time.Time         `json:"paid_at,omitempty"`

	CreatedBy string       `json:"created_by"`
	History   []AuditEntry `json:"history,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *CostRecord) audit(action, actor, comment string, now time.Time) {
	c.History = append(c.History, AuditEntry{
		Action:    action,
		Actor:     actor,
		Comment:   comment,
		Timestamp: now,
	})
}

// Recalculate recomputes tax and gross from the net amount.
func (c *CostRecord) Recalculate() error {
	if !c.NetAmount.IsPositive() {
		return money.ErrInvalidAmount
	}
	gross := money.GrossFromNet(c.NetAmount, c.TaxRate)
	c.TaxAmount = gross.Sub(c.NetAmount).Round(2)
	c.GrossAmount = gross.Round(2)
	return nil
}

// RequiresApproval reports whether the record's gross exceeds the threshold
// above which an explicit approval is needed.
func (c *CostRecord) RequiresApproval(threshold decimal.Decimal) bool {
	return c.GrossAmount.GreaterThan(threshold)
}

func (c *CostRecord) Approve(actor, comment string, now time.Time) error {
	if c.ApprovalStatus != CostApprovalOpen || c.PaymentStatus == CostPaymentCancelled {
		return ErrInvalidTransition
	}
	c.ApprovalStatus = CostApprovalApproved
	c.audit("approved", actor, comment, now)
	return nil
}

func (c *CostRecord) Reject(actor, reason string, now time.Time) error {
	if c.ApprovalStatus != CostApprovalOpen || c.PaymentStatus == CostPaymentCancelled {
		return ErrInvalidTransition
	}
	c.ApprovalStatus = CostApprovalRejected
	c.audit("rejected", actor, reason, now)
	return nil
}

func (c *CostRecord) MarkPaid(paymentDetail, actor string, now time.Time) error {
	if c.ApprovalStatus != CostApprovalApproved || c.PaymentStatus != CostPaymentUnpaid {
		return ErrInvalidTransition
	}
	c.PaymentStatus = CostPaymentPaid
	c.PaymentDetail = paymentDetail
	c.PaidAt = &now
	c.audit("paid", actor, paymentDetail, now)
	return nil
}

// Cancel voids an unpaid record; paid records are immutable.
func (c *CostRecord) Cancel(actor, reason string, now time.Time) error {
	if c.PaymentStatus != CostPaymentUnpaid {
		return ErrInvalidTransition
	}
	c.PaymentStatus = CostPaymentCancelled
	c.audit("cancelled", actor, reason, now)
	return nil
}
