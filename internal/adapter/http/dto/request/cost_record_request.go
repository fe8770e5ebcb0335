package request

import "github.com/shopspring/decimal"

// CreateCostRecordRequest files a new project cost for approval.
type CreateCostRecordRequest struct {
	ProjectID   string          `json:"project_id"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	NetAmount   decimal.Decimal `json:"net_amount" binding:"required"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	CreatedBy   string          `json:"created_by" binding:"required"`
}

// ApproveCostRecordRequest releases an open cost record.
type ApproveCostRecordRequest struct {
	Actor   string `json:"actor" binding:"required"`
	Comment string `json:"comment"`
}

// RejectCostRecordRequest declines an open cost record.
type RejectCostRecordRequest struct {
	Actor  string `json:"actor" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// MarkCostRecordPaidRequest settles an approved cost record.
type MarkCostRecordPaidRequest struct {
	Actor         string `json:"actor" binding:"required"`
	PaymentDetail string `json:"payment_detail"`
}

// CancelCostRecordRequest voids an unpaid cost record.
type CancelCostRecordRequest struct {
	Actor  string `json:"actor" binding:"required"`
	Reason string `json:"reason"`
}
