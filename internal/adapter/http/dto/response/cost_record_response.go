package response

import (
	"time"

	"github.com/samber/lo"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
)

type AuditEntryResponse struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type CostRecordResponse struct {
	ID        string `json:"id"`
	Number    string `json:"number,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Category  string `json:"category"`

	Description string `json:"description,omitempty"`
	NetAmount   string `json:"net_amount"`
	TaxRate     string `json:"tax_rate"`
	TaxAmount   string `json:"tax_amount"`
	GrossAmount string `json:"gross_amount"`

	ApprovalStatus string     `json:"approval_status"`
	PaymentStatus  string     `json:"payment_status"`
	PaymentDetail  string     `json:"payment_detail,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`

	CreatedBy string               `json:"created_by"`
	History   []AuditEntryResponse `json:"history,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromCostRecord(c *entities.CostRecord) CostRecordResponse {
	return CostRecordResponse{
		ID:             c.ID,
		Number:         c.Number,
		ProjectID:      c.ProjectID,
		Category:       c.Category,
		Description:    c.Description,
		NetAmount:      amount(c.NetAmount),
		TaxRate:        c.TaxRate.String(),
		TaxAmount:      amount(c.TaxAmount),
		GrossAmount:    amount(c.GrossAmount),
		ApprovalStatus: string(c.ApprovalStatus),
		PaymentStatus:  string(c.PaymentStatus),
		PaymentDetail:  c.PaymentDetail,
		PaidAt:         c.PaidAt,
		CreatedBy:      c.CreatedBy,
		History: lo.Map(c.History, func(e entities.AuditEntry, _ int) AuditEntryResponse {
			return AuditEntryResponse(e)
		}),
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
