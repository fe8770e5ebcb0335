package response

import (
	"time"

	"github.com/samber/lo"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
)

type FollowUpResponse struct {
	Kind     string    `json:"kind"`
	Outcome  string    `json:"outcome,omitempty"`
	NextStep string    `json:"next_step,omitempty"`
	Actor    string    `json:"actor,omitempty"`
	Date     time.Time `json:"date"`
}

type QuoteResponse struct {
	ID            string `json:"id"`
	Number        string `json:"number,omitempty"`
	CustomerID    string `json:"customer_id"`
	ProjectID     string `json:"project_id,omitempty"`
	PredecessorID string `json:"predecessor_id,omitempty"`

	IssueDate  time.Time `json:"issue_date"`
	ValidUntil time.Time `json:"valid_until"`

	Status        string                 `json:"status"`
	StatusHistory []StatusChangeResponse `json:"status_history,omitempty"`
	SendLog       []SendRecordResponse   `json:"send_log,omitempty"`
	FollowUps     []FollowUpResponse     `json:"follow_ups,omitempty"`

	Items         []LineItemResponse `json:"items"`
	OptionalItems []LineItemResponse `json:"optional_items,omitempty"`

	DiscountPercent string `json:"discount_percent"`
	DiscountAmount  string `json:"discount_amount"`

	NetTotal         string             `json:"net_total"`
	TotalDiscount    string             `json:"total_discount"`
	TaxBreakdown     []TaxGroupResponse `json:"tax_breakdown,omitempty"`
	TaxTotal         string             `json:"tax_total"`
	GrossTotal       string             `json:"gross_total"`
	ConvertedOrderID string             `json:"converted_order_id,omitempty"`

	Notes   string `json:"notes,omitempty"`
	Version int    `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromQuote(q *entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:            q.ID,
		Number:        q.Number,
		CustomerID:    q.CustomerID,
		ProjectID:     q.ProjectID,
		PredecessorID: q.PredecessorID,
		IssueDate:     q.IssueDate,
		ValidUntil:    q.ValidUntil,
		Status:        string(q.Status),
		StatusHistory: fromStatusHistory(q.StatusHistory),
		SendLog:       fromSendLog(q.SendLog),
		FollowUps: lo.Map(q.FollowUps, func(f entities.FollowUpRecord, _ int) FollowUpResponse {
			return FollowUpResponse(f)
		}),
		Items:            fromLineItems(q.Items),
		OptionalItems:    fromLineItems(q.OptionalItems),
		DiscountPercent:  q.DiscountPercent.String(),
		DiscountAmount:   amount(q.DiscountAmount),
		NetTotal:         amount(q.NetTotal),
		TotalDiscount:    amount(q.TotalDiscount),
		TaxBreakdown:     fromTaxBreakdown(q.TaxBreakdown),
		TaxTotal:         amount(q.TaxTotal),
		GrossTotal:       amount(q.GrossTotal),
		ConvertedOrderID: q.ConvertedOrderID,
		Notes:            q.Notes,
		Version:          q.Version,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// SweepResponse reports one expiry sweep run.
type SweepResponse struct {
	Expired int `json:"expired"`
}
