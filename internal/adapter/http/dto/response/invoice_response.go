package response

import (
	"time"

	"github.com/samber/lo"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/usecase"
)

type PaymentResponse struct {
	ID        string    `json:"id"`
	Amount    string    `json:"amount"`
	Date      time.Time `json:"date"`
	Method    string    `json:"method"`
	Reference string    `json:"reference,omitempty"`
}

type ReminderResponse struct {
	Level    int       `json:"level"`
	RaisedAt time.Time `json:"raised_at"`
	DueDate  time.Time `json:"due_date"`
	Fee      string    `json:"fee"`
}

type InvoiceResponse struct {
	ID         string `json:"id"`
	Number     string `json:"number,omitempty"`
	CustomerID string `json:"customer_id"`
	ProjectID  string `json:"project_id,omitempty"`
	QuoteID    string `json:"quote_id,omitempty"`

	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`

	Status        string                 `json:"status"`
	StatusHistory []StatusChangeResponse `json:"status_history,omitempty"`
	SendLog       []SendRecordResponse   `json:"send_log,omitempty"`

	Items []LineItemResponse `json:"items"`

	DiscountPercent string `json:"discount_percent"`
	DiscountAmount  string `json:"discount_amount"`

	NetTotal      string             `json:"net_total"`
	TotalDiscount string             `json:"total_discount"`
	TaxBreakdown  []TaxGroupResponse `json:"tax_breakdown,omitempty"`
	TaxTotal      string             `json:"tax_total"`
	GrossTotal    string             `json:"gross_total"`

	Payments          []PaymentResponse `json:"payments,omitempty"`
	PaidAmount        string            `json:"paid_amount"`
	OutstandingAmount string            `json:"outstanding_amount"`

	Reminders     []ReminderResponse `json:"reminders,omitempty"`
	ReminderLevel int                `json:"reminder_level"`

	Notes   string `json:"notes,omitempty"`
	Version int    `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromInvoice(inv *entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		CustomerID:    inv.CustomerID,
		ProjectID:     inv.ProjectID,
		QuoteID:       inv.QuoteID,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Status:        string(inv.Status),
		StatusHistory: fromStatusHistory(inv.StatusHistory),
		SendLog:       fromSendLog(inv.SendLog),
		Items:         fromLineItems(inv.Items),
		Payments: lo.Map(inv.Payments, func(p entities.Payment, _ int) PaymentResponse {
			return PaymentResponse{
				ID:        p.ID,
				Amount:    amount(p.Amount),
				Date:      p.Date,
				Method:    p.Method,
				Reference: p.Reference,
			}
		}),
		Reminders: lo.Map(inv.Reminders, func(r entities.Reminder, _ int) ReminderResponse {
			return ReminderResponse{
				Level:    r.Level,
				RaisedAt: r.RaisedAt,
				DueDate:  r.DueDate,
				Fee:      amount(r.Fee),
			}
		}),
		ReminderLevel:     inv.ReminderLevel(),
		DiscountPercent:   inv.DiscountPercent.String(),
		DiscountAmount:    amount(inv.DiscountAmount),
		NetTotal:          amount(inv.NetTotal),
		TotalDiscount:     amount(inv.TotalDiscount),
		TaxBreakdown:      fromTaxBreakdown(inv.TaxBreakdown),
		TaxTotal:          amount(inv.TaxTotal),
		GrossTotal:        amount(inv.GrossTotal),
		PaidAmount:        amount(inv.PaidAmount),
		OutstandingAmount: amount(inv.OutstandingAmount),
		Notes:             inv.Notes,
		Version:           inv.Version,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}

// DunningResultResponse is one invoice's outcome in a dunning run.
type DunningResultResponse struct {
	InvoiceID string `json:"invoice_id"`
	Number    string `json:"number,omitempty"`
	Level     int    `json:"level,omitempty"`
	Skipped   string `json:"skipped,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DunningRunResponse reports the outcome of one dunning pass.
type DunningRunResponse struct {
	Checked  int                     `json:"checked"`
	Reminded int                     `json:"reminded"`
	Results  []DunningResultResponse `json:"results,omitempty"`
}

func FromDunningResults(results []usecase.DunningResult) DunningRunResponse {
	reminded := 0
	out := make([]DunningResultResponse, len(results))
	for i, r := range results {
		out[i] = DunningResultResponse{
			InvoiceID: r.InvoiceID,
			Number:    r.Number,
			Level:     r.Level,
			Skipped:   r.Skipped,
			Error:     r.Error,
		}
		if r.Skipped == "" && r.Error == "" {
			reminded++
		}
	}
	return DunningRunResponse{
		Checked:  len(results),
		Reminded: reminded,
		Results:  out,
	}
}
