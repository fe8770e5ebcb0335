package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
)

// InvoiceStatus is the lifecycle state of an invoice (Rechnung).
//
// paid and cancelled are terminal. partially_paid, overdue and paid are
// derived from the payment balance on Recalculate; sent, dunned and
// cancelled are set by explicit operations. Balance derivation never
// overrides cancelled and only upgrades dunned to paid.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusDunned        InvoiceStatus = "dunned"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Terminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// MaxReminderLevel is the highest dunning escalation tier.
const MaxReminderLevel = 3

// Payment is one immutable entry of an invoice's payment ledger. Entries are
// never modified or removed, even when the invoice is cancelled afterwards.
type Payment struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
}

// Reminder is one dunning escalation raised on an invoice.
type Reminder struct {
	Level    int             `json:"level"`
	RaisedAt time.Time       `json:"raised_at"`
	DueDate  time.Time       `json:"due_date"`
	Fee      decimal.Decimal `json:"fee"`
}

// Invoice is a billing document (Rechnung) persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Number is assigned exactly once at first persistence. PaidAmount and
// OutstandingAmount are derived from the payment ledger on every
// Recalculate; OutstandingAmount may go negative on overpayment, which is
// kept observable rather than rejected. Version backs optimistic concurrency.
type Invoice struct {
	ID         string `json:"id"`
	Number     string `json:"number,omitempty"`
	CustomerID string `json:"customer_id"`
	ProjectID  string `json:"project_id,omitempty"`
	QuoteID    string `json:"quote_id,omitempty"`

	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`

	Status        InvoiceStatus  `json:"status"`
	StatusHistory []StatusChange `json:"status_history,omitempty"`
	SendLog       []SendRecord   `json:"send_log,omitempty"`

	Items []LineItem `json:"items"`

	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`

	NetTotal      decimal.Decimal  `json:"net_total"`
	TotalDiscount decimal.Decimal  `json:"total_discount"`
	TaxBreakdown  []money.TaxGroup `json:"tax_breakdown,omitempty"`
	TaxTotal      decimal.Decimal  `json:"tax_total"`
	GrossTotal    decimal.Decimal  `json:"gross_total"`

	Payments          []Payment       `json:"payments,omitempty"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`

	Reminders []Reminder `json:"reminders,omitempty"`

	Notes   string `json:"notes,omitempty"`
	Version int    `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recalculate reprices all lines, recomputes totals and the payment balance
// and derives the balance-driven status. All derived values are computed into
// scratch variables first; the invoice is only updated when every step
// succeeded.
func (inv *Invoice) Recalculate(now time.Time) error {
	if len(inv.Items) == 0 {
		return ErrEmptyDocument
	}

	items, taxLines, err := priceLines(inv.Items, 1)
	if err != nil {
		return err
	}
	totals, err := computeTotals(taxLines, inv.DiscountPercent, inv.DiscountAmount)
	if err != nil {
		return err
	}

	paid := decimal.Zero
	for _, p := range inv.Payments {
		paid = paid.Add(p.Amount)
	}
	outstanding := totals.GrossTotal.Sub(paid)

	inv.Items = items
	inv.NetTotal = totals.NetTotal
	inv.TotalDiscount = totals.DiscountAmount
	inv.TaxBreakdown = totals.TaxBreakdown
	inv.TaxTotal = totals.TaxTotal
	inv.GrossTotal = totals.GrossTotal
	inv.PaidAmount = paid.Round(2)
	inv.OutstandingAmount = outstanding.Round(2)

	inv.deriveStatus(now)
	return nil
}

// deriveStatus maps the computed balance onto the status. Manual transitions
// keep precedence: draft and cancelled are never touched, and a dunned
// invoice only leaves dunning once it is settled.
func (inv *Invoice) deriveStatus(now time.Time) {
	switch inv.Status {
	case InvoiceStatusSent, InvoiceStatusPartiallyPaid, InvoiceStatusOverdue, InvoiceStatusDunned:
	default:
		return
	}

	// Balances within one cent of zero count as settled; summing many
	// payments must not leave a phantom remainder.
	settled := inv.OutstandingAmount.Abs().LessThanOrEqual(money.Epsilon) || inv.OutstandingAmount.IsNegative()

	var next InvoiceStatus
	switch {
	case settled:
		next = InvoiceStatusPaid
	case inv.Status == InvoiceStatusDunned:
		return
	case inv.PaidAmount.IsPositive() && inv.OutstandingAmount.LessThan(inv.GrossTotal):
		next = InvoiceStatusPartiallyPaid
	case !inv.DueDate.IsZero() && now.After(inv.DueDate):
		next = InvoiceStatusOverdue
	default:
		return
	}

	if next == inv.Status {
		return
	}
	inv.Status = next
	inv.StatusHistory = append(inv.StatusHistory, StatusChange{
		Status:    string(next),
		Timestamp: now,
		Actor:     ActorSystem,
		Reason:    "balance derivation",
	})
}

// Send issues a draft invoice. The due date defaults to now + dueDays when
// the caller has not set one.
func (inv *Invoice) Send(channel, recipient, actor string, dueDays int, now time.Time) error {
	if inv.Status != InvoiceStatusDraft {
		return ErrInvalidTransition
	}
	inv.Status = InvoiceStatusSent
	inv.StatusHistory = append(inv.StatusHistory, StatusChange{
		Status:    string(InvoiceStatusSent),
		Timestamp: now,
		Actor:     actor,
	})
	inv.SendLog = append(inv.SendLog, SendRecord{
		Channel:   channel,
		Recipient: recipient,
		Actor:     actor,
		SentAt:    now,
	})
	if inv.IssueDate.IsZero() {
		inv.IssueDate = now
	}
	if inv.DueDate.IsZero() {
		inv.DueDate = now.AddDate(0, 0, dueDays)
	}
	return nil
}

// RecordPayment appends an immutable payment entry. Overpayment is accepted;
// the resulting negative outstanding amount is the caller's signal.
func (inv *Invoice) RecordPayment(p Payment, now time.Time) error {
	if inv.Status.Terminal() || inv.Status == InvoiceStatusDraft {
		return ErrInvalidTransition
	}
	if !p.Amount.IsPositive() {
		return money.ErrInvalidAmount
	}
	inv.Payments = append(inv.Payments, p)
	return inv.Recalculate(now)
}

// RaiseReminder escalates the invoice one dunning level and pushes the due
// date out by cadenceDays. Levels beyond MaxReminderLevel are rejected.
func (inv *Invoice) RaiseReminder(fee decimal.Decimal, cadenceDays int, now time.Time) error {
	switch inv.Status {
	case InvoiceStatusSent, InvoiceStatusPartiallyPaid, InvoiceStatusOverdue, InvoiceStatusDunned:
	default:
		return ErrInvalidTransition
	}
	if fee.IsNegative() {
		return money.ErrInvalidAmount
	}

	level := len(inv.Reminders) + 1
	if level > MaxReminderLevel {
		return ErrMaxRemindersExceeded
	}

	dueDate := now.AddDate(0, 0, cadenceDays)
	inv.Reminders = append(inv.Reminders, Reminder{
		Level:    level,
		RaisedAt: now,
		DueDate:  dueDate,
		Fee:      fee,
	})
	inv.DueDate = dueDate

	if inv.Status != InvoiceStatusDunned {
		inv.Status = InvoiceStatusDunned
		inv.StatusHistory = append(inv.StatusHistory, StatusChange{
			Status:    string(InvoiceStatusDunned),
			Timestamp: now,
			Actor:     ActorSystem,
			Reason:    "reminder raised",
		})
	}
	return nil
}

// ReminderLevel is the current escalation tier, 0 when none was raised.
func (inv *Invoice) ReminderLevel() int {
	return len(inv.Reminders)
}

// LastReminderAt returns the raise time of the most recent reminder.
func (inv *Invoice) LastReminderAt() (time.Time, bool) {
	if len(inv.Reminders) == 0 {
		return time.Time{}, false
	}
	return inv.Reminders[len(inv.Reminders)-1].RaisedAt, true
}

// Cancel voids the invoice. Payments already recorded stay in the ledger as
// historical fact; reconciling them against the void document is the
// accounting consumer's concern.
func (inv *Invoice) Cancel(reason, actor string, now time.Time) error {
	if inv.Status.Terminal() {
		return ErrInvalidTransition
	}
	inv.Status = InvoiceStatusCancelled
	inv.StatusHistory = append(inv.StatusHistory, StatusChange{
		Status:    string(InvoiceStatusCancelled),
		Timestamp: now,
		Actor:     actor,
		Reason:    reason,
	})
	if reason != "" {
		if inv.Notes != "" {
			inv.Notes += "\n"
		}
		inv.Notes += "cancelled: " + reason
	}
	return nil
}

// CopyAsDraft returns a fresh draft invoice with the same lines and terms
// but no number, payments, reminders or send history.
func (inv *Invoice) CopyAsDraft(now time.Time) *Invoice {
	return &Invoice{
		CustomerID:      inv.CustomerID,
		ProjectID:       inv.ProjectID,
		QuoteID:         inv.QuoteID,
		Status:          InvoiceStatusDraft,
		Items:           append([]LineItem(nil), inv.Items...),
		DiscountPercent: inv.DiscountPercent,
		DiscountAmount:  inv.DiscountAmount,
		Notes:           inv.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
