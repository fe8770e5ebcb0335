package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
)

// QuoteStatus is the lifecycle state of a quote (Angebot).
//
// accepted, rejected and expired are terminal: no operation may leave them.
type QuoteStatus string

const (
	QuoteStatusDraft       QuoteStatus = "draft"
	QuoteStatusReview      QuoteStatus = "review"
	QuoteStatusSent        QuoteStatus = "sent"
	QuoteStatusFollowUp    QuoteStatus = "follow_up"
	QuoteStatusNegotiation QuoteStatus = "negotiation"
	QuoteStatusAccepted    QuoteStatus = "accepted"
	QuoteStatusRejected    QuoteStatus = "rejected"
	QuoteStatusExpired     QuoteStatus = "expired"
)

func (s QuoteStatus) Terminal() bool {
	switch s {
	case QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// quoteTransitions is the closed transition table; anything not listed is
// rejected with ErrInvalidTransition. accept/reject are modelled separately
// because they are reachable from every non-terminal state.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft:       {QuoteStatusReview, QuoteStatusSent},
	QuoteStatusReview:      {QuoteStatusSent},
	QuoteStatusSent:        {QuoteStatusFollowUp, QuoteStatusNegotiation, QuoteStatusExpired},
	QuoteStatusFollowUp:    {QuoteStatusFollowUp, QuoteStatusNegotiation, QuoteStatusExpired},
	QuoteStatusNegotiation: {QuoteStatusExpired},
}

func (s QuoteStatus) canTransitionTo(next QuoteStatus) bool {
	if next == QuoteStatusAccepted || next == QuoteStatusRejected {
		return !s.Terminal()
	}
	for _, allowed := range quoteTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SendRecord captures one outbound delivery of a document.
type SendRecord struct {
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Actor     string    `json:"actor"`
	SentAt    time.Time `json:"sent_at"`
}

// FollowUpRecord is one follow-up contact on a sent quote. It is kept apart
// from the status history because several follow-ups may happen without a
// status change.
type FollowUpRecord struct {
	Kind     string    `json:"kind"`
	Outcome  string    `json:"outcome,omitempty"`
	NextStep string    `json:"next_step,omitempty"`
	Actor    string    `json:"actor"`
	Date     time.Time `json:"date"`
}

// Quote is a priced proposal (Angebot) persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Number is assigned exactly once at first persistence and is immutable.
// Items participate in the totals; OptionalItems are listed on the document
// but never counted. Version backs optimistic concurrency on save.
type Quote struct {
	ID            string `json:"id"`
	Number        string `json:"number,omitempty"`
	CustomerID    string `json:"customer_id"`
	ProjectID     string `json:"project_id,omitempty"`
	PredecessorID string `json:"predecessor_id,omitempty"`

	IssueDate  time.Time `json:"issue_date"`
	ValidUntil time.Time `json:"valid_until"`

	Status        QuoteStatus      `json:"status"`
	StatusHistory []StatusChange   `json:"status_history,omitempty"`
	SendLog       []SendRecord     `json:"send_log,omitempty"`
	FollowUps     []FollowUpRecord `json:"follow_ups,omitempty"`

	Items         []LineItem `json:"items"`
	OptionalItems []LineItem `json:"optional_items,omitempty"`

	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`

	NetTotal         decimal.Decimal  `json:"net_total"`
	TotalDiscount    decimal.Decimal  `json:"total_discount"`
	TaxBreakdown     []money.TaxGroup `json:"tax_breakdown,omitempty"`
	TaxTotal         decimal.Decimal  `json:"tax_total"`
	GrossTotal       decimal.Decimal  `json:"gross_total"`
	ConvertedOrderID string           `json:"converted_order_id,omitempty"`

	Notes   string `json:"notes,omitempty"`
	Version int    `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Quote) transition(next QuoteStatus, actor, reason string, now time.Time) error {
	if !q.Status.canTransitionTo(next) {
		return ErrInvalidTransition
	}
	q.Status = next
	q.StatusHistory = append(q.StatusHistory, StatusChange{
		Status:    string(next),
		Timestamp: now,
		Actor:     actor,
		Reason:    reason,
	})
	return nil
}

// Recalculate reprices all lines and recomputes the document totals.
//
// Positions are assigned 1..n across required lines first, then optional
// ones. Everything is computed into scratch values and swapped in only on
// success, so a pricing error leaves the quote untouched.
func (q *Quote) Recalculate() error {
	items, taxLines, err := priceLines(q.Items, 1)
	if err != nil {
		return err
	}
	optional, _, err := priceLines(q.OptionalItems, 1+len(items))
	if err != nil {
		return err
	}

	totals, err := computeTotals(taxLines, q.DiscountPercent, q.DiscountAmount)
	if err != nil {
		return err
	}

	q.Items = items
	q.OptionalItems = optional
	q.NetTotal = totals.NetTotal
	q.TotalDiscount = totals.DiscountAmount
	q.TaxBreakdown = totals.TaxBreakdown
	q.TaxTotal = totals.TaxTotal
	q.GrossTotal = totals.GrossTotal
	return nil
}

// Mutable reports whether line items and terms may still be edited.
func (q *Quote) Mutable() bool {
	return q.Status == QuoteStatusDraft || q.Status == QuoteStatusReview
}

func (q *Quote) SubmitForReview(actor string, now time.Time) error {
	return q.transition(QuoteStatusReview, actor, "", now)
}

func (q *Quote) Send(channel, recipient, actor string, now time.Time) error {
	if err := q.transition(QuoteStatusSent, actor, "", now); err != nil {
		return err
	}
	q.SendLog = append(q.SendLog, SendRecord{
		Channel:   channel,
		Recipient: recipient,
		Actor:     actor,
		SentAt:    now,
	})
	return nil
}

func (q *Quote) FollowUp(kind, outcome, nextStep, actor string, now time.Time) error {
	if err := q.transition(QuoteStatusFollowUp, actor, "", now); err != nil {
		return err
	}
	q.FollowUps = append(q.FollowUps, FollowUpRecord{
		Kind:     kind,
		Outcome:  outcome,
		NextStep: nextStep,
		Actor:    actor,
		Date:     now,
	})
	return nil
}

func (q *Quote) StartNegotiation(actor, note string, now time.Time) error {
	return q.transition(QuoteStatusNegotiation, actor, note, now)
}

func (q *Quote) Accept(referenceOrderID, actor string, now time.Time) error {
	if err := q.transition(QuoteStatusAccepted, actor, "", now); err != nil {
		return err
	}
	q.ConvertedOrderID = referenceOrderID
	return nil
}

func (q *Quote) Reject(reason, actor string, now time.Time) error {
	return q.transition(QuoteStatusRejected, actor, reason, now)
}

// ExpireIfOverdue moves a sent/follow-up/negotiation quote past its validity
// date to expired. It reports whether the quote changed, so sweep callers can
// skip the save otherwise.
func (q *Quote) ExpireIfOverdue(now time.Time) (bool, error) {
	switch q.Status {
	case QuoteStatusSent, QuoteStatusFollowUp, QuoteStatusNegotiation:
	default:
		return false, nil
	}
	if q.ValidUntil.IsZero() || !now.After(q.ValidUntil) {
		return false, nil
	}
	if err := q.transition(QuoteStatusExpired, ActorSystem, "validity date passed", now); err != nil {
		return false, err
	}
	return true, nil
}

// CopyForNewVersion returns a fresh draft carrying over lines and terms but
// none of the lifecycle: no number, history, send log or follow-ups. The new
// document links back to the source via PredecessorID; the source itself is
// not touched.
func (q *Quote) CopyForNewVersion(now time.Time) *Quote {
	next := &Quote{
		CustomerID:      q.CustomerID,
		ProjectID:       q.ProjectID,
		PredecessorID:   q.ID,
		IssueDate:       now,
		ValidUntil:      q.ValidUntil,
		Status:          QuoteStatusDraft,
		Items:           append([]LineItem(nil), q.Items...),
		OptionalItems:   append([]LineItem(nil), q.OptionalItems...),
		DiscountPercent: q.DiscountPercent,
		DiscountAmount:  q.DiscountAmount,
		Notes:           q.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return next
}
