package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testQuote() *Quote {
	return &Quote{
		ID:         "q-1",
		Number:     "AG-2026-000001",
		CustomerID: "cust-1",
		Status:     QuoteStatusDraft,
		ValidUntil: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		Items: []LineItem{
			{Description: "Umzugsservice", Quantity: dec("8"), UnitPrice: dec("45"), TaxRate: dec("19")},
		},
	}
}

func TestQuoteLifecycle(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("full path to accepted", func(t *testing.T) {
		q := testQuote()

		if err := q.SubmitForReview("anna", now); err != nil {
			t.Fatalf("review: %v", err)
		}
		if err := q.Send("email", "kunde@example.com", "anna", now); err != nil {
			t.Fatalf("send: %v", err)
		}
		if err := q.FollowUp("call", "interested", "send updated terms", "anna", now); err != nil {
			t.Fatalf("follow up: %v", err)
		}
		if err := q.StartNegotiation("anna", "price pushback", now); err != nil {
			t.Fatalf("negotiation: %v", err)
		}
		if err := q.Accept("order-77", "anna", now); err != nil {
			t.Fatalf("accept: %v", err)
		}

		if q.Status != QuoteStatusAccepted {
			t.Fatalf("expected accepted, got %s", q.Status)
		}
		if q.ConvertedOrderID != "order-77" {
			t.Fatalf("expected converted order id, got %q", q.ConvertedOrderID)
		}
		if len(q.StatusHistory) != 5 {
			t.Fatalf("expected 5 history entries, got %d", len(q.StatusHistory))
		}
		if len(q.SendLog) != 1 || q.SendLog[0].Recipient != "kunde@example.com" {
			t.Fatalf("unexpected send log: %+v", q.SendLog)
		}
		if len(q.FollowUps) != 1 || q.FollowUps[0].Kind != "call" {
			t.Fatalf("unexpected follow ups: %+v", q.FollowUps)
		}
	})

	t.Run("draft may be sent directly", func(t *testing.T) {
		q := testQuote()
		if err := q.Send("email", "kunde@example.com", "anna", now); err != nil {
			t.Fatalf("send from draft: %v", err)
		}
	})

	t.Run("accept is terminal", func(t *testing.T) {
		q := testQuote()
		if err := q.Accept("order-1", "anna", now); err != nil {
			t.Fatalf("accept: %v", err)
		}
		if err := q.Accept("order-2", "anna", now); err != ErrInvalidTransition {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if err := q.Reject("too late", "anna", now); err != ErrInvalidTransition {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if q.ConvertedOrderID != "order-1" {
			t.Fatalf("converted order id must not change, got %q", q.ConvertedOrderID)
		}
	})

	t.Run("reject allowed from any non-terminal state", func(t *testing.T) {
		for _, status := range []QuoteStatus{QuoteStatusDraft, QuoteStatusReview, QuoteStatusSent, QuoteStatusFollowUp, QuoteStatusNegotiation} {
			q := testQuote()
			q.Status = status
			if err := q.Reject("declined", "anna", now); err != nil {
				t.Fatalf("reject from %s: %v", status, err)
			}
		}
	})

	t.Run("invalid jumps rejected", func(t *testing.T) {
		q := testQuote()
		if err := q.FollowUp("call", "", "", "anna", now); err != ErrInvalidTransition {
			t.Fatalf("follow up from draft: expected ErrInvalidTransition, got %v", err)
		}
		if err := q.StartNegotiation("anna", "", now); err != ErrInvalidTransition {
			t.Fatalf("negotiation from draft: expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestQuoteExpireIfOverdue(t *testing.T) {
	past := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	after := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	t.Run("sent quote past validity expires", func(t *testing.T) {
		q := testQuote()
		q.Status = QuoteStatusSent
		changed, err := q.ExpireIfOverdue(after)
		if err != nil {
			t.Fatalf("expire: %v", err)
		}
		if !changed || q.Status != QuoteStatusExpired {
			t.Fatalf("expected expired, got changed=%v status=%s", changed, q.Status)
		}
		last := q.StatusHistory[len(q.StatusHistory)-1]
		if last.Actor != ActorSystem {
			t.Fatalf("expected system actor, got %q", last.Actor)
		}
	})

	t.Run("not yet due", func(t *testing.T) {
		q := testQuote()
		q.Status = QuoteStatusSent
		changed, err := q.ExpireIfOverdue(past)
		if err != nil || changed {
			t.Fatalf("expected no change, got changed=%v err=%v", changed, err)
		}
	})

	t.Run("draft and terminal states untouched", func(t *testing.T) {
		for _, status := range []QuoteStatus{QuoteStatusDraft, QuoteStatusReview, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired} {
			q := testQuote()
			q.Status = status
			changed, err := q.ExpireIfOverdue(after)
			if err != nil || changed {
				t.Fatalf("%s: expected no change, got changed=%v err=%v", status, changed, err)
			}
		}
	})
}

func TestQuoteRecalculate(t *testing.T) {
	t.Run("optional items are listed but not counted", func(t *testing.T) {
		q := testQuote()
		q.OptionalItems = []LineItem{
			{Description: "Packmaterial", Quantity: dec("10"), UnitPrice: dec("3"), TaxRate: dec("19")},
		}

		if err := q.Recalculate(); err != nil {
			t.Fatalf("recalculate: %v", err)
		}

		// 8 x 45 = 360 net, 19% tax.
		if !q.NetTotal.Equal(dec("360")) {
			t.Fatalf("net = %s", q.NetTotal)
		}
		if !q.GrossTotal.Equal(dec("428.40")) {
			t.Fatalf("gross = %s", q.GrossTotal)
		}
		if q.Items[0].Position != 1 || q.OptionalItems[0].Position != 2 {
			t.Fatalf("positions: %d, %d", q.Items[0].Position, q.OptionalItems[0].Position)
		}
		if !q.OptionalItems[0].Net.Equal(dec("30")) {
			t.Fatalf("optional net = %s", q.OptionalItems[0].Net)
		}
	})

	t.Run("document discount before tax", func(t *testing.T) {
		q := testQuote()
		q.DiscountPercent = dec("10")

		if err := q.Recalculate(); err != nil {
			t.Fatalf("recalculate: %v", err)
		}
		if !q.NetTotal.Equal(dec("324")) {
			t.Fatalf("net = %s", q.NetTotal)
		}
		if !q.TotalDiscount.Equal(dec("36")) {
			t.Fatalf("discount = %s", q.TotalDiscount)
		}
		if !q.GrossTotal.Equal(dec("385.56")) {
			t.Fatalf("gross = %s", q.GrossTotal)
		}
	})

	t.Run("recalculate is idempotent", func(t *testing.T) {
		q := testQuote()
		if err := q.Recalculate(); err != nil {
			t.Fatalf("first: %v", err)
		}
		first := q.GrossTotal
		if err := q.Recalculate(); err != nil {
			t.Fatalf("second: %v", err)
		}
		if !q.GrossTotal.Equal(first) {
			t.Fatalf("gross drifted: %s -> %s", first, q.GrossTotal)
		}
	})

	t.Run("pricing error leaves quote untouched", func(t *testing.T) {
		q := testQuote()
		if err := q.Recalculate(); err != nil {
			t.Fatalf("baseline: %v", err)
		}
		before := q.GrossTotal

		q.Items = append(q.Items, LineItem{Description: "broken", Quantity: dec("-1"), UnitPrice: dec("10"), TaxRate: dec("19")})
		if err := q.Recalculate(); err == nil {
			t.Fatal("expected error")
		}
		if !q.GrossTotal.Equal(before) {
			t.Fatalf("totals changed on failed recalculation: %s", q.GrossTotal)
		}
	})
}

func TestQuoteCopyForNewVersion(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	q := testQuote()
	q.Status = QuoteStatusRejected
	q.Version = 4
	q.SendLog = []SendRecord{{Channel: "email"}}
	q.FollowUps = []FollowUpRecord{{Kind: "call"}}
	q.StatusHistory = []StatusChange{{Status: "draft"}}

	next := q.CopyForNewVersion(now)

	if next.Status != QuoteStatusDraft {
		t.Fatalf("expected draft, got %s", next.Status)
	}
	if next.Number != "" || next.ID != "" {
		t.Fatalf("number and id must be unset, got %q %q", next.Number, next.ID)
	}
	if next.PredecessorID != q.ID {
		t.Fatalf("predecessor = %q", next.PredecessorID)
	}
	if next.Version != 0 {
		t.Fatalf("version = %d", next.Version)
	}
	if len(next.SendLog) != 0 || len(next.FollowUps) != 0 || len(next.StatusHistory) != 0 {
		t.Fatal("lifecycle records must not be carried over")
	}
	if len(next.Items) != len(q.Items) {
		t.Fatalf("items not copied: %d", len(next.Items))
	}

	// The copy must be independent of the source.
	next.Items[0].Description = "changed"
	if q.Items[0].Description == "changed" {
		t.Fatal("items share backing array with source")
	}
}

func TestQuoteMutable(t *testing.T) {
	q := testQuote()
	if !q.Mutable() {
		t.Fatal("draft must be mutable")
	}
	q.Status = QuoteStatusReview
	if !q.Mutable() {
		t.Fatal("review must be mutable")
	}
	for _, status := range []QuoteStatus{QuoteStatusSent, QuoteStatusFollowUp, QuoteStatusNegotiation, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired} {
		q.Status = status
		if q.Mutable() {
			t.Fatalf("%s must not be mutable", status)
		}
	}
}
