package repository

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
)

// Money is stored as fixed two-decimal strings and timestamps as RFC3339Nano
// UTC strings; DynamoDB has no native decimal or time type and float64
// attributes would reintroduce the rounding drift the engine avoids.

func intToString(v int) string {
	return strconv.Itoa(v)
}

func decToString(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func rateToString(d decimal.Decimal) string {
	return d.String()
}

func stringToDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func timeToString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func stringToTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

type lineItemRecord struct {
	Position        int    `dynamodbav:"position"`
	Description     string `dynamodbav:"description"`
	Category        string `dynamodbav:"category,omitempty"`
	Quantity        string `dynamodbav:"quantity"`
	Unit            string `dynamodbav:"unit,omitempty"`
	UnitPrice       string `dynamodbav:"unit_price"`
	DiscountPercent string `dynamodbav:"discount_percent"`
	DiscountAmount  string `dynamodbav:"discount_amount"`
	TaxRate         string `dynamodbav:"tax_rate"`
	Net             string `dynamodbav:"net"`
	Gross           string `dynamodbav:"gross"`
}

func toLineItemRecords(items []entities.LineItem) []lineItemRecord {
	out := make([]lineItemRecord, len(items))
	for i, it := range items {
		out[i] = lineItemRecord{
			Position:        it.Position,
			Description:     it.Description,
			Category:        it.Category,
			Quantity:        it.Quantity.String(),
			Unit:            it.Unit,
			UnitPrice:       decToString(it.UnitPrice),
			DiscountPercent: rateToString(it.DiscountPercent),
			DiscountAmount:  decToString(it.DiscountAmount),
			TaxRate:         rateToString(it.TaxRate),
			Net:             decToString(it.Net),
			Gross:           decToString(it.Gross),
		}
	}
	return out
}

func fromLineItemRecords(records []lineItemRecord) []entities.LineItem {
	if len(records) == 0 {
		return nil
	}
	out := make([]entities.LineItem, len(records))
	for i, r := range records {
		out[i] = entities.LineItem{
			Position:        r.Position,
			Description:     r.Description,
			Category:        r.Category,
			Quantity:        stringToDec(r.Quantity),
			Unit:            r.Unit,
			UnitPrice:       stringToDec(r.UnitPrice),
			DiscountPercent: stringToDec(r.DiscountPercent),
			DiscountAmount:  stringToDec(r.DiscountAmount),
			TaxRate:         stringToDec(r.TaxRate),
			Net:             stringToDec(r.Net),
			Gross:           stringToDec(r.Gross),
		}
	}
	return out
}

type statusChangeRecord struct {
	Status    string `dynamodbav:"status"`
	Timestamp string `dynamodbav:"timestamp"`
	Actor     string `dynamodbav:"actor"`
	Reason    string `dynamodbav:"reason,omitempty"`
}

func toStatusChangeRecords(changes []entities.StatusChange) []statusChangeRecord {
	out := make([]statusChangeRecord, len(changes))
	for i, c := range changes {
		out[i] = statusChangeRecord{
			Status:    c.Status,
			Timestamp: timeToString(c.Timestamp),
			Actor:     c.Actor,
			Reason:    c.Reason,
		}
	}
	return out
}

func fromStatusChangeRecords(records []statusChangeRecord) []entities.StatusChange {
	if len(records) == 0 {
		return nil
	}
	out := make([]entities.StatusChange, len(records))
	for i, r := range records {
		out[i] = entities.StatusChange{
			Status:    r.Status,
			Timestamp: stringToTime(r.Timestamp),
			Actor:     r.Actor,
			Reason:    r.Reason,
		}
	}
	return out
}

type taxGroupRecord struct {
	Rate  string `dynamodbav:"rate"`
	Net   string `dynamodbav:"net"`
	Tax   string `dynamodbav:"tax"`
	Gross string `dynamodbav:"gross"`
}

func toTaxGroupRecords(groups []money.TaxGroup) []taxGroupRecord {
	out := make([]taxGroupRecord, len(groups))
	for i, g := range groups {
		out[i] = taxGroupRecord{
			Rate:  rateToString(g.Rate),
			Net:   decToString(g.Net),
			Tax:   decToString(g.Tax),
			Gross: decToString(g.Gross),
		}
	}
	return out
}

func fromTaxGroupRecords(records []taxGroupRecord) []money.TaxGroup {
	if len(records) == 0 {
		return nil
	}
	out := make([]money.TaxGroup, len(records))
	for i, r := range records {
		out[i] = money.TaxGroup{
			Rate:  stringToDec(r.Rate),
			Net:   stringToDec(r.Net),
			Tax:   stringToDec(r.Tax),
			Gross: stringToDec(r.Gross),
		}
	}
	return out
}

type sendLogRecord struct {
	Channel   string `dynamodbav:"channel"`
	Recipient string `dynamodbav:"recipient"`
	Actor     string `dynamodbav:"actor"`
	SentAt    string `dynamodbav:"sent_at"`
}

func toSendLogRecords(log []entities.SendRecord) []sendLogRecord {
	out := make([]sendLogRecord, len(log))
	for i, s := range log {
		out[i] = sendLogRecord{
			Channel:   s.Channel,
			Recipient: s.Recipient,
			Actor:     s.Actor,
			SentAt:    timeToString(s.SentAt),
		}
	}
	return out
}

func fromSendLogRecords(records []sendLogRecord) []entities.SendRecord {
	if len(records) == 0 {
		return nil
	}
	out := make([]entities.SendRecord, len(records))
	for i, r := range records {
		out[i] = entities.SendRecord{
			Channel:   r.Channel,
			Recipient: r.Recipient,
			Actor:     r.Actor,
			SentAt:    stringToTime(r.SentAt),
		}
	}
	return out
}
