package response

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
)

// Monetary amounts are rendered as fixed two-decimal strings so no consumer
// ever sees a float artefact; tax rates keep their natural precision.

func amount(d decimal.Decimal) string { return d.StringFixed(2) }

type LineItemResponse struct {
	Position        int    `json:"position"`
	Description     string `json:"description"`
	Category        string `json:"category,omitempty"`
	Quantity        string `json:"quantity"`
	Unit            string `json:"unit,omitempty"`
	UnitPrice       string `json:"unit_price"`
	DiscountPercent string `json:"discount_percent"`
	DiscountAmount  string `json:"discount_amount"`
	TaxRate         string `json:"tax_rate"`
	Net             string `json:"net"`
	Gross           string `json:"gross"`
}

func fromLineItem(it entities.LineItem) LineItemResponse {
	return LineItemResponse{
		Position:        it.Position,
		Description:     it.Description,
		Category:        it.Category,
		Quantity:        it.Quantity.String(),
		Unit:            it.Unit,
		UnitPrice:       amount(it.UnitPrice),
		DiscountPercent: it.DiscountPercent.String(),
		DiscountAmount:  amount(it.DiscountAmount),
		TaxRate:         it.TaxRate.String(),
		Net:             amount(it.Net),
		Gross:           amount(it.Gross),
	}
}

func fromLineItems(items []entities.LineItem) []LineItemResponse {
	if len(items) == 0 {
		return nil
	}
	return lo.Map(items, func(it entities.LineItem, _ int) LineItemResponse {
		return fromLineItem(it)
	})
}

type TaxGroupResponse struct {
	Rate  string `json:"rate"`
	Net   string `json:"net"`
	Tax   string `json:"tax"`
	Gross string `json:"gross"`
}

func fromTaxBreakdown(groups []money.TaxGroup) []TaxGroupResponse {
	if len(groups) == 0 {
		return nil
	}
	return lo.Map(groups, func(g money.TaxGroup, _ int) TaxGroupResponse {
		return TaxGroupResponse{
			Rate:  g.Rate.String(),
			Net:   amount(g.Net),
			Tax:   amount(g.Tax),
			Gross: amount(g.Gross),
		}
	})
}

type StatusChangeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

func fromStatusHistory(history []entities.StatusChange) []StatusChangeResponse {
	if len(history) == 0 {
		return nil
	}
	return lo.Map(history, func(sc entities.StatusChange, _ int) StatusChangeResponse {
		return StatusChangeResponse(sc)
	})
}

type SendRecordResponse struct {
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Actor     string    `json:"actor,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}

func fromSendLog(log []entities.SendRecord) []SendRecordResponse {
	if len(log) == 0 {
		return nil
	}
	return lo.Map(log, func(sr entities.SendRecord, _ int) SendRecordResponse {
		return SendRecordResponse(sr)
	})
}
