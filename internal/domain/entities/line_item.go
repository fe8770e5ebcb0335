package entities

import (
	"github.com/shopspring/decimal"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
)

// LineItem is one priced row of a quote or invoice.
//
// Position, DiscountAmount, Net and Gross are derived fields: the owning
// document assigns them on Recalculate() and they must not be set by callers.
// A percentage discount takes precedence over an absolute one.
type LineItem struct {
	Position        int             `json:"position"`
	Description     string          `json:"description"`
	Category        string          `json:"category,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Net             decimal.Decimal `json:"net"`
	Gross           decimal.Decimal `json:"gross"`
}

// priceLines computes per-line amounts for a slice of items, assigning
// positions starting at startPos. It returns the priced copy together with
// the unrounded tax lines used for document aggregation; the caller swaps the
// copy in only after the whole recalculation succeeded.
func priceLines(items []LineItem, startPos int) ([]LineItem, []money.TaxLine, error) {
	priced := make([]LineItem, len(items))
	taxLines := make([]money.TaxLine, len(items))

	for i, item := range items {
		amounts, err := money.LineTotal(item.Quantity, item.UnitPrice, item.DiscountPercent, item.DiscountAmount)
		if err != nil {
			return nil, nil, err
		}

		item.Position = startPos + i
		item.DiscountAmount = amounts.DiscountAmount.Round(2)
		item.Net = amounts.Net.Round(2)
		item.Gross = money.GrossFromNet(amounts.Net, item.TaxRate).Round(2)
		priced[i] = item
		taxLines[i] = money.TaxLine{Net: amounts.Net, TaxRate: item.TaxRate}
	}

	return priced, taxLines, nil
}
