package entities

import (
	"github.com/shopspring/decimal"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
)

// documentTotals is the scratch result of a recalculation. It is computed
// fully before any field of the owning document is touched, so a failed
// recalculation never leaves partially updated totals behind.
type documentTotals struct {
	NetTotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxBreakdown   []money.TaxGroup
	TaxTotal       decimal.Decimal
	GrossTotal     decimal.Decimal
}

// computeTotals aggregates unrounded tax lines into document totals. The
// document-level discount is applied to the net before tax; with mixed tax
// rates it is spread proportionally across the groups so the breakdown still
// sums to the overall tax.
func computeTotals(taxLines []money.TaxLine, discountPercent, discountAmount decimal.Decimal) (documentTotals, error) {
	netBefore := decimal.Zero
	for _, l := range taxLines {
		netBefore = netBefore.Add(l.Net)
	}

	docDiscount, err := money.ApplyDocumentDiscount(netBefore, discountPercent, discountAmount)
	if err != nil {
		return documentTotals{}, err
	}

	scaled := taxLines
	if docDiscount.DiscountAmount.IsPositive() && netBefore.IsPositive() {
		factor := docDiscount.DiscountedNet.Div(netBefore)
		scaled = make([]money.TaxLine, len(taxLines))
		for i, l := range taxLines {
			scaled[i] = money.TaxLine{Net: l.Net.Mul(factor), TaxRate: l.TaxRate}
		}
	}

	groups := money.AggregateByTaxRate(scaled)
	taxTotal := decimal.Zero
	for _, g := range groups {
		taxTotal = taxTotal.Add(g.Tax)
	}

	netTotal := docDiscount.DiscountedNet.Round(2)
	return documentTotals{
		NetTotal:       netTotal,
		DiscountAmount: docDiscount.DiscountAmount.Round(2),
		TaxBreakdown:   groups,
		TaxTotal:       taxTotal,
		GrossTotal:     netTotal.Add(taxTotal),
	}, nil
}
