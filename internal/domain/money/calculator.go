package money

import (
	"errors"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var (
	hundred = decimal.NewFromInt(100)

	// Epsilon is the tolerance under which an outstanding balance is treated
	// as fully settled.
	Epsilon = decimal.RequireFromString("0.01")
)

// AllowedTaxRates are the tax rates a line item may carry, in percent.
var AllowedTaxRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(7),
	decimal.NewFromInt(19),
}

func IsAllowedTaxRate(rate decimal.Decimal) bool {
	return lo.ContainsBy(AllowedTaxRates, func(r decimal.Decimal) bool {
		return r.Equal(rate)
	})
}

// LineAmounts is the result of pricing a single line item.
type LineAmounts struct {
	Net            decimal.Decimal
	DiscountAmount decimal.Decimal
}

// LineTotal prices one line: net = quantity*unitPrice - discount.
//
// A percentage discount (0-100) takes precedence over an absolute discount
// amount. The discount is capped at the undiscounted line value so the net
// never goes negative. Intermediate values are not rounded; rounding happens
// once on the document totals.
func LineTotal(quantity, unitPrice, discountPercent, discountAmount decimal.Decimal) (LineAmounts, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return LineAmounts{}, ErrInvalidAmount
	}
	if unitPrice.IsNegative() {
		return LineAmounts{}, ErrInvalidAmount
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return LineAmounts{}, ErrInvalidAmount
	}
	if discountAmount.IsNegative() {
		return LineAmounts{}, ErrInvalidAmount
	}

	base := quantity.Mul(unitPrice)

	discount := discountAmount
	if discountPercent.IsPositive() {
		discount = base.Mul(discountPercent).Div(hundred)
	}
	if discount.GreaterThan(base) {
		discount = base
	}

	return LineAmounts{Net: base.Sub(discount), DiscountAmount: discount}, nil
}

// GrossFromNet applies a percentage tax rate: gross = net * (1 + rate/100).
func GrossFromNet(net, taxRate decimal.Decimal) decimal.Decimal {
	return net.Add(net.Mul(taxRate).Div(hundred))
}

// TaxLine is the slice of a line item the aggregator needs.
type TaxLine struct {
	Net     decimal.Decimal
	TaxRate decimal.Decimal
}

// TaxGroup is the aggregate of all lines sharing one tax rate.
type TaxGroup struct {
	Rate  decimal.Decimal
	Net   decimal.Decimal
	Tax   decimal.Decimal
	Gross decimal.Decimal
}

// AggregateByTaxRate groups lines by tax rate and computes per-group net, tax
// and gross. Groups are ordered by ascending rate so the breakdown is
// deterministic. Group amounts are rounded half-up to two decimals; the tax is
// computed on the unrounded group net, not per line, to avoid accumulating
// per-line rounding drift.
func AggregateByTaxRate(lines []TaxLine) []TaxGroup {
	byRate := lo.GroupBy(lines, func(l TaxLine) string {
		return l.TaxRate.String()
	})

	groups := make([]TaxGroup, 0, len(byRate))
	for _, rateLines := range byRate {
		rate := rateLines[0].TaxRate
		net := decimal.Zero
		for _, l := range rateLines {
			net = net.Add(l.Net)
		}
		tax := net.Mul(rate).Div(hundred)
		groups = append(groups, TaxGroup{
			Rate:  rate,
			Net:   net.Round(2),
			Tax:   tax.Round(2),
			Gross: net.Add(tax).Round(2),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Rate.LessThan(groups[j].Rate)
	})
	return groups
}

// DocumentDiscount is the result of applying a document-level discount.
type DocumentDiscount struct {
	DiscountAmount decimal.Decimal
	DiscountedNet  decimal.Decimal
}

// ApplyDocumentDiscount reduces a document net by a percentage or absolute
// discount. Percent takes precedence when both are set; the discounted net is
// floored at zero.
func ApplyDocumentDiscount(net, percent, amount decimal.Decimal) (DocumentDiscount, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return DocumentDiscount{}, ErrInvalidAmount
	}
	if amount.IsNegative() {
		return DocumentDiscount{}, ErrInvalidAmount
	}

	discount := amount
	if percent.IsPositive() {
		discount = net.Mul(percent).Div(hundred)
	}
	if discount.GreaterThan(net) {
		discount = net
	}

	return DocumentDiscount{DiscountAmount: discount, DiscountedNet: net.Sub(discount)}, nil
}
