package request

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/entities"
	"github.com/firusaleh/hummert-umzug-app-sub002/internal/domain/money"
)

var (
	ErrInvalidTaxRate  = errors.New("tax rate not allowed")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// LineItemRequest is one priced row in a create/update payload. Position and
// the computed amounts are never accepted from the caller; the engine assigns
// them on recalculation.
type LineItemRequest struct {
	Description     string          `json:"description" binding:"required"`
	Category        string          `json:"category"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
}

func (r LineItemRequest) toEntity() (entities.LineItem, error) {
	if !r.Quantity.IsPositive() {
		return entities.LineItem{}, ErrInvalidQuantity
	}
	if !money.IsAllowedTaxRate(r.TaxRate) {
		return entities.LineItem{}, ErrInvalidTaxRate
	}
	return entities.LineItem{
		Description:     r.Description,
		Category:        r.Category,
		Quantity:        r.Quantity,
		Unit:            r.Unit,
		UnitPrice:       r.UnitPrice,
		DiscountPercent: r.DiscountPercent,
		DiscountAmount:  r.DiscountAmount,
		TaxRate:         r.TaxRate,
	}, nil
}

// ToLineItems validates and converts a request's line items.
func ToLineItems(items []LineItemRequest) ([]entities.LineItem, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]entities.LineItem, len(items))
	for i, it := range items {
		entity, err := it.toEntity()
		if err != nil {
			return nil, err
		}
		out[i] = entity
	}
	return out, nil
}
