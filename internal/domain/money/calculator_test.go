package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestIsAllowedTaxRate(t *testing.T) {
	assert.True(t, IsAllowedTaxRate(dec("0")))
	assert.True(t, IsAllowedTaxRate(dec("7")))
	assert.True(t, IsAllowedTaxRate(dec("19")))
	assert.True(t, IsAllowedTaxRate(dec("19.0")))
	assert.False(t, IsAllowedTaxRate(dec("16")))
	assert.False(t, IsAllowedTaxRate(dec("-7")))
}

func TestLineTotal(t *testing.T) {
	t.Run("plain line", func(t *testing.T) {
		got, err := LineTotal(dec("3"), dec("25.50"), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, got.Net.Equal(dec("76.5")), "net = %s", got.Net)
		assert.True(t, got.DiscountAmount.IsZero())
	})

	t.Run("percent discount", func(t *testing.T) {
		got, err := LineTotal(dec("2"), dec("100"), dec("10"), decimal.Zero)
		require.NoError(t, err)
		assert.True(t, got.Net.Equal(dec("180")), "net = %s", got.Net)
		assert.True(t, got.DiscountAmount.Equal(dec("20")))
	})

	t.Run("percent wins over amount", func(t *testing.T) {
		got, err := LineTotal(dec("1"), dec("100"), dec("10"), dec("50"))
		require.NoError(t, err)
		assert.True(t, got.Net.Equal(dec("90")), "net = %s", got.Net)
	})

	t.Run("amount discount capped at line value", func(t *testing.T) {
		got, err := LineTotal(dec("1"), dec("40"), decimal.Zero, dec("60"))
		require.NoError(t, err)
		assert.True(t, got.Net.IsZero(), "net = %s", got.Net)
		assert.True(t, got.DiscountAmount.Equal(dec("40")))
	})

	t.Run("fractional quantity keeps precision", func(t *testing.T) {
		got, err := LineTotal(dec("2.5"), dec("39.90"), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, got.Net.Equal(dec("99.75")), "net = %s", got.Net)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := LineTotal(decimal.Zero, dec("10"), decimal.Zero, decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = LineTotal(dec("1"), dec("-10"), decimal.Zero, decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = LineTotal(dec("1"), dec("10"), dec("101"), decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = LineTotal(dec("1"), dec("10"), decimal.Zero, dec("-1"))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestGrossFromNet(t *testing.T) {
	assert.True(t, GrossFromNet(dec("100"), dec("19")).Equal(dec("119")))
	assert.True(t, GrossFromNet(dec("100"), dec("7")).Equal(dec("107")))
	assert.True(t, GrossFromNet(dec("100"), dec("0")).Equal(dec("100")))
}

func TestAggregateByTaxRate(t *testing.T) {
	t.Run("mixed rates ordered ascending", func(t *testing.T) {
		groups := AggregateByTaxRate([]TaxLine{
			{Net: dec("200"), TaxRate: dec("19")},
			{Net: dec("50"), TaxRate: dec("7")},
			{Net: dec("30"), TaxRate: dec("0")},
		})
		require.Len(t, groups, 3)

		assert.True(t, groups[0].Rate.Equal(dec("0")))
		assert.True(t, groups[0].Gross.Equal(dec("30")))

		assert.True(t, groups[1].Rate.Equal(dec("7")))
		assert.True(t, groups[1].Tax.Equal(dec("3.50")))
		assert.True(t, groups[1].Gross.Equal(dec("53.50")))

		assert.True(t, groups[2].Rate.Equal(dec("19")))
		assert.True(t, groups[2].Tax.Equal(dec("38.00")))
		assert.True(t, groups[2].Gross.Equal(dec("238.00")))
	})

	t.Run("tax computed on group net, rounded half up", func(t *testing.T) {
		// 3 x 33.335 net at 19%: the group tax is 19.00095 -> 19.00,
		// while summing per-line rounded taxes would drift.
		groups := AggregateByTaxRate([]TaxLine{
			{Net: dec("33.335"), TaxRate: dec("19")},
			{Net: dec("33.335"), TaxRate: dec("19")},
			{Net: dec("33.335"), TaxRate: dec("19")},
		})
		require.Len(t, groups, 1)
		assert.True(t, groups[0].Net.Equal(dec("100.01")), "net = %s", groups[0].Net)
		assert.True(t, groups[0].Tax.Equal(dec("19.00")), "tax = %s", groups[0].Tax)
	})

	t.Run("half cent rounds up", func(t *testing.T) {
		groups := AggregateByTaxRate([]TaxLine{
			{Net: dec("0.50"), TaxRate: dec("19")},
		})
		require.Len(t, groups, 1)
		// 0.095 -> 0.10
		assert.True(t, groups[0].Tax.Equal(dec("0.10")), "tax = %s", groups[0].Tax)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, AggregateByTaxRate(nil))
	})
}

func TestApplyDocumentDiscount(t *testing.T) {
	t.Run("percent", func(t *testing.T) {
		got, err := ApplyDocumentDiscount(dec("200"), dec("5"), decimal.Zero)
		require.NoError(t, err)
		assert.True(t, got.DiscountAmount.Equal(dec("10")))
		assert.True(t, got.DiscountedNet.Equal(dec("190")))
	})

	t.Run("amount capped at net", func(t *testing.T) {
		got, err := ApplyDocumentDiscount(dec("80"), decimal.Zero, dec("100"))
		require.NoError(t, err)
		assert.True(t, got.DiscountAmount.Equal(dec("80")))
		assert.True(t, got.DiscountedNet.IsZero())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ApplyDocumentDiscount(dec("100"), dec("-1"), decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = ApplyDocumentDiscount(dec("100"), decimal.Zero, dec("-1"))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}
