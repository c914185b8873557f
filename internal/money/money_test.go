package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/textlayout-invoice/internal/locale"
	"github.com/rezonia/textlayout-invoice/internal/money"
)

func TestDetectCurrency_PriorityOrder(t *testing.T) {
	assert.Equal(t, "EUR", money.DetectCurrency("100 EUR and 100 USD"))
	assert.Equal(t, "USD", money.DetectCurrency("$100 and 100 GBP"))
	assert.Equal(t, "SEK", money.DetectCurrency("100 kr"))
	assert.Equal(t, "", money.DetectCurrency("no currency here"))
}

func TestParseAmount_European(t *testing.T) {
	d, ok := money.ParseAmount("999 999,99", locale.European)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("999999.99")), d.String())
}

func TestParseAmount_US(t *testing.T) {
	d, ok := money.ParseAmount("1,234.56", locale.US)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("1234.56")), d.String())
}

func TestParseAmount_StripsCurrencySymbol(t *testing.T) {
	d, ok := money.ParseAmount("€1.234,56", locale.European)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("1234.56")))
}

func TestParseAmount_Invalid(t *testing.T) {
	_, ok := money.ParseAmount("not a number", locale.Unknown)
	assert.False(t, ok)
}

func TestFindAmountTokens_RejectsAdjacentDigits(t *testing.T) {
	matches := money.FindAmountTokens("order 12345678 total 1,200.00")
	for _, m := range matches {
		assert.NotEqual(t, "123", m.Value)
	}
}

func TestInRange(t *testing.T) {
	assert.True(t, money.InRange(decimal.NewFromInt(100)))
	assert.False(t, money.InRange(decimal.NewFromInt(0)))
	assert.False(t, money.InRange(decimal.NewFromInt(10_000_000)))
}
