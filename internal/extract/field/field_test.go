package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/textlayout-invoice/internal/extract"
	"github.com/rezonia/textlayout-invoice/internal/extract/field"
	"github.com/rezonia/textlayout-invoice/internal/locale"
)

func ctxFor(text string, loc locale.Locale) extract.Context {
	return extract.Context{Text: text, Lines: splitLines(text), Locale: loc}
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}

func TestInvoiceNumberColonExtractor(t *testing.T) {
	ctx := ctxFor("Invoice Number: INV-2024-0456", locale.Unknown)
	result := field.InvoiceNumberColonExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "INV-2024-0456", result.Value)
}

func TestInvPrefixExtractor(t *testing.T) {
	ctx := ctxFor("Order summary, ref INV123456 confirmed", locale.Unknown)
	result := field.InvPrefixExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "INV123456", result.Value)
}

func TestCreditNoteNumberExtractor(t *testing.T) {
	ctx := ctxFor("Credit Note Number: CN-88213", locale.Unknown)
	result := field.CreditNoteNumberExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "CN-88213", result.Value)
}

func TestAnchoredCurrencyExtractor_NormalizesSymbol(t *testing.T) {
	ctx := ctxFor("Total: €1,250.00", locale.European)
	result := field.AnchoredCurrencyExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "EUR", result.Value)
}

func TestDetectedCurrencyExtractor_Fallback(t *testing.T) {
	ctx := ctxFor("Pay 500 kr before the end of month", locale.Unknown)
	result := field.DetectedCurrencyExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "SEK", result.Value)
}

func TestAnchoredTotalAmountExtractor_PrefersTotalDueLine(t *testing.T) {
	ctx := ctxFor("Subtotal: $900.00\nTax: $90.00\nTotal Due: $990.00", locale.US)
	result := field.AnchoredTotalAmountExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "990.00", result.Value)
}

func TestAnchoredTotalAmountExtractor_RejectsVATPercentLine(t *testing.T) {
	ctx := ctxFor("VAT 25%\nTotal: $100.00", locale.US)
	result := field.AnchoredTotalAmountExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.NotContains(t, result.Value, "25")
}

func TestVatRateExtractor(t *testing.T) {
	ctx := ctxFor("VAT 25% included", locale.Unknown)
	result := field.VatRateExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "25", result.Value)
}

func TestSubtotalExtractor(t *testing.T) {
	ctx := ctxFor("Subtotal: 800.00", locale.US)
	result := field.SubtotalExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
}

func TestSwedishReverseVatExtractor(t *testing.T) {
	ctx := ctxFor("125,00 Moms (25%)", locale.European)
	result := field.SwedishReverseVatExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "125,00", result.Value)
}

func TestAnchoredInvoiceDateExtractor_PairedISO(t *testing.T) {
	ctx := ctxFor("Invoice date   Due date\n2024-01-05   2024-02-05", locale.Unknown)
	result := field.AnchoredInvoiceDateExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "2024-01-05", result.Value)
}

func TestAnyDateExtractor_Fallback(t *testing.T) {
	ctx := ctxFor("Some note mentioning 2024-03-09 in passing", locale.Unknown)
	result := field.AnyDateExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "2024-03-09", result.Value)
}

func TestCompanyWithSuffixExtractor(t *testing.T) {
	ctx := ctxFor("Invoice from Acme Logistics AB for consulting work", locale.Unknown)
	result := field.CompanyWithSuffixExtractor{}.Extract(ctx)
	require.True(t, result.HasValue())
	assert.Equal(t, "Acme Logistics AB", result.Value)
}

func TestCompanyWithSuffixExtractor_ExcludesLeadWord(t *testing.T) {
	ctx := ctxFor("Bill Consulting Ltd was not the vendor here", locale.Unknown)
	result := field.CompanyWithSuffixExtractor{}.Extract(ctx)
	assert.False(t, result.HasValue())
}

func TestExtractBestAcrossVariants_InvoiceNumber(t *testing.T) {
	texts := []string{"Invoice Number: INV-2024-0456", "some other noisy variant text"}
	ctx := extract.Context{Locale: locale.Unknown}
	best, ok := extract.ExtractBestAcrossVariants(texts, ctx, field.InvoiceNumberExtractors)
	require.True(t, ok)
	assert.Equal(t, "INV-2024-0456", best)
}
