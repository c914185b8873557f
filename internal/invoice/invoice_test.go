package invoice_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/textlayout-invoice/internal/invoice"
	"github.com/rezonia/textlayout-invoice/internal/pdftext"
)

const sampleInvoiceText = `Acme Software AB
Invoice Number: INV-2024-0042
Invoice Date: 2024-03-15
Due Date: 2024-04-14

Bill To:
Example Customer Inc

Consulting services rendered    1200.00 USD

Subtotal: 1200.00 USD
VAT 20%: 240.00 USD
Total: 1440.00 USD
`

func parsedFromText(text string) invoice.ParsedInvoice {
	result := pdftext.FromText(text, "default")
	return invoice.Parse(result, nil)
}

func TestParse_ExtractsCoreFields(t *testing.T) {
	parsed := parsedFromText(sampleInvoiceText)

	assert.Equal(t, "INV-2024-0042", parsed.InvoiceNumber)
	require.NotNil(t, parsed.TotalAmount)
	assert.True(t, parsed.TotalAmount.Equal(decimal.RequireFromString("1440.00")))
}

func TestParse_NoVariantsReturnsZeroConfidence(t *testing.T) {
	parsed := invoice.Parse(pdftext.Result{}, nil)
	assert.Equal(t, 0.0, parsed.Confidence)
	assert.Nil(t, parsed.TotalAmount)
}

func TestParse_UsesEmailEnvelopeAsAdditionalDocument(t *testing.T) {
	email := &invoice.EmailContext{
		From:    `"Acme Billing" <billing@acme-software.com>`,
		Subject: "Invoice INV-2024-0042",
		Body:    "Please find your invoice attached.",
	}

	result := pdftext.FromText(sampleInvoiceText, "default")
	parsed := invoice.Parse(result, email)

	assert.Equal(t, "INV-2024-0042", parsed.InvoiceNumber)
}

func TestCalculateMissingVatValues_DerivesTotalFromSubtotalAndVat(t *testing.T) {
	text := `Invoice Number: INV-1
Subtotal: 100.00 USD
VAT 10%: 10.00 USD
`
	parsed := parsedFromText(text)

	require.NotNil(t, parsed.TotalExcludingVat)
	require.NotNil(t, parsed.VatAmount)
	require.NotNil(t, parsed.TotalAmount)
	assert.True(t, parsed.TotalAmount.Equal(decimal.RequireFromString("110.00")))
}

func TestParse_RejectsVatGreaterThanOrEqualToTotal(t *testing.T) {
	text := `Invoice Number: INV-2
Total: 50.00 USD
VAT: 50.00 USD
`
	parsed := parsedFromText(text)
	assert.Nil(t, parsed.VatAmount)
}

func TestExtractLineItems_SkipsAddressesAndHeaders(t *testing.T) {
	text := `Invoice Number: INV-3
California 94105
Consulting work performed in March    1500.00 USD
Total: 1500.00 USD
`
	parsed := parsedFromText(text)

	require.Len(t, parsed.LineItems, 1)
	assert.Equal(t, "Consulting work performed in March", parsed.LineItems[0].Description)
}

func TestParseSafely_NoVariantsLogsAndReturnsEmpty(t *testing.T) {
	parsed := invoice.ParseSafely(pdftext.Result{}, nil, zerolog.Nop())
	assert.Equal(t, 0.0, parsed.Confidence)
	assert.Empty(t, parsed.Warnings)
}
