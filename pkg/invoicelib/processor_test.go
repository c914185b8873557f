package invoicelib_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/textlayout-invoice/pkg/invoicelib"
)

func TestNewProcessor(t *testing.T) {
	opts := invoicelib.DefaultPipelineOptions()
	opts.EnableLLM = false

	proc := invoicelib.NewProcessor(opts)
	require.NotNil(t, proc)
}

func TestNewDefaultProcessor(t *testing.T) {
	proc := invoicelib.NewDefaultProcessor()
	require.NotNil(t, proc)
}

func TestDefaultPipelineOptions(t *testing.T) {
	opts := invoicelib.DefaultPipelineOptions()

	assert.Equal(t, 0.90, opts.TemplateThreshold)
	assert.Equal(t, 0.85, opts.LLMThreshold)
	assert.Equal(t, 0.70, opts.ReviewThreshold)
	assert.False(t, opts.EnableLLM)
	assert.False(t, opts.EnableOCR)
	assert.True(t, opts.ValidateAfterExtraction)
	assert.Nil(t, opts.LLMExtractor)
}

func TestProcessorProcessPDF(t *testing.T) {
	opts := invoicelib.DefaultPipelineOptions()
	proc := invoicelib.NewProcessor(opts)

	// Not a real PDF, but carries the magic bytes: ProcessPDF never
	// returns an error, only a zero-confidence result with warnings.
	data := []byte("%PDF-1.4\nnot a real PDF body")

	result, err := proc.ProcessPDF(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "textlayout", result.Method)
}

func TestProcessorProcess_AutoDetectPDF(t *testing.T) {
	opts := invoicelib.DefaultPipelineOptions()
	proc := invoicelib.NewProcessor(opts)

	data := []byte("%PDF-1.4\nnot a real PDF body")

	result, err := proc.Process(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "textlayout", result.Method)
}

func TestProcessorProcess_InvalidFormat(t *testing.T) {
	opts := invoicelib.DefaultPipelineOptions()
	proc := invoicelib.NewProcessor(opts)

	// Random binary data that's not a known format
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}

	_, err := proc.Process(context.Background(), bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestProcessorProcessBatch(t *testing.T) {
	opts := invoicelib.DefaultPipelineOptions()
	proc := invoicelib.NewProcessor(opts)

	pdf1 := []byte("%PDF-1.4\nfirst invoice")
	pdf2 := []byte("%PDF-1.4\nsecond invoice")

	results, err := proc.ProcessBatch(context.Background(), []io.Reader{
		bytes.NewReader(pdf1), bytes.NewReader(pdf2),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, "textlayout", r.Method)
	}
}

func TestExtractionResult_NeedsReview(t *testing.T) {
	opts := invoicelib.DefaultPipelineOptions()
	opts.ReviewThreshold = 0.90 // Set high threshold to trigger review flag
	proc := invoicelib.NewProcessor(opts)

	data := []byte("%PDF-1.4\nunrecognizable body")

	result, err := proc.ProcessPDF(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)

	// An unrecognizable PDF scores well below 0.90, so it needs review.
	assert.True(t, result.NeedsReview)
}

// Test re-exported types
func TestReExportedTypes(t *testing.T) {
	// Verify that types are properly re-exported
	var invoice invoicelib.Invoice
	invoice.Number = "12345"
	assert.Equal(t, "12345", invoice.Number)

	var party invoicelib.Party
	party.TaxID = "0123456789"
	assert.Equal(t, "0123456789", party.TaxID)

	var item invoicelib.LineItem
	item.Name = "Test Item"
	assert.Equal(t, "Test Item", item.Name)

	// Test VAT rates
	assert.Equal(t, invoicelib.VATRate(0), invoicelib.VATRate0)
	assert.Equal(t, invoicelib.VATRate(5), invoicelib.VATRate5)
	assert.Equal(t, invoicelib.VATRate(10), invoicelib.VATRate10)
}
