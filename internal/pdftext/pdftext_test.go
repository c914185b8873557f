package pdftext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/textlayout-invoice/internal/pdftext"
)

func TestFromText_BuildsSingleVariant(t *testing.T) {
	result := pdftext.FromText("Invoice Total: 100.00 EUR\nDate: 2024-01-05", "inline")
	require.Len(t, result.Variants, 1)
	assert.Equal(t, "inline", result.Variants[0].ExtractorName)
	assert.Greater(t, result.Variants[0].QualityScore, 0.0)
}

func TestFromText_BlankTextYieldsEmptyResult(t *testing.T) {
	result := pdftext.FromText("   ", "inline")
	assert.Empty(t, result.Variants)
}

func TestResult_BestTextPicksHighestScore(t *testing.T) {
	result := pdftext.Result{Variants: []pdftext.Variant{
		{Text: "garbled", ExtractorName: "a", QualityScore: 0.1},
		{Text: "Invoice Total: 100.00 EUR Date: 2024-01-05 VAT 20%", ExtractorName: "b", QualityScore: 0.8},
	}}
	best, ok := result.BestText()
	require.True(t, ok)
	assert.Equal(t, "Invoice Total: 100.00 EUR Date: 2024-01-05 VAT 20%", best)
}

func TestCalculateSimilarity_IdenticalTextsScoreOne(t *testing.T) {
	text := "Invoice total amount due 100.00 EUR"
	assert.Equal(t, 1.0, pdftext.CalculateSimilarity(text, text))
}

func TestCalculateSimilarity_BlankInputScoresZero(t *testing.T) {
	assert.Equal(t, 0.0, pdftext.CalculateSimilarity("", "something"))
}

func TestSerializeDeserializeVariants_RoundTrips(t *testing.T) {
	result := pdftext.Result{Variants: []pdftext.Variant{
		{Text: "first rendering", ExtractorName: extractorA, QualityScore: 0.5},
		{Text: "second rendering", ExtractorName: extractorB, QualityScore: 0.4},
	}}

	serialized, ok := pdftext.SerializeVariants(result)
	require.True(t, ok)

	roundTripped, ok := pdftext.DeserializeVariants(serialized)
	require.True(t, ok)
	require.Len(t, roundTripped.Variants, 2)

	byName := map[string]string{}
	for _, v := range roundTripped.Variants {
		byName[v.ExtractorName] = v.Text
	}
	assert.Equal(t, "first rendering", byName[extractorA])
	assert.Equal(t, "second rendering", byName[extractorB])
}

func TestDeserializeVariants_BlankInput(t *testing.T) {
	_, ok := pdftext.DeserializeVariants("")
	assert.False(t, ok)
}

const (
	extractorA = "PdfCpu-Default"
	extractorB = "Poppler-pdftotext"
)
