package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/textlayout-invoice/internal/extract"
)

func TestFindAnchored_LeftOfAnchorWinsFullBonus(t *testing.T) {
	text := "Invoice Number: INV-001"
	matches := extract.FindAnchored(text, `INV-\d+`, extract.InvoiceNumberAnchors, 2)
	require.Len(t, matches, 1)
	assert.Equal(t, "INV-001", matches[0].Value)
	assert.Equal(t, extract.PositionLeft, matches[0].Position)
	assert.Equal(t, 4, matches[0].AnchorBonus) // distance <= 3 -> full bonus
	assert.Equal(t, 6, matches[0].TotalVotes())
}

func TestFindAnchored_AboveAnchorGetsPartialBonus(t *testing.T) {
	text := "Invoice Date:\n2024-01-05"
	matches := extract.FindAnchored(text, `\d{4}-\d{2}-\d{2}`, extract.InvoiceDateAnchors, 1)
	require.Len(t, matches, 1)
	assert.Equal(t, extract.PositionAbove, matches[0].Position)
	assert.Greater(t, matches[0].AnchorBonus, 0)
}

func TestFindAnchored_NoAnchorYieldsBaseVotesOnly(t *testing.T) {
	text := "random figure 42 with no label nearby at all in this long sentence"
	matches := extract.FindAnchored(text, `\d+`, extract.InvoiceNumberAnchors, 1)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].AnchorBonus)
	assert.Equal(t, 1, matches[0].TotalVotes())
}

func TestExtractBest_NoMatch(t *testing.T) {
	result := extract.ExtractBest("no value pattern here", `XYZ\d+`, extract.InvoiceNumberAnchors, 2)
	assert.Equal(t, extract.NoMatch, result)
	assert.False(t, result.HasValue())
}

func TestExtractBestAcrossVariants_SumsVotesAndTieBreaksByInsertionOrder(t *testing.T) {
	results := []extract.Result{{Value: "A", Votes: 1}, {Value: "B", Votes: 1}}
	fake := fakeExtractor{results: results}
	ctx := extract.Context{}
	best, ok := extract.ExtractBestAcrossVariants([]string{"t1", "t2"}, ctx, []extract.Extractor{fake})
	require.True(t, ok)
	assert.Equal(t, "A", best) // A and B tie at 2 votes each; A was seen first
}

func TestExtractAllAcrossVariants_OrdersByVotesDescending(t *testing.T) {
	fake := fakeExtractor{results: []extract.Result{{Value: "low", Votes: 1}, {Value: "high", Votes: 5}}}
	ctx := extract.Context{}
	tallies := extract.ExtractAllAcrossVariants([]string{"t1"}, ctx, []extract.Extractor{fake})
	require.Len(t, tallies, 2)
	assert.Equal(t, "high", tallies[0].Value)
	assert.Equal(t, "low", tallies[1].Value)
}

type fakeExtractor struct {
	results []extract.Result
}

func (f fakeExtractor) Name() string { return "fake" }

func (f fakeExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(f.results)
}

func (f fakeExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return f.results
}
