package textlayout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/textlayout-invoice/internal/textlayout"
)

func TestDetectBlocks_SingleBlock(t *testing.T) {
	blocks := textlayout.DetectBlocks("hello\nworld", 2)
	assert.Len(t, blocks, 1)
}

func TestDetectBlocks_TwoColumns(t *testing.T) {
	text := "Invoice date 2024-01-01    Due date 2024-02-01"
	blocks := textlayout.DetectBlocks(text, 2)
	assert.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "Invoice date")
	assert.Contains(t, blocks[1], "Due date")
}

func TestDetectBlocks_MinGapDiffers(t *testing.T) {
	text := "AAA BBB" // single space gap
	one := textlayout.DetectBlocks(text, 1)
	two := textlayout.DetectBlocks(text, 2)
	assert.Len(t, one, 2)
	assert.Len(t, two, 1)
}

func TestDetectBlocks_EmptyInput(t *testing.T) {
	blocks := textlayout.DetectBlocks("", 2)
	assert.Empty(t, blocks)
}

func TestFormatOutput_AlignsColumns(t *testing.T) {
	out := textlayout.FormatOutput([]string{"A: 1\nBB: 2\nCCC: 3"})
	lines := strings.Split(out, "\n")
	for _, l := range lines {
		assert.Equal(t, 3, strings.Index(l, ":"))
	}
}

func TestFormatOutput_CollapsesTripleBlank(t *testing.T) {
	out := textlayout.FormatOutput([]string{"a", "b", "c"})
	assert.NotContains(t, out, "\n\n\n")
}

func TestExtract_LabelJoin(t *testing.T) {
	out := textlayout.Extract("Invoice Number\nINV-001", 2)
	assert.Contains(t, out, "Invoice Number: INV-001")
}

func TestExtract_EmptyNeverFails(t *testing.T) {
	assert.Equal(t, "", textlayout.Extract("", 2))
}
