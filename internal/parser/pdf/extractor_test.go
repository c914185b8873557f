package pdf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rezonia/textlayout-invoice/internal/parser/pdf"
)

func TestNewExtractor(t *testing.T) {
	extractor := pdf.NewExtractor()
	require.NotNil(t, extractor)
}
