package dateparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/textlayout-invoice/internal/dateparse"
	"github.com/rezonia/textlayout-invoice/internal/locale"
)

func TestParse_ISO(t *testing.T) {
	got, ok := dateparse.Parse("Invoice date 2024-06-01", locale.Unknown)
	require.True(t, ok)
	assert.Equal(t, "2024-06-01", got.Format("2006-01-02"))
}

func TestParse_SlashAmbiguous_US(t *testing.T) {
	got, ok := dateparse.Parse("02/03/2024", locale.US)
	require.True(t, ok)
	assert.Equal(t, "2024-02-03", got.Format("2006-01-02"))
}

func TestParse_SlashAmbiguous_European(t *testing.T) {
	got, ok := dateparse.Parse("02/03/2024", locale.European)
	require.True(t, ok)
	assert.Equal(t, "2024-03-02", got.Format("2006-01-02"))
}

func TestParse_MonthNameFirst(t *testing.T) {
	got, ok := dateparse.Parse("January 6, 2026", locale.Unknown)
	require.True(t, ok)
	assert.Equal(t, "2026-01-06", got.Format("2006-01-02"))
}

func TestParse_EuropeanDot(t *testing.T) {
	got, ok := dateparse.Parse("15.08.2024", locale.European)
	require.True(t, ok)
	assert.Equal(t, "2024-08-15", got.Format("2006-01-02"))
}

func TestParse_SwedishMonthCollision(t *testing.T) {
	// "mars" (Swedish March) must win over the English abbreviation "Mar".
	got, ok := dateparse.Parse("6 mars 2026", locale.European)
	require.True(t, ok)
	assert.Equal(t, "2026-03-06", got.Format("2006-01-02"))
}

func TestParse_NoMatch(t *testing.T) {
	_, ok := dateparse.Parse("no date here", locale.Unknown)
	assert.False(t, ok)
}

func TestFindDateTokens(t *testing.T) {
	toks := dateparse.FindDateTokens("Invoice date 2024-01-01 and due date 2024-02-01")
	assert.Equal(t, []string{"2024-01-01", "2024-02-01"}, toks)
}
