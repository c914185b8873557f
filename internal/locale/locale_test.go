package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/textlayout-invoice/internal/locale"
)

func TestDetect_US(t *testing.T) {
	got := locale.Detect("Total due $1,200.00 billed from Texas")
	assert.Equal(t, locale.US, got)
}

func TestDetect_European(t *testing.T) {
	got := locale.Detect("Fakturanummer 123, Summa 1.234,56 SEK, Stockholm")
	assert.Equal(t, locale.European, got)
}

func TestDetect_Unknown_OnTie(t *testing.T) {
	got := locale.Detect("hello world")
	assert.Equal(t, locale.Unknown, got)
}

func TestDetect_GermanSignals(t *testing.T) {
	got := locale.Detect("Rechnung Gesamtbetrag 1.234,56 EUR aus Berlin")
	assert.Equal(t, locale.European, got)
}

func TestString(t *testing.T) {
	assert.Equal(t, "US", locale.US.String())
	assert.Equal(t, "European", locale.European.String())
	assert.Equal(t, "Unknown", locale.Unknown.String())
}
