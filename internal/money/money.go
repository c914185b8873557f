// Package money tokenizes currency and amount substrings and parses an
// amount string to an exact decimal under a given locale.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/textlayout-invoice/internal/locale"
)

// TokenMatch is a currency or amount token found in text, with its byte
// offset and length.
type TokenMatch struct {
	Value string
	Index int
	Length int
}

// CurrencyTokenPattern matches an ISO currency code, a currency symbol, or
// the bare word "kr". Exported so anchored field extractors can reuse it as
// a value pattern, not just via FindCurrencyTokens.
const CurrencyTokenPattern = `\b(?:USD|EUR|GBP|SEK|NOK|DKK|CHF|INR)\b|[€$£]|\bkr\b`

var currencyTokenPattern = regexp.MustCompile(`(?i)` + CurrencyTokenPattern)

// AmountTokenPattern is the digit-grouping core of an amount token. Go's
// RE2 engine has no lookaround, so the "not adjacent to another digit"
// boundary that the original expresses with (?<!\d)...(?!\d) is enforced by
// FindAmountTokens checking the bytes surrounding each match; callers that
// use this pattern directly (e.g. as an anchored-extraction value pattern)
// don't get that guard and may occasionally match a digit run embedded in a
// longer number.
const AmountTokenPattern = `\d{1,3}(?:[ \t.,]\d{3})+(?:[.,]\d{2})?|\d+(?:[.,]\d{2})?`

var amountCorePattern = regexp.MustCompile(AmountTokenPattern)

var (
	eurCode   = regexp.MustCompile(`(?i)\bEUR\b`)
	usdCode   = regexp.MustCompile(`(?i)\bUSD\b`)
	gbpCode   = regexp.MustCompile(`(?i)\bGBP\b`)
	sekCode   = regexp.MustCompile(`(?i)\bSEK\b`)
	kronaWord = regexp.MustCompile(`\bkr\b`)
	nokCode   = regexp.MustCompile(`(?i)\bNOK\b`)
	dkkCode   = regexp.MustCompile(`(?i)\bDKK\b`)
	chfCode   = regexp.MustCompile(`(?i)\bCHF\b`)

	anyCurrency = regexp.MustCompile(`(?i)[€$£]|EUR|USD|GBP|SEK|NOK|DKK|CHF|kr`)

	europeanFormatted   = regexp.MustCompile(`^(\d{1,3}(?:[\s.]\d{3})*),(\d{1,2})$`)
	simpleCommaDecimal  = regexp.MustCompile(`^(\d+),(\d{1,2})$`)
	usFormatted         = regexp.MustCompile(`^(\d{1,3}(?:,\d{3})*)\.(\d{1,2})$`)
	simpleDotDecimal    = regexp.MustCompile(`^(\d+)\.(\d{1,2})$`)
	commaWithSeparators = regexp.MustCompile(`^(\d[\d\s.]*)?,(\d{2})$`)
	dotWithSeparators   = regexp.MustCompile(`^(\d[\d,]*)\.(\d{2})$`)
)

// DetectCurrency returns the first matching ISO code in priority order
// EUR, USD, GBP, SEK (code or bare "kr"), NOK, DKK, CHF, or "" if none.
func DetectCurrency(text string) string {
	switch {
	case strings.Contains(text, "€") || eurCode.MatchString(text):
		return "EUR"
	case strings.Contains(text, "$") || usdCode.MatchString(text):
		return "USD"
	case strings.Contains(text, "£") || gbpCode.MatchString(text):
		return "GBP"
	case sekCode.MatchString(text) || kronaWord.MatchString(text):
		return "SEK"
	case nokCode.MatchString(text):
		return "NOK"
	case dkkCode.MatchString(text):
		return "DKK"
	case chfCode.MatchString(text):
		return "CHF"
	default:
		return ""
	}
}

// FindCurrencyTokens returns every currency token match in text.
func FindCurrencyTokens(text string) []TokenMatch {
	idxs := currencyTokenPattern.FindAllStringIndex(text, -1)
	out := make([]TokenMatch, 0, len(idxs))
	for _, p := range idxs {
		out = append(out, TokenMatch{Value: text[p[0]:p[1]], Index: p[0], Length: p[1] - p[0]})
	}
	return out
}

// FindAmountTokens returns every amount token match in text, rejecting
// candidates immediately adjacent to another digit (the lookaround
// boundary from the original AmountTokenPattern). Digits are always
// single-byte in UTF-8, so the neighboring bytes can be checked directly.
func FindAmountTokens(text string) []TokenMatch {
	idxs := amountCorePattern.FindAllStringIndex(text, -1)
	out := make([]TokenMatch, 0, len(idxs))
	for _, p := range idxs {
		if p[0] > 0 && isASCIIDigit(text[p[0]-1]) {
			continue
		}
		if p[1] < len(text) && isASCIIDigit(text[p[1]]) {
			continue
		}
		out = append(out, TokenMatch{Value: text[p[0]:p[1]], Index: p[0], Length: p[1] - p[0]})
	}
	return out
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// ParseAmount parses an amount-looking substring to a decimal under the
// given locale's separator convention, stripping any currency symbol/code
// first. Returns false if the text cannot be parsed.
func ParseAmount(text string, loc locale.Locale) (decimal.Decimal, bool) {
	text = strings.TrimSpace(anyCurrency.ReplaceAllString(text, ""))
	if text == "" {
		return decimal.Decimal{}, false
	}

	switch loc {
	case locale.European:
		if m := europeanFormatted.FindStringSubmatch(text); m != nil {
			intPart := stripGroupSeparators(m[1])
			return tryParseDecimal(intPart + "." + m[2])
		}
		if m := simpleCommaDecimal.FindStringSubmatch(text); m != nil {
			return tryParseDecimal(m[1] + "." + m[2])
		}
	case locale.US:
		if m := usFormatted.FindStringSubmatch(text); m != nil {
			intPart := strings.ReplaceAll(m[1], ",", "")
			return tryParseDecimal(intPart + "." + m[2])
		}
		if m := simpleDotDecimal.FindStringSubmatch(text); m != nil {
			return tryParseDecimal(m[1] + "." + m[2])
		}
	}

	if m := commaWithSeparators.FindStringSubmatch(text); m != nil {
		intPart := stripGroupSeparators(m[1])
		return tryParseDecimal(intPart + "." + m[2])
	}
	if m := dotWithSeparators.FindStringSubmatch(text); m != nil {
		intPart := strings.ReplaceAll(m[1], ",", "")
		return tryParseDecimal(intPart + "." + m[2])
	}

	return tryParseDecimal(text)
}

func stripGroupSeparators(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}

func tryParseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// InRange reports whether an amount falls in the open interval (0,
// 10,000,000), the bound downstream extractors use to reject non-results.
func InRange(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThan(decimal.NewFromInt(10_000_000))
}
