// Package field implements the field-specific extractor registry: one small
// strategy per (field, pattern) pair, all sharing the extract.Extractor
// interface so the aggregator can vote across them uniformly.
package field

import (
	"math"
	"strings"

	"github.com/rezonia/textlayout-invoice/internal/extract"
	"github.com/rezonia/textlayout-invoice/internal/money"
)

const amountProximityThreshold = 12

// AnchoredCurrencyExtractor reads a currency token anchored to a total-amount
// label, with a proximity bonus when an amount figure sits nearby.
type AnchoredCurrencyExtractor struct{}

func (AnchoredCurrencyExtractor) Name() string { return "Anchored currency (token)" }

func (e AnchoredCurrencyExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (AnchoredCurrencyExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	matches := extract.FindAnchored(ctx.Text, money.CurrencyTokenPattern, extract.TotalAmountAnchors, 1)
	if len(matches) == 0 {
		return nil
	}

	amountTokens := money.FindAmountTokens(ctx.Text)
	var results []extract.Result
	for _, match := range matches {
		if match.AnchorBonus <= 0 {
			continue
		}

		currency := normalizeCurrencyToken(match.Value)
		if currency == "" {
			continue
		}

		bonus := amountProximityBonus(amountTokens, match.ValuePosition)
		votes := match.TotalVotes() + bonus
		if votes <= 0 {
			continue
		}

		results = append(results, extract.Result{Value: currency, Votes: votes, MatchedText: matchedTextOr(match.MatchedText, match.Value)})
	}
	return results
}

func normalizeCurrencyToken(token string) string {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ""
	}

	switch {
	case strings.Contains(trimmed, "€"):
		return "EUR"
	case strings.Contains(trimmed, "$"):
		return "USD"
	case strings.Contains(trimmed, "£"):
		return "GBP"
	case strings.EqualFold(trimmed, "kr"):
		return "SEK"
	}

	upper := strings.ToUpper(trimmed)
	switch upper {
	case "USD", "EUR", "GBP", "SEK", "NOK", "DKK", "CHF", "INR":
		return upper
	}
	return ""
}

func amountProximityBonus(tokens []money.TokenMatch, valuePos extract.TextPosition) int {
	if len(tokens) == 0 {
		return 0
	}

	valueStart := valuePos.CharIndex
	valueEnd := valuePos.CharIndex + valuePos.Length()
	minDistance := math.MaxInt32

	for _, token := range tokens {
		var distance int
		switch {
		case token.Index < valueStart:
			distance = valueStart - token.Index
		case token.Index > valueEnd:
			distance = token.Index - valueEnd
		default:
			distance = 0
		}
		if distance < minDistance {
			minDistance = distance
		}
	}

	switch {
	case minDistance <= amountProximityThreshold:
		return 2
	case minDistance <= amountProximityThreshold*2:
		return 1
	default:
		return 0
	}
}

func matchedTextOr(matchedText, fallback string) string {
	if matchedText != "" {
		return matchedText
	}
	return fallback
}

// DetectedCurrencyExtractor falls back to whole-document currency detection
// in money.DetectCurrency's fixed priority order when no anchored currency
// token was found.
type DetectedCurrencyExtractor struct{}

func (DetectedCurrencyExtractor) Name() string { return "Detected currency (fallback)" }

func (e DetectedCurrencyExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (DetectedCurrencyExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	currency := money.DetectCurrency(ctx.Text)
	if currency == "" {
		return nil
	}
	return []extract.Result{{Value: currency, Votes: 1, MatchedText: currency}}
}
