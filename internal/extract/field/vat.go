package field

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/textlayout-invoice/internal/extract"
	"github.com/rezonia/textlayout-invoice/internal/money"
)

type labelAmountPattern struct {
	pattern *regexp.Regexp
	votes   int
}

func extractLabeledAmounts(ctx extract.Context, patterns []labelAmountPattern) []extract.Result {
	var results []extract.Result
	for _, p := range patterns {
		for _, m := range p.pattern.FindAllStringSubmatch(ctx.Text, -1) {
			amountStr := strings.TrimSpace(m[1])
			amount, ok := money.ParseAmount(amountStr, ctx.Locale)
			if !ok || !amount.IsPositive() || !amount.LessThan(decimal.NewFromInt(10_000_000)) {
				continue
			}
			results = append(results, extract.Result{Value: amountStr, Votes: p.votes, MatchedText: m[0]})
		}
	}
	return results
}

// VatAmountExtractor matches "VAT amount:", "Moms/MVA:", and "VAT - <rate>%
// on <amount>" label shapes.
type VatAmountExtractor struct{}

var vatAmountPatterns = []labelAmountPattern{
	{regexp.MustCompile(`(?i)vat\s+amount\s*[:：]?\s*([€$£]?\s*[\d\s.,]+)`), 3},
	{regexp.MustCompile(`(?i)(?:moms|mva)\s*[:：]?\s*([€$£]?\s*[\d\s.,]+)`), 3},
	{regexp.MustCompile(`(?i)vat\s*[-–]\s*\w+\s*\d+%\s*(?:on\s*[€$£]?[\d\s.,]+)?\s*([€$£]?\s*[\d\s.,]+)`), 2},
}

func (VatAmountExtractor) Name() string { return "VAT amount" }

func (e VatAmountExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (VatAmountExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return extractLabeledAmounts(ctx, vatAmountPatterns)
}

var yearLikePrefixPattern = regexp.MustCompile(`^20\d{4}[.,]\d{2,3}`)

// SwedishReverseVatExtractor matches the Swedish reverse layout where the
// amount precedes its "Moms (" label instead of following it. The original's
// (?<!\d) lookbehind guard against a trailing digit run has no RE2
// equivalent and is dropped; in practice the "Moms (" anchor is specific
// enough that this rarely matters.
type SwedishReverseVatExtractor struct{}

var swedishReverseVatPattern = regexp.MustCompile(`(?i)([€$£]?\d{1,6}[.,]\d{2,3}[€$£]?)\s*Moms\s*\(`)

func (SwedishReverseVatExtractor) Name() string { return "Swedish reverse VAT (amount before label)" }

func (e SwedishReverseVatExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (SwedishReverseVatExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	matches := swedishReverseVatPattern.FindAllStringSubmatch(ctx.Text, -1)
	if len(matches) == 0 {
		return nil
	}

	var results []extract.Result
	for _, m := range matches {
		if yearLikePrefixPattern.MatchString(m[1]) {
			continue
		}

		amountText := m[1]
		amount, ok := money.ParseAmount(amountText, ctx.Locale)
		if !ok || amount.IsNegative() || !amount.LessThan(decimal.NewFromInt(10_000_000)) {
			continue
		}
		results = append(results, extract.Result{Value: amountText, Votes: 3, MatchedText: m[0]})
	}
	return results
}

// VatRateExtractor matches a percentage figure tied to a VAT/moms/tax label,
// in any of three label-then-rate / rate-then-label shapes.
type VatRateExtractor struct{}

var vatRatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:vat|moms|tax)\s*[-–]?\s*[^0-9]*(\d+(?:[.,]\d+)?)\s*%`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*%\s*(?:vat|moms|tax)`),
	regexp.MustCompile(`(?i)vat\s+rate\s*[:：]?\s*(\d+(?:[.,]\d+)?)\s*%`),
}

func (VatRateExtractor) Name() string { return "VAT rate" }

func (e VatRateExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (VatRateExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	var results []extract.Result
	for _, pattern := range vatRatePatterns {
		for _, m := range pattern.FindAllStringSubmatch(ctx.Text, -1) {
			rateStr := strings.ReplaceAll(m[1], ",", ".")
			rate, err := decimal.NewFromString(rateStr)
			if err != nil {
				continue
			}
			if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
				continue
			}
			results = append(results, extract.Result{Value: rateStr, Votes: 3, MatchedText: m[0]})
		}
	}
	return results
}

// SubtotalExtractor matches "Total excl VAT:", "Subtotal:", "Excl. VAT:",
// and "Netto:" label shapes.
type SubtotalExtractor struct{}

var subtotalPatterns = []labelAmountPattern{
	{regexp.MustCompile(`(?i)total\s+excl(?:uding)?\s+(?:vat|tax)\s*[:：]?\s*([€$£]?\s*[\d\s.,]+)`), 3},
	{regexp.MustCompile(`(?i)subtotal\s*[:：]?\s*([€$£]?\s*[\d\s.,]+)`), 3},
	{regexp.MustCompile(`(?i)exc(?:l(?:uding)?)?\.?\s*(?:vat|moms|tax)\s*[:：]?\s*([€$£]?\s*[\d\s.,]+)`), 2},
	{regexp.MustCompile(`(?i)netto\s*[:：]?\s*([€$£]?\s*[\d\s.,]+)`), 2},
}

func (SubtotalExtractor) Name() string { return "Subtotal/Total excl VAT" }

func (e SubtotalExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (SubtotalExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return extractLabeledAmounts(ctx, subtotalPatterns)
}

// SwedishReverseSubtotalExtractor matches the Swedish reverse layout where
// the amount precedes its "Delsumma i <currency>" label.
type SwedishReverseSubtotalExtractor struct{}

var swedishReverseSubtotalPattern = regexp.MustCompile(`(?i)([€$£]?\d{1,6}[.,]\d{2,3}[€$£]?)\s*Delsumma\s+i\s+(?:EUR|SEK|USD|GBP)`)

func (SwedishReverseSubtotalExtractor) Name() string {
	return "Swedish reverse subtotal (amount before label)"
}

func (e SwedishReverseSubtotalExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (SwedishReverseSubtotalExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	matches := swedishReverseSubtotalPattern.FindAllStringSubmatch(ctx.Text, -1)
	if len(matches) == 0 {
		return nil
	}

	var results []extract.Result
	for _, m := range matches {
		if yearLikePrefixPattern.MatchString(m[1]) {
			continue
		}

		amountText := strings.TrimSpace(m[1])
		amount, ok := money.ParseAmount(amountText, ctx.Locale)
		if !ok || !money.InRange(amount) {
			continue
		}
		results = append(results, extract.Result{Value: amountText, Votes: 3, MatchedText: m[0]})
	}
	return results
}
