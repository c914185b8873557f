package field

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/textlayout-invoice/internal/extract"
	"github.com/rezonia/textlayout-invoice/internal/locale"
	"github.com/rezonia/textlayout-invoice/internal/money"
)

var (
	totalDueLinePattern  = regexp.MustCompile(`(?i)(?:total\s*due|due\s*[:：]?\s*total|amount\s+due|balance\s+due|att\s+betala)`)
	vatLinePattern       = regexp.MustCompile(`(?i)\b(?:vat|moms|mva|tax|mwst|iva|gst)\b`)
	excludingLinePattern = regexp.MustCompile(`(?i)\b(?:excl|exklusive|excluding|subtotal|sub[-\s]?total|netto|net)\b`)
	roundingLinePattern  = regexp.MustCompile(`(?i)\b(?:rounding|avrund|rundning)\b`)
	dateLinePattern      = regexp.MustCompile(`\b\d{4}[-/.]\d{2}[-/.]\d{2}\b|\b\d{2}[-/.]\d{2}[-/.]\d{4}\b`)
	amountTokenRE        = regexp.MustCompile(`(?i)` + money.AmountTokenPattern)
	currencyTokenRE      = regexp.MustCompile(`(?i)` + money.CurrencyTokenPattern)
)

const (
	currencyProximityThreshold = 12
	totalDueSearchWindow       = 6
)

// AnchoredTotalAmountExtractor is the single, rule-heavy total-amount
// strategy: it first looks for an explicit "total due"-style line (inline
// or with a nearby amount), then falls back to a general anchored pass over
// every total-like label, penalizing VAT/excl/rounding lines and percent
// tokens along the way.
type AnchoredTotalAmountExtractor struct{}

func (AnchoredTotalAmountExtractor) Name() string { return "Anchored total amount (token)" }

func (e AnchoredTotalAmountExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (AnchoredTotalAmountExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	var results []extract.Result

	if due := tryExtractTotalDueFromBlock(ctx); due != nil && due.HasValue() {
		results = append(results, *due)
	}

	matches := extract.FindAnchored(ctx.Text, money.AmountTokenPattern, extract.TotalAmountAnchors, 2)
	if len(matches) == 0 {
		return results
	}

	currencyTokens := money.FindCurrencyTokens(ctx.Text)
	lines := strings.Split(ctx.Text, "\n")
	anchorLines := findAnchorLines(lines, extract.TotalAmountAnchors)

	for _, match := range matches {
		if match.AnchorBonus <= 0 {
			continue
		}

		amount, ok := money.ParseAmount(match.Value, ctx.Locale)
		if !ok || !money.InRange(amount) {
			continue
		}

		lineText := lineAt(lines, match.ValuePosition.Line)
		lineBonus := anchorLineBonus(anchorLines, match.ValuePosition.Line)
		penalty := linePenalty(lineText)
		if match.AnchorBonus <= 0 && lineBonus == 0 {
			continue
		}

		if isPercentToken(lineText, match.ValuePosition.Column, match.ValuePosition.Length()) {
			continue
		}
		if hasLocalExclusion(lineText, match.ValuePosition.Column) {
			continue
		}

		bonus := currencyProximityBonus(currencyTokens, match.ValuePosition)
		largeBonus := 0
		if amount.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
			largeBonus = 1
		}

		votes := match.TotalVotes() + bonus + lineBonus + largeBonus - penalty
		if votes <= 0 {
			continue
		}

		results = append(results, extract.Result{Value: match.Value, Votes: votes, MatchedText: matchedTextOr(match.MatchedText, match.Value)})
	}

	return results
}

type totalDueCandidate struct {
	amount       decimal.Decimal
	raw          string
	lineDistance int
	line         string
}

func tryExtractTotalDueFromBlock(ctx extract.Context) *extract.Result {
	lines := strings.Split(ctx.Text, "\n")
	var candidates []totalDueCandidate

	for i, line := range lines {
		if !totalDueLinePattern.MatchString(line) {
			continue
		}

		if amountTokenRE.MatchString(line) {
			if amount, raw, ok := extractBestAmountFromLine(line, ctx.Locale); ok {
				votes := 5
				if amount.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
					votes = 6
				}
				return &extract.Result{Value: raw, Votes: votes, MatchedText: strings.TrimSpace(line)}
			}
		}

		for offset := 1; offset <= totalDueSearchWindow; offset++ {
			addLineCandidates(lines, i-offset, offset, ctx.Locale, &candidates)
			addLineCandidates(lines, i+offset, offset, ctx.Locale, &candidates)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	filtered := make([]totalDueCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !isExcludedLine(c.line) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		filtered = candidates
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].amount.Equal(filtered[j].amount) {
			return filtered[i].amount.GreaterThan(filtered[j].amount)
		}
		return filtered[i].lineDistance < filtered[j].lineDistance
	})

	best := filtered[0]
	votes := 5
	if best.amount.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		votes = 6
	}
	return &extract.Result{Value: best.raw, Votes: votes, MatchedText: strings.TrimSpace(best.line)}
}

func addLineCandidates(lines []string, lineIndex, lineDistance int, loc locale.Locale, candidates *[]totalDueCandidate) {
	if lineIndex < 0 || lineIndex >= len(lines) {
		return
	}
	line := lines[lineIndex]
	if isVATPercentLine(line) {
		return
	}

	currencyLocs := currencyTokenRE.FindAllStringIndex(line, -1)
	if len(currencyLocs) == 0 && dateLinePattern.MatchString(line) {
		return
	}

	for _, loc2 := range amountTokenRE.FindAllStringIndex(line, -1) {
		if isPercentToken(line, loc2[0], loc2[1]-loc2[0]) {
			continue
		}

		amount, ok := money.ParseAmount(line[loc2[0]:loc2[1]], loc)
		if !ok || !money.InRange(amount) {
			continue
		}

		if len(currencyLocs) > 0 && minCurrencyDistance(currencyLocs, loc2[0], loc2[1]-loc2[0]) > currencyProximityThreshold {
			continue
		}
		if len(currencyLocs) == 0 && isLikelyYear(amount) {
			continue
		}

		*candidates = append(*candidates, totalDueCandidate{
			amount:       amount,
			raw:          strings.TrimSpace(line[loc2[0]:loc2[1]]),
			lineDistance: lineDistance,
			line:         line,
		})
	}
}

func extractBestAmountFromLine(line string, loc locale.Locale) (decimal.Decimal, string, bool) {
	if isVATPercentLine(line) {
		return decimal.Decimal{}, "", false
	}

	currencyLocs := currencyTokenRE.FindAllStringIndex(line, -1)
	if len(currencyLocs) == 0 && dateLinePattern.MatchString(line) {
		return decimal.Decimal{}, "", false
	}

	type candidate struct {
		amount   decimal.Decimal
		raw      string
		distance int
	}
	var candidates []candidate

	for _, loc2 := range amountTokenRE.FindAllStringIndex(line, -1) {
		if isPercentToken(line, loc2[0], loc2[1]-loc2[0]) {
			continue
		}

		amountText := strings.TrimSpace(line[loc2[0]:loc2[1]])
		amount, ok := money.ParseAmount(amountText, loc)
		if !ok || !money.InRange(amount) {
			continue
		}

		distance := 0
		if len(currencyLocs) > 0 {
			distance = minCurrencyDistance(currencyLocs, loc2[0], loc2[1]-loc2[0])
			if distance > currencyProximityThreshold {
				continue
			}
		} else if isLikelyYear(amount) {
			continue
		}

		candidates = append(candidates, candidate{amount: amount, raw: amountText, distance: distance})
	}

	if len(candidates) == 0 {
		return decimal.Decimal{}, "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].amount.Equal(candidates[j].amount) {
			return candidates[i].amount.GreaterThan(candidates[j].amount)
		}
		return candidates[i].distance < candidates[j].distance
	})

	best := candidates[0]
	return best.amount, best.raw, true
}

func minCurrencyDistance(currencyLocs [][]int, valueIndex, valueLength int) int {
	valueStart := valueIndex
	valueEnd := valueIndex + valueLength
	minDistance := 1<<31 - 1

	for _, loc := range currencyLocs {
		tokenStart, tokenEnd := loc[0], loc[1]
		var distance int
		switch {
		case tokenEnd < valueStart:
			distance = valueStart - tokenEnd
		case tokenStart > valueEnd:
			distance = tokenStart - valueEnd
		default:
			distance = 0
		}
		if distance < minDistance {
			minDistance = distance
		}
	}
	return minDistance
}

func isPercentToken(lineText string, startIndex, length int) bool {
	if lineText == "" {
		return false
	}

	endIndex := startIndex + length
	for i := endIndex; i < len(lineText) && i < endIndex+2; i++ {
		if lineText[i] == ' ' || lineText[i] == '\t' {
			continue
		}
		return lineText[i] == '%'
	}

	for i := startIndex - 1; i >= 0 && i >= startIndex-2; i-- {
		if lineText[i] == ' ' || lineText[i] == '\t' {
			continue
		}
		return lineText[i] == '%'
	}

	return false
}

func isLikelyYear(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(decimal.NewFromInt(1900)) &&
		amount.LessThanOrEqual(decimal.NewFromInt(2100)) &&
		amount.Equal(amount.Truncate(0))
}

func findAnchorLines(lines []string, anchors []extract.Anchor) []int {
	var anchorLines []int
	for i, line := range lines {
		for _, anchor := range anchors {
			if anchorPatternFor(anchor).MatchString(line) {
				anchorLines = append(anchorLines, i)
				break
			}
		}
	}
	return anchorLines
}

var totalAnchorCache = buildAnchorCache(extract.TotalAmountAnchors)

func anchorPatternFor(a extract.Anchor) *regexp.Regexp {
	if re, ok := totalAnchorCache[a.Pattern]; ok {
		return re
	}
	return regexp.MustCompile(`(?i)` + a.Pattern)
}

func lineAt(lines []string, lineIndex int) string {
	if lineIndex < 0 || lineIndex >= len(lines) {
		return ""
	}
	return lines[lineIndex]
}

func anchorLineBonus(anchorLines []int, lineIndex int) int {
	if len(anchorLines) == 0 {
		return 0
	}

	minDistance := 1<<31 - 1
	for _, anchorLine := range anchorLines {
		if d := abs(anchorLine - lineIndex); d < minDistance {
			minDistance = d
		}
	}

	switch {
	case minDistance == 0:
		return 3
	case minDistance == 1 || minDistance == 2:
		return 2
	case minDistance == 3 || minDistance == 4:
		return 1
	default:
		return 0
	}
}

func linePenalty(lineText string) int {
	if strings.TrimSpace(lineText) == "" {
		return 0
	}

	switch {
	case isVATPercentLine(lineText):
		return 4
	case vatLinePattern.MatchString(lineText):
		return 3
	case excludingLinePattern.MatchString(lineText):
		return 2
	case roundingLinePattern.MatchString(lineText):
		return 2
	default:
		return 0
	}
}

func isExcludedLine(lineText string) bool {
	return isVATPercentLine(lineText) ||
		vatLinePattern.MatchString(lineText) ||
		excludingLinePattern.MatchString(lineText) ||
		roundingLinePattern.MatchString(lineText)
}

func isVATPercentLine(lineText string) bool {
	return lineText != "" && strings.Contains(lineText, "%") && vatLinePattern.MatchString(lineText)
}

func hasLocalExclusion(lineText string, valueColumn int) bool {
	if strings.TrimSpace(lineText) == "" {
		return false
	}

	safeColumn := valueColumn
	if safeColumn > len(lineText) {
		safeColumn = len(lineText)
	}
	prefix := lineText[:safeColumn]
	lastIndex := -1

	for _, loc := range excludingLinePattern.FindAllStringIndex(prefix, -1) {
		if loc[0] > lastIndex {
			lastIndex = loc[0]
		}
	}
	for _, loc := range vatLinePattern.FindAllStringIndex(prefix, -1) {
		if loc[0] > lastIndex {
			lastIndex = loc[0]
		}
	}
	for _, loc := range roundingLinePattern.FindAllStringIndex(prefix, -1) {
		if loc[0] > lastIndex {
			lastIndex = loc[0]
		}
	}

	if lastIndex < 0 {
		return false
	}
	return safeColumn-lastIndex <= 25
}

func currencyProximityBonus(tokens []money.TokenMatch, valuePos extract.TextPosition) int {
	if len(tokens) == 0 {
		return 0
	}

	valueStart := valuePos.CharIndex
	valueEnd := valuePos.CharIndex + valuePos.Length()
	minDistance := 1<<31 - 1

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
	case minDistance <= currencyProximityThreshold:
		return 2
	case minDistance <= currencyProximityThreshold*2:
		return 1
	default:
		return 0
	}
}
