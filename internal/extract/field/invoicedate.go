package field

import (
	"regexp"
	"strings"

	"github.com/rezonia/textlayout-invoice/internal/dateparse"
	"github.com/rezonia/textlayout-invoice/internal/extract"
)

var (
	rangeDashPattern = regexp.MustCompile(`\s[-–]\s`)
	rangeWordPattern = regexp.MustCompile(`(?i)\bto\b`)
)

func isRangeToken(line string, start, length int) bool {
	windowStart := start - 6
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := start + length + 6
	if windowEnd > len(line) {
		windowEnd = len(line)
	}
	window := line[windowStart:windowEnd]
	return rangeDashPattern.MatchString(window) || rangeWordPattern.MatchString(window)
}

// anchoredDateLines scans each line of ctx.Lines for one of anchors; when an
// anchor and a date token share a line, it's scored by in-line distance;
// otherwise the engine searches up to 6 lines above/below for a date token,
// decaying votes by line offset.
func anchoredDateLines(ctx extract.Context, anchors []extract.Anchor) []extract.Result {
	var results []extract.Result
	for lineIndex, line := range ctx.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		for _, anchor := range anchors {
			anchorLocs := anchorPattern(anchor).FindAllStringIndex(line, -1)
			if len(anchorLocs) == 0 {
				continue
			}

			dateLocs := dateTokenRegexp().FindAllStringIndex(line, -1)
			if len(dateLocs) > 0 {
				addDateMatchesWithAnchors(&results, line, anchorLocs, dateLocs, 1+anchor.BonusVotes)
				continue
			}

			addNeighborDateMatches(&results, ctx.Lines, lineIndex, 1+anchor.BonusVotes)
		}
	}
	return results
}

func addNeighborDateMatches(results *[]extract.Result, lines []string, lineIndex, anchorVotes int) {
	const maxOffset = 6
	for offset := 1; offset <= maxOffset; offset++ {
		addDateMatchesForLine(results, lines, lineIndex-offset, anchorVotes, offset)
		addDateMatchesForLine(results, lines, lineIndex+offset, anchorVotes, offset)
	}
}

func addDateMatchesForLine(results *[]extract.Result, lines []string, lineIndex, anchorVotes, offset int) {
	if lineIndex < 0 || lineIndex >= len(lines) {
		return
	}
	line := lines[lineIndex]
	if strings.TrimSpace(line) == "" {
		return
	}

	dateLocs := dateTokenRegexp().FindAllStringIndex(line, -1)
	if len(dateLocs) == 0 {
		return
	}
	addDateMatches(results, line, dateLocs, anchorVotes, offset)
}

func addDateMatches(results *[]extract.Result, line string, dateLocs [][]int, anchorVotes, offset int) {
	for _, loc := range dateLocs {
		if isRangeToken(line, loc[0], loc[1]-loc[0]) {
			continue
		}
		votes := anchorVotes - offset
		if votes < 1 {
			votes = 1
		}
		value := line[loc[0]:loc[1]]
		*results = append(*results, extract.Result{Value: value, Votes: votes, MatchedText: value})
	}
}

func addDateMatchesWithAnchors(results *[]extract.Result, line string, anchorLocs, dateLocs [][]int, anchorVotes int) {
	if len(anchorLocs) == 0 {
		addDateMatches(results, line, dateLocs, anchorVotes, 0)
		return
	}

	for _, dateLoc := range dateLocs {
		if isRangeToken(line, dateLoc[0], dateLoc[1]-dateLoc[0]) {
			continue
		}

		minDistance := -1
		for _, anchorLoc := range anchorLocs {
			d := abs(dateLoc[0] - anchorLoc[0])
			if minDistance < 0 || d < minDistance {
				minDistance = d
			}
		}

		penalty := minDistance / 20
		if penalty > 3 {
			penalty = 3
		}
		votes := anchorVotes - penalty
		if votes < 1 {
			votes = 1
		}
		value := line[dateLoc[0]:dateLoc[1]]
		*results = append(*results, extract.Result{Value: value, Votes: votes, MatchedText: value})
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var anchorCache = buildAnchorCache(extract.InvoiceDateAnchors, extract.DueDateAnchors)

func buildAnchorCache(anchorSets ...[]extract.Anchor) map[string]*regexp.Regexp {
	cache := make(map[string]*regexp.Regexp)
	for _, anchors := range anchorSets {
		for _, a := range anchors {
			if _, ok := cache[a.Pattern]; !ok {
				cache[a.Pattern] = regexp.MustCompile(`(?i)` + a.Pattern)
			}
		}
	}
	return cache
}

func anchorPattern(a extract.Anchor) *regexp.Regexp {
	return anchorCache[a.Pattern]
}

var dateTokenRE = regexp.MustCompile(`(?i)` + dateparse.DateTokenPattern)

func dateTokenRegexp() *regexp.Regexp { return dateTokenRE }

var (
	invoiceDateWordPattern = regexp.MustCompile(`(?i)invoice\s+date`)
	dueDateWordPattern     = regexp.MustCompile(`(?i)due\s+date`)
	isoDateWordPattern     = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	rangeTokenWordPattern  = regexp.MustCompile(`(?i)[-–]|to`)
)

// extractPairedISODates recognizes the common "Invoice date: X   Due date: Y"
// two-column layout: a short line holding exactly two ISO dates, with
// neither a dash nor "to" between them, on a document that mentions both
// labels somewhere.
func extractPairedISODates(ctx extract.Context) []extract.Result {
	if !invoiceDateWordPattern.MatchString(ctx.Text) || !dueDateWordPattern.MatchString(ctx.Text) {
		return nil
	}

	var results []extract.Result
	for _, line := range ctx.Lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 40 {
			continue
		}

		locs := isoDateWordPattern.FindAllStringIndex(trimmed, -1)
		if len(locs) != 2 {
			continue
		}

		between := trimmed[locs[0][1]:locs[1][0]]
		if rangeTokenWordPattern.MatchString(between) {
			continue
		}

		value := trimmed[locs[0][0]:locs[0][1]]
		results = append(results, extract.Result{Value: value, Votes: 3, MatchedText: trimmed})
	}
	return results
}

// AnchoredInvoiceDateExtractor finds an invoice issue date via paired-ISO
// layout detection, same-line and neighbor-line anchor search, and a global
// anchored pass over the whole text.
type AnchoredInvoiceDateExtractor struct{}

func (AnchoredInvoiceDateExtractor) Name() string { return "Anchored invoice date" }

func (e AnchoredInvoiceDateExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (AnchoredInvoiceDateExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	var results []extract.Result
	results = append(results, extractPairedISODates(ctx)...)
	results = append(results, anchoredDateLines(ctx, extract.InvoiceDateAnchors)...)

	for _, match := range extract.FindAnchored(ctx.Text, dateparse.DateTokenPattern, extract.InvoiceDateAnchors, 1) {
		if strings.TrimSpace(match.Value) != "" {
			results = append(results, extract.Result{Value: match.Value, Votes: match.TotalVotes(), MatchedText: matchedTextOr(match.MatchedText, match.Value)})
		}
	}
	return results
}

// AnyDateExtractor is the fallback invoice-date strategy: every date token
// in the document, unweighted.
type AnyDateExtractor struct{}

func (AnyDateExtractor) Name() string { return "Any date (fallback)" }

func (e AnyDateExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (AnyDateExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	locs := dateTokenRegexp().FindAllStringIndex(ctx.Text, -1)
	if len(locs) == 0 {
		return nil
	}
	results := make([]extract.Result, 0, len(locs))
	for _, loc := range locs {
		value := ctx.Text[loc[0]:loc[1]]
		results = append(results, extract.Result{Value: value, Votes: 1, MatchedText: value})
	}
	return results
}

// AnchoredDueDateExtractor mirrors AnchoredInvoiceDateExtractor's same-line
// and neighbor-line search, scoped to due-date anchors. It has no paired-ISO
// path: in that two-column layout only the earlier date is taken, as the
// invoice date, and the later one is not read as a due date.
type AnchoredDueDateExtractor struct{}

func (AnchoredDueDateExtractor) Name() string { return "Anchored due date" }

func (e AnchoredDueDateExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (AnchoredDueDateExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	var results []extract.Result
	results = append(results, anchoredDateLines(ctx, extract.DueDateAnchors)...)

	for _, match := range extract.FindAnchored(ctx.Text, dateparse.DateTokenPattern, extract.DueDateAnchors, 1) {
		if strings.TrimSpace(match.Value) != "" {
			results = append(results, extract.Result{Value: match.Value, Votes: match.TotalVotes(), MatchedText: matchedTextOr(match.MatchedText, match.Value)})
		}
	}
	return results
}
