// Package dateparse recognizes a fixed set of date shapes in free text and
// resolves ambiguous day/month ordering using a detected locale.
package dateparse

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/rezonia/textlayout-invoice/internal/locale"
)

// monthNames maps every recognized month name (English full/abbreviated,
// Swedish, German) to its numeric month. Kept as one map, not split by
// language, since lookups never need to know which language matched.
var monthNames = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7, "aug": 8,
	"sep": 9, "oct": 10, "nov": 11, "dec": 12,
	"januari": 1, "februari": 2, "mars": 3, "maj": 5, "juni": 6, "juli": 7,
	"augusti": 8, "oktober": 10,
	"sept": 9, "okt": 10,
	"januar": 1, "märz": 3, "mai": 5, "dezember": 12,
}

// monthNameOrder lists every month name key sorted longest-first so that,
// per the source's documented behavior, a longer name (Swedish "mars")
// wins over a shorter colliding one (English "mar") when both could match.
var monthNameOrder = buildMonthNameOrder()

func buildMonthNameOrder() []string {
	names := make([]string, 0, len(monthNames))
	for name := range monthNames {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	return names
}

var monthNamePattern = buildMonthNamePattern()

func buildMonthNamePattern() string {
	pattern := ""
	for i, name := range monthNameOrder {
		if i > 0 {
			pattern += "|"
		}
		pattern += regexp.QuoteMeta(name)
	}
	return pattern
}

// DateTokenPattern recognizes ISO, European-dot, ambiguous-slash, and the
// two month-name shapes, in that priority order. Capturing the raw text is
// the caller's job; this pattern only locates a date-shaped token. Go's
// RE2 engine has no (?!\d) lookahead, so the "not followed by another
// digit" boundary is enforced by FindDateTokens checking the trailing byte.
var DateTokenPattern = `\d{4}-\d{2}-\d{2}|` +
	`\d{1,2}\.\d{1,2}\.\d{4}|` +
	`\d{1,2}/\d{1,2}/\d{4}|` +
	`(?i)\b(?:` + monthNamePattern + `)\.?\s+\d{1,2},?\s+\d{4}\b|` +
	`(?i)\b\d{1,2}\s+(?:` + monthNamePattern + `)\.?\s+\d{4}\b`

var dateTokenRegexp = regexp.MustCompile(DateTokenPattern)

// FindDateTokens returns every raw date-shaped substring in text, in the
// order they appear.
func FindDateTokens(text string) []string {
	idxs := dateTokenRegexp.FindAllStringIndex(text, -1)
	out := make([]string, 0, len(idxs))
	for _, p := range idxs {
		if p[1] < len(text) && isASCIIDigit(text[p[1]]) {
			continue
		}
		out = append(out, text[p[0]:p[1]])
	}
	return out
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

var (
	isoDatePattern      = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	europeanDatePattern = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`)
	slashDatePattern    = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
)

// monthDatePattern is one precompiled (month-first, day-first) regex pair
// per recognized month name, built once in monthNameOrder's longer-match-
// first order so Parse never compiles a pattern per call.
type monthDatePattern struct {
	month      int
	monthFirst *regexp.Regexp
	dayFirst   *regexp.Regexp
}

var monthDatePatterns = buildMonthDatePatterns()

func buildMonthDatePatterns() []monthDatePattern {
	out := make([]monthDatePattern, 0, len(monthNameOrder))
	for _, name := range monthNameOrder {
		escaped := regexp.QuoteMeta(name)
		out = append(out, monthDatePattern{
			month:      monthNames[name],
			monthFirst: regexp.MustCompile(`(?i)` + escaped + `\.?\s+(\d{1,2}),?\s+(\d{4})`),
			dayFirst:   regexp.MustCompile(`(?i)(\d{1,2})\s+` + escaped + `\.?\s+(\d{4})`),
		})
	}
	return out
}

// Parse recognizes a date shape in text and resolves it to a calendar
// date using loc to disambiguate slash-separated dates. Returns the zero
// time and false if no recognized shape matches or the matched numbers do
// not form a valid calendar date.
func Parse(text string, loc locale.Locale) (time.Time, bool) {
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		if t, ok := buildDate(m[1], m[2], m[3]); ok {
			return t, true
		}
	}

	if m := europeanDatePattern.FindStringSubmatch(text); m != nil {
		first := atoi(m[1])
		second := atoi(m[2])
		if loc != locale.US && first <= 31 && second <= 12 {
			if t, ok := buildDateInts(atoi(m[3]), second, first); ok {
				return t, true
			}
		}
	}

	if m := slashDatePattern.FindStringSubmatch(text); m != nil {
		first := atoi(m[1])
		second := atoi(m[2])
		year := atoi(m[3])
		if loc == locale.US {
			if first <= 12 && second <= 31 {
				if t, ok := buildDateInts(year, first, second); ok {
					return t, true
				}
			}
		} else if first <= 31 && second <= 12 {
			if t, ok := buildDateInts(year, second, first); ok {
				return t, true
			}
		}
	}

	for _, p := range monthDatePatterns {
		if m := p.monthFirst.FindStringSubmatch(text); m != nil {
			if t, ok := buildDateInts(atoi(m[2]), p.month, atoi(m[1])); ok {
				return t, true
			}
		}

		if m := p.dayFirst.FindStringSubmatch(text); m != nil {
			if t, ok := buildDateInts(atoi(m[2]), p.month, atoi(m[1])); ok {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func buildDate(yearStr, monthStr, dayStr string) (time.Time, bool) {
	return buildDateInts(atoi(yearStr), atoi(monthStr), atoi(dayStr))
}

func buildDateInts(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
