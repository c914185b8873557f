package invoice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/textlayout-invoice/internal/locale"
	"github.com/rezonia/textlayout-invoice/internal/money"
)

var lineItemPattern = regexp.MustCompile(`^(.{10,}?)\s+([\d\s]*\d[,.]\d{2})\s*(?:€|\$|£|kr|SEK|EUR|USD)?\s*$`)

// lineItemSkipPatterns excludes lines that look like totals, addresses,
// headers or payment-method noise rather than an actual billed item. Each
// is checked case-insensitively against the whole line.
var lineItemSkipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(invoice|faktura|total|subtotal|vat|moms|tax|date|page|from:|to:|bill\s*to|ship\s*to)`),
	regexp.MustCompile(`(?i)\b(california|new york|texas|florida|washington|georgia|illinois|massachusetts)\b`),
	regexp.MustCompile(`(?i)\b(san francisco|los angeles|seattle|atlanta|chicago|boston|buford|palo alto)\b`),
	regexp.MustCompile(`(?i)\b(stockholm|göteborg|malmö|huddinge|oslo|copenhagen|berlin|münchen|paris|amsterdam|praha|prague)\b`),
	regexp.MustCompile(`(?i)\bCA\s+\d{5}\b`),
	regexp.MustCompile(`(?i)\bGA\s+\d{5}\b`),
	regexp.MustCompile(`\b\d{5}-\d{4}\b`),
	regexp.MustCompile(`(?i)\bwww\.|http|@.*\.(com|org|se|io|net)`),
	regexp.MustCompile(`(?i)thank|receipt|payment.*method|paid.*on|ending|mastercard|visa|card`),
	regexp.MustCompile(`^\s*\d+\s+\d+\s*$`),
	regexp.MustCompile(`(?i)GST|HST|PST|VAT\s*:`),
	regexp.MustCompile(`(?i)australia|canada|india|united kingdom|uk:|eu:`),
}

// extractLineItems scans lines for a "description ... amount" shape, after
// rejecting anything that looks like document furniture rather than a
// billed line: addresses, section headers, payment-method chatter, or a
// bare year/page-number pair.
func extractLineItems(lines []string, loc locale.Locale) []LineItem {
	var items []LineItem

	for _, line := range lines {
		if len(line) < 10 || len(line) > 100 {
			continue
		}

		if matchesAnySkipPattern(line) {
			continue
		}

		match := lineItemPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		desc := strings.TrimSpace(match[1])
		amountStr := match[2]

		rawAmount := stripAmountSeparators(amountStr)
		if len(rawAmount) <= 5 {
			if intVal, err := strconv.Atoi(rawAmount); err == nil {
				if len(rawAmount) == 5 || (intVal >= 2020 && intVal <= 2099) {
					continue
				}
			}
		}

		amount, ok := money.ParseAmount(amountStr, loc)
		if !ok || desc == "" {
			continue
		}
		if amount.LessThanOrEqual(decimal.NewFromFloat(0.50)) || amount.GreaterThanOrEqual(decimal.NewFromInt(100000)) {
			continue
		}

		items = append(items, LineItem{Description: desc, Amount: amount})
	}

	return items
}

func matchesAnySkipPattern(line string) bool {
	for _, pattern := range lineItemSkipPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

func stripAmountSeparators(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}
