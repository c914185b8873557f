package field

import (
	"regexp"
	"strings"

	"github.com/rezonia/textlayout-invoice/internal/extract"
)

// companyWithSuffixValuePattern matches a capitalized name run (up to 4
// space/&/hyphen-joined words) immediately followed by a legal-entity
// suffix. The original excludes certain lead/continuation words via
// lookahead, which RE2 can't express; isExcludedCompanyName enforces the
// same exclusion after the match, in Go.
const companyWithSuffixValuePattern = `([A-Z][A-Za-z0-9&\-.,]*(?:[ \t&\-][A-Z][A-Za-z0-9&\-.,]*){0,3})[ \t]+(s\.?r\.?o|Ltd|LLC|Inc|AB|AS|Oy|GmbH|Corp|Limited|PLC|PBC)\b\.?`

var (
	companyWithSuffixPattern = regexp.MustCompile(companyWithSuffixValuePattern)
	whitespacePattern        = regexp.MustCompile(`\s+`)
	trailingPunctPattern     = regexp.MustCompile(`[.,]+$`)
	nameSeparatorPattern     = regexp.MustCompile(`[ \t&\-]+`)
)

var leadWordExclusions = map[string]bool{
	"Your": true, "The": true, "From": true, "von": true, "från": true,
	"Bill": true, "Invoice": true, "Receipt": true, "Payment": true,
	"Sent": true, "Kvitto": true, "Faktura": true, "Rechnung": true,
	"Thank": true, "Thanks": true,
}

var continuationWordExclusions = map[string]bool{"from": true, "von": true, "från": true}

// isExcludedCompanyName reports whether name's lead word or any
// continuation word is one the original excludes via lookahead.
func isExcludedCompanyName(name string) bool {
	tokens := nameSeparatorPattern.Split(name, -1)
	if len(tokens) == 0 {
		return false
	}
	if leadWordExclusions[tokens[0]] {
		return true
	}
	for _, t := range tokens[1:] {
		if continuationWordExclusions[t] {
			return true
		}
	}
	return false
}

// CompanyWithSuffixExtractor matches a capitalized name run directly
// followed by a legal-entity suffix (Ltd, LLC, AB, GmbH, ...), then re-scores
// the match against the vendor-name anchors to settle on a vote count.
type CompanyWithSuffixExtractor struct{}

func (CompanyWithSuffixExtractor) Name() string { return "Company with legal suffix" }

func (e CompanyWithSuffixExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (CompanyWithSuffixExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	matches := companyWithSuffixPattern.FindAllStringSubmatchIndex(ctx.Text, -1)
	if len(matches) == 0 {
		return nil
	}

	var results []extract.Result
	for _, loc := range matches {
		companyName := strings.TrimSpace(ctx.Text[loc[2]:loc[3]])
		if isExcludedCompanyName(companyName) {
			continue
		}

		suffix := strings.TrimSpace(ctx.Text[loc[4]:loc[5]])
		vendor := companyName + " " + suffix
		vendor = whitespacePattern.ReplaceAllString(vendor, " ")
		vendor = strings.TrimSpace(trailingPunctPattern.ReplaceAllString(vendor, ""))

		if len(vendor) < 5 || len(vendor) > 50 {
			continue
		}

		matchText := ctx.Text[loc[0]:loc[1]]
		votes := 2
		if temp := extract.FindAnchored(ctx.Text, regexp.QuoteMeta(matchText), extract.VendorNameAnchors, 2); len(temp) > 0 {
			votes = temp[0].TotalVotes()
		}

		results = append(results, extract.Result{Value: vendor, Votes: votes, MatchedText: matchText})
	}
	return results
}
