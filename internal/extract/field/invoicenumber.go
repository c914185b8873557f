package field

import (
	"regexp"
	"strings"

	"github.com/rezonia/textlayout-invoice/internal/extract"
)

var hasDigitPattern = regexp.MustCompile(`\d`)

// AlphaNumericHyphenExtractor matches the hyphenated alpha-numeric invoice
// number shape (e.g. "ABCD12-345") anchored near any invoice-number label.
type AlphaNumericHyphenExtractor struct{}

const alphaNumericHyphenValuePattern = `[A-Z]{4,}\d{2,}-\d{3,}`

func (AlphaNumericHyphenExtractor) Name() string { return "Alpha-numeric hyphen (XXXX00-000)" }

func (e AlphaNumericHyphenExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (AlphaNumericHyphenExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	matches := extract.FindAnchored(ctx.Text, alphaNumericHyphenValuePattern, extract.InvoiceNumberAnchors, 2)
	var results []extract.Result
	for _, match := range matches {
		if match.Value != "" && len(match.Value) >= 4 {
			results = append(results, extract.Result{Value: match.Value, Votes: match.TotalVotes(), MatchedText: match.MatchedText})
		}
	}
	return results
}

// InvPrefixExtractor matches the "INV" + digits run shape directly, with no
// anchor requirement.
type InvPrefixExtractor struct{}

var invPrefixPattern = regexp.MustCompile(`(?i)\bINV(\d{6,})\b`)

func (InvPrefixExtractor) Name() string { return "INV prefix" }

func (e InvPrefixExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (InvPrefixExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	matches := invPrefixPattern.FindAllStringSubmatch(ctx.Text, -1)
	if len(matches) == 0 {
		return nil
	}
	results := make([]extract.Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, extract.Result{Value: "INV" + m[1], Votes: 3, MatchedText: m[0]})
	}
	return results
}

func extractNumberedLabel(text string, pattern *regexp.Regexp, votes int) []extract.Result {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	var results []extract.Result
	for _, m := range matches {
		num := strings.TrimSpace(m[1])
		if len(num) >= 4 && hasDigitPattern.MatchString(num) {
			results = append(results, extract.Result{Value: num, Votes: votes, MatchedText: m[0]})
		}
	}
	return results
}

// InvoiceHashExtractor matches "Invoice #<value>".
type InvoiceHashExtractor struct{}

var invoiceHashPattern = regexp.MustCompile(`(?i)invoice\s*#[:\s]*([A-Z0-9][\w\-]*)`)

func (InvoiceHashExtractor) Name() string { return "Invoice #" }

func (e InvoiceHashExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (InvoiceHashExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return extractNumberedLabel(ctx.Text, invoiceHashPattern, 3)
}

// InvoiceNoExtractor matches "Invoice/Faktura No/Nr/Nummer: <value>".
type InvoiceNoExtractor struct{}

var invoiceNoPattern = regexp.MustCompile(`(?i)(?:invoice|faktura)\s*(?:#|no\.?|nr\.?|nummer)[:\s]*([A-Z]*\d+[A-Z0-9\-]*)`)

func (InvoiceNoExtractor) Name() string { return "Invoice No/Nr/Nummer" }

func (e InvoiceNoExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (InvoiceNoExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return extractNumberedLabel(ctx.Text, invoiceNoPattern, 3)
}

// ReferenceNumberExtractor matches "Reference Number: <value>".
type ReferenceNumberExtractor struct{}

var referenceNumberPattern = regexp.MustCompile(`(?i)reference\s*number[:\s]*([A-Z0-9][A-Z0-9\-]*\d[A-Z0-9\-]*)`)

func (ReferenceNumberExtractor) Name() string { return "Reference Number" }

func (e ReferenceNumberExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (ReferenceNumberExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return extractNumberedLabel(ctx.Text, referenceNumberPattern, 2)
}

// InvoiceNumberColonExtractor matches an explicit "Invoice Number:" label
// followed immediately by a colon and a value, the tightest and most
// reliable of the label shapes.
type InvoiceNumberColonExtractor struct{}

var invoiceNumberColonPattern = regexp.MustCompile(`(?i)invoice\s*(?:number|no\.?)\s*:\s*([A-Z0-9][\w\-/]*)`)

func (InvoiceNumberColonExtractor) Name() string { return "Invoice Number:" }

func (e InvoiceNumberColonExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (InvoiceNumberColonExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return extractNumberedLabel(ctx.Text, invoiceNumberColonPattern, 3)
}

// InvoiceSpaceExtractor matches the bare "Invoice 12345" shape, a label
// directly followed by whitespace and a value with no colon or "#" between
// them.
type InvoiceSpaceExtractor struct{}

var invoiceSpacePattern = regexp.MustCompile(`(?i)\binvoice\s+([A-Z0-9][\w\-]*\d[\w\-]*)`)

func (InvoiceSpaceExtractor) Name() string { return "Invoice <value> (no separator)" }

func (e InvoiceSpaceExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (InvoiceSpaceExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return extractNumberedLabel(ctx.Text, invoiceSpacePattern, 2)
}

// InvoiceNumberNoSpaceExtractor matches a bare alphanumeric run like
// "INV20240001" that packs the invoice-number prefix and digits together
// with no space, hyphen, or label separator at all.
type InvoiceNumberNoSpaceExtractor struct{}

const invoiceNumberNoSpaceValuePattern = `\b[A-Z]{2,5}\d{4,}\b`

func (InvoiceNumberNoSpaceExtractor) Name() string { return "Invoice number (no space)" }

func (e InvoiceNumberNoSpaceExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (InvoiceNumberNoSpaceExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	matches := extract.FindAnchored(ctx.Text, invoiceNumberNoSpaceValuePattern, extract.InvoiceNumberAnchors, 2)
	var results []extract.Result
	for _, match := range matches {
		if len(match.Value) >= 4 {
			results = append(results, extract.Result{Value: match.Value, Votes: match.TotalVotes(), MatchedText: match.MatchedText})
		}
	}
	return results
}

// ReceiptHashExtractor matches "Receipt #<value>", the receipt-oriented
// sibling of InvoiceHashExtractor.
type ReceiptHashExtractor struct{}

var receiptHashPattern = regexp.MustCompile(`(?i)receipt\s*#[:\s]*([A-Z0-9][\w\-]*)`)

func (ReceiptHashExtractor) Name() string { return "Receipt #" }

func (e ReceiptHashExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (ReceiptHashExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return extractNumberedLabel(ctx.Text, receiptHashPattern, 3)
}

// RefNoExtractor matches the short "Ref No: <value>" / "Ref#: <value>" form,
// distinct from the longer "Reference Number" label ReferenceNumberExtractor
// handles.
type RefNoExtractor struct{}

var refNoPattern = regexp.MustCompile(`(?i)\bref\.?\s*(?:no\.?|#)\s*[:\s]\s*([A-Z0-9][\w\-]*)`)

func (RefNoExtractor) Name() string { return "Ref No" }

func (e RefNoExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (RefNoExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return extractNumberedLabel(ctx.Text, refNoPattern, 2)
}

// CreditNoteNumberExtractor matches "Credit Note #/No/Number: <value>", used
// when an invoice is actually a credit note.
type CreditNoteNumberExtractor struct{}

var creditNoteNumberPattern = regexp.MustCompile(`(?i)credit\s*note\s*(?:#|no\.?|number)?\s*[:\s]\s*([A-Z0-9][\w\-]*)`)

func (CreditNoteNumberExtractor) Name() string { return "Credit Note Number" }

func (e CreditNoteNumberExtractor) Extract(ctx extract.Context) extract.Result {
	return extract.Best(e.ExtractAll(ctx))
}

func (CreditNoteNumberExtractor) ExtractAll(ctx extract.Context) []extract.Result {
	return extractNumberedLabel(ctx.Text, creditNoteNumberPattern, 3)
}
