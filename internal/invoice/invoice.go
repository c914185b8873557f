// Package invoice assembles the per-field extraction results from
// internal/extract/field and internal/vendor into a single parsed invoice,
// combining PDF text variants with an optional email envelope.
package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/textlayout-invoice/internal/dateparse"
	"github.com/rezonia/textlayout-invoice/internal/extract"
	"github.com/rezonia/textlayout-invoice/internal/extract/field"
	"github.com/rezonia/textlayout-invoice/internal/locale"
	"github.com/rezonia/textlayout-invoice/internal/money"
	"github.com/rezonia/textlayout-invoice/internal/pdftext"
	"github.com/rezonia/textlayout-invoice/internal/vendor"
)

// LineItem is a single best-effort line extracted from the invoice body.
// It carries only a Description and an Amount: extractLineItems recovers
// a description and a trailing amount from a plain text line and nothing
// more.
type LineItem struct {
	Description string
	Amount      decimal.Decimal
}

// ParsedInvoice is the result of running every field extractor over an
// invoice's PDF text variants and, optionally, its originating email.
//
// Monetary and date fields use pointers so a field that was never found is
// nil rather than a misleading zero value.
type ParsedInvoice struct {
	InvoiceNumber string
	VendorName    string
	VendorAddress string
	OrganizationID string
	VatNumber     string
	Customer      string

	InvoiceDate    *time.Time
	DueDate        *time.Time
	InvoiceDateRaw string
	DueDateRaw     string

	TotalAmount       *decimal.Decimal
	TotalExcludingVat *decimal.Decimal
	VatAmount         *decimal.Decimal
	VatRate           *decimal.Decimal
	Currency          string

	LineItems []LineItem

	RawText    string
	Confidence float64
	Warnings   []string
}

// EmailContext is the optional email envelope an invoice PDF arrived with.
type EmailContext struct {
	From    string
	Subject string
	Body    string
	Date    time.Time
	HasDate bool
}

// preferredVariantOrder ranks PDF extraction variants by how reliably they
// preserve layout, most reliable first. When any variant's name is in this
// list, only the listed variants are used, in list order; unlisted ones are
// dropped. Only when no name matches are all variants used in their
// original order. ExtractWithAllStrategies produces "textlayout",
// "PdfCpu-Default" and "Poppler-pdftotext", all of which are listed.
var preferredVariantOrder = []string{
	"asynkron-textlayout",
	"Docnet-PDFium",
	"PdfPig-Default",
	"PdfPig-Layout",
	"PdfPig-NearestNeighbour",
	"default",
	"textlayout",
	"PdfCpu-Default",
	"Poppler-pdftotext",
}

// Parse builds a ParsedInvoice from a PDF extraction result and an optional
// email envelope. A nil or empty extraction still returns a ParsedInvoice
// (RawText carries whatever best text was available, Confidence is 0)
// rather than an error - there is no failure mode here that isn't simply
// "nothing was found".
func Parse(extraction pdftext.Result, email *EmailContext) ParsedInvoice {
	var emailFrom, emailSubject, emailBody, emailDateRaw string
	if email != nil {
		emailFrom, emailSubject, emailBody = email.From, email.Subject, email.Body
		if email.HasDate {
			emailDateRaw = email.Date.Format("2006-01-02")
		}
	}

	var rawText string
	if best, ok := extraction.BestText(); ok {
		rawText = best
	}

	textDocuments := make([]string, 0, len(extraction.Variants)+1)
	pdfDocuments := make([]string, 0, len(extraction.Variants))

	if emailDocument, ok := buildEmailDocument(emailFrom, emailSubject, emailBody); ok {
		textDocuments = append(textDocuments, emailDocument)
	}

	for _, variant := range extraction.Variants {
		if strings.TrimSpace(variant.Text) == "" {
			continue
		}
		textDocuments = append(textDocuments, variant.Text)
		pdfDocuments = append(pdfDocuments, variant.Text)
	}

	preferredPdfDocuments := selectPreferredPdfDocuments(extraction.Variants)

	if len(pdfDocuments) == 0 {
		return ParsedInvoice{RawText: rawText, Confidence: 0}
	}

	combinedText := strings.Join(textDocuments, "\n")
	lines := nonEmptyTrimmedLines(combinedText)

	var pdfCombinedText string
	if len(preferredPdfDocuments) > 0 {
		pdfCombinedText = strings.Join(preferredPdfDocuments, "\n")
	} else if len(pdfDocuments) > 0 {
		pdfCombinedText = strings.Join(pdfDocuments, "\n")
	} else {
		pdfCombinedText = combinedText
	}
	pdfLines := nonEmptyTrimmedLines(pdfCombinedText)

	pdfPrimaryText := combinedText
	switch {
	case len(preferredPdfDocuments) > 0:
		pdfPrimaryText = preferredPdfDocuments[0]
	case len(pdfDocuments) > 0:
		pdfPrimaryText = pdfDocuments[0]
	}
	pdfPrimaryLines := nonEmptyTrimmedLines(pdfPrimaryText)

	textLocale := locale.Detect(combinedText)
	ctx := extract.Context{
		Text:          combinedText,
		Lines:         lines,
		Locale:        textLocale,
		SenderHint:    emailFrom,
		EmailBodyHint: emailBody,
		EmailSubject:  emailSubject,
	}

	pdfLocale := textLocale
	if len(preferredPdfDocuments) > 0 || len(pdfDocuments) > 0 {
		pdfLocale = locale.Detect(pdfCombinedText)
	}
	pdfCtx := extract.Context{
		Text:          pdfCombinedText,
		Lines:         pdfLines,
		Locale:        pdfLocale,
		SenderHint:    emailFrom,
		EmailBodyHint: emailBody,
		EmailSubject:  emailSubject,
	}

	pdfPreferredDocuments := preferredPdfDocuments
	if len(pdfPreferredDocuments) == 0 {
		if len(pdfDocuments) > 0 {
			pdfPreferredDocuments = pdfDocuments
		} else {
			pdfPreferredDocuments = textDocuments
		}
	}

	invoice := ParsedInvoice{RawText: firstNonEmpty(rawText, pdfCombinedText)}

	invoice.InvoiceNumber, _ = extract.ExtractBestAcrossVariants(textDocuments, ctx, field.InvoiceNumberExtractors)

	invoice.Currency, _ = extract.ExtractBestAcrossVariants(pdfPreferredDocuments, pdfCtx, field.CurrencyExtractors)

	if totalRaw, ok := extract.ExtractBestAcrossVariants(pdfPreferredDocuments, pdfCtx, field.TotalAmountExtractors); ok {
		invoice.TotalAmount = parseAmount(totalRaw, pdfLocale)
	}

	invoice.InvoiceDateRaw, _ = extract.ExtractBestAcrossVariants(pdfPreferredDocuments, pdfCtx, field.InvoiceDateExtractors)
	invoice.DueDateRaw, _ = extract.ExtractBestAcrossVariants(pdfPreferredDocuments, pdfCtx, field.DueDateExtractors)

	if vatRaw, ok := extract.ExtractBestAcrossVariants(pdfPreferredDocuments, pdfCtx, field.VatAmountExtractors); ok {
		invoice.VatAmount = parseAmount(vatRaw, pdfLocale)
	}

	if rateRaw, ok := extract.ExtractBestAcrossVariants(pdfPreferredDocuments, pdfCtx, field.VatRateExtractors); ok {
		invoice.VatRate = parseRate(rateRaw)
	}

	if subtotalRaw, ok := extract.ExtractBestAcrossVariants(pdfPreferredDocuments, pdfCtx, field.SubtotalExtractors); ok {
		invoice.TotalExcludingVat = parseAmount(subtotalRaw, pdfLocale)
	}

	invoice.VendorName = vendor.Extract(pdfPrimaryText, pdfPrimaryLines, emailFrom, emailBody, emailSubject)

	calculateMissingVatValues(&invoice)

	if invoice.Currency == "" {
		invoice.Currency = money.DetectCurrency(combinedText)
	}

	invoice.LineItems = extractLineItems(lines, textLocale)
	invoice.Confidence = calculateConfidence(&invoice)

	if strings.TrimSpace(invoice.InvoiceDateRaw) == "" && emailDateRaw != "" {
		invoice.InvoiceDateRaw = emailDateRaw
	}

	if t, ok := dateparse.Parse(invoice.InvoiceDateRaw, pdfLocale); ok {
		invoice.InvoiceDate = &t
	}
	if t, ok := dateparse.Parse(invoice.DueDateRaw, pdfLocale); ok {
		invoice.DueDate = &t
	}

	return invoice
}

func selectPreferredPdfDocuments(variants []pdftext.Variant) []string {
	if len(variants) == 0 {
		return nil
	}

	var preferred []string
	for _, name := range preferredVariantOrder {
		for _, variant := range variants {
			if strings.EqualFold(variant.ExtractorName, name) {
				preferred = append(preferred, variant.Text)
			}
		}
	}

	if len(preferred) == 0 {
		for _, variant := range variants {
			preferred = append(preferred, variant.Text)
		}
	}

	return preferred
}

func buildEmailDocument(from, subject, body string) (string, bool) {
	var parts []string

	if strings.TrimSpace(from) != "" {
		parts = append(parts, "From: "+from)
	}
	if strings.TrimSpace(subject) != "" {
		parts = append(parts, "Subject: "+subject)
	}
	if strings.TrimSpace(body) != "" {
		parts = append(parts, body)
	}

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

func nonEmptyTrimmedLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseAmount(raw string, loc locale.Locale) *decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	amount, ok := money.ParseAmount(raw, loc)
	if !ok {
		return nil
	}
	return &amount
}

func parseRate(raw string) *decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	normalized := strings.ReplaceAll(raw, ",", ".")
	rate, err := decimal.NewFromString(normalized)
	if err != nil {
		return nil
	}
	return &rate
}

// calculateMissingVatValues reconciles the VAT triple through four branches,
// depending on which extractors actually found something: three of them
// fill the one missing value of TotalAmount, TotalExcludingVat and
// VatAmount from the other two, and one fills both VatAmount and
// TotalAmount from TotalExcludingVat and VatRate. A VAT amount that would end
// up greater than or equal to the total is discarded as a contradiction
// rather than trusted.
func calculateMissingVatValues(invoice *ParsedInvoice) {
	switch {
	case invoice.TotalAmount != nil && invoice.VatAmount != nil && invoice.TotalExcludingVat == nil:
		v := invoice.TotalAmount.Sub(*invoice.VatAmount)
		invoice.TotalExcludingVat = &v
	case invoice.TotalExcludingVat != nil && invoice.VatAmount != nil && invoice.TotalAmount == nil:
		v := invoice.TotalExcludingVat.Add(*invoice.VatAmount)
		invoice.TotalAmount = &v
	case invoice.TotalExcludingVat != nil && invoice.VatRate != nil && invoice.TotalAmount == nil:
		vat := invoice.TotalExcludingVat.Mul(*invoice.VatRate).Div(decimal.NewFromInt(100))
		invoice.VatAmount = &vat
		total := invoice.TotalExcludingVat.Add(vat)
		invoice.TotalAmount = &total
	case invoice.TotalAmount != nil && invoice.TotalExcludingVat != nil && invoice.VatAmount == nil:
		v := invoice.TotalAmount.Sub(*invoice.TotalExcludingVat)
		invoice.VatAmount = &v
	}

	if invoice.VatAmount != nil && invoice.TotalAmount != nil && invoice.VatAmount.GreaterThanOrEqual(*invoice.TotalAmount) {
		invoice.VatAmount = nil
	}
}
