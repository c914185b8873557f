// Package processor wires the format-specific extraction paths (the
// anchored text-layout core, an optional LLM vision fallback for images)
// behind one entry point: a Pipeline that takes raw document bytes and
// returns a structured Invoice plus a confidence score.
package processor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rezonia/textlayout-invoice/internal/invoice"
	"github.com/rezonia/textlayout-invoice/internal/model"
	pdfparser "github.com/rezonia/textlayout-invoice/internal/parser/pdf"
)

// Format is the document format a Pipeline detected or was told to assume.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatImage
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatImage:
		return "image"
	default:
		return "unknown"
	}
}

// DetectFormat sniffs the format of raw document bytes from magic numbers.
// It never inspects more than the first few bytes, so it is safe to call on
// arbitrarily large uploads before deciding which extraction path to run.
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return FormatPDF
	}

	if len(data) >= 4 {
		switch {
		case data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
			return FormatImage // PNG
		case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
			return FormatImage // JPEG
		case data[0] == 0x49 && data[1] == 0x49 && data[2] == 0x2A && data[3] == 0x00:
			return FormatImage // TIFF little-endian
		case data[0] == 0x4D && data[1] == 0x4D && data[2] == 0x00 && data[3] == 0x2A:
			return FormatImage // TIFF big-endian
		}
	}

	return FormatUnknown
}

// ExtractionMethod records which path produced a Result.
type ExtractionMethod string

const (
	// MethodTextLayout is the anchored-extraction-and-aggregation core:
	// pdftext variants through internal/invoice.ParseSafely.
	MethodTextLayout ExtractionMethod = "textlayout"
	// MethodLLMText and MethodLLMVision are reserved for a pluggable
	// LLMExtractor. The default Pipeline never produces them on its own -
	// the core has no text or vision fallback of its own, since OCR and
	// image analysis are out of scope for it.
	MethodLLMText   ExtractionMethod = "llm_text"
	MethodLLMVision ExtractionMethod = "llm_vision"
)

// Result is what every Pipeline method returns: either an Invoice with a
// confidence score and any non-fatal warnings, or an Error when nothing
// could be produced at all.
type Result struct {
	Invoice    *model.Invoice
	Method     ExtractionMethod
	Confidence float64
	Warnings   []string
	Error      error
}

// LLMExtractor is a pluggable vision-based fallback for document images,
// which the anchored text core cannot read. No implementation ships with
// this module; callers that want image support provide their own.
type LLMExtractor interface {
	ExtractFromImage(ctx context.Context, imageData []byte, mimeType string) (*model.Invoice, float64, []string, error)
}

// Pipeline dispatches raw document bytes to the right extraction path.
type Pipeline struct {
	pdfExtractor *pdfparser.Extractor
	llmExtractor LLMExtractor
	logger       zerolog.Logger
}

// PipelineOption configures a Pipeline at construction time.
type PipelineOption func(*Pipeline)

// WithLLMExtractor installs a vision fallback for ProcessImage. Passing nil
// leaves images unsupported.
func WithLLMExtractor(e LLMExtractor) PipelineOption {
	return func(p *Pipeline) { p.llmExtractor = e }
}

// WithLogger installs a structured logger used for non-fatal, per-strategy
// PDF extraction diagnostics. The zero Pipeline logs nothing.
func WithLogger(logger zerolog.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = logger }
}

// NewPipeline builds a Pipeline ready to process PDF and (with
// WithLLMExtractor) image input.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		pdfExtractor: pdfparser.NewExtractor(),
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.pdfExtractor.WithLogger(p.logger)
	return p
}

// ProcessPDF runs every available PDF text extraction strategy over
// pdfData and feeds the resulting variants through the anchored extraction
// core. It never returns an Error - an unreadable or unrecognized PDF comes
// back as a zero-confidence Invoice with a warning, matching the core's
// "absent field, not an exception" design.
func (p *Pipeline) ProcessPDF(ctx context.Context, pdfData []byte) *Result {
	parsed := p.pdfExtractor.Extract(ctx, pdfData)
	return &Result{
		Invoice:    convertParsedInvoice(parsed),
		Method:     MethodTextLayout,
		Confidence: parsed.Confidence,
		Warnings:   parsed.Warnings,
	}
}

// ProcessImage hands imageData to the configured LLMExtractor. The core has
// no OCR or image-analysis path of its own, so without an LLMExtractor this
// always fails.
func (p *Pipeline) ProcessImage(ctx context.Context, imageData []byte, mimeType string) *Result {
	if p.llmExtractor == nil {
		return &Result{Method: MethodLLMVision, Error: fmt.Errorf("LLM extractor not configured")}
	}

	inv, confidence, warnings, err := p.llmExtractor.ExtractFromImage(ctx, imageData, mimeType)
	if err != nil {
		return &Result{Method: MethodLLMVision, Error: fmt.Errorf("LLM extraction failed: %w", err)}
	}
	return &Result{Invoice: inv, Method: MethodLLMVision, Confidence: confidence, Warnings: warnings}
}

// convertParsedInvoice maps the anchored-extraction core's ParsedInvoice
// onto the provider-agnostic model.Invoice shape the HTTP layer and
// pkg/invoicelib speak. Fields the core never populates (Series, ExchangeRate,
// buyer tax ID, signatures) are simply left at their zero value.
func convertParsedInvoice(p invoice.ParsedInvoice) *model.Invoice {
	inv := &model.Invoice{
		Number:   p.InvoiceNumber,
		Currency: p.Currency,
		Seller: model.Party{
			Name:    p.VendorName,
			Address: p.VendorAddress,
			TaxID:   p.OrganizationID,
		},
		Buyer: model.Party{
			Name: p.Customer,
		},
	}

	if p.InvoiceDate != nil {
		inv.Date = *p.InvoiceDate
	}
	if p.TotalAmount != nil {
		inv.TotalAmount = *p.TotalAmount
	}
	if p.VatAmount != nil {
		inv.TaxAmount = *p.VatAmount
	}
	if p.TotalExcludingVat != nil {
		inv.SubtotalAmount = *p.TotalExcludingVat
	}

	for i, li := range p.LineItems {
		inv.Items = append(inv.Items, model.LineItem{
			Number:      i + 1,
			Description: li.Description,
			Amount:      li.Amount,
			Total:       li.Amount,
		})
	}

	return inv
}
