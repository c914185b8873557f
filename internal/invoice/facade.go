package invoice

import (
	"github.com/rs/zerolog"

	"github.com/rezonia/textlayout-invoice/internal/pdftext"
)

// ParseSafely runs Parse behind a panic recovery boundary so that a
// malformed PDF never takes down the caller: any panic inside Parse
// produces a ParsedInvoice carrying a "ParsingError" warning instead of
// propagating, with logger (if non-zero) reporting what happened.
func ParseSafely(extraction pdftext.Result, email *EmailContext, logger zerolog.Logger) (result ParsedInvoice) {
	if len(extraction.Variants) == 0 {
		logger.Warn().Msg("invoice parsing skipped: no extraction variants")
		return ParsedInvoice{Confidence: 0}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("invoice parsing failed")
			rawText, _ := extraction.BestText()
			result = ParsedInvoice{
				RawText:    rawText,
				Confidence: 0,
				Warnings:   []string{"ParsingError"},
			}
		}
	}()

	return Parse(extraction, email)
}
