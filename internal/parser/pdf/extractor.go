// Package pdf runs the anchored text-extraction core over a PDF's rendered
// text variants.
package pdf

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rezonia/textlayout-invoice/internal/invoice"
	"github.com/rezonia/textlayout-invoice/internal/pdftext"
)

// Extractor renders a PDF through every available text-extraction strategy
// and parses the result with the anchored extraction engine.
type Extractor struct {
	logger zerolog.Logger
}

// NewExtractor builds an Extractor with no logger attached.
func NewExtractor() *Extractor {
	return &Extractor{logger: zerolog.Nop()}
}

// WithLogger attaches logger to e and returns e for chaining.
func (e *Extractor) WithLogger(logger zerolog.Logger) *Extractor {
	e.logger = logger
	return e
}

// Extract renders pdfData through every available strategy and parses the
// combined result. ctx is accepted but not used; extraction itself is
// synchronous CPU work with no cancellation points of its own.
func (e *Extractor) Extract(ctx context.Context, pdfData []byte) invoice.ParsedInvoice {
	extraction := pdftext.ExtractWithAllStrategies(pdfData, func(strategy string, err error) {
		e.logger.Debug().Str("strategy", strategy).Err(err).Msg("pdf extraction strategy skipped")
	})
	return invoice.ParseSafely(extraction, nil, e.logger)
}
