package invoicelib

import (
	"context"
	"io"

	"github.com/rezonia/textlayout-invoice/internal/model"
	"github.com/rezonia/textlayout-invoice/internal/processor"
)

// ExtractionResult represents extraction result with metadata
type ExtractionResult struct {
	Invoice     *model.Invoice
	Confidence  float64
	Method      string
	Warnings    []string
	NeedsReview bool
}

// Pipeline processes invoices through the extraction chain
type Pipeline interface {
	// Process processes input and returns extraction result
	Process(ctx context.Context, r io.Reader) (*ExtractionResult, error)

	// ProcessBatch processes multiple inputs
	ProcessBatch(ctx context.Context, inputs []io.Reader) ([]*ExtractionResult, error)
}

// PipelineOptions configures pipeline behavior
type PipelineOptions struct {
	// Thresholds
	TemplateThreshold float64 // Minimum confidence for template (default: 0.90)
	LLMThreshold      float64 // Minimum confidence for LLM (default: 0.85)
	ReviewThreshold   float64 // Below this, flag for review (default: 0.70)

	// LLMExtractor is an optional vision fallback for image input. The
	// anchored text-extraction core covers PDF on its own; only images
	// need this, since OCR and image analysis are outside the core's
	// scope.
	LLMExtractor processor.LLMExtractor

	// Feature flags
	EnableLLM bool
	EnableOCR bool

	// Validation
	ValidateAfterExtraction bool
}

// DefaultPipelineOptions returns default pipeline options
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		TemplateThreshold:       0.90,
		LLMThreshold:            0.85,
		ReviewThreshold:         0.70,
		EnableLLM:               false,
		EnableOCR:               false,
		ValidateAfterExtraction: true,
	}
}
