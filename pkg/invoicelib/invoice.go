// Package invoicelib provides a public API for extracting structured
// invoice data from PDF invoices using the anchored text-layout core.
//
// Example usage:
//
//	proc := invoicelib.NewDefaultProcessor()
//	result, err := proc.ProcessPDF(ctx, reader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Invoice.TotalAmount)
package invoicelib

import "github.com/rezonia/textlayout-invoice/internal/model"

// Re-export core types for public API
type (
	Invoice  = model.Invoice
	LineItem = model.LineItem
	Party    = model.Party
	VATRate  = model.VATRate
)

// Re-export VAT rates
const (
	VATRate0  = model.VATRate0
	VATRate5  = model.VATRate5
	VATRate10 = model.VATRate10
)

// Re-export error types
type (
	ParseError      = model.ParseError
	ValidationError = model.ValidationError
	ExtractionError = model.ExtractionError
)
