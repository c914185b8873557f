package invoice

import "strings"

const confidenceMaxScore = 8.0

// calculateConfidence weighs each recovered field by how much it matters to
// a downstream consumer - the invoice number and total carry more weight
// than a due date or a line item - and normalizes to [0, 1].
func calculateConfidence(invoice *ParsedInvoice) float64 {
	var score float64

	if invoice.InvoiceNumber != "" {
		score += 1.0
	}
	if invoice.VendorName != "" {
		score += 1.0
	}
	if strings.TrimSpace(invoice.InvoiceDateRaw) != "" {
		score += 1.5
	}
	if strings.TrimSpace(invoice.DueDateRaw) != "" {
		score += 0.5
	}
	if invoice.TotalAmount != nil {
		score += 2.0
	}
	if invoice.VatAmount != nil {
		score += 1.0
	}
	if invoice.Currency != "" {
		score += 0.5
	}
	if len(invoice.LineItems) > 0 {
		score += 0.5
	}

	return score / confidenceMaxScore
}
