package field

import "github.com/rezonia/textlayout-invoice/internal/extract"

// InvoiceNumberExtractors covers every invoice/reference/credit-note number
// shape the engine recognizes, ordered roughly by specificity.
var InvoiceNumberExtractors = []extract.Extractor{
	InvoiceNumberColonExtractor{},
	InvoiceHashExtractor{},
	InvoiceNoExtractor{},
	InvPrefixExtractor{},
	AlphaNumericHyphenExtractor{},
	ReceiptHashExtractor{},
	InvoiceSpaceExtractor{},
	InvoiceNumberNoSpaceExtractor{},
	ReferenceNumberExtractor{},
	CreditNoteNumberExtractor{},
	RefNoExtractor{},
}

// CurrencyExtractors resolves the invoice currency: an anchored token first,
// falling back to whole-document detection in a fixed priority order.
var CurrencyExtractors = []extract.Extractor{
	AnchoredCurrencyExtractor{},
	DetectedCurrencyExtractor{},
}

// TotalAmountExtractors holds the single rule-heavy total-amount strategy.
var TotalAmountExtractors = []extract.Extractor{
	AnchoredTotalAmountExtractor{},
}

// VendorNameExtractors holds the single legal-suffix vendor-name strategy.
var VendorNameExtractors = []extract.Extractor{
	CompanyWithSuffixExtractor{},
}

// InvoiceDateExtractors resolves the invoice issue date: anchored search
// first, falling back to any date token in the document.
var InvoiceDateExtractors = []extract.Extractor{
	AnchoredInvoiceDateExtractor{},
	AnyDateExtractor{},
}

// DueDateExtractors holds the single anchored due-date strategy.
var DueDateExtractors = []extract.Extractor{
	AnchoredDueDateExtractor{},
}

// VatAmountExtractors resolves the VAT amount: the standard label-then-amount
// shape, plus the Swedish reverse amount-before-label layout.
var VatAmountExtractors = []extract.Extractor{
	VatAmountExtractor{},
	SwedishReverseVatExtractor{},
}

// VatRateExtractors holds the single VAT-rate-percentage strategy.
var VatRateExtractors = []extract.Extractor{
	VatRateExtractor{},
}

// SubtotalExtractors resolves the pre-VAT subtotal: the standard
// label-then-amount shape, plus the Swedish reverse layout.
var SubtotalExtractors = []extract.Extractor{
	SubtotalExtractor{},
	SwedishReverseSubtotalExtractor{},
}
