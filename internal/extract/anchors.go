package extract

// InvoiceNumberAnchors are label patterns preceding an invoice/reference
// number, in English and in Swedish, German, and French variants.
var InvoiceNumberAnchors = []Anchor{
	newAnchor(`invoice\s*(?:number|#|no\.?)\s*[:：]?\s*`, 4, "Invoice Number"),
	newAnchor(`invoice\s*#`, 4, "Invoice #"),
	newAnchor(`inv\.?\s*(?:no\.?|#)\s*[:：]?`, 3, "Inv No"),
	newAnchor(`fakturanummer\s*[:：]?`, 4, "Fakturanummer"),
	newAnchor(`fakturanr\.?\s*[:：]?`, 4, "Fakturanr"),
	newAnchor(`faktura\s*(?:nr|#)\s*[:：]?`, 3, "Faktura nr"),
	newAnchor(`rechnungsnummer\s*[:：]?`, 4, "Rechnungsnummer"),
	newAnchor(`rechnung\s*(?:nr|#)\s*[:：]?`, 3, "Rechnung Nr"),
	newAnchor(`numéro\s*de\s*facture\s*[:：]?`, 4, "Numéro de facture"),
	newAnchor(`facture\s*(?:n[°o]|#)\s*[:：]?`, 3, "Facture n°"),
	newAnchor(`reference\s*(?:number|#|no\.?)?\s*[:：]?`, 2, "Reference"),
	newAnchor(`order\s*(?:number|#|no\.?)?\s*[:：]?`, 1, "Order Number"),
}

// TotalAmountAnchors are label patterns preceding a total/amount-due figure.
var TotalAmountAnchors = []Anchor{
	newAnchor(`(?:grand\s+)?\btotal\b\s*[:：]`, 4, "Total:"),
	newAnchor(`\btotal\s+due\b\s*[:：]?`, 5, "Total Due"),
	newAnchor(`amount\s+due\s*[:：]?`, 4, "Amount Due"),
	newAnchor(`\btotal\s+amount\b\s*[:：]?`, 4, "Total Amount"),
	newAnchor(`amount\s+paid\s*[:：]?`, 3, "Amount Paid"),
	newAnchor(`balance\s+due\s*[:：]?`, 3, "Balance Due"),
	// RE2 has no lookaround; the original's negative-lookahead guard against
	// "Totalt exkl/excl/vat/moms/tax" is instead enforced downstream by the
	// total-amount extractor's own VAT/excl line penalties.
	newAnchor(`\btotalt?\b\s*(?:i\s+sek)?\s*[:：]?`, 4, "Totalt"),
	newAnchor(`\batt\s+betala\b\s*[:：]?`, 4, "Att betala"),
	newAnchor(`\bsumma\b\s*[:：]?`, 3, "Summa"),
	newAnchor(`\bbelopp\b\s*[:：]?`, 2, "Belopp"),
	newAnchor(`\bgesamtbetrag\b\s*[:：]?`, 4, "Gesamtbetrag"),
	newAnchor(`\bsumme\b\s*[:：]?`, 3, "Summe"),
	newAnchor(`\bendbetrag\b\s*[:：]?`, 3, "Endbetrag"),
	newAnchor(`\bmontant\s+total\b\s*[:：]?`, 4, "Montant total"),
	newAnchor(`\btotal\s+ttc\b\s*[:：]?`, 4, "Total TTC"),
	// Positive lookahead isn't available either; consume the currency symbol.
	newAnchor(`\btotal\b[€$£]`, 2, "Total (no separator)"),
}

// InvoiceDateAnchors are label patterns preceding an invoice issue date.
var InvoiceDateAnchors = []Anchor{
	newAnchor(`invoice\s+date\s*[:：]?`, 4, "Invoice Date"),
	newAnchor(`issue\s+date\s*[:：]?`, 4, "Issue Date"),
	newAnchor(`tax\s+point\s+date\s*[:：]?`, 4, "Tax point date"),
	newAnchor(`date\s+of\s+invoice\s*[:：]?`, 4, "Date of Invoice"),
	newAnchor(`date\s+paid\s*[:：]?`, 3, "Date Paid"),
	newAnchor(`paid\s+on\s*[:：]?`, 2, "Paid on"),
	newAnchor(`fakturadatum\s*[:：]?`, 4, "Fakturadatum"),
	newAnchor(`rechnungsdatum\s*[:：]?`, 4, "Rechnungsdatum"),
}

// DueDateAnchors are label patterns preceding a payment due date.
var DueDateAnchors = []Anchor{
	newAnchor(`due\s+date\s*[:：]?`, 4, "Due Date"),
	newAnchor(`payment\s+due\s*[:：]?`, 4, "Payment Due"),
	newAnchor(`förfallodatum\s*[:：]?`, 4, "Förfallodatum"),
	newAnchor(`förfaller\s*[:：]?`, 3, "Förfaller"),
	newAnchor(`fälligkeitsdatum\s*[:：]?`, 4, "Fälligkeitsdatum"),
	newAnchor(`pay\s+by\s*[:：]?`, 3, "Pay by"),
}

// VendorNameAnchors are label patterns preceding a vendor/sender name.
var VendorNameAnchors = []Anchor{
	newAnchor(`(?:your\s+)?receipt\s+from\s+`, 4, "Receipt from"),
	newAnchor(`(?:your\s+)?invoice\s+from\s+`, 4, "Invoice from"),
	newAnchor(`bill\s+from\s+`, 4, "Bill from"),
	newAnchor(`payment\s+to\s+`, 3, "Payment to"),
	newAnchor(`sent\s+by\s+`, 2, "Sent by"),
	newAnchor(`kvitto\s+från\s+`, 4, "Kvitto från"),
	newAnchor(`faktura\s+från\s+`, 4, "Faktura från"),
	newAnchor(`rechnung\s+von\s+`, 4, "Rechnung von"),
	newAnchor(`beleg\s+von\s+`, 3, "Beleg von"),
}
