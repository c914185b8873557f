package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VATRate is a percentage (0, 5, 10, ...), not a fraction.
type VATRate int

const (
	VATRate0  VATRate = 0
	VATRate5  VATRate = 5
	VATRate10 VATRate = 10
)

// Party is a seller or buyer on an invoice.
type Party struct {
	Name        string
	TaxID       string
	Address     string
	Phone       string
	Email       string
	BankAccount string
	BankName    string
}

// LineItem is one billed item on an invoice.
type LineItem struct {
	Number      int
	Code        string
	Name        string
	Description string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal // percent
	DiscountAmt decimal.Decimal
	Amount      decimal.Decimal
	VATRate     VATRate
	VATAmount   decimal.Decimal
	Total       decimal.Decimal
}

// Calculate derives Amount, DiscountAmt, VATAmount and Total from Quantity,
// UnitPrice, Discount and VATRate. It overwrites whatever those four fields
// previously held.
func (li *LineItem) Calculate() {
	li.Amount = li.Quantity.Mul(li.UnitPrice)

	if li.Discount.IsPositive() {
		li.DiscountAmt = li.Amount.Mul(li.Discount).Div(decimal.NewFromInt(100))
	} else {
		li.DiscountAmt = decimal.Zero
	}

	taxable := li.Amount.Sub(li.DiscountAmt)
	li.VATAmount = taxable.Mul(decimal.NewFromInt(int64(li.VATRate))).Div(decimal.NewFromInt(100))
	li.Total = taxable.Add(li.VATAmount)
}

// Invoice is the structured record the anchored extraction core produces
// from a PDF's text variants.
type Invoice struct {
	Number       string
	Series       string
	Date         time.Time
	Currency     string
	ExchangeRate decimal.Decimal

	Seller Party
	Buyer  Party

	Items []LineItem

	SubtotalAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal

	PaymentTerms string
	Remarks      string
}

// CalculateTotals sums Items (after each has been through Calculate) into
// SubtotalAmount, TaxAmount and TotalAmount.
func (inv *Invoice) CalculateTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero

	for i := range inv.Items {
		inv.Items[i].Calculate()
		subtotal = subtotal.Add(inv.Items[i].Amount).Sub(inv.Items[i].DiscountAmt)
		tax = tax.Add(inv.Items[i].VATAmount)
	}

	inv.SubtotalAmount = subtotal
	inv.TaxAmount = tax
	inv.TotalAmount = subtotal.Add(tax)
}
