package domain

import "github.com/shopspring/decimal"

// Totals is the derived output of the calculation engine for one invoice.
// Every field is denominated in the invoice currency. Totals are never stored
// as authoritative data; they are recomputed from the invoice document on
// every read.
type Totals struct {
	Subtotal           decimal.Decimal `json:"subtotal"`           // Sum of per-item net totals, post item-discount
	ItemDiscountsTotal decimal.Decimal `json:"itemDiscountsTotal"` // Sum of per-item discounts, each converted independently
	InvoiceDiscount    decimal.Decimal `json:"invoiceDiscount"`    // Invoice-level discount against the discountable base
	TaxableAmount      decimal.Decimal `json:"taxableAmount"`      // Subtotal minus invoice discount; may go negative, no clamp
	Tax                decimal.Decimal `json:"tax"`
	GrandTotal         decimal.Decimal `json:"grandTotal"`
}
