package domain

import (
	"github.com/shopspring/decimal"
)

// DiscountType indicates how a discount value is interpreted.
type DiscountType string

const (
	// DiscountPercentage interprets the discount value as a percent (0-100) of the base.
	DiscountPercentage DiscountType = "percentage"
	// DiscountAmount interprets the discount value as an absolute amount in the
	// relevant currency (the item's own currency for item discounts, the invoice
	// currency for invoice-level discounts).
	DiscountAmount DiscountType = "amount"
)

// LineItem is one billable row on an invoice.
type LineItem struct {
	ItemID        string          `json:"id"`           // Opaque, unique within the invoice
	Description   string          `json:"description"`  // Free text
	Quantity      decimal.Decimal `json:"quantity"`     // Fractional quantities allowed
	Price         decimal.Decimal `json:"price"`        // Unit price in the item's own currency
	Currency      string          `json:"currency"`     // e.g. "USD"
	ExchangeRate  decimal.Decimal `json:"exchangeRate"` // 1 unit of item currency = ExchangeRate units of invoice currency; ignored when currencies match
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"` // Percent 0-100 or absolute amount in item currency
}

// Discounted reports whether the item carries its own discount. Items with a
// discount of their own are excluded from the invoice-level discountable base
// unless the invoice says otherwise.
func (li LineItem) Discounted() bool {
	return li.DiscountValue.GreaterThan(decimal.Zero)
}

// Invoice is the aggregate root: header metadata, the parties, branding, the
// ordered line items, and the invoice-level discount/tax settings. Item order is
// presentation order only; totals do not depend on it.
type Invoice struct {
	InvoiceID     string `json:"invoiceID,omitempty"` // Assigned on persistence, empty for ad-hoc renders
	InvoiceNumber string `json:"invoiceNumber"`
	Date          string `json:"date"`    // ISO date string, presentation-only
	DueDate       string `json:"dueDate"` // ISO date string, presentation-only

	CompanyName    string `json:"companyName"`
	CompanyLogo    string `json:"companyLogo"` // base64 image data URL, optional
	CompanyDetails string `json:"companyDetails"`

	FromName    string `json:"fromName"`
	FromEmail   string `json:"fromEmail"`
	FromAddress string `json:"fromAddress"`
	ToName      string `json:"toName"`
	ToEmail     string `json:"toEmail"`
	ToAddress   string `json:"toAddress"`

	Items []LineItem `json:"items"`

	Notes  string `json:"notes"`
	Footer string `json:"footer"`

	Currency      string          `json:"currency"` // Invoice currency; all totals are denominated in it
	TaxRate       decimal.Decimal `json:"taxRate"`  // Percent, applied to the taxable amount
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	// ApplyInvoiceDiscountToDiscountedItems widens the invoice-level discountable
	// base to the full subtotal; when false, items carrying their own discount are
	// excluded from the base entirely.
	ApplyInvoiceDiscountToDiscountedItems bool `json:"applyInvoiceDiscountToDiscountedItems"`

	AuditFields
}
