package dto

import (
	"time"

	"github.com/quillbill/invoice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one billable row as submitted by the client.
// Quantity and discount values may legitimately be zero, so only the fields
// that must always carry a value get binding tags.
type LineItemRequest struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency" binding:"required"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	DiscountType  string          `json:"discountType" binding:"omitempty,oneof=percentage amount"`
	DiscountValue decimal.Decimal `json:"discountValue"`
}

// InvoiceRequest is the wire shape of an invoice document. It matches the
// browser client's form state field-for-field.
type InvoiceRequest struct {
	InvoiceNumber  string `json:"invoiceNumber" binding:"required"`
	Date           string `json:"date"`
	DueDate        string `json:"dueDate"`
	CompanyName    string `json:"companyName"`
	CompanyLogo    string `json:"companyLogo"`
	CompanyDetails string `json:"companyDetails"`
	FromName       string `json:"fromName"`
	FromEmail      string `json:"fromEmail"`
	FromAddress    string `json:"fromAddress"`
	ToName         string `json:"toName"`
	ToEmail        string `json:"toEmail"`
	ToAddress      string `json:"toAddress"`

	Items []LineItemRequest `json:"items" binding:"required,min=1,dive"`

	Notes  string `json:"notes"`
	Footer string `json:"footer"`

	Currency      string          `json:"currency" binding:"required"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	DiscountType  string          `json:"discountType" binding:"omitempty,oneof=percentage amount"`
	DiscountValue decimal.Decimal `json:"discountValue"`

	ApplyInvoiceDiscountToDiscountedItems bool `json:"applyInvoiceDiscountToDiscountedItems"`
}

// ToDomainInvoice converts the request into a domain invoice value.
func (r InvoiceRequest) ToDomainInvoice() domain.Invoice {
	items := make([]domain.LineItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.LineItem{
			ItemID:        it.ID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			Price:         it.Price,
			Currency:      it.Currency,
			ExchangeRate:  it.ExchangeRate,
			DiscountType:  domain.DiscountType(it.DiscountType),
			DiscountValue: it.DiscountValue,
		}
	}

	return domain.Invoice{
		InvoiceNumber:                         r.InvoiceNumber,
		Date:                                  r.Date,
		DueDate:                               r.DueDate,
		CompanyName:                           r.CompanyName,
		CompanyLogo:                           r.CompanyLogo,
		CompanyDetails:                        r.CompanyDetails,
		FromName:                              r.FromName,
		FromEmail:                             r.FromEmail,
		FromAddress:                           r.FromAddress,
		ToName:                                r.ToName,
		ToEmail:                               r.ToEmail,
		ToAddress:                             r.ToAddress,
		Items:                                 items,
		Notes:                                 r.Notes,
		Footer:                                r.Footer,
		Currency:                              r.Currency,
		TaxRate:                               r.TaxRate,
		DiscountType:                          domain.DiscountType(r.DiscountType),
		DiscountValue:                         r.DiscountValue,
		ApplyInvoiceDiscountToDiscountedItems: r.ApplyInvoiceDiscountToDiscountedItems,
	}
}

// TotalsResponse is the engine's derived output, denominated in the invoice
// currency.
type TotalsResponse struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	ItemDiscountsTotal decimal.Decimal `json:"itemDiscountsTotal"`
	InvoiceDiscount    decimal.Decimal `json:"invoiceDiscount"`
	TaxableAmount      decimal.Decimal `json:"taxableAmount"`
	Tax                decimal.Decimal `json:"tax"`
	GrandTotal         decimal.Decimal `json:"grandTotal"`
}

// ToTotalsResponse converts domain totals to the response DTO.
func ToTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:           t.Subtotal,
		ItemDiscountsTotal: t.ItemDiscountsTotal,
		InvoiceDiscount:    t.InvoiceDiscount,
		TaxableAmount:      t.TaxableAmount,
		Tax:                t.Tax,
		GrandTotal:         t.GrandTotal,
	}
}

// InvoiceResponse returns a stored invoice document together with its freshly
// recomputed totals.
type InvoiceResponse struct {
	Invoice domain.Invoice `json:"invoice"`
	Totals  TotalsResponse `json:"totals"`
}

// InvoiceSummary is one row in a stored-invoice listing.
type InvoiceSummary struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Currency      string          `json:"currency"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListInvoicesResponse is a paginated stored-invoice listing.
type ListInvoicesResponse struct {
	Invoices  []InvoiceSummary `json:"invoices"`
	NextToken string           `json:"nextToken,omitempty"`
}
