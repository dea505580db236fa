package services

import (
	"context"

	"github.com/quillbill/invoice_backend/internal/core/domain"
	"github.com/quillbill/invoice_backend/internal/dto"
)

// InvoiceCalcSvc exposes the pure calculation engine. No context parameter:
// the computation never blocks and has no I/O.
type InvoiceCalcSvc interface {
	// ComputeTotals derives all invoice totals from the document.
	ComputeTotals(invoice domain.Invoice) domain.Totals
}

// InvoiceRenderSvc defines the document rendering operations.
type InvoiceRenderSvc interface {
	// RenderHTML produces the printable invoice document as HTML.
	RenderHTML(invoice domain.Invoice) (string, error)

	// GeneratePDF validates the invoice, renders it to HTML and converts the
	// result to PDF bytes via the headless browser adapter.
	GeneratePDF(ctx context.Context, invoice domain.Invoice) ([]byte, error)
}

// InvoiceReaderSvc defines read operations over stored invoices.
type InvoiceReaderSvc interface {
	// GetInvoice retrieves a stored invoice by ID.
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a page of stored invoice summaries.
	ListInvoices(ctx context.Context, limit int, nextToken string) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations over stored invoices.
type InvoiceWriterSvc interface {
	// CreateInvoice validates and persists an invoice document, returning the
	// stored invoice with its server-assigned ID and computed totals.
	CreateInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, domain.Totals, error)

	// DeleteInvoice removes a stored invoice.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces.
type InvoiceSvcFacade interface {
	InvoiceCalcSvc
	InvoiceRenderSvc
	InvoiceReaderSvc
	InvoiceWriterSvc

	// ValidateInvoice applies the boundary validation rules (invoice number, at
	// least one line item, well-formed logo data URL). The engine itself never
	// validates.
	ValidateInvoice(invoice domain.Invoice) error
}
