package repositories

import (
	"context"

	"github.com/quillbill/invoice_backend/internal/core/domain"
)

// InvoiceReader defines read operations for stored invoice documents.
type InvoiceReader interface {
	// FindInvoiceByID retrieves a stored invoice document by its server-assigned ID.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves stored invoices newest-first. nextToken is an opaque
	// cursor from a previous call ("" for the first page); the returned token is
	// empty when there are no further pages.
	ListInvoices(ctx context.Context, limit int, nextToken string) ([]domain.Invoice, string, error)
}

// InvoiceWriter defines write operations for stored invoice documents.
type InvoiceWriter interface {
	// SaveInvoice persists an invoice document together with its computed totals.
	// The document remains the source of truth; totals are stored for listing only.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, totals domain.Totals) error

	// DeleteInvoice removes a stored invoice document.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
