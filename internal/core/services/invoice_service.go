package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quillbill/invoice_backend/internal/apperrors"
	"github.com/quillbill/invoice_backend/internal/core/domain"
	portsrepo "github.com/quillbill/invoice_backend/internal/core/ports/repositories"
	portssvc "github.com/quillbill/invoice_backend/internal/core/ports/services"
	"github.com/quillbill/invoice_backend/internal/dto"
	"github.com/quillbill/invoice_backend/internal/middleware"
	"github.com/quillbill/invoice_backend/internal/utils"
	"github.com/quillbill/invoice_backend/internal/utils/billing"
)

const defaultListLimit = 25

// invoiceService orchestrates validation, calculation, rendering and
// persistence for invoice documents. All arithmetic is delegated to the
// billing package; this service never computes a monetary value itself.
type invoiceService struct {
	repo        portsrepo.InvoiceRepositoryFacade
	renderer    *renderService
	pdfRenderer portssvc.PDFRenderer
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(repo portsrepo.InvoiceRepositoryFacade, renderer *renderService, pdfRenderer portssvc.PDFRenderer) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		repo:        repo,
		renderer:    renderer,
		pdfRenderer: pdfRenderer,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// ComputeTotals runs the calculation engine over the document. Pure and
// synchronous; safe to call on every read.
func (s *invoiceService) ComputeTotals(invoice domain.Invoice) domain.Totals {
	return billing.ComputeTotals(invoice)
}

// ValidateInvoice applies the boundary rules the engine itself does not:
// the invoice number must be present, at least one line item is required, and
// a company logo, when supplied, must be a well-formed base64 image data URL.
// Numeric sanity (quantities, rates) is deliberately not checked; the engine
// computes whatever the arithmetic yields.
func (s *invoiceService) ValidateInvoice(invoice domain.Invoice) error {
	if invoice.InvoiceNumber == "" {
		return fmt.Errorf("%w: invoice number is required", apperrors.ErrValidation)
	}
	if len(invoice.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}
	if invoice.CompanyLogo != "" && !utils.IsValidBase64Image(invoice.CompanyLogo) {
		return fmt.Errorf("%w: company logo must be a valid Base64 encoded image (data:image/[type];base64,[data])", apperrors.ErrValidation)
	}
	return nil
}

// RenderHTML produces the printable invoice document.
func (s *invoiceService) RenderHTML(invoice domain.Invoice) (string, error) {
	html, err := s.renderer.RenderHTML(invoice)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRender, err)
	}
	return html, nil
}

// GeneratePDF validates the document, renders it to HTML and hands the HTML to
// the headless browser adapter. The PDF bytes it returns embed exactly the
// totals the engine computed; nothing downstream recalculates.
func (s *invoiceService) GeneratePDF(ctx context.Context, invoice domain.Invoice) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.ValidateInvoice(invoice); err != nil {
		return nil, err
	}

	html, err := s.RenderHTML(invoice)
	if err != nil {
		return nil, err
	}

	pdf, err := s.pdfRenderer.RenderPDF(ctx, html)
	if err != nil {
		logger.Error("PDF rendering failed", slog.String("invoice_number", invoice.InvoiceNumber), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRender, err)
	}

	logger.Info("PDF generated", slog.String("invoice_number", invoice.InvoiceNumber), slog.Int("bytes", len(pdf)))
	return pdf, nil
}

// CreateInvoice validates and persists an invoice document, returning the
// stored document with its server-assigned ID and freshly computed totals.
func (s *invoiceService) CreateInvoice(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, domain.Totals, error) {
	if err := s.ValidateInvoice(invoice); err != nil {
		return nil, domain.Totals{}, err
	}

	now := time.Now().UTC()
	invoice.InvoiceID = uuid.NewString()
	invoice.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	totals := billing.ComputeTotals(invoice)

	if err := s.repo.SaveInvoice(ctx, invoice, totals); err != nil {
		return nil, domain.Totals{}, fmt.Errorf("failed to save invoice: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Invoice saved",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
	)
	return &invoice, totals, nil
}

// GetInvoice retrieves a stored invoice document.
func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.repo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListInvoices returns a page of stored invoice summaries, newest first.
// Grand totals are recomputed from the documents rather than read back from
// any stored column.
func (s *invoiceService) ListInvoices(ctx context.Context, limit int, nextToken string) (*dto.ListInvoicesResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	invoices, token, err := s.repo.ListInvoices(ctx, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	summaries := make([]dto.InvoiceSummary, len(invoices))
	for i, inv := range invoices {
		summaries[i] = dto.InvoiceSummary{
			InvoiceID:     inv.InvoiceID,
			InvoiceNumber: inv.InvoiceNumber,
			Currency:      inv.Currency,
			GrandTotal:    billing.GrandTotal(inv),
			CreatedAt:     inv.CreatedAt,
		}
	}

	return &dto.ListInvoicesResponse{Invoices: summaries, NextToken: token}, nil
}

// DeleteInvoice removes a stored invoice document.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if err := s.repo.DeleteInvoice(ctx, invoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	return nil
}
