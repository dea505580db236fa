package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillbill/invoice_backend/internal/apperrors"
	"github.com/quillbill/invoice_backend/internal/core/domain"
	portsrepo "github.com/quillbill/invoice_backend/internal/core/ports/repositories"
	"github.com/quillbill/invoice_backend/internal/utils/pagination"
)

// PgxInvoiceRepository stores invoice documents as JSONB. The document column
// is the source of truth; the extracted columns exist for listing and lookup
// only and totals are always recomputed from the document by the service
// layer.
type PgxInvoiceRepository struct {
	Pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new repository for invoice documents.
func NewInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{Pool: pool}
}

// Ensure implementation matches interface
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// SaveInvoice inserts an invoice document together with its computed grand
// total (stored for listing convenience, never read back as authoritative).
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, totals domain.Totals) error {
	document, err := json.Marshal(invoice)
	if err != nil {
		return fmt.Errorf("failed to marshal invoice %s: %w", invoice.InvoiceID, err)
	}

	query := `
		INSERT INTO invoices (invoice_id, invoice_number, currency_code, document, grand_total, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err = r.Pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.InvoiceNumber,
		invoice.Currency,
		document,
		totals.GrandTotal,
		invoice.CreatedAt,
		invoice.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves a stored invoice document by ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT document
		FROM invoices
		WHERE invoice_id = $1;
	`

	var document []byte
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	var invoice domain.Invoice
	if err := json.Unmarshal(document, &invoice); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invoice %s: %w", invoiceID, err)
	}
	return &invoice, nil
}

// ListInvoices returns up to limit invoices newest-first, using a
// (created_at, invoice_id) keyset cursor so pages stay stable while new
// invoices arrive.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, limit int, nextToken string) ([]domain.Invoice, string, error) {
	query := `
		SELECT document, created_at, invoice_id
		FROM invoices
	`
	args := []any{}

	if nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeCursor(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` WHERE (created_at, invoice_id) < ($1, $2)`
		args = append(args, cursorAt, cursorID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, invoice_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // one extra row to detect a further page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var (
			document  []byte
			createdAt time.Time
			invoiceID string
		)
		if err := rows.Scan(&document, &createdAt, &invoiceID); err != nil {
			return nil, "", fmt.Errorf("failed to scan invoice row: %w", err)
		}

		var invoice domain.Invoice
		if err := json.Unmarshal(document, &invoice); err != nil {
			return nil, "", fmt.Errorf("failed to unmarshal invoice %s: %w", invoiceID, err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to iterate invoice rows: %w", err)
	}

	var token string
	if len(invoices) > limit {
		invoices = invoices[:limit]
		last := invoices[len(invoices)-1]
		token = pagination.EncodeCursor(last.CreatedAt, last.InvoiceID)
	}
	return invoices, token, nil
}

// DeleteInvoice removes a stored invoice document.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	query := `
		DELETE FROM invoices
		WHERE invoice_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	return nil
}
