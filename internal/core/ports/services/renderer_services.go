package services

import "context"

// PDFRenderer converts a rendered HTML document into PDF bytes. Implemented by
// the headless-Chromium adapter; treated as an opaque, blocking external
// operation with its own timeout.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}
