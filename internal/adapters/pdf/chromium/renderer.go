// Package chromium converts rendered invoice HTML into PDF bytes using a
// headless Chromium instance driven over the DevTools protocol. It is the one
// blocking, resource-heavy external boundary in the service; every call runs
// under its own timeout and browser context.
package chromium

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 paper in inches, with the print margins the invoice layout was designed
// around (20mm top/bottom, 15mm left/right).
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginTopBottom   = 0.79
	marginLeftRight   = 0.59
)

const defaultTimeout = 30 * time.Second

// Renderer prints HTML documents to PDF via headless Chromium.
type Renderer struct {
	execPath string
	timeout  time.Duration
}

// NewRenderer creates a Renderer. execPath may be empty, in which case
// Chromium is looked up on PATH; timeout <= 0 falls back to a default.
func NewRenderer(execPath string, timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Renderer{execPath: execPath, timeout: timeout}
}

// RenderPDF navigates a fresh browser tab to the HTML (as a data URL) and
// prints it to A4 PDF with backgrounds enabled.
func (r *Renderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, r.timeout)
	defer cancelTimeout()

	var pdfBuf []byte
	dataURL := "data:text/html," + url.PathEscape(html)
	err := chromedp.Run(runCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, perr := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(marginTopBottom).
				WithMarginBottom(marginTopBottom).
				WithMarginLeft(marginLeftRight).
				WithMarginRight(marginLeftRight).
				Do(ctx)
			if perr == nil {
				pdfBuf = buf
			}
			return perr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp run failed: %w", err)
	}
	return pdfBuf, nil
}
