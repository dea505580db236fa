package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillbill/invoice_backend/internal/apperrors"
	portssvc "github.com/quillbill/invoice_backend/internal/core/ports/services"
	"github.com/quillbill/invoice_backend/internal/dto"
	"github.com/quillbill/invoice_backend/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
	}
}

// registerInvoiceRoutes registers routes related to invoices. The PDF routes
// carry the extra rate-limit middleware because each request drives a headless
// browser render.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade, pdfLimiter gin.HandlerFunc) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)

		invoices.POST("/totals", h.computeTotals)
		invoices.POST("/preview", h.previewInvoice)

		invoices.POST("/pdf", pdfLimiter, h.generatePDF)
		invoices.GET("/:invoiceID/pdf", pdfLimiter, h.generateStoredPDF)
	}
}

// computeTotals godoc
// @Summary Compute invoice totals
// @Description Runs the calculation engine over the submitted invoice document and returns the derived totals
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.InvoiceRequest true "Invoice document"
// @Success 200 {object} dto.TotalsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /invoices/totals [post]
func (h *invoiceHandler) computeTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ComputeTotals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	totals := h.invoiceService.ComputeTotals(req.ToDomainInvoice())
	c.JSON(http.StatusOK, dto.ToTotalsResponse(totals))
}

// generatePDF godoc
// @Summary Generate an invoice PDF
// @Description Validates the invoice, renders it to HTML and converts it to PDF via headless Chromium
// @Tags invoices
// @Accept  json
// @Produce  application/pdf
// @Param   invoice body dto.InvoiceRequest true "Invoice document"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 429 {object} map[string]string "Rate limited"
// @Failure 500 {object} map[string]string "Rendering failure"
// @Router /invoices/pdf [post]
func (h *invoiceHandler) generatePDF(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GeneratePDF", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice := req.ToDomainInvoice()
	pdf, err := h.invoiceService.GeneratePDF(c.Request.Context(), invoice)
	if err != nil {
		h.respondPDFError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, invoice.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// generateStoredPDF godoc
// @Summary Generate a PDF for a stored invoice
// @Description Re-renders a previously saved invoice document to PDF
// @Tags invoices
// @Produce  application/pdf
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Rendering failure"
// @Router /invoices/{invoiceID}/pdf [get]
func (h *invoiceHandler) generateStoredPDF(c *gin.Context) {
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to load invoice for PDF", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	pdf, err := h.invoiceService.GeneratePDF(c.Request.Context(), *invoice)
	if err != nil {
		h.respondPDFError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, invoice.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// previewInvoice godoc
// @Summary Preview an invoice as HTML
// @Description Returns the exact HTML document the PDF pipeline prints
// @Tags invoices
// @Accept  json
// @Produce  html
// @Param   invoice body dto.InvoiceRequest true "Invoice document"
// @Success 200 {string} string "Invoice HTML"
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /invoices/preview [post]
func (h *invoiceHandler) previewInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice := req.ToDomainInvoice()
	if err := h.invoiceService.ValidateInvoice(invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	html, err := h.invoiceService.RenderHTML(invoice)
	if err != nil {
		logger.Error("Failed to render invoice preview", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render invoice"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// createInvoice godoc
// @Summary Save an invoice
// @Description Validates and persists an invoice document, returning it with a server-assigned ID and computed totals
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.InvoiceRequest true "Invoice document"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 500 {object} map[string]string "Failed to save invoice"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	saved, totals, err := h.invoiceService.CreateInvoice(c.Request.Context(), req.ToDomainInvoice())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		} else {
			logger.Error("Failed to create invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save invoice"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.InvoiceResponse{Invoice: *saved, Totals: dto.ToTotalsResponse(totals)})
}

// getInvoice godoc
// @Summary Get a stored invoice
// @Description Retrieves a stored invoice document with freshly recomputed totals
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	totals := h.invoiceService.ComputeTotals(*invoice)
	c.JSON(http.StatusOK, dto.InvoiceResponse{Invoice: *invoice, Totals: dto.ToTotalsResponse(totals)})
}

// listInvoices godoc
// @Summary List stored invoices
// @Description Retrieves stored invoice summaries newest-first with cursor pagination
// @Tags invoices
// @Produce  json
// @Param   limit query int false "Page size (default 25)"
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid cursor"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	nextToken := c.Query("nextToken")

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
		} else {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list invoices", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// deleteInvoice godoc
// @Summary Delete a stored invoice
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to delete invoice"
// @Router /invoices/{invoiceID} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	invoiceID := c.Param("invoiceID")

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to delete invoice", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// respondPDFError maps service errors from the PDF pipeline onto the wire
// contract: validation problems are client errors with the message exposed,
// anything else is a generic rendering failure.
func (h *invoiceHandler) respondPDFError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Invoice failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	logger.Error("Failed to generate PDF", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
}

// validationMessage strips the sentinel prefix so clients see a clean,
// human-readable message.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := apperrors.ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
