package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/quillbill/invoice_backend/internal/core/domain"
	"github.com/quillbill/invoice_backend/internal/utils"
	"github.com/quillbill/invoice_backend/internal/utils/billing"
)

// renderService renders an invoice document to printable HTML. The HTML is the
// single artifact both the preview endpoint and the PDF pipeline consume, and
// every number in it comes from the billing engine.
type renderService struct {
	tmpl *template.Template
}

// NewRenderService parses the invoice template once and returns the renderer.
func NewRenderService() *renderService {
	return &renderService{
		tmpl: template.Must(template.New("invoice").Parse(invoiceTemplate)),
	}
}

// invoiceView is the fully formatted view model the template consumes. All
// monetary strings are pre-formatted; the template does no arithmetic.
type invoiceView struct {
	InvoiceNumber string
	Date          string
	DueDate       string

	CompanyName string
	// template.URL: html/template would otherwise reject the data: scheme.
	// The logo is validated as a base64 image data URL before rendering.
	CompanyLogo    template.URL
	CompanyDetails string

	FromName    string
	FromEmail   string
	FromAddress string
	ToName      string
	ToEmail     string
	ToAddress   string

	ShowCurrencyColumn bool
	Items              []lineItemView

	Subtotal           string
	HasItemDiscounts   bool
	ItemDiscountsTotal string
	HasInvoiceDiscount bool
	InvoiceDiscountPct string // "(5%)" for percentage discounts, empty otherwise
	NarrowDiscountNote bool   // discount applied only to non-discounted items
	InvoiceDiscount    string
	TaxRate            string
	Tax                string
	GrandTotal         string

	Notes  string
	Footer string
}

type lineItemView struct {
	Description string
	Quantity    string
	Price       string

	Currency        string
	Foreign         bool // currency differs from the invoice currency
	ExchangeRate    string
	HasDiscount     bool
	DiscountLabel   string // "10%" or a formatted amount in the item's currency
	NetOwnCurrency  string // net total in the item's currency, shown for foreign items
	AmountConverted string // net total in the invoice currency
}

func (s *renderService) buildView(inv domain.Invoice) invoiceView {
	totals := billing.ComputeTotals(inv)

	view := invoiceView{
		InvoiceNumber:  inv.InvoiceNumber,
		Date:           utils.FormatDate(inv.Date),
		DueDate:        utils.FormatDate(inv.DueDate),
		CompanyName:    inv.CompanyName,
		CompanyLogo:    template.URL(inv.CompanyLogo),
		CompanyDetails: inv.CompanyDetails,
		FromName:       inv.FromName,
		FromEmail:      inv.FromEmail,
		FromAddress:    inv.FromAddress,
		ToName:         inv.ToName,
		ToEmail:        inv.ToEmail,
		ToAddress:      inv.ToAddress,

		Subtotal:           utils.FormatCurrency(totals.Subtotal, inv.Currency),
		HasItemDiscounts:   totals.ItemDiscountsTotal.IsPositive(),
		ItemDiscountsTotal: utils.FormatCurrency(totals.ItemDiscountsTotal, inv.Currency),
		HasInvoiceDiscount: inv.DiscountValue.IsPositive(),
		NarrowDiscountNote: !inv.ApplyInvoiceDiscountToDiscountedItems,
		InvoiceDiscount:    utils.FormatCurrency(totals.InvoiceDiscount, inv.Currency),
		TaxRate:            inv.TaxRate.String(),
		Tax:                utils.FormatCurrency(totals.Tax, inv.Currency),
		GrandTotal:         utils.FormatCurrency(totals.GrandTotal, inv.Currency),

		Notes:  inv.Notes,
		Footer: inv.Footer,
	}

	if inv.DiscountType == domain.DiscountPercentage && view.HasInvoiceDiscount {
		view.InvoiceDiscountPct = fmt.Sprintf("(%s%%)", inv.DiscountValue.String())
	}

	for _, item := range inv.Items {
		if item.Currency != inv.Currency {
			view.ShowCurrencyColumn = true
			break
		}
	}

	for _, item := range inv.Items {
		iv := lineItemView{
			Description:     item.Description,
			Quantity:        item.Quantity.String(),
			Price:           utils.FormatCurrency(item.Price, item.Currency),
			Currency:        item.Currency,
			Foreign:         item.Currency != inv.Currency,
			ExchangeRate:    item.ExchangeRate.String(),
			HasDiscount:     item.Discounted(),
			AmountConverted: utils.FormatCurrency(billing.ItemNetTotal(item, inv.Currency), inv.Currency),
		}
		if iv.HasDiscount {
			if item.DiscountType == domain.DiscountPercentage {
				iv.DiscountLabel = item.DiscountValue.String() + "%"
			} else {
				iv.DiscountLabel = utils.FormatCurrency(item.DiscountValue, item.Currency)
			}
		}
		if iv.Foreign {
			net := item.Quantity.Mul(item.Price).Sub(billing.ItemDiscount(item))
			iv.NetOwnCurrency = utils.FormatCurrency(net, item.Currency)
		}
		view.Items = append(view.Items, iv)
	}

	return view
}

// RenderHTML produces the printable invoice document.
func (s *renderService) RenderHTML(inv domain.Invoice) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, s.buildView(inv)); err != nil {
		return "", fmt.Errorf("failed to execute invoice template: %w", err)
	}
	return buf.String(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Invoice {{.InvoiceNumber}}</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
      line-height: 1.6;
      color: #000;
      background: #fff;
    }
    .invoice { max-width: 210mm; margin: 0 auto; padding: 32px; min-height: 297mm; }
    .header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 48px; }
    .logo { width: 64px; height: 64px; object-fit: contain; }
    .company-details { text-align: right; }
    .company-name { font-weight: bold; margin-bottom: 8px; }
    .company-info { font-size: 14px; color: #666; white-space: pre-line; }
    .separator { width: 100%; height: 1px; background: #e5e5e5; margin: 24px 0; }
    .invoice-info { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 32px; }
    .invoice-title { font-size: 32px; font-weight: bold; margin-bottom: 4px; }
    .invoice-number { color: #666; }
    .dates { text-align: right; }
    .dates p { margin-bottom: 4px; }
    .parties { display: grid; grid-template-columns: 1fr 1fr; gap: 32px; margin-bottom: 32px; }
    .party h3 { font-size: 18px; font-weight: 600; margin-bottom: 8px; }
    .party-name { font-weight: 600; margin-bottom: 4px; }
    .party-info { color: #666; white-space: pre-line; }
    .items-table { width: 100%; border-collapse: collapse; margin-bottom: 32px; }
    .items-table th { background: #f8f9fa; padding: 12px; text-align: left; font-weight: 600; border-bottom: 2px solid #e5e5e5; }
    .items-table th:last-child, .items-table td:last-child { text-align: right; }
    .items-table td { padding: 12px; border-bottom: 1px solid #e5e5e5; }
    .currency-info { font-size: 12px; color: #666; display: block; }
    .discount-info { font-weight: 600; color: #000; }
    .totals { display: flex; justify-content: flex-end; margin-bottom: 32px; }
    .totals-table { width: 300px; }
    .totals-row { display: flex; justify-content: space-between; padding: 8px 0; }
    .totals-row.border-top { border-top: 1px solid #e5e5e5; margin-top: 8px; padding-top: 16px; }
    .totals-row.total { font-weight: bold; font-size: 18px; }
    .discount-text { font-weight: 600; color: #000; }
    .notes { margin-bottom: 32px; }
    .notes h3 { font-size: 18px; font-weight: 600; margin-bottom: 8px; }
    .notes-content { color: #666; white-space: pre-line; }
    .footer { text-align: center; color: #666; font-size: 14px; margin-top: 64px; padding-top: 16px; border-top: 1px solid #e5e5e5; }
    @media print { .invoice { padding: 0; margin: 0; } }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div class="logo-section">
        {{if .CompanyLogo}}<img src="{{.CompanyLogo}}" alt="Company Logo" class="logo" />{{end}}
      </div>
      <div class="company-details">
        {{if .CompanyName}}<div class="company-name">{{.CompanyName}}</div>{{end}}
        {{if .CompanyDetails}}<div class="company-info">{{.CompanyDetails}}</div>{{end}}
      </div>
    </div>

    <div class="separator"></div>

    <div class="invoice-info">
      <div>
        <h1 class="invoice-title">INVOICE</h1>
        <p class="invoice-number">#{{.InvoiceNumber}}</p>
      </div>
      <div class="dates">
        <p>Date: {{.Date}}</p>
        <p>Due Date: {{.DueDate}}</p>
      </div>
    </div>

    <div class="parties">
      <div class="party">
        <h3>From:</h3>
        <div class="party-name">{{.FromName}}</div>
        <div class="party-info">{{.FromEmail}}</div>
        <div class="party-info">{{.FromAddress}}</div>
      </div>
      <div class="party">
        <h3>To:</h3>
        <div class="party-name">{{.ToName}}</div>
        <div class="party-info">{{.ToEmail}}</div>
        <div class="party-info">{{.ToAddress}}</div>
      </div>
    </div>

    <table class="items-table">
      <thead>
        <tr>
          <th>Description</th>
          <th>Quantity</th>
          <th>Price</th>
          {{if .ShowCurrencyColumn}}<th>Currency</th>{{end}}
          <th>Discount</th>
          <th>Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Description}}</td>
          <td style="text-align: right;">{{.Quantity}}</td>
          <td style="text-align: right;">{{.Price}}</td>
          {{if $.ShowCurrencyColumn}}
          <td style="text-align: right;">
            {{.Currency}}
            {{if .Foreign}}<span class="currency-info">Rate: {{.ExchangeRate}}</span>{{end}}
          </td>
          {{end}}
          <td style="text-align: right;">
            {{if .HasDiscount}}<span class="discount-info">{{.DiscountLabel}}</span>{{else}}-{{end}}
          </td>
          <td style="text-align: right;">
            {{if .Foreign}}<span class="currency-info">{{.NetOwnCurrency}}</span><br>{{end}}
            {{.AmountConverted}}
          </td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="totals-table">
        <div class="totals-row">
          <span>Subtotal:</span>
          <span>{{.Subtotal}}</span>
        </div>

        {{if .HasItemDiscounts}}
        <div class="totals-row">
          <span class="discount-text">Item Discounts:</span>
          <span>-{{.ItemDiscountsTotal}}</span>
        </div>
        {{end}}

        {{if .HasInvoiceDiscount}}
        <div class="totals-row">
          <span class="discount-text">
            Invoice Discount {{.InvoiceDiscountPct}}:
            {{if .NarrowDiscountNote}}<br><span style="font-size: 12px; color: #666;">(Applied only to non-discounted items)</span>{{end}}
          </span>
          <span>-{{.InvoiceDiscount}}</span>
        </div>
        {{end}}

        <div class="totals-row">
          <span>Tax ({{.TaxRate}}%):</span>
          <span>{{.Tax}}</span>
        </div>

        <div class="totals-row border-top total">
          <span>Total:</span>
          <span>{{.GrandTotal}}</span>
        </div>
      </div>
    </div>

    {{if .Notes}}
    <div class="notes">
      <h3>Notes:</h3>
      <div class="notes-content">{{.Notes}}</div>
    </div>
    {{end}}

    <div class="footer">
      <p>{{.Footer}}</p>
    </div>
  </div>
</body>
</html>
`
