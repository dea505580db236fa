package services

import (
	"testing"

	"github.com/quillbill/invoice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func renderInvoice() domain.Invoice {
	return domain.Invoice{
		InvoiceNumber: "INV-042",
		Date:          "2025-06-06",
		DueDate:       "2025-07-06",
		CompanyName:   "Acme Corp",
		FromName:      "Acme Billing",
		FromEmail:     "billing@acme.test",
		ToName:        "Client Ltd",
		Currency:      "USD",
		TaxRate:       d("8.5"),
		DiscountType:  domain.DiscountPercentage,
		Footer:        "Thank you for your business",
		Items: []domain.LineItem{{
			ItemID:       "1",
			Description:  "Consulting",
			Quantity:     d("40"),
			Price:        d("150"),
			Currency:     "USD",
			ExchangeRate: d("1"),
			DiscountType: domain.DiscountPercentage,
		}},
	}
}

func TestRenderHTMLEmbedsEngineTotals(t *testing.T) {
	html, err := NewRenderService().RenderHTML(renderInvoice())
	require.NoError(t, err)

	assert.Contains(t, html, "#INV-042")
	assert.Contains(t, html, "Jun 6, 2025")
	assert.Contains(t, html, "$6,000.00") // subtotal
	assert.Contains(t, html, "$510.00")   // tax
	assert.Contains(t, html, "$6,510.00") // total
	assert.Contains(t, html, "Tax (8.5%)")
	assert.Contains(t, html, "Thank you for your business")
}

func TestRenderHTMLCurrencyColumnOnlyForForeignItems(t *testing.T) {
	svc := NewRenderService()

	html, err := svc.RenderHTML(renderInvoice())
	require.NoError(t, err)
	assert.NotContains(t, html, "<th>Currency</th>")

	inv := renderInvoice()
	inv.Items = append(inv.Items, domain.LineItem{
		ItemID:        "2",
		Description:   "Design",
		Quantity:      d("8"),
		Price:         d("200"),
		Currency:      "EUR",
		ExchangeRate:  d("1.1"),
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: d("5"),
	})

	html, err = svc.RenderHTML(inv)
	require.NoError(t, err)
	assert.Contains(t, html, "<th>Currency</th>")
	assert.Contains(t, html, "Rate: 1.1")
	assert.Contains(t, html, "€1,520.00") // net in the item's own currency
	assert.Contains(t, html, "$1,672.00") // converted line amount
}

func TestRenderHTMLDiscountRows(t *testing.T) {
	inv := renderInvoice()
	inv.Items[0].DiscountValue = d("10")
	inv.DiscountType = domain.DiscountAmount
	inv.DiscountValue = d("50")

	html, err := NewRenderService().RenderHTML(inv)
	require.NoError(t, err)

	assert.Contains(t, html, "Item Discounts:")
	assert.Contains(t, html, "Invoice Discount")
	assert.Contains(t, html, "(Applied only to non-discounted items)")
	assert.Contains(t, html, "10%") // the item's own discount label
}

func TestRenderHTMLLogoSurvivesEscaping(t *testing.T) {
	inv := renderInvoice()
	inv.CompanyLogo = "data:image/png;base64,iVBORw0KGgo="

	html, err := NewRenderService().RenderHTML(inv)
	require.NoError(t, err)

	// html/template must not neuter the data URL into #ZgotmplZ.
	assert.Contains(t, html, `src="data:image/png;base64,iVBORw0KGgo="`)
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestRenderHTMLEscapesUserText(t *testing.T) {
	inv := renderInvoice()
	inv.Notes = `<script>alert("x")</script>`

	html, err := NewRenderService().RenderHTML(inv)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}
