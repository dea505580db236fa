// Package billing is the invoice calculation engine: pure, deterministic
// functions from an invoice value to its derived monetary amounts. It performs
// no I/O, never mutates its input, and is the single source of truth for
// invoice arithmetic — every caller (totals endpoint, HTML renderer, PDF
// pipeline, persistence) goes through this package so the numbers can never
// drift between surfaces.
//
// The engine does not validate its input. Negative quantities, unknown
// currency codes or nonsensical exchange rates produce whatever the arithmetic
// yields; validation belongs to the request boundary.
package billing

import (
	"github.com/quillbill/invoice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ItemDiscount computes a line item's own discount, in the item's currency.
// A fixed-amount discount is clamped to the item subtotal so a line never
// nets below zero. Zero or negative discount values yield zero.
func ItemDiscount(item domain.LineItem) decimal.Decimal {
	itemSubtotal := item.Quantity.Mul(item.Price)
	if item.DiscountValue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	if item.DiscountType == domain.DiscountPercentage {
		return itemSubtotal.Mul(item.DiscountValue).Div(hundred)
	}
	return decimal.Min(item.DiscountValue, itemSubtotal)
}

// ItemNetTotal computes a line item's net total (quantity x price minus the
// item's own discount), converted into the invoice currency. The exchange rate
// is consulted only when the item's currency differs from the invoice
// currency; conversion is one-directional (item currency -> invoice currency)
// and the stored rate is trusted as-is.
func ItemNetTotal(item domain.LineItem, invoiceCurrency string) decimal.Decimal {
	net := item.Quantity.Mul(item.Price).Sub(ItemDiscount(item))
	if item.Currency == invoiceCurrency {
		return net
	}
	return net.Mul(item.ExchangeRate)
}

// Subtotal sums ItemNetTotal over all items. An empty item list yields zero.
func Subtotal(items []domain.LineItem, invoiceCurrency string) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(ItemNetTotal(item, invoiceCurrency))
	}
	return sum
}

// ItemDiscountsTotal sums every item's own discount, each converted to the
// invoice currency independently rather than derived from the already
// converted net totals.
func ItemDiscountsTotal(items []domain.LineItem, invoiceCurrency string) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		discount := ItemDiscount(item)
		if item.Currency != invoiceCurrency {
			discount = discount.Mul(item.ExchangeRate)
		}
		sum = sum.Add(discount)
	}
	return sum
}

// InvoiceDiscount computes the invoice-level discount in the invoice currency.
//
// The discountable base depends on the invoice's toggle: when the invoice
// discount also applies to already-discounted items the base is the full
// subtotal (post item-discount); otherwise only items without a discount of
// their own contribute, each at its undiscounted quantity x price converted to
// the invoice currency, and discounted items contribute nothing at all.
// A fixed-amount invoice discount is clamped to the base.
func InvoiceDiscount(inv domain.Invoice) decimal.Decimal {
	if inv.DiscountValue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var base decimal.Decimal
	if inv.ApplyInvoiceDiscountToDiscountedItems {
		base = Subtotal(inv.Items, inv.Currency)
	} else {
		for _, item := range inv.Items {
			if item.Discounted() {
				continue
			}
			itemTotal := item.Quantity.Mul(item.Price)
			if item.Currency != inv.Currency {
				itemTotal = itemTotal.Mul(item.ExchangeRate)
			}
			base = base.Add(itemTotal)
		}
	}

	if inv.DiscountType == domain.DiscountPercentage {
		return base.Mul(inv.DiscountValue).Div(hundred)
	}
	return decimal.Min(inv.DiscountValue, base)
}

// TaxableAmount is the subtotal minus the invoice-level discount. It is
// deliberately not clamped: a fixed-amount discount larger than the subtotal
// produces a negative taxable amount, and therefore negative tax and total.
func TaxableAmount(inv domain.Invoice) decimal.Decimal {
	return Subtotal(inv.Items, inv.Currency).Sub(InvoiceDiscount(inv))
}

// Tax applies the invoice's tax rate to the taxable amount.
func Tax(inv domain.Invoice) decimal.Decimal {
	return TaxableAmount(inv).Mul(inv.TaxRate).Div(hundred)
}

// GrandTotal is the taxable amount plus tax.
func GrandTotal(inv domain.Invoice) decimal.Decimal {
	return TaxableAmount(inv).Add(Tax(inv))
}

// ComputeTotals derives all six totals for an invoice in one call.
func ComputeTotals(inv domain.Invoice) domain.Totals {
	taxable := TaxableAmount(inv)
	tax := taxable.Mul(inv.TaxRate).Div(hundred)
	return domain.Totals{
		Subtotal:           Subtotal(inv.Items, inv.Currency),
		ItemDiscountsTotal: ItemDiscountsTotal(inv.Items, inv.Currency),
		InvoiceDiscount:    InvoiceDiscount(inv),
		TaxableAmount:      taxable,
		Tax:                tax,
		GrandTotal:         taxable.Add(tax),
	}
}
