package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// currencySymbols covers the currencies the invoice form offers. Anything else
// falls back to "<CODE> <amount>".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"AUD": "A$",
	"CAD": "C$",
}

// FormatCurrency renders an amount for display in an invoice document, e.g.
// "$6,510.00" or "-€1,672.50". Presentation-only; the calculation engine never
// touches formatted values.
func FormatCurrency(amount decimal.Decimal, currencyCode string) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	grouped := groupThousands(intPart)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	symbol, ok := currencySymbols[currencyCode]
	if ok {
		b.WriteString(symbol)
	} else {
		b.WriteString(currencyCode)
		b.WriteByte(' ')
	}
	b.WriteString(grouped)
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDate renders an ISO "2006-01-02" date string as "Jan 2, 2006" for the
// invoice document. Values that do not parse are shown verbatim.
func FormatDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("Jan 2, 2006")
}
