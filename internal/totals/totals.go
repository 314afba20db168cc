// Package totals derives per-item and document-level amounts from line items.
//
// Amounts are kept at full decimal precision; rounding to two places only
// happens when an amount is formatted for display.
package totals

import (
	"strings"

	"github.com/shopspring/decimal"

	"docgen/pkg/models"
)

var hundred = decimal.NewFromInt(100)

// ItemTotals holds the derived amounts of one line item.
type ItemTotals struct {
	Subtotal  decimal.Decimal // quantity × unit price − discount
	TaxAmount decimal.Decimal // subtotal × tax rate / 100
}

// Totals holds the per-item amounts, in input order, and the document aggregates.
type Totals struct {
	Items  []ItemTotals
	PreTax decimal.Decimal
	Tax    decimal.Decimal
	Due    decimal.Decimal
}

// Compute derives the totals of items. A discount larger than the line value
// yields a negative subtotal, which is kept as is.
func Compute(items []models.LineItem) Totals {
	t := Totals{
		Items:  make([]ItemTotals, 0, len(items)),
		PreTax: decimal.Zero,
		Tax:    decimal.Zero,
	}
	for _, item := range items {
		it := ForItem(item)
		t.Items = append(t.Items, it)
		t.PreTax = t.PreTax.Add(it.Subtotal)
		t.Tax = t.Tax.Add(it.TaxAmount)
	}
	t.Due = t.PreTax.Add(t.Tax)
	return t
}

// ForItem derives the amounts of a single line item.
func ForItem(item models.LineItem) ItemTotals {
	subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Sub(item.Discount)
	return ItemTotals{
		Subtotal:  subtotal,
		TaxAmount: subtotal.Mul(item.TaxRate).Div(hundred),
	}
}

// LineValue is the undiscounted pre-tax value shown in the item table.
func LineValue(item models.LineItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Money formats an amount with two decimals and the euro sign, e.g. "5 458.80 €".
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac + " €"
	if neg {
		return "-" + out
	}
	return out
}

// Percent formats a tax rate, e.g. "20 %" or "5.5 %".
func Percent(d decimal.Decimal) string {
	return d.String() + " %"
}
