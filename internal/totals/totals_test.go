package totals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"docgen/pkg/models"
)

func item(qty int, price, tax, discount string) models.LineItem {
	return models.LineItem{
		Description: "item",
		Quantity:    qty,
		UnitPrice:   decimal.RequireFromString(price),
		TaxRate:     decimal.RequireFromString(tax),
		Discount:    decimal.RequireFromString(discount),
	}
}

func TestComputeDocumentedExample(t *testing.T) {
	got := Compute([]models.LineItem{
		item(5, "800", "20", "0"),
		item(2, "150", "20", "0"),
		item(1, "299", "20", "50"),
	})

	assert.Equal(t, "4549.00", got.PreTax.StringFixed(2))
	assert.Equal(t, "909.80", got.Tax.StringFixed(2))
	assert.Equal(t, "5458.80", got.Due.StringFixed(2))
	assert.Equal(t, "249.00", got.Items[2].Subtotal.StringFixed(2))
}

func TestComputeSumsMatchItems(t *testing.T) {
	items := []models.LineItem{
		item(3, "19.99", "5.5", "0"),
		item(7, "0.10", "20", "0.05"),
		item(1, "1234.567", "10", "34.567"),
		item(2, "33.33", "0", "0"),
	}
	got := Compute(items)

	pretax, tax := decimal.Zero, decimal.Zero
	for _, it := range got.Items {
		pretax = pretax.Add(it.Subtotal)
		tax = tax.Add(it.TaxAmount)
	}
	assert.True(t, got.PreTax.Equal(pretax))
	assert.True(t, got.Tax.Equal(tax))
	assert.True(t, got.Due.Equal(got.PreTax.Add(got.Tax)))

	reversed := make([]models.LineItem, len(items))
	for i := range items {
		reversed[len(items)-1-i] = items[i]
	}
	rev := Compute(reversed)
	assert.True(t, got.Due.Equal(rev.Due))
	assert.True(t, got.Tax.Equal(rev.Tax))
}

func TestComputeFullDiscount(t *testing.T) {
	got := Compute([]models.LineItem{item(4, "12.50", "20", "50")})

	assert.True(t, got.Items[0].Subtotal.IsZero())
	assert.True(t, got.Items[0].TaxAmount.IsZero())
	assert.True(t, got.Due.IsZero())
}

func TestComputeNegativeSubtotalTolerated(t *testing.T) {
	got := Compute([]models.LineItem{item(1, "10", "20", "15")})

	assert.Equal(t, "-5.00", got.PreTax.StringFixed(2))
	assert.Equal(t, "-1.00", got.Tax.StringFixed(2))
	assert.Equal(t, "-6.00", got.Due.StringFixed(2))
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil)

	assert.Empty(t, got.Items)
	assert.True(t, got.PreTax.IsZero())
	assert.True(t, got.Due.IsZero())
}

func TestMoney(t *testing.T) {
	tests := map[string]string{
		"0":           "0.00 €",
		"5":           "5.00 €",
		"249":         "249.00 €",
		"5458.8":      "5 458.80 €",
		"1234567.891": "1 234 567.89 €",
		"-50":         "-50.00 €",
	}
	for in, want := range tests {
		assert.Equal(t, want, Money(decimal.RequireFromString(in)), in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "20 %", Percent(decimal.NewFromInt(20)))
	assert.Equal(t, "5.5 %", Percent(decimal.RequireFromString("5.5")))
}
