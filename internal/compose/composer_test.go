package compose

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/internal/asset"
	"docgen/internal/theme"
	"docgen/internal/totals"
	"docgen/pkg/models"
)

func lineItem(desc string, details []string, discount int64) models.LineItem {
	return models.LineItem{
		Description: desc,
		Details:     details,
		Quantity:    2,
		UnitPrice:   decimal.NewFromInt(100),
		TaxRate:     decimal.NewFromInt(20),
		Discount:    decimal.NewFromInt(discount),
	}
}

func kinds(blocks []Block) []BlockKind {
	out := make([]BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind()
	}
	return out
}

func find[T Block](blocks []Block) []T {
	var out []T
	for _, b := range blocks {
		if v, ok := b.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestRowsFor(t *testing.T) {
	assert.Equal(t, 1, RowsFor(lineItem("a", nil, 0)))
	assert.Equal(t, 2, RowsFor(lineItem("a", []string{"x"}, 0)))
	assert.Equal(t, 2, RowsFor(lineItem("a", nil, 10)))
	assert.Equal(t, 3, RowsFor(lineItem("a", []string{"x", "y"}, 10)))
}

func TestTableRowBookkeeping(t *testing.T) {
	items := []models.LineItem{
		lineItem("first", []string{"d1", "d2"}, 15),
		lineItem("second", nil, 0),
		lineItem("third", []string{"only"}, 0),
	}
	table := Table(items, theme.Resolve("green"))

	// header + 3 + 1 + 2
	require.Len(t, table.Rows, 7)
	assert.Equal(t, RowHeader, table.Rows[0].Kind)
	assert.Equal(t, theme.Resolve("green").HeaderBackground, table.HeaderBackground)

	want := []struct {
		kind RowKind
		item int
	}{
		{RowItem, 0}, {RowDetail, 0}, {RowDiscount, 0},
		{RowItem, 1},
		{RowItem, 2}, {RowDetail, 2},
	}
	for i, w := range want {
		row := table.Rows[i+1]
		assert.Equal(t, w.kind, row.Kind, "row %d", i+1)
		assert.Equal(t, w.item, row.Item, "row %d", i+1)
		assert.Len(t, row.Cells, 5)
	}

	require.Len(t, table.Spans, 2)
	assert.Equal(t, Span{Row: 2, FirstCol: 0, LastCol: 4}, table.Spans[0])
	assert.Equal(t, Span{Row: 6, FirstCol: 0, LastCol: 4}, table.Spans[1])

	span, ok := table.SpanAt(2)
	require.True(t, ok)
	assert.Equal(t, len(table.Columns)-1, span.LastCol)
	_, ok = table.SpanAt(4)
	assert.False(t, ok)

	assert.Equal(t, "d1\nd2", table.Rows[2].Cells[0].Text)

	discount := table.Rows[3]
	assert.Empty(t, discount.Cells[0].Text)
	assert.Empty(t, discount.Cells[2].Text)
	assert.Equal(t, "Discount", discount.Cells[3].Text)
	assert.Equal(t, "-15.00 €", discount.Cells[4].Text)

	primary := table.Rows[1]
	assert.Equal(t, "first", primary.Cells[0].Text)
	assert.True(t, primary.Cells[0].Bold)
	assert.Equal(t, "2", primary.Cells[1].Text)
	assert.Equal(t, "100.00 €", primary.Cells[2].Text)
	assert.Equal(t, "20 %", primary.Cells[3].Text)
	assert.Equal(t, "200.00 €", primary.Cells[4].Text)
}

func TestTableColumns(t *testing.T) {
	table := Table(nil, theme.Resolve(""))

	var width float64
	aligns := make([]Align, 0, len(table.Columns))
	for _, c := range table.Columns {
		width += c.Width
		aligns = append(aligns, c.Align)
	}
	assert.InDelta(t, 170, width, 1e-9)
	assert.Equal(t, []Align{AlignLeft, AlignCenter, AlignRight, AlignCenter, AlignRight}, aligns)
	assert.Len(t, table.Rows, 1)
	assert.Empty(t, table.Spans)
}

func TestTotalsAlwaysThreeRows(t *testing.T) {
	block := Totals(totals.Compute(nil))

	assert.Equal(t, "0.00 €", block.Rows[0].Value)
	assert.Equal(t, "0.00 €", block.Rows[2].Value)
	assert.False(t, block.Rows[0].Bold)
	assert.True(t, block.Rows[2].Bold)
}

func sampleDoc(kind models.Kind) *models.Document {
	doc := models.ExampleDocument(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC))
	doc.Kind = kind
	doc.Normalize(time.Now())
	return &doc
}

func TestComposeQuote(t *testing.T) {
	doc := sampleDoc(models.KindQuote)
	blocks := Compose(doc, totals.Compute(doc.Items), theme.Resolve(doc.Theme), nil)

	assert.Equal(t, KindHeader, blocks[0].Kind())
	header := blocks[0].(Header)
	assert.False(t, header.TwoColumn())
	assert.Equal(t, "Quote", header.Title)

	assert.Len(t, find[Signature](blocks), 1)
	assert.Empty(t, find[Rule](blocks))
	assert.Len(t, find[*ItemTable](blocks), 1)
	assert.Len(t, find[TotalsBlock](blocks), 1)
	assert.Len(t, find[Conditions](blocks), 1)
	assert.Len(t, find[Bank](blocks), 1)
	assert.Equal(t, KindSignature, blocks[len(blocks)-1].Kind())

	info := find[InfoPair](blocks)
	require.Len(t, info, 2)
	assert.Equal(t, "Expiration date", info[0].Left[2].Text)
	assert.Equal(t, doc.Number, info[0].Right[0].Text)
	assert.Equal(t, "VAT number: FR12345678901", info[1].Right[len(info[1].Right)-1].Text)

	tb := find[TotalsBlock](blocks)[0]
	assert.Equal(t, "5 458.80 €", tb.Rows[2].Value)
}

func TestComposeInvoice(t *testing.T) {
	doc := sampleDoc(models.KindInvoice)
	doc.Status = models.StatusLate
	doc.PurchaseOrder = "PO-77"
	palette := theme.Resolve("orange")

	blocks := Compose(doc, totals.Compute(doc.Items), palette, nil)

	assert.Empty(t, find[Signature](blocks))
	rules := find[Rule](blocks)
	require.Len(t, rules, 1)
	assert.Equal(t, palette.Primary, rules[0].Color)
	assert.Equal(t, "INVOICE", blocks[0].(Header).Title)

	meta := find[InfoPair](blocks)[0]
	require.Len(t, meta.Left, 5)
	assert.Equal(t, "Status", meta.Left[3].Text)
	assert.Equal(t, "Late", meta.Right[3].Text)
	require.NotNil(t, meta.Right[3].Color)
	assert.Equal(t, theme.Red, *meta.Right[3].Color)
	assert.Equal(t, "Purchase order", meta.Left[4].Text)
	assert.Equal(t, "PO-77", meta.Right[4].Text)

	last := blocks[len(blocks)-1].(Paragraph)
	assert.Equal(t, theme.Grey, last.Color)
}

func TestStatusColor(t *testing.T) {
	palette := theme.Resolve("purple")
	assert.Equal(t, theme.Red, StatusColor(models.StatusLate, palette))
	assert.Equal(t, theme.Green, StatusColor(models.StatusPaid, palette))
	assert.Equal(t, palette.Accent, StatusColor(models.StatusPending, palette))
	assert.Equal(t, palette.Accent, StatusColor("whatever", palette))
}

func TestComposeOmitsMissingOptionalData(t *testing.T) {
	doc := &models.Document{
		Kind:     models.KindInvoice,
		Number:   "F-1",
		Status:   models.StatusPending,
		Customer: models.Party{Name: "Bare Customer"},
		Items:    []models.LineItem{lineItem("x", nil, 0)},
	}
	blocks := Compose(doc, totals.Compute(doc.Items), theme.Resolve(""), nil)

	assert.Empty(t, find[Conditions](blocks))
	assert.Empty(t, find[Bank](blocks))

	parties := find[InfoPair](blocks)[1]
	assert.Equal(t, []Line{{Text: "Bare Customer", Bold: true}}, parties.Right)

	meta := find[InfoPair](blocks)[0]
	assert.Len(t, meta.Left, 4)
}

func TestComposeHeaderWithLogo(t *testing.T) {
	doc := sampleDoc(models.KindQuote)
	logo := &asset.Image{Type: "png", Width: 40, Height: 20}
	blocks := Compose(doc, totals.Compute(doc.Items), theme.Resolve(""), logo)

	header := blocks[0].(Header)
	assert.True(t, header.TwoColumn())
	assert.Same(t, logo, header.Logo)
	assert.Equal(t, []BlockKind{KindHeader, KindSpacer, KindInfoPair}, kinds(blocks)[:3])
}
