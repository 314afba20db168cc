package compose

import (
	"strconv"
	"strings"

	"docgen/internal/theme"
	"docgen/internal/totals"
	"docgen/pkg/models"
)

// RowsFor returns how many physical rows item occupies: its primary row,
// plus a spanning details row when it has details, plus a discount row when
// its discount is positive.
func RowsFor(item models.LineItem) int {
	rows := 1
	if len(item.Details) > 0 {
		rows++
	}
	if item.Discount.IsPositive() {
		rows++
	}
	return rows
}

// Table builds the item table. Span rows are addressed in final row
// coordinates, so each item's row count is settled before its spans are emitted.
func Table(items []models.LineItem, palette theme.Palette) *ItemTable {
	table := &ItemTable{
		Columns: []Column{
			{Header: "Description", Width: ColumnWidths[0], Align: AlignLeft},
			{Header: "Qty", Width: ColumnWidths[1], Align: AlignCenter},
			{Header: "Unit price", Width: ColumnWidths[2], Align: AlignRight},
			{Header: "VAT (%)", Width: ColumnWidths[3], Align: AlignCenter},
			{Header: "Net total", Width: ColumnWidths[4], Align: AlignRight},
		},
		HeaderBackground: palette.HeaderBackground,
		HeaderText:       theme.White,
		Grid:             theme.Grid,
	}

	head := Row{Kind: RowHeader, Item: -1}
	for _, c := range table.Columns {
		head.Cells = append(head.Cells, Cell{Text: c.Header, Bold: true})
	}
	table.Rows = append(table.Rows, head)

	last := len(table.Columns) - 1
	next := 1
	for i, item := range items {
		first := next
		next += RowsFor(item)

		table.Rows = append(table.Rows, Row{Kind: RowItem, Item: i, Cells: []Cell{
			{Text: item.Description, Bold: true},
			{Text: strconv.Itoa(item.Quantity)},
			{Text: totals.Money(item.UnitPrice)},
			{Text: totals.Percent(item.TaxRate)},
			{Text: totals.Money(totals.LineValue(item))},
		}})

		if len(item.Details) > 0 {
			table.Rows = append(table.Rows, Row{Kind: RowDetail, Item: i, Cells: []Cell{
				{Text: strings.Join(item.Details, "\n")}, {}, {}, {}, {},
			}})
			table.Spans = append(table.Spans, Span{Row: first + 1, FirstCol: 0, LastCol: last})
		}

		if item.Discount.IsPositive() {
			table.Rows = append(table.Rows, Row{Kind: RowDiscount, Item: i, Cells: []Cell{
				{}, {}, {},
				{Text: "Discount"},
				{Text: totals.Money(item.Discount.Neg())},
			}})
		}
	}
	return table
}
