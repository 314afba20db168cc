package compose

import (
	"docgen/internal/asset"
	"docgen/internal/theme"
)

// BlockKind tags the Block variants.
type BlockKind int

const (
	KindHeader BlockKind = iota
	KindRule
	KindInfoPair
	KindParagraph
	KindItemTable
	KindTotals
	KindConditions
	KindBank
	KindSignature
	KindSpacer
)

var kindNames = [...]string{"header", "rule", "info", "paragraph", "items", "totals", "conditions", "bank", "signature", "spacer"}

func (k BlockKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Block is one self-contained visual unit of a document.
type Block interface {
	Kind() BlockKind
}

// Align is a horizontal alignment: "L", "C" or "R".
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Line is one stacked row of text.
type Line struct {
	Text  string
	Bold  bool
	Color *theme.Color // nil means black
}

// Header carries the document title and the optional logo.
type Header struct {
	Title     string
	TitleSize float64
	Logo      *asset.Image
}

func (Header) Kind() BlockKind { return KindHeader }

// TwoColumn reports whether the header puts the logo beside the title.
func (h Header) TwoColumn() bool { return h.Logo != nil }

// Rule is a full-width coloured separator.
type Rule struct {
	Color     theme.Color
	Thickness float64 // mm
}

func (Rule) Kind() BlockKind { return KindRule }

// InfoPair lays two stacks of lines side by side: labels and values, or supplier and customer.
type InfoPair struct {
	Left  []Line
	Right []Line
}

func (InfoPair) Kind() BlockKind { return KindInfoPair }

// Paragraph is free-form wrapped text.
type Paragraph struct {
	Text  string
	Size  float64 // pt
	Color theme.Color
}

func (Paragraph) Kind() BlockKind { return KindParagraph }

// Column describes one item-table column.
type Column struct {
	Header string
	Width  float64 // mm
	Align  Align
}

// RowKind tells primary item rows from the rows they emit below them.
type RowKind int

const (
	RowHeader RowKind = iota
	RowItem
	RowDetail
	RowDiscount
)

// Cell is one table cell.
type Cell struct {
	Text string
	Bold bool
}

// Row is one physical table row. Item is the index of the line item it belongs to, -1 for the header.
type Row struct {
	Kind  RowKind
	Item  int
	Cells []Cell
}

// Span merges columns FirstCol..LastCol of row Row into one cell.
// Row is a physical row index, the header being row 0.
type Span struct {
	Row      int
	FirstCol int
	LastCol  int
}

// ItemTable is the itemised table. Rows[0] is the header row.
type ItemTable struct {
	Columns          []Column
	Rows             []Row
	Spans            []Span
	HeaderBackground theme.Color
	HeaderText       theme.Color
	Grid             theme.Color
}

func (*ItemTable) Kind() BlockKind { return KindItemTable }

// SpanAt returns the span starting on row, if any.
func (t *ItemTable) SpanAt(row int) (Span, bool) {
	for _, s := range t.Spans {
		if s.Row == row {
			return s, true
		}
	}
	return Span{}, false
}

// TotalsRow is one label/amount pair.
type TotalsRow struct {
	Label string
	Value string
	Bold  bool
}

// TotalsBlock always has three rows; the last one is ruled beneath.
type TotalsBlock struct {
	Rows [3]TotalsRow
}

func (TotalsBlock) Kind() BlockKind { return KindTotals }

// Conditions holds the payment terms and the late-payment penalty notice.
type Conditions struct {
	Title   string
	Terms   string
	Penalty string
}

func (Conditions) Kind() BlockKind { return KindConditions }

// Field is a bold label followed by a value.
type Field struct {
	Label string
	Value string
}

// Bank holds the payment coordinates.
type Bank struct {
	Title  string
	Fields []Field
}

func (Bank) Kind() BlockKind { return KindBank }

// Signature is the quote acceptance box.
type Signature struct {
	Lines []string
}

func (Signature) Kind() BlockKind { return KindSignature }

// Spacer is vertical whitespace.
type Spacer struct {
	Height float64 // mm
}

func (Spacer) Kind() BlockKind { return KindSpacer }
