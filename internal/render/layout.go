package render

import (
	"fmt"
	"math"

	"docgen/internal/compose"
	"docgen/internal/theme"
)

const (
	bodySize    = 10.0
	tableSize   = 9.0
	headSize    = 10.0
	penaltySize = 8.0

	cellPadX     = 2.8
	cellPadY     = 3.0
	gridWidth    = 0.18
	headerGap    = 4.2 // below the title row
	infoColumn   = 85.0
	totalsLabelW = 130.0
	totalsValueW = 40.0
	totalsPad    = 1.06 // 3pt above and below each totals row
	blockGap     = 3.0
	signatureW   = 60.0
)

// engine is the layout pass. It flows blocks down the content area and
// records every drawing into the pager.
type engine struct {
	geo   Geometry
	m     *measurer
	pager *pager
	y     float64
	empty bool
}

// Layout runs the layout pass alone and returns the frozen pages. Page
// numbering is not applied.
func Layout(blocks []compose.Block, geo Geometry) ([]Page, error) {
	e, err := layout(blocks, geo)
	if err != nil {
		return nil, err
	}
	return e.pager.pages, nil
}

func layout(blocks []compose.Block, geo Geometry) (*engine, error) {
	e := &engine{
		geo:   geo,
		m:     newMeasurer(),
		pager: &pager{},
		y:     geo.Top,
		empty: true,
	}
	for _, b := range blocks {
		if err := e.place(b); err != nil {
			return nil, fmt.Errorf("layout %s block: %w", b.Kind(), err)
		}
	}
	if _, err := e.pager.paginate(); err != nil {
		return nil, err
	}
	if err := e.m.pdf.Error(); err != nil {
		return nil, fmt.Errorf("measure text: %w", err)
	}
	return e, nil
}

func (e *engine) place(b compose.Block) error {
	switch b := b.(type) {
	case compose.Header:
		return e.header(b)
	case compose.Rule:
		return e.rule(b)
	case compose.InfoPair:
		return e.infoPair(b)
	case compose.Paragraph:
		return e.paragraph(b.Text, font{Size: b.Size}, b.Color)
	case *compose.ItemTable:
		return e.table(b)
	case compose.TotalsBlock:
		return e.totals(b)
	case compose.Conditions:
		return e.conditions(b)
	case compose.Bank:
		return e.bank(b)
	case compose.Signature:
		return e.signature(b)
	case compose.Spacer:
		return e.spacer(b.Height)
	default:
		return fmt.Errorf("unsupported block %T", b)
	}
}

func (e *engine) fits(h float64) bool {
	return e.y+h <= e.geo.MaxY()
}

// reserve starts a new page when h does not fit, unless the current page is
// still empty: an oversize block is placed anyway rather than looping.
func (e *engine) reserve(h float64) error {
	if e.fits(h) || e.empty {
		return nil
	}
	return e.newPage()
}

func (e *engine) newPage() error {
	if err := e.pager.breakPage(); err != nil {
		return err
	}
	e.y = e.geo.Top
	e.empty = true
	return nil
}

func (e *engine) emit(ops ...op) error {
	if err := e.pager.emit(ops...); err != nil {
		return err
	}
	e.empty = false
	return nil
}

func (e *engine) text(x, y, w float64, s string, f font, align compose.Align, c theme.Color) op {
	return textOp{X: x, Y: y, W: w, H: leading(f.Size), Text: s, Align: string(align), Font: f, Color: c}
}

func (e *engine) spacer(h float64) error {
	if e.empty {
		return nil
	}
	if !e.fits(h) {
		e.y = e.geo.MaxY()
		return nil
	}
	e.y += h
	return nil
}

func (e *engine) header(h compose.Header) error {
	f := font{Style: "B", Size: h.TitleSize}
	width := e.geo.ContentWidth()
	height := leading(f.Size)
	if h.TwoColumn() {
		height = math.Max(height, h.Logo.Height)
	}
	if err := e.reserve(height + headerGap); err != nil {
		return err
	}

	ops := []op{e.text(e.geo.Left, e.y+(height-leading(f.Size))/2, width, h.Title, f, compose.AlignLeft, theme.Black)}
	if h.TwoColumn() {
		ops = append(ops, imageOp{
			X:     e.geo.Left + width - h.Logo.Width,
			Y:     e.y + (height-h.Logo.Height)/2,
			Image: h.Logo,
		})
	}
	if err := e.emit(ops...); err != nil {
		return err
	}
	e.y += height + headerGap
	return nil
}

func (e *engine) rule(r compose.Rule) error {
	if err := e.reserve(r.Thickness); err != nil {
		return err
	}
	mid := e.y + r.Thickness/2
	if err := e.emit(lineOp{
		X1: e.geo.Left, Y1: mid, X2: e.geo.Left + e.geo.ContentWidth(), Y2: mid,
		Width: r.Thickness, Color: r.Color,
	}); err != nil {
		return err
	}
	e.y += r.Thickness
	return nil
}

func (e *engine) column(lines []compose.Line, x float64) ([]op, float64) {
	var ops []op
	lead := leading(bodySize)
	y := e.y
	for _, line := range lines {
		f := font{Size: bodySize}
		if line.Bold {
			f.Style = "B"
		}
		c := theme.Black
		if line.Color != nil {
			c = *line.Color
		}
		for _, l := range e.m.wrap(line.Text, f, infoColumn) {
			ops = append(ops, e.text(x, y, infoColumn, l, f, compose.AlignLeft, c))
			y += lead
		}
	}
	return ops, y - e.y
}

func (e *engine) infoPair(p compose.InfoPair) error {
	// Heights do not depend on y, so measure first and build once the pair's page is settled.
	_, lh := e.column(p.Left, e.geo.Left)
	_, rh := e.column(p.Right, e.geo.Left+infoColumn)
	if err := e.reserve(math.Max(lh, rh)); err != nil {
		return err
	}
	left, _ := e.column(p.Left, e.geo.Left)
	right, _ := e.column(p.Right, e.geo.Left+infoColumn)
	if err := e.emit(append(left, right...)...); err != nil {
		return err
	}
	e.y += math.Max(lh, rh)
	return nil
}

// paragraph flows wrapped text line by line, so long text continues on the
// next page.
func (e *engine) paragraph(text string, f font, c theme.Color) error {
	lead := leading(f.Size)
	width := e.geo.ContentWidth()
	for _, line := range e.m.wrap(text, f, width) {
		if err := e.reserve(lead); err != nil {
			return err
		}
		if err := e.emit(e.text(e.geo.Left, e.y, width, line, f, compose.AlignLeft, c)); err != nil {
			return err
		}
		e.y += lead
	}
	return nil
}

func (e *engine) conditions(c compose.Conditions) error {
	if err := e.paragraph(c.Title, font{Style: "B", Size: bodySize}, theme.Black); err != nil {
		return err
	}
	if err := e.paragraph(c.Terms, font{Size: bodySize}, theme.Black); err != nil {
		return err
	}
	if c.Penalty == "" {
		return nil
	}
	if err := e.spacer(blockGap); err != nil {
		return err
	}
	return e.paragraph(c.Penalty, font{Size: penaltySize}, theme.Grey)
}

func (e *engine) bank(b compose.Bank) error {
	if err := e.paragraph(b.Title, font{Style: "B", Size: bodySize}, theme.Black); err != nil {
		return err
	}
	if err := e.spacer(blockGap); err != nil {
		return err
	}

	lead := leading(bodySize)
	bold := font{Style: "B", Size: bodySize}
	regular := font{Size: bodySize}
	for _, f := range b.Fields {
		if err := e.reserve(lead); err != nil {
			return err
		}
		lw := e.m.width(f.Label+" ", bold)
		if err := e.emit(
			e.text(e.geo.Left, e.y, lw, f.Label, bold, compose.AlignLeft, theme.Black),
			e.text(e.geo.Left+lw, e.y, e.geo.ContentWidth()-lw, f.Value, regular, compose.AlignLeft, theme.Black),
		); err != nil {
			return err
		}
		e.y += lead
	}
	return nil
}

func (e *engine) totals(t compose.TotalsBlock) error {
	lead := leading(bodySize)
	rowH := lead + 2*totalsPad
	if err := e.reserve(rowH * float64(len(t.Rows))); err != nil {
		return err
	}

	x := e.geo.Left
	var ops []op
	for i, row := range t.Rows {
		f := font{Size: bodySize}
		if row.Bold {
			f.Style = "B"
		}
		y := e.y + totalsPad
		ops = append(ops,
			e.text(x, y, totalsLabelW-cellPadX, row.Label, f, compose.AlignRight, theme.Black),
			e.text(x+totalsLabelW, y, totalsValueW-cellPadX, row.Value, f, compose.AlignRight, theme.Black),
		)
		e.y += rowH
		if i == len(t.Rows)-1 {
			ops = append(ops, lineOp{
				X1: x, Y1: e.y, X2: x + totalsLabelW + totalsValueW, Y2: e.y,
				Width: ptToMM, Color: theme.Black,
			})
		}
	}
	return e.emit(ops...)
}

func (e *engine) signature(s compose.Signature) error {
	lead := leading(bodySize)
	if err := e.reserve(lead * float64(len(s.Lines))); err != nil {
		return err
	}
	x := e.geo.Left + e.geo.ContentWidth() - signatureW
	var ops []op
	for _, line := range s.Lines {
		ops = append(ops, e.text(x, e.y, signatureW, line, font{Size: bodySize}, compose.AlignCenter, theme.Black))
		e.y += lead
	}
	return e.emit(ops...)
}

// tableRow is a measured table row ready to draw at any y.
type tableRow struct {
	height float64
	cells  []tableCell
}

type tableCell struct {
	x, w  float64
	lines []string
	font  font
	align compose.Align
}

func (e *engine) measureRow(t *compose.ItemTable, index int) tableRow {
	row := t.Rows[index]
	size := tableSize
	if row.Kind == compose.RowHeader {
		size = headSize
	}

	var out tableRow
	x := e.geo.Left
	for col := 0; col < len(t.Columns); col++ {
		start := col
		w := t.Columns[col].Width
		align := t.Columns[col].Align
		if span, ok := t.SpanAt(index); ok && span.FirstCol == col {
			for c := col + 1; c <= span.LastCol && c < len(t.Columns); c++ {
				w += t.Columns[c].Width
				col = c
			}
			align = compose.AlignLeft
		}

		var cell compose.Cell
		if start < len(row.Cells) {
			cell = row.Cells[start]
		}
		f := font{Size: size}
		if cell.Bold || row.Kind == compose.RowHeader {
			f.Style = "B"
		}
		tc := tableCell{x: x, w: w, font: f, align: align}
		if cell.Text != "" {
			tc.lines = e.m.wrap(cell.Text, f, w-2*cellPadX)
		}
		out.cells = append(out.cells, tc)

		out.height = math.Max(out.height, float64(len(tc.lines))*leading(size)+2*cellPadY)
		x += w
	}
	if len(out.cells) > 0 && out.height == 2*cellPadY {
		out.height += leading(size)
	}
	return out
}

func (e *engine) drawRow(t *compose.ItemTable, r tableRow, header bool) error {
	var ops []op
	textColor := theme.Black
	if header {
		ops = append(ops, fillOp{X: e.geo.Left, Y: e.y, W: tableWidth(t), H: r.height, Color: t.HeaderBackground})
		textColor = t.HeaderText
	}
	for _, c := range r.cells {
		ops = append(ops, strokeOp{X: c.x, Y: e.y, W: c.w, H: r.height, Width: gridWidth, Color: t.Grid})
		y := e.y + cellPadY
		for _, line := range c.lines {
			ops = append(ops, e.text(c.x+cellPadX, y, c.w-2*cellPadX, line, c.font, c.align, textColor))
			y += leading(c.font.Size)
		}
	}
	if err := e.emit(ops...); err != nil {
		return err
	}
	e.y += r.height
	return nil
}

func tableWidth(t *compose.ItemTable) float64 {
	var w float64
	for _, c := range t.Columns {
		w += c.Width
	}
	return w
}

// table splits between rows only and repeats the header row on every page it
// continues to. A row taller than a whole page is placed under the header
// anyway.
func (e *engine) table(t *compose.ItemTable) error {
	if len(t.Rows) == 0 {
		return nil
	}
	head := e.measureRow(t, 0)
	body := make([]tableRow, 0, len(t.Rows)-1)
	for i := 1; i < len(t.Rows); i++ {
		body = append(body, e.measureRow(t, i))
	}

	first := head.height
	if len(body) > 0 {
		first += body[0].height
	}
	if err := e.reserve(first); err != nil {
		return err
	}
	if err := e.drawRow(t, head, true); err != nil {
		return err
	}

	onlyHeader := true
	for _, r := range body {
		if !e.fits(r.height) && !onlyHeader {
			if err := e.newPage(); err != nil {
				return err
			}
			if err := e.drawRow(t, head, true); err != nil {
				return err
			}
		}
		if err := e.drawRow(t, r, false); err != nil {
			return err
		}
		onlyHeader = false
	}
	return nil
}
