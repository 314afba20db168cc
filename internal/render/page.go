package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"

	"docgen/internal/asset"
	"docgen/internal/theme"
)

// ErrInvalidState is returned when the pager is driven out of order.
var ErrInvalidState = errors.New("render: invalid pager state transition")

// font is a core font selection.
type font struct {
	Style string // "" or "B"
	Size  float64
}

const family = "Helvetica"

// canvas is what a recorded op draws on during the footer pass.
type canvas struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	images map[*asset.Image]string
}

type op interface {
	draw(c *canvas)
}

type textOp struct {
	X, Y, W, H float64
	Text       string
	Align      string
	Font       font
	Color      theme.Color
}

func (o textOp) draw(c *canvas) {
	c.pdf.SetFont(family, o.Font.Style, o.Font.Size)
	c.pdf.SetTextColor(o.Color.R, o.Color.G, o.Color.B)
	c.pdf.SetXY(o.X, o.Y)
	c.pdf.CellFormat(o.W, o.H, c.tr(o.Text), "", 0, o.Align+"M", false, 0, "")
}

type fillOp struct {
	X, Y, W, H float64
	Color      theme.Color
}

func (o fillOp) draw(c *canvas) {
	c.pdf.SetFillColor(o.Color.R, o.Color.G, o.Color.B)
	c.pdf.Rect(o.X, o.Y, o.W, o.H, "F")
}

type strokeOp struct {
	X, Y, W, H float64
	Width      float64
	Color      theme.Color
}

func (o strokeOp) draw(c *canvas) {
	c.pdf.SetLineWidth(o.Width)
	c.pdf.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
	c.pdf.Rect(o.X, o.Y, o.W, o.H, "D")
}

type lineOp struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          theme.Color
}

func (o lineOp) draw(c *canvas) {
	c.pdf.SetLineWidth(o.Width)
	c.pdf.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
	c.pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
}

type imageOp struct {
	X, Y  float64
	Image *asset.Image
}

func (o imageOp) draw(c *canvas) {
	opts := fpdf.ImageOptions{ImageType: o.Image.Type, ReadDpi: false}
	name, ok := c.images[o.Image]
	if !ok {
		name = fmt.Sprintf("logo%d", len(c.images))
		c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(o.Image.Data))
		c.images[o.Image] = name
	}
	c.pdf.ImageOptions(name, o.X, o.Y, o.Image.Width, o.Image.Height, false, opts, 0, "")
}

// Page is the frozen drawing state of one laid-out page. It is immutable
// once the layout pass hands it over.
type Page struct {
	ops []op
}

// Len returns the number of recorded drawing operations.
func (p Page) Len() int {
	return len(p.ops)
}

// Texts returns the text drawn on the page, in drawing order.
func (p Page) Texts() []string {
	var out []string
	for _, o := range p.ops {
		if t, ok := o.(textOp); ok {
			out = append(out, t.Text)
		}
	}
	return out
}

func (p Page) replay(c *canvas) {
	for _, o := range p.ops {
		o.draw(c)
	}
}

type pagerState int

const (
	stateComposing pagerState = iota
	statePaginated
	stateFinalized
)

func (s pagerState) String() string {
	switch s {
	case stateComposing:
		return "composing"
	case statePaginated:
		return "paginated"
	default:
		return "finalized"
	}
}

// pager accumulates ops into pages and enforces composing → paginated → finalized.
type pager struct {
	state   pagerState
	pages   []Page
	current []op
}

func (p *pager) emit(ops ...op) error {
	if p.state != stateComposing {
		return fmt.Errorf("%w: emit while %s", ErrInvalidState, p.state)
	}
	p.current = append(p.current, ops...)
	return nil
}

// breakPage freezes the current page and starts an empty one.
func (p *pager) breakPage() error {
	if p.state != stateComposing {
		return fmt.Errorf("%w: page break while %s", ErrInvalidState, p.state)
	}
	p.pages = append(p.pages, Page{ops: p.current})
	p.current = nil
	return nil
}

// paginate freezes the last page and closes the layout pass.
func (p *pager) paginate() ([]Page, error) {
	if p.state != stateComposing {
		return nil, fmt.Errorf("%w: paginate while %s", ErrInvalidState, p.state)
	}
	if len(p.current) > 0 || len(p.pages) == 0 {
		p.pages = append(p.pages, Page{ops: p.current})
	}
	p.current = nil
	p.state = statePaginated
	return p.pages, nil
}

// finalize runs commit for every page with its 1-based number and the total count.
func (p *pager) finalize(commit func(page Page, number, total int) error) error {
	if p.state != statePaginated {
		return fmt.Errorf("%w: finalize while %s", ErrInvalidState, p.state)
	}
	total := len(p.pages)
	for i, page := range p.pages {
		if err := commit(page, i+1, total); err != nil {
			return err
		}
	}
	p.state = stateFinalized
	return nil
}
