// Package render turns composed blocks into output bytes.
//
// The PDF backend works in two passes. The layout pass flows the blocks down
// A4 pages and freezes each finished page as a list of drawing operations.
// Only once the last page is known does the footer pass replay every page
// onto the output document and stamp "<entity>" on the left and
// "<number> · i/N" on the right, so N is always the true page count.
//
// The HTML backend writes a single flow document with no pagination.
package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"docgen/internal/asset"
	"docgen/internal/compose"
	"docgen/internal/logger"
	"docgen/internal/theme"
)

// ErrRenderFailed wraps any backend failure while producing output bytes.
var ErrRenderFailed = errors.New("render failed")

const footerSize = 9.0

// PDFRenderer renders block sequences to PDF.
type PDFRenderer struct {
	compress bool
	log      zerolog.Logger
}

// PDFOption customizes a PDFRenderer.
type PDFOption func(*PDFRenderer)

// WithCompression toggles stream compression. It is on by default.
func WithCompression(on bool) PDFOption {
	return func(r *PDFRenderer) { r.compress = on }
}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer(opts ...PDFOption) *PDFRenderer {
	r := &PDFRenderer{
		compress: true,
		log:      logger.WithComponent("pdf-renderer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is a rendered PDF and its page count.
type Result struct {
	Data  []byte
	Pages int
}

// Render lays blocks out on geo and stamps footer onto every page.
func (r *PDFRenderer) Render(blocks []compose.Block, geo Geometry, footer FooterInfo) (*Result, error) {
	e, err := layout(blocks, geo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	out := fpdf.New("P", "mm", "A4", "")
	out.SetCompression(r.compress)
	out.SetMargins(geo.Left, geo.Top, geo.Right)
	out.SetAutoPageBreak(false, geo.Bottom)
	out.SetCreator("docgen", true)
	c := &canvas{
		pdf:    out,
		tr:     out.UnicodeTranslatorFromDescriptor(""),
		images: make(map[*asset.Image]string),
	}

	err = e.pager.finalize(func(page Page, number, total int) error {
		out.AddPage()
		page.replay(c)
		stampFooter(c, geo, footer, number, total)
		return out.Error()
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	var buf bytes.Buffer
	if err := out.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	pages := len(e.pager.pages)
	r.log.Debug().
		Int("pages", pages).
		Int("bytes", buf.Len()).
		Str("number", footer.Number).
		Msg("PDF rendered")

	return &Result{Data: buf.Bytes(), Pages: pages}, nil
}

// FooterText returns the right-hand footer string of page i out of n.
func FooterText(number string, i, n int) string {
	return fmt.Sprintf("%s · %d/%d", number, i, n)
}

func stampFooter(c *canvas, geo Geometry, footer FooterInfo, number, total int) {
	c.pdf.SetFont(family, "", footerSize)
	c.pdf.SetTextColor(theme.Grey.R, theme.Grey.G, theme.Grey.B)
	y := geo.FooterY()

	c.pdf.Text(geo.Left, y, c.tr(footer.Entity))

	right := c.tr(FooterText(footer.Number, number, total))
	c.pdf.Text(geo.PageWidth-geo.Right-c.pdf.GetStringWidth(right), y, right)
}
