// Package document runs the generation pipeline for quotes and invoices.
//
// Every entry point shares the same steps:
//   - normalize the caller's data and check required fields;
//   - resolve the theme and the optional logo;
//   - compute totals;
//   - compose blocks;
//   - render them as PDF or HTML.
//
// The caller's document is never modified. A missing or broken logo degrades
// to a title-only header; only rendering failures are fatal.
package document

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"docgen/internal/asset"
	"docgen/internal/compose"
	"docgen/internal/logger"
	"docgen/internal/render"
	"docgen/internal/theme"
	"docgen/internal/totals"
	"docgen/pkg/models"
)

// Output is a generated file.
type Output struct {
	Data        []byte
	ContentType string
	Filename    string

	// Pages is the PDF page count; HTML output is a single flow page.
	Pages int

	// Number is the document number, generated when the input had none.
	Number string
	Totals totals.Totals
}

// Service generates documents.
type Service struct {
	fetcher      asset.Fetcher
	pdf          *render.PDFRenderer
	html         *render.HTMLRenderer
	geometry     render.Geometry
	defaultTheme string
	now          func() time.Time
	log          zerolog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithDefaultTheme sets the theme used when a document names none.
func WithDefaultTheme(id string) Option {
	return func(s *Service) { s.defaultTheme = id }
}

// WithPDFRenderer replaces the PDF backend.
func WithPDFRenderer(r *render.PDFRenderer) Option {
	return func(s *Service) { s.pdf = r }
}

// WithClock sets the time source for generated numbers and dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service. fetcher may be nil, in which case logo URLs are ignored.
func NewService(fetcher asset.Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:      fetcher,
		pdf:          render.NewPDFRenderer(),
		html:         render.NewHTMLRenderer(),
		geometry:     render.A4(),
		defaultTheme: theme.DefaultID,
		now:          time.Now,
		log:          logger.WithComponent("document"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateQuotePDF renders doc as a PDF quote.
func (s *Service) GenerateQuotePDF(ctx context.Context, doc *models.Document) (*Output, error) {
	return s.generate(ctx, "GenerateQuotePDF", doc, models.KindQuote, models.FormatPDF)
}

// GenerateQuoteHTML renders doc as an HTML quote.
func (s *Service) GenerateQuoteHTML(ctx context.Context, doc *models.Document) (*Output, error) {
	return s.generate(ctx, "GenerateQuoteHTML", doc, models.KindQuote, models.FormatHTML)
}

// GenerateInvoicePDF renders doc as a PDF invoice.
func (s *Service) GenerateInvoicePDF(ctx context.Context, doc *models.Document) (*Output, error) {
	return s.generate(ctx, "GenerateInvoicePDF", doc, models.KindInvoice, models.FormatPDF)
}

// GenerateInvoiceHTML renders doc as an HTML invoice.
func (s *Service) GenerateInvoiceHTML(ctx context.Context, doc *models.Document) (*Output, error) {
	return s.generate(ctx, "GenerateInvoiceHTML", doc, models.KindInvoice, models.FormatHTML)
}

// Generate dispatches on doc.Kind and doc.Format. An empty format means PDF.
func (s *Service) Generate(ctx context.Context, doc *models.Document) (*Output, error) {
	const op = "Generate"

	kind := models.KindQuote
	if doc.Kind == models.KindInvoice {
		kind = models.KindInvoice
	}

	format := models.Format(strings.ToLower(strings.TrimSpace(string(doc.Format))))
	if format == "" {
		format = models.FormatPDF
	}

	switch format {
	case models.FormatPDF, models.FormatHTML:
		return s.generate(ctx, op, doc, kind, format)
	default:
		s.log.Warn().Str("format", string(doc.Format)).Msg("Rejected unsupported output format")
		return nil, NewGenerationError(op, ErrUnsupportedFormat, fmt.Sprintf("format %q", doc.Format))
	}
}

func (s *Service) generate(ctx context.Context, op string, in *models.Document, kind models.Kind, format models.Format) (*Output, error) {
	doc := *in
	doc.Items = append([]models.LineItem(nil), in.Items...)
	doc.Kind = kind
	doc.Format = format
	if doc.Theme == "" {
		doc.Theme = s.defaultTheme
	}
	doc.Normalize(s.now())

	log := logger.WithDocument("document", string(doc.Kind), doc.Number)

	if err := ctx.Err(); err != nil {
		return nil, WrapGenerationError(op, err, "canceled before rendering")
	}

	palette := theme.Resolve(doc.Theme)
	logo := asset.Resolve(ctx, s.fetcher, &doc)
	t := totals.Compute(doc.Items)
	blocks := compose.Compose(&doc, t, palette, logo)
	footer := render.FooterInfo{Entity: doc.Supplier.Name, Number: doc.Number}

	out := &Output{
		Filename: Filename(doc.Kind, doc.Number, palette.ID, format),
		Number:   doc.Number,
		Totals:   t,
	}

	start := time.Now()
	switch format {
	case models.FormatHTML:
		data, err := s.html.Render(blocks, footer)
		if err != nil {
			log.Error().Err(err).Msg("HTML rendering failed")
			return nil, WrapGenerationError(op, err, "html backend")
		}
		out.Data = data
		out.ContentType = "text/html; charset=utf-8"
		out.Pages = 1
	default:
		res, err := s.pdf.Render(blocks, s.geometry, footer)
		if err != nil {
			log.Error().Err(err).Msg("PDF rendering failed")
			return nil, WrapGenerationError(op, err, "pdf backend")
		}
		out.Data = res.Data
		out.ContentType = "application/pdf"
		out.Pages = res.Pages
	}

	log.Info().
		Str("theme", palette.ID).
		Str("format", string(format)).
		Int("items", len(doc.Items)).
		Int("pages", out.Pages).
		Bool("logo", logo != nil).
		Str("due", t.Due.StringFixed(2)).
		Dur("duration", time.Since(start)).
		Msg("Document generated")

	return out, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename returns "<kind>_<number>_<theme>.<ext>" with unsafe characters replaced.
func Filename(kind models.Kind, number, themeID string, format models.Format) string {
	ext := "pdf"
	if format == models.FormatHTML {
		ext = "html"
	}
	return fmt.Sprintf("%s_%s_%s.%s", kind, unsafeName.ReplaceAllString(number, "-"), themeID, ext)
}
