package document

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/internal/asset"
	"docgen/pkg/models"
)

var fixedNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

type stubFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *stubFetcher) Fetch(context.Context, string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func newTestService(fetcher asset.Fetcher, opts ...Option) *Service {
	return NewService(fetcher, append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func sample() *models.Document {
	doc := models.ExampleDocument(fixedNow)
	doc.Number = ""
	return &doc
}

func TestGenerateQuotePDF(t *testing.T) {
	svc := newTestService(nil)
	doc := sample()

	out, err := svc.GenerateQuotePDF(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", out.ContentType)
	assert.True(t, bytes.HasPrefix(out.Data, []byte("%PDF")))
	assert.Equal(t, 1, out.Pages)
	assert.True(t, strings.HasPrefix(out.Number, "D-2026-"), out.Number)
	assert.Equal(t, "quote_"+out.Number+"_blue.pdf", out.Filename)
	assert.Equal(t, "5458.80", out.Totals.Due.StringFixed(2))

	assert.Empty(t, doc.Number, "caller's document must not be modified")
}

func TestGenerateDoesNotTouchCallerItems(t *testing.T) {
	doc := sample()
	doc.Items[0].Quantity = 0

	_, err := newTestService(nil).GenerateQuoteHTML(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Items[0].Quantity)
}

func TestGenerateInvoiceHTML(t *testing.T) {
	doc := sample()
	doc.Theme = "vert"

	out, err := newTestService(nil).GenerateInvoiceHTML(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "text/html; charset=utf-8", out.ContentType)
	assert.True(t, strings.HasPrefix(out.Number, "F-2026-"), out.Number)
	assert.Equal(t, "invoice_"+out.Number+"_green.html", out.Filename)
	assert.Contains(t, string(out.Data), "INVOICE")
	assert.Contains(t, string(out.Data), "Pending")
}

func TestGenerateDispatch(t *testing.T) {
	svc := newTestService(nil)

	tests := []struct {
		name     string
		kind     models.Kind
		format   models.Format
		prefix   string
		suffix   string
		wantType string
	}{
		{"default is pdf quote", "", "", "quote_", ".pdf", "application/pdf"},
		{"invoice html any case", models.KindInvoice, "HTML", "invoice_", ".html", "text/html; charset=utf-8"},
		{"unknown kind is a quote", "receipt", models.FormatPDF, "quote_", ".pdf", "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sample()
			doc.Kind = tt.kind
			doc.Format = tt.format

			out, err := svc.Generate(context.Background(), doc)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out.Filename, tt.prefix), out.Filename)
			assert.True(t, strings.HasSuffix(out.Filename, tt.suffix), out.Filename)
			assert.Equal(t, tt.wantType, out.ContentType)
		})
	}
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	doc := sample()
	doc.Format = "docx"

	_, err := newTestService(nil).Generate(context.Background(), doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "Generate", genErr.Op)
}

func TestGenerateWithoutItems(t *testing.T) {
	doc := sample()
	doc.Items = nil
	doc.Customer.Name = ""

	out, err := newTestService(nil).GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Pages)
	assert.Empty(t, out.Totals.Items)
	assert.Equal(t, "0.00", out.Totals.PreTax.StringFixed(2))
	assert.Equal(t, "0.00", out.Totals.Due.StringFixed(2))
	assert.True(t, bytes.HasPrefix(out.Data, []byte("%PDF")))
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService(nil).GenerateQuotePDF(ctx, sample())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateLogoFallback(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	doc := sample()
	doc.LogoURL = "https://example.invalid/logo.png"

	out, err := newTestService(fetcher).GenerateQuotePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
	assert.NotContains(t, string(out.Data), "/Subtype /Image")
}

func TestGenerateWithFetchedLogo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 80, 40))))
	fetcher := &stubFetcher{data: buf.Bytes()}
	doc := sample()
	doc.LogoURL = "https://example.com/logo.png"

	out, err := newTestService(fetcher).GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.Contains(t, string(out.Data), "/Subtype /Image")
}

func TestGenerateWithTruncatedLogo(t *testing.T) {
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, image.NewGray(image.Rect(0, 0, 80, 40))))

	paletted := image.NewPaletted(image.Rect(0, 0, 64, 64), palette.Plan9)
	for i := range paletted.Pix {
		paletted.Pix[i] = uint8(i * 31 % len(palette.Plan9))
	}
	var gifBuf bytes.Buffer
	require.NoError(t, gif.Encode(&gifBuf, paletted, nil))

	tests := []struct {
		name string
		data []byte
	}{
		{"png signature and header", pngBuf.Bytes()[:40]},
		{"gif cut in half", gifBuf.Bytes()[:gifBuf.Len()/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{data: tt.data}
			doc := sample()
			doc.LogoURL = "https://example.com/logo"

			out, err := newTestService(fetcher).GenerateQuotePDF(context.Background(), doc)
			require.NoError(t, err)
			assert.Equal(t, 1, fetcher.calls)
			assert.True(t, bytes.HasPrefix(out.Data, []byte("%PDF")))
			assert.NotContains(t, string(out.Data), "/Subtype /Image")
		})
	}
}

func TestDefaultThemeOption(t *testing.T) {
	doc := sample()
	doc.Theme = ""

	out, err := newTestService(nil, WithDefaultTheme("red")).GenerateQuotePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out.Filename, "_red.pdf"), out.Filename)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice_F-2026-1_black.pdf", Filename(models.KindInvoice, "F/2026 1", "black", models.FormatPDF))
	assert.Equal(t, "quote_D-2026-abc_blue.html", Filename(models.KindQuote, "D-2026-abc", "blue", models.FormatHTML))
}

func TestGenerationErrorWrapping(t *testing.T) {
	assert.Nil(t, WrapGenerationError("op", nil, ""))

	base := NewGenerationError("Inner", ErrRenderFailed, "pdf backend")
	wrapped := WrapGenerationError("Outer", base, "")
	assert.Same(t, base, wrapped)
	assert.ErrorIs(t, wrapped, ErrRenderFailed)
	assert.Equal(t, "document: Inner failed: pdf backend: render failed", wrapped.Error())
}
