package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/pkg/models"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func gifBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewPaletted(image.Rect(0, 0, w, h), palette.Plan9)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.SetColorIndex(x, y, uint8((x*7+y*13)%len(palette.Plan9)))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		name         string
		pw, ph       int
		wantW, wantH float64
	}{
		{name: "square fits height cap", pw: 100, ph: 100, wantW: 25, wantH: 25},
		{name: "tall image", pw: 50, ph: 200, wantW: 6.25, wantH: 25},
		{name: "exactly at width cap", pw: 160, ph: 100, wantW: 40, wantH: 25},
		{name: "wide image rescaled by width", pw: 400, ph: 100, wantW: 40, wantH: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.pw, tt.ph)
			assert.InDelta(t, tt.wantW, w, 1e-9)
			assert.InDelta(t, tt.wantH, h, 1e-9)
			assert.LessOrEqual(t, w, MaxWidth)
			assert.LessOrEqual(t, h, MaxHeight)
		})
	}
}

func TestNormalize(t *testing.T) {
	img, ok := Normalize(pngBytes(t, 300, 60))
	require.True(t, ok)
	assert.Equal(t, "png", img.Type)
	assert.Equal(t, "image/png", img.MIMEType())
	assert.Equal(t, 300, img.PixelWidth)
	assert.InDelta(t, 40, img.Width, 1e-9)
	assert.InDelta(t, 8, img.Height, 1e-9)

	_, ok = Normalize([]byte("definitely not an image"))
	assert.False(t, ok)

	_, ok = Normalize(nil)
	assert.False(t, ok)
}

func TestNormalizeTruncatedImages(t *testing.T) {
	full := gifBytes(t, 64, 64)
	img, ok := Normalize(full)
	require.True(t, ok)
	assert.Equal(t, "gif", img.Type)

	tests := []struct {
		name string
		data []byte
	}{
		{"png header only", pngBytes(t, 120, 60)[:40]},
		{"png missing trailer", func() []byte { b := pngBytes(t, 120, 60); return b[:len(b)-20] }()},
		{"gif cut in half", full[:len(full)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, ok := Normalize(tt.data)
			assert.False(t, ok)
			assert.Nil(t, img)
		})
	}
}

func TestHTTPFetcher(t *testing.T) {
	logo := pngBytes(t, 10, 10)
	mux := http.NewServeMux()
	mux.HandleFunc("/logo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(logo)
	})
	mux.HandleFunc("/missing.png", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	fetcher := NewHTTPFetcherWithClient(srv.Client(), 100*time.Millisecond)

	t.Run("success", func(t *testing.T) {
		data, err := fetcher.Fetch(context.Background(), srv.URL+"/logo.png")
		require.NoError(t, err)
		assert.Equal(t, logo, data)
	})

	t.Run("non-success status", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), srv.URL+"/missing.png")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadStatus))
		var assetErr *AssetError
		require.ErrorAs(t, err, &assetErr)
		assert.Equal(t, "Fetch", assetErr.Op)
	})

	t.Run("timeout", func(t *testing.T) {
		start := time.Now()
		_, err := fetcher.Fetch(context.Background(), srv.URL+"/slow.png")
		require.Error(t, err)
		assert.Less(t, time.Since(start), time.Second)
	})
}

type stubFetcher struct {
	data  []byte
	err   error
	calls int
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	logo := pngBytes(t, 120, 60)

	t.Run("fetch failure degrades to no logo", func(t *testing.T) {
		f := &stubFetcher{err: context.DeadlineExceeded}
		doc := &models.Document{LogoURL: "https://example.com/logo.png"}
		assert.Nil(t, Resolve(ctx, f, doc))
		assert.Equal(t, 1, f.calls)
	})

	t.Run("malformed bytes degrade to no logo", func(t *testing.T) {
		f := &stubFetcher{data: []byte("<html>")}
		doc := &models.Document{LogoURL: "https://example.com/logo.png"}
		assert.Nil(t, Resolve(ctx, f, doc))
	})

	t.Run("no reference", func(t *testing.T) {
		f := &stubFetcher{}
		assert.Nil(t, Resolve(ctx, f, &models.Document{}))
		assert.Zero(t, f.calls)
	})

	t.Run("inline bytes win over url", func(t *testing.T) {
		f := &stubFetcher{err: errors.New("must not be called")}
		doc := &models.Document{Logo: logo, LogoURL: "https://example.com/logo.png"}
		img := Resolve(ctx, f, doc)
		require.NotNil(t, img)
		assert.Zero(t, f.calls)
		assert.InDelta(t, 40, img.Width, 1e-9)
		assert.InDelta(t, 20, img.Height, 1e-9)
	})

	t.Run("fetched bytes", func(t *testing.T) {
		f := &stubFetcher{data: logo}
		img := Resolve(ctx, f, &models.Document{LogoURL: "https://example.com/logo.png"})
		require.NotNil(t, img)
		assert.Equal(t, "png", img.Type)
	})
}
