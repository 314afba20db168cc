package asset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPFetcher downloads logos over HTTP with a hard timeout and no retries.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher creates a fetcher bounded by timeout. A non-positive timeout uses DefaultTimeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// NewHTTPFetcherWithClient creates a fetcher with an explicit client (for testing).
func NewHTTPFetcherWithClient(client *http.Client, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{client: client, timeout: timeout}
}

// Fetch performs a single GET of url and returns the body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	const op = "Fetch"

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, WrapAssetError(op, url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, WrapAssetError(op, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, WrapAssetError(op, url, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxLogoBytes+1))
	if err != nil {
		return nil, WrapAssetError(op, url, err)
	}
	if len(data) > MaxLogoBytes {
		return nil, WrapAssetError(op, url, ErrTooLarge)
	}
	return data, nil
}
