// Package httpfetch is the HTTP collaborator of the probe: it performs the
// single outbound request of a run and hands body, status, and headers back
// to the core.
package httpfetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yifangd/check-json/internal/domain"
)

// maxBodyBytes caps the response body read. Monitoring endpoints answer
// with small documents; anything larger is a misconfigured target.
const maxBodyBytes = 1 << 20

// Fetcher implements domain.Fetcher with net/http.
type Fetcher struct{}

// New creates a Fetcher.
func New() *Fetcher { return &Fetcher{} }

// Fetch performs the request. GET without a body, POST with one. The
// context deadline bounds the whole exchange. Transport failures and
// non-2xx answers come back as KindFetch errors.
func (f *Fetcher) Fetch(ctx context.Context, req domain.FetchRequest) (*domain.FetchResponse, error) {
	httpReq, err := buildRequest(ctx, req)
	if err != nil {
		return nil, domain.NewFetchError(err)
	}

	client := &http.Client{Transport: transport(req.InsecureSkipVerify)}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, domain.NewFetchError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewFetchError(fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewFetchError(fmt.Errorf("HTTP %s", resp.Status))
	}

	headers := make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		headers[name] = resp.Header.Get(name)
	}

	return &domain.FetchResponse{
		StatusCode:  resp.StatusCode,
		StatusLine:  resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		Headers:     headers,
		Body:        body,
	}, nil
}

func buildRequest(ctx context.Context, req domain.FetchRequest) (*http.Request, error) {
	if req.Body == "" {
		return http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, strings.NewReader(req.Body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", req.ContentType)
	return httpReq, nil
}

func transport(insecure bool) http.RoundTripper {
	if !insecure {
		return http.DefaultTransport
	}
	return &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
}
