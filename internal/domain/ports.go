package domain

import "context"

// FetchRequest describes a single HTTP probe request.
type FetchRequest struct {
	URL string
	// Body, when non-empty, is sent as a POST request body.
	Body string
	// ContentType is the Content-Type header sent with Body.
	ContentType string
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// FetchResponse is what the HTTP collaborator hands back to the core.
type FetchResponse struct {
	StatusCode  int
	StatusLine  string
	ContentType string
	Headers     map[string]string
	Body        []byte
}

// Fetcher performs the single outbound HTTP request of a probe run.
// The context carries the configured deadline.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (*FetchResponse, error)
}

// DocumentParser turns a raw response body into a generic document tree of
// nested map[string]any / []any / scalar values.
type DocumentParser interface {
	Parse(body []byte) (any, error)
}

// CheckLoader reads a check definition from a file.
type CheckLoader interface {
	Load(path string) (CheckDefinition, error)
}
