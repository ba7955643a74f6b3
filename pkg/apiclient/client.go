package apiclient

import (
	"context"
	"net/http"
)

// endpoint issues single requests against a fixed base URI. Paths are
// appended to the base as is, so the base normally ends with "/".
type endpoint struct {
	client    *http.Client
	base      string
	userAgent string
}

func newEndpoint(base string, opts ...Option) endpoint {
	client, ua := buildClient(opts...)
	return endpoint{client: client, base: base, userAgent: ua}
}

func (e endpoint) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, e.base+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}
	return e.client.Do(req)
}
