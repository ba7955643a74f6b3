package apiclient

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// Option configures a wrapper.
type Option func(*options)

type options struct {
	client      *http.Client
	tokenSource oauth2.TokenSource
	userAgent   string
}

// WithHTTPClient sets the HTTP client. Defaults to http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithTokenSource authenticates every request with a bearer token from ts.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(o *options) {
		o.tokenSource = ts
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

func buildClient(opts ...Option) (*http.Client, string) {
	o := &options{client: http.DefaultClient}
	for _, opt := range opts {
		opt(o)
	}
	if o.tokenSource == nil {
		return o.client, o.userAgent
	}
	// oauth2.NewClient picks the base transport from the context.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, o.client)
	return oauth2.NewClient(ctx, o.tokenSource), o.userAgent
}
