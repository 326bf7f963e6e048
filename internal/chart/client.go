package chart

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const (
	// DefaultBaseURL is the Yahoo Finance v8 chart endpoint; the ticker is
	// appended as the final path segment.
	DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	// DefaultUserAgent is sent on every request. The endpoint rejects
	// requests that do not look like they come from a browser.
	DefaultUserAgent = "Mozilla/5.0"
	DefaultRange     = "100d"
	DefaultInterval  = "1d"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=chart_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches historical chart data for a ticker.
type Client struct {
	// baseURL is the chart endpoint, without a trailing slash.
	baseURL string
	// httpClient performs the outbound request.
	httpClient HTTPClient
	// header is sent with each request.
	header http.Header
	// chartRange and interval are sent as the range and interval query parameters.
	chartRange string
	interval   string
}

// ClientOption is a configuration option for the chart client.
type ClientOption func(*Client)

// WithBaseURL sets the chart endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for the outbound call.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithUserAgent replaces the default User-Agent.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.header.Set("User-Agent", userAgent)
	}
}

// WithRange sets the range query parameter, e.g. "5d" or "1y".
func WithRange(chartRange string) ClientOption {
	return func(c *Client) {
		c.chartRange = chartRange
	}
}

// WithInterval sets the interval query parameter, e.g. "1h" or "1wk".
func WithInterval(interval string) ClientOption {
	return func(c *Client) {
		c.interval = interval
	}
}

// NewClient creates a chart client. Without options it requests the default
// base URL with range=100d and interval=1d, sends a browser User-Agent and
// sets no client timeout.
func NewClient(options ...ClientOption) (*Client, error) {
	var client = &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		header:     http.Header{},
		chartRange: DefaultRange,
		interval:   DefaultInterval,
	}
	client.header.Set("User-Agent", DefaultUserAgent)
	for _, option := range options {
		option(client)
	}

	u, err := url.Parse(client.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", client.baseURL)
	}
	if client.httpClient == nil {
		return nil, errors.New("http client is nil")
	}
	return client, nil
}
