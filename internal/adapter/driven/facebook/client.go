// Package facebook implements the PageReader and PageWriter ports against
// the Facebook Graph API.
package facebook

import (
	"context"
	"fmt"
	"time"

	"github.com/gregjones/httpcache"
	"resty.dev/v3"

	"pagepilot/internal/domain/port/driven"
	"pagepilot/internal/redact"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.PageReader = (*Client)(nil)
	_ driven.PageWriter = (*Client)(nil)
)

const requestTimeout = 30 * time.Second

// Client implements the PageReader and PageWriter ports using the Graph
// API. Reads go through an in-memory ETag caching transport so unchanged
// feeds and comment lists cost a conditional request.
type Client struct {
	http *resty.Client
}

// NewClient creates a Graph API client for the given access token and API
// version (e.g. "v20.0"). The token rides along as a query parameter on
// every request, as the Graph API expects.
func NewClient(accessToken, apiVersion string) *Client {
	c := resty.NewWithClient(httpcache.NewMemoryCacheTransport().Client())
	c.SetBaseURL("https://graph.facebook.com/" + apiVersion)
	c.SetTimeout(requestTimeout)
	c.SetQueryParam("access_token", accessToken)

	return &Client{http: c}
}

// NewClientWithBaseURL creates a Client against an arbitrary base URL.
// Intended for tests, allowing injection of an httptest server.
func NewClientWithBaseURL(baseURL, accessToken string) *Client {
	c := resty.New()
	c.SetBaseURL(baseURL)
	c.SetTimeout(requestTimeout)
	c.SetQueryParam("access_token", accessToken)

	return &Client{http: c}
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.http.R().WithContext(ctx)
}

// apiError builds an error for a non-2xx Graph response. The body and any
// embedded URL are redacted so access tokens never reach the logs.
func apiError(op string, res *resty.Response) error {
	return fmt.Errorf("graph api %s: status %d: %s", op, res.StatusCode(), redact.Tokens(res.String()))
}
