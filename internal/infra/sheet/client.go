package sheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

// ErrBadStatus is returned when the sheet server answers with a non-2xx status.
var ErrBadStatus = errors.New("unexpected response status")

// Published spreadsheets answer with a redirect to the CSV export.
const maxRedirects = 5

// Client downloads CSV question banks over HTTP.
type Client struct {
	http *fasthttp.Client
}

// NewClient creates a Client whose requests time out after timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &fasthttp.Client{
			Name:                "learning-galaxy",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
	}
}

// Fetch downloads the resource at url and returns its body as text.
// There is no retry: a failure is final for this attempt.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := c.http.DoRedirects(req, resp, maxRedirects); err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return "", fmt.Errorf("fetch %s: %w: %d", url, ErrBadStatus, code)
	}

	// The caller may have given up while the request was in flight.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return string(resp.Body()), nil
}
