// Package http provides the outbound HTTP client used for third-party
// lookup APIs (company discovery search). Idempotent requests are retried
// a couple of times on transient failures before the worker gives up.
package http

import (
	"context"
	"net/http"
	"time"
)

const (
	maxAttempts = 3
	retryDelay  = 500 * time.Millisecond
)

type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do executes the request. Requests without a body are retried on network
// errors and 5xx responses; anything carrying a body is sent exactly once.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		return c.httpClient.Do(req)
	}

	var resp *http.Response
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err = c.httpClient.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}
		if attempt == maxAttempts {
			break
		}
		if resp != nil {
			resp.Body.Close()
		}
		select {
		case <-time.After(retryDelay):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}
	return resp, err
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.Do(req.WithContext(ctx))
}
