// Package fetch downloads task attachments over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"famorg/internal/common"
)

const defaultMaxBytes = 20 << 20 // 20 MiB

type Client struct {
	http     *http.Client
	maxBytes int64
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithMaxBytes(n int64) Option {
	return func(c *Client) { c.maxBytes = n }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get downloads url and returns the body and the response Content-Type.
func (c *Client) Get(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", common.WrapError(err, fmt.Sprintf("build request for %s", url))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", common.WrapError(err, fmt.Sprintf("fetch %s", url))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", fmt.Errorf("fetch %s: %w", url, common.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, "", common.WrapError(err, fmt.Sprintf("read body of %s", url))
	}
	if int64(len(body)) > c.maxBytes {
		return nil, "", fmt.Errorf("fetch %s: body exceeds %d bytes: %w", url, c.maxBytes, common.ErrInvalidInput)
	}

	return body, resp.Header.Get("Content-Type"), nil
}
