// Package client is a thin convenience wrapper around the server's URL and
// JSON conventions. It adds nothing of its own: every method maps
// mechanically onto one REST call.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/easydb/easydb/pkg/httputil"
	"github.com/easydb/easydb/pkg/rest"
)

// Client talks to one EasyDB server.
type Client struct {
	baseURL string
	// Retry enables exponential-backoff retries on failed requests.
	Retry bool
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

func (c *Client) request(ctx context.Context, method, rawURL string, payload any) ([]byte, error) {
	cfg := httputil.DefaultRequestConfig(method, rawURL)
	cfg.RetryEnabled = c.Retry

	resp, err := httputil.Request(ctx, cfg, payload)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", rest.ErrNotFound, resp.Body)
		}
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) tableURL(table string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(table))
}

func (c *Client) recordURL(table string, id int64) string {
	return fmt.Sprintf("%s/%s/%d", c.baseURL, url.PathEscape(table), id)
}

// List fetches records from table. params may carry column filters plus
// the reserved _sort and _order parameters; nil means no filtering.
func (c *Client) List(ctx context.Context, table string, params map[string]string) ([]map[string]any, error) {
	rawURL := c.tableURL(table)
	if len(params) > 0 {
		values := url.Values{}
		for k, v := range params {
			values.Set(k, v)
		}
		rawURL += "?" + values.Encode()
	}

	body, err := c.request(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return records, nil
}

// Create inserts a record into table.
func (c *Client) Create(ctx context.Context, table string, record map[string]any) error {
	_, err := c.request(ctx, http.MethodPost, c.tableURL(table), record)
	return err
}

// Update changes the given fields of the record with this id.
func (c *Client) Update(ctx context.Context, table string, id int64, fields map[string]any) error {
	_, err := c.request(ctx, http.MethodPut, c.recordURL(table, id), fields)
	return err
}

// Delete removes the record with this id.
func (c *Client) Delete(ctx context.Context, table string, id int64) error {
	_, err := c.request(ctx, http.MethodDelete, c.recordURL(table, id), nil)
	return err
}
