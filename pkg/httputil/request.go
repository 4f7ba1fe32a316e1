package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RequestConfig holds configuration for outbound HTTP requests.
type RequestConfig struct {
	Headers        map[string][]string
	Method         string
	URL            string
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	RetryEnabled   bool
}

// DefaultRequestConfig returns a RequestConfig with sensible defaults.
// Retries are off by default; callers opting in get exponential backoff.
func DefaultRequestConfig(method, url string) RequestConfig {
	return RequestConfig{
		Method:         method,
		URL:            url,
		Timeout:        5 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
	}
}

// Response is an HTTP response with its body fully read.
type Response struct {
	Headers    http.Header
	Body       []byte
	StatusCode int
}

// Request performs an HTTP request. The payload may be nil, a []byte, a
// string, or any JSON-marshalable value. Non-2xx responses are returned
// alongside an error so callers can inspect the body.
func Request(ctx context.Context, config RequestConfig, payload interface{}) (*Response, error) {
	var reqBody io.Reader
	if payload != nil {
		var payloadBytes []byte
		var err error

		switch v := payload.(type) {
		case []byte:
			payloadBytes = v
		case string:
			payloadBytes = []byte(v)
		default:
			payloadBytes, err = json.Marshal(payload)
			if err != nil {
				return nil, fmt.Errorf("marshal payload: %w", err)
			}
		}
		reqBody = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, config.Method, config.URL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for key, values := range config.Headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if reqBody != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: config.Timeout}

	var response *Response
	operation := func() error {
		resp, opErr := client.Do(req)
		if opErr != nil {
			return fmt.Errorf("request failed: %w", opErr)
		}
		defer resp.Body.Close()

		body, opErr := io.ReadAll(resp.Body)
		if opErr != nil {
			return fmt.Errorf("read response body: %w", opErr)
		}

		response = &Response{
			StatusCode: resp.StatusCode,
			Body:       body,
			Headers:    resp.Header,
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
		}
		return nil
	}

	if config.RetryEnabled {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = config.InitialBackoff
		b.MaxInterval = config.MaxBackoff
		b.MaxElapsedTime = time.Duration(config.MaxRetries) * config.MaxBackoff
		err = backoff.Retry(operation, backoff.WithContext(b, ctx))
	} else {
		err = operation()
	}

	if err != nil {
		return response, err
	}
	return response, nil
}
