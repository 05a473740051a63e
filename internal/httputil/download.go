// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP download helper used to call the
// Elsevier APIs.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// AcceptJSON is the Accept header value for JSON views.
const AcceptJSON = "application/json"

// maxErrorBody caps how much of a failed response body is kept in a StatusError.
const maxErrorBody = 512

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	StatusCode int
	URL        string
	// Body is the start of the response body, which usually holds the
	// service-error message.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, e.Body)
	}
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Downloader issues authenticated GET requests. It does not retry; a failed
// call is returned to the caller as is.
type Downloader struct {
	// Client performs the requests. Nil means http.DefaultClient.
	Client *http.Client

	// APIKey is sent as X-ELS-APIKey when set.
	APIKey string

	// InstToken is sent as X-ELS-Insttoken when set.
	InstToken string

	// UserAgent is sent as User-Agent when set.
	UserAgent string
}

// Get fetches endpoint with params encoded as the query string and returns
// the full response body. Repeated values in params become repeated query
// parameters. A non-2xx response is returned as a *StatusError.
func (d *Downloader) Get(ctx context.Context, endpoint string, params url.Values, accept string) ([]byte, error) {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}
	if d.APIKey != "" {
		req.Header.Set("X-ELS-APIKey", d.APIKey)
	}
	if d.InstToken != "" {
		req.Header.Set("X-ELS-Insttoken", d.InstToken)
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			Body:       string(snippet),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
