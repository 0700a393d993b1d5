// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

// defaultHTTPClient is the package-level HTTP client used by server commands.
// Overridden in tests via httptest.
var defaultHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
}

// apiClient provides HTTP access to a running COTSense server.
type apiClient struct {
	baseURL string
	http    *http.Client
}

// newAPIClient creates a client targeting the given host:port address.
func newAPIClient(addr string) *apiClient {
	return &apiClient{
		baseURL: "http://" + addr,
		http:    defaultHTTPClient,
	}
}

// getJSON performs a GET request and decodes the JSON response into dest.
func (c *apiClient) getJSON(path string, dest any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		if isDialError(err) {
			return cotserr.Errorf(cotserr.CodeCLIServerNotRunning, "server is not running (connection refused)")
		}
		return cotserr.Errorf(cotserr.CodeCLIRequestFailure, "request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeResponse(resp, dest)
}

// postJSON performs a POST request with a JSON body and decodes the JSON
// response into dest.
func (c *apiClient) postJSON(path string, body, dest any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return cotserr.Errorf(cotserr.CodeCLIRequestFailure, "encoding request: %w", err)
	}

	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		if isDialError(err) {
			return cotserr.Errorf(cotserr.CodeCLIServerNotRunning, "server is not running (connection refused)")
		}
		return cotserr.Errorf(cotserr.CodeCLIRequestFailure, "request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeResponse(resp, dest)
}

// postRaw performs a POST request with an arbitrary body and content type.
func (c *apiClient) postRaw(path, contentType string, body io.Reader, dest any) error {
	resp, err := c.http.Post(c.baseURL+path, contentType, body)
	if err != nil {
		if isDialError(err) {
			return cotserr.Errorf(cotserr.CodeCLIServerNotRunning, "server is not running (connection refused)")
		}
		return cotserr.Errorf(cotserr.CodeCLIRequestFailure, "request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeResponse(resp, dest)
}

func decodeResponse(resp *http.Response, dest any) error {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return cotserr.Errorf(cotserr.CodeCLIRequestFailure, "server returned status %d: %s",
			resp.StatusCode, apiErrorDetail(body))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return cotserr.Errorf(cotserr.CodeCLIResponseInvalid, "invalid response: %w", err)
	}
	return nil
}

// apiErrorDetail extracts the detail field from a problem+json error body,
// falling back to the raw body.
func apiErrorDetail(body []byte) string {
	var problem struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &problem); err == nil && problem.Detail != "" {
		return problem.Detail
	}
	return string(body)
}

// isDialError returns true if err is a net dial error (connection refused, etc.).
func isDialError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return false
}
