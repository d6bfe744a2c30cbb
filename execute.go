// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hubforge/githubkit/internal/api"
)

// Get performs an authenticated GET against a resource endpoint and
// decodes the JSON response into T.
func Get[T any](ctx context.Context, c *Client, installationID uint64, path string) (T, error) {
	return Execute[T](ctx, c, installationID, http.MethodGet, path, nil)
}

// Post performs an authenticated POST with a JSON body against a
// resource endpoint and decodes the JSON response into T.
func Post[T any](ctx context.Context, c *Client, installationID uint64, path string, body any) (T, error) {
	return Execute[T](ctx, c, installationID, http.MethodPost, path, body)
}

// Patch performs an authenticated PATCH with a JSON body against a
// resource endpoint and decodes the JSON response into T.
func Patch[T any](ctx context.Context, c *Client, installationID uint64, path string, body any) (T, error) {
	return Execute[T](ctx, c, installationID, http.MethodPatch, path, body)
}

// Execute performs an authenticated request against a resource endpoint
// and decodes the JSON response into T.
//
// A valid installation token is obtained through the token cache before
// every call, tokens are never reused across calls without
// re-validation. Token failures surface as [*AuthError], non 2xx
// responses as [*APIError] and body shape mismatches as [*DecodeError].
// Nothing is retried.
func Execute[T any](ctx context.Context, c *Client, installationID uint64, method, path string, body any) (T, error) {
	var zero T

	token, err := c.Token(ctx, installationID)
	if err != nil {
		return zero, err
	}

	data, err := c.do(ctx, method, path, token.Token, body)
	if err != nil {
		// A rejected token will not become acceptable again, drop it
		// from the cache so the next call refreshes.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			c.evict(installationID, token.Token)
		}
		return zero, err
	}

	var v T
	if err = json.Unmarshal(data, &v); err != nil {
		return zero, &DecodeError{err: err}
	}
	return v, nil
}

// do performs a single request with the given bearer token and returns
// the response body. Non 2xx responses are returned as [*APIError].
func (c *Client) do(ctx context.Context, method, path, bearer string, body any) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("githubkit: failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL.JoinPath(strings.TrimPrefix(path, "/"))
	r, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("githubkit: failed to build request: %w", err)
	}

	r.Header.Set(api.AcceptHeader, api.AcceptHeaderValue)
	r.Header.Set(api.VersionHeader, api.VersionHeaderValue)
	r.Header.Set(api.UAHeader, c.ua)
	r.Header.Set(api.AuthzHeader, api.AuthzHeaderValue(bearer))
	if body != nil {
		r.Header.Set(api.ContentTypeHeader, api.ContentTypeJSON)
	}

	resp, err := c.httpClient().Do(r)
	if err != nil {
		return nil, fmt.Errorf("githubkit: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("githubkit: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}

	return data, nil
}

// newAPIError builds an [*APIError] from a non 2xx response body,
// decoding GitHub's error envelope when possible.
func newAPIError(status int, data []byte) *APIError {
	errResp := &api.ErrorResponse{}
	if err := json.Unmarshal(data, errResp); err == nil {
		return &APIError{
			Status:           status,
			Message:          errResp.Message,
			DocumentationURL: errResp.DocumentationURL,
		}
	}
	return &APIError{Status: status}
}
