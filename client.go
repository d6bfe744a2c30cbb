// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

// Package githubkit is a typed client for the GitHub REST API for
// code that authenticates as a GitHub App.
//
// The [Client] exchanges the app's private key for short lived
// installation access tokens via signed JWTs and caches them per
// installation. Typed actions like [Client.CreateCheckRun] obtain a
// valid token transparently on every call. The [Transport] exposes the
// same token cache as an [net/http.RoundTripper] for use with other
// GitHub SDKs.
package githubkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/hubforge/githubkit/internal/api"
)

// Client performs authenticated operations against the GitHub API on
// behalf of a GitHub App. It is safe for concurrent use.
type Client struct {
	creds   *Credentials      // app identity
	baseURL *url.URL          // REST API v3 base URL
	ua      string            // user agent
	next    http.RoundTripper // underlying round tripper
	timeout time.Duration     // per request timeout
	margin  time.Duration     // token refresh safety margin
	now     func() time.Time  // injected clock

	mu     sync.Mutex
	jwt    AppJWT                       // app-wide JWT, reused across installations
	tokens map[uint64]InstallationToken // installation id -> live token
}

// New returns a [Client] authenticating with the given credentials.
//
// The client holds an in-memory, process-lifetime token cache. Cached
// entries are replaced whole on refresh, a reader always observes
// either the previous valid token or the fully formed new one.
func New(creds *Credentials, opts ...Option) (*Client, error) {
	if creds == nil {
		return nil, errors.New("githubkit: no credentials provided")
	}

	c := &Client{
		creds:   creds,
		timeout: time.Minute,
		margin:  time.Minute,
		now:     time.Now,
		tokens:  make(map[uint64]InstallationToken),
	}

	var err error
	for i := range opts {
		if opts[i] != nil {
			err = errors.Join(err, opts[i].apply(c))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("githubkit: invalid options: %w", err)
	}

	if c.next == nil {
		c.next = http.DefaultTransport
	}

	if c.ua == "" {
		c.ua = api.UAHeaderValue
	}

	if c.baseURL == nil {
		c.baseURL, _ = url.Parse(api.DefaultEndpoint)
	}

	return c, nil
}

// AppID returns the GitHub app id.
func (c *Client) AppID() uint64 {
	return c.creds.AppID()
}

// Endpoint returns the REST API endpoint the client is configured for.
func (c *Client) Endpoint() string {
	return c.baseURL.String()
}

// httpClient returns a [http.Client] over the configured round tripper.
func (c *Client) httpClient() *http.Client {
	return &http.Client{
		Transport: c.next,
		Timeout:   c.timeout,
	}
}

// appJWT returns the cached app JWT, minting a new one when the cached
// value has less than a minute of life left. The JWT asserts the app's
// identity and is shared across installations.
func (c *Client) appJWT() (AppJWT, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.jwt.validFor(c.now(), time.Minute) {
		return c.jwt, nil
	}

	bearer, err := mintJWT(c.creds, c.now())
	if err != nil {
		return AppJWT{}, err
	}
	c.jwt = bearer
	return bearer, nil
}

// Token returns a valid installation access token for the given
// installation, transparently requesting a new one from GitHub when
// none is cached or the cached one is within the refresh margin of
// expiry.
//
// Failures are returned as [*AuthError] and are not retried, retry
// policy belongs to the caller. A failed refresh never disturbs a
// previously cached entry.
func (c *Client) Token(ctx context.Context, installationID uint64) (InstallationToken, error) {
	if installationID == 0 {
		return InstallationToken{},
			&AuthError{err: errors.New("installation id cannot be zero")}
	}

	c.mu.Lock()
	cached, ok := c.tokens[installationID]
	c.mu.Unlock()
	if ok && cached.validFor(c.now(), c.margin) {
		return cached, nil
	}

	// The exchange happens outside the lock. Concurrent callers missing
	// the cache may both mint a token, the extra token is valid and
	// harmless and the cache keeps whichever write lands last.
	token, err := c.exchangeToken(ctx, installationID)
	if err != nil {
		return InstallationToken{}, err
	}

	c.mu.Lock()
	c.tokens[installationID] = token
	c.mu.Unlock()

	return token, nil
}

// evict removes the cached token for the installation, but only when it
// still holds the token the caller observed failing. A concurrently
// refreshed entry stays.
func (c *Client) evict(installationID uint64, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.tokens[installationID]; ok && cached.Token == token {
		delete(c.tokens, installationID)
	}
}

// exchangeToken trades the app JWT for a new installation access token.
func (c *Client) exchangeToken(ctx context.Context, installationID uint64) (InstallationToken, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	bearer, err := c.appJWT()
	if err != nil {
		return InstallationToken{}, &AuthError{err: err}
	}

	u := c.baseURL.JoinPath(
		"app", "installations",
		strconv.FormatUint(installationID, 10),
		"access_tokens")

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return InstallationToken{},
			&AuthError{err: fmt.Errorf("failed to build token request: %w", err)}
	}

	r.Header.Set(api.AcceptHeader, api.AcceptHeaderValue)
	r.Header.Set(api.VersionHeader, api.VersionHeaderValue)
	r.Header.Set(api.UAHeader, c.ua)
	r.Header.Set(api.AuthzHeader, api.AuthzHeaderValue(bearer.Token))

	resp, err := c.httpClient().Do(r)
	if err != nil {
		return InstallationToken{},
			&AuthError{err: fmt.Errorf("token request failed: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return InstallationToken{},
			&AuthError{err: fmt.Errorf("failed to read token response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Try to decode the error message if possible.
		// GitHub API error response JSON is inconsistent.
		errResp := &api.ErrorResponse{}
		if err = json.Unmarshal(data, errResp); err == nil && errResp.Message != "" {
			return InstallationToken{},
				&AuthError{Status: resp.StatusCode, err: errors.New(errResp.Message)}
		}
		return InstallationToken{},
			&AuthError{Status: resp.StatusCode, err: errors.New(resp.Status)}
	}

	tokenResp := api.InstallationTokenResponse{}
	if err = json.Unmarshal(data, &tokenResp); err != nil {
		return InstallationToken{},
			&AuthError{err: fmt.Errorf("%w: %w", ErrInvalidResponse, err)}
	}

	if tokenResp.Token == "" || tokenResp.Exp == nil {
		return InstallationToken{},
			&AuthError{err: fmt.Errorf("%w: missing token or expiry", ErrInvalidResponse)}
	}

	token := InstallationToken{
		Token:          tokenResp.Token,
		InstallationID: installationID,
		AppID:          c.creds.AppID(),
		Server:         c.baseURL.String(),
		Exp:            tokenResp.Exp.Time,
		Permissions:    tokenResp.Permissions,
	}

	if len(tokenResp.Repositories) > 0 {
		token.Repositories = make([]string, 0, len(tokenResp.Repositories))
		for _, item := range tokenResp.Repositories {
			if item != nil && item.Name != nil {
				token.Repositories = append(token.Repositories, *item.Name)
			}
		}
	}

	return token, nil
}
