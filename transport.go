// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strings"

	"github.com/hubforge/githubkit/internal/api"
)

var (
	_ http.RoundTripper = (*Transport)(nil)
)

// Transport is an [http.RoundTripper] which authenticates every request
// with a valid installation access token from the client's token cache,
// refreshing tokens transparently as they near expiry.
//
// It exists so the library can plug into anything that takes an
// [http.Client], including other GitHub SDKs. When no installation is
// bound (installation id zero), requests are authenticated with the app
// JWT instead, which is only accepted by the small app-level API
// surface.
type Transport struct {
	client         *Client
	installationID uint64
	next           http.RoundTripper
}

// Transport returns an [http.RoundTripper] bound to the given
// installation. The next round tripper handles the authenticated
// request; when nil, [http.DefaultTransport] is used.
func (c *Client) Transport(installationID uint64, next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{
		client:         c,
		installationID: installationID,
		next:           next,
	}
}

// RoundTrip implements [http.RoundTripper].
//
// The request is cloned, never modified in place. 'Authorization' is
// always populated from the token cache; an existing value is replaced.
// Requests to hosts other than the configured endpoint are refused, a
// token must not leak to foreign hosts.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("githubkit(RoundTrip): request is nil")
	}

	if !strings.EqualFold(t.client.baseURL.Host, req.URL.Host) {
		return nil,
			fmt.Errorf("githubkit(RoundTrip): endpoint host(%s) does not match request host(%s)",
				t.client.baseURL.Host, req.URL.Host)
	}

	clone := cloneRequest(req)

	if t.installationID == 0 {
		bearer, err := t.client.appJWT()
		if err != nil {
			return nil, err
		}
		clone.Header.Set(api.AuthzHeader, api.AuthzHeaderValue(bearer.Token))
	} else {
		token, err := t.client.Token(req.Context(), t.installationID)
		if err != nil {
			return nil, err
		}
		clone.Header.Set(api.AuthzHeader, api.AuthzHeaderValue(token.Token))
	}

	if clone.Header.Get(api.UAHeader) == "" {
		clone.Header.Set(api.UAHeader, t.client.ua)
	}

	//nolint:wrapcheck // don't wrap errors returned by underlying round-tripper.
	return t.next.RoundTrip(clone)
}

// cloneRequest returns a clone of the provided *http.Request. The clone
// is a shallow copy of the struct with its own copy of the Header map.
func cloneRequest(r *http.Request) *http.Request {
	clone := new(http.Request)
	*clone = *r
	clone.Header = maps.Clone(r.Header)
	return clone
}
