// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hubforge/githubkit/internal/api"
)

// App is a GitHub App: an integration identity with its own id and
// private key, distinct from any personal account.
type App struct {
	// Unique id of the app.
	ID int64 `json:"id"`

	// URL-safe name of the app.
	Slug string `json:"slug,omitempty"`

	// Display name of the app.
	Name string `json:"name,omitempty"`

	// Account that owns the app.
	Owner Account `json:"owner"`

	// Permissions the app requests.
	Permissions map[string]string `json:"permissions,omitempty"`

	// Webhook events the app subscribes to.
	Events []string `json:"events,omitempty"`
}

// Installation is a binding of a GitHub App to a specific account's
// repositories. Its id is what the app exchanges for installation
// access tokens.
type Installation struct {
	// Unique id of the installation.
	ID int64 `json:"id"`

	// Id of the installed app.
	AppID int64 `json:"app_id,omitempty"`

	// Account the app is installed on.
	Account Account `json:"account"`

	// Permissions granted to the installation. May lag behind the
	// app's requested permissions until the owner approves changes.
	Permissions map[string]string `json:"permissions,omitempty"`

	// Set when the installation has been suspended.
	SuspendedAt *api.Timestamp `json:"suspended_at,omitempty"`
}

// App fetches the authenticated app's own metadata. Authenticates with
// the app JWT, no installation token is involved. Useful to verify the
// app id and private key pair against GitHub.
func (c *Client) App(ctx context.Context) (*App, error) {
	return appGet[*App](ctx, c, "app")
}

// Installation fetches a single installation of the app. Authenticates
// with the app JWT.
func (c *Client) Installation(ctx context.Context, installationID uint64) (*Installation, error) {
	return appGet[*Installation](ctx, c, "app/installations/"+
		strconv.FormatUint(installationID, 10))
}

// appGet performs a JWT-authenticated GET against an app-level endpoint
// and decodes the JSON response into T.
func appGet[T any](ctx context.Context, c *Client, path string) (T, error) {
	var zero T

	bearer, err := c.appJWT()
	if err != nil {
		return zero, err
	}

	data, err := c.do(ctx, http.MethodGet, path, bearer.Token, nil)
	if err != nil {
		return zero, err
	}

	var v T
	if err = json.Unmarshal(data, &v); err != nil {
		return zero, &DecodeError{err: err}
	}
	return v, nil
}
