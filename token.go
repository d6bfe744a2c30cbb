// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hubforge/githubkit/internal/api"
)

var (
	_ slog.LogValuer = (*InstallationToken)(nil)
)

// InstallationToken is an installation access token from GitHub, scoped
// to a single installation of the app.
//
// Tokens are immutable. When one expires a new token replaces it, the
// old value is never patched in place.
type InstallationToken struct {
	// Installation access token. Typically starts with "ghs_".
	Token string `json:"token" yaml:"token"`

	// Installation ID the token is scoped to.
	InstallationID uint64 `json:"installation_id,omitempty" yaml:"installationID,omitempty"`

	// GitHub app ID.
	AppID uint64 `json:"app_id,omitempty" yaml:"appID,omitempty"`

	// GitHub API endpoint the token was issued by. Also used for
	// token revocation.
	Server string `json:"server,omitempty" yaml:"server,omitempty"`

	// Token expiry time.
	Exp time.Time `json:"exp,omitempty" yaml:"exp,omitempty"`

	// Permissions granted to the token. Empty when the response omits
	// them, in which case the token carries all installation permissions.
	Permissions map[string]string `json:"permissions,omitempty" yaml:"permissions,omitempty"`

	// Repositories accessible with the token. Empty when the token has
	// access to all repositories of the installation.
	Repositories []string `json:"repositories,omitempty" yaml:"repositories,omitempty"`
}

// LogValue implements [log/slog.LogValuer].
func (t InstallationToken) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("installation_id", t.InstallationID),
		slog.Uint64("app_id", t.AppID),
		slog.String("server", t.Server),
		slog.Time("exp", t.Exp),
		slog.Any("permissions", t.Permissions),
		slog.Any("repositories", t.Repositories),
		slog.String("token", "REDACTED"),
	)
}

// IsValid checks if [InstallationToken] is valid for at-least 60 seconds.
func (t InstallationToken) IsValid() bool {
	return t.validFor(time.Now(), time.Minute)
}

func (t InstallationToken) validFor(now time.Time, margin time.Duration) bool {
	return t.Token != "" && t.Exp.After(now.Add(margin))
}

// Revoke revokes the installation access token. A revoked token cannot
// be un-revoked; obtain a fresh one from the client instead.
func (t *InstallationToken) Revoke(ctx context.Context) error {
	return t.revoke(ctx, nil)
}

// revoke is internal version of Revoke which supports custom round
// tripper for testing and customization.
func (t *InstallationToken) revoke(ctx context.Context, rt http.RoundTripper) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if !t.IsValid() {
		return fmt.Errorf("githubkit: cannot revoke already invalid token")
	}

	server := t.Server
	if server == "" {
		server = api.DefaultEndpoint
	}

	u, err := url.Parse(server)
	if err != nil {
		return fmt.Errorf("githubkit: failed to revoke token - invalid server url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("githubkit: failed to revoke token - invalid url scheme: %s (%s)",
			u.Scheme, server)
	}

	if u.Fragment != "" || u.RawQuery != "" {
		return fmt.Errorf("githubkit: failed to revoke token - server url cannot have fragments or queries: %s",
			server)
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		u.JoinPath("installation", "token").String(), nil)
	if err != nil {
		return fmt.Errorf("githubkit: failed to revoke token - failed to build request: %w", err)
	}

	r.Header.Set(api.VersionHeader, api.VersionHeaderValue)
	r.Header.Set(api.AuthzHeader, api.AuthzHeaderValue(t.Token))
	r.Header.Set(api.AcceptHeader, api.AcceptHeaderValue)
	r.Header.Set(api.UAHeader, api.UAHeaderValue)

	client := http.Client{
		Timeout: time.Minute,
	}
	if rt != nil {
		client.Transport = rt
	}

	resp, err := client.Do(r)
	if err != nil {
		return fmt.Errorf("githubkit: failed to revoke token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("githubkit: failed to revoke token, expected(204) but got %s", resp.Status)
	}

	// Successfully revoked, mark the local copy expired.
	t.Exp = time.Now()

	return nil
}
