// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	_ slog.LogValuer = (*AppJWT)(nil)
)

const (
	// jwtLifetime is the validity of a minted app JWT, measured from its
	// backdated iat claim. GitHub rejects app JWTs valid for more than
	// ten minutes.
	jwtLifetime = 10 * time.Minute

	// jwtClockSkew is subtracted from the current time when setting the
	// iat claim, to tolerate clock drift between this process and
	// GitHub's servers.
	jwtClockSkew = time.Minute
)

// AppJWT is a short lived bearer assertion of the app's identity. It is
// only ever used to request installation access tokens and to access the
// small app-level API surface.
type AppJWT struct {
	// Signed JWT token.
	Token string `json:"token" yaml:"token"`

	// GitHub app ID.
	AppID uint64 `json:"app_id,omitempty" yaml:"appID,omitempty"`

	// Token issue time. Backdated by [jwtClockSkew].
	IssuedAt time.Time `json:"iat,omitempty" yaml:"iat,omitempty"`

	// Token expiry time.
	Exp time.Time `json:"exp,omitempty" yaml:"exp,omitempty"`
}

// LogValue implements [log/slog.LogValuer].
func (t AppJWT) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("app_id", t.AppID),
		slog.Time("iat", t.IssuedAt),
		slog.Time("exp", t.Exp),
		slog.String("token", "REDACTED"),
	)
}

// IsValid checks if [AppJWT] is valid for at-least 60 seconds.
func (t AppJWT) IsValid() bool {
	return t.validFor(time.Now(), time.Minute)
}

func (t AppJWT) validFor(now time.Time, margin time.Duration) bool {
	return t.Token != "" && t.IssuedAt.Before(now) && t.Exp.After(now.Add(margin))
}

// mintJWT signs a new app JWT with RS256.
//
// The iat claim is backdated by [jwtClockSkew] and exp is exactly
// [jwtLifetime] after iat, which keeps the token inside GitHub's ten
// minute cap even when clocks disagree. Timestamps are truncated to
// whole seconds, GitHub rejects fractional values.
func mintJWT(creds *Credentials, now time.Time) (AppJWT, error) {
	now = now.Truncate(time.Second)
	iat := now.Add(-jwtClockSkew)
	exp := iat.Add(jwtLifetime)

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.FormatUint(creds.AppID(), 10),
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).
		SignedString(creds.signingKey())
	if err != nil {
		return AppJWT{}, fmt.Errorf("%w: %w", ErrSigning, err)
	}

	return AppJWT{
		Token:    token,
		AppID:    creds.AppID(),
		IssuedAt: iat,
		Exp:      exp,
	}, nil
}

// NewAppJWT mints a new app JWT without constructing a [Client].
//
// This is useful when only the JWT is required, for example to call the
// app-level API with an existing http client. Fails with an error
// wrapping [ErrSigning] if the key cannot produce a signature.
func NewAppJWT(creds *Credentials) (AppJWT, error) {
	if creds == nil {
		return AppJWT{}, fmt.Errorf("%w: no credentials provided", ErrSigning)
	}
	return mintJWT(creds, time.Now())
}
