// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
)

var (
	_ fmt.Stringer   = (*Credentials)(nil)
	_ fmt.GoStringer = (*Credentials)(nil)
	_ slog.LogValuer = (*Credentials)(nil)
)

// Credentials hold a GitHub App's identity: its numeric app id and the
// RSA private key GitHub generated for it.
//
// Key material is never included in String, GoString or slog renderings.
// Credentials are immutable once constructed.
type Credentials struct {
	appID uint64
	key   *rsa.PrivateKey
}

// NewCredentials builds [Credentials] from an app id and a PEM encoded
// RSA private key as downloaded from the app's settings page.
//
// RSA keys smaller than 2048 bits are rejected. GitHub only issues RSA
// keys, so no other key types are supported.
func NewCredentials(appID uint64, pemKey []byte) (*Credentials, error) {
	var err error
	if appID == 0 {
		err = errors.Join(err, errors.New("app id cannot be zero"))
	}

	if len(pemKey) == 0 {
		err = errors.Join(err, errors.New("private key is empty"))
	}

	if err != nil {
		return nil, fmt.Errorf("githubkit: invalid credentials: %w", err)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemKey)
	if err != nil {
		return nil, fmt.Errorf("githubkit: invalid credentials: %w", err)
	}

	if key.N.BitLen() < 2048 {
		return nil, fmt.Errorf("githubkit: invalid credentials: rsa key size(%d) < 2048 bits",
			key.N.BitLen())
	}

	return &Credentials{appID: appID, key: key}, nil
}

// AppID returns the GitHub app id.
func (c *Credentials) AppID() uint64 {
	return c.appID
}

// signingKey returns the private key for use by the JWT signer.
// The key never leaves this package.
func (c *Credentials) signingKey() *rsa.PrivateKey {
	return c.key
}

// String implements [fmt.Stringer]. Key material is redacted.
func (c *Credentials) String() string {
	return fmt.Sprintf("Credentials(app_id=%d, key=REDACTED)", c.appID)
}

// GoString implements [fmt.GoStringer]. Key material is redacted,
// so %#v verbs cannot leak the key into logs or panics.
func (c *Credentials) GoString() string {
	return c.String()
}

// LogValue implements [log/slog.LogValuer].
func (c *Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("app_id", c.appID),
		slog.String("private_key", "REDACTED"),
	)
}
