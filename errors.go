// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"fmt"
	"net/http"
)

var (
	_ error = Error("")
	_ error = (*AuthError)(nil)
	_ error = (*APIError)(nil)
	_ error = (*DecodeError)(nil)
)

// Error is immutable error representation.
//
// Error strings themselves are NOT part of semver compatibility guarantees.
// Use exported symbols instead of directly using error strings.
type Error string

// Implements Error() interface.
func (e Error) Error() string {
	return string(e)
}

const (
	// ErrSigning indicates the app private key is malformed or producing
	// the RS256 signature failed.
	ErrSigning = Error("githubkit: failed to sign app jwt")

	// ErrInvalidResponse indicates GitHub's token exchange response could
	// not be parsed into an installation token.
	ErrInvalidResponse = Error("githubkit: invalid token exchange response")

	// ErrPathIsDirectory is returned by [Client.GetFile] when the given
	// path resolves to a directory instead of a file.
	ErrPathIsDirectory = Error("githubkit: path is a directory")
)

// AuthError is returned when a fresh installation access token cannot be
// obtained. It wraps the underlying cause, which may be [ErrSigning],
// [ErrInvalidResponse] or a transport error.
type AuthError struct {
	// Status is the HTTP status code GitHub responded with during token
	// exchange. It is zero when the exchange failed before any response
	// was received, for example on signing or transport errors.
	Status int

	err error
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("githubkit: token exchange rejected with status %d: %s",
			e.Status, e.err)
	}
	return fmt.Sprintf("githubkit: failed to obtain installation token: %s", e.err)
}

func (e *AuthError) Unwrap() error {
	return e.err
}

// APIError is a non 2xx response from a GitHub resource endpoint.
// It carries the HTTP status and GitHub's error message when the error
// envelope could be parsed.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int

	// Message is the error message from GitHub's error envelope.
	// May be empty if the response body was not the usual envelope.
	Message string

	// DocumentationURL points to GitHub's docs for the failing endpoint.
	DocumentationURL string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("githubkit: %s (%d %s)",
			e.Message, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("githubkit: api error: %d %s", e.Status, http.StatusText(e.Status))
}

// DecodeError indicates a 2xx response body did not match the shape
// expected by the caller. This points at a schema mismatch between the
// client and the API.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("githubkit: failed to decode response: %s", e.err)
}

func (e *DecodeError) Unwrap() error {
	return e.err
}
