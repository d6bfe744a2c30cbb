// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

// Package api holds wire-level types and constants to serialize and
// deserialize requests to and from the GitHub API.
//
// Types here cover only the authentication endpoints. Typed resource
// models live in the root package, which is the public surface of the
// library.
package api
