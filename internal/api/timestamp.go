// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package api

import (
	"strconv"
	"time"
)

// Timestamp wraps [time.Time] to handle the two timestamp encodings the
// GitHub API emits: RFC 3339 strings on most endpoints and unix epochs
// (seconds or milliseconds) on a few legacy ones.
type Timestamp struct {
	time.Time
}

// MarshalJSON implements [encoding/json.Marshaler]. Timestamps are
// always written as RFC 3339 strings.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	//nolint:wrapcheck // inherits time.Time marshaling errors.
	return t.Time.MarshalJSON()
}

// UnmarshalJSON implements [encoding/json.Unmarshaler]. Accepts RFC 3339
// strings as well as unix epochs in seconds or milliseconds.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 0 && s[0] == '"' {
		//nolint:wrapcheck // inherits time.Time unmarshaling errors.
		return t.Time.UnmarshalJSON(data)
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}

	// Heuristic: epochs this large are milliseconds, not seconds.
	if i > 1e12 || i < -1e12 {
		t.Time = time.UnixMilli(i).In(time.UTC)
	} else {
		t.Time = time.Unix(i, 0).In(time.UTC)
	}
	return nil
}

// Equal reports whether t and u represent the same time instant.
func (t Timestamp) Equal(u Timestamp) bool {
	return t.Time.Equal(u.Time)
}
