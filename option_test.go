// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"net/http"
	"testing"
	"time"

	"github.com/hubforge/githubkit/internal"
	"github.com/hubforge/githubkit/internal/testkeys"
)

func TestOptions(t *testing.T) {
	t.Run("no-options", func(t *testing.T) {
		if opt := Options(); opt != nil {
			t.Errorf("expected nil option, got %v", opt)
		}
	})
	t.Run("all-nil-options", func(t *testing.T) {
		if opt := Options(nil, nil, WithEndpoint("")); opt != nil {
			t.Errorf("expected nil option, got %v", opt)
		}
	})
	t.Run("combines", func(t *testing.T) {
		creds, err := NewCredentials(99, testkeys.RSA2048PEM())
		if err != nil {
			t.Fatalf("failed to build credentials: %s", err)
		}

		preset := Options(
			WithEndpoint("https://github.example.com/api/v3/"),
			WithUserAgent("unit-test"),
			nil,
		)
		client, err := New(creds, preset)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if client.Endpoint() != "https://github.example.com/api/v3/" {
			t.Errorf("endpoint = %s", client.Endpoint())
		}
		if client.ua != "unit-test" {
			t.Errorf("ua = %s, expected unit-test", client.ua)
		}
	})
	t.Run("last-wins", func(t *testing.T) {
		creds, err := NewCredentials(99, testkeys.RSA2048PEM())
		if err != nil {
			t.Fatalf("failed to build credentials: %s", err)
		}

		client, err := New(creds, Options(
			WithUserAgent("first"),
			WithUserAgent("second"),
		))
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if client.ua != "second" {
			t.Errorf("ua = %s, expected second", client.ua)
		}
	})
	t.Run("joins-errors", func(t *testing.T) {
		creds, err := NewCredentials(99, testkeys.RSA2048PEM())
		if err != nil {
			t.Fatalf("failed to build credentials: %s", err)
		}

		_, err = New(creds, Options(
			WithEndpoint("ftp://api.github.com/"),
			WithRequestTimeout(-time.Second),
		))
		if err == nil {
			t.Errorf("expected an error, got nil")
		}
	})
}

func TestWithEndpoint(t *testing.T) {
	tt := []struct {
		name     string
		endpoint string
		ok       bool
		nilOpt   bool
	}{
		{name: "empty", nilOpt: true},
		{name: "valid-https", endpoint: "https://github.example.com/api/v3/", ok: true},
		{name: "valid-http", endpoint: "http://localhost:8080/", ok: true},
		{name: "bad-scheme", endpoint: "ftp://api.github.com/"},
		{name: "with-query", endpoint: "https://api.github.com/?foo=bar"},
		{name: "with-fragment", endpoint: "https://api.github.com/#frag"},
		{name: "not-a-url", endpoint: "https://api.git\thub.com/"},
	}
	creds, err := NewCredentials(99, testkeys.RSA2048PEM())
	if err != nil {
		t.Fatalf("failed to build credentials: %s", err)
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			opt := WithEndpoint(tc.endpoint)
			if tc.nilOpt {
				if opt != nil {
					t.Errorf("expected nil option for empty endpoint")
				}
				return
			}

			client, err := New(creds, opt)
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %s", err)
				}
				if client.Endpoint() != tc.endpoint {
					t.Errorf("Endpoint() = %s, expected %s", client.Endpoint(), tc.endpoint)
				}
			} else if err == nil {
				t.Errorf("expected an error, got nil")
			}
		})
	}
}

func TestWithRoundTripper(t *testing.T) {
	creds, err := NewCredentials(99, testkeys.RSA2048PEM())
	if err != nil {
		t.Fatalf("failed to build credentials: %s", err)
	}

	t.Run("nil", func(t *testing.T) {
		if opt := WithRoundTripper(nil); opt != nil {
			t.Errorf("expected nil option")
		}
	})
	t.Run("custom", func(t *testing.T) {
		rt := internal.RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, nil
		})
		client, err := New(creds, WithRoundTripper(rt))
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if _, ok := client.next.(internal.RoundTripFunc); !ok {
			t.Errorf("round tripper not applied: %T", client.next)
		}
	})
}

func TestWithUserAgent(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if opt := WithUserAgent(""); opt != nil {
			t.Errorf("expected nil option")
		}
	})
	t.Run("whitespace-only", func(t *testing.T) {
		if opt := WithUserAgent("  \t"); opt != nil {
			t.Errorf("expected nil option")
		}
	})
}

func TestWithRequestTimeout(t *testing.T) {
	creds, err := NewCredentials(99, testkeys.RSA2048PEM())
	if err != nil {
		t.Fatalf("failed to build credentials: %s", err)
	}

	tt := []struct {
		name    string
		timeout time.Duration
		ok      bool
	}{
		{name: "negative", timeout: -time.Second},
		{name: "zero-disables", timeout: 0, ok: true},
		{name: "positive", timeout: 30 * time.Second, ok: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			client, err := New(creds, WithRequestTimeout(tc.timeout))
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %s", err)
				}
				if client.timeout != tc.timeout {
					t.Errorf("timeout = %s, expected %s", client.timeout, tc.timeout)
				}
			} else if err == nil {
				t.Errorf("expected an error, got nil")
			}
		})
	}
}

func TestWithRefreshMargin(t *testing.T) {
	creds, err := NewCredentials(99, testkeys.RSA2048PEM())
	if err != nil {
		t.Fatalf("failed to build credentials: %s", err)
	}

	tt := []struct {
		name   string
		margin time.Duration
		ok     bool
	}{
		{name: "negative", margin: -time.Second},
		{name: "zero", margin: 0},
		{name: "positive", margin: 5 * time.Minute, ok: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			client, err := New(creds, WithRefreshMargin(tc.margin))
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected error: %s", err)
				}
				if client.margin != tc.margin {
					t.Errorf("margin = %s, expected %s", client.margin, tc.margin)
				}
			} else if err == nil {
				t.Errorf("expected an error, got nil")
			}
		})
	}
}

func TestWithClock(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if opt := WithClock(nil); opt != nil {
			t.Errorf("expected nil option")
		}
	})
	t.Run("custom", func(t *testing.T) {
		creds, err := NewCredentials(99, testkeys.RSA2048PEM())
		if err != nil {
			t.Fatalf("failed to build credentials: %s", err)
		}

		fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		client, err := New(creds, WithClock(func() time.Time { return fixed }))
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if !client.now().Equal(fixed) {
			t.Errorf("now() = %s, expected %s", client.now(), fixed)
		}
	})
}
