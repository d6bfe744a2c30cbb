// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

package githubkit

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Options takes a variadic slice of [Option] and returns a single
// [Option] which includes all the given options. This is useful for
// sharing presets. If conflicting options are specified, last one
// specified wins. As a special case, if no options are specified or all
// specified options are nil, this will return nil.
func Options(options ...Option) Option {
	nils := 0
	for i := range options {
		if options[i] == nil {
			nils++
		}
	}
	if len(options) == nils {
		return nil
	}

	return &funcOption{
		f: func(c *Client) error {
			var err error
			for i := range options {
				if options[i] != nil {
					err = errors.Join(err, options[i].apply(c))
				}
			}
			return err
		},
	}
}

// Option is option to apply for [Client].
type Option interface {
	apply(c *Client) error
}

// funcOption wraps a function that is applied to the Client during its
// initial configuration. It implements [Option] interface.
type funcOption struct {
	f func(*Client) error
}

func (opt *funcOption) apply(c *Client) error {
	return opt.f(c)
}

// WithEndpoint configures [Client] to use a custom REST API(v3)
// endpoint, for example a GitHub Enterprise Server instance.
//
// When not specified or empty, "https://api.github.com/" is used.
func WithEndpoint(endpoint string) Option {
	if endpoint == "" {
		return nil
	}
	return &funcOption{
		f: func(c *Client) error {
			u, err := url.Parse(endpoint)
			if err != nil {
				return fmt.Errorf("invalid endpoint url: %w", err)
			}
			switch u.Scheme {
			case "http", "https":
			default:
				return fmt.Errorf("invalid url scheme: %s (%s)", u.Scheme, endpoint)
			}

			if u.Fragment != "" || u.RawQuery != "" {
				return fmt.Errorf("endpoint cannot have fragments or queries: %s", endpoint)
			}

			c.baseURL = u
			return nil
		},
	}
}

// WithRoundTripper configures [Client] to use next as the underlying
// [http.RoundTripper] for all requests, including token exchanges.
//
// This can be used to further customize headers, add logging or retries.
func WithRoundTripper(next http.RoundTripper) Option {
	if next == nil {
		return nil
	}
	return &funcOption{
		f: func(c *Client) error {
			c.next = next
			return nil
		},
	}
}

// WithUserAgent configures the User-Agent header used for all requests.
func WithUserAgent(ua string) Option {
	if strings.TrimSpace(ua) == "" {
		return nil
	}
	return &funcOption{
		f: func(c *Client) error {
			c.ua = ua
			return nil
		},
	}
}

// WithRequestTimeout configures the timeout applied to each outgoing
// request, including token exchanges. When not specified, one minute
// is used. A zero duration disables the timeout.
func WithRequestTimeout(timeout time.Duration) Option {
	return &funcOption{
		f: func(c *Client) error {
			if timeout < 0 {
				return fmt.Errorf("request timeout cannot be negative: %s", timeout)
			}
			c.timeout = timeout
			return nil
		},
	}
}

// WithRefreshMargin configures the safety margin before expiry at which
// a cached installation token is treated as stale and refreshed. When
// not specified, 60 seconds is used.
//
// Tokens are handed out to callers which then spend time using them, so
// a margin that is too small risks requests racing token expiry.
func WithRefreshMargin(margin time.Duration) Option {
	return &funcOption{
		f: func(c *Client) error {
			if margin <= 0 {
				return fmt.Errorf("refresh margin must be positive: %s", margin)
			}
			c.margin = margin
			return nil
		},
	}
}

// WithClock configures the time source used for token expiry decisions
// and JWT claims. This exists to allow deterministic tests, production
// clients should not need it.
func WithClock(now func() time.Time) Option {
	if now == nil {
		return nil
	}
	return &funcOption{
		f: func(c *Client) error {
			c.now = now
			return nil
		},
	}
}
