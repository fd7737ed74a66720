// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
)

// DefaultTimeout bounds every request when no timeout option is given.
const DefaultTimeout = 10 * time.Second

// Endpoint paths of the storefront API.
const (
	PathLogin      = "/login"
	PathAdminLogin = "/admins/login"
	PathLogout     = "/logout"
)

// HTTP implements API over the storefront REST endpoints.
type HTTP struct {
	// baseURL is the API root, without a trailing slash (e.g. "http://localhost:8000")
	baseURL string
	// client carries the base URL, timeout and cookie jar
	client *resty.Client
	// jar holds the session cookie set by login and sent back on logout
	jar http.CookieJar
}

// Option configures the HTTP client.
type Option func(*HTTP)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) {
		if d > 0 {
			h.client.SetTimeout(d)
		}
	}
}

// WithCookieJar replaces the in-memory jar, e.g. with a StoreJar so the
// session outlives the process.
func WithCookieJar(jar http.CookieJar) Option {
	return func(h *HTTP) {
		if jar != nil {
			h.jar = jar
			h.client.SetCookieJar(jar)
		}
	}
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(h *HTTP) {
		if ua != "" {
			h.client.SetHeader("User-Agent", ua)
		}
	}
}

// New creates the storefront API client.
func New(baseURL string, opts ...Option) (*HTTP, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend: empty base url")
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("backend: cookie jar: %w", err)
	}

	h := &HTTP{
		baseURL: base,
		jar:     jar,
		client: resty.New().
			SetBaseURL(base).
			SetTimeout(DefaultTimeout).
			SetCookieJar(jar).
			SetHeader("Accept", "application/json"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// BaseURL returns the API root the client talks to.
func (h *HTTP) BaseURL() string {
	return h.baseURL
}

// Jar returns the cookie jar used for credentials.
func (h *HTTP) Jar() http.CookieJar {
	return h.jar
}
