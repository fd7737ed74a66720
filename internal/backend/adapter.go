// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend talks to the storefront HTTP API.
// It defines the API contract the session controller and the CLI depend on
// and an implementation over go-resty that keeps the server's session
// cookie in a jar, so logout is sent with credentials included.
package backend

import (
	"context"
	"encoding/json"
)

// API defines backend operations the CLI depends on.
// Implementations may call the real storefront API or provide fakes for tests.
type API interface {
	// Logout ends the server-side session. Any non-2xx answer is an error.
	Logout(ctx context.Context) error
	// Login authenticates and returns the raw "usuario" object of the
	// response, ready to be cached as-is.
	Login(ctx context.Context, creds Credentials) (json.RawMessage, error)
}

// Credentials are posted to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Admin selects the administrator login endpoint.
	Admin bool `json:"-"`
}
