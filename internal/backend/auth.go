// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrNoUser is returned when a login answer carries no "usuario" object.
var ErrNoUser = errors.New("login response has no usuario")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Op     string
	Status int
	// Detail is the server's explanation when it sent one.
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s failed: %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s failed: %d %s", e.Op, e.Status, e.Detail)
}

// apiError is the error body of the storefront API ({"detail": ...}).
// Some endpoints answer with {"msg": ...} instead.
type apiError struct {
	Detail any    `json:"detail"`
	Msg    string `json:"msg"`
}

type loginResponse struct {
	Msg     string          `json:"msg"`
	Usuario json.RawMessage `json:"usuario"`
}

// Logout calls POST /logout with the session cookie and no body.
// The answer body is ignored.
func (h *HTTP) Logout(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Post(PathLogout)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if resp.IsSuccess() {
		return nil
	}
	return statusError("logout", resp)
}

// Login calls POST /login (or /admins/login) with {email, password}.
// The server answers {"msg": ..., "usuario": {...}} and sets its session cookie.
func (h *HTTP) Login(ctx context.Context, creds Credentials) (json.RawMessage, error) {
	path := PathLogin
	if creds.Admin {
		path = PathAdminLogin
	}

	var out loginResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&out).
		SetError(&apiError{}).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, statusError("login", resp)
	}

	raw := json.RawMessage(strings.TrimSpace(string(out.Usuario)))
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrNoUser
	}
	return raw, nil
}

func statusError(op string, resp *resty.Response) error {
	se := &StatusError{Op: op, Status: resp.StatusCode()}
	if e, ok := resp.Error().(*apiError); ok && e != nil {
		switch d := e.Detail.(type) {
		case string:
			se.Detail = d
		case nil:
			se.Detail = e.Msg
		default:
			// validation errors arrive as a list of objects
			if b, err := json.Marshal(d); err == nil {
				se.Detail = string(b)
			}
		}
	}
	if se.Detail == "" && !strings.Contains(resp.Header().Get("Content-Type"), "json") {
		se.Detail = strings.TrimSpace(resp.String())
	}
	return se
}
