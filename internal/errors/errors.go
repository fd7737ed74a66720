// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Commands wrap failures with a Kind so the entry point can print one clear
// message and exit with a code scripts can test for.
//
// The package supports wrapping underlying errors while maintaining error kind information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ConfigInvalid indicates a bad config file, environment or flag.
	ConfigInvalid Kind = "config_invalid"
	// StorageUnavailable indicates local or session storage could not be opened.
	StorageUnavailable Kind = "storage_unavailable"
	// PageLoadFailed indicates the HTML page could not be read or written.
	PageLoadFailed Kind = "page_load_failed"
	// LoginFailed indicates the API refused or could not be reached during login.
	LoginFailed Kind = "login_failed"
	// SessionRequired indicates a gated command found no session.
	SessionRequired Kind = "session_required"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first E in err's chain, or "".
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case ConfigInvalid:
		return 2
	case StorageUnavailable:
		return 3
	case PageLoadFailed:
		return 4
	case LoginFailed:
		return 5
	case SessionRequired:
		return 6
	default:
		return 1
	}
}
