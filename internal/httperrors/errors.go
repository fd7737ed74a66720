// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors explains why a call never got an answer from the
// storefront API. Answers with an error status are not handled here; they
// reach the user through logging.PresentAPIError.
package httperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"

	"github.com/pterm/pterm"

	"vitrine/cli/internal/logging"
)

// Kind is the reason a request got no answer.
type Kind int

const (
	Unreachable Kind = iota
	Timeout
	UnknownHost
	Refused
)

// hint is what the user sees for one Kind. %[1]s is the action, %[2]s the host.
type hint struct {
	title string
	tips  []string
}

var hints = map[Kind]hint{
	Timeout: {
		title: "⏱️  The store API did not answer in time while %[1]s",
		tips:  []string{"The backend may be busy or stuck", "Try again, or raise the timeout"},
	},
	UnknownHost: {
		title: "🌐 Cannot resolve %[2]s while %[1]s",
		tips:  []string{"Check the host in --api-url or VITRINE_API_URL"},
	},
	Refused: {
		title: "🚫 Nothing is listening on %[2]s while %[1]s",
		tips:  []string{"Start the store API (default port 8000)", "Check the port in --api-url"},
	},
	Unreachable: {
		title: "❌ Cannot reach the store API at %[2]s while %[1]s",
		tips:  []string{"Check that the backend is running", "Check --api-url or VITRINE_API_URL"},
	},
}

// Classify tells the failure modes of an unanswered request apart.
func Classify(err error) Kind {
	var (
		netErr net.Error
		dnsErr *net.DNSError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return Timeout
	case errors.As(err, &dnsErr):
		return UnknownHost
	case errors.Is(err, syscall.ECONNREFUSED):
		return Refused
	default:
		return Unreachable
	}
}

// FormatNetworkError prints an explanation of err for the action being
// attempted and returns err wrapped.
func FormatNetworkError(err error, action string, apiURL string) error {
	if err == nil {
		return nil
	}

	h := hints[Classify(err)]
	pterm.Printf(h.title+"\n", action, ExtractHostFromURL(apiURL))
	for _, tip := range h.tips {
		pterm.Println("  • " + tip)
	}
	pterm.Println()
	pterm.Debug.Printf("Technical details: %s\n", logging.Mask(err.Error()))

	return fmt.Errorf("network error: %w", err)
}

// ExtractHostFromURL returns the host of urlStr, or "server" when it has none.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
