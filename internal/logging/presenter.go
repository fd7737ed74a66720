// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pterm/pterm"

	"vitrine/cli/internal/backend"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// APIErrorType is the category of an answer the storefront API refused.
type APIErrorType int

const (
	APIErrorUnknown APIErrorType = iota
	APIErrorAuth
	APIErrorNotFound
	APIErrorRequest
	APIErrorServer
)

// ClassifyAPIError categorizes err by the HTTP status it carries.
// Errors without a status are APIErrorUnknown.
func ClassifyAPIError(err error) APIErrorType {
	var se *backend.StatusError
	if !errors.As(err, &se) {
		return APIErrorUnknown
	}
	switch {
	case se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden:
		return APIErrorAuth
	case se.Status == http.StatusNotFound:
		return APIErrorNotFound
	case se.Status >= 500:
		return APIErrorServer
	case se.Status >= 400:
		return APIErrorRequest
	default:
		return APIErrorUnknown
	}
}

// FormatAPIError explains a refused API call in a user-friendly way.
func FormatAPIError(context string, err error) string {
	var builder strings.Builder

	builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprintf("Could not %s", context))
	builder.WriteString("\n\n")

	switch ClassifyAPIError(err) {
	case APIErrorAuth:
		builder.WriteString("The store did not accept the credentials.\n")
		builder.WriteString("  • Check the e-mail and password\n")
		builder.WriteString("  • Use --admin for administrator accounts\n")
	case APIErrorNotFound:
		builder.WriteString("The store API does not offer this endpoint.\n")
		builder.WriteString("  • Check --api-url or VITRINE_API_URL\n")
	case APIErrorServer:
		builder.WriteString("The store API hit an internal error.\n")
		builder.WriteString("  • Try again in a few minutes\n")
	case APIErrorRequest:
		builder.WriteString("The store API rejected the request.\n")
	default:
		builder.WriteString("The store API answered unexpectedly.\n")
	}

	if err != nil {
		builder.WriteString("\n")
		builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(err.Error())))
	}
	return builder.String()
}

// PresentAPIError prints FormatAPIError.
func PresentAPIError(context string, err error) {
	fmt.Println()
	fmt.Println(FormatAPIError(context, err))
	fmt.Println()
}
