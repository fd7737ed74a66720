// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"vitrine/cli/internal/backend"
)

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want APIErrorType
	}{
		{name: "nil", err: nil, want: APIErrorUnknown},
		{name: "network", err: errors.New("connection refused"), want: APIErrorUnknown},
		{name: "unauthorized", err: &backend.StatusError{Op: "login", Status: 401}, want: APIErrorAuth},
		{name: "forbidden wrapped", err: fmt.Errorf("x: %w", &backend.StatusError{Status: 403}), want: APIErrorAuth},
		{name: "not found", err: &backend.StatusError{Status: 404}, want: APIErrorNotFound},
		{name: "validation", err: &backend.StatusError{Status: 422}, want: APIErrorRequest},
		{name: "server", err: &backend.StatusError{Status: 502}, want: APIErrorServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAPIError(tt.err))
		})
	}
}

func TestFormatAPIError(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	out := FormatAPIError("log in", &backend.StatusError{Op: "login", Status: 401, Detail: "Credenciais inválidas"})
	assert.Contains(t, out, "Could not log in")
	assert.Contains(t, out, "did not accept the credentials")
	assert.Contains(t, out, "login failed: 401 Credenciais inválidas")
}
