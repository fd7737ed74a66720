// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	cause := stderrors.New("permission denied")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain", err: cause, want: 1},
		{name: "config", err: New(ConfigInvalid, "bad api url"), want: 2},
		{name: "storage wrapped", err: fmt.Errorf("whoami: %w", Wrap(StorageUnavailable, "open bolt", cause)), want: 3},
		{name: "page", err: Wrap(PageLoadFailed, "read index.html", cause), want: 4},
		{name: "login", err: Wrap(LoginFailed, "authenticate", cause), want: 5},
		{name: "session", err: New(SessionRequired, "no session"), want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := Wrap(StorageUnavailable, "open bolt", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage_unavailable: open bolt: permission denied", err.Error())
	assert.Equal(t, "session_required: no session", New(SessionRequired, "no session").Error())
	assert.Equal(t, Kind(""), KindOf(cause))
}
