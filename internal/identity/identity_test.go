// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package identity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		valid       bool
	}{
		{name: "id only", input: `{"id": 7}`, valid: true},
		{name: "nome only", input: `{"nome": "Ana Silva"}`, valid: true},
		{name: "email only", input: `{"email": "a@b.com"}`, valid: true},
		{name: "username only", input: `{"username": "asilva"}`, valid: false},
		{name: "empty object", input: `{}`, valid: false},
		{name: "falsy fields", input: `{"id": 0, "nome": "", "email": null}`, valid: false},
		{name: "string id zero is truthy", input: `{"id": "0"}`, valid: true},
		{name: "null", input: `null`, expectError: true},
		{name: "array", input: `[1, 2]`, expectError: true},
		{name: "string", input: `"usuario"`, expectError: true},
		{name: "broken json", input: `{"nome": `, expectError: true},
		{name: "trailing garbage", input: `{"id":1} garbage`, expectError: true},
		{name: "two objects", input: `{"nome":"Ana"}{"x":1}`, expectError: true},
		{name: "stray bracket", input: `{"email":"a@b.com"}]`, expectError: true},
		{name: "trailing whitespace", input: "{\"id\":1}\n\t ", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse([]byte(tt.input))
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.valid, id.Valid())
		})
	}
}

func TestParsePreservesRecord(t *testing.T) {
	input := `{"email":"a@b.com","id":12345678901234567890,"nome":"Ana Silva","role":"cliente","username":"asilva"}`

	id, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := json.Marshal(id)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
	assert.Equal(t, "12345678901234567890", id.ID())

	role, ok := id.Get("role")
	require.True(t, ok)
	assert.Equal(t, "cliente", role)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   string
	}{
		{name: "first word of nome", fields: map[string]any{"nome": "Ana Silva"}, want: "Ana"},
		{name: "nome wins over username", fields: map[string]any{"nome": "Ana Silva", "username": "asilva"}, want: "Ana"},
		{name: "username", fields: map[string]any{"username": "asilva"}, want: "asilva"},
		{name: "username wins over email", fields: map[string]any{"username": "asilva", "email": "a@b.com"}, want: "asilva"},
		{name: "email", fields: map[string]any{"email": "a@b.com"}, want: "a@b.com"},
		{name: "empty record", fields: map[string]any{}, want: FallbackDisplayName},
		{name: "blank nome falls through", fields: map[string]any{"nome": "   ", "email": "a@b.com"}, want: "a@b.com"},
		{name: "whitespace nome falls to username", fields: map[string]any{"nome": " \t ", "username": "asilva"}, want: "asilva"},
		{name: "whitespace nome alone", fields: map[string]any{"nome": "  "}, want: FallbackDisplayName},
		{name: "leading spaces in nome", fields: map[string]any{"nome": "  Ana Silva"}, want: "Ana"},
		{name: "id only", fields: map[string]any{"id": json.Number("3")}, want: FallbackDisplayName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.fields).DisplayName())
		})
	}
}

func TestNilIdentity(t *testing.T) {
	var id *Identity

	assert.False(t, id.Valid())
	assert.Equal(t, FallbackDisplayName, id.DisplayName())
	assert.Equal(t, "", id.Email())
	assert.Equal(t, Guest, ViewOf(id))
}

func TestViewOf(t *testing.T) {
	view := ViewOf(New(map[string]any{"nome": "Ana Silva"}))
	assert.True(t, view.Authenticated)
	assert.Equal(t, "Ana", view.DisplayName)
	assert.Equal(t, "Olá, Ana", view.Greeting())
	assert.Equal(t, "authenticated(Ana)", view.String())

	guest := ViewOf(New(map[string]any{"username": "asilva"}))
	assert.False(t, guest.Authenticated)
	assert.Equal(t, "", guest.Greeting())
	assert.Equal(t, "guest", guest.String())
}
